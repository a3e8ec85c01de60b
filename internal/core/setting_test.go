package core

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// ---------- GetAll ----------

func TestSettingService_GetAll_Success(t *testing.T) {
	db := &mockDB{}
	svc := NewSettingService(db)
	ctx := context.Background()

	rows := newMockRows(
		func(dest ...any) error {
			*(dest[0].(*string)) = "notify_email"
			*(dest[1].(*string)) = "ops@example.com"
			return nil
		},
		func(dest ...any) error {
			*(dest[0].(*string)) = "theme"
			*(dest[1].(*string)) = "dark"
			return nil
		},
	)
	db.On("Query", ctx, mock.AnythingOfType("string"), mock.Anything).Return(rows, nil)

	settings, err := svc.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"notify_email": "ops@example.com",
		"theme":        "dark",
	}, settings)
	db.AssertExpectations(t)
}

func TestSettingService_GetAll_Empty(t *testing.T) {
	db := &mockDB{}
	svc := NewSettingService(db)
	ctx := context.Background()

	db.On("Query", ctx, mock.AnythingOfType("string"), mock.Anything).Return(newEmptyMockRows(), nil)

	settings, err := svc.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, settings)
	db.AssertExpectations(t)
}

// ---------- SetAll ----------

func TestSettingService_SetAll_UpsertsEveryKey(t *testing.T) {
	db := &mockDB{}
	svc := NewSettingService(db)
	ctx := context.Background()

	db.On("Exec", ctx, mock.MatchedBy(func(sql string) bool {
		return strings.Contains(sql, "INSERT INTO settings") && strings.Contains(sql, "ON CONFLICT (key)")
	}), mock.Anything).Return(pgconn.NewCommandTag("INSERT 0 1"), nil).Twice()

	err := svc.SetAll(ctx, map[string]string{"a": "1", "b": "2"})
	require.NoError(t, err)
	db.AssertExpectations(t)
}

func TestSettingService_SetAll_StopsOnError(t *testing.T) {
	db := &mockDB{}
	svc := NewSettingService(db)
	ctx := context.Background()

	db.On("Exec", ctx, mock.AnythingOfType("string"), mock.Anything).
		Return(pgconn.CommandTag{}, errors.New("disk full")).Once()

	err := svc.SetAll(ctx, map[string]string{"a": "1", "b": "2"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `set setting "a"`)
	db.AssertExpectations(t)
}

// ---------- Migrate ----------

func TestSettingService_Migrate_ReturnsVersion(t *testing.T) {
	db := &mockDB{}
	svc := NewSettingService(db)
	ctx := context.Background()

	db.On("Exec", ctx, mock.AnythingOfType("string"), mock.Anything).
		Return(pgconn.NewCommandTag(""), nil).Twice()
	row := &mockRow{scanFunc: func(dest ...any) error {
		*(dest[0].(*int)) = 1
		return nil
	}}
	db.On("QueryRow", ctx, mock.AnythingOfType("string"), mock.Anything).Return(row)

	version, err := svc.Migrate(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, version)
	db.AssertExpectations(t)
}

func TestSettingService_Migrate_ExecError(t *testing.T) {
	db := &mockDB{}
	svc := NewSettingService(db)
	ctx := context.Background()

	db.On("Exec", ctx, mock.AnythingOfType("string"), mock.Anything).
		Return(pgconn.CommandTag{}, errors.New("permission denied")).Once()

	_, err := svc.Migrate(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ensure version table")
	db.AssertExpectations(t)
}
