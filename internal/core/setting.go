package core

import (
	"context"
	"fmt"
	"sort"

	"github.com/certwatch/certwatch/internal/model"
)

// SettingService handles the key-value settings table and the
// migrate/backup/restore operations.
type SettingService struct {
	db Store
}

func NewSettingService(db Store) *SettingService {
	return &SettingService{db: db}
}

// GetAll returns all settings as a flat key-value mapping.
func (s *SettingService) GetAll(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.Query(ctx, "SELECT key, value FROM settings")
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	settings := map[string]string{}
	for rows.Next() {
		var st model.Setting
		if err := rows.Scan(&st.Key, &st.Value); err != nil {
			return nil, fmt.Errorf("scan setting: %w", err)
		}
		settings[st.Key] = st.Value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate settings: %w", err)
	}
	return settings, nil
}

// SetAll upserts every key in the mapping. Each key is an independent
// statement; a mid-sequence failure leaves prior keys committed.
func (s *SettingService) SetAll(ctx context.Context, settings map[string]string) error {
	keys := make([]string, 0, len(settings))
	for k := range settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		_, err := s.db.Exec(ctx,
			`INSERT INTO settings (key, value, updated_at) VALUES ($1, $2, now())
			 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
			key, settings[key],
		)
		if err != nil {
			return fmt.Errorf("set setting %q: %w", key, err)
		}
	}
	return nil
}

// Migrate ensures the version table exists with its initial row and returns
// the current schema version. Not a migration runner; the real ladder lives
// in the goose migrations.
func (s *SettingService) Migrate(ctx context.Context) (int, error) {
	_, err := s.db.Exec(ctx,
		`CREATE TABLE IF NOT EXISTS db_version (
			version INTEGER PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	)
	if err != nil {
		return 0, fmt.Errorf("ensure version table: %w", err)
	}

	_, err = s.db.Exec(ctx,
		"INSERT INTO db_version (version) VALUES (1) ON CONFLICT (version) DO NOTHING",
	)
	if err != nil {
		return 0, fmt.Errorf("seed version table: %w", err)
	}

	var version int
	err = s.db.QueryRow(ctx, "SELECT max(version) FROM db_version").Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return version, nil
}
