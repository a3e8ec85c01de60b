package db

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

//go:embed schema.sql
var embeddedSchema string

// Conn is the narrow database surface the bootstrapper needs. *pgxpool.Pool
// satisfies it.
type Conn interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Bootstrapper lazily creates the schema on first use. Existence of the
// domains table implies the whole schema is present. The initialized flag is
// cached so steady-state requests never touch the catalog.
type Bootstrapper struct {
	conn      Conn
	schemaURL string
	client    *http.Client

	mu          sync.Mutex
	initialized atomic.Bool
}

// NewBootstrapper creates a Bootstrapper. If schemaURL is empty the embedded
// schema is executed instead of fetching a remote document.
func NewBootstrapper(conn Conn, schemaURL string) *Bootstrapper {
	return &Bootstrapper{
		conn:      conn,
		schemaURL: schemaURL,
		client:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Ensure checks that the schema exists and creates it if it does not. It is
// safe for concurrent use; only one caller performs the catalog check or the
// schema execution at a time.
func (b *Bootstrapper) Ensure(ctx context.Context) error {
	if b.initialized.Load() {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.initialized.Load() {
		return nil
	}

	var exists bool
	err := b.conn.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM information_schema.tables
			WHERE table_schema = 'public' AND table_name = 'domains'
		)`,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check schema: %w", err)
	}

	if !exists {
		schema, err := b.fetchSchema(ctx)
		if err != nil {
			return err
		}
		if _, err := b.conn.Exec(ctx, schema); err != nil {
			return fmt.Errorf("execute schema: %w", err)
		}
	}

	b.initialized.Store(true)
	return nil
}

func (b *Bootstrapper) fetchSchema(ctx context.Context) (string, error) {
	if b.schemaURL == "" {
		return embeddedSchema, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.schemaURL, nil)
	if err != nil {
		return "", fmt.Errorf("build schema request: %w", err)
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch schema: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch schema: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read schema: %w", err)
	}

	return string(body), nil
}
