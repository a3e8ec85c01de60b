package core

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/certwatch/certwatch/internal/model"
)

// backupTables is the fixed set of tables included in a backup and accepted
// by a restore, in restore order. Table and column names from restore
// payloads are validated against this schema, never interpolated blindly.
var backupTables = []string{"domains", "certificates", "settings", "alertcfg", "db_version"}

type columnKind int

const (
	kindText columnKind = iota
	kindInt
	kindBool
	kindDate
	kindTimestamp
)

var tableColumns = map[string]map[string]columnKind{
	"domains": {
		"id":             kindInt,
		"domain":         kindText,
		"registrar":      kindText,
		"registrar_link": kindText,
		"registrar_date": kindDate,
		"expiry_date":    kindDate,
		"service_type":   kindText,
		"status":         kindText,
		"memo":           kindText,
		"created_at":     kindTimestamp,
		"updated_at":     kindTimestamp,
	},
	"certificates": {
		"id":                  kindInt,
		"domain_id":           kindInt,
		"common_name":         kindText,
		"status":              kindText,
		"auto_renew":          kindBool,
		"issuer":              kindText,
		"valid_from":          kindDate,
		"valid_to":            kindDate,
		"certificate_content": kindText,
		"private_key":         kindText,
		"certificate_chain":   kindText,
		"fingerprint":         kindText,
		"key_type":            kindText,
		"key_size":            kindInt,
		"san":                 kindText,
		"source":              kindText,
		"memo":                kindText,
		"created_at":          kindTimestamp,
		"updated_at":          kindTimestamp,
	},
	"settings": {
		"key":        kindText,
		"value":      kindText,
		"updated_at": kindTimestamp,
	},
	"alertcfg": {
		"id":         kindInt,
		"tg_token":   kindText,
		"tg_userid":  kindText,
		"days":       kindInt,
		"created_at": kindTimestamp,
		"updated_at": kindTimestamp,
	},
	"db_version": {
		"version":    kindInt,
		"applied_at": kindTimestamp,
	},
}

// serialTables have store-assigned ids whose sequence must be realigned
// after restoring explicit id values.
var serialTables = []string{"domains", "certificates"}

// Backup dumps every known table as a mapping from table name to an ordered
// list of rows. The entire dataset materializes in memory.
func (s *SettingService) Backup(ctx context.Context) (map[string][]map[string]any, error) {
	dump := make(map[string][]map[string]any, len(backupTables))
	for _, table := range backupTables {
		rows, err := s.db.Query(ctx, "SELECT * FROM "+table)
		if err != nil {
			return nil, fmt.Errorf("backup %s: %w", table, err)
		}
		tableRows, err := collectRows(rows)
		rows.Close()
		if err != nil {
			return nil, fmt.Errorf("backup %s: %w", table, err)
		}
		dump[table] = tableRows
	}
	return dump, nil
}

func collectRows(rows pgx.Rows) ([]map[string]any, error) {
	fields := rows.FieldDescriptions()
	out := []map[string]any{}
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, err
		}
		row := make(map[string]any, len(fields))
		for i, fd := range fields {
			row[fd.Name] = values[i]
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// Restore transactionally replaces table contents from a backup dump. Tables
// whose payload entry is not an array are left untouched; any row failure
// rolls back the entire restore.
func (s *SettingService) Restore(ctx context.Context, payload map[string]json.RawMessage) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin restore: %w", err)
	}
	defer tx.Rollback(ctx)

	restored := make(map[string]bool, len(backupTables))
	for _, table := range backupTables {
		raw, ok := payload[table]
		if !ok {
			continue
		}
		var tableRows []map[string]any
		if err := json.Unmarshal(raw, &tableRows); err != nil {
			// Malformed entry: skip, other tables still processed.
			continue
		}
		restored[table] = true

		if _, err := tx.Exec(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
		for _, row := range tableRows {
			if err := insertRow(ctx, tx, table, row); err != nil {
				return fmt.Errorf("restore %s: %w", table, err)
			}
		}
	}

	for _, table := range serialTables {
		if !restored[table] {
			continue
		}
		query := fmt.Sprintf(
			`SELECT setval(pg_get_serial_sequence('%s', 'id'),
				COALESCE((SELECT max(id) FROM %s), 0) + 1, false)`,
			table, table,
		)
		if _, err := tx.Exec(ctx, query); err != nil {
			return fmt.Errorf("reset %s id sequence: %w", table, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit restore: %w", err)
	}
	return nil
}

func insertRow(ctx context.Context, tx pgx.Tx, table string, row map[string]any) error {
	cols := make([]string, 0, len(row))
	for col := range row {
		cols = append(cols, col)
	}
	sort.Strings(cols)

	kinds := tableColumns[table]
	placeholders := make([]string, len(cols))
	values := make([]any, len(cols))
	for i, col := range cols {
		kind, ok := kinds[col]
		if !ok {
			return fmt.Errorf("unknown column %q", col)
		}
		v, err := convertValue(kind, row[col])
		if err != nil {
			return fmt.Errorf("column %q: %w", col, err)
		}
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		values[i] = v
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(cols, ", "), strings.Join(placeholders, ", "))
	if _, err := tx.Exec(ctx, query, values...); err != nil {
		return err
	}
	return nil
}

// convertValue coerces a decoded JSON value into the Go type matching the
// column, so the driver binds a correctly typed parameter.
func convertValue(kind columnKind, v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	switch kind {
	case kindText:
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("expected string, got %T", v)
		}
		return s, nil
	case kindInt:
		switch n := v.(type) {
		case float64:
			return int64(n), nil
		case string:
			var i int64
			if _, err := fmt.Sscanf(n, "%d", &i); err != nil {
				return nil, fmt.Errorf("expected integer, got %q", n)
			}
			return i, nil
		default:
			return nil, fmt.Errorf("expected integer, got %T", v)
		}
	case kindBool:
		switch b := v.(type) {
		case bool:
			return b, nil
		case float64:
			// The previous storage engine kept booleans as 0/1.
			return b != 0, nil
		default:
			return nil, fmt.Errorf("expected boolean, got %T", v)
		}
	case kindDate:
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("expected date string, got %T", v)
		}
		d, err := parseFlexibleTime(s)
		if err != nil {
			return nil, err
		}
		return model.Date{Time: d}, nil
	case kindTimestamp:
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("expected timestamp string, got %T", v)
		}
		return parseFlexibleTime(s)
	default:
		return nil, fmt.Errorf("unhandled column kind %d", kind)
	}
}

func parseFlexibleTime(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time %q", s)
}
