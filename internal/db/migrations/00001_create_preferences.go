package migrations

// Visitor ids and endpoint ids are primary-key columns, which MySQL cannot
// build on TEXT, so the DDL differs per dialect.

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreatePreferences, downCreatePreferences)
}

func upCreatePreferences(ctx context.Context, tx *sql.Tx) error {
	for _, stmt := range preferencesUpStmts() {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func downCreatePreferences(ctx context.Context, tx *sql.Tx) error {
	for _, stmt := range []string{
		`DROP TABLE IF EXISTS collapsed_endpoints`,
		`DROP TABLE IF EXISTS recent_searches`,
		`DROP TABLE IF EXISTS preferences`,
	} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func preferencesUpStmts() []string {
	switch dialect {
	case "postgres":
		return []string{
			`CREATE TABLE IF NOT EXISTS preferences (
    visitor_id TEXT PRIMARY KEY,
    theme      TEXT NOT NULL DEFAULT 'light',
    view_mode  TEXT NOT NULL DEFAULT 'cards',
    updated_at TIMESTAMPTZ NOT NULL
)`,
			`CREATE TABLE IF NOT EXISTS recent_searches (
    visitor_id TEXT NOT NULL,
    position   INTEGER NOT NULL,
    term       TEXT NOT NULL,
    PRIMARY KEY (visitor_id, position)
)`,
			`CREATE TABLE IF NOT EXISTS collapsed_endpoints (
    visitor_id  TEXT NOT NULL,
    endpoint_id TEXT NOT NULL,
    PRIMARY KEY (visitor_id, endpoint_id)
)`,
		}

	case "mysql":
		return []string{
			`CREATE TABLE IF NOT EXISTS preferences (
    visitor_id VARCHAR(36) PRIMARY KEY,
    theme      VARCHAR(16) NOT NULL DEFAULT 'light',
    view_mode  VARCHAR(16) NOT NULL DEFAULT 'cards',
    updated_at TIMESTAMP(6) NOT NULL
)`,
			`CREATE TABLE IF NOT EXISTS recent_searches (
    visitor_id VARCHAR(36) NOT NULL,
    position   INT NOT NULL,
    term       VARCHAR(255) NOT NULL,
    PRIMARY KEY (visitor_id, position)
)`,
			`CREATE TABLE IF NOT EXISTS collapsed_endpoints (
    visitor_id  VARCHAR(36) NOT NULL,
    endpoint_id VARCHAR(255) NOT NULL,
    PRIMARY KEY (visitor_id, endpoint_id)
)`,
		}

	default: // sqlite3
		return []string{
			`CREATE TABLE IF NOT EXISTS preferences (
    visitor_id TEXT PRIMARY KEY,
    theme      TEXT NOT NULL DEFAULT 'light',
    view_mode  TEXT NOT NULL DEFAULT 'cards',
    updated_at DATETIME NOT NULL
)`,
			`CREATE TABLE IF NOT EXISTS recent_searches (
    visitor_id TEXT NOT NULL,
    position   INTEGER NOT NULL,
    term       TEXT NOT NULL,
    PRIMARY KEY (visitor_id, position)
)`,
			`CREATE TABLE IF NOT EXISTS collapsed_endpoints (
    visitor_id  TEXT NOT NULL,
    endpoint_id TEXT NOT NULL,
    PRIMARY KEY (visitor_id, endpoint_id)
)`,
		}
	}
}
