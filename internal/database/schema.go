package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// schemaStatements creates the tables the engine needs. Statements are
// idempotent so MigrateSchema can run on every startup.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS catalogs (
		market_id   TEXT PRIMARY KEY,
		payload     TEXT NOT NULL,
		valid_from  TIMESTAMPTZ NOT NULL,
		valid_until TIMESTAMPTZ NOT NULL,
		fetched_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_catalogs_valid_until ON catalogs (valid_until)`,
	`CREATE TABLE IF NOT EXISTS schedule_state (
		id           SMALLINT PRIMARY KEY DEFAULT 1 CHECK (id = 1),
		next_fire_at TIMESTAMPTZ NOT NULL,
		last_outcome TEXT NOT NULL DEFAULT '',
		updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

// MigrateSchema creates all tables if they do not exist yet.
func MigrateSchema(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}
	return nil
}
