package repo

import (
	"context"
	"database/sql"
	_ "embed"
	"strings"
)

// Schema holds the bootstrap SQL for local development and tests.
//
//go:embed schema.sql
var Schema string

// EnsureSchema applies the bootstrap DDL. Every statement is
// CREATE TABLE IF NOT EXISTS, so re-running is harmless.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range strings.Split(Schema, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
