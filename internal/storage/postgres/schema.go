package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"strings"
)

//go:embed schema.sql
var schemaSQL string

// SchemaStatements returns the DDL in schema.sql, one statement per entry.
func SchemaStatements() []string {
	parts := strings.Split(schemaSQL, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// EnsureSchema creates the items table and its index if they are missing.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range SchemaStatements() {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
