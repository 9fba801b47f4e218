package repositories

import (
	"context"
	"database/sql"
	"fmt"
)

// Dialect selects the SQL flavour of a results store.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// Initialize the validation results schema.
// The schema is idempotent and safe to run on every startup.
func InitSchema(ctx context.Context, db *sql.DB, dialect Dialect) error {
	var statements []string

	switch dialect {
	case DialectSQLite:
		statements = []string{`
		CREATE TABLE IF NOT EXISTS validation_results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			instance TEXT NOT NULL,
			solution TEXT NOT NULL,
			valid INTEGER NOT NULL,
			total_distance REAL NOT NULL,
			vehicles_used INTEGER NOT NULL,
			errors TEXT NOT NULL,
			warnings TEXT NOT NULL,
			created_at TEXT NOT NULL
		);
		`}
	case DialectPostgres:
		statements = []string{`
		CREATE TABLE IF NOT EXISTS validation_results (
			id BIGSERIAL PRIMARY KEY,
			instance TEXT NOT NULL,
			solution TEXT NOT NULL,
			valid BOOLEAN NOT NULL,
			total_distance DOUBLE PRECISION NOT NULL,
			vehicles_used INTEGER NOT NULL,
			errors JSONB NOT NULL,
			warnings JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		);
		`}
	default:
		return fmt.Errorf("init schema: unsupported dialect %q", dialect)
	}

	statements = append(statements, `
	CREATE INDEX IF NOT EXISTS idx_validation_results_instance_id
	ON validation_results(instance, id);
	`)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
