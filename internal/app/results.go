package app

import (
	"context"
	"database/sql"
	"fmt"
	"solomon-validator/internal/adapters/repositories"
	"solomon-validator/internal/config"
	"solomon-validator/internal/platform/db"
	"solomon-validator/internal/ports"
)

// OpenResults connects the configured results store and ensures its schema.
// With DB_DRIVER=none it returns a nil repository and a nil *sql.DB.
func OpenResults(ctx context.Context, cfg config.Config) (ports.ResultRepository, *sql.DB, error) {
	if cfg.DBDriver == "none" {
		return nil, nil, nil
	}

	conn, err := db.Open(ctx, cfg.DBDriver, cfg.DSN())
	if err != nil {
		return nil, nil, fmt.Errorf("open results: %w", err)
	}

	if err := repositories.InitSchema(ctx, conn, repositories.Dialect(cfg.DBDriver)); err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("open results: %w", err)
	}

	if cfg.DBDriver == "postgres" {
		return repositories.NewSQLResultRepository(conn), conn, nil
	}
	return repositories.NewSqliteResultRepository(conn), conn, nil
}
