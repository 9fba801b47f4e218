package main

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func TestRunCreatesSQLiteSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "results.db")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", path)
	t.Setenv("LOG_LEVEL", "error")

	require.NoError(t, run(context.Background()))

	conn, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	var n int
	require.NoError(t, conn.QueryRow(`SELECT COUNT(*) FROM validation_results`).Scan(&n))
	require.Zero(t, n)
}

func TestRunWithoutStore(t *testing.T) {
	t.Setenv("DB_DRIVER", "none")

	require.ErrorContains(t, run(context.Background()), "nothing to initialize")
}
