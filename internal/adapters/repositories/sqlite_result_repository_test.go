package repositories

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"solomon-validator/internal/domain"
	"solomon-validator/internal/platform/db"

	"github.com/stretchr/testify/require"
)

func newSqliteRepo(t *testing.T) *SqliteResultRepository {
	t.Helper()
	ctx := context.Background()

	conn, err := db.Open(ctx, "sqlite", filepath.Join(t.TempDir(), "results.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, InitSchema(ctx, conn, DialectSQLite))
	// Running twice must be harmless.
	require.NoError(t, InitSchema(ctx, conn, DialectSQLite))

	return NewSqliteResultRepository(conn)
}

func TestSqliteResultRepository_SaveAndList(t *testing.T) {
	repo := newSqliteRepo(t)
	ctx := context.Background()
	at := time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)

	valid := domain.ValidationRecord{
		Instance: "C101", Solution: "run1.txt", Valid: true,
		TotalDistance: 828.94, VehiclesUsed: 10, CreatedAt: at,
	}
	invalid := domain.ValidationRecord{
		Instance: "C101", Solution: "run2.txt", Valid: false,
		TotalDistance: 900.5, VehiclesUsed: 11,
		Errors:    []string{"customer 7 visited 2 times"},
		Warnings:  []string{"route 3 returns late"},
		CreatedAt: at.Add(time.Minute),
	}
	other := domain.ValidationRecord{Instance: "R101", Solution: "r.txt", Valid: true, CreatedAt: at}

	id1, err := repo.SaveResult(ctx, valid)
	require.NoError(t, err)
	id2, err := repo.SaveResult(ctx, invalid)
	require.NoError(t, err)
	_, err = repo.SaveResult(ctx, other)
	require.NoError(t, err)
	require.Greater(t, id2, id1)

	got, err := repo.ListResults(ctx, "C101")
	require.NoError(t, err)
	require.Len(t, got, 2)

	require.Equal(t, id1, got[0].ID)
	require.True(t, got[0].Valid)
	require.Equal(t, []string{}, got[0].Errors)
	require.InDelta(t, 828.94, got[0].TotalDistance, 1e-9)
	require.True(t, at.Equal(got[0].CreatedAt))

	require.Equal(t, id2, got[1].ID)
	require.False(t, got[1].Valid)
	require.Equal(t, 11, got[1].VehiclesUsed)
	require.Equal(t, invalid.Errors, got[1].Errors)
	require.Equal(t, invalid.Warnings, got[1].Warnings)
}

func TestSqliteResultRepository_ListUnknownInstance(t *testing.T) {
	repo := newSqliteRepo(t)

	got, err := repo.ListResults(context.Background(), "nope")
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestSqliteResultRepository_NilDB(t *testing.T) {
	repo := &SqliteResultRepository{}

	_, err := repo.SaveResult(context.Background(), domain.ValidationRecord{})
	require.Error(t, err)
}

func TestInitSchema_UnknownDialect(t *testing.T) {
	err := InitSchema(context.Background(), nil, Dialect("oracle"))
	require.ErrorContains(t, err, "unsupported dialect")
}
