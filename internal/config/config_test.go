package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func noEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestLoad_Defaults(t *testing.T) {
	for k := range defaults {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	cfg, err := Load(noEnvFile(t))
	require.NoError(t, err)

	require.Equal(t, "development", cfg.Environment)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "sqlite", cfg.DBDriver)
	require.Equal(t, "data/results.db", cfg.DSN())
	require.Equal(t, 24*time.Hour, cfg.RedisTTL)
	require.Equal(t, "warning", cfg.LateReturnPolicy)
	require.Equal(t, 4, cfg.BatchJobs)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost/db")
	t.Setenv("REDIS_TTL", "15m")
	t.Setenv("BATCH_JOBS", "8")
	t.Setenv("LATE_RETURN_POLICY", "error")

	cfg, err := Load(noEnvFile(t))
	require.NoError(t, err)

	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, "postgres", cfg.DBDriver)
	require.Equal(t, "postgres://u:p@localhost/db", cfg.DSN())
	require.Equal(t, 15*time.Minute, cfg.RedisTTL)
	require.Equal(t, 8, cfg.BatchJobs)
	require.Equal(t, "error", cfg.LateReturnPolicy)
}

func TestLoad_EnvFile(t *testing.T) {
	t.Setenv("INSTANCE_DIR", "")
	os.Unsetenv("INSTANCE_DIR")
	t.Setenv("LOG_LEVEL", "warn")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("INSTANCE_DIR=/srv/solomon\nLOG_LEVEL=debug\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("INSTANCE_DIR") })

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, "/srv/solomon", cfg.InstanceDir)
	// Process environment wins over the file.
	require.Equal(t, "warn", cfg.LogLevel)
}

func TestLoad_Invalid(t *testing.T) {
	t.Run("postgres without url", func(t *testing.T) {
		t.Setenv("DB_DRIVER", "postgres")
		t.Setenv("DATABASE_URL", "")
		_, err := Load(noEnvFile(t))
		require.ErrorContains(t, err, "DATABASE_URL is required")
	})
	t.Run("unknown driver", func(t *testing.T) {
		t.Setenv("DB_DRIVER", "mongo")
		_, err := Load(noEnvFile(t))
		require.ErrorContains(t, err, "unsupported DB_DRIVER")
	})
}

func TestGet(t *testing.T) {
	t.Setenv("SOLOMON_TEST_KEY", "x")
	require.Equal(t, "x", Get("SOLOMON_TEST_KEY", "y"))
	require.Equal(t, "y", Get("SOLOMON_TEST_KEY_UNSET", "y"))
}
