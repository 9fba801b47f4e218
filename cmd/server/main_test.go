package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunRejectsBadConfig(t *testing.T) {
	t.Setenv("DB_DRIVER", "mongo")

	err := run(context.Background())
	require.ErrorContains(t, err, "unsupported DB_DRIVER")
}

func TestRunStopsWithContext(t *testing.T) {
	t.Setenv("DB_DRIVER", "none")
	t.Setenv("PORT", "0")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("INSTANCE_DIR", t.TempDir())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, run(ctx))
}
