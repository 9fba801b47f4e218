package app

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"solomon-validator/internal/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	dir := t.TempDir()

	src, err := os.ReadFile(filepath.Join("..", "adapters", "solomon", "testdata", "c101_head.txt"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "C101.txt"), src, 0o600))

	return config.Config{
		Environment:      "test",
		InstanceDir:      dir,
		DBDriver:         "sqlite",
		DBPath:           filepath.Join(dir, "data", "results.db"),
		LateReturnPolicy: "warning",
	}
}

func TestBuildHandler_SQLiteAndRedis(t *testing.T) {
	cfg := testConfig(t)
	mr := miniredis.RunT(t)
	cfg.RedisAddr = mr.Addr()

	h, cleanup, err := BuildHandler(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(cleanup)

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/validations?instance=C101")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.JSONEq(t, `{"validations":[]}`, string(body))

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestBuildHandler_BadPolicy(t *testing.T) {
	cfg := testConfig(t)
	cfg.LateReturnPolicy = "ignore"

	_, _, err := BuildHandler(context.Background(), cfg, zerolog.Nop())
	require.Error(t, err)
}

func TestOpenResults_None(t *testing.T) {
	repo, conn, err := OpenResults(context.Background(), config.Config{DBDriver: "none"})
	require.NoError(t, err)
	require.Nil(t, repo)
	require.Nil(t, conn)
}
