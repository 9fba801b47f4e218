package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"solomon-validator/internal/adapters/cache"
	"solomon-validator/internal/adapters/solomon"
	"solomon-validator/internal/api"
	"solomon-validator/internal/config"
	"solomon-validator/internal/platform/obs"
	"solomon-validator/internal/ports"
	"solomon-validator/internal/services"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// BuildHandler assembles the HTTP API from configuration. The returned
// cleanup releases the database and Redis connections.
func BuildHandler(ctx context.Context, cfg config.Config, logger zerolog.Logger) (_ http.Handler, cleanup func(), err error) {
	policy, err := services.ParseLateReturnPolicy(cfg.LateReturnPolicy)
	if err != nil {
		return nil, nil, fmt.Errorf("build handler: %w", err)
	}

	var closers []func() error
	cleanup = func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				logger.Warn().Err(err).Msg("close resource")
			}
		}
	}
	defer func() {
		if err != nil {
			cleanup()
		}
	}()

	if cfg.DBDriver == "sqlite" {
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
			return nil, nil, fmt.Errorf("build handler: create db dir: %w", err)
		}
	}
	results, conn, err := OpenResults(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("build handler: %w", err)
	}
	if conn != nil {
		closers = append(closers, conn.Close)
	}

	var instances ports.InstanceStore = solomon.NewDirStore(cfg.InstanceDir)
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		closers = append(closers, client.Close)
		if err := client.Ping(ctx).Err(); err != nil {
			// The cache is optional; lookups fall through to the directory.
			logger.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable, instance cache degraded")
		}
		instances = cache.NewCachedInstanceStore(instances, cache.NewRedisInstanceCache(client, cfg.RedisTTL))
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	handler := api.NewRouter(api.Deps{
		Instances:     instances,
		Results:       results,
		Metrics:       obs.NewMetrics(reg),
		Gatherer:      reg,
		Logger:        logger,
		DefaultPolicy: policy,
	})

	logger.Info().
		Str("instance_dir", cfg.InstanceDir).
		Str("db_driver", cfg.DBDriver).
		Bool("redis", cfg.RedisAddr != "").
		Str("late_return", string(policy)).
		Msg("api configured")

	return handler, cleanup, nil
}

// Serve runs the HTTP API until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, cfg config.Config, logger zerolog.Logger) error {
	handler, cleanup, err := BuildHandler(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info().Str("addr", srv.Addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info().Msg("graceful shutdown")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("serve: shutdown: %w", err)
		}
		logger.Info().Msg("server stopped")
		return nil
	})

	return g.Wait()
}
