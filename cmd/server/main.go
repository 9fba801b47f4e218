package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"solomon-validator/internal/app"
	"solomon-validator/internal/config"
	"solomon-validator/internal/platform/obs"

	"github.com/rs/zerolog/log"
)

// main is the application composition root.
// It loads configuration and runs the HTTP API until interrupted.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := obs.NewLogger(os.Stderr, cfg.Environment, cfg.LogLevel)

	return app.Serve(logger.WithContext(ctx), cfg, logger)
}
