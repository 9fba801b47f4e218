package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"solomon-validator/internal/app"
	"solomon-validator/internal/config"
	"solomon-validator/internal/platform/obs"

	"github.com/rs/zerolog/log"
)

// dbtool creates the validation results schema for the configured store.
func main() {
	if err := run(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("schema initialization failed")
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := obs.NewLogger(os.Stderr, cfg.Environment, cfg.LogLevel)

	if cfg.DBDriver == "none" {
		return errors.New("DB_DRIVER is none, nothing to initialize")
	}
	if cfg.DBDriver == "sqlite" {
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
			return fmt.Errorf("create database directory: %w", err)
		}
	}

	logger.Info().Str("driver", cfg.DBDriver).Msg("initializing results schema")
	_, conn, err := app.OpenResults(logger.WithContext(ctx), cfg)
	if err != nil {
		return err
	}
	defer conn.Close()

	logger.Info().Msg("schema ready")
	return nil
}
