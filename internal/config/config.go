package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the runtime configuration shared by the vrptw binaries.
// Values come from the environment, optionally seeded from a .env file.
type Config struct {
	Environment      string        `mapstructure:"ENVIRONMENT"`
	LogLevel         string        `mapstructure:"LOG_LEVEL"`
	Port             string        `mapstructure:"PORT"`
	InstanceDir      string        `mapstructure:"INSTANCE_DIR"`
	DBDriver         string        `mapstructure:"DB_DRIVER"`
	DBPath           string        `mapstructure:"DB_PATH"`
	DatabaseURL      string        `mapstructure:"DATABASE_URL"`
	RedisAddr        string        `mapstructure:"REDIS_ADDR"`
	RedisTTL         time.Duration `mapstructure:"REDIS_TTL"`
	LateReturnPolicy string        `mapstructure:"LATE_RETURN_POLICY"`
	BatchJobs        int           `mapstructure:"BATCH_JOBS"`
}

var defaults = map[string]any{
	"ENVIRONMENT":        "development",
	"LOG_LEVEL":          "info",
	"PORT":               "8080",
	"INSTANCE_DIR":       "instances",
	"DB_DRIVER":          "sqlite",
	"DB_PATH":            "data/results.db",
	"DATABASE_URL":       "",
	"REDIS_ADDR":         "",
	"REDIS_TTL":          "24h",
	"LATE_RETURN_POLICY": "warning",
	"BATCH_JOBS":         4,
}

// Load reads .env files (missing files are fine) and the environment.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		// godotenv never overrides variables already set in the process.
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("load config: read %s: %w", f, err)
		}
	}

	v := viper.New()
	for k, d := range defaults {
		v.SetDefault(k, d)
	}
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("load config: unmarshal: %w", err)
	}

	cfg.DBDriver = strings.ToLower(strings.TrimSpace(cfg.DBDriver))
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	return cfg, nil
}

func (c Config) validate() error {
	switch c.DBDriver {
	case "sqlite", "none":
	case "postgres":
		if strings.TrimSpace(c.DatabaseURL) == "" {
			return fmt.Errorf("DATABASE_URL is required when DB_DRIVER=postgres")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.BatchJobs < 0 {
		return fmt.Errorf("BATCH_JOBS must not be negative, got %d", c.BatchJobs)
	}
	return nil
}

// DSN returns the data source for the configured results store.
func (c Config) DSN() string {
	if c.DBDriver == "postgres" {
		return c.DatabaseURL
	}
	return c.DBPath
}

// Get returns the environment value for key, or fallback when unset.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
