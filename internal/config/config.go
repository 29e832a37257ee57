// Package config loads runner settings from the environment.
package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
)

// Config holds everything the CLI runner needs.
type Config struct {
	Seed     int64  `env:"SLUMBER_SEED" envDefault:"42"`
	DBPath   string `env:"SLUMBER_DB_PATH" envDefault:"data/slumber.db"`
	Slot     string `env:"SLUMBER_SLOT" envDefault:"main"`
	Years    uint   `env:"SLUMBER_YEARS" envDefault:"100"`
	LogLevel string `env:"SLUMBER_LOG_LEVEL" envDefault:"info"`
}

// Load parses the configuration from environment variables.
func Load() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return c, nil
}

// SlogLevel maps the configured level name onto slog.
func (c Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
