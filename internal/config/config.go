package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration.
type Config struct {
	// LogLevel is a slog level name: debug, info, warn, error.
	LogLevel string `env:"TODO_LOG_LEVEL" envDefault:"warn"`

	Storage       StorageConfig
	Observability ObservabilityConfig
}

// Parse reads the TODO_* environment variables without deriving defaults
// or validating, so callers can layer command-line overrides on top.
func Parse() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// Load parses environment variables into a Config struct and finalizes it.
func Load() (*Config, error) {
	cfg, err := Parse()
	if err != nil {
		return nil, err
	}

	if err := cfg.Finalize(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Finalize fills derived defaults and validates the configuration.
func (c *Config) Finalize() error {
	if _, err := c.SlogLevel(); err != nil {
		return err
	}

	if err := c.Storage.applyDefaults(); err != nil {
		return err
	}

	return c.Storage.Validate()
}

// SlogLevel returns LogLevel as a slog.Level.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid TODO_LOG_LEVEL %q: %w", c.LogLevel, err)
	}
	return level, nil
}
