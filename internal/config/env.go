// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds runtime settings for the duel server and CLI.
type Config struct {
	Port              int           `env:"PORT" envDefault:"8080"`
	DBPath            string        `env:"DUEL_DB_PATH" envDefault:"data/duel.db"`
	CatalogBaseURL    string        `env:"DUEL_CATALOG_BASE_URL" envDefault:"https://pokeapi.co/api/v2"`
	CORSOrigin        string        `env:"DUEL_CORS_ORIGIN" envDefault:"*"`
	ReadHeaderTimeout time.Duration `env:"DUEL_READ_HEADER_TIMEOUT" envDefault:"5s"`
	ShutdownTimeout   time.Duration `env:"DUEL_SHUTDOWN_TIMEOUT" envDefault:"5s"`
	CatalogTimeout    time.Duration `env:"DUEL_CATALOG_TIMEOUT" envDefault:"8s"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load returns a Config populated from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("invalid port %d", cfg.Port)
	}
	return cfg, nil
}

// Addr returns the listen address for the configured port.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
