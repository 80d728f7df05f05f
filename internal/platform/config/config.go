// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis, Catalog) via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the Yomira Shelf API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	DatabaseConfig

	// StoreTimeout bounds every individual call to the document tables.
	StoreTimeout time.Duration `env:"STORE_TIMEOUT" envDefault:"5s"`

	// Key-Value Cache (Redis)
	RedisURL string `env:"REDIS_URL,required"`

	// Cryptographic keys for identity signing
	JWTPrivKeyPath string `env:"JWT_PRIVATE_KEY_PATH,required"`
	JWTPubKeyPath  string `env:"JWT_PUBLIC_KEY_PATH,required"`

	CatalogConfig

	// Cross-Origin Resource Sharing
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// DatabaseConfig is the subset needed to reach PostgreSQL and its migrations.
type DatabaseConfig struct {
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`
}

// CatalogConfig configures the external manga catalog (Jikan v4 compatible).
type CatalogConfig struct {
	CatalogBaseURL          string        `env:"CATALOG_BASE_URL"           envDefault:"https://api.jikan.moe/v4"`
	CatalogTimeout          time.Duration `env:"CATALOG_TIMEOUT"            envDefault:"10s"`
	CatalogRateLimit        float64       `env:"CATALOG_RATE_LIMIT"         envDefault:"3"`
	CatalogRateLimitRetries int           `env:"CATALOG_RATE_LIMIT_RETRIES" envDefault:"2"`
	CatalogCacheTTL         time.Duration `env:"CATALOG_CACHE_TTL"          envDefault:"10m"`
}

func (c CatalogConfig) validate() error {
	if c.CatalogRateLimit <= 0 {
		return fmt.Errorf("config: CATALOG_RATE_LIMIT must be positive, got %v", c.CatalogRateLimit)
	}
	if c.CatalogRateLimitRetries < 0 {
		return fmt.Errorf("config: CATALOG_RATE_LIMIT_RETRIES must not be negative, got %d", c.CatalogRateLimitRetries)
	}
	return nil
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.CatalogConfig.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadDatabase parses only the database settings, for tools that never serve HTTP.
func LoadDatabase() (*DatabaseConfig, error) {
	cfg := &DatabaseConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}
	return cfg, nil
}

// LoadCatalog parses only the catalog settings.
func LoadCatalog() (*CatalogConfig, error) {
	cfg := &CatalogConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// AllowedOrigins returns the comma-separated EXTRA_ORIGINS as a trimmed slice.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, origin := range strings.Split(c.ExtraOrigins, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
