// Copyright (c) 2026 Blogapi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct. A '.env' file in the working directory, when present, is loaded
first with 'joho/godotenv'; real environment variables always win.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Once loaded, configuration is read-only and passed to components through
their constructors. No global variables hold it.
*/
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/taibuivan/blogapi/internal/platform/constants"
)

// # Configuration Schema

// Config holds all runtime configuration for the blog API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// StoreDriver selects the post store: mongo, postgres or badger.
	StoreDriver string `env:"STORE_DRIVER" envDefault:"mongo"`

	// DatabaseURL is a mongodb:// URI or a postgres:// DSN, depending on StoreDriver.
	DatabaseURL string `env:"DATABASE_URL"`

	// DatabaseName is the Mongo database holding the posts collection.
	DatabaseName string `env:"DATABASE_NAME" envDefault:"blog"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// BadgerPath is the directory of the embedded store.
	BadgerPath string `env:"BADGER_PATH" envDefault:"./data/badger"`

	// AllowedOrigins is a comma-separated list of origin suffixes accepted
	// by CORS outside development.
	AllowedOrigins string `env:"CORS_ALLOWED_ORIGINS"`
}

// # Configuration Loading

// Load reads an optional .env file, then parses environment variables into a [Config].
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: failed to read .env file: %w", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the driver-specific requirements env tags cannot express.
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case constants.StoreMongo, constants.StorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("config: DATABASE_URL is required for store driver %q", c.StoreDriver)
		}
	case constants.StoreBadger:
		if c.BadgerPath == "" {
			return errors.New("config: BADGER_PATH is required for store driver \"badger\"")
		}
	default:
		return fmt.Errorf("config: unknown store driver %q", c.StoreDriver)
	}
	return nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// OriginSuffixes splits AllowedOrigins into trimmed, non-empty entries.
func (c *Config) OriginSuffixes() []string {
	var suffixes []string
	for _, part := range strings.Split(c.AllowedOrigins, ",") {
		if part = strings.TrimSpace(part); part != "" {
			suffixes = append(suffixes, part)
		}
	}
	return suffixes
}
