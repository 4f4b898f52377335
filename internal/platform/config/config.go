// Copyright (c) 2026 Staynest. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values. For local development
a '.env' file in the working directory is read first with 'joho/godotenv';
variables already present in the process environment always win.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Once loaded, configuration is read-only and passed to components through
their constructors. No global variables hold config.
*/
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DefaultEnvFile is the dotenv file read by [Load] when present.
const DefaultEnvFile = ".env"

// # Configuration Schema

// Config holds all runtime configuration for the Staynest API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// PublicBaseURL is the externally visible origin, used to build OAuth callback URLs.
	PublicBaseURL string `env:"PUBLIC_BASE_URL" envDefault:"http://localhost:8080"`

	// Relational Database (PostgreSQL)
	Database

	// Key-Value store (Redis), holds OAuth state tokens
	RedisURL string `env:"REDIS_URL,required"`

	// Cryptographic keys for access token signing
	JWTPrivKeyPath string `env:"JWT_PRIVATE_KEY_PATH,required"`
	JWTPubKeyPath  string `env:"JWT_PUBLIC_KEY_PATH,required"`

	// Federated identity providers. A provider is enabled when its client ID is set.
	GitHubClientID     string `env:"GITHUB_CLIENT_ID"`
	GitHubClientSecret string `env:"GITHUB_CLIENT_SECRET"`
	GoogleClientID     string `env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `env:"GOOGLE_CLIENT_SECRET"`

	// Cross-Origin Resource Sharing, comma separated origin suffixes allowed in production.
	AllowedOrigins string `env:"ALLOWED_ORIGINS" envDefault:"staynest.app"`
}

// Database holds the PostgreSQL settings. The admin CLI loads only this part.
type Database struct {
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`
}

// # Configuration Loading

// Load reads the optional [DefaultEnvFile] and parses the process environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := loadInto(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDatabase is [Load] restricted to the [Database] settings.
func LoadDatabase() (*Database, error) {
	cfg := &Database{}
	if err := loadInto(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadInto(target any) error {
	if err := godotenv.Load(DefaultEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("config: failed to read %s: %w", DefaultEnvFile, err)
	}

	if err := env.Parse(target); err != nil {
		return fmt.Errorf("config: failed to parse environment variables: %w", err)
	}
	return nil
}

// Parse builds a [Config] from an explicit variable set instead of the process
// environment. Defaults and required checks still apply.
func Parse(environment map[string]string) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Environment: environment}); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
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

// OriginSuffixes splits [Config.AllowedOrigins] into trimmed, non-empty entries.
func (c *Config) OriginSuffixes() []string {
	var suffixes []string
	for _, part := range strings.Split(c.AllowedOrigins, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			suffixes = append(suffixes, trimmed)
		}
	}
	return suffixes
}

// CallbackURL returns the OAuth redirect URL registered for provider.
func (c *Config) CallbackURL(provider string) string {
	return strings.TrimRight(c.PublicBaseURL, "/") + "/api/v1/auth/oauth/" + provider + "/callback"
}
