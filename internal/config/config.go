// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains default/example secrets that must be rejected in production.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath        string `env:"JOOSTRY_DB_PATH"`
	SessionSecret string `env:"JOOSTRY_SESSION_SECRET"`
	ServerHost    string `env:"JOOSTRY_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"JOOSTRY_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"JOOSTRY_ENV" envDefault:"development"`
	LogLevel      string `env:"JOOSTRY_LOG_LEVEL" envDefault:"info"`
	SiteURL       string `env:"JOOSTRY_SITE_URL" envDefault:"http://localhost:8080"`

	// Cache configuration
	RedisURL     string `env:"JOOSTRY_REDIS_URL"`                          // Optional Redis URL for distributed caching
	CachePrefix  string `env:"JOOSTRY_CACHE_PREFIX" envDefault:"joostry:"` // Redis key prefix
	CacheTTL     int    `env:"JOOSTRY_CACHE_TTL" envDefault:"3600"`        // Default cache TTL in seconds
	CacheMaxSize int    `env:"JOOSTRY_CACHE_MAX_SIZE" envDefault:"10000"`  // Max memory cache entries

	// Seeding configuration
	DoSeed bool `env:"JOOSTRY_DO_SEED" envDefault:"false"` // Enable database seeding
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// StoreConfigured returns true if both values required for the content store
// are present. When false the application still starts: all store reads fail
// soft and resolvers serve their hardcoded defaults.
func (c Config) StoreConfigured() bool {
	return c.DBPath != "" && c.SessionSecret != ""
}

// MinSessionSecretLength is the minimum required length for the session secret.
// AES-256 requires 32 bytes minimum for secure encryption.
const MinSessionSecretLength = 32

// Load parses environment variables and returns a Config struct.
// Missing store values (JOOSTRY_DB_PATH, JOOSTRY_SESSION_SECRET) are warned
// about, not fatal: the storefront renders from defaults when the store is
// unreachable.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.DBPath == "" {
		slog.Warn("JOOSTRY_DB_PATH is not set; content store disabled, serving defaults only")
	}
	if cfg.SessionSecret == "" {
		slog.Warn("JOOSTRY_SESSION_SECRET is not set; admin sign-in disabled")
	} else {
		if len(cfg.SessionSecret) < MinSessionSecretLength {
			return nil, fmt.Errorf("JOOSTRY_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
				"generate a secure secret with: openssl rand -base64 32",
				MinSessionSecretLength, len(cfg.SessionSecret))
		}

		// Reject known weak/default secrets
		for _, weak := range knownWeakSecrets {
			if cfg.SessionSecret == weak {
				return nil, fmt.Errorf("JOOSTRY_SESSION_SECRET is a known default value and must not be used; " +
					"generate a secure secret with: openssl rand -base64 32")
			}
		}

		// Warn about low-entropy secrets
		if !hasMinimumEntropy(cfg.SessionSecret) {
			slog.Warn("JOOSTRY_SESSION_SECRET has low character diversity; " +
				"consider generating a random secret with: openssl rand -base64 32")
		}
	}

	return cfg, nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
