// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.ServerHost != "localhost" {
		t.Errorf("ServerHost = %q, want %q", cfg.ServerHost, "localhost")
	}
	if cfg.ServerPort != 8080 {
		t.Errorf("ServerPort = %d, want %d", cfg.ServerPort, 8080)
	}
	if cfg.Env != "development" {
		t.Errorf("Env = %q, want %q", cfg.Env, "development")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if cfg.SiteURL != "http://localhost:8080" {
		t.Errorf("SiteURL = %q, want %q", cfg.SiteURL, "http://localhost:8080")
	}
	if cfg.CacheTTL != 3600 {
		t.Errorf("CacheTTL = %d, want %d", cfg.CacheTTL, 3600)
	}
	if cfg.CacheMaxSize != 10000 {
		t.Errorf("CacheMaxSize = %d, want %d", cfg.CacheMaxSize, 10000)
	}
	if cfg.DoSeed {
		t.Error("DoSeed should default to false")
	}
}

func TestLoadCustomValues(t *testing.T) {
	customSecret := "Custom-Secret-Key-32-Bytes-Lng!!"
	t.Setenv("JOOSTRY_SESSION_SECRET", customSecret)
	t.Setenv("JOOSTRY_DB_PATH", "/custom/path.db")
	t.Setenv("JOOSTRY_SERVER_HOST", "0.0.0.0")
	t.Setenv("JOOSTRY_SERVER_PORT", "3000")
	t.Setenv("JOOSTRY_ENV", "production")
	t.Setenv("JOOSTRY_LOG_LEVEL", "debug")
	t.Setenv("JOOSTRY_SITE_URL", "https://joostry.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.SessionSecret != customSecret {
		t.Errorf("SessionSecret = %q, want %q", cfg.SessionSecret, customSecret)
	}
	if cfg.DBPath != "/custom/path.db" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, "/custom/path.db")
	}
	if cfg.ServerHost != "0.0.0.0" {
		t.Errorf("ServerHost = %q, want %q", cfg.ServerHost, "0.0.0.0")
	}
	if cfg.ServerPort != 3000 {
		t.Errorf("ServerPort = %d, want %d", cfg.ServerPort, 3000)
	}
	if cfg.Env != "production" {
		t.Errorf("Env = %q, want %q", cfg.Env, "production")
	}
	if cfg.SiteURL != "https://joostry.example" {
		t.Errorf("SiteURL = %q, want %q", cfg.SiteURL, "https://joostry.example")
	}
}

func TestLoadWithoutStoreConfig(t *testing.T) {
	// Neither JOOSTRY_DB_PATH nor JOOSTRY_SESSION_SECRET set: the app
	// starts anyway and serves defaults.
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.StoreConfigured() {
		t.Error("StoreConfigured() should be false without DB path and session secret")
	}
}

func TestLoadRejectsShortSecret(t *testing.T) {
	t.Setenv("JOOSTRY_SESSION_SECRET", "too-short")

	if _, err := Load(); err == nil {
		t.Fatal("Load() should fail for a secret shorter than 32 bytes")
	}
}

func TestLoadRejectsKnownWeakSecret(t *testing.T) {
	t.Setenv("JOOSTRY_SESSION_SECRET", "change-me-to-32-byte-secret-key!")

	if _, err := Load(); err == nil {
		t.Fatal("Load() should reject a known default secret")
	}
}

func TestLoadAcceptsStrongSecret(t *testing.T) {
	t.Setenv("JOOSTRY_SESSION_SECRET", "Aq3$Zx9!Lm2#Vb7&Nc4@Ws8*Ed5^Rf1%")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(cfg.SessionSecret) < MinSessionSecretLength {
		t.Errorf("SessionSecret length = %d, want >= %d", len(cfg.SessionSecret), MinSessionSecretLength)
	}
}

func TestStoreConfigured(t *testing.T) {
	tests := []struct {
		name   string
		dbPath string
		secret string
		want   bool
	}{
		{"both set", "/data/joostry.db", strings.Repeat("s", 32), true},
		{"missing db path", "", strings.Repeat("s", 32), false},
		{"missing secret", "/data/joostry.db", "", false},
		{"both missing", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{DBPath: tt.dbPath, SessionSecret: tt.secret}
			if got := cfg.StoreConfigured(); got != tt.want {
				t.Errorf("StoreConfigured() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsDevelopment(t *testing.T) {
	if !(Config{Env: "development"}).IsDevelopment() {
		t.Error("development env should report IsDevelopment")
	}
	if (Config{Env: "production"}).IsDevelopment() {
		t.Error("production env should not report IsDevelopment")
	}
}

func TestServerAddr(t *testing.T) {
	cfg := Config{ServerHost: "127.0.0.1", ServerPort: 9000}
	if got := cfg.ServerAddr(); got != "127.0.0.1:9000" {
		t.Errorf("ServerAddr() = %q, want %q", got, "127.0.0.1:9000")
	}
}

func TestUseRedisCache(t *testing.T) {
	if (Config{}).UseRedisCache() {
		t.Error("UseRedisCache() should be false without a Redis URL")
	}
	if !(Config{RedisURL: "redis://localhost:6379/0"}).UseRedisCache() {
		t.Error("UseRedisCache() should be true with a Redis URL")
	}
}

func TestHasMinimumEntropy(t *testing.T) {
	tests := []struct {
		secret string
		want   bool
	}{
		{"Aa1!Aa1!Aa1!Aa1!Aa1!Aa1!Aa1!Aa1!", true},
		{"abcdefghijklmnopqrstuvwxyzabcdef", false},
		{"ABCDEF123456ABCDEF123456ABCDEF12", false},
		{"Abc123Abc123Abc123Abc123Abc12345", true},
	}

	for _, tt := range tests {
		if got := hasMinimumEntropy(tt.secret); got != tt.want {
			t.Errorf("hasMinimumEntropy(%q) = %v, want %v", tt.secret, got, tt.want)
		}
	}
}
