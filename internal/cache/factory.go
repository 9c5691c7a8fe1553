package cache

import (
	"log/slog"
	"time"
)

// Backend type names accepted by NewCache.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// CacheConfig selects and tunes the cache backend.
type CacheConfig struct {
	// Type is BackendMemory or BackendRedis.
	Type string

	// RedisURL is the Redis connection URL, e.g. redis://localhost:6379/0.
	// Ignored for the memory backend.
	RedisURL string

	// Prefix namespaces all Redis keys so several deployments can share
	// one Redis instance. Ignored for the memory backend.
	Prefix string

	// DefaultTTL applies to entries stored without an explicit TTL.
	DefaultTTL time.Duration

	// MaxSize caps the number of in-memory entries (0 = unlimited).
	MaxSize int

	// CleanupInterval controls how often the memory backend sweeps
	// expired entries.
	CleanupInterval time.Duration
}

// DefaultCacheConfig returns the memory-backed defaults.
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		Type:            BackendMemory,
		DefaultTTL:      time.Hour,
		MaxSize:         10000,
		CleanupInterval: time.Minute,
	}
}

// NewCache builds the configured backend. When Redis is requested but
// unreachable the memory backend is used instead, so the storefront
// keeps serving with a cold local cache rather than failing startup.
func NewCache(cfg CacheConfig) (Cacher, error) {
	if cfg.Type == BackendRedis && cfg.RedisURL != "" {
		rc, err := NewRedisCacheFromURL(cfg.RedisURL, cfg.Prefix, cfg.DefaultTTL)
		if err == nil {
			return rc, nil
		}
		slog.Warn("redis cache unavailable, falling back to memory",
			"url", SanitizeRedisURL(cfg.RedisURL), "error", err)
	}

	return NewMemoryCache(MemoryCacheOptions{
		DefaultTTL:      cfg.DefaultTTL,
		MaxSize:         cfg.MaxSize,
		CleanupInterval: cfg.CleanupInterval,
	}), nil
}

// NewDefaultCache builds a memory cache with the default settings.
func NewDefaultCache() Cacher {
	c, _ := NewCache(DefaultCacheConfig())
	return c
}
