package cache

import (
	"context"
	"encoding/json"
	"time"
)

// TypedCache layers a typed API over a byte-oriented Cacher. Values
// are stored as JSON, which keeps the memory and Redis backends
// interchangeable behind the same resolver code.
type TypedCache[T any] struct {
	backend    Cacher
	defaultTTL time.Duration
}

// NewTypedCache wraps backend with JSON encoding for T.
func NewTypedCache[T any](backend Cacher, defaultTTL time.Duration) *TypedCache[T] {
	return &TypedCache[T]{backend: backend, defaultTTL: defaultTTL}
}

// Get retrieves and decodes a value. A miss, a backend error, and an
// undecodable payload all report false; the caller re-resolves.
func (c *TypedCache[T]) Get(ctx context.Context, key string) (*T, bool) {
	data, err := c.backend.Get(ctx, key)
	if err != nil {
		return nil, false
	}
	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, false
	}
	return &value, true
}

// Set stores a value with the default TTL.
func (c *TypedCache[T]) Set(ctx context.Context, key string, value *T) error {
	return c.SetWithTTL(ctx, key, value, c.defaultTTL)
}

// SetWithTTL stores a value with a custom TTL.
func (c *TypedCache[T]) SetWithTTL(ctx context.Context, key string, value *T, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.backend.Set(ctx, key, data, ttl)
}

// Delete removes a key.
func (c *TypedCache[T]) Delete(ctx context.Context, key string) error {
	return c.backend.Delete(ctx, key)
}

// Has reports whether key holds a live entry.
func (c *TypedCache[T]) Has(ctx context.Context, key string) bool {
	ok, _ := c.backend.Has(ctx, key)
	return ok
}

// GetOrSet returns the cached value for key, or resolves it with fn
// and caches the result under the default TTL.
func (c *TypedCache[T]) GetOrSet(ctx context.Context, key string, fn func() (*T, error)) (*T, error) {
	return c.GetOrSetWithTTL(ctx, key, c.defaultTTL, fn)
}

// GetOrSetWithTTL is GetOrSet with an explicit TTL. A failed cache
// write is not reported: the resolved value is still good, the next
// call just resolves again.
func (c *TypedCache[T]) GetOrSetWithTTL(ctx context.Context, key string, ttl time.Duration, fn func() (*T, error)) (*T, error) {
	if value, ok := c.Get(ctx, key); ok {
		return value, nil
	}
	value, err := fn()
	if err != nil {
		return nil, err
	}
	_ = c.SetWithTTL(ctx, key, value, ttl)
	return value, nil
}
