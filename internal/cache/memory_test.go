package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func newTestCache(t *testing.T) *MemoryCache {
	t.Helper()
	c := NewMemoryCache(MemoryCacheOptions{
		DefaultTTL: time.Hour,
		MaxSize:    100,
	})
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestMemoryCacheRoundTrip(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, "settings:site", []byte(`{"site_name":"جوستري"}`), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, err := c.Get(ctx, "settings:site")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != `{"site_name":"جوستري"}` {
		t.Errorf("Get = %s", got)
	}

	has, err := c.Has(ctx, "settings:site")
	if err != nil || !has {
		t.Fatalf("Has = (%v, %v), want (true, nil)", has, err)
	}

	if err := c.Delete(ctx, "settings:site"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := c.Get(ctx, "settings:site"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Get after Delete = %v, want ErrCacheMiss", err)
	}
}

func TestMemoryCacheMiss(t *testing.T) {
	c := newTestCache(t)

	if _, err := c.Get(context.Background(), "catalog:products"); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("Get on empty cache = %v, want ErrCacheMiss", err)
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, "catalog:slider", []byte("frames"), 30*time.Millisecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, err := c.Get(ctx, "catalog:slider"); err != nil {
		t.Fatalf("Get before expiry: %v", err)
	}

	time.Sleep(50 * time.Millisecond)

	if _, err := c.Get(ctx, "catalog:slider"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Get after expiry = %v, want ErrCacheMiss", err)
	}
	if has, _ := c.Has(ctx, "catalog:slider"); has {
		t.Error("Has should report false after expiry")
	}
}

func TestMemoryCacheValueIsolation(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	original := []byte("header")
	_ = c.Set(ctx, "settings:header", original, 0)
	original[0] = 'X'

	got, err := c.Get(ctx, "settings:header")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != "header" {
		t.Errorf("stored value changed with caller's slice: %s", got)
	}

	got[0] = 'Y'
	again, _ := c.Get(ctx, "settings:header")
	if string(again) != "header" {
		t.Errorf("returned value aliases the stored one: %s", again)
	}
}

func TestMemoryCacheClear(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	_ = c.Set(ctx, "settings:site", []byte("a"), 0)
	_ = c.Set(ctx, "catalog:products", []byte("b"), 0)

	if err := c.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if s := c.Stats(); s.Items != 0 || s.Size != 0 {
		t.Errorf("Stats after Clear = %+v, want empty", s)
	}
}

func TestMemoryCacheDeleteByPrefix(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	_ = c.Set(ctx, "settings:site", []byte("a"), 0)
	_ = c.Set(ctx, "settings:footer", []byte("b"), 0)
	_ = c.Set(ctx, "catalog:products", []byte("c"), 0)

	if err := c.DeleteByPrefix(ctx, "settings:"); err != nil {
		t.Fatalf("DeleteByPrefix: %v", err)
	}
	if has, _ := c.Has(ctx, "settings:site"); has {
		t.Error("settings:site should be gone")
	}
	if has, _ := c.Has(ctx, "catalog:products"); !has {
		t.Error("catalog:products should survive")
	}
}

func TestMemoryCacheClosed(t *testing.T) {
	c := NewSimpleMemoryCache(time.Hour)
	ctx := context.Background()
	_ = c.Close()

	if _, err := c.Get(ctx, "k"); !errors.Is(err, ErrCacheClosed) {
		t.Errorf("Get after Close = %v", err)
	}
	if err := c.Set(ctx, "k", []byte("v"), 0); !errors.Is(err, ErrCacheClosed) {
		t.Errorf("Set after Close = %v", err)
	}
	// Close is idempotent.
	if err := c.Close(); err != nil {
		t.Errorf("second Close = %v", err)
	}
}

func TestMemoryCacheStats(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	_ = c.Set(ctx, "catalog:products", []byte("juice"), 0)
	_, _ = c.Get(ctx, "catalog:products")
	_, _ = c.Get(ctx, "catalog:products")
	_, _ = c.Get(ctx, "catalog:reviews")

	s := c.Stats()
	if s.Hits != 2 || s.Misses != 1 || s.Sets != 1 {
		t.Fatalf("Stats = %+v, want 2 hits, 1 miss, 1 set", s)
	}
	if s.Items != 1 || s.Size != int64(len("juice")) {
		t.Fatalf("Stats = %+v, want 1 item of %d bytes", s, len("juice"))
	}

	c.ResetStats()
	s = c.Stats()
	if s.Hits != 0 || s.Misses != 0 || s.Sets != 0 {
		t.Fatalf("Stats after reset = %+v", s)
	}
}

func TestMemoryCacheOverwriteAdjustsSize(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	_ = c.Set(ctx, "settings:menu", []byte("1234567890"), 0)
	_ = c.Set(ctx, "settings:menu", []byte("12"), 0)

	if s := c.Stats(); s.Size != 2 || s.Items != 1 {
		t.Fatalf("Stats after overwrite = %+v, want 1 item of 2 bytes", s)
	}
}

func TestMemoryCacheConcurrentAccess(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := []string{"settings:site", "catalog:products", "catalog:reviews", "settings:footer"}[n%4]
			for j := 0; j < 200; j++ {
				_ = c.Set(ctx, key, []byte("v"), 0)
				_, _ = c.Get(ctx, key)
				_, _ = c.Has(ctx, key)
			}
		}(i)
	}
	wg.Wait()
}
