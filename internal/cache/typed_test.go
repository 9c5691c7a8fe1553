// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

type testProduct struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Slug  string  `json:"slug"`
	Price float64 `json:"price"`
}

func newTypedTestCache(t *testing.T) *TypedCache[testProduct] {
	t.Helper()
	backend := NewSimpleMemoryCache(time.Hour)
	t.Cleanup(func() { _ = backend.Close() })
	return NewTypedCache[testProduct](backend, time.Hour)
}

func TestTypedCacheRoundTrip(t *testing.T) {
	tc := newTypedTestCache(t)
	ctx := context.Background()

	orange := &testProduct{ID: 1, Name: "عصير برتقال", Slug: "fresh-orange", Price: 12}
	if err := tc.Set(ctx, "product:fresh-orange", orange); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, ok := tc.Get(ctx, "product:fresh-orange")
	if !ok {
		t.Fatal("Get should find the cached product")
	}
	if got.Name != orange.Name || got.Slug != orange.Slug || got.Price != orange.Price {
		t.Errorf("Get = %+v, want %+v", got, orange)
	}

	if !tc.Has(ctx, "product:fresh-orange") {
		t.Error("Has should report true")
	}

	if err := tc.Delete(ctx, "product:fresh-orange"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok := tc.Get(ctx, "product:fresh-orange"); ok {
		t.Error("Get after Delete should miss")
	}
}

func TestTypedCacheMiss(t *testing.T) {
	tc := newTypedTestCache(t)

	if _, ok := tc.Get(context.Background(), "product:mango"); ok {
		t.Fatal("empty cache should miss")
	}
}

func TestTypedCacheUndecodablePayloadIsMiss(t *testing.T) {
	backend := NewSimpleMemoryCache(time.Hour)
	t.Cleanup(func() { _ = backend.Close() })
	ctx := context.Background()

	_ = backend.Set(ctx, "product:bad", []byte("not json"), 0)

	tc := NewTypedCache[testProduct](backend, time.Hour)
	if _, ok := tc.Get(ctx, "product:bad"); ok {
		t.Fatal("corrupt payload should read as a miss, not an error")
	}
}

func TestTypedCacheGetOrSetResolvesOnce(t *testing.T) {
	tc := newTypedTestCache(t)
	ctx := context.Background()

	calls := 0
	resolve := func() (*testProduct, error) {
		calls++
		return &testProduct{ID: 2, Name: "عصير مانجو", Slug: "mango", Price: 15}, nil
	}

	first, err := tc.GetOrSet(ctx, "product:mango", resolve)
	if err != nil {
		t.Fatalf("GetOrSet: %v", err)
	}
	second, err := tc.GetOrSet(ctx, "product:mango", resolve)
	if err != nil {
		t.Fatalf("GetOrSet (cached): %v", err)
	}

	if calls != 1 {
		t.Fatalf("resolver ran %d times, want 1", calls)
	}
	if first.Slug != second.Slug {
		t.Fatalf("cached value diverged: %+v vs %+v", first, second)
	}
}

func TestTypedCacheGetOrSetPropagatesResolverError(t *testing.T) {
	tc := newTypedTestCache(t)

	wantErr := errors.New("catalog unavailable")
	_, err := tc.GetOrSet(context.Background(), "product:lemon-mint", func() (*testProduct, error) {
		return nil, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("GetOrSet error = %v, want %v", err, wantErr)
	}

	// A failed resolution must not poison the key.
	got, err := tc.GetOrSet(context.Background(), "product:lemon-mint", func() (*testProduct, error) {
		return &testProduct{ID: 3, Slug: "lemon-mint"}, nil
	})
	if err != nil || got.Slug != "lemon-mint" {
		t.Fatalf("retry = (%+v, %v)", got, err)
	}
}

func TestTypedCacheGetOrSetWithTTL(t *testing.T) {
	tc := newTypedTestCache(t)
	ctx := context.Background()

	_, err := tc.GetOrSetWithTTL(ctx, "product:tropical-mix", 30*time.Millisecond, func() (*testProduct, error) {
		return &testProduct{ID: 4, Slug: "tropical-mix"}, nil
	})
	if err != nil {
		t.Fatalf("GetOrSetWithTTL: %v", err)
	}

	time.Sleep(50 * time.Millisecond)

	calls := 0
	_, err = tc.GetOrSetWithTTL(ctx, "product:tropical-mix", time.Hour, func() (*testProduct, error) {
		calls++
		return &testProduct{ID: 4, Slug: "tropical-mix"}, nil
	})
	if err != nil {
		t.Fatalf("GetOrSetWithTTL after expiry: %v", err)
	}
	if calls != 1 {
		t.Fatalf("resolver should run again after TTL expiry, ran %d times", calls)
	}
}

func TestTypedCacheSliceValues(t *testing.T) {
	backend := NewSimpleMemoryCache(time.Hour)
	t.Cleanup(func() { _ = backend.Close() })
	tc := NewTypedCache[[]testProduct](backend, time.Hour)
	ctx := context.Background()

	list := &[]testProduct{
		{ID: 1, Slug: "fresh-orange"},
		{ID: 2, Slug: "mango"},
	}
	if err := tc.Set(ctx, "catalog:featured", list); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, ok := tc.Get(ctx, "catalog:featured")
	if !ok || len(*got) != 2 || (*got)[1].Slug != "mango" {
		t.Fatalf("Get = (%+v, %v)", got, ok)
	}
}
