// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package catalog fetches storefront content collections: products,
// categories, customer reviews and slides. Each fetcher applies a fixed
// filter and ordering; a failed fetch yields an empty slice plus the error,
// so render code never branches on nil.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/joostry/joostry/internal/bus"
	"github.com/joostry/joostry/internal/cache"
	"github.com/joostry/joostry/internal/model"
	"github.com/joostry/joostry/internal/store"
)

// Homepage teaser limits.
const (
	FeaturedProductsLimit = 6
	VisibleReviewsLimit   = 8
)

// Fetcher reads storefront collections through the shared cache.
type Fetcher struct {
	queries *store.Queries // nil when the store is not configured
	manager *cache.Manager

	products   *cache.TypedCache[[]model.Product]
	categories *cache.TypedCache[[]model.Category]
	reviews    *cache.TypedCache[[]model.CustomerReview]
	slider     *cache.TypedCache[[]model.SliderImage]
	slideshow  *cache.TypedCache[[]model.SlideshowImage]
}

// NewFetcher creates a fetcher and wires cache invalidation to the catalog
// and review change events.
func NewFetcher(queries *store.Queries, manager *cache.Manager, events *bus.Bus, ttl time.Duration) *Fetcher {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	backend := manager.Backend()
	f := &Fetcher{
		queries:    queries,
		manager:    manager,
		products:   cache.NewTypedCache[[]model.Product](backend, ttl),
		categories: cache.NewTypedCache[[]model.Category](backend, ttl),
		reviews:    cache.NewTypedCache[[]model.CustomerReview](backend, ttl),
		slider:     cache.NewTypedCache[[]model.SliderImage](backend, ttl),
		slideshow:  cache.NewTypedCache[[]model.SlideshowImage](backend, ttl),
	}
	if events != nil {
		invalidate := func(any) { f.manager.InvalidateCatalog(context.Background()) }
		events.On(bus.EventCatalogUpdated, invalidate)
		events.On(bus.EventReviewsUpdated, invalidate)
	}
	return f
}

// FeaturedProducts returns up to FeaturedProductsLimit active featured
// products for the homepage teaser.
func (f *Fetcher) FeaturedProducts(ctx context.Context) ([]model.Product, error) {
	if f.queries == nil {
		return []model.Product{}, nil
	}
	v, err := f.products.GetOrSet(ctx, cache.KeyFeaturedProducts, func() (*[]model.Product, error) {
		items, err := f.queries.ListFeaturedProducts(ctx, FeaturedProductsLimit)
		if err != nil {
			return nil, fmt.Errorf("fetching featured products: %w", err)
		}
		return &items, nil
	})
	if err != nil {
		slog.Error("featured products fetch failed", "error", err)
		return []model.Product{}, err
	}
	return *v, nil
}

// ActiveProducts returns every active product for the products page.
func (f *Fetcher) ActiveProducts(ctx context.Context) ([]model.Product, error) {
	if f.queries == nil {
		return []model.Product{}, nil
	}
	items, err := f.queries.ListActiveProducts(ctx, 0)
	if err != nil {
		slog.Error("active products fetch failed", "error", err)
		return []model.Product{}, err
	}
	return items, nil
}

// ProductsByCategory returns the active products of one category.
func (f *Fetcher) ProductsByCategory(ctx context.Context, categoryID int64) ([]model.Product, error) {
	if f.queries == nil {
		return []model.Product{}, nil
	}
	items, err := f.queries.ListProductsByCategory(ctx, categoryID)
	if err != nil {
		slog.Error("category products fetch failed", "category_id", categoryID, "error", err)
		return []model.Product{}, err
	}
	return items, nil
}

// ActiveCategories returns the active categories for the homepage grid and
// the products page filter.
func (f *Fetcher) ActiveCategories(ctx context.Context) ([]model.Category, error) {
	if f.queries == nil {
		return []model.Category{}, nil
	}
	v, err := f.categories.GetOrSet(ctx, cache.KeyActiveCategories, func() (*[]model.Category, error) {
		items, err := f.queries.ListActiveCategories(ctx)
		if err != nil {
			return nil, fmt.Errorf("fetching categories: %w", err)
		}
		return &items, nil
	})
	if err != nil {
		slog.Error("categories fetch failed", "error", err)
		return []model.Category{}, err
	}
	return *v, nil
}

// VisibleReviews returns up to VisibleReviewsLimit approved visible reviews
// ordered by display order.
func (f *Fetcher) VisibleReviews(ctx context.Context) ([]model.CustomerReview, error) {
	if f.queries == nil {
		return []model.CustomerReview{}, nil
	}
	v, err := f.reviews.GetOrSet(ctx, cache.KeyVisibleReviews, func() (*[]model.CustomerReview, error) {
		items, err := f.queries.ListVisibleReviews(ctx, VisibleReviewsLimit)
		if err != nil {
			return nil, fmt.Errorf("fetching reviews: %w", err)
		}
		return &items, nil
	})
	if err != nil {
		slog.Error("reviews fetch failed", "error", err)
		return []model.CustomerReview{}, err
	}
	return *v, nil
}

// ActiveSliderImages returns the active promotional banners in display order.
func (f *Fetcher) ActiveSliderImages(ctx context.Context) ([]model.SliderImage, error) {
	if f.queries == nil {
		return []model.SliderImage{}, nil
	}
	v, err := f.slider.GetOrSet(ctx, cache.KeySliderImages, func() (*[]model.SliderImage, error) {
		items, err := f.queries.ListActiveSliderImages(ctx)
		if err != nil {
			return nil, fmt.Errorf("fetching slider images: %w", err)
		}
		return &items, nil
	})
	if err != nil {
		slog.Error("slider images fetch failed", "error", err)
		return []model.SliderImage{}, err
	}
	return *v, nil
}

// ActiveSlideshowImages returns the active hero slides in display order.
func (f *Fetcher) ActiveSlideshowImages(ctx context.Context) ([]model.SlideshowImage, error) {
	if f.queries == nil {
		return []model.SlideshowImage{}, nil
	}
	v, err := f.slideshow.GetOrSet(ctx, cache.KeySlideshowImages, func() (*[]model.SlideshowImage, error) {
		items, err := f.queries.ListActiveSlideshowImages(ctx)
		if err != nil {
			return nil, fmt.Errorf("fetching slideshow images: %w", err)
		}
		return &items, nil
	})
	if err != nil {
		slog.Error("slideshow images fetch failed", "error", err)
		return []model.SlideshowImage{}, err
	}
	return *v, nil
}

// ProductBySlug fetches one active product for its detail page.
func (f *Fetcher) ProductBySlug(ctx context.Context, slug string) (model.Product, error) {
	if f.queries == nil {
		return model.Product{}, ErrUnavailable
	}
	return f.queries.GetProductBySlug(ctx, slug)
}

// CategoryBySlug fetches one category for its listing page.
func (f *Fetcher) CategoryBySlug(ctx context.Context, slug string) (model.Category, error) {
	if f.queries == nil {
		return model.Category{}, ErrUnavailable
	}
	return f.queries.GetCategoryBySlug(ctx, slug)
}

// ErrUnavailable reports that the catalog store is not configured.
var ErrUnavailable = fmt.Errorf("catalog store unavailable")
