package cache

import (
	"context"
	"log/slog"
)

// Cache key prefixes. Settings keys hold one resolved record per domain;
// catalog keys hold fetched storefront lists.
const (
	KeySiteSettings      = "settings:site"
	KeyHeaderSettings    = "settings:header"
	KeyMenuItems         = "settings:menu"
	KeyFooterSettings    = "settings:footer"
	KeyHomeSections      = "settings:home_sections"
	KeyContactSettings   = "settings:contact"
	KeySlideshowSettings = "settings:slideshow"

	KeyFeaturedProducts = "catalog:featured"
	KeyActiveCategories = "catalog:categories"
	KeyVisibleReviews   = "catalog:reviews"
	KeySlideshowImages  = "catalog:slideshow_images"
	KeySliderImages     = "catalog:slider_images"
)

var settingsKeys = []string{
	KeySiteSettings, KeyHeaderSettings, KeyMenuItems, KeyFooterSettings,
	KeyHomeSections, KeyContactSettings, KeySlideshowSettings,
}

var catalogKeys = []string{
	KeyFeaturedProducts, KeyActiveCategories, KeyVisibleReviews,
	KeySlideshowImages, KeySliderImages,
}

// Manager owns the cache backend shared by the settings resolvers and the
// catalog fetchers and provides targeted invalidation.
type Manager struct {
	backend Cacher
}

// NewManager creates a manager over the given backend.
func NewManager(backend Cacher) *Manager {
	return &Manager{backend: backend}
}

// Backend returns the shared cache backend.
func (m *Manager) Backend() Cacher {
	return m.backend
}

// Stop closes the backend.
func (m *Manager) Stop() {
	if err := m.backend.Close(); err != nil {
		slog.Warn("closing cache backend", "error", err)
	}
}

// InvalidateSettings drops one resolved settings record. Resolvers refetch
// on the next request.
func (m *Manager) InvalidateSettings(ctx context.Context, key string) {
	if err := m.backend.Delete(ctx, key); err != nil {
		slog.Warn("invalidating settings cache", "key", key, "error", err)
	}
}

// InvalidateAllSettings drops every resolved settings record.
func (m *Manager) InvalidateAllSettings(ctx context.Context) {
	for _, key := range settingsKeys {
		m.InvalidateSettings(ctx, key)
	}
}

// InvalidateCatalog drops the cached storefront lists. Call after any
// product, category, review or slide write.
func (m *Manager) InvalidateCatalog(ctx context.Context) {
	for _, key := range catalogKeys {
		if err := m.backend.Delete(ctx, key); err != nil {
			slog.Warn("invalidating catalog cache", "key", key, "error", err)
		}
	}
}

// ClearAll clears every cache and resets statistics.
func (m *Manager) ClearAll(ctx context.Context) {
	if err := m.backend.Clear(ctx); err != nil {
		slog.Warn("clearing cache backend", "error", err)
	}
	if sp, ok := m.backend.(StatsProvider); ok {
		sp.ResetStats()
	}
	slog.Info("caches cleared")
}

// BackendStats returns statistics for the shared backend when available.
func (m *Manager) BackendStats() (Stats, bool) {
	if sp, ok := m.backend.(StatsProvider); ok {
		return sp.Stats(), true
	}
	return Stats{}, false
}
