// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package settings resolves the storefront's remote configuration: each
// domain (site identity, header, menu, footer, homepage sections, contact,
// slideshow) has a resolver that fetches its record, falls back to a
// complete default when the record is absent, and serves the default with
// an error when the store is unreachable. The storefront never renders a
// partial or nil settings object.
package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/joostry/joostry/internal/bus"
	"github.com/joostry/joostry/internal/cache"
	"github.com/joostry/joostry/internal/model"
	"github.com/joostry/joostry/internal/presentation"
	"github.com/joostry/joostry/internal/store"
)

// ErrStoreUnavailable is served alongside defaults when no database is
// configured. Callers render the defaults; the error is for logging and the
// admin health view.
var ErrStoreUnavailable = errors.New("settings store unavailable")

// Resolution carries a resolved settings value together with the error, if
// any, behind it. Settings is always usable: on failure it holds the
// domain's defaults.
type Resolution[T any] struct {
	Settings T
	Err      error
}

// Service resolves and caches all settings domains and applies the site
// domain's presentation side effects.
type Service struct {
	queries *store.Queries // nil when the store is not configured
	head    *presentation.Head
	events  *bus.Bus
	siteURL string

	cacheTTL  time.Duration
	site      *cache.TypedCache[model.SiteSettings]
	header    *cache.TypedCache[model.HeaderSettings]
	menu      *cache.TypedCache[[]model.MenuItem]
	footer    *cache.TypedCache[model.FooterSettings]
	sections  *cache.TypedCache[map[string]model.HomeSection]
	contact   *cache.TypedCache[model.ContactSettings]
	slideshow *cache.TypedCache[model.SlideshowSettings]

	manager *cache.Manager
}

// NewService creates the settings service. queries may be nil when the
// store is unconfigured; every resolver then serves defaults with
// ErrStoreUnavailable.
func NewService(queries *store.Queries, manager *cache.Manager, head *presentation.Head, events *bus.Bus, siteURL string, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = time.Hour
	}
	backend := manager.Backend()
	s := &Service{
		queries:   queries,
		head:      head,
		events:    events,
		siteURL:   siteURL,
		cacheTTL:  ttl,
		manager:   manager,
		site:      cache.NewTypedCache[model.SiteSettings](backend, ttl),
		header:    cache.NewTypedCache[model.HeaderSettings](backend, ttl),
		menu:      cache.NewTypedCache[[]model.MenuItem](backend, ttl),
		footer:    cache.NewTypedCache[model.FooterSettings](backend, ttl),
		sections:  cache.NewTypedCache[map[string]model.HomeSection](backend, ttl),
		contact:   cache.NewTypedCache[model.ContactSettings](backend, ttl),
		slideshow: cache.NewTypedCache[model.SlideshowSettings](backend, ttl),
	}
	s.wireBus()
	return s
}

// wireBus invalidates the matching cached domain when an admin write
// announces a settings change, so the next request re-resolves.
func (s *Service) wireBus() {
	if s.events == nil {
		return
	}
	sub := func(event, key string) {
		s.events.On(event, func(any) {
			ctx := context.Background()
			s.manager.InvalidateSettings(ctx, key)
			if key == cache.KeySiteSettings {
				// Re-resolve eagerly so theme and SEO update without
				// waiting for the next page view.
				s.ResolveSite(ctx)
			}
		})
	}
	sub(bus.EventSiteSettingsUpdated, cache.KeySiteSettings)
	sub(bus.EventHeaderSettingsUpdated, cache.KeyHeaderSettings)
	sub(bus.EventHeaderSettingsUpdated, cache.KeyMenuItems)
	sub(bus.EventFooterSettingsUpdated, cache.KeyFooterSettings)
	sub(bus.EventHomeSectionUpdated, cache.KeyHomeSections)
	sub(bus.EventContactSettingsUpdated, cache.KeyContactSettings)
	sub(bus.EventSlideshowSettingsUpdated, cache.KeySlideshowSettings)
}

// normalizeSite fills any blank identity or theme fields from the defaults,
// so downstream consumers always see complete values.
func normalizeSite(ss model.SiteSettings) model.SiteSettings {
	def := DefaultSiteSettings()
	if ss.SiteName == "" {
		ss.SiteName = def.SiteName
	}
	if ss.Description == "" {
		ss.Description = def.Description
	}
	if ss.PrimaryColor == "" {
		ss.PrimaryColor = def.PrimaryColor
	}
	if ss.SecondaryColor == "" {
		ss.SecondaryColor = def.SecondaryColor
	}
	if ss.AccentColor == "" {
		ss.AccentColor = def.AccentColor
	}
	if ss.MetaTitle == "" {
		ss.MetaTitle = def.MetaTitle
	}
	if ss.MetaDescription == "" {
		ss.MetaDescription = def.MetaDescription
	}
	if ss.MetaKeywords == "" {
		ss.MetaKeywords = def.MetaKeywords
	}
	return ss
}

// SiteURL returns the canonical base URL used for absolute links.
func (s *Service) SiteURL() string {
	return s.siteURL
}

// Head exposes the shared presentation head for page rendering.
func (s *Service) Head() *presentation.Head {
	return s.head
}

// applyPresentation pushes the resolved site identity into the shared head:
// theme custom properties and utility classes, the SEO tag set, and the
// favicon. Runs once per successful resolution, not per request.
func (s *Service) applyPresentation(ss model.SiteSettings) {
	if s.head == nil {
		return
	}
	s.head.ApplyTheme(presentation.ThemeColors{
		Primary:   ss.PrimaryColor,
		Secondary: ss.SecondaryColor,
		Accent:    ss.AccentColor,
	})
	s.head.ApplySEO(presentation.SEOFields{
		Title:         ss.MetaTitle,
		Description:   ss.MetaDescription,
		Keywords:      ss.MetaKeywords,
		Author:        ss.SiteName,
		OGTitle:       ss.MetaTitle,
		OGDescription: ss.MetaDescription,
		OGImage:       ss.LogoURL,
		OGURL:         s.siteURL,
		OGType:        "website",
		OGSiteName:    ss.SiteName,
		OGLocale:      "ar_SA",
		OGLocaleAlt:   "en_US",
		TwitterCard:   "summary_large_image",
		Robots:        "index,follow",
		Canonical:     s.siteURL,
	})
	s.head.ApplyFavicon(ss.FaviconURL)
}

// ResolveSite resolves the site identity/theme singleton. An absent record
// resolves to the normalized defaults without error; a fetch failure serves
// the defaults with the error attached. Each successful resolution applies
// the presentation side effects exactly once.
func (s *Service) ResolveSite(ctx context.Context) Resolution[model.SiteSettings] {
	if s.queries == nil {
		return Resolution[model.SiteSettings]{Settings: DefaultSiteSettings(), Err: ErrStoreUnavailable}
	}
	v, err := s.site.GetOrSet(ctx, cache.KeySiteSettings, func() (*model.SiteSettings, error) {
		ss, err := s.queries.GetSiteSettings(ctx)
		if errors.Is(err, sql.ErrNoRows) {
			ss = model.SiteSettings{}
		} else if err != nil {
			return nil, fmt.Errorf("fetching site settings: %w", err)
		}
		ss = normalizeSite(ss)
		s.applyPresentation(ss)
		return &ss, nil
	})
	if err != nil {
		slog.Error("resolving site settings", "error", err)
		return Resolution[model.SiteSettings]{Settings: DefaultSiteSettings(), Err: err}
	}
	return Resolution[model.SiteSettings]{Settings: *v}
}

// ResolveHeader resolves the header layout singleton.
func (s *Service) ResolveHeader(ctx context.Context) Resolution[model.HeaderSettings] {
	if s.queries == nil {
		return Resolution[model.HeaderSettings]{Settings: DefaultHeaderSettings(), Err: ErrStoreUnavailable}
	}
	v, err := s.header.GetOrSet(ctx, cache.KeyHeaderSettings, func() (*model.HeaderSettings, error) {
		hs, err := s.queries.GetHeaderSettings(ctx)
		if errors.Is(err, sql.ErrNoRows) {
			hs = DefaultHeaderSettings()
		} else if err != nil {
			return nil, fmt.Errorf("fetching header settings: %w", err)
		}
		return &hs, nil
	})
	if err != nil {
		slog.Error("resolving header settings", "error", err)
		return Resolution[model.HeaderSettings]{Settings: DefaultHeaderSettings(), Err: err}
	}
	return Resolution[model.HeaderSettings]{Settings: *v}
}

// ResolveMenu resolves the visible navigation items sorted by position.
// An empty configured menu resolves to the default navigation.
func (s *Service) ResolveMenu(ctx context.Context) Resolution[[]model.MenuItem] {
	if s.queries == nil {
		return Resolution[[]model.MenuItem]{Settings: DefaultMenuItems(), Err: ErrStoreUnavailable}
	}
	v, err := s.menu.GetOrSet(ctx, cache.KeyMenuItems, func() (*[]model.MenuItem, error) {
		items, err := s.queries.ListVisibleMenuItems(ctx)
		if err != nil {
			return nil, fmt.Errorf("fetching menu items: %w", err)
		}
		if len(items) == 0 {
			items = DefaultMenuItems()
		}
		sort.SliceStable(items, func(i, j int) bool { return items[i].Position < items[j].Position })
		return &items, nil
	})
	if err != nil {
		slog.Error("resolving menu items", "error", err)
		return Resolution[[]model.MenuItem]{Settings: DefaultMenuItems(), Err: err}
	}
	return Resolution[[]model.MenuItem]{Settings: *v}
}

// ResolveFooter resolves the footer singleton.
func (s *Service) ResolveFooter(ctx context.Context) Resolution[model.FooterSettings] {
	if s.queries == nil {
		return Resolution[model.FooterSettings]{Settings: DefaultFooterSettings(), Err: ErrStoreUnavailable}
	}
	v, err := s.footer.GetOrSet(ctx, cache.KeyFooterSettings, func() (*model.FooterSettings, error) {
		fs, err := s.queries.GetFooterSettings(ctx)
		if errors.Is(err, sql.ErrNoRows) {
			fs = DefaultFooterSettings()
		} else if err != nil {
			return nil, fmt.Errorf("fetching footer settings: %w", err)
		}
		return &fs, nil
	})
	if err != nil {
		slog.Error("resolving footer settings", "error", err)
		return Resolution[model.FooterSettings]{Settings: DefaultFooterSettings(), Err: err}
	}
	return Resolution[model.FooterSettings]{Settings: *v}
}

// ResolveHomeSections resolves every homepage section design record, keyed
// by section name. Sections with no record resolve to their defaults.
func (s *Service) ResolveHomeSections(ctx context.Context) Resolution[map[string]model.HomeSection] {
	if s.queries == nil {
		return Resolution[map[string]model.HomeSection]{Settings: defaultHomeSections(), Err: ErrStoreUnavailable}
	}
	v, err := s.sections.GetOrSet(ctx, cache.KeyHomeSections, func() (*map[string]model.HomeSection, error) {
		records, err := s.queries.ListHomeSections(ctx)
		if err != nil {
			return nil, fmt.Errorf("fetching home sections: %w", err)
		}
		sections := defaultHomeSections()
		for _, r := range records {
			sections[r.Section] = r
		}
		return &sections, nil
	})
	if err != nil {
		slog.Error("resolving home sections", "error", err)
		return Resolution[map[string]model.HomeSection]{Settings: defaultHomeSections(), Err: err}
	}
	return Resolution[map[string]model.HomeSection]{Settings: *v}
}

func defaultHomeSections() map[string]model.HomeSection {
	sections := make(map[string]model.HomeSection)
	for _, name := range []string{
		model.SectionHero, model.SectionFeatured, model.SectionCategories,
		model.SectionCustomerReviews, model.SectionSlideshow, model.SectionAbout,
	} {
		sections[name] = DefaultHomeSection(name)
	}
	return sections
}

// ResolveContact resolves the contact page singleton.
func (s *Service) ResolveContact(ctx context.Context) Resolution[model.ContactSettings] {
	if s.queries == nil {
		return Resolution[model.ContactSettings]{Settings: DefaultContactSettings(), Err: ErrStoreUnavailable}
	}
	v, err := s.contact.GetOrSet(ctx, cache.KeyContactSettings, func() (*model.ContactSettings, error) {
		cs, err := s.queries.GetContactSettings(ctx)
		if errors.Is(err, sql.ErrNoRows) {
			cs = DefaultContactSettings()
		} else if err != nil {
			return nil, fmt.Errorf("fetching contact settings: %w", err)
		}
		return &cs, nil
	})
	if err != nil {
		slog.Error("resolving contact settings", "error", err)
		return Resolution[model.ContactSettings]{Settings: DefaultContactSettings(), Err: err}
	}
	return Resolution[model.ContactSettings]{Settings: *v}
}

// ResolveSlideshow resolves the slideshow behaviour singleton.
func (s *Service) ResolveSlideshow(ctx context.Context) Resolution[model.SlideshowSettings] {
	if s.queries == nil {
		return Resolution[model.SlideshowSettings]{Settings: DefaultSlideshowSettings(), Err: ErrStoreUnavailable}
	}
	v, err := s.slideshow.GetOrSet(ctx, cache.KeySlideshowSettings, func() (*model.SlideshowSettings, error) {
		ss, err := s.queries.GetSlideshowSettings(ctx)
		if errors.Is(err, sql.ErrNoRows) {
			ss = DefaultSlideshowSettings()
		} else if err != nil {
			return nil, fmt.Errorf("fetching slideshow settings: %w", err)
		}
		return &ss, nil
	})
	if err != nil {
		slog.Error("resolving slideshow settings", "error", err)
		return Resolution[model.SlideshowSettings]{Settings: DefaultSlideshowSettings(), Err: err}
	}
	return Resolution[model.SlideshowSettings]{Settings: *v}
}

// Invalidate drops every cached settings domain and eagerly re-resolves the
// site domain so the presentation state refreshes immediately.
func (s *Service) Invalidate(ctx context.Context) {
	s.manager.InvalidateAllSettings(ctx)
	s.ResolveSite(ctx)
}
