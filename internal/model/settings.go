// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// Text alignment values for homepage sections.
const (
	AlignCenter = "center"
	AlignRight  = "right"
	AlignLeft   = "left"
)

// Font size tiers for homepage sections.
const (
	FontSizeSmall  = "small"
	FontSizeMedium = "medium"
	FontSizeLarge  = "large"
)

// Padding tiers for homepage sections.
const (
	PaddingSmall  = "small"
	PaddingNormal = "normal"
	PaddingLarge  = "large"
)

// Homepage section names. Each name identifies at most one HomeSection record.
const (
	SectionHero            = "hero"
	SectionFeatured        = "featured_products"
	SectionCategories      = "categories"
	SectionCustomerReviews = "customer_reviews"
	SectionSlideshow       = "slideshow"
	SectionAbout           = "about"
)

// HomeSectionNames lists every homepage section in display order.
var HomeSectionNames = []string{
	SectionSlideshow,
	SectionHero,
	SectionFeatured,
	SectionCategories,
	SectionCustomerReviews,
	SectionAbout,
}

// IsHomeSection reports whether name is a known homepage section.
func IsHomeSection(name string) bool {
	for _, n := range HomeSectionNames {
		if n == name {
			return true
		}
	}
	return false
}

// SiteSettings is the singleton site identity and theme record.
// At most one row exists; when absent, defaults are synthesized by the
// settings resolver, never null-propagated into templates.
type SiteSettings struct {
	ID              int64
	SiteName        string
	Description     string
	LogoURL         string
	FaviconURL      string
	PrimaryColor    string
	SecondaryColor  string
	AccentColor     string
	Phone           string
	Email           string
	Address         string
	WorkingHours    string
	FacebookURL     string
	InstagramURL    string
	TwitterURL      string
	WhatsappURL     string
	MetaTitle       string
	MetaDescription string
	MetaKeywords    string
	MaintenanceMode bool
	UpdatedAt       time.Time
}

// HeaderSettings is the singleton header layout record.
type HeaderSettings struct {
	ID              int64
	LogoURL         string
	LogoPosition    string // "right" (default for RTL), "center", "left"
	TextColor       string
	BackgroundColor string
	FontFamily      string
	FontSize        string
	UpdatedAt       time.Time
}

// MenuItem is one entry of the header navigation menu.
// Items render sorted by Position ascending and only when IsVisible.
type MenuItem struct {
	ID        int64
	Label     string // primary (Arabic) label
	LabelEn   string // optional English variant
	URL       string
	IsVisible bool
	Position  int64
}

// DisplayLabel resolves the item label for a language code, falling back
// through the Arabic label, then the English variant, then empty string.
func (m MenuItem) DisplayLabel(lang string) string {
	if lang == "en" && m.LabelEn != "" {
		return m.LabelEn
	}
	if m.Label != "" {
		return m.Label
	}
	return m.LabelEn
}

// FooterSettings is the singleton footer record. The five quick-link pairs
// are sparse: any pair may be empty and is skipped, not rendered blank.
type FooterSettings struct {
	ID               int64
	CompanyName      string
	Description      string
	Phone            string
	Email            string
	Address          string
	QuickLink1Text   string
	QuickLink1URL    string
	QuickLink2Text   string
	QuickLink2URL    string
	QuickLink3Text   string
	QuickLink3URL    string
	QuickLink4Text   string
	QuickLink4URL    string
	QuickLink5Text   string
	QuickLink5URL    string
	FacebookURL      string
	InstagramURL     string
	TwitterURL       string
	BackgroundColor  string
	TextColor        string
	LinkColor        string
	CopyrightText    string
	CopyrightVisible bool
	UpdatedAt        time.Time
}

// QuickLink is a resolved footer quick-link pair.
type QuickLink struct {
	Text string
	URL  string
}

// QuickLinks returns the non-empty quick-link pairs in declared order.
// A pair needs both text and URL to render.
func (f FooterSettings) QuickLinks() []QuickLink {
	pairs := [][2]string{
		{f.QuickLink1Text, f.QuickLink1URL},
		{f.QuickLink2Text, f.QuickLink2URL},
		{f.QuickLink3Text, f.QuickLink3URL},
		{f.QuickLink4Text, f.QuickLink4URL},
		{f.QuickLink5Text, f.QuickLink5URL},
	}
	var links []QuickLink
	for _, p := range pairs {
		if p[0] != "" && p[1] != "" {
			links = append(links, QuickLink{Text: p[0], URL: p[1]})
		}
	}
	return links
}

// HomeSection is the per-section presentation record for the homepage.
// One record per section name; a missing record or IsVisible=false falls
// back to that section's hardcoded default presentation (slideshow excepted,
// which renders nothing when disabled).
type HomeSection struct {
	ID              int64
	Section         string
	IsVisible       bool
	BackgroundColor string
	TextColor       string
	TextAlignment   string // center/right/left
	FontSize        string // small/medium/large
	PaddingTop      string // small/normal/large
	PaddingBottom   string // small/normal/large
	CustomCSS       string
	UpdatedAt       time.Time
}

// ContactSettings is the singleton contact page record.
type ContactSettings struct {
	ID           int64
	Title        string
	Subtitle     string
	Phone        string
	Email        string
	Address      string
	WorkingHours string
	MapEmbedURL  string
	ShowForm     bool
	UpdatedAt    time.Time
}

// SlideshowSettings is the singleton slideshow behaviour record.
type SlideshowSettings struct {
	ID             int64
	IsEnabled      bool
	Autoplay       bool
	IntervalMs     int64
	ShowNav        bool
	ShowIndicators bool
	Height         string
	UpdatedAt      time.Time
	UpdatedBy      sql.NullInt64
}
