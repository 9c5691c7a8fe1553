// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package seo builds the crawler-facing text surfaces of the storefront:
// the XML sitemap, robots.txt, and security.txt.
package seo

import (
	"encoding/xml"
	"time"
)

// XMLNamespace is the sitemap XML namespace.
const XMLNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// ChangeFreq represents the change frequency of a URL.
type ChangeFreq string

// Valid change frequency values.
const (
	ChangeFreqAlways  ChangeFreq = "always"
	ChangeFreqHourly  ChangeFreq = "hourly"
	ChangeFreqDaily   ChangeFreq = "daily"
	ChangeFreqWeekly  ChangeFreq = "weekly"
	ChangeFreqMonthly ChangeFreq = "monthly"
	ChangeFreqYearly  ChangeFreq = "yearly"
	ChangeFreqNever   ChangeFreq = "never"
)

// SitemapURL represents a single URL entry in the sitemap.
type SitemapURL struct {
	Loc        string     `xml:"loc"`
	LastMod    string     `xml:"lastmod,omitempty"`
	ChangeFreq ChangeFreq `xml:"changefreq,omitempty"`
	Priority   string     `xml:"priority,omitempty"`
}

// Sitemap represents the complete sitemap document.
type Sitemap struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []SitemapURL `xml:"url"`
}

// SitemapProduct contains data needed to add a product to the sitemap.
type SitemapProduct struct {
	Slug      string
	UpdatedAt time.Time
}

// SitemapCategory contains data needed to add a category to the sitemap.
type SitemapCategory struct {
	Slug      string
	UpdatedAt time.Time
}

// SitemapPage contains data needed to add a blog page to the sitemap.
type SitemapPage struct {
	Slug      string
	UpdatedAt time.Time
}

// SitemapBuilder builds sitemap XML from the storefront content types.
type SitemapBuilder struct {
	siteURL string
	urls    []SitemapURL
}

// NewSitemapBuilder creates a new sitemap builder.
func NewSitemapBuilder(siteURL string) *SitemapBuilder {
	return &SitemapBuilder{
		siteURL: siteURL,
		urls:    make([]SitemapURL, 0),
	}
}

// AddHomepage adds the homepage to the sitemap.
func (b *SitemapBuilder) AddHomepage() {
	b.urls = append(b.urls, SitemapURL{
		Loc:        b.siteURL,
		ChangeFreq: ChangeFreqDaily,
		Priority:   "1.0",
	})
}

// AddStatic adds a fixed storefront path such as /products or /contact.
func (b *SitemapBuilder) AddStatic(path string) {
	b.urls = append(b.urls, SitemapURL{
		Loc:        b.siteURL + path,
		ChangeFreq: ChangeFreqWeekly,
		Priority:   "0.7",
	})
}

// AddProduct adds a product detail page to the sitemap.
func (b *SitemapBuilder) AddProduct(p SitemapProduct) {
	url := SitemapURL{
		Loc:        b.siteURL + "/products/" + p.Slug,
		ChangeFreq: ChangeFreqWeekly,
		Priority:   "0.8",
	}
	if !p.UpdatedAt.IsZero() {
		url.LastMod = p.UpdatedAt.Format(time.RFC3339)
	}
	b.urls = append(b.urls, url)
}

// AddProducts adds multiple products to the sitemap.
func (b *SitemapBuilder) AddProducts(products []SitemapProduct) {
	for _, p := range products {
		b.AddProduct(p)
	}
}

// AddCategory adds a category listing page to the sitemap.
func (b *SitemapBuilder) AddCategory(cat SitemapCategory) {
	url := SitemapURL{
		Loc:        b.siteURL + "/category/" + cat.Slug,
		ChangeFreq: ChangeFreqWeekly,
		Priority:   "0.6",
	}
	if !cat.UpdatedAt.IsZero() {
		url.LastMod = cat.UpdatedAt.Format(time.RFC3339)
	}
	b.urls = append(b.urls, url)
}

// AddCategories adds multiple categories to the sitemap.
func (b *SitemapBuilder) AddCategories(categories []SitemapCategory) {
	for _, c := range categories {
		b.AddCategory(c)
	}
}

// AddPage adds a published blog page to the sitemap.
func (b *SitemapBuilder) AddPage(page SitemapPage) {
	url := SitemapURL{
		Loc:        b.siteURL + "/blog/" + page.Slug,
		ChangeFreq: ChangeFreqMonthly,
		Priority:   "0.5",
	}
	if !page.UpdatedAt.IsZero() {
		url.LastMod = page.UpdatedAt.Format(time.RFC3339)
	}
	b.urls = append(b.urls, url)
}

// AddPages adds multiple blog pages to the sitemap.
func (b *SitemapBuilder) AddPages(pages []SitemapPage) {
	for _, p := range pages {
		b.AddPage(p)
	}
}

// Build generates the sitemap XML.
func (b *SitemapBuilder) Build() ([]byte, error) {
	sitemap := Sitemap{
		XMLNS: XMLNamespace,
		URLs:  b.urls,
	}

	output := []byte(xml.Header)
	xmlBytes, err := xml.MarshalIndent(sitemap, "", "  ")
	if err != nil {
		return nil, err
	}

	return append(output, xmlBytes...), nil
}

// GenerateSitemap is a convenience function to generate a sitemap from content.
func GenerateSitemap(siteURL string, products []SitemapProduct, categories []SitemapCategory, pages []SitemapPage) ([]byte, error) {
	builder := NewSitemapBuilder(siteURL)
	builder.AddHomepage()
	builder.AddStatic("/products")
	builder.AddStatic("/contact")
	builder.AddStatic("/blog")
	builder.AddProducts(products)
	builder.AddCategories(categories)
	builder.AddPages(pages)
	return builder.Build()
}
