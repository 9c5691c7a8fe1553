// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/joostry/joostry/internal/seo"
)

// Sitemap handles GET /sitemap.xml requests. Product and category lists
// come through the cached catalog fetcher, so repeated crawls do not hit
// the database.
func (h *FrontendHandler) Sitemap(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var products []seo.SitemapProduct
	if list, err := h.catalog.ActiveProducts(ctx); err == nil {
		for _, p := range list {
			products = append(products, seo.SitemapProduct{Slug: p.Slug, UpdatedAt: p.UpdatedAt})
		}
	}

	var categories []seo.SitemapCategory
	if list, err := h.catalog.ActiveCategories(ctx); err == nil {
		for _, c := range list {
			categories = append(categories, seo.SitemapCategory{Slug: c.Slug, UpdatedAt: c.UpdatedAt})
		}
	}

	var pages []seo.SitemapPage
	if h.queries != nil {
		if list, err := h.queries.ListPublishedPages(ctx); err == nil {
			for _, p := range list {
				pages = append(pages, seo.SitemapPage{Slug: p.Slug, UpdatedAt: p.UpdatedAt})
			}
		}
	}

	xml, err := seo.GenerateSitemap(h.settings.SiteURL(), products, categories, pages)
	if err != nil {
		slog.Error("failed to generate sitemap", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(xml)
}

// Robots handles GET /robots.txt requests. When maintenance mode is on
// the whole site is marked off limits to crawlers.
func (h *FrontendHandler) Robots(w http.ResponseWriter, r *http.Request) {
	site := h.settings.ResolveSite(r.Context()).Settings

	robots := seo.GenerateRobots(h.settings.SiteURL(), site.MaintenanceMode, "")

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write([]byte(robots))
}

// SecurityTxt handles GET /.well-known/security.txt requests (RFC 9116).
// The contact address falls back to the resolved contact settings.
func (h *FrontendHandler) SecurityTxt(w http.ResponseWriter, r *http.Request) {
	contact := h.settings.ResolveContact(r.Context()).Settings

	addr := "mailto:security@joostry.example"
	if contact.Email != "" {
		addr = "mailto:" + contact.Email
	}

	txt := seo.GenerateSecurityTxt(addr, time.Now().AddDate(1, 0, 0))

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	_, _ = w.Write([]byte(txt))
}
