// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package presentation

import "fmt"

// SEOFields holds the document-level SEO data applied to the head. Empty
// fields remove their tags, so a page that stops specifying a value does not
// inherit a stale one.
type SEOFields struct {
	Title       string
	Description string
	Keywords    string
	Author      string

	OGTitle       string
	OGDescription string
	OGImage       string
	OGURL         string
	OGType        string // website or article
	OGSiteName    string
	OGLocale      string // e.g. ar_SA
	OGLocaleAlt   string // e.g. en_US

	TwitterCard        string
	TwitterTitle       string
	TwitterDescription string
	TwitterImage       string
	TwitterSite        string
	TwitterCreator     string

	// Article timestamps, applied only when OGType is "article".
	PublishedTime string // RFC3339
	ModifiedTime  string // RFC3339

	Robots    string
	Canonical string

	// AlternateLangs maps hreflang codes to absolute URLs.
	AlternateLangs map[string]string
}

// metaName / metaProperty set-or-remove an entry keyed by its tag name, so
// a repeated ApplySEO updates tags in place and never duplicates them.
func (h *Head) metaName(name, content string) {
	key := "meta:" + name
	if content == "" {
		h.remove(key)
		return
	}
	h.upsert(key, entry{kind: kindMetaName, name: name, val: content})
}

func (h *Head) metaProperty(prop, content string) {
	key := "prop:" + prop
	if content == "" {
		h.remove(key)
		return
	}
	h.upsert(key, entry{kind: kindMetaProperty, name: prop, val: content})
}

// ApplySEO creates or updates the fixed meta/link enumeration from the
// fields. Invocation is idempotent: one tag per logical key regardless of
// how many times it runs.
func (h *Head) ApplySEO(f SEOFields) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if f.Title != "" {
		h.title = f.Title
	}

	h.metaName("description", f.Description)
	h.metaName("keywords", f.Keywords)
	h.metaName("author", f.Author)
	h.metaName("robots", f.Robots)

	// Mobile flags are constant for this site.
	h.metaName("viewport", "width=device-width, initial-scale=1")
	h.metaName("mobile-web-app-capable", "yes")

	h.metaProperty("og:title", f.OGTitle)
	h.metaProperty("og:description", f.OGDescription)
	h.metaProperty("og:image", f.OGImage)
	h.metaProperty("og:url", f.OGURL)
	h.metaProperty("og:type", f.OGType)
	h.metaProperty("og:site_name", f.OGSiteName)
	h.metaProperty("og:locale", f.OGLocale)
	h.metaProperty("og:locale:alternate", f.OGLocaleAlt)

	if f.OGType == "article" {
		h.metaProperty("article:published_time", f.PublishedTime)
		h.metaProperty("article:modified_time", f.ModifiedTime)
	} else {
		h.metaProperty("article:published_time", "")
		h.metaProperty("article:modified_time", "")
	}

	h.metaName("twitter:card", f.TwitterCard)
	h.metaName("twitter:title", f.TwitterTitle)
	h.metaName("twitter:description", f.TwitterDescription)
	h.metaName("twitter:image", f.TwitterImage)
	h.metaName("twitter:site", f.TwitterSite)
	h.metaName("twitter:creator", f.TwitterCreator)

	if f.Canonical != "" {
		h.upsert("canonical", entry{kind: kindLink, name: "canonical", val: f.Canonical})
	} else {
		h.remove("canonical")
	}

	for lang, url := range f.AlternateLangs {
		h.upsert("alternate:"+lang, entry{
			kind: kindLink,
			name: "alternate",
			val:  url,
			attr: fmt.Sprintf("hreflang=%q", lang),
		})
	}
}
