// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package presentation owns the shared document-head state: meta and link
// tags, the favicon, and injected stylesheets. It is the only component
// allowed to mutate this state; templates consume it through Render.
package presentation

import (
	"fmt"
	"html/template"
	"sort"
	"strings"
	"sync"
)

// Tag kinds.
const (
	kindMetaName     = "meta-name"
	kindMetaProperty = "meta-property"
	kindLink         = "link"
)

// entry is one head tag identified by a logical key. Re-applying the same
// key updates the entry in place, preserving its original position.
type entry struct {
	kind string
	name string // meta name / property value, or link rel
	val  string // meta content, or link href
	attr string // extra link attributes (e.g. hreflang)
}

// Head is a thread-safe document-head state holder.
type Head struct {
	mu          sync.RWMutex
	title       string
	order       []string
	entries     map[string]entry
	stylesheets map[string]string
}

// NewHead creates an empty head.
func NewHead() *Head {
	return &Head{
		entries:     make(map[string]entry),
		stylesheets: make(map[string]string),
	}
}

// upsert creates or updates the entry for a logical key. New keys append to
// the render order; existing keys keep their slot so repeated invocations
// never duplicate a tag.
func (h *Head) upsert(key string, e entry) {
	if _, ok := h.entries[key]; !ok {
		h.order = append(h.order, key)
	}
	h.entries[key] = e
}

// remove deletes the entry for a logical key, if present.
func (h *Head) remove(key string) {
	if _, ok := h.entries[key]; !ok {
		return
	}
	delete(h.entries, key)
	for i, k := range h.order {
		if k == key {
			h.order = append(h.order[:i], h.order[i+1:]...)
			break
		}
	}
}

// SetTitle sets the document title.
func (h *Head) SetTitle(title string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.title = title
}

// SetStylesheet injects or replaces a named stylesheet block. Replacing an
// existing id never stacks a second copy.
func (h *Head) SetStylesheet(id, css string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stylesheets[id] = css
}

// RemoveStylesheet tears down a named stylesheet block.
func (h *Head) RemoveStylesheet(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.stylesheets, id)
}

// ApplyFavicon creates or updates the favicon link entry.
func (h *Head) ApplyFavicon(url string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if url == "" {
		h.remove("favicon")
		return
	}
	h.upsert("favicon", entry{kind: kindLink, name: "icon", val: url})
}

// Render emits the accumulated head fragment: title, meta and link tags in
// first-application order, then stylesheet blocks in id order.
func (h *Head) Render() template.HTML {
	h.mu.RLock()
	defer h.mu.RUnlock()

	var b strings.Builder

	if h.title != "" {
		fmt.Fprintf(&b, "<title>%s</title>\n", template.HTMLEscapeString(h.title))
	}

	for _, key := range h.order {
		e := h.entries[key]
		switch e.kind {
		case kindMetaName:
			fmt.Fprintf(&b, "<meta name=%q content=%q>\n",
				template.HTMLEscapeString(e.name), template.HTMLEscapeString(e.val))
		case kindMetaProperty:
			fmt.Fprintf(&b, "<meta property=%q content=%q>\n",
				template.HTMLEscapeString(e.name), template.HTMLEscapeString(e.val))
		case kindLink:
			if e.attr != "" {
				fmt.Fprintf(&b, "<link rel=%q href=%q %s>\n",
					template.HTMLEscapeString(e.name), template.HTMLEscapeString(e.val), e.attr)
			} else {
				fmt.Fprintf(&b, "<link rel=%q href=%q>\n",
					template.HTMLEscapeString(e.name), template.HTMLEscapeString(e.val))
			}
		}
	}

	ids := make([]string, 0, len(h.stylesheets))
	for id := range h.stylesheets {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		fmt.Fprintf(&b, "<style id=%q>\n%s\n</style>\n", template.HTMLEscapeString(id), h.stylesheets[id])
	}

	return template.HTML(b.String())
}

// Reset clears all head state. Used by tests and by full re-application.
func (h *Head) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.title = ""
	h.order = nil
	h.entries = make(map[string]entry)
	h.stylesheets = make(map[string]string)
}
