// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package bus provides a small in-process publish/subscribe hub used to
// notify interested components when site settings change.
package bus

import (
	"log/slog"
	"sync"
)

// Handler receives the payload published with an event.
type Handler func(payload any)

// Subscription identifies one registration of a handler. Handlers are not
// comparable in Go, so Off takes the handle returned by On instead of the
// handler itself; registering the same handler twice yields two independent
// subscriptions that both fire.
type Subscription struct {
	event string
	id    uint64
}

type registration struct {
	id uint64
	fn Handler
}

// Bus is a synchronous event hub. Emit runs handlers in registration order
// on the calling goroutine; a panicking handler is logged and skipped
// without affecting the others.
type Bus struct {
	mu     sync.RWMutex
	nextID uint64
	subs   map[string][]registration
	logger *slog.Logger
}

// New creates an empty bus.
func New(logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{
		subs:   make(map[string][]registration),
		logger: logger,
	}
}

// On registers a handler for an event and returns its subscription handle.
func (b *Bus) On(event string, fn Handler) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	b.subs[event] = append(b.subs[event], registration{id: b.nextID, fn: fn})
	return Subscription{event: event, id: b.nextID}
}

// Off removes one registration. Unknown or already-removed handles are a
// no-op.
func (b *Bus) Off(sub Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	regs := b.subs[sub.event]
	for i, r := range regs {
		if r.id == sub.id {
			b.subs[sub.event] = append(regs[:i:i], regs[i+1:]...)
			break
		}
	}
	if len(b.subs[sub.event]) == 0 {
		delete(b.subs, sub.event)
	}
}

// Emit calls every handler registered for the event, in registration order,
// with the payload. Emitting an event with no subscribers is a no-op.
func (b *Bus) Emit(event string, payload any) {
	b.mu.RLock()
	regs := make([]registration, len(b.subs[event]))
	copy(regs, b.subs[event])
	b.mu.RUnlock()

	for _, r := range regs {
		b.call(event, r, payload)
	}
}

// call isolates handler panics so one broken subscriber cannot take down
// the emitter or the remaining subscribers.
func (b *Bus) call(event string, r registration, payload any) {
	defer func() {
		if rec := recover(); rec != nil {
			b.logger.Error("event handler panicked",
				"event", event,
				"panic", rec,
			)
		}
	}()
	r.fn(payload)
}

// Clear removes every registration for every event.
func (b *Bus) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = make(map[string][]registration)
}

// Events used across the application.
const (
	EventSiteSettingsUpdated      = "settings.site.updated"
	EventHeaderSettingsUpdated    = "settings.header.updated"
	EventFooterSettingsUpdated    = "settings.footer.updated"
	EventHomeSectionUpdated       = "settings.home_section.updated"
	EventContactSettingsUpdated   = "settings.contact.updated"
	EventSlideshowSettingsUpdated = "settings.slideshow.updated"
	EventCatalogUpdated           = "catalog.updated"
	EventReviewsUpdated           = "reviews.updated"
)
