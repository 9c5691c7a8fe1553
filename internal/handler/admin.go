// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/joostry/joostry/internal/cache"
	"github.com/joostry/joostry/internal/middleware"
	"github.com/joostry/joostry/internal/render"
	"github.com/joostry/joostry/internal/service"
	"github.com/joostry/joostry/internal/store"
)

// eventsPageSize is the number of event log rows per admin page.
const eventsPageSize = 50

// AdminHandler serves the dashboard, the event log, and cache management.
type AdminHandler struct {
	queries      *store.Queries
	renderer     *render.Renderer
	eventService *service.EventService
	cacheManager *cache.Manager
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(db *sql.DB, renderer *render.Renderer, cm *cache.Manager) *AdminHandler {
	return &AdminHandler{
		queries:      store.New(db),
		renderer:     renderer,
		eventService: service.NewEventService(db),
		cacheManager: cm,
	}
}

// renderAdmin renders an admin template with the signed-in user attached.
func renderAdmin(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, name, title string, data map[string]any) {
	if data == nil {
		data = map[string]any{}
	}
	data["User"] = middleware.GetUser(r)
	td := render.TemplateData{
		Title: title,
		Data:  data,
	}
	if err := renderer.Render(w, r, name, td); err != nil {
		logAndInternalError(w, "failed to render admin page", "error", err, "template", name)
	}
}

// Dashboard renders the admin landing page with store counters.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	products, err := h.queries.CountProducts(ctx)
	if err != nil {
		slog.Error("failed to count products", "error", err)
	}
	categories, err := h.queries.CountCategories(ctx)
	if err != nil {
		slog.Error("failed to count categories", "error", err)
	}
	pendingReviews, err := h.queries.CountPendingReviews(ctx)
	if err != nil {
		slog.Error("failed to count pending reviews", "error", err)
	}
	unreadMessages, err := h.queries.CountUnreadContactMessages(ctx)
	if err != nil {
		slog.Error("failed to count unread messages", "error", err)
	}

	renderAdmin(w, r, h.renderer, "admin/dashboard", "لوحة التحكم", map[string]any{
		"ProductCount":       products,
		"CategoryCount":      categories,
		"PendingReviewCount": pendingReviews,
		"UnreadMessageCount": unreadMessages,
	})
}

// Events renders the event log, newest first.
func (h *AdminHandler) Events(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	page := formInt64(r, "page")
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * eventsPageSize

	events, err := h.queries.ListRecentEvents(ctx, eventsPageSize, offset)
	if err != nil {
		logAndInternalError(w, "failed to list events", "error", err)
		return
	}
	total, err := h.queries.CountEvents(ctx)
	if err != nil {
		slog.Error("failed to count events", "error", err)
	}

	totalPages := (total + eventsPageSize - 1) / eventsPageSize

	renderAdmin(w, r, h.renderer, "admin/events", "سجل الأحداث", map[string]any{
		"Events":     events,
		"Page":       page,
		"TotalPages": totalPages,
		"Total":      total,
	})
}

// Cache renders cache backend statistics.
func (h *AdminHandler) Cache(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{}
	if stats, ok := h.cacheManager.BackendStats(); ok {
		data["Stats"] = stats
		data["HasStats"] = true
	}
	renderAdmin(w, r, h.renderer, "admin/cache", "ذاكرة التخزين المؤقت", data)
}

// CacheClear flushes every cache key and logs the action.
func (h *AdminHandler) CacheClear(w http.ResponseWriter, r *http.Request) {
	h.cacheManager.ClearAll(r.Context())

	_ = h.eventService.LogSystemEvent(r.Context(), "info", "cache cleared",
		middleware.GetUserID(r), nil)

	flashSuccess(w, r, h.renderer, redirectAdmin+RouteAdminCache, "تم مسح ذاكرة التخزين المؤقت")
}
