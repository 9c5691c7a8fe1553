package handler

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"

	"github.com/joostry/joostry/internal/middleware"
	"github.com/joostry/joostry/internal/model"
	"github.com/joostry/joostry/internal/render"
	"github.com/joostry/joostry/internal/service"
	"github.com/joostry/joostry/internal/store"
)

const adminPagesURL = redirectAdmin + RouteAdminPages

// PagesAdminHandler manages markdown pages and blog posts.
type PagesAdminHandler struct {
	queries      *store.Queries
	renderer     *render.Renderer
	eventService *service.EventService
}

// NewPagesAdminHandler creates a new PagesAdminHandler.
func NewPagesAdminHandler(db *sql.DB, renderer *render.Renderer) *PagesAdminHandler {
	return &PagesAdminHandler{
		queries:      store.New(db),
		renderer:     renderer,
		eventService: service.NewEventService(db),
	}
}

// Pages renders the page list.
func (h *PagesAdminHandler) Pages(w http.ResponseWriter, r *http.Request) {
	pages, err := h.queries.ListPages(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to list pages", "error", err)
		return
	}
	renderAdmin(w, r, h.renderer, "admin/pages", "الصفحات", map[string]any{
		"Pages": pages,
	})
}

// NewPageForm renders the empty page form.
func (h *PagesAdminHandler) NewPageForm(w http.ResponseWriter, r *http.Request) {
	renderAdmin(w, r, h.renderer, "admin/page_form", "صفحة جديدة", nil)
}

// CreatePage handles the new-page form submission.
func (h *PagesAdminHandler) CreatePage(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, adminPagesURL+RouteSuffixNew) {
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	slug := slugFor(r.FormValue("slug"), title)
	if title == "" || slug == "" {
		flashError(w, r, h.renderer, adminPagesURL+RouteSuffixNew, "العنوان والرابط مطلوبان")
		return
	}

	id, err := h.queries.CreatePage(r.Context(), store.CreatePageParams{
		Title:       title,
		Slug:        slug,
		Body:        r.FormValue("body"),
		IsPublished: formBool(r, "is_published"),
	})
	if err != nil {
		slog.Error("failed to create page", "error", err)
		flashError(w, r, h.renderer, adminPagesURL+RouteSuffixNew, msgSaveFailed)
		return
	}

	_ = h.eventService.LogSettingsEvent(r.Context(), "info", "page created",
		middleware.GetUserID(r), map[string]any{"page_id": id, "slug": slug})

	flashSuccess(w, r, h.renderer, adminPagesURL, msgSaved)
}

// EditPageForm renders the edit form for one page.
func (h *PagesAdminHandler) EditPageForm(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamID(w, r, h.renderer, adminPagesURL)
	if !ok {
		return
	}
	page, ok := requireEntityWithRedirect(w, r, h.renderer, adminPagesURL, "page", id,
		func(id int64) (model.Page, error) { return h.queries.GetPageByID(r.Context(), id) })
	if !ok {
		return
	}
	renderAdmin(w, r, h.renderer, "admin/page_form", "تعديل صفحة", map[string]any{
		"Page": page,
	})
}

// UpdatePage handles the edit form submission.
func (h *PagesAdminHandler) UpdatePage(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamID(w, r, h.renderer, adminPagesURL)
	if !ok {
		return
	}
	if !parseFormOrRedirect(w, r, h.renderer, adminPagesURL) {
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	slug := slugFor(r.FormValue("slug"), title)
	if title == "" || slug == "" {
		flashError(w, r, h.renderer, adminPagesURL, "العنوان والرابط مطلوبان")
		return
	}

	err := h.queries.UpdatePage(r.Context(), model.Page{
		ID:          id,
		Title:       title,
		Slug:        slug,
		Body:        r.FormValue("body"),
		IsPublished: formBool(r, "is_published"),
	})
	if err != nil {
		slog.Error("failed to update page", "error", err, "page_id", id)
		flashError(w, r, h.renderer, adminPagesURL, msgSaveFailed)
		return
	}

	_ = h.eventService.LogSettingsEvent(r.Context(), "info", "page updated",
		middleware.GetUserID(r), map[string]any{"page_id": id})

	flashSuccess(w, r, h.renderer, adminPagesURL, msgSaved)
}

// DeletePage removes a page.
func (h *PagesAdminHandler) DeletePage(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamID(w, r, h.renderer, adminPagesURL)
	if !ok {
		return
	}

	if err := h.queries.DeletePage(r.Context(), id); err != nil {
		slog.Error("failed to delete page", "error", err, "page_id", id)
		flashError(w, r, h.renderer, adminPagesURL, msgDeleteFailed)
		return
	}

	_ = h.eventService.LogSettingsEvent(r.Context(), "info", "page deleted",
		middleware.GetUserID(r), map[string]any{"page_id": id})

	flashSuccess(w, r, h.renderer, adminPagesURL, msgDeleted)
}
