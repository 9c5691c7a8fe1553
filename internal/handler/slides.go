package handler

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"

	"github.com/joostry/joostry/internal/bus"
	"github.com/joostry/joostry/internal/middleware"
	"github.com/joostry/joostry/internal/model"
	"github.com/joostry/joostry/internal/render"
	"github.com/joostry/joostry/internal/service"
	"github.com/joostry/joostry/internal/store"
)

const (
	adminSliderURL    = redirectAdmin + RouteAdminSlider
	adminSlideshowURL = redirectAdmin + RouteAdminSlideshow
)

// SlidesAdminHandler manages the slider banners and the hero slideshow.
type SlidesAdminHandler struct {
	queries      *store.Queries
	renderer     *render.Renderer
	eventService *service.EventService
	events       *bus.Bus
}

// NewSlidesAdminHandler creates a new SlidesAdminHandler.
func NewSlidesAdminHandler(db *sql.DB, renderer *render.Renderer, events *bus.Bus) *SlidesAdminHandler {
	return &SlidesAdminHandler{
		queries:      store.New(db),
		renderer:     renderer,
		eventService: service.NewEventService(db),
		events:       events,
	}
}

func (h *SlidesAdminHandler) notifyCatalog() {
	h.events.Emit(bus.EventCatalogUpdated, nil)
}

// SliderImages renders the slider banner list.
func (h *SlidesAdminHandler) SliderImages(w http.ResponseWriter, r *http.Request) {
	images, err := h.queries.ListSliderImages(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to list slider images", "error", err)
		return
	}
	renderAdmin(w, r, h.renderer, "admin/slider", "صور السلايدر", map[string]any{
		"Images": images,
	})
}

// CreateSliderImage adds a slider banner.
func (h *SlidesAdminHandler) CreateSliderImage(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, adminSliderURL) {
		return
	}

	imageURL := strings.TrimSpace(r.FormValue("image_url"))
	if imageURL == "" {
		flashError(w, r, h.renderer, adminSliderURL, "رابط الصورة مطلوب")
		return
	}

	id, err := h.queries.CreateSliderImage(r.Context(), store.CreateSliderImageParams{
		ImageURL:     imageURL,
		Title:        strings.TrimSpace(r.FormValue("title")),
		Subtitle:     strings.TrimSpace(r.FormValue("subtitle")),
		LinkURL:      strings.TrimSpace(r.FormValue("link_url")),
		IsActive:     formBool(r, "is_active"),
		DisplayOrder: formInt64(r, "display_order"),
	})
	if err != nil {
		slog.Error("failed to create slider image", "error", err)
		flashError(w, r, h.renderer, adminSliderURL, msgSaveFailed)
		return
	}

	h.notifyCatalog()
	_ = h.eventService.LogCatalogEvent(r.Context(), "info", "slider image created",
		middleware.GetUserID(r), map[string]any{"slider_image_id": id})

	flashSuccess(w, r, h.renderer, adminSliderURL, msgSaved)
}

// UpdateSliderImage rewrites a slider banner.
func (h *SlidesAdminHandler) UpdateSliderImage(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamID(w, r, h.renderer, adminSliderURL)
	if !ok {
		return
	}
	if !parseFormOrRedirect(w, r, h.renderer, adminSliderURL) {
		return
	}

	err := h.queries.UpdateSliderImage(r.Context(), model.SliderImage{
		ID:           id,
		ImageURL:     strings.TrimSpace(r.FormValue("image_url")),
		Title:        strings.TrimSpace(r.FormValue("title")),
		Subtitle:     strings.TrimSpace(r.FormValue("subtitle")),
		LinkURL:      strings.TrimSpace(r.FormValue("link_url")),
		IsActive:     formBool(r, "is_active"),
		DisplayOrder: formInt64(r, "display_order"),
	})
	if err != nil {
		slog.Error("failed to update slider image", "error", err, "slider_image_id", id)
		flashError(w, r, h.renderer, adminSliderURL, msgSaveFailed)
		return
	}

	h.notifyCatalog()
	flashSuccess(w, r, h.renderer, adminSliderURL, msgSaved)
}

// ToggleSliderImageActive flips a banner without a list refetch.
func (h *SlidesAdminHandler) ToggleSliderImageActive(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamID(w, r, h.renderer, adminSliderURL)
	if !ok {
		return
	}
	if !parseFormOrRedirect(w, r, h.renderer, adminSliderURL) {
		return
	}

	if err := h.queries.SetSliderImageActive(r.Context(), id, formBool(r, "value")); err != nil {
		slog.Error("failed to toggle slider image", "error", err, "slider_image_id", id)
		flashError(w, r, h.renderer, adminSliderURL, msgSaveFailed)
		return
	}

	h.notifyCatalog()
	http.Redirect(w, r, adminSliderURL, http.StatusSeeOther)
}

// DeleteSliderImage removes a banner.
func (h *SlidesAdminHandler) DeleteSliderImage(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamID(w, r, h.renderer, adminSliderURL)
	if !ok {
		return
	}

	if err := h.queries.DeleteSliderImage(r.Context(), id); err != nil {
		slog.Error("failed to delete slider image", "error", err, "slider_image_id", id)
		flashError(w, r, h.renderer, adminSliderURL, msgDeleteFailed)
		return
	}

	h.notifyCatalog()
	flashSuccess(w, r, h.renderer, adminSliderURL, msgDeleted)
}

// SlideshowImages renders the hero slideshow slide list.
func (h *SlidesAdminHandler) SlideshowImages(w http.ResponseWriter, r *http.Request) {
	images, err := h.queries.ListSlideshowImages(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to list slideshow images", "error", err)
		return
	}
	renderAdmin(w, r, h.renderer, "admin/slideshow", "شرائح الواجهة", map[string]any{
		"Images": images,
	})
}

// CreateSlideshowImage adds a hero slide.
func (h *SlidesAdminHandler) CreateSlideshowImage(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, adminSlideshowURL) {
		return
	}

	imageURL := strings.TrimSpace(r.FormValue("image_url"))
	if imageURL == "" {
		flashError(w, r, h.renderer, adminSlideshowURL, "رابط الصورة مطلوب")
		return
	}

	id, err := h.queries.CreateSlideshowImage(r.Context(), store.CreateSlideshowImageParams{
		ImageURL:     imageURL,
		Title:        strings.TrimSpace(r.FormValue("title")),
		Subtitle:     strings.TrimSpace(r.FormValue("subtitle")),
		OverlayText:  strings.TrimSpace(r.FormValue("overlay_text")),
		LinkURL:      strings.TrimSpace(r.FormValue("link_url")),
		IsActive:     formBool(r, "is_active"),
		DisplayOrder: formInt64(r, "display_order"),
	})
	if err != nil {
		slog.Error("failed to create slideshow image", "error", err)
		flashError(w, r, h.renderer, adminSlideshowURL, msgSaveFailed)
		return
	}

	h.notifyCatalog()
	_ = h.eventService.LogCatalogEvent(r.Context(), "info", "slideshow image created",
		middleware.GetUserID(r), map[string]any{"slideshow_image_id": id})

	flashSuccess(w, r, h.renderer, adminSlideshowURL, msgSaved)
}

// UpdateSlideshowImage rewrites a hero slide.
func (h *SlidesAdminHandler) UpdateSlideshowImage(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamID(w, r, h.renderer, adminSlideshowURL)
	if !ok {
		return
	}
	if !parseFormOrRedirect(w, r, h.renderer, adminSlideshowURL) {
		return
	}

	err := h.queries.UpdateSlideshowImage(r.Context(), model.SlideshowImage{
		ID:           id,
		ImageURL:     strings.TrimSpace(r.FormValue("image_url")),
		Title:        strings.TrimSpace(r.FormValue("title")),
		Subtitle:     strings.TrimSpace(r.FormValue("subtitle")),
		OverlayText:  strings.TrimSpace(r.FormValue("overlay_text")),
		LinkURL:      strings.TrimSpace(r.FormValue("link_url")),
		IsActive:     formBool(r, "is_active"),
		DisplayOrder: formInt64(r, "display_order"),
	})
	if err != nil {
		slog.Error("failed to update slideshow image", "error", err, "slideshow_image_id", id)
		flashError(w, r, h.renderer, adminSlideshowURL, msgSaveFailed)
		return
	}

	h.notifyCatalog()
	flashSuccess(w, r, h.renderer, adminSlideshowURL, msgSaved)
}

// ToggleSlideshowImageActive flips a slide without a list refetch.
func (h *SlidesAdminHandler) ToggleSlideshowImageActive(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamID(w, r, h.renderer, adminSlideshowURL)
	if !ok {
		return
	}
	if !parseFormOrRedirect(w, r, h.renderer, adminSlideshowURL) {
		return
	}

	if err := h.queries.SetSlideshowImageActive(r.Context(), id, formBool(r, "value")); err != nil {
		slog.Error("failed to toggle slideshow image", "error", err, "slideshow_image_id", id)
		flashError(w, r, h.renderer, adminSlideshowURL, msgSaveFailed)
		return
	}

	h.notifyCatalog()
	http.Redirect(w, r, adminSlideshowURL, http.StatusSeeOther)
}

// DeleteSlideshowImage removes a slide.
func (h *SlidesAdminHandler) DeleteSlideshowImage(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamID(w, r, h.renderer, adminSlideshowURL)
	if !ok {
		return
	}

	if err := h.queries.DeleteSlideshowImage(r.Context(), id); err != nil {
		slog.Error("failed to delete slideshow image", "error", err, "slideshow_image_id", id)
		flashError(w, r, h.renderer, adminSlideshowURL, msgDeleteFailed)
		return
	}

	h.notifyCatalog()
	flashSuccess(w, r, h.renderer, adminSlideshowURL, msgDeleted)
}
