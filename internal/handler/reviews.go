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

const adminReviewsURL = redirectAdmin + RouteAdminReviews

// ReviewAdminHandler manages the customer review moderation queue.
type ReviewAdminHandler struct {
	queries      *store.Queries
	renderer     *render.Renderer
	eventService *service.EventService
	events       *bus.Bus
}

// NewReviewAdminHandler creates a new ReviewAdminHandler.
func NewReviewAdminHandler(db *sql.DB, renderer *render.Renderer, events *bus.Bus) *ReviewAdminHandler {
	return &ReviewAdminHandler{
		queries:      store.New(db),
		renderer:     renderer,
		eventService: service.NewEventService(db),
		events:       events,
	}
}

func (h *ReviewAdminHandler) notifyReviews() {
	h.events.Emit(bus.EventReviewsUpdated, nil)
}

// Reviews renders the moderation queue, pending entries first.
func (h *ReviewAdminHandler) Reviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.queries.ListReviews(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to list reviews", "error", err)
		return
	}
	renderAdmin(w, r, h.renderer, "admin/reviews", "آراء العملاء", map[string]any{
		"Reviews": reviews,
	})
}

// CreateReview adds a review directly from the dashboard, pre-approved.
func (h *ReviewAdminHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, adminReviewsURL) {
		return
	}

	name := strings.TrimSpace(r.FormValue("customer_name"))
	text := strings.TrimSpace(r.FormValue("review_text"))
	rating := formInt64(r, "rating")
	if rating < 1 || rating > 5 {
		rating = 5
	}
	if name == "" || text == "" {
		flashError(w, r, h.renderer, adminReviewsURL, "اسم العميل ونص الرأي مطلوبان")
		return
	}

	id, err := h.queries.CreateReview(r.Context(), store.CreateReviewParams{
		CustomerName: name,
		ReviewText:   text,
		Rating:       rating,
		ImageURL:     strings.TrimSpace(r.FormValue("image_url")),
		IsVisible:    true,
		DisplayOrder: formInt64(r, "display_order"),
		Status:       model.ReviewStatusApproved,
	})
	if err != nil {
		slog.Error("failed to create review", "error", err)
		flashError(w, r, h.renderer, adminReviewsURL, msgSaveFailed)
		return
	}

	h.notifyReviews()
	_ = h.eventService.LogReviewEvent(r.Context(), "info", "review created",
		middleware.GetUserID(r), map[string]any{"review_id": id})

	flashSuccess(w, r, h.renderer, adminReviewsURL, msgSaved)
}

// ApproveReview marks a review approved; the list page refetches on redirect.
func (h *ReviewAdminHandler) ApproveReview(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, model.ReviewStatusApproved, "review approved")
}

// RejectReview marks a review rejected; the list page refetches on redirect.
func (h *ReviewAdminHandler) RejectReview(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, model.ReviewStatusRejected, "review rejected")
}

func (h *ReviewAdminHandler) setStatus(w http.ResponseWriter, r *http.Request, status, logMsg string) {
	id, ok := urlParamID(w, r, h.renderer, adminReviewsURL)
	if !ok {
		return
	}

	if err := h.queries.SetReviewStatus(r.Context(), id, status); err != nil {
		slog.Error("failed to set review status", "error", err, "review_id", id, "status", status)
		flashError(w, r, h.renderer, adminReviewsURL, msgSaveFailed)
		return
	}

	h.notifyReviews()
	_ = h.eventService.LogReviewEvent(r.Context(), "info", logMsg,
		middleware.GetUserID(r), map[string]any{"review_id": id})

	flashSuccess(w, r, h.renderer, adminReviewsURL, msgSaved)
}

// ToggleReviewVisible flips visibility in place without a queue refetch.
func (h *ReviewAdminHandler) ToggleReviewVisible(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamID(w, r, h.renderer, adminReviewsURL)
	if !ok {
		return
	}
	if !parseFormOrRedirect(w, r, h.renderer, adminReviewsURL) {
		return
	}

	if err := h.queries.SetReviewVisible(r.Context(), id, formBool(r, "value")); err != nil {
		slog.Error("failed to toggle review", "error", err, "review_id", id)
		flashError(w, r, h.renderer, adminReviewsURL, msgSaveFailed)
		return
	}

	h.notifyReviews()
	http.Redirect(w, r, adminReviewsURL, http.StatusSeeOther)
}

// DeleteReview removes a review; the list page refetches on redirect.
func (h *ReviewAdminHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamID(w, r, h.renderer, adminReviewsURL)
	if !ok {
		return
	}

	if err := h.queries.DeleteReview(r.Context(), id); err != nil {
		slog.Error("failed to delete review", "error", err, "review_id", id)
		flashError(w, r, h.renderer, adminReviewsURL, msgDeleteFailed)
		return
	}

	h.notifyReviews()
	_ = h.eventService.LogReviewEvent(r.Context(), "info", "review deleted",
		middleware.GetUserID(r), map[string]any{"review_id": id})

	flashSuccess(w, r, h.renderer, adminReviewsURL, msgDeleted)
}
