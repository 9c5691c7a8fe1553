package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/joostry/joostry/internal/middleware"
	"github.com/joostry/joostry/internal/render"
	"github.com/joostry/joostry/internal/service"
	"github.com/joostry/joostry/internal/store"
)

const adminMessagesURL = redirectAdmin + RouteAdminMessages

// MessagesAdminHandler lists and manages contact form submissions.
type MessagesAdminHandler struct {
	queries      *store.Queries
	renderer     *render.Renderer
	eventService *service.EventService
}

// NewMessagesAdminHandler creates a new MessagesAdminHandler.
func NewMessagesAdminHandler(db *sql.DB, renderer *render.Renderer) *MessagesAdminHandler {
	return &MessagesAdminHandler{
		queries:      store.New(db),
		renderer:     renderer,
		eventService: service.NewEventService(db),
	}
}

// Messages renders the inbox, newest first.
func (h *MessagesAdminHandler) Messages(w http.ResponseWriter, r *http.Request) {
	messages, err := h.queries.ListContactMessages(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to list contact messages", "error", err)
		return
	}
	unread, err := h.queries.CountUnreadContactMessages(r.Context())
	if err != nil {
		slog.Error("failed to count unread messages", "error", err)
	}
	renderAdmin(w, r, h.renderer, "admin/messages", "رسائل التواصل", map[string]any{
		"Messages": messages,
		"Unread":   unread,
	})
}

// Message renders one submission and marks it read.
func (h *MessagesAdminHandler) Message(w http.ResponseWriter, r *http.Request) {
	publicID := chi.URLParam(r, "publicID")

	msg, err := h.queries.GetContactMessage(r.Context(), publicID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			flashError(w, r, h.renderer, adminMessagesURL, msgNotFound)
			return
		}
		logAndInternalError(w, "failed to get contact message", "error", err)
		return
	}

	if !msg.IsRead {
		if err := h.queries.MarkContactMessageRead(r.Context(), publicID); err != nil {
			slog.Error("failed to mark message read", "error", err, "public_id", publicID)
		}
	}

	renderAdmin(w, r, h.renderer, "admin/message", "رسالة من "+msg.Name, map[string]any{
		"Message": msg,
	})
}

// DeleteMessage removes a submission.
func (h *MessagesAdminHandler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	publicID := chi.URLParam(r, "publicID")

	if err := h.queries.DeleteContactMessage(r.Context(), publicID); err != nil {
		slog.Error("failed to delete contact message", "error", err, "public_id", publicID)
		flashError(w, r, h.renderer, adminMessagesURL, msgDeleteFailed)
		return
	}

	_ = h.eventService.LogContactEvent(r.Context(), "info", "contact message deleted",
		middleware.GetUserID(r), map[string]any{"public_id": publicID})

	flashSuccess(w, r, h.renderer, adminMessagesURL, msgDeleted)
}
