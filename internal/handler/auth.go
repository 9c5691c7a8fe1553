// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/joostry/joostry/internal/auth"
	"github.com/joostry/joostry/internal/middleware"
	"github.com/joostry/joostry/internal/render"
	"github.com/joostry/joostry/internal/service"
	"github.com/joostry/joostry/internal/session"
	"github.com/joostry/joostry/internal/store"
)

// AuthHandler handles authentication routes.
type AuthHandler struct {
	queries         *store.Queries
	renderer        *render.Renderer
	sessionManager  *scs.SessionManager
	eventService    *service.EventService
	loginProtection *middleware.LoginProtection
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(db *sql.DB, renderer *render.Renderer, sm *scs.SessionManager, lp *middleware.LoginProtection) *AuthHandler {
	return &AuthHandler{
		queries:         store.New(db),
		renderer:        renderer,
		sessionManager:  sm,
		eventService:    service.NewEventService(db),
		loginProtection: lp,
	}
}

// LoginForm renders the login page. Already-authenticated users are sent
// straight to the dashboard.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if userID := h.sessionManager.GetInt64(r.Context(), session.KeyUserID); userID > 0 {
		http.Redirect(w, r, redirectAdmin, http.StatusSeeOther)
		return
	}

	data := render.TemplateData{
		Title: "تسجيل الدخول",
	}
	if err := h.renderer.Render(w, r, "auth/login", data); err != nil {
		logAndInternalError(w, "failed to render login page", "error", err)
	}
}

// Login handles the login form submission with account lockout and IP rate
// limiting already applied by the login protection middleware.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectLogin) {
		return
	}

	email := strings.TrimSpace(strings.ToLower(r.FormValue("email")))
	password := r.FormValue("password")

	if email == "" || password == "" {
		flashError(w, r, h.renderer, redirectLogin, "البريد الإلكتروني وكلمة المرور مطلوبان")
		return
	}

	// Account lockout check before touching the database
	if locked, remaining := h.loginProtection.IsAccountLocked(email); locked {
		flashError(w, r, h.renderer, redirectLogin,
			fmt.Sprintf("الحساب مقفل مؤقتاً، حاول بعد %d دقيقة", int(remaining.Minutes())+1))
		return
	}

	user, err := h.queries.GetUserByEmail(r.Context(), email)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			slog.Error("failed to look up user", "error", err)
		}
		h.recordFailure(w, r, email)
		return
	}

	ok, err := auth.CheckPassword(password, user.PasswordHash)
	if err != nil || !ok {
		if err != nil {
			slog.Error("password verification error", "error", err, "user_id", user.ID)
		}
		h.recordFailure(w, r, email)
		return
	}

	h.loginProtection.RecordSuccessfulLogin(email)

	// Upgrade hashes created with older argon2 cost parameters while we
	// still have the cleartext password in hand.
	if auth.NeedsRehash(user.PasswordHash) {
		if newHash, err := auth.HashPassword(password); err == nil {
			if err := h.queries.UpdateUserPasswordHash(r.Context(), user.ID, newHash); err != nil {
				slog.Warn("failed to upgrade password hash", "error", err, "user_id", user.ID)
			}
		}
	}

	if err := session.SetProfile(r.Context(), h.sessionManager, user.ID, user.Email, user.Name); err != nil {
		logAndInternalError(w, "failed to establish session", "error", err)
		return
	}

	if err := h.queries.UpdateUserLastLogin(r.Context(), user.ID, time.Now()); err != nil {
		slog.Warn("failed to update last login", "error", err, "user_id", user.ID)
	}

	_ = h.eventService.LogAuthEvent(r.Context(), "info", "user logged in", user.ID,
		map[string]any{"email": user.Email})

	http.Redirect(w, r, redirectAdmin, http.StatusSeeOther)
}

// recordFailure tracks the failed attempt and responds with a generic
// message so probing can't distinguish bad email from bad password.
func (h *AuthHandler) recordFailure(w http.ResponseWriter, r *http.Request, email string) {
	if locked, duration := h.loginProtection.RecordFailedAttempt(email); locked {
		_ = h.eventService.LogAuthEvent(r.Context(), "warning", "account locked", 0,
			map[string]any{"email": email, "duration": duration.String()})
		flashError(w, r, h.renderer, redirectLogin,
			fmt.Sprintf("تم قفل الحساب مؤقتاً لمدة %d دقيقة", int(duration.Minutes())))
		return
	}
	flashError(w, r, h.renderer, redirectLogin, "بيانات الدخول غير صحيحة")
}

// Logout destroys the session and returns to the storefront.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID := h.sessionManager.GetInt64(r.Context(), session.KeyUserID)

	if err := session.ClearProfile(r.Context(), h.sessionManager); err != nil {
		slog.Error("failed to destroy session", "error", err)
	}

	if userID > 0 {
		_ = h.eventService.LogAuthEvent(r.Context(), "info", "user logged out", userID, nil)
	}

	http.Redirect(w, r, RouteRoot, http.StatusSeeOther)
}
