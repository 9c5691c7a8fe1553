// Package middleware provides HTTP middleware for authentication,
// authorization, and request context handling.
package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/joostry/joostry/internal/model"
	"github.com/joostry/joostry/internal/session"
	"github.com/joostry/joostry/internal/store"
)

// ContextKey is a custom type for context keys to avoid collisions.
type ContextKey string

// ContextKeyUser is the context key under which LoadUser stores the
// authenticated user.
const ContextKeyUser ContextKey = "user"

var sessionManager *scs.SessionManager

// SetSessionManager wires the session manager used by the auth middleware.
// Must be called once during startup before the router is built.
func SetSessionManager(sm *scs.SessionManager) {
	sessionManager = sm
}

// Auth requires a signed-in user and redirects to the login page otherwise.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := sessionManager.GetInt64(r.Context(), session.KeyUserID)
		if userID == 0 {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// LoadUser fetches the session user from the store and places it in the
// request context. Requests with a stale session (user deleted) are signed
// out and redirected to login.
func LoadUser(queries *store.Queries) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := sessionManager.GetInt64(r.Context(), session.KeyUserID)
			if userID == 0 {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}

			user, err := queries.GetUserByID(r.Context(), userID)
			if err != nil {
				slog.Warn("session references unknown user", "user_id", userID)
				if err := session.ClearProfile(r.Context(), sessionManager); err != nil {
					slog.Error("failed to destroy stale session", "error", err)
				}
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUser, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalLoadUser is like LoadUser but lets anonymous requests through.
// Useful for public pages that render differently for signed-in admins.
func OptionalLoadUser(queries *store.Queries) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := sessionManager.GetInt64(r.Context(), session.KeyUserID)
			if userID != 0 {
				if user, err := queries.GetUserByID(r.Context(), userID); err == nil {
					ctx := context.WithValue(r.Context(), ContextKeyUser, user)
					r = r.WithContext(ctx)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetUser returns the authenticated user from the request context, or nil.
func GetUser(r *http.Request) *model.User {
	user, ok := r.Context().Value(ContextKeyUser).(model.User)
	if !ok {
		return nil
	}
	return &user
}

// GetUserID returns the authenticated user's ID, or 0.
func GetUserID(r *http.Request) int64 {
	if user := GetUser(r); user != nil {
		return user.ID
	}
	return 0
}

// GetUserEmail returns the authenticated user's email, or "".
func GetUserEmail(r *http.Request) string {
	if user := GetUser(r); user != nil {
		return user.Email
	}
	return ""
}

// RequireAdmin allows only users with the admin role. Must run after
// LoadUser.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := GetUser(r)
		if user == nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		if user.Role != model.RoleAdmin {
			slog.Warn("access denied", "user_id", user.ID, "role", user.Role, "path", r.URL.Path)
			http.Error(w, "الوصول مرفوض", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
