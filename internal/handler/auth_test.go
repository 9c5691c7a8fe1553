// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joostry/joostry/internal/middleware"
)

func newAuthRouter(env *testEnv) chi.Router {
	lp := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())
	h := NewAuthHandler(env.db, env.renderer, env.sessions, lp)

	r := chi.NewRouter()
	r.Get(RouteLogin, h.LoginForm)
	r.Post(RouteLogin, h.Login)
	r.Post(RouteLogout, h.Logout)
	return r
}

func postLogin(env *testEnv, r http.Handler, email, password string) *httptest.ResponseRecorder {
	form := url.Values{
		"email":    {email},
		"password": {password},
	}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return env.serve(r, req)
}

func TestLoginFormRenders(t *testing.T) {
	env := newTestEnv(t)
	r := newAuthRouter(env)

	rr := env.serve(r, httptest.NewRequest(http.MethodGet, "/login", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "تسجيل الدخول")
	assert.Contains(t, body, `name="email"`)
	assert.Contains(t, body, `name="password"`)
}

func TestLoginSuccessRedirectsToDashboard(t *testing.T) {
	env := newTestEnv(t)
	env.createTestUser(t, "admin@joostry.example", "correct horse battery", "admin")
	r := newAuthRouter(env)

	rr := postLogin(env, r, "admin@joostry.example", "correct horse battery")

	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, redirectAdmin, rr.Header().Get("Location"))
	assert.NotEmpty(t, rr.Header().Get("Set-Cookie"), "expected a session cookie")
}

func TestLoginWrongPasswordRedirectsBack(t *testing.T) {
	env := newTestEnv(t)
	env.createTestUser(t, "admin@joostry.example", "correct horse battery", "admin")
	r := newAuthRouter(env)

	rr := postLogin(env, r, "admin@joostry.example", "wrong password")

	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, redirectLogin, rr.Header().Get("Location"))
}

func TestLoginUnknownEmailRedirectsBack(t *testing.T) {
	env := newTestEnv(t)
	r := newAuthRouter(env)

	rr := postLogin(env, r, "nobody@joostry.example", "whatever")

	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, redirectLogin, rr.Header().Get("Location"))
}

func TestLoginEmailIsCaseInsensitive(t *testing.T) {
	env := newTestEnv(t)
	env.createTestUser(t, "admin@joostry.example", "correct horse battery", "admin")
	r := newAuthRouter(env)

	rr := postLogin(env, r, "Admin@Joostry.Example", "correct horse battery")

	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, redirectAdmin, rr.Header().Get("Location"))
}

func TestLoginLockoutAfterRepeatedFailures(t *testing.T) {
	env := newTestEnv(t)
	env.createTestUser(t, "admin@joostry.example", "correct horse battery", "admin")

	cfg := middleware.DefaultLoginProtectionConfig()
	cfg.MaxFailedAttempts = 2
	lp := middleware.NewLoginProtection(cfg)
	h := NewAuthHandler(env.db, env.renderer, env.sessions, lp)

	r := chi.NewRouter()
	r.Post(RouteLogin, h.Login)

	for range 2 {
		postLogin(env, r, "admin@joostry.example", "wrong password")
	}

	// Correct password is rejected while the account is locked.
	rr := postLogin(env, r, "admin@joostry.example", "correct horse battery")
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, redirectLogin, rr.Header().Get("Location"))
}

func TestLogoutRedirectsToStorefront(t *testing.T) {
	env := newTestEnv(t)
	r := newAuthRouter(env)

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	rr := env.serve(r, req)

	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, RouteRoot, rr.Header().Get("Location"))
}
