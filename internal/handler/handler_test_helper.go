// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"database/sql"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/joostry/joostry/internal/auth"
	"github.com/joostry/joostry/internal/bus"
	"github.com/joostry/joostry/internal/cache"
	"github.com/joostry/joostry/internal/catalog"
	"github.com/joostry/joostry/internal/presentation"
	"github.com/joostry/joostry/internal/render"
	"github.com/joostry/joostry/internal/session"
	"github.com/joostry/joostry/internal/settings"
	"github.com/joostry/joostry/internal/store"
	"github.com/joostry/joostry/internal/testutil"
	"github.com/joostry/joostry/web"
)

// testEnv bundles the wired components a handler test needs.
type testEnv struct {
	db       *sql.DB
	queries  *store.Queries
	renderer *render.Renderer
	sessions *scs.SessionManager
	settings *settings.Service
	catalog  *catalog.Fetcher
	bus      *bus.Bus
}

// newTestEnv creates a migrated temp database with the full rendering and
// settings stack on top of it. Cleanup is registered on t.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, cleanup := testutil.TestDB(t)
	t.Cleanup(cleanup)

	queries := store.New(db)

	sm := session.New(db, true)

	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		t.Fatalf("templates sub fs: %v", err)
	}
	renderer, err := render.New(render.Config{
		TemplatesFS:    templatesFS,
		SessionManager: sm,
		IsDev:          true,
	})
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}

	backend, err := cache.NewCache(cache.DefaultCacheConfig())
	if err != nil {
		t.Fatalf("cache.NewCache: %v", err)
	}
	manager := cache.NewManager(backend)

	eventBus := bus.New(testutil.TestLogger())

	settingsService := settings.NewService(queries, manager, presentation.NewHead(),
		eventBus, "https://joostry.example", time.Minute)
	catalogFetcher := catalog.NewFetcher(queries, manager, eventBus, time.Minute)

	return &testEnv{
		db:       db,
		queries:  queries,
		renderer: renderer,
		sessions: sm,
		settings: settingsService,
		catalog:  catalogFetcher,
		bus:      eventBus,
	}
}

// serve runs a request through the session middleware and the given
// handler, returning the recorded response.
func (env *testEnv) serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	env.sessions.LoadAndSave(h).ServeHTTP(rr, req)
	return rr
}

// createTestUser inserts a user with the given role and returns its ID.
func (env *testEnv) createTestUser(t *testing.T, email, password, role string) int64 {
	t.Helper()

	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	now := time.Now()
	user, err := env.queries.CreateUser(context.Background(), store.CreateUserParams{
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Name:         "مدير الاختبار",
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	return user.ID
}

// createTestProduct inserts an active product and returns its ID.
func (env *testEnv) createTestProduct(t *testing.T, name, slug string, featured bool) int64 {
	t.Helper()

	id, err := env.queries.CreateProduct(context.Background(), store.CreateProductParams{
		Name:        name,
		Slug:        slug,
		Description: "عصير طازج",
		Price:       12.50,
		IsActive:    true,
		IsFeatured:  featured,
	})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	return id
}
