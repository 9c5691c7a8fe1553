// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalogAdminRouter(env *testEnv) chi.Router {
	h := NewCatalogAdminHandler(env.db, env.renderer, env.bus)

	r := chi.NewRouter()
	r.Get("/admin/products", h.Products)
	r.Post("/admin/products", h.CreateProduct)
	r.Get("/admin/products/{id}/edit", h.EditProductForm)
	r.Post("/admin/products/{id}", h.UpdateProduct)
	r.Post("/admin/products/{id}/toggle-active", h.ToggleProductActive)
	r.Post("/admin/products/{id}/toggle-featured", h.ToggleProductFeatured)
	r.Post("/admin/products/{id}/delete", h.DeleteProduct)
	r.Post("/admin/categories", h.CreateCategory)
	return r
}

func postForm(env *testEnv, r http.Handler, target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return env.serve(r, req)
}

func TestCreateProduct(t *testing.T) {
	env := newTestEnv(t)
	r := newCatalogAdminRouter(env)

	rr := postForm(env, r, "/admin/products", url.Values{
		"name":        {"عصير فراولة"},
		"slug":        {"strawberry-juice"},
		"description": {"فراولة طازجة"},
		"price":       {"15.00"},
		"is_active":   {"1"},
	})

	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, adminProductsURL, rr.Header().Get("Location"))

	product, err := env.queries.GetProductBySlug(context.Background(), "strawberry-juice")
	require.NoError(t, err)
	assert.Equal(t, "عصير فراولة", product.Name)
	assert.Equal(t, 15.00, product.Price)
	assert.True(t, product.IsActive)
	assert.False(t, product.IsFeatured)
}

func TestCreateProductSlugFromArabicName(t *testing.T) {
	env := newTestEnv(t)
	r := newCatalogAdminRouter(env)

	rr := postForm(env, r, "/admin/products", url.Values{
		"name":  {"عصير برتقال"},
		"price": {"10"},
	})

	require.Equal(t, http.StatusSeeOther, rr.Code)

	products, err := env.queries.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.NotEmpty(t, products[0].Slug)
}

func TestCreateProductRequiresName(t *testing.T) {
	env := newTestEnv(t)
	r := newCatalogAdminRouter(env)

	rr := postForm(env, r, "/admin/products", url.Values{
		"price": {"10"},
	})

	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, adminProductsURL+RouteSuffixNew, rr.Header().Get("Location"))

	products, err := env.queries.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestToggleProductActive(t *testing.T) {
	env := newTestEnv(t)
	id := env.createTestProduct(t, "عصير جزر", "carrot-juice", false)
	r := newCatalogAdminRouter(env)

	rr := postForm(env, r, "/admin/products/"+strconv.FormatInt(id, 10)+"/toggle-active", url.Values{
		"value": {"0"},
	})

	require.Equal(t, http.StatusSeeOther, rr.Code)

	product, err := env.queries.GetProductByID(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, product.IsActive)
}

func TestDeleteProduct(t *testing.T) {
	env := newTestEnv(t)
	id := env.createTestProduct(t, "عصير تفاح", "apple-juice", false)
	r := newCatalogAdminRouter(env)

	rr := postForm(env, r, "/admin/products/"+strconv.FormatInt(id, 10)+"/delete", nil)

	require.Equal(t, http.StatusSeeOther, rr.Code)

	_, err := env.queries.GetProductByID(context.Background(), id)
	assert.Error(t, err)
}

func TestCatalogMutationInvalidatesFetcherCache(t *testing.T) {
	env := newTestEnv(t)
	r := newCatalogAdminRouter(env)
	ctx := context.Background()

	// Warm the cache with the empty list.
	products, err := env.catalog.ActiveProducts(ctx)
	require.NoError(t, err)
	require.Empty(t, products)

	rr := postForm(env, r, "/admin/products", url.Values{
		"name":      {"عصير ليمون"},
		"slug":      {"lemon-juice"},
		"price":     {"8"},
		"is_active": {"1"},
	})
	require.Equal(t, http.StatusSeeOther, rr.Code)

	products, err = env.catalog.ActiveProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "lemon-juice", products[0].Slug)
}

func TestCreateCategory(t *testing.T) {
	env := newTestEnv(t)
	r := newCatalogAdminRouter(env)

	rr := postForm(env, r, "/admin/categories", url.Values{
		"name":      {"العصائر الطازجة"},
		"slug":      {"fresh-juices"},
		"is_active": {"1"},
	})

	require.Equal(t, http.StatusSeeOther, rr.Code)

	categories, err := env.queries.ListCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "العصائر الطازجة", categories[0].Name)
}
