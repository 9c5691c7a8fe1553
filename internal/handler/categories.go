package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/joostry/joostry/internal/middleware"
	"github.com/joostry/joostry/internal/model"
	"github.com/joostry/joostry/internal/store"
)

const adminCategoriesURL = redirectAdmin + RouteAdminCategories

// Categories renders the category list.
func (h *CatalogAdminHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.queries.ListCategories(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to list categories", "error", err)
		return
	}
	renderAdmin(w, r, h.renderer, "admin/categories", "التصنيفات", map[string]any{
		"Categories": categories,
	})
}

// NewCategoryForm renders the empty category form.
func (h *CatalogAdminHandler) NewCategoryForm(w http.ResponseWriter, r *http.Request) {
	renderAdmin(w, r, h.renderer, "admin/category_form", "تصنيف جديد", nil)
}

// CreateCategory handles the new-category form submission.
func (h *CatalogAdminHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, adminCategoriesURL+RouteSuffixNew) {
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	slug := slugFor(r.FormValue("slug"), name)
	if name == "" || slug == "" {
		flashError(w, r, h.renderer, adminCategoriesURL+RouteSuffixNew, "الاسم والرابط مطلوبان")
		return
	}

	id, err := h.queries.CreateCategory(r.Context(), store.CreateCategoryParams{
		Name:        name,
		Slug:        slug,
		Description: strings.TrimSpace(r.FormValue("description")),
		ImageURL:    strings.TrimSpace(r.FormValue("image_url")),
		IsActive:    formBool(r, "is_active"),
	})
	if err != nil {
		slog.Error("failed to create category", "error", err)
		flashError(w, r, h.renderer, adminCategoriesURL+RouteSuffixNew, msgSaveFailed)
		return
	}

	h.notifyCatalog()
	_ = h.eventService.LogCatalogEvent(r.Context(), "info", "category created",
		middleware.GetUserID(r), map[string]any{"category_id": id, "name": name})

	flashSuccess(w, r, h.renderer, adminCategoriesURL, msgSaved)
}

// EditCategoryForm renders the edit form for one category.
func (h *CatalogAdminHandler) EditCategoryForm(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamID(w, r, h.renderer, adminCategoriesURL)
	if !ok {
		return
	}
	category, ok := requireEntityWithRedirect(w, r, h.renderer, adminCategoriesURL, "category", id,
		func(id int64) (model.Category, error) { return h.queries.GetCategoryByID(r.Context(), id) })
	if !ok {
		return
	}
	renderAdmin(w, r, h.renderer, "admin/category_form", "تعديل تصنيف", map[string]any{
		"Category": category,
	})
}

// UpdateCategory handles the edit form submission.
func (h *CatalogAdminHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamID(w, r, h.renderer, adminCategoriesURL)
	if !ok {
		return
	}
	if !parseFormOrRedirect(w, r, h.renderer, adminCategoriesURL) {
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	slug := slugFor(r.FormValue("slug"), name)
	if name == "" || slug == "" {
		flashError(w, r, h.renderer, adminCategoriesURL, "الاسم والرابط مطلوبان")
		return
	}

	err := h.queries.UpdateCategory(r.Context(), model.Category{
		ID:          id,
		Name:        name,
		Slug:        slug,
		Description: strings.TrimSpace(r.FormValue("description")),
		ImageURL:    strings.TrimSpace(r.FormValue("image_url")),
		IsActive:    formBool(r, "is_active"),
	})
	if err != nil {
		slog.Error("failed to update category", "error", err, "category_id", id)
		flashError(w, r, h.renderer, adminCategoriesURL, msgSaveFailed)
		return
	}

	h.notifyCatalog()
	_ = h.eventService.LogCatalogEvent(r.Context(), "info", "category updated",
		middleware.GetUserID(r), map[string]any{"category_id": id})

	flashSuccess(w, r, h.renderer, adminCategoriesURL, msgSaved)
}

// ToggleCategoryActive flips category visibility without a list refetch.
func (h *CatalogAdminHandler) ToggleCategoryActive(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamID(w, r, h.renderer, adminCategoriesURL)
	if !ok {
		return
	}
	if !parseFormOrRedirect(w, r, h.renderer, adminCategoriesURL) {
		return
	}

	if err := h.queries.SetCategoryActive(r.Context(), id, formBool(r, "value")); err != nil {
		slog.Error("failed to toggle category", "error", err, "category_id", id)
		flashError(w, r, h.renderer, adminCategoriesURL, msgSaveFailed)
		return
	}

	h.notifyCatalog()
	http.Redirect(w, r, adminCategoriesURL, http.StatusSeeOther)
}

// DeleteCategory removes a category. Products keep their rows; the foreign
// key nulls out on delete.
func (h *CatalogAdminHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamID(w, r, h.renderer, adminCategoriesURL)
	if !ok {
		return
	}

	if err := h.queries.DeleteCategory(r.Context(), id); err != nil {
		slog.Error("failed to delete category", "error", err, "category_id", id)
		flashError(w, r, h.renderer, adminCategoriesURL, msgDeleteFailed)
		return
	}

	h.notifyCatalog()
	_ = h.eventService.LogCatalogEvent(r.Context(), "info", "category deleted",
		middleware.GetUserID(r), map[string]any{"category_id": id})

	flashSuccess(w, r, h.renderer, adminCategoriesURL, msgDeleted)
}
