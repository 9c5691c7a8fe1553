package handler

import (
	"context"
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
	"github.com/joostry/joostry/internal/util"
)

// CatalogAdminHandler manages products and categories.
type CatalogAdminHandler struct {
	queries      *store.Queries
	renderer     *render.Renderer
	eventService *service.EventService
	events       *bus.Bus
}

// NewCatalogAdminHandler creates a new CatalogAdminHandler.
func NewCatalogAdminHandler(db *sql.DB, renderer *render.Renderer, events *bus.Bus) *CatalogAdminHandler {
	return &CatalogAdminHandler{
		queries:      store.New(db),
		renderer:     renderer,
		eventService: service.NewEventService(db),
		events:       events,
	}
}

// notifyCatalog announces a catalog mutation so caches invalidate.
func (h *CatalogAdminHandler) notifyCatalog() {
	h.events.Emit(bus.EventCatalogUpdated, nil)
}

// slugFor derives a URL slug from the explicit slug field, falling back to
// the (possibly Arabic) name. Returns "" when nothing transliterates.
func slugFor(explicit, name string) string {
	if s := util.Slugify(explicit); s != "" {
		return s
	}
	return util.Slugify(name)
}

const adminProductsURL = redirectAdmin + RouteAdminProducts

// Products renders the product list.
func (h *CatalogAdminHandler) Products(w http.ResponseWriter, r *http.Request) {
	products, err := h.queries.ListProducts(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to list products", "error", err)
		return
	}
	categories, err := h.queries.ListCategories(r.Context())
	if err != nil {
		slog.Error("failed to list categories", "error", err)
	}
	renderAdmin(w, r, h.renderer, "admin/products", "المنتجات", map[string]any{
		"Products":   products,
		"Categories": categories,
	})
}

// NewProductForm renders the empty product form.
func (h *CatalogAdminHandler) NewProductForm(w http.ResponseWriter, r *http.Request) {
	categories, err := h.queries.ListCategories(r.Context())
	if err != nil {
		slog.Error("failed to list categories", "error", err)
	}
	renderAdmin(w, r, h.renderer, "admin/product_form", "منتج جديد", map[string]any{
		"Categories": categories,
	})
}

// productFromForm reads the shared product form fields.
func productFromForm(r *http.Request) (name, slug, description, imageURL string, price float64, categoryID int64, active, featured bool) {
	name = strings.TrimSpace(r.FormValue("name"))
	slug = slugFor(r.FormValue("slug"), name)
	description = strings.TrimSpace(r.FormValue("description"))
	imageURL = strings.TrimSpace(r.FormValue("image_url"))
	price = formFloat(r, "price")
	categoryID = formInt64(r, "category_id")
	active = formBool(r, "is_active")
	featured = formBool(r, "is_featured")
	return
}

// CreateProduct handles the new-product form submission.
func (h *CatalogAdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, adminProductsURL+RouteSuffixNew) {
		return
	}

	name, slug, description, imageURL, price, categoryID, active, featured := productFromForm(r)
	if name == "" || slug == "" {
		flashError(w, r, h.renderer, adminProductsURL+RouteSuffixNew, "الاسم والرابط مطلوبان")
		return
	}

	id, err := h.queries.CreateProduct(r.Context(), store.CreateProductParams{
		Name:        name,
		Slug:        slug,
		Description: description,
		Price:       price,
		ImageURL:    imageURL,
		CategoryID:  categoryID,
		IsActive:    active,
		IsFeatured:  featured,
	})
	if err != nil {
		slog.Error("failed to create product", "error", err)
		flashError(w, r, h.renderer, adminProductsURL+RouteSuffixNew, msgSaveFailed)
		return
	}

	h.notifyCatalog()
	_ = h.eventService.LogCatalogEvent(r.Context(), "info", "product created",
		middleware.GetUserID(r), map[string]any{"product_id": id, "name": name})

	flashSuccess(w, r, h.renderer, adminProductsURL, msgSaved)
}

// EditProductForm renders the edit form for one product.
func (h *CatalogAdminHandler) EditProductForm(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamID(w, r, h.renderer, adminProductsURL)
	if !ok {
		return
	}
	product, ok := requireEntityWithRedirect(w, r, h.renderer, adminProductsURL, "product", id,
		func(id int64) (model.Product, error) { return h.queries.GetProductByID(r.Context(), id) })
	if !ok {
		return
	}
	categories, err := h.queries.ListCategories(r.Context())
	if err != nil {
		slog.Error("failed to list categories", "error", err)
	}
	renderAdmin(w, r, h.renderer, "admin/product_form", "تعديل منتج", map[string]any{
		"Product":    product,
		"Categories": categories,
	})
}

// UpdateProduct handles the edit form submission.
func (h *CatalogAdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamID(w, r, h.renderer, adminProductsURL)
	if !ok {
		return
	}
	if !parseFormOrRedirect(w, r, h.renderer, adminProductsURL) {
		return
	}

	name, slug, description, imageURL, price, categoryID, active, featured := productFromForm(r)
	if name == "" || slug == "" {
		flashError(w, r, h.renderer, adminProductsURL, "الاسم والرابط مطلوبان")
		return
	}

	err := h.queries.UpdateProduct(r.Context(), store.UpdateProductParams{
		ID:          id,
		Name:        name,
		Slug:        slug,
		Description: description,
		Price:       price,
		ImageURL:    imageURL,
		CategoryID:  categoryID,
		IsActive:    active,
		IsFeatured:  featured,
	})
	if err != nil {
		slog.Error("failed to update product", "error", err, "product_id", id)
		flashError(w, r, h.renderer, adminProductsURL, msgSaveFailed)
		return
	}

	h.notifyCatalog()
	_ = h.eventService.LogCatalogEvent(r.Context(), "info", "product updated",
		middleware.GetUserID(r), map[string]any{"product_id": id})

	flashSuccess(w, r, h.renderer, adminProductsURL, msgSaved)
}

// ToggleProductActive flips storefront visibility without a list refetch.
func (h *CatalogAdminHandler) ToggleProductActive(w http.ResponseWriter, r *http.Request) {
	h.toggleProduct(w, r, "is_active", h.queries.SetProductActive)
}

// ToggleProductFeatured flips the featured flag without a list refetch.
func (h *CatalogAdminHandler) ToggleProductFeatured(w http.ResponseWriter, r *http.Request) {
	h.toggleProduct(w, r, "is_featured", h.queries.SetProductFeatured)
}

func (h *CatalogAdminHandler) toggleProduct(w http.ResponseWriter, r *http.Request, field string, setFn func(ctx context.Context, id int64, v bool) error) {
	id, ok := urlParamID(w, r, h.renderer, adminProductsURL)
	if !ok {
		return
	}
	if !parseFormOrRedirect(w, r, h.renderer, adminProductsURL) {
		return
	}
	value := formBool(r, "value")

	if err := setFn(r.Context(), id, value); err != nil {
		slog.Error("failed to toggle product", "error", err, "product_id", id, "field", field)
		flashError(w, r, h.renderer, adminProductsURL, msgSaveFailed)
		return
	}

	h.notifyCatalog()
	http.Redirect(w, r, adminProductsURL, http.StatusSeeOther)
}

// DeleteProduct removes a product.
func (h *CatalogAdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamID(w, r, h.renderer, adminProductsURL)
	if !ok {
		return
	}

	if err := h.queries.DeleteProduct(r.Context(), id); err != nil {
		slog.Error("failed to delete product", "error", err, "product_id", id)
		flashError(w, r, h.renderer, adminProductsURL, msgDeleteFailed)
		return
	}

	h.notifyCatalog()
	_ = h.eventService.LogCatalogEvent(r.Context(), "info", "product deleted",
		middleware.GetUserID(r), map[string]any{"product_id": id})

	flashSuccess(w, r, h.renderer, adminProductsURL, msgDeleted)
}
