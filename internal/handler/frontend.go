// Package handler provides HTTP handlers for the storefront and the
// admin dashboard.
package handler

import (
	"bytes"
	"database/sql"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"

	"github.com/joostry/joostry/internal/catalog"
	"github.com/joostry/joostry/internal/model"
	"github.com/joostry/joostry/internal/render"
	"github.com/joostry/joostry/internal/service"
	"github.com/joostry/joostry/internal/settings"
	"github.com/joostry/joostry/internal/store"
)

// FrontendHandler serves the public storefront pages.
type FrontendHandler struct {
	queries  *store.Queries
	renderer *render.Renderer
	settings *settings.Service
	catalog  *catalog.Fetcher
	events   *service.EventService

	strict *bluemonday.Policy
	ugc    *bluemonday.Policy
}

// NewFrontendHandler creates a new FrontendHandler.
func NewFrontendHandler(db *sql.DB, renderer *render.Renderer, ss *settings.Service, cf *catalog.Fetcher) *FrontendHandler {
	var queries *store.Queries
	var events *service.EventService
	if db != nil {
		queries = store.New(db)
		events = service.NewEventService(db)
	}
	return &FrontendHandler{
		queries:  queries,
		renderer: renderer,
		settings: ss,
		catalog:  cf,
		events:   events,
		strict:   bluemonday.StrictPolicy(),
		ugc:      bluemonday.UGCPolicy(),
	}
}

// markdownToHTML renders markdown to sanitized HTML.
func (h *FrontendHandler) markdownToHTML(body string) template.HTML {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(body), &buf); err != nil {
		slog.Error("markdown conversion failed", "error", err)
		return ""
	}
	return template.HTML(h.ugc.SanitizeBytes(buf.Bytes())) //nolint:gosec // sanitized above
}

// Maintenance short-circuits public pages with a maintenance response when
// the site settings flag is on. Health and admin routes bypass this.
func (h *FrontendHandler) Maintenance(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		site := h.settings.ResolveSite(r.Context()).Settings
		if site.MaintenanceMode {
			w.WriteHeader(http.StatusServiceUnavailable)
			data := render.TemplateData{
				Title: site.SiteName,
				Head:  h.settings.Head().Render(),
				Data:  map[string]any{"Site": site},
			}
			if err := h.renderer.Render(w, r, "frontend/maintenance", data); err != nil {
				slog.Error("failed to render maintenance page", "error", err)
			}
			return
		}
		next.ServeHTTP(w, r)
	})
}

// layoutData resolves the settings every public page needs: site identity,
// header, menu, and footer. Resolution errors degrade to defaults and are
// already logged by the settings service.
type layoutData struct {
	Site   model.SiteSettings
	Header model.HeaderSettings
	Menu   []model.MenuItem
	Footer model.FooterSettings
}

func (h *FrontendHandler) layout(r *http.Request) layoutData {
	ctx := r.Context()
	return layoutData{
		Site:   h.settings.ResolveSite(ctx).Settings,
		Header: h.settings.ResolveHeader(ctx).Settings,
		Menu:   h.settings.ResolveMenu(ctx).Settings,
		Footer: h.settings.ResolveFooter(ctx).Settings,
	}
}

// homeSectionView picks the configured section when it is visible, or the
// default variant otherwise. Hero, featured, categories, reviews, and about
// blocks never disappear; they fall back to default copy and styling.
func homeSectionView(sections map[string]model.HomeSection, name string) render.SectionView {
	if sec, ok := sections[name]; ok && sec.IsVisible {
		return render.BuildSectionView(sec)
	}
	return render.BuildSectionView(settings.DefaultHomeSection(name))
}

// Home renders the storefront landing page.
func (h *FrontendHandler) Home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	layout := h.layout(r)
	sections := h.settings.ResolveHomeSections(ctx).Settings
	slideshow := h.settings.ResolveSlideshow(ctx).Settings

	featured, _ := h.catalog.FeaturedProducts(ctx)
	categories, _ := h.catalog.ActiveCategories(ctx)
	reviews, _ := h.catalog.VisibleReviews(ctx)

	// Slideshow and slider render nothing when disabled, hidden, or empty.
	var slides []model.SlideshowImage
	slideshowSec, hasSlideshowSec := sections[model.SectionSlideshow]
	if slideshow.IsEnabled && hasSlideshowSec && slideshowSec.IsVisible {
		slides, _ = h.catalog.ActiveSlideshowImages(ctx)
	}
	sliderImages, _ := h.catalog.ActiveSliderImages(ctx)

	data := map[string]any{
		"Layout":     layout,
		"Hero":       homeSectionView(sections, model.SectionHero),
		"Featured":   homeSectionView(sections, model.SectionFeatured),
		"Categories": homeSectionView(sections, model.SectionCategories),
		"Reviews":    homeSectionView(sections, model.SectionCustomerReviews),
		"About":      homeSectionView(sections, model.SectionAbout),

		"FeaturedProducts": featured,
		"CategoryList":     categories,
		"ReviewList":       reviews,

		"Slideshow":    slideshow,
		"Slides":       slides,
		"SliderImages": sliderImages,

		"HeroTitle":     render.DefaultHeroTitle,
		"HeroSubtitle":  render.DefaultHeroSubtitle,
		"FeaturedTitle": render.DefaultFeaturedTitle,
		"ReviewsTitle":  render.DefaultReviewsTitle,
		"AboutTitle":    render.DefaultAboutTitle,
		"AboutBody":     render.DefaultAboutBody,
	}

	h.renderPage(w, r, "frontend/home", layout.Site.SiteName, data)
}

// Products renders the full product listing.
func (h *FrontendHandler) Products(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	layout := h.layout(r)

	products, _ := h.catalog.ActiveProducts(ctx)
	categories, _ := h.catalog.ActiveCategories(ctx)

	data := map[string]any{
		"Layout":     layout,
		"Products":   products,
		"Categories": categories,
	}
	h.renderPage(w, r, "frontend/products", "المنتجات", data)
}

// ProductDetail renders a single product page by slug.
func (h *FrontendHandler) ProductDetail(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	product, err := h.catalog.ProductBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			h.NotFound(w, r)
			return
		}
		logAndInternalError(w, "failed to get product", "error", err, "slug", slug)
		return
	}

	layout := h.layout(r)
	data := map[string]any{
		"Layout":  layout,
		"Product": product,
	}
	h.renderPage(w, r, "frontend/product", product.Name, data)
}

// CategoryProducts renders the products within one category.
func (h *FrontendHandler) CategoryProducts(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	ctx := r.Context()

	category, err := h.catalog.CategoryBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			h.NotFound(w, r)
			return
		}
		logAndInternalError(w, "failed to get category", "error", err, "slug", slug)
		return
	}

	products, _ := h.catalog.ProductsByCategory(ctx, category.ID)

	layout := h.layout(r)
	data := map[string]any{
		"Layout":   layout,
		"Category": category,
		"Products": products,
	}
	h.renderPage(w, r, "frontend/category", category.Name, data)
}

// ContactForm renders the contact page with resolver-driven copy.
func (h *FrontendHandler) ContactForm(w http.ResponseWriter, r *http.Request) {
	layout := h.layout(r)
	contact := h.settings.ResolveContact(r.Context()).Settings

	data := map[string]any{
		"Layout":  layout,
		"Contact": contact,
	}
	h.renderPage(w, r, "frontend/contact", contact.Title, data)
}

// ContactSubmit persists a contact form submission.
func (h *FrontendHandler) ContactSubmit(w http.ResponseWriter, r *http.Request) {
	if h.queries == nil {
		flashError(w, r, h.renderer, RouteContact, msgSaveFailed)
		return
	}
	if !parseFormOrRedirect(w, r, h.renderer, RouteContact) {
		return
	}

	name := strings.TrimSpace(h.strict.Sanitize(r.FormValue("name")))
	phone := strings.TrimSpace(h.strict.Sanitize(r.FormValue("phone")))
	email := strings.TrimSpace(h.strict.Sanitize(r.FormValue("email")))
	message := strings.TrimSpace(h.strict.Sanitize(r.FormValue("message")))

	if name == "" || message == "" {
		flashError(w, r, h.renderer, RouteContact, "الاسم والرسالة مطلوبان")
		return
	}

	publicID, err := h.queries.CreateContactMessage(r.Context(), store.CreateContactMessageParams{
		Name:    name,
		Phone:   phone,
		Email:   email,
		Message: message,
	})
	if err != nil {
		slog.Error("failed to save contact message", "error", err)
		flashError(w, r, h.renderer, RouteContact, msgSaveFailed)
		return
	}

	if h.events != nil {
		_ = h.events.LogContactEvent(r.Context(), "info", "contact message received", 0,
			map[string]any{"public_id": publicID})
	}

	flashSuccess(w, r, h.renderer, RouteContact, "شكراً لتواصلكم، سنرد عليكم قريباً")
}

// Blog renders the published pages list.
func (h *FrontendHandler) Blog(w http.ResponseWriter, r *http.Request) {
	layout := h.layout(r)

	var pages []model.Page
	if h.queries != nil {
		var err error
		pages, err = h.queries.ListPublishedPages(r.Context())
		if err != nil {
			slog.Error("failed to list pages", "error", err)
			pages = []model.Page{}
		}
	}

	data := map[string]any{
		"Layout": layout,
		"Pages":  pages,
	}
	h.renderPage(w, r, "frontend/blog", "المدونة", data)
}

// Page renders a single published page by slug, with its markdown body
// converted to sanitized HTML.
func (h *FrontendHandler) Page(w http.ResponseWriter, r *http.Request) {
	if h.queries == nil {
		h.NotFound(w, r)
		return
	}
	slug := chi.URLParam(r, "slug")

	page, err := h.queries.GetPublishedPageBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			h.NotFound(w, r)
			return
		}
		logAndInternalError(w, "failed to get page", "error", err, "slug", slug)
		return
	}

	layout := h.layout(r)
	data := map[string]any{
		"Layout": layout,
		"Page":   page,
		"Body":   h.markdownToHTML(page.Body),
	}
	h.renderPage(w, r, "frontend/page", page.Title, data)
}

// NotFound renders the storefront 404 page.
func (h *FrontendHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	layout := h.layout(r)
	w.WriteHeader(http.StatusNotFound)
	data := render.TemplateData{
		Title: "الصفحة غير موجودة",
		Head:  h.settings.Head().Render(),
		Data:  map[string]any{"Layout": layout},
	}
	if err := h.renderer.Render(w, r, "frontend/404", data); err != nil {
		slog.Error("failed to render 404 page", "error", err)
	}
}

// renderPage renders a frontend template with the shared head markup.
func (h *FrontendHandler) renderPage(w http.ResponseWriter, r *http.Request, name, title string, data map[string]any) {
	td := render.TemplateData{
		Title: title,
		Head:  h.settings.Head().Render(),
		Data:  data,
	}
	if err := h.renderer.Render(w, r, name, td); err != nil {
		logAndInternalError(w, "failed to render page", "error", err, "template", name)
	}
}
