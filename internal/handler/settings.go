// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/joostry/joostry/internal/bus"
	"github.com/joostry/joostry/internal/middleware"
	"github.com/joostry/joostry/internal/model"
	"github.com/joostry/joostry/internal/render"
	"github.com/joostry/joostry/internal/service"
	"github.com/joostry/joostry/internal/settings"
	"github.com/joostry/joostry/internal/store"
	"github.com/joostry/joostry/internal/util"
)

const adminSettingsURL = redirectAdmin + RouteAdminSettings

// SettingsAdminHandler manages every site-configuration domain: identity,
// header, menu, footer, homepage sections, contact page, and slideshow
// behaviour. Each save emits the matching bus event so resolvers refetch.
type SettingsAdminHandler struct {
	queries      *store.Queries
	renderer     *render.Renderer
	eventService *service.EventService
	events       *bus.Bus
}

// NewSettingsAdminHandler creates a new SettingsAdminHandler.
func NewSettingsAdminHandler(db *sql.DB, renderer *render.Renderer, events *bus.Bus) *SettingsAdminHandler {
	return &SettingsAdminHandler{
		queries:      store.New(db),
		renderer:     renderer,
		eventService: service.NewEventService(db),
		events:       events,
	}
}

// saveNotify emits the domain event and logs the admin action.
func (h *SettingsAdminHandler) saveNotify(r *http.Request, event, logMsg string) {
	h.events.Emit(event, nil)
	_ = h.eventService.LogSettingsEvent(r.Context(), "info", logMsg,
		middleware.GetUserID(r), nil)
}

// --- Site identity ---

// SiteSettingsForm renders the site identity form. An absent record shows
// the defaults the resolvers would synthesize.
func (h *SettingsAdminHandler) SiteSettingsForm(w http.ResponseWriter, r *http.Request) {
	ss, err := h.queries.GetSiteSettings(r.Context())
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			slog.Error("failed to get site settings", "error", err)
		}
		ss = settings.DefaultSiteSettings()
	}
	renderAdmin(w, r, h.renderer, "admin/settings_site", "إعدادات الموقع", map[string]any{
		"Settings": ss,
	})
}

// SaveSiteSettings persists the site identity singleton.
func (h *SettingsAdminHandler) SaveSiteSettings(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, adminSettingsURL) {
		return
	}

	ss := model.SiteSettings{
		SiteName:        strings.TrimSpace(r.FormValue("site_name")),
		Description:     strings.TrimSpace(r.FormValue("description")),
		LogoURL:         strings.TrimSpace(r.FormValue("logo_url")),
		FaviconURL:      strings.TrimSpace(r.FormValue("favicon_url")),
		PrimaryColor:    strings.TrimSpace(r.FormValue("primary_color")),
		SecondaryColor:  strings.TrimSpace(r.FormValue("secondary_color")),
		AccentColor:     strings.TrimSpace(r.FormValue("accent_color")),
		Phone:           strings.TrimSpace(r.FormValue("phone")),
		Email:           strings.TrimSpace(r.FormValue("email")),
		Address:         strings.TrimSpace(r.FormValue("address")),
		WorkingHours:    strings.TrimSpace(r.FormValue("working_hours")),
		FacebookURL:     strings.TrimSpace(r.FormValue("facebook_url")),
		InstagramURL:    strings.TrimSpace(r.FormValue("instagram_url")),
		TwitterURL:      strings.TrimSpace(r.FormValue("twitter_url")),
		WhatsappURL:     strings.TrimSpace(r.FormValue("whatsapp_url")),
		MetaTitle:       strings.TrimSpace(r.FormValue("meta_title")),
		MetaDescription: strings.TrimSpace(r.FormValue("meta_description")),
		MetaKeywords:    strings.TrimSpace(r.FormValue("meta_keywords")),
		MaintenanceMode: formBool(r, "maintenance_mode"),
	}

	if err := h.queries.UpsertSiteSettings(r.Context(), ss); err != nil {
		slog.Error("failed to save site settings", "error", err)
		flashError(w, r, h.renderer, adminSettingsURL, msgSaveFailed)
		return
	}

	h.saveNotify(r, bus.EventSiteSettingsUpdated, "site settings updated")
	flashSuccess(w, r, h.renderer, adminSettingsURL, msgSaved)
}

// --- Header ---

// HeaderSettingsForm renders the header layout form.
func (h *SettingsAdminHandler) HeaderSettingsForm(w http.ResponseWriter, r *http.Request) {
	hs, err := h.queries.GetHeaderSettings(r.Context())
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			slog.Error("failed to get header settings", "error", err)
		}
		hs = settings.DefaultHeaderSettings()
	}
	renderAdmin(w, r, h.renderer, "admin/settings_header", "إعدادات الترويسة", map[string]any{
		"Settings": hs,
	})
}

// SaveHeaderSettings persists the header singleton.
func (h *SettingsAdminHandler) SaveHeaderSettings(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, adminSettingsURL+"/header") {
		return
	}

	hs := model.HeaderSettings{
		LogoURL:         strings.TrimSpace(r.FormValue("logo_url")),
		LogoPosition:    strings.TrimSpace(r.FormValue("logo_position")),
		TextColor:       strings.TrimSpace(r.FormValue("text_color")),
		BackgroundColor: strings.TrimSpace(r.FormValue("background_color")),
		FontFamily:      strings.TrimSpace(r.FormValue("font_family")),
		FontSize:        strings.TrimSpace(r.FormValue("font_size")),
	}

	if err := h.queries.UpsertHeaderSettings(r.Context(), hs); err != nil {
		slog.Error("failed to save header settings", "error", err)
		flashError(w, r, h.renderer, adminSettingsURL+"/header", msgSaveFailed)
		return
	}

	h.saveNotify(r, bus.EventHeaderSettingsUpdated, "header settings updated")
	flashSuccess(w, r, h.renderer, adminSettingsURL+"/header", msgSaved)
}

// --- Menu items ---

const adminMenuURL = redirectAdmin + RouteAdminMenu

// MenuItems renders the header menu editor.
func (h *SettingsAdminHandler) MenuItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.queries.ListMenuItems(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to list menu items", "error", err)
		return
	}
	renderAdmin(w, r, h.renderer, "admin/settings_menu", "قائمة التنقل", map[string]any{
		"Items": items,
	})
}

// CreateMenuItem adds a menu entry.
func (h *SettingsAdminHandler) CreateMenuItem(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, adminMenuURL) {
		return
	}

	label := strings.TrimSpace(r.FormValue("label"))
	url := strings.TrimSpace(r.FormValue("url"))
	if label == "" || url == "" {
		flashError(w, r, h.renderer, adminMenuURL, "التسمية والرابط مطلوبان")
		return
	}

	_, err := h.queries.CreateMenuItem(r.Context(), store.CreateMenuItemParams{
		Label:     label,
		LabelEn:   strings.TrimSpace(r.FormValue("label_en")),
		URL:       url,
		IsVisible: formBool(r, "is_visible"),
		Position:  formInt64(r, "position"),
	})
	if err != nil {
		slog.Error("failed to create menu item", "error", err)
		flashError(w, r, h.renderer, adminMenuURL, msgSaveFailed)
		return
	}

	h.saveNotify(r, bus.EventHeaderSettingsUpdated, "menu item created")
	flashSuccess(w, r, h.renderer, adminMenuURL, msgSaved)
}

// UpdateMenuItem rewrites a menu entry.
func (h *SettingsAdminHandler) UpdateMenuItem(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamID(w, r, h.renderer, adminMenuURL)
	if !ok {
		return
	}
	if !parseFormOrRedirect(w, r, h.renderer, adminMenuURL) {
		return
	}

	err := h.queries.UpdateMenuItem(r.Context(), model.MenuItem{
		ID:        id,
		Label:     strings.TrimSpace(r.FormValue("label")),
		LabelEn:   strings.TrimSpace(r.FormValue("label_en")),
		URL:       strings.TrimSpace(r.FormValue("url")),
		IsVisible: formBool(r, "is_visible"),
		Position:  formInt64(r, "position"),
	})
	if err != nil {
		slog.Error("failed to update menu item", "error", err, "menu_item_id", id)
		flashError(w, r, h.renderer, adminMenuURL, msgSaveFailed)
		return
	}

	h.saveNotify(r, bus.EventHeaderSettingsUpdated, "menu item updated")
	flashSuccess(w, r, h.renderer, adminMenuURL, msgSaved)
}

// ToggleMenuItemVisible flips menu entry visibility without a refetch.
func (h *SettingsAdminHandler) ToggleMenuItemVisible(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamID(w, r, h.renderer, adminMenuURL)
	if !ok {
		return
	}
	if !parseFormOrRedirect(w, r, h.renderer, adminMenuURL) {
		return
	}

	if err := h.queries.SetMenuItemVisible(r.Context(), id, formBool(r, "value")); err != nil {
		slog.Error("failed to toggle menu item", "error", err, "menu_item_id", id)
		flashError(w, r, h.renderer, adminMenuURL, msgSaveFailed)
		return
	}

	h.events.Emit(bus.EventHeaderSettingsUpdated, nil)
	http.Redirect(w, r, adminMenuURL, http.StatusSeeOther)
}

// DeleteMenuItem removes a menu entry.
func (h *SettingsAdminHandler) DeleteMenuItem(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamID(w, r, h.renderer, adminMenuURL)
	if !ok {
		return
	}

	if err := h.queries.DeleteMenuItem(r.Context(), id); err != nil {
		slog.Error("failed to delete menu item", "error", err, "menu_item_id", id)
		flashError(w, r, h.renderer, adminMenuURL, msgDeleteFailed)
		return
	}

	h.saveNotify(r, bus.EventHeaderSettingsUpdated, "menu item deleted")
	flashSuccess(w, r, h.renderer, adminMenuURL, msgDeleted)
}

// --- Footer ---

// FooterSettingsForm renders the footer form.
func (h *SettingsAdminHandler) FooterSettingsForm(w http.ResponseWriter, r *http.Request) {
	fs, err := h.queries.GetFooterSettings(r.Context())
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			slog.Error("failed to get footer settings", "error", err)
		}
		fs = settings.DefaultFooterSettings()
	}
	renderAdmin(w, r, h.renderer, "admin/settings_footer", "إعدادات التذييل", map[string]any{
		"Settings": fs,
	})
}

// SaveFooterSettings persists the footer singleton. Quick-link pairs are
// sparse; blank pairs are stored blank and skipped at render time.
func (h *SettingsAdminHandler) SaveFooterSettings(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, adminSettingsURL+"/footer") {
		return
	}

	fs := model.FooterSettings{
		CompanyName:      strings.TrimSpace(r.FormValue("company_name")),
		Description:      strings.TrimSpace(r.FormValue("description")),
		Phone:            strings.TrimSpace(r.FormValue("phone")),
		Email:            strings.TrimSpace(r.FormValue("email")),
		Address:          strings.TrimSpace(r.FormValue("address")),
		QuickLink1Text:   strings.TrimSpace(r.FormValue("quick_link1_text")),
		QuickLink1URL:    strings.TrimSpace(r.FormValue("quick_link1_url")),
		QuickLink2Text:   strings.TrimSpace(r.FormValue("quick_link2_text")),
		QuickLink2URL:    strings.TrimSpace(r.FormValue("quick_link2_url")),
		QuickLink3Text:   strings.TrimSpace(r.FormValue("quick_link3_text")),
		QuickLink3URL:    strings.TrimSpace(r.FormValue("quick_link3_url")),
		QuickLink4Text:   strings.TrimSpace(r.FormValue("quick_link4_text")),
		QuickLink4URL:    strings.TrimSpace(r.FormValue("quick_link4_url")),
		QuickLink5Text:   strings.TrimSpace(r.FormValue("quick_link5_text")),
		QuickLink5URL:    strings.TrimSpace(r.FormValue("quick_link5_url")),
		FacebookURL:      strings.TrimSpace(r.FormValue("facebook_url")),
		InstagramURL:     strings.TrimSpace(r.FormValue("instagram_url")),
		TwitterURL:       strings.TrimSpace(r.FormValue("twitter_url")),
		BackgroundColor:  strings.TrimSpace(r.FormValue("background_color")),
		TextColor:        strings.TrimSpace(r.FormValue("text_color")),
		LinkColor:        strings.TrimSpace(r.FormValue("link_color")),
		CopyrightText:    strings.TrimSpace(r.FormValue("copyright_text")),
		CopyrightVisible: formBool(r, "copyright_visible"),
	}

	if err := h.queries.UpsertFooterSettings(r.Context(), fs); err != nil {
		slog.Error("failed to save footer settings", "error", err)
		flashError(w, r, h.renderer, adminSettingsURL+"/footer", msgSaveFailed)
		return
	}

	h.saveNotify(r, bus.EventFooterSettingsUpdated, "footer settings updated")
	flashSuccess(w, r, h.renderer, adminSettingsURL+"/footer", msgSaved)
}

// --- Homepage sections ---

// HomeSections renders the per-section styling editor.
func (h *SettingsAdminHandler) HomeSections(w http.ResponseWriter, r *http.Request) {
	stored, err := h.queries.ListHomeSections(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to list home sections", "error", err)
		return
	}

	byName := make(map[string]model.HomeSection, len(stored))
	for _, s := range stored {
		byName[s.Section] = s
	}

	// Present every known section, stored or default.
	sections := make([]model.HomeSection, 0, len(model.HomeSectionNames))
	for _, name := range model.HomeSectionNames {
		if s, ok := byName[name]; ok {
			sections = append(sections, s)
		} else {
			sections = append(sections, settings.DefaultHomeSection(name))
		}
	}

	renderAdmin(w, r, h.renderer, "admin/settings_home", "أقسام الصفحة الرئيسية", map[string]any{
		"Sections": sections,
	})
}

// SaveHomeSection upserts one section's styling record, keyed by name.
func (h *SettingsAdminHandler) SaveHomeSection(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, adminSettingsURL+"/home") {
		return
	}

	section := r.FormValue("section")
	if !model.IsHomeSection(section) {
		flashError(w, r, h.renderer, adminSettingsURL+"/home", msgNotFound)
		return
	}

	hs := model.HomeSection{
		Section:         section,
		IsVisible:       formBool(r, "is_visible"),
		BackgroundColor: strings.TrimSpace(r.FormValue("background_color")),
		TextColor:       strings.TrimSpace(r.FormValue("text_color")),
		TextAlignment:   strings.TrimSpace(r.FormValue("text_alignment")),
		FontSize:        strings.TrimSpace(r.FormValue("font_size")),
		PaddingTop:      strings.TrimSpace(r.FormValue("padding_top")),
		PaddingBottom:   strings.TrimSpace(r.FormValue("padding_bottom")),
		CustomCSS:       r.FormValue("custom_css"),
	}

	if err := h.queries.UpsertHomeSection(r.Context(), hs); err != nil {
		slog.Error("failed to save home section", "error", err, "section", section)
		flashError(w, r, h.renderer, adminSettingsURL+"/home", msgSaveFailed)
		return
	}

	h.saveNotify(r, bus.EventHomeSectionUpdated, "home section updated: "+section)
	flashSuccess(w, r, h.renderer, adminSettingsURL+"/home", msgSaved)
}

// --- Contact page ---

// ContactSettingsForm renders the contact page form.
func (h *SettingsAdminHandler) ContactSettingsForm(w http.ResponseWriter, r *http.Request) {
	cs, err := h.queries.GetContactSettings(r.Context())
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			slog.Error("failed to get contact settings", "error", err)
		}
		cs = settings.DefaultContactSettings()
	}
	renderAdmin(w, r, h.renderer, "admin/settings_contact", "إعدادات صفحة التواصل", map[string]any{
		"Settings": cs,
	})
}

// SaveContactSettings persists the contact page singleton.
func (h *SettingsAdminHandler) SaveContactSettings(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, adminSettingsURL+"/contact") {
		return
	}

	cs := model.ContactSettings{
		Title:        strings.TrimSpace(r.FormValue("title")),
		Subtitle:     strings.TrimSpace(r.FormValue("subtitle")),
		Phone:        strings.TrimSpace(r.FormValue("phone")),
		Email:        strings.TrimSpace(r.FormValue("email")),
		Address:      strings.TrimSpace(r.FormValue("address")),
		WorkingHours: strings.TrimSpace(r.FormValue("working_hours")),
		MapEmbedURL:  strings.TrimSpace(r.FormValue("map_embed_url")),
		ShowForm:     formBool(r, "show_form"),
	}

	if err := h.queries.UpsertContactSettings(r.Context(), cs); err != nil {
		slog.Error("failed to save contact settings", "error", err)
		flashError(w, r, h.renderer, adminSettingsURL+"/contact", msgSaveFailed)
		return
	}

	h.saveNotify(r, bus.EventContactSettingsUpdated, "contact settings updated")
	flashSuccess(w, r, h.renderer, adminSettingsURL+"/contact", msgSaved)
}

// --- Slideshow behaviour ---

// SlideshowSettingsForm renders the slideshow behaviour form.
func (h *SettingsAdminHandler) SlideshowSettingsForm(w http.ResponseWriter, r *http.Request) {
	ss, err := h.queries.GetSlideshowSettings(r.Context())
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			slog.Error("failed to get slideshow settings", "error", err)
		}
		ss = settings.DefaultSlideshowSettings()
	}
	renderAdmin(w, r, h.renderer, "admin/settings_slideshow", "إعدادات السلايدشو", map[string]any{
		"Settings": ss,
	})
}

// SaveSlideshowSettings persists the slideshow behaviour singleton.
func (h *SettingsAdminHandler) SaveSlideshowSettings(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, adminSettingsURL+"/slideshow") {
		return
	}

	interval := formInt64(r, "interval_ms")
	if interval <= 0 {
		interval = settings.DefaultSlideshowSettings().IntervalMs
	}

	updatedBy := util.NullID(middleware.GetUserID(r))

	ss := model.SlideshowSettings{
		IsEnabled:      formBool(r, "is_enabled"),
		Autoplay:       formBool(r, "autoplay"),
		IntervalMs:     interval,
		ShowNav:        formBool(r, "show_nav"),
		ShowIndicators: formBool(r, "show_indicators"),
		Height:         strings.TrimSpace(r.FormValue("height")),
		UpdatedBy:      updatedBy,
	}

	if err := h.queries.UpsertSlideshowSettings(r.Context(), ss); err != nil {
		slog.Error("failed to save slideshow settings", "error", err)
		flashError(w, r, h.renderer, adminSettingsURL+"/slideshow", msgSaveFailed)
		return
	}

	h.saveNotify(r, bus.EventSlideshowSettingsUpdated, "slideshow settings updated")
	flashSuccess(w, r, h.renderer, adminSettingsURL+"/slideshow", msgSaved)
}
