package store

import (
	"context"
	"time"

	"github.com/joostry/joostry/internal/model"
)

// Settings collections are singletons pinned to id = 1. GetX returns
// sql.ErrNoRows for a never-configured site; UpsertX writes the whole record
// with an ON CONFLICT update (the conflict key is the pinned id).

const siteSettingsColumns = `id, site_name, description, logo_url, favicon_url,
	primary_color, secondary_color, accent_color,
	phone, email, address, working_hours,
	facebook_url, instagram_url, twitter_url, whatsapp_url,
	meta_title, meta_description, meta_keywords, maintenance_mode, updated_at`

func scanSiteSettings(s scanner) (model.SiteSettings, error) {
	var ss model.SiteSettings
	err := s.Scan(&ss.ID, &ss.SiteName, &ss.Description, &ss.LogoURL, &ss.FaviconURL,
		&ss.PrimaryColor, &ss.SecondaryColor, &ss.AccentColor,
		&ss.Phone, &ss.Email, &ss.Address, &ss.WorkingHours,
		&ss.FacebookURL, &ss.InstagramURL, &ss.TwitterURL, &ss.WhatsappURL,
		&ss.MetaTitle, &ss.MetaDescription, &ss.MetaKeywords, &ss.MaintenanceMode, &ss.UpdatedAt)
	return ss, err
}

// GetSiteSettings fetches the singleton site identity/theme record.
func (q *Queries) GetSiteSettings(ctx context.Context) (model.SiteSettings, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+siteSettingsColumns+` FROM site_settings WHERE id = 1`)
	return scanSiteSettings(row)
}

// UpsertSiteSettings writes the singleton site settings record.
func (q *Queries) UpsertSiteSettings(ctx context.Context, ss model.SiteSettings) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO site_settings (
			id, site_name, description, logo_url, favicon_url,
			primary_color, secondary_color, accent_color,
			phone, email, address, working_hours,
			facebook_url, instagram_url, twitter_url, whatsapp_url,
			meta_title, meta_description, meta_keywords, maintenance_mode, updated_at
		) VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			site_name = excluded.site_name,
			description = excluded.description,
			logo_url = excluded.logo_url,
			favicon_url = excluded.favicon_url,
			primary_color = excluded.primary_color,
			secondary_color = excluded.secondary_color,
			accent_color = excluded.accent_color,
			phone = excluded.phone,
			email = excluded.email,
			address = excluded.address,
			working_hours = excluded.working_hours,
			facebook_url = excluded.facebook_url,
			instagram_url = excluded.instagram_url,
			twitter_url = excluded.twitter_url,
			whatsapp_url = excluded.whatsapp_url,
			meta_title = excluded.meta_title,
			meta_description = excluded.meta_description,
			meta_keywords = excluded.meta_keywords,
			maintenance_mode = excluded.maintenance_mode,
			updated_at = excluded.updated_at`,
		ss.SiteName, ss.Description, ss.LogoURL, ss.FaviconURL,
		ss.PrimaryColor, ss.SecondaryColor, ss.AccentColor,
		ss.Phone, ss.Email, ss.Address, ss.WorkingHours,
		ss.FacebookURL, ss.InstagramURL, ss.TwitterURL, ss.WhatsappURL,
		ss.MetaTitle, ss.MetaDescription, ss.MetaKeywords, ss.MaintenanceMode, time.Now(),
	)
	return err
}

const headerSettingsColumns = `id, logo_url, logo_position, text_color, background_color, font_family, font_size, updated_at`

func scanHeaderSettings(s scanner) (model.HeaderSettings, error) {
	var hs model.HeaderSettings
	err := s.Scan(&hs.ID, &hs.LogoURL, &hs.LogoPosition, &hs.TextColor, &hs.BackgroundColor,
		&hs.FontFamily, &hs.FontSize, &hs.UpdatedAt)
	return hs, err
}

// GetHeaderSettings fetches the singleton header record.
func (q *Queries) GetHeaderSettings(ctx context.Context) (model.HeaderSettings, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+headerSettingsColumns+` FROM header_settings WHERE id = 1`)
	return scanHeaderSettings(row)
}

// UpsertHeaderSettings writes the singleton header record.
func (q *Queries) UpsertHeaderSettings(ctx context.Context, hs model.HeaderSettings) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO header_settings (id, logo_url, logo_position, text_color, background_color, font_family, font_size, updated_at)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			logo_url = excluded.logo_url,
			logo_position = excluded.logo_position,
			text_color = excluded.text_color,
			background_color = excluded.background_color,
			font_family = excluded.font_family,
			font_size = excluded.font_size,
			updated_at = excluded.updated_at`,
		hs.LogoURL, hs.LogoPosition, hs.TextColor, hs.BackgroundColor, hs.FontFamily, hs.FontSize, time.Now(),
	)
	return err
}

const menuItemColumns = `id, label, label_en, url, is_visible, position`

func scanMenuItem(s scanner) (model.MenuItem, error) {
	var m model.MenuItem
	err := s.Scan(&m.ID, &m.Label, &m.LabelEn, &m.URL, &m.IsVisible, &m.Position)
	return m, err
}

// ListMenuItems returns every menu item ordered by position ascending.
func (q *Queries) ListMenuItems(ctx context.Context) ([]model.MenuItem, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT `+menuItemColumns+` FROM menu_items ORDER BY position ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	return collectRows(rows, scanMenuItem)
}

// ListVisibleMenuItems returns visible menu items ordered by position ascending.
func (q *Queries) ListVisibleMenuItems(ctx context.Context) ([]model.MenuItem, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+menuItemColumns+` FROM menu_items WHERE is_visible = 1 ORDER BY position ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	return collectRows(rows, scanMenuItem)
}

// CreateMenuItemParams holds fields for CreateMenuItem.
type CreateMenuItemParams struct {
	Label     string
	LabelEn   string
	URL       string
	IsVisible bool
	Position  int64
}

// CreateMenuItem inserts a menu item and returns its ID.
func (q *Queries) CreateMenuItem(ctx context.Context, arg CreateMenuItemParams) (int64, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO menu_items (label, label_en, url, is_visible, position) VALUES (?, ?, ?, ?, ?)`,
		arg.Label, arg.LabelEn, arg.URL, arg.IsVisible, arg.Position,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// UpdateMenuItem rewrites a menu item.
func (q *Queries) UpdateMenuItem(ctx context.Context, m model.MenuItem) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE menu_items SET label = ?, label_en = ?, url = ?, is_visible = ?, position = ? WHERE id = ?`,
		m.Label, m.LabelEn, m.URL, m.IsVisible, m.Position, m.ID,
	)
	return err
}

// SetMenuItemVisible toggles a menu item's visibility.
func (q *Queries) SetMenuItemVisible(ctx context.Context, id int64, visible bool) error {
	_, err := q.db.ExecContext(ctx, `UPDATE menu_items SET is_visible = ? WHERE id = ?`, visible, id)
	return err
}

// DeleteMenuItem removes a menu item.
func (q *Queries) DeleteMenuItem(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM menu_items WHERE id = ?`, id)
	return err
}

const footerSettingsColumns = `id, company_name, description, phone, email, address,
	quick_link1_text, quick_link1_url, quick_link2_text, quick_link2_url,
	quick_link3_text, quick_link3_url, quick_link4_text, quick_link4_url,
	quick_link5_text, quick_link5_url,
	facebook_url, instagram_url, twitter_url,
	background_color, text_color, link_color,
	copyright_text, copyright_visible, updated_at`

func scanFooterSettings(s scanner) (model.FooterSettings, error) {
	var fs model.FooterSettings
	err := s.Scan(&fs.ID, &fs.CompanyName, &fs.Description, &fs.Phone, &fs.Email, &fs.Address,
		&fs.QuickLink1Text, &fs.QuickLink1URL, &fs.QuickLink2Text, &fs.QuickLink2URL,
		&fs.QuickLink3Text, &fs.QuickLink3URL, &fs.QuickLink4Text, &fs.QuickLink4URL,
		&fs.QuickLink5Text, &fs.QuickLink5URL,
		&fs.FacebookURL, &fs.InstagramURL, &fs.TwitterURL,
		&fs.BackgroundColor, &fs.TextColor, &fs.LinkColor,
		&fs.CopyrightText, &fs.CopyrightVisible, &fs.UpdatedAt)
	return fs, err
}

// GetFooterSettings fetches the singleton footer record.
func (q *Queries) GetFooterSettings(ctx context.Context) (model.FooterSettings, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+footerSettingsColumns+` FROM footer_settings WHERE id = 1`)
	return scanFooterSettings(row)
}

// UpsertFooterSettings writes the singleton footer record.
func (q *Queries) UpsertFooterSettings(ctx context.Context, fs model.FooterSettings) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO footer_settings (
			id, company_name, description, phone, email, address,
			quick_link1_text, quick_link1_url, quick_link2_text, quick_link2_url,
			quick_link3_text, quick_link3_url, quick_link4_text, quick_link4_url,
			quick_link5_text, quick_link5_url,
			facebook_url, instagram_url, twitter_url,
			background_color, text_color, link_color,
			copyright_text, copyright_visible, updated_at
		) VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			company_name = excluded.company_name,
			description = excluded.description,
			phone = excluded.phone,
			email = excluded.email,
			address = excluded.address,
			quick_link1_text = excluded.quick_link1_text,
			quick_link1_url = excluded.quick_link1_url,
			quick_link2_text = excluded.quick_link2_text,
			quick_link2_url = excluded.quick_link2_url,
			quick_link3_text = excluded.quick_link3_text,
			quick_link3_url = excluded.quick_link3_url,
			quick_link4_text = excluded.quick_link4_text,
			quick_link4_url = excluded.quick_link4_url,
			quick_link5_text = excluded.quick_link5_text,
			quick_link5_url = excluded.quick_link5_url,
			facebook_url = excluded.facebook_url,
			instagram_url = excluded.instagram_url,
			twitter_url = excluded.twitter_url,
			background_color = excluded.background_color,
			text_color = excluded.text_color,
			link_color = excluded.link_color,
			copyright_text = excluded.copyright_text,
			copyright_visible = excluded.copyright_visible,
			updated_at = excluded.updated_at`,
		fs.CompanyName, fs.Description, fs.Phone, fs.Email, fs.Address,
		fs.QuickLink1Text, fs.QuickLink1URL, fs.QuickLink2Text, fs.QuickLink2URL,
		fs.QuickLink3Text, fs.QuickLink3URL, fs.QuickLink4Text, fs.QuickLink4URL,
		fs.QuickLink5Text, fs.QuickLink5URL,
		fs.FacebookURL, fs.InstagramURL, fs.TwitterURL,
		fs.BackgroundColor, fs.TextColor, fs.LinkColor,
		fs.CopyrightText, fs.CopyrightVisible, time.Now(),
	)
	return err
}

const homeSectionColumns = `id, section, is_visible, background_color, text_color,
	text_alignment, font_size, padding_top, padding_bottom, custom_css, updated_at`

func scanHomeSection(s scanner) (model.HomeSection, error) {
	var hs model.HomeSection
	err := s.Scan(&hs.ID, &hs.Section, &hs.IsVisible, &hs.BackgroundColor, &hs.TextColor,
		&hs.TextAlignment, &hs.FontSize, &hs.PaddingTop, &hs.PaddingBottom, &hs.CustomCSS, &hs.UpdatedAt)
	return hs, err
}

// GetHomeSection fetches the design record for one named homepage section.
func (q *Queries) GetHomeSection(ctx context.Context, section string) (model.HomeSection, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+homeSectionColumns+` FROM home_sections WHERE section = ?`, section)
	return scanHomeSection(row)
}

// ListHomeSections returns every homepage section design record.
func (q *Queries) ListHomeSections(ctx context.Context) ([]model.HomeSection, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT `+homeSectionColumns+` FROM home_sections ORDER BY section ASC`)
	if err != nil {
		return nil, err
	}
	return collectRows(rows, scanHomeSection)
}

// UpsertHomeSection writes a section design record keyed by section name.
func (q *Queries) UpsertHomeSection(ctx context.Context, hs model.HomeSection) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO home_sections (
			section, is_visible, background_color, text_color,
			text_alignment, font_size, padding_top, padding_bottom, custom_css, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(section) DO UPDATE SET
			is_visible = excluded.is_visible,
			background_color = excluded.background_color,
			text_color = excluded.text_color,
			text_alignment = excluded.text_alignment,
			font_size = excluded.font_size,
			padding_top = excluded.padding_top,
			padding_bottom = excluded.padding_bottom,
			custom_css = excluded.custom_css,
			updated_at = excluded.updated_at`,
		hs.Section, hs.IsVisible, hs.BackgroundColor, hs.TextColor,
		hs.TextAlignment, hs.FontSize, hs.PaddingTop, hs.PaddingBottom, hs.CustomCSS, time.Now(),
	)
	return err
}

const contactSettingsColumns = `id, title, subtitle, phone, email, address, working_hours, map_embed_url, show_form, updated_at`

func scanContactSettings(s scanner) (model.ContactSettings, error) {
	var cs model.ContactSettings
	err := s.Scan(&cs.ID, &cs.Title, &cs.Subtitle, &cs.Phone, &cs.Email, &cs.Address,
		&cs.WorkingHours, &cs.MapEmbedURL, &cs.ShowForm, &cs.UpdatedAt)
	return cs, err
}

// GetContactSettings fetches the singleton contact page record.
func (q *Queries) GetContactSettings(ctx context.Context) (model.ContactSettings, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+contactSettingsColumns+` FROM contact_settings WHERE id = 1`)
	return scanContactSettings(row)
}

// UpsertContactSettings writes the singleton contact page record.
func (q *Queries) UpsertContactSettings(ctx context.Context, cs model.ContactSettings) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO contact_settings (id, title, subtitle, phone, email, address, working_hours, map_embed_url, show_form, updated_at)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			subtitle = excluded.subtitle,
			phone = excluded.phone,
			email = excluded.email,
			address = excluded.address,
			working_hours = excluded.working_hours,
			map_embed_url = excluded.map_embed_url,
			show_form = excluded.show_form,
			updated_at = excluded.updated_at`,
		cs.Title, cs.Subtitle, cs.Phone, cs.Email, cs.Address, cs.WorkingHours, cs.MapEmbedURL, cs.ShowForm, time.Now(),
	)
	return err
}

const slideshowSettingsColumns = `id, is_enabled, autoplay, interval_ms, show_nav, show_indicators, height, updated_at, updated_by`

func scanSlideshowSettings(s scanner) (model.SlideshowSettings, error) {
	var ss model.SlideshowSettings
	err := s.Scan(&ss.ID, &ss.IsEnabled, &ss.Autoplay, &ss.IntervalMs, &ss.ShowNav,
		&ss.ShowIndicators, &ss.Height, &ss.UpdatedAt, &ss.UpdatedBy)
	return ss, err
}

// GetSlideshowSettings fetches the singleton slideshow behaviour record.
func (q *Queries) GetSlideshowSettings(ctx context.Context) (model.SlideshowSettings, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+slideshowSettingsColumns+` FROM slideshow_settings WHERE id = 1`)
	return scanSlideshowSettings(row)
}

// UpsertSlideshowSettings writes the singleton slideshow behaviour record.
func (q *Queries) UpsertSlideshowSettings(ctx context.Context, ss model.SlideshowSettings) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO slideshow_settings (id, is_enabled, autoplay, interval_ms, show_nav, show_indicators, height, updated_at, updated_by)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			is_enabled = excluded.is_enabled,
			autoplay = excluded.autoplay,
			interval_ms = excluded.interval_ms,
			show_nav = excluded.show_nav,
			show_indicators = excluded.show_indicators,
			height = excluded.height,
			updated_at = excluded.updated_at,
			updated_by = excluded.updated_by`,
		ss.IsEnabled, ss.Autoplay, ss.IntervalMs, ss.ShowNav, ss.ShowIndicators, ss.Height, time.Now(), ss.UpdatedBy,
	)
	return err
}
