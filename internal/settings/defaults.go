// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package settings

import "github.com/joostry/joostry/internal/model"

// Default records served when a settings singleton has never been written or
// cannot be fetched. Resolvers return deep copies of these, so the
// storefront always renders a complete Arabic default site.

// DefaultSiteSettings returns the default site identity and theme.
func DefaultSiteSettings() model.SiteSettings {
	return model.SiteSettings{
		SiteName:        "جوستري",
		Description:     "عصائر طبيعية طازجة يومياً",
		PrimaryColor:    "#FF6B35",
		SecondaryColor:  "#2EC4B6",
		AccentColor:     "#FFBF69",
		MetaTitle:       "جوستري — عصائر طبيعية",
		MetaDescription: "متجر جوستري للعصائر الطبيعية الطازجة، توصيل سريع وجودة عالية",
		MetaKeywords:    "عصير, عصائر طبيعية, جوستري, juice",
	}
}

// DefaultHeaderSettings returns the default header layout.
func DefaultHeaderSettings() model.HeaderSettings {
	return model.HeaderSettings{
		LogoPosition:    "right",
		TextColor:       "#1F2937",
		BackgroundColor: "#FFFFFF",
		FontFamily:      "Tajawal, sans-serif",
		FontSize:        "1rem",
	}
}

// DefaultMenuItems returns the default navigation when no menu is configured.
func DefaultMenuItems() []model.MenuItem {
	return []model.MenuItem{
		{Label: "الرئيسية", LabelEn: "Home", URL: "/", IsVisible: true, Position: 1},
		{Label: "المنتجات", LabelEn: "Products", URL: "/products", IsVisible: true, Position: 2},
		{Label: "من نحن", LabelEn: "About", URL: "/about", IsVisible: true, Position: 3},
		{Label: "اتصل بنا", LabelEn: "Contact", URL: "/contact", IsVisible: true, Position: 4},
	}
}

// DefaultFooterSettings returns the default footer.
func DefaultFooterSettings() model.FooterSettings {
	return model.FooterSettings{
		CompanyName:      "جوستري",
		Description:      "عصائر طبيعية 100%، من المزرعة إلى كوبك",
		QuickLink1Text:   "الرئيسية",
		QuickLink1URL:    "/",
		QuickLink2Text:   "المنتجات",
		QuickLink2URL:    "/products",
		QuickLink3Text:   "اتصل بنا",
		QuickLink3URL:    "/contact",
		BackgroundColor:  "#1F2937",
		TextColor:        "#F9FAFB",
		LinkColor:        "#FFBF69",
		CopyrightText:    "© جوستري. جميع الحقوق محفوظة",
		CopyrightVisible: true,
	}
}

// DefaultHomeSection returns the default design record for a named section.
// Slideshow defaults to hidden; every other section defaults to visible.
func DefaultHomeSection(section string) model.HomeSection {
	hs := model.HomeSection{
		Section:       section,
		IsVisible:     section != model.SectionSlideshow,
		TextAlignment: model.AlignCenter,
		FontSize:      model.FontSizeMedium,
		PaddingTop:    model.PaddingNormal,
		PaddingBottom: model.PaddingNormal,
	}
	if section == model.SectionHero {
		hs.FontSize = model.FontSizeLarge
		hs.PaddingTop = model.PaddingLarge
	}
	return hs
}

// DefaultContactSettings returns the default contact page content.
func DefaultContactSettings() model.ContactSettings {
	return model.ContactSettings{
		Title:    "اتصل بنا",
		Subtitle: "يسعدنا تواصلك معنا في أي وقت",
		ShowForm: true,
	}
}

// DefaultSlideshowSettings returns the default slideshow behaviour:
// disabled, so a fresh site renders the static hero instead.
func DefaultSlideshowSettings() model.SlideshowSettings {
	return model.SlideshowSettings{
		IsEnabled:      false,
		Autoplay:       true,
		IntervalMs:     5000,
		ShowNav:        true,
		ShowIndicators: true,
		Height:         "480px",
	}
}
