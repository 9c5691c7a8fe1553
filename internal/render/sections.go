// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package render

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/joostry/joostry/internal/model"
)

// Default Arabic copy rendered when a homepage section has no configured
// design record or is explicitly hidden.
const (
	DefaultHeroTitle     = "أهلاً بكم في جوستري"
	DefaultHeroSubtitle  = "عصائر طبيعية طازجة، معصورة يومياً"
	DefaultFeaturedTitle = "منتجاتنا المميزة"
	DefaultCategories    = "تصفح الأقسام"
	DefaultReviewsTitle  = "آراء عملائنا"
	DefaultAboutTitle    = "من نحن"
	DefaultAboutBody     = "جوستري متجر عصائر طبيعية 100%، نعصر فواكهنا يومياً ونوصلها إليك طازجة."
)

// fontSizeRem maps the stored font-size tier to a CSS value.
// Unknown tiers fall back to medium.
func fontSizeRem(tier string) string {
	switch tier {
	case model.FontSizeSmall:
		return "0.9rem"
	case model.FontSizeLarge:
		return "1.2rem"
	default:
		return "1rem"
	}
}

// paddingRem maps the stored padding tier to a CSS value.
// Unknown tiers fall back to normal.
func paddingRem(tier string) string {
	switch tier {
	case model.PaddingSmall:
		return "2rem"
	case model.PaddingLarge:
		return "6rem"
	default:
		return "4rem"
	}
}

// textAlign passes the stored alignment through, defaulting to center.
func textAlign(align string) string {
	switch align {
	case model.AlignLeft, model.AlignRight, model.AlignCenter:
		return align
	default:
		return model.AlignCenter
	}
}

// SectionView is the render-ready form of one homepage section: the design
// record resolved into concrete CSS values plus the visibility decision.
type SectionView struct {
	Name    string
	Visible bool
	Style   template.CSS
	// CustomCSS is the sanitized admin-entered block, empty when none.
	CustomCSS template.CSS
}

// forbidden CSS fragments; admin custom CSS is plain declarations, anything
// that can escape the style element or pull remote content is dropped.
var cssBlocklist = []string{"<", ">", "@import", "expression(", "javascript:", "url("}

// sanitizeCSS returns the custom CSS if it is clean, empty string otherwise.
func sanitizeCSS(css string) string {
	lower := strings.ToLower(css)
	for _, bad := range cssBlocklist {
		if strings.Contains(lower, bad) {
			return ""
		}
	}
	return css
}

// BuildSectionView derives the inline style for a section from its design
// record. The hidden flag only matters for the slideshow at the caller
// level; every other section swaps to default content instead.
func BuildSectionView(hs model.HomeSection) SectionView {
	var style strings.Builder
	if hs.BackgroundColor != "" {
		fmt.Fprintf(&style, "background-color: %s; ", sanitizeCSS(hs.BackgroundColor))
	}
	if hs.TextColor != "" {
		fmt.Fprintf(&style, "color: %s; ", sanitizeCSS(hs.TextColor))
	}
	fmt.Fprintf(&style, "text-align: %s; ", textAlign(hs.TextAlignment))
	fmt.Fprintf(&style, "font-size: %s; ", fontSizeRem(hs.FontSize))
	fmt.Fprintf(&style, "padding-top: %s; ", paddingRem(hs.PaddingTop))
	fmt.Fprintf(&style, "padding-bottom: %s;", paddingRem(hs.PaddingBottom))

	return SectionView{
		Name:      hs.Section,
		Visible:   hs.IsVisible,
		Style:     template.CSS(style.String()),
		CustomCSS: template.CSS(sanitizeCSS(hs.CustomCSS)),
	}
}
