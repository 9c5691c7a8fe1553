// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package presentation

import (
	"fmt"
	"regexp"
	"strings"
)

// ThemeStylesheetID names the utility stylesheet managed by ApplyTheme.
// Re-applying the theme replaces the block under this id.
const ThemeStylesheetID = "theme-utilities"

// ThemeColors are the three brand colors driving the utility classes.
type ThemeColors struct {
	Primary   string
	Secondary string
	Accent    string
}

var hexColorRe = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// safeColor returns the color if it is a hex literal, otherwise the
// fallback. Theme values come from the admin form, so anything else is
// rejected before reaching a stylesheet.
func safeColor(c, fallback string) string {
	if hexColorRe.MatchString(c) {
		return c
	}
	return fallback
}

// ApplyTheme sets the three CSS custom properties on the root scope and
// replaces the named utility stylesheet mapping brand classes to the colors.
func (h *Head) ApplyTheme(colors ThemeColors) {
	primary := safeColor(colors.Primary, "#FF6B35")
	secondary := safeColor(colors.Secondary, "#2EC4B6")
	accent := safeColor(colors.Accent, "#FFBF69")

	var b strings.Builder
	fmt.Fprintf(&b, `:root {
	--color-primary: %s;
	--color-secondary: %s;
	--color-accent: %s;
}`, primary, secondary, accent)
	b.WriteString(`
.bg-primary { background-color: var(--color-primary); }
.bg-secondary { background-color: var(--color-secondary); }
.bg-accent { background-color: var(--color-accent); }
.text-primary { color: var(--color-primary); }
.text-secondary { color: var(--color-secondary); }
.text-accent { color: var(--color-accent); }
.border-primary { border-color: var(--color-primary); }
.btn-primary { background-color: var(--color-primary); color: #fff; }
.btn-primary:hover { filter: brightness(0.92); }
.btn-outline { border: 1px solid var(--color-primary); color: var(--color-primary); }
.gradient-brand { background: linear-gradient(135deg, var(--color-primary), var(--color-accent)); }
.focus-ring:focus { outline: 2px solid var(--color-secondary); outline-offset: 2px; }
.status-ok { color: var(--color-secondary); }
.status-warn { color: var(--color-accent); }`)

	h.SetStylesheet(ThemeStylesheetID, b.String())
	h.mu.Lock()
	h.upsert("theme-color", entry{kind: kindMetaName, name: "theme-color", val: primary})
	h.mu.Unlock()
}
