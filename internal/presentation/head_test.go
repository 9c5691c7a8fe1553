package presentation

import (
	"strings"
	"testing"
)

func TestApplySEOIdempotent(t *testing.T) {
	h := NewHead()

	fields := SEOFields{
		Title:       "جوستري",
		Description: "متجر عصائر طبيعية",
		OGTitle:     "جوستري",
		OGType:      "website",
	}
	h.ApplySEO(fields)
	h.ApplySEO(fields)
	h.ApplySEO(fields)

	out := string(h.Render())

	if got := strings.Count(out, `name="description"`); got != 1 {
		t.Errorf("description tag count = %d, want 1", got)
	}
	if got := strings.Count(out, `property="og:title"`); got != 1 {
		t.Errorf("og:title tag count = %d, want 1", got)
	}
	if got := strings.Count(out, "<title>"); got != 1 {
		t.Errorf("title tag count = %d, want 1", got)
	}
}

func TestApplySEOUpdatesInPlace(t *testing.T) {
	h := NewHead()

	h.ApplySEO(SEOFields{Description: "old"})
	h.ApplySEO(SEOFields{Description: "new"})

	out := string(h.Render())
	if strings.Contains(out, `content="old"`) {
		t.Error("stale description should have been replaced")
	}
	if !strings.Contains(out, `content="new"`) {
		t.Error("updated description missing")
	}
}

func TestApplySEOEmptyFieldRemovesTag(t *testing.T) {
	h := NewHead()

	h.ApplySEO(SEOFields{Keywords: "juice, عصير"})
	h.ApplySEO(SEOFields{Keywords: ""})

	out := string(h.Render())
	if strings.Contains(out, `name="keywords"`) {
		t.Error("keywords tag should be removed when field is empty")
	}
}

func TestArticleTimestampsOnlyForArticles(t *testing.T) {
	h := NewHead()

	h.ApplySEO(SEOFields{OGType: "article", PublishedTime: "2026-01-01T00:00:00Z"})
	if !strings.Contains(string(h.Render()), "article:published_time") {
		t.Error("article timestamp missing for og:type=article")
	}

	h.ApplySEO(SEOFields{OGType: "website", PublishedTime: "2026-01-01T00:00:00Z"})
	if strings.Contains(string(h.Render()), "article:published_time") {
		t.Error("article timestamp should be dropped for og:type=website")
	}
}

func TestApplyThemeValues(t *testing.T) {
	h := NewHead()

	h.ApplyTheme(ThemeColors{
		Primary:   "#FF6B35",
		Secondary: "#2EC4B6",
		Accent:    "#FFBF69",
	})

	out := string(h.Render())
	for _, want := range []string{
		"--color-primary: #FF6B35",
		"--color-secondary: #2EC4B6",
		"--color-accent: #FFBF69",
		".bg-primary",
		".gradient-brand",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered head missing %q", want)
		}
	}
}

func TestApplyThemeReplacesNotStacks(t *testing.T) {
	h := NewHead()

	h.ApplyTheme(ThemeColors{Primary: "#111111"})
	h.ApplyTheme(ThemeColors{Primary: "#222222"})

	out := string(h.Render())
	if got := strings.Count(out, `<style id="theme-utilities">`); got != 1 {
		t.Errorf("theme stylesheet count = %d, want 1", got)
	}
	if strings.Contains(out, "#111111") {
		t.Error("old theme values should be gone after re-apply")
	}
	if !strings.Contains(out, "#222222") {
		t.Error("new primary color missing")
	}
}

func TestApplyThemeRejectsNonHexColors(t *testing.T) {
	h := NewHead()

	h.ApplyTheme(ThemeColors{Primary: "red; } body { display:none"})

	out := string(h.Render())
	if strings.Contains(out, "display:none") {
		t.Error("non-hex color must not reach the stylesheet")
	}
	if !strings.Contains(out, "--color-primary: #FF6B35") {
		t.Error("fallback primary color expected")
	}
}

func TestRemoveStylesheet(t *testing.T) {
	h := NewHead()

	h.SetStylesheet("custom", ".x { color: red; }")
	if !strings.Contains(string(h.Render()), `<style id="custom">`) {
		t.Fatal("stylesheet not injected")
	}

	h.RemoveStylesheet("custom")
	if strings.Contains(string(h.Render()), `<style id="custom">`) {
		t.Error("stylesheet should be removed")
	}
}

func TestApplyFavicon(t *testing.T) {
	h := NewHead()

	h.ApplyFavicon("/static/favicon.ico")
	h.ApplyFavicon("/static/favicon-v2.ico")

	out := string(h.Render())
	if got := strings.Count(out, `rel="icon"`); got != 1 {
		t.Errorf("favicon link count = %d, want 1", got)
	}
	if !strings.Contains(out, "favicon-v2.ico") {
		t.Error("favicon should point at the latest URL")
	}

	h.ApplyFavicon("")
	if strings.Contains(string(h.Render()), `rel="icon"`) {
		t.Error("empty URL should remove the favicon link")
	}
}

func TestRenderEscapesValues(t *testing.T) {
	h := NewHead()

	h.ApplySEO(SEOFields{Description: `"><script>alert(1)</script>`})

	out := string(h.Render())
	if strings.Contains(out, "<script>") {
		t.Error("meta content must be escaped")
	}
}
