// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"sort"
	"strconv"
	"strings"
)

// SecurityHeadersConfig controls the security headers attached to every
// response.
type SecurityHeadersConfig struct {
	// IsDevelopment disables HSTS and loosens the CSP.
	IsDevelopment bool

	// ContentSecurityPolicy overrides the default CSP when non-empty.
	ContentSecurityPolicy string

	// HSTSMaxAge is the Strict-Transport-Security max-age in seconds.
	// Zero disables HSTS entirely.
	HSTSMaxAge int

	// HSTSIncludeSubDomains extends the HSTS policy to subdomains.
	HSTSIncludeSubDomains bool

	// HSTSPreload marks the policy eligible for browser preload lists.
	HSTSPreload bool

	// FrameOptions is the X-Frame-Options value: "DENY", "SAMEORIGIN",
	// or empty to omit the header.
	FrameOptions string

	// ReferrerPolicy is the Referrer-Policy value.
	ReferrerPolicy string

	// PermissionsPolicy is the Permissions-Policy value.
	PermissionsPolicy string

	// ExcludePaths lists path prefixes that skip all security headers,
	// e.g. upload directories served with their own policy.
	ExcludePaths []string
}

// DefaultSecurityHeadersConfig returns the policy used at startup.
// Inline styles stay allowed because the theme utilities are injected
// into the page head, and Google Fonts hosts the Arabic web fonts.
func DefaultSecurityHeadersConfig(isDev bool) SecurityHeadersConfig {
	cfg := SecurityHeadersConfig{
		IsDevelopment:  isDev,
		HSTSMaxAge:     31536000, // 1 year
		FrameOptions:   "SAMEORIGIN",
		ReferrerPolicy: "strict-origin-when-cross-origin",
	}

	scriptSrc := "'self' 'unsafe-inline'"
	if isDev {
		// eval is needed for some dev tooling
		scriptSrc += " 'unsafe-eval'"
	} else {
		cfg.HSTSIncludeSubDomains = true
	}

	cfg.ContentSecurityPolicy = buildCSP(map[string]string{
		"default-src": "'self'",
		"script-src":  scriptSrc,
		"style-src":   "'self' 'unsafe-inline' https://fonts.googleapis.com",
		"img-src":     "'self' data: blob: https:",
		"font-src":    "'self' data: https://fonts.gstatic.com",
		"connect-src": "'self'",
		"object-src":  "'none'",
		"base-uri":    "'self'",
		"form-action": "'self'",
	})

	// Deny the browser features a storefront has no business using.
	denied := []string{
		"accelerometer", "browsing-topics", "camera", "geolocation",
		"gyroscope", "interest-cohort", "magnetometer", "microphone",
		"payment", "usb",
	}
	for i, feature := range denied {
		denied[i] = feature + "=()"
	}
	cfg.PermissionsPolicy = strings.Join(denied, ", ")

	return cfg
}

// buildCSP renders a Content-Security-Policy value. Known directives
// come out in a fixed order so the header is stable across restarts.
func buildCSP(directives map[string]string) string {
	order := []string{
		"default-src", "script-src", "style-src", "img-src", "font-src",
		"connect-src", "frame-src", "object-src", "base-uri", "form-action",
		"frame-ancestors", "upgrade-insecure-requests",
	}

	seen := make(map[string]bool, len(order))
	var parts []string
	for _, key := range order {
		if value, ok := directives[key]; ok {
			parts = append(parts, key+" "+value)
			seen[key] = true
		}
	}

	var rest []string
	for key := range directives {
		if !seen[key] {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	for _, key := range rest {
		parts = append(parts, key+" "+directives[key])
	}

	return strings.Join(parts, "; ")
}

// SecurityHeaders returns a middleware that sets the configured headers
// on every response outside the excluded prefixes.
func SecurityHeaders(cfg SecurityHeadersConfig) func(http.Handler) http.Handler {
	// The header set never changes per request, so compute it once.
	headers := map[string]string{
		"X-Content-Type-Options": "nosniff",
		// Legacy header; modern browsers rely on the CSP instead.
		"X-XSS-Protection": "1; mode=block",
	}
	if cfg.ContentSecurityPolicy != "" {
		headers["Content-Security-Policy"] = cfg.ContentSecurityPolicy
	}
	if !cfg.IsDevelopment && cfg.HSTSMaxAge > 0 {
		hsts := "max-age=" + strconv.Itoa(cfg.HSTSMaxAge)
		if cfg.HSTSIncludeSubDomains {
			hsts += "; includeSubDomains"
		}
		if cfg.HSTSPreload {
			hsts += "; preload"
		}
		headers["Strict-Transport-Security"] = hsts
	}
	if cfg.FrameOptions != "" {
		headers["X-Frame-Options"] = cfg.FrameOptions
	}
	if cfg.ReferrerPolicy != "" {
		headers["Referrer-Policy"] = cfg.ReferrerPolicy
	}
	if cfg.PermissionsPolicy != "" {
		headers["Permissions-Policy"] = cfg.PermissionsPolicy
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, prefix := range cfg.ExcludePaths {
				if strings.HasPrefix(r.URL.Path, prefix) {
					next.ServeHTTP(w, r)
					return
				}
			}

			for name, value := range headers {
				w.Header().Set(name, value)
			}
			next.ServeHTTP(w, r)
		})
	}
}
