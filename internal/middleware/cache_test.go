// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestStaticCacheHeader(t *testing.T) {
	tests := []struct {
		name   string
		maxAge int
		want   string
	}{
		{"assets for a year", 31536000, "public, max-age=31536000"},
		{"sitemap for an hour", 3600, "public, max-age=3600"},
		{"no caching", 0, "public, max-age=0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := StaticCache(tt.maxAge)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/static/dist/app.css", nil))

			if got := rr.Header().Get("Cache-Control"); got != tt.want {
				t.Errorf("Cache-Control = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStaticCacheLeavesResponseAlone(t *testing.T) {
	handler := StaticCache(31536000)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/css")
		_, _ = w.Write([]byte("body{direction:rtl}"))
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/static/dist/app.css", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "text/css" {
		t.Fatalf("Content-Type = %q", ct)
	}
	if rr.Body.String() != "body{direction:rtl}" {
		t.Fatalf("Body = %q", rr.Body.String())
	}
}
