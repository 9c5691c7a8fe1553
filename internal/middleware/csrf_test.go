package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestDefaultCSRFConfigDevelopment(t *testing.T) {
	key := []byte("0123456789abcdef0123456789abcdef")
	cfg := DefaultCSRFConfig(key, true)

	if len(cfg.AuthKey) != 32 {
		t.Fatalf("AuthKey length = %d, want 32", len(cfg.AuthKey))
	}
	if len(cfg.TrustedOrigins) != 2 {
		t.Fatalf("TrustedOrigins = %v, want localhost pair", cfg.TrustedOrigins)
	}
	for _, origin := range cfg.TrustedOrigins {
		// The csrf library wants bare host:port values here. A full URL
		// makes every cross-origin check fail with "origin invalid".
		if strings.HasPrefix(origin, "http") {
			t.Errorf("TrustedOrigin %q must be host:port, not a URL", origin)
		}
		if !strings.Contains(origin, ":") {
			t.Errorf("TrustedOrigin %q is missing a port", origin)
		}
	}
}

func TestDefaultCSRFConfigProduction(t *testing.T) {
	cfg := DefaultCSRFConfig([]byte("0123456789abcdef0123456789abcdef"), false)

	if len(cfg.TrustedOrigins) != 0 {
		t.Fatalf("production config should trust no extra origins, got %v", cfg.TrustedOrigins)
	}
}

func TestCSRFWrapsHandler(t *testing.T) {
	cfg := DefaultCSRFConfig([]byte("0123456789abcdef0123456789abcdef"), true)
	mw := CSRF(cfg)
	if mw == nil {
		t.Fatal("CSRF returned nil middleware")
	}

	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// Same-origin GET passes straight through.
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/login", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("GET status = %d, want 200", rr.Code)
	}
}

func TestCSRFRejectsCrossSitePost(t *testing.T) {
	cfg := DefaultCSRFConfig([]byte("0123456789abcdef0123456789abcdef"), false)
	handler := CSRF(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/admin/products", nil)
	req.Header.Set("Sec-Fetch-Site", "cross-site")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Fatalf("cross-site POST status = %d, want 403", rr.Code)
	}
}

func TestCSRFCustomErrorHandler(t *testing.T) {
	cfg := DefaultCSRFConfig([]byte("0123456789abcdef0123456789abcdef"), false)
	cfg.ErrorHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rejected", http.StatusTeapot)
	})

	handler := CSRF(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/admin/products", nil)
	req.Header.Set("Sec-Fetch-Site", "cross-site")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusTeapot {
		t.Fatalf("status = %d, want custom error handler's 418", rr.Code)
	}
}

func TestSkipCSRFMarksListedPaths(t *testing.T) {
	cfg := DefaultCSRFConfig([]byte("0123456789abcdef0123456789abcdef"), false)

	var reached bool
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	})
	handler := SkipCSRF("/health")(CSRF(cfg)(inner))

	// Cross-site POST to a skipped path still reaches the handler.
	reached = false
	req := httptest.NewRequest(http.MethodPost, "/health", nil)
	req.Header.Set("Sec-Fetch-Site", "cross-site")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if !reached || rr.Code != http.StatusOK {
		t.Fatalf("skipped path: reached=%v status=%d", reached, rr.Code)
	}

	// The same POST to an unlisted path is still rejected.
	reached = false
	req = httptest.NewRequest(http.MethodPost, "/admin/settings", nil)
	req.Header.Set("Sec-Fetch-Site", "cross-site")
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if reached || rr.Code != http.StatusForbidden {
		t.Fatalf("unlisted path: reached=%v status=%d", reached, rr.Code)
	}
}

func TestSkipCSRFWithNoPaths(t *testing.T) {
	handler := SkipCSRF()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/contact", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
}
