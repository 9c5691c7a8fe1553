// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// quickProtection builds a LoginProtection with a generous IP limiter
// so only the account-lockout path is exercised.
func quickProtection(maxAttempts int, lockout, window time.Duration) *LoginProtection {
	return NewLoginProtection(LoginProtectionConfig{
		IPRateLimit:       50,
		IPBurst:           100,
		MaxFailedAttempts: maxAttempts,
		LockoutDuration:   lockout,
		AttemptWindow:     window,
	})
}

func TestDefaultLoginProtectionConfig(t *testing.T) {
	cfg := DefaultLoginProtectionConfig()

	if cfg.IPRateLimit != 0.5 {
		t.Errorf("IPRateLimit = %v, want 0.5", cfg.IPRateLimit)
	}
	if cfg.IPBurst != 5 {
		t.Errorf("IPBurst = %d, want 5", cfg.IPBurst)
	}
	if cfg.MaxFailedAttempts != 5 {
		t.Errorf("MaxFailedAttempts = %d, want 5", cfg.MaxFailedAttempts)
	}
	if cfg.LockoutDuration != 15*time.Minute || cfg.AttemptWindow != 15*time.Minute {
		t.Errorf("lockout/window = %v/%v, want 15m each", cfg.LockoutDuration, cfg.AttemptWindow)
	}
}

func TestNewLoginProtectionFillsZeroValues(t *testing.T) {
	lp := NewLoginProtection(LoginProtectionConfig{})

	if lp.maxFailedAttempts != 5 {
		t.Errorf("maxFailedAttempts = %d, want default 5", lp.maxFailedAttempts)
	}
	if lp.lockoutDuration != 15*time.Minute {
		t.Errorf("lockoutDuration = %v, want default 15m", lp.lockoutDuration)
	}
}

func TestAccountLocksAfterMaxAttempts(t *testing.T) {
	lp := quickProtection(3, time.Second, time.Minute)
	email := "admin@joostry.example"

	if locked, _ := lp.IsAccountLocked(email); locked {
		t.Fatal("fresh account should not be locked")
	}

	lp.RecordFailedAttempt(email)
	lp.RecordFailedAttempt(email)
	locked, dur := lp.RecordFailedAttempt(email)
	if !locked {
		t.Fatal("third failure should lock the account")
	}
	if dur <= 0 {
		t.Fatal("lockout duration should be positive")
	}

	locked, remaining := lp.IsAccountLocked(email)
	if !locked || remaining <= 0 {
		t.Fatalf("IsAccountLocked = (%v, %v) right after lockout", locked, remaining)
	}

	time.Sleep(time.Second + 100*time.Millisecond)
	if locked, _ := lp.IsAccountLocked(email); locked {
		t.Fatal("lockout should expire")
	}
}

func TestSuccessfulLoginClearsFailures(t *testing.T) {
	lp := quickProtection(3, time.Minute, time.Minute)
	email := "admin@joostry.example"

	lp.RecordFailedAttempt(email)
	lp.RecordFailedAttempt(email)
	lp.RecordSuccessfulLogin(email)

	if got := lp.GetRemainingAttempts(email); got != 3 {
		t.Fatalf("GetRemainingAttempts = %d, want full 3 after success", got)
	}
}

func TestRemainingAttemptsCountDown(t *testing.T) {
	lp := quickProtection(5, time.Minute, time.Minute)
	email := "staff@joostry.example"

	if got := lp.GetRemainingAttempts(email); got != 5 {
		t.Fatalf("initial remaining = %d, want 5", got)
	}
	lp.RecordFailedAttempt(email)
	lp.RecordFailedAttempt(email)
	if got := lp.GetRemainingAttempts(email); got != 3 {
		t.Fatalf("remaining = %d after two failures, want 3", got)
	}
}

func TestRepeatLockoutsBackOff(t *testing.T) {
	lp := quickProtection(2, 100*time.Millisecond, time.Minute)
	email := "admin@joostry.example"

	lp.RecordFailedAttempt(email)
	_, first := lp.RecordFailedAttempt(email)

	time.Sleep(first + 10*time.Millisecond)

	lp.RecordFailedAttempt(email)
	_, second := lp.RecordFailedAttempt(email)

	if second <= first {
		t.Fatalf("second lockout %v should exceed first %v", second, first)
	}
}

func TestAttemptWindowExpiry(t *testing.T) {
	lp := quickProtection(5, time.Minute, 100*time.Millisecond)
	email := "admin@joostry.example"

	lp.RecordFailedAttempt(email)
	if got := lp.GetRemainingAttempts(email); got != 4 {
		t.Fatalf("remaining = %d, want 4", got)
	}

	time.Sleep(150 * time.Millisecond)
	if got := lp.GetRemainingAttempts(email); got != 5 {
		t.Fatalf("remaining = %d after window expiry, want 5", got)
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		forwarded  string
		realIP     string
		want       string
	}{
		{"direct connection", "203.0.113.9:51412", "", "", "203.0.113.9"},
		{"behind one proxy", "127.0.0.1:8080", "198.51.100.4", "", "198.51.100.4"},
		{"proxy chain keeps first hop", "127.0.0.1:8080", "198.51.100.4, 10.0.0.2", "", "198.51.100.4"},
		{"real-ip header", "127.0.0.1:8080", "", "198.51.100.7", "198.51.100.7"},
		{"forwarded-for wins over real-ip", "127.0.0.1:8080", "198.51.100.4", "198.51.100.7", "198.51.100.4"},
		{"forwarded-for trimmed", "127.0.0.1:8080", "  198.51.100.4  ", "", "198.51.100.4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/login", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			if tt.realIP != "" {
				req.Header.Set("X-Real-IP", tt.realIP)
			}
			if got := GetClientIP(req); got != tt.want {
				t.Errorf("GetClientIP = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoginProtectionMiddlewarePassesWithinLimits(t *testing.T) {
	lp := quickProtection(5, time.Minute, time.Minute)
	handler := lp.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for _, method := range []string{http.MethodGet, http.MethodPost} {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(method, "/login", nil))
		if rr.Code != http.StatusOK {
			t.Errorf("%s /login status = %d, want 200", method, rr.Code)
		}
	}
}

func TestCheckIPRateLimitAllowsBurst(t *testing.T) {
	lp := NewLoginProtection(LoginProtectionConfig{
		IPRateLimit:       10,
		IPBurst:           5,
		MaxFailedAttempts: 5,
		LockoutDuration:   time.Minute,
		AttemptWindow:     time.Minute,
	})

	for i := 0; i < 5; i++ {
		if !lp.CheckIPRateLimit("203.0.113.50") {
			t.Fatalf("request %d should fit within the burst", i+1)
		}
	}
}
