package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// LoginProtection guards the login form with two layers: a per-IP
// token bucket on POSTs, and per-account lockout with exponential
// backoff once an email accumulates too many failures.
type LoginProtection struct {
	ipLimiters *limiterCache[string]

	mu       sync.RWMutex
	accounts map[string]*accountFailures

	maxFailedAttempts int
	lockoutDuration   time.Duration // base, doubles per lockout
	attemptWindow     time.Duration
}

// accountFailures tracks login failures for one email.
type accountFailures struct {
	count       int
	firstFailed time.Time
	lockedUntil time.Time
	lockouts    int
}

// LoginProtectionConfig holds configuration for login protection.
// Zero values fall back to the defaults below.
type LoginProtectionConfig struct {
	IPRateLimit       float64       // POSTs per second per IP
	IPBurst           int           // token bucket burst
	MaxFailedAttempts int           // failures before lockout
	LockoutDuration   time.Duration // base lockout, doubles per repeat
	AttemptWindow     time.Duration // window for counting failures
}

// DefaultLoginProtectionConfig returns the storefront defaults: one
// POST per two seconds with a burst of five, and a 15 minute lockout
// after five failures.
func DefaultLoginProtectionConfig() LoginProtectionConfig {
	return LoginProtectionConfig{
		IPRateLimit:       0.5,
		IPBurst:           5,
		MaxFailedAttempts: 5,
		LockoutDuration:   15 * time.Minute,
		AttemptWindow:     15 * time.Minute,
	}
}

// NewLoginProtection creates a login protector and starts its cleanup
// loop.
func NewLoginProtection(cfg LoginProtectionConfig) *LoginProtection {
	def := DefaultLoginProtectionConfig()
	if cfg.IPRateLimit <= 0 {
		cfg.IPRateLimit = def.IPRateLimit
	}
	if cfg.IPBurst <= 0 {
		cfg.IPBurst = def.IPBurst
	}
	if cfg.MaxFailedAttempts <= 0 {
		cfg.MaxFailedAttempts = def.MaxFailedAttempts
	}
	if cfg.LockoutDuration <= 0 {
		cfg.LockoutDuration = def.LockoutDuration
	}
	if cfg.AttemptWindow <= 0 {
		cfg.AttemptWindow = def.AttemptWindow
	}

	lp := &LoginProtection{
		ipLimiters:        newLimiterCache[string](cfg.IPRateLimit, cfg.IPBurst),
		accounts:          make(map[string]*accountFailures),
		maxFailedAttempts: cfg.MaxFailedAttempts,
		lockoutDuration:   cfg.LockoutDuration,
		attemptWindow:     cfg.AttemptWindow,
	}
	go lp.cleanupLoop()
	return lp
}

// CheckIPRateLimit reports whether a request from ip may proceed.
func (lp *LoginProtection) CheckIPRateLimit(ip string) bool {
	return lp.ipLimiters.get(ip).Allow()
}

// IsAccountLocked reports whether email is locked out and for how much
// longer.
func (lp *LoginProtection) IsAccountLocked(email string) (bool, time.Duration) {
	lp.mu.RLock()
	acc, ok := lp.accounts[email]
	lp.mu.RUnlock()

	if !ok || !time.Now().Before(acc.lockedUntil) {
		return false, 0
	}
	return true, time.Until(acc.lockedUntil)
}

// RecordFailedAttempt counts a failed login. When the failure count
// reaches the maximum it locks the account and reports the lockout
// duration, doubled for every previous lockout up to 24 hours.
func (lp *LoginProtection) RecordFailedAttempt(email string) (bool, time.Duration) {
	lp.mu.Lock()
	defer lp.mu.Unlock()

	now := time.Now()
	acc, ok := lp.accounts[email]

	if !ok || now.Sub(acc.firstFailed) > lp.attemptWindow {
		if !ok {
			acc = &accountFailures{}
			lp.accounts[email] = acc
		}
		acc.count = 1
		acc.firstFailed = now
		slog.Debug("login failure recorded", "email", email, "count", 1)
		return false, 0
	}

	acc.count++
	slog.Debug("login failure recorded", "email", email, "count", acc.count)

	if acc.count < lp.maxFailedAttempts {
		return false, 0
	}

	lock := lp.lockoutDuration
	for i := 0; i < acc.lockouts && lock < 24*time.Hour; i++ {
		lock *= 2
	}
	if lock > 24*time.Hour {
		lock = 24 * time.Hour
	}

	acc.lockedUntil = now.Add(lock)
	acc.lockouts++
	acc.count = 0

	slog.Warn("account locked after repeated login failures",
		"email", email, "lockouts", acc.lockouts, "duration", lock)
	return true, lock
}

// RecordSuccessfulLogin drops all failure tracking for email.
func (lp *LoginProtection) RecordSuccessfulLogin(email string) {
	lp.mu.Lock()
	delete(lp.accounts, email)
	lp.mu.Unlock()
}

// GetRemainingAttempts returns how many failures email has left before
// lockout.
func (lp *LoginProtection) GetRemainingAttempts(email string) int {
	lp.mu.RLock()
	acc, ok := lp.accounts[email]
	lp.mu.RUnlock()

	if !ok || time.Since(acc.firstFailed) > lp.attemptWindow {
		return lp.maxFailedAttempts
	}
	if remaining := lp.maxFailedAttempts - acc.count; remaining > 0 {
		return remaining
	}
	return 0
}

func (lp *LoginProtection) cleanupLoop() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		lp.removeStale()
	}
}

func (lp *LoginProtection) removeStale() {
	if lp.ipLimiters.clearIfExceeds(10000) {
		slog.Info("cleared IP rate limiters due to size")
	}

	now := time.Now()
	lp.mu.Lock()
	for email, acc := range lp.accounts {
		if now.After(acc.lockedUntil) && now.Sub(acc.firstFailed) > lp.attemptWindow {
			delete(lp.accounts, email)
		}
	}
	lp.mu.Unlock()
}

// Middleware rate-limits login POSTs per client IP. GETs of the form
// pass through.
func (lp *LoginProtection) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				next.ServeHTTP(w, r)
				return
			}

			ip := GetClientIP(r)
			if !lp.CheckIPRateLimit(ip) {
				slog.Warn("login rate limit exceeded", "ip", ip)
				http.Error(w, "محاولات كثيرة، حاول مرة أخرى لاحقاً", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetClientIP extracts the client address, honoring reverse-proxy
// headers. X-Forwarded-For wins and only its first hop counts; the
// bare RemoteAddr loses its port.
func GetClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		return strings.TrimSpace(first)
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return strings.TrimSpace(ip)
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
