package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"
)

// Timeout caps how long a request handler may run. When the deadline
// passes before the handler finishes, the client gets a plain 503 and
// the handler's context is cancelled so in-flight queries stop.
func Timeout(limit time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), limit)
			defer cancel()

			dw := &deadlineWriter{ResponseWriter: w}
			done := make(chan struct{})

			go func() {
				defer close(done)
				next.ServeHTTP(dw, r.WithContext(ctx))
			}()

			select {
			case <-done:
			case <-ctx.Done():
				dw.mu.Lock()
				defer dw.mu.Unlock()
				if !dw.started {
					dw.started = true
					w.Header().Set("Content-Type", "text/plain; charset=utf-8")
					w.WriteHeader(http.StatusServiceUnavailable)
					_, _ = w.Write([]byte("Request timeout"))
				}
			}
		})
	}
}

// deadlineWriter serializes writes between the handler goroutine and
// the timeout branch so only one of them produces a response.
type deadlineWriter struct {
	http.ResponseWriter
	mu      sync.Mutex
	started bool
}

func (dw *deadlineWriter) WriteHeader(code int) {
	dw.mu.Lock()
	defer dw.mu.Unlock()
	if dw.started {
		return
	}
	dw.started = true
	dw.ResponseWriter.WriteHeader(code)
}

func (dw *deadlineWriter) Write(b []byte) (int, error) {
	dw.mu.Lock()
	defer dw.mu.Unlock()
	if !dw.started {
		dw.started = true
		dw.ResponseWriter.WriteHeader(http.StatusOK)
	}
	return dw.ResponseWriter.Write(b)
}
