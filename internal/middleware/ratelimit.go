package middleware

import (
	"net"
	"net/http"

	"medicine-tracker/internal/platform/metrics"
	"medicine-tracker/internal/platform/ratelimit"
)

// RateLimit rechaza con 429 cuando la IP (RemoteAddr tras chi RealIP) agota su bucket.
// limiter nil = sin límite.
func RateLimit(limiter *ratelimit.KeyedLimiter, m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if limiter == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow(clientKey(r)) {
				m.RateLimited()
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", "1")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"error":"too many requests"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientKey usa la IP sin puerto; RealIP puede dejar RemoteAddr sin puerto.
func clientKey(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
