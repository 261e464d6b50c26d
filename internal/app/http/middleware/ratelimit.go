package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"
	"go.uber.org/zap"
)

// RateLimit caps requests per client IP per minute. A limit of 0
// disables it.
func RateLimit(requestsPerMinute int, logger *zap.Logger) func(http.Handler) http.Handler {
	if requestsPerMinute <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.Limit(
		requestsPerMinute,
		time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			logger.Warn("rate limit exceeded",
				zap.String("path", r.URL.Path),
				zap.String("method", r.Method),
				zap.String("remote_addr", r.RemoteAddr),
			)
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", "60")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"type":"rate_limited","title":"Too Many Requests","status":429,"detail":"Too many requests. Please try again later."}`))
		}),
	)
}
