package middleware

import (
	"crypto/subtle"
	"net/http"
)

// InternalAuth requires the X-Internal-Token header to equal token. An
// empty token leaves the routes open.
func InternalAuth(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if token == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get("X-Internal-Token")
			if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"type":"unauthorized","title":"Unauthorized","status":401,"detail":"missing or invalid internal token"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
