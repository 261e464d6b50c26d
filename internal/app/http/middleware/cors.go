package middleware

import (
	"net/http"
	"strings"

	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// CORS allows the comma separated origins in allowOrigin; "*" allows any.
func CORS(allowOrigin, environment string, logger *zap.Logger) func(http.Handler) http.Handler {
	options := cors.Options{
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Internal-Token", "X-Request-ID"},
		ExposedHeaders: []string{"Content-Disposition", "X-Request-ID"},
		MaxAge:         300,
	}

	var origins []string
	for _, o := range strings.Split(allowOrigin, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	switch {
	case len(origins) == 0:
		options.AllowOriginFunc = func(r *http.Request, origin string) bool { return false }
		logger.Warn("CORS configured with no allowed origins - all cross-origin requests will be denied")
	case contains(origins, "*"):
		if environment != "development" && environment != "local" {
			logger.Warn("CORS configured with wildcard origin in non-development environment",
				zap.String("environment", environment))
		}
		options.AllowOriginFunc = func(r *http.Request, origin string) bool { return origin != "" }
	default:
		options.AllowedOrigins = origins
		logger.Info("CORS configured with explicit origins", zap.Strings("origins", origins))
	}

	return cors.Handler(options)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
