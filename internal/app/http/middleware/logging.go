package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDHeader = "X-Request-ID"

// Logging writes one access line per request, keyed by the matched route
// and the draft, quotation, room and item ids it addressed. The caller's
// X-Request-ID is kept when present and echoed back either way.
// Client errors log at warn, server errors at error.
func Logging(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestID := r.Header.Get(requestIDHeader)
			if requestID == "" {
				requestID = uuid.NewString()
				r.Header.Set(requestIDHeader, requestID)
			}
			w.Header().Set(requestIDHeader, requestID)

			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			route := routePattern(r)
			fields := append([]zap.Field{
				zap.String("request_id", requestID),
				zap.String("method", r.Method),
				zap.String("route", route),
				zap.Int("status", status),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
			}, routeIDs(r, route)...)

			msg := r.Method + " " + route
			switch {
			case status >= http.StatusInternalServerError:
				logger.Error(msg, fields...)
			case status >= http.StatusBadRequest:
				logger.Warn(msg, fields...)
			default:
				logger.Info(msg, fields...)
			}
		})
	}
}

// routePattern is the chi pattern that served r, or the raw path when no
// route matched.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return r.URL.Path
}

var idFieldByCollection = map[string]string{
	"drafts":      "draft_id",
	"quotations":  "quotation_id",
	"customers":   "customer_id",
	"products":    "product_id",
	"salespeople": "salesperson_id",
}

// routeIDs names the route's {id} after the collection it sits under, so
// /v1/drafts/7 logs draft_id=7 and /v1/quotations/7 logs quotation_id=7.
func routeIDs(r *http.Request, route string) []zap.Field {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return nil
	}
	var fields []zap.Field
	for i, key := range rctx.URLParams.Keys {
		val := rctx.URLParams.Values[i]
		switch key {
		case "id":
			fields = append(fields, zap.String(idField(route), val))
		case "roomID":
			fields = append(fields, zap.String("room_id", val))
		case "itemID":
			fields = append(fields, zap.String("item_id", val))
		}
	}
	return fields
}

func idField(route string) string {
	for _, seg := range strings.Split(route, "/") {
		if f, ok := idFieldByCollection[seg]; ok {
			return f
		}
	}
	return "id"
}
