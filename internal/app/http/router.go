package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"mwd-interiors/quotedesk/internal/app/config"
	"mwd-interiors/quotedesk/internal/app/http/handlers"
	"mwd-interiors/quotedesk/internal/app/http/middleware"
)

func NewRouter(cfg config.Config, h *handlers.Handlers, log *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logging(log))
	r.Use(middleware.CORS(cfg.CORSAllowOrigin, cfg.Environment, log))

	r.Get("/health", h.Health)

	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.InternalAuth(cfg.InternalToken))

		r.Route("/customers", h.CustomerRoutes)
		r.Route("/products", h.ProductRoutes)
		r.Route("/salespeople", h.SalespersonRoutes)
		r.Route("/drafts", h.DraftRoutes)
		r.Route("/quotations", h.QuotationRoutes(middleware.RateLimit(cfg.ExportRate, log)))
		r.Route("/pricing", h.PricingRoutes)
	})

	return r
}
