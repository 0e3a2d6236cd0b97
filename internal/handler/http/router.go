package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wherehaus/addressbook/internal/service"
	"github.com/wherehaus/addressbook/pkg/health"
	"github.com/wherehaus/addressbook/pkg/middleware"
)

// NewRouter creates a chi router with all address service routes registered.
func NewRouter(
	addressService *service.AddressService,
	healthHandler *health.Handler,
	logger *slog.Logger,
	corsConfig middleware.CORSConfig,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CORS(corsConfig))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.PrometheusMetrics("addressbook"))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	addressHandler := NewAddressHandler(addressService, logger)

	r.Route("/addresses", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Post("/", addressHandler.Create)
		r.Get("/near", addressHandler.FindNearby)
		r.Get("/{id}", addressHandler.Get)
		r.Put("/{id}", addressHandler.Update)
		r.Delete("/{id}", addressHandler.Delete)
	})

	return r
}
