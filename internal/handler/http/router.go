package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/utafrali/storefront/internal/catalog"
	"github.com/utafrali/storefront/internal/service"
	"github.com/utafrali/storefront/internal/toast"
	"github.com/utafrali/storefront/pkg/health"
	"github.com/utafrali/storefront/pkg/middleware"
)

// ServiceName labels metrics and spans produced by the router.
const ServiceName = "storefront"

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(
	cartService *service.CartService,
	products *catalog.Catalog,
	notifications *toast.Toast,
	healthHandler *health.Handler,
	registry *prometheus.Registry,
	mutationLimit *rate.Limiter,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	httpMetrics := middleware.NewHTTPMetrics(ServiceName, registry)

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(httpMetrics.Middleware)
	r.Use(middleware.Tracing(ServiceName))
	r.Use(middleware.RequestLogger(logger))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}))

	productHandler := NewProductHandler(products, logger)
	cartHandler := NewCartHandler(cartService, logger)
	toastHandler := NewToastHandler(notifications)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Get("/products", productHandler.ListProducts)
		r.Get("/products/{id}", productHandler.GetProduct)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Post("/refresh", cartHandler.RefreshCart)

			// Writes share one token bucket.
			r.Group(func(r chi.Router) {
				r.Use(middleware.RateLimit(mutationLimit, logger))
				r.Delete("/", cartHandler.ClearCart)
				r.Post("/items", cartHandler.AddItem)
				r.Put("/items/{productId}", cartHandler.UpdateItemQuantity)
				r.Delete("/items/{productId}", cartHandler.RemoveItem)
			})
		})

		r.Get("/toast", toastHandler.GetToast)
		r.Delete("/toast", toastHandler.DismissToast)
	})

	return r
}
