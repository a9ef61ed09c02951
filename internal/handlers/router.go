package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Lixing-Zhang/order-desk/internal/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// RouterConfig carries what NewRouter needs beyond the handlers
type RouterConfig struct {
	AllowedOrigins []string
	RequestTimeout time.Duration
}

// NewRouter wires the API routes and middleware stack
func NewRouter(cfg RouterConfig, log *slog.Logger, health *HealthHandler, customers *CustomerHandler, orders *OrderHandler) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	if cfg.RequestTimeout > 0 {
		r.Use(chimiddleware.Timeout(cfg.RequestTimeout))
	}

	// the browser client is served from a different origin
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", health.ServeHTTP)

	r.Route("/customers", func(r chi.Router) {
		r.Get("/", customers.ListCustomers)
		r.Post("/", customers.CreateCustomer)
	})

	r.Route("/orders", func(r chi.Router) {
		r.Get("/", orders.ListOrders)
		r.Post("/", orders.CreateOrder)
	})

	return r
}
