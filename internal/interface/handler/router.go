package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"tripcast-service/pkg/logger"
)

// RouterConfig holds the handlers and settings wired into the router
type RouterConfig struct {
	Trips          *TripHandler
	Health         *HealthHandler
	Metrics        http.Handler
	AllowedOrigins []string
	Logger         logger.Logger
}

// NewRouter builds the HTTP routes of the service
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(AccessLog(cfg.Logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{RequestIDHeader},
	}))

	r.Get("/api/trips", cfg.Trips.GetTrips)

	if cfg.Health != nil {
		r.Get("/health", cfg.Health.GetHealth)
	}
	if cfg.Metrics != nil {
		r.Handle("/metrics", cfg.Metrics)
	}

	return r
}
