package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/iconidentify/shortsnext/internal/api/handler"
	mw "github.com/iconidentify/shortsnext/internal/api/middleware"
	"github.com/iconidentify/shortsnext/internal/config"
)

// NewRouter creates the HTTP router with all routes configured.
func NewRouter(
	shortsHandler *handler.ShortsHandler,
	healthHandler *handler.HealthHandler,
	cfg config.ServerConfig,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CleanPath) // Normalize paths (e.g., //ready -> /ready)
	r.Use(mw.RequestID)
	r.Use(middleware.RealIP)
	r.Use(mw.Logger)
	r.Use(mw.Recovery)
	if cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(cfg.RequestTimeout))
	}

	if cfg.CORS {
		r.Use(mw.CORS)
	}

	// Health endpoints
	r.Get("/health", healthHandler.Live)
	r.Get("/ready", healthHandler.Ready)

	// Legacy single-endpoint form: /api?url=...
	r.Get("/api", shortsHandler.Next)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/stats", healthHandler.Stats)
		r.Get("/shorts/next", shortsHandler.Next)
	})

	return r
}
