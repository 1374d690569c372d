package routes

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	handlers "github.com/farzanehfar/onthebeach-holiday-search-lib/internal/http"
	mid "github.com/farzanehfar/onthebeach-holiday-search-lib/internal/middleware"
	"github.com/farzanehfar/onthebeach-holiday-search-lib/internal/obs"
)

func GetRoutes(h *handlers.Handler, metrics *obs.Metrics, logger *slog.Logger, requestTimeout time.Duration) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Use(mid.MetricsMiddleware(metrics))
	r.Use(mid.LoggingMiddleware(logger))
	r.Use(middleware.Timeout(requestTimeout))

	r.NotFound(h.NotFound)

	r.Get("/search", h.Search)
	r.Get("/stats", h.Stats)
	r.Post("/reload", h.Reload)
	r.Get("/healthz", h.Healthz)
	r.Get("/metrics", metrics.Handler().ServeHTTP)

	return r
}
