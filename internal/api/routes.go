package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/zapponejosh/temple-calendar/internal/config"
)

// SetupRoutes configures all HTTP routes and returns the router.
//
// Route structure:
//
//	GET    /health
//	GET    /api/v1/panchang/{date}
//	GET    /api/v1/calendar/{year}
//	GET    /api/v1/calendar/{year}/summary
//	GET    /api/v1/calendar/{year}/month/{month}
//	GET    /api/v1/calendar/{year}/export.{format}
//	GET    /api/v1/deity?name=
//	GET    /api/v1/temples
//	POST   /api/v1/temples                          (API key)
//	GET    /api/v1/temples/{id}
//	DELETE /api/v1/temples/{id}                     (API key)
//	GET    /api/v1/temples/{id}/stats
//	GET    /api/v1/temples/{id}/events
//	GET    /api/v1/temples/{id}/calendars/{year}
//	POST   /api/v1/temples/{id}/calendars/{year}    (API key)
func SetupRoutes(h *Handlers, cfg *config.Config, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(LoggingMiddleware(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-API-Key"},
		ExposedHeaders: []string{"Content-Disposition", "X-Request-Id"},
		MaxAge:         3600,
	}))

	auth := AuthMiddleware(cfg, logger)

	r.Get("/health", h.HealthCheck)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/panchang/{date}", h.GetPanchang)
		r.Get("/deity", h.ClassifyDeity)

		r.Route("/calendar/{year}", func(r chi.Router) {
			r.Get("/", h.GetCalendar)
			r.Get("/summary", h.GetSummary)
			r.Get("/month/{month}", h.GetMonth)
			r.Get("/export.{format}", h.ExportCalendar)
		})

		r.Route("/temples", func(r chi.Router) {
			r.Get("/", h.ListTemples)
			r.With(auth).Post("/", h.CreateTemple)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.GetTemple)
				r.With(auth).Delete("/", h.DeleteTemple)
				r.Get("/stats", h.GetTempleStats)
				r.Get("/events", h.GetTempleEvents)
				r.Get("/calendars/{year}", h.GetTempleCalendar)
				r.With(auth).Post("/calendars/{year}", h.GenerateTempleCalendar)
			})
		})
	})

	return r
}
