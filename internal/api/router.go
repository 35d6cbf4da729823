// Conventus - Event Discovery and Engagement Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conventus

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/conventus/internal/config"
	"github.com/tomtom215/conventus/internal/metrics"
	"github.com/tomtom215/conventus/internal/middleware"
)

// NewRouter assembles the chi router with the full middleware stack and
// all /api/v1 routes.
func NewRouter(handler *Handler, cfg *config.ServerConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to every route in order.
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Unauthenticated surface: health, metrics, session bootstrap.
	r.Get("/healthz", handler.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.With(rateLimiter(10, cfg.RateLimitWindow, "/session")).
		Post("/session", handler.CreateSession)

	// Authenticated API surface.
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.RateLimitReqs > 0 {
			r.Use(rateLimiter(cfg.RateLimitReqs, cfg.RateLimitWindow, "/api/v1"))
		}
		r.Use(middleware.PrometheusMetrics)
		r.Use(middleware.Authenticate(handler.sessions))

		r.Route("/events", func(r chi.Router) {
			r.Get("/", handler.ListEvents)
			r.Post("/", handler.CreateEvent)
			r.Get("/watch", handler.WatchEvents)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", handler.GetEvent)
				r.Patch("/", handler.UpdateEvent)
				r.Delete("/", handler.DeleteEvent)
				r.Post("/rsvp", handler.RSVP)
			})
		})

		r.Get("/calendar", handler.Calendar)
		r.Get("/rsvps", handler.UserRSVPs)

		r.Route("/favorites", func(r chi.Router) {
			r.Get("/", handler.Favorites)
			r.Post("/{eventID}/toggle", handler.ToggleFavorite)
		})

		r.Get("/recommendations", handler.Recommendations)
	})

	return r
}

// rateLimiter builds a per-IP limiter that counts rejections.
func rateLimiter(requests int, window time.Duration, surface string) func(http.Handler) http.Handler {
	return httprate.Limit(requests, window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			metrics.APIRateLimitHits.WithLabelValues(surface).Inc()
			respondError(w, http.StatusTooManyRequests, "RATE_LIMITED", "Too many requests", nil)
		}),
	)
}
