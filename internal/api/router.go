// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/trackmatch/internal/config"
	"github.com/tomtom215/trackmatch/internal/middleware"
	"github.com/tomtom215/trackmatch/internal/models"
)

// Router mounts the Handler endpoints on a chi mux.
type Router struct {
	handler *Handler
	guards  *Guards
}

// NewRouter creates a router whose CORS and rate limits follow sec.
func NewRouter(handler *Handler, sec *config.SecurityConfig) *Router {
	return &Router{handler: handler, guards: NewGuards(GuardConfigFromSecurity(sec))}
}

// SetupChi returns the complete handler tree.
//
//	/api/v1/health/*   liveness and readiness, generous rate limit
//	/api/v1/*          recommendation API, configured rate limit, gzip
//	/metrics           Prometheus exposition
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// Order matters: the request ID must exist before the logger runs, and
	// CORS sits outside every group so OPTIONS preflights reach it.
	r.Use(
		middleware.RequestID,
		chimiddleware.RealIP,
		middleware.RequestLogger,
		chimiddleware.Recoverer,
		router.guards.CORS(),
	)

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		respondError(w, req, http.StatusNotFound, models.CodeNotFound, "Resource not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		respondError(w, req, http.StatusMethodNotAllowed, models.CodeMethodNotAllowed, "Method not allowed", nil)
	})

	r.Route("/api/v1/health", router.mountHealth)
	r.Route("/api/v1", router.mountAPI)
	r.Handle("/metrics", promhttp.Handler())

	return r
}

func (router *Router) mountHealth(r chi.Router) {
	r.Use(router.guards.HealthLimit(), SecureHeaders, middleware.PrometheusMetrics)

	h := router.handler
	r.Get("/", h.Health)
	r.Get("/live", h.HealthLive)
	r.Get("/ready", h.HealthReady)
}

func (router *Router) mountAPI(r chi.Router) {
	r.Use(router.guards.APILimit(), SecureHeaders, middleware.PrometheusMetrics, middleware.Compression)

	h := router.handler
	r.Get("/dimensions", h.Dimensions)
	r.Get("/questionnaire", h.Questionnaire)
	r.Get("/tracks", h.Tracks)
	r.Get("/dataset/sample", h.DatasetSample)

	r.Post("/recommendations", h.Recommendations)
	r.Post("/recommendations/questionnaire", h.QuestionnaireRecommendations)
	r.Post("/profile/export", h.ProfileExport)
}
