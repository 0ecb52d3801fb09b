// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/tomtom215/trackmatch/internal/config"
	"github.com/tomtom215/trackmatch/internal/logging"
	"github.com/tomtom215/trackmatch/internal/metrics"
	"github.com/tomtom215/trackmatch/internal/middleware"
	"github.com/tomtom215/trackmatch/internal/models"
)

// GuardConfig controls the cross-origin and throttling middleware placed
// in front of the recommendation routes.
type GuardConfig struct {
	Origins []string

	Requests int
	Window   time.Duration
	Disabled bool
	// KeyFunc picks the throttling bucket. Defaults to the client IP.
	KeyFunc httprate.KeyFunc
}

// healthBudget keeps liveness checks clear of the API limit.
const healthBudget = 1000

// GuardConfigFromSecurity copies the relevant security settings. A nil
// sec yields no allowed origins and 100 requests per minute.
func GuardConfigFromSecurity(sec *config.SecurityConfig) GuardConfig {
	if sec == nil {
		return GuardConfig{Requests: 100, Window: time.Minute}
	}
	return GuardConfig{
		Origins:  append([]string(nil), sec.CORSOrigins...),
		Requests: sec.RateLimitReqs,
		Window:   sec.RateLimitWindow,
		Disabled: sec.RateLimitDisabled,
	}
}

// Guards builds the per-group middleware from one GuardConfig.
type Guards struct {
	cfg  GuardConfig
	cors func(http.Handler) http.Handler
}

func NewGuards(cfg GuardConfig) *Guards {
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = httprate.KeyByIP
	}
	return &Guards{
		cfg: cfg,
		cors: cors.Handler(cors.Options{
			AllowedOrigins: cfg.Origins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Content-Type", "Accept", middleware.RequestIDHeader},
			ExposedHeaders: []string{middleware.RequestIDHeader, "Content-Disposition"},
			MaxAge:         int((24 * time.Hour).Seconds()),
		}),
	}
}

// CORS answers preflight requests and stamps Access-Control headers.
func (g *Guards) CORS() func(http.Handler) http.Handler { return g.cors }

// APILimit throttles the recommendation routes.
func (g *Guards) APILimit() func(http.Handler) http.Handler {
	return g.limit("api", g.cfg.Requests, g.cfg.Window)
}

// HealthLimit throttles the health routes with a much larger budget.
func (g *Guards) HealthLimit() func(http.Handler) http.Handler {
	return g.limit("health", healthBudget, time.Minute)
}

func (g *Guards) limit(name string, requests int, window time.Duration) func(http.Handler) http.Handler {
	if g.cfg.Disabled {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.Limit(requests, window,
		httprate.WithKeyFuncs(g.cfg.KeyFunc),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			// httprate has already set X-RateLimit-* and Retry-After.
			metrics.RecordRateLimitHit(name)
			logging.Ctx(r.Context()).Warn().
				Str("limiter", name).
				Str("remote_addr", sanitizeLogValue(r.RemoteAddr)).
				Msg("Rate limit exceeded")
			respondError(w, r, http.StatusTooManyRequests, models.CodeRateLimited, "Too many requests, retry later", nil)
		}),
	)
}

var securityHeaders = [...][2]string{
	{"X-Content-Type-Options", "nosniff"},
	{"X-Frame-Options", "DENY"},
	{"Referrer-Policy", "strict-origin-when-cross-origin"},
}

// SecureHeaders sets the fixed hardening headers, plus HSTS when the
// request arrived over TLS directly or through a proxy.
func SecureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		for _, kv := range securityHeaders {
			h.Set(kv[0], kv[1])
		}
		if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
			h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}
		next.ServeHTTP(w, r)
	})
}
