// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package api

import (
	"context"
	"time"

	"github.com/tomtom215/trackmatch/internal/config"
	"github.com/tomtom215/trackmatch/internal/database"
	"github.com/tomtom215/trackmatch/internal/recommend"
)

// Version is reported by the health endpoint. It is overridden at build time.
var Version = "dev"

// Recommender is the part of *recommend.Engine the handlers use.
type Recommender interface {
	RecommendRequest(ctx context.Context, req recommend.Request) (*recommend.Recommendation, error)
	Model() *recommend.Model
	Status() recommend.Status
}

// DatasetStore is the part of *database.DB the handlers use.
type DatasetStore interface {
	Ping(ctx context.Context) error
	Count(ctx context.Context) (int, error)
	Sample(ctx context.Context, n int, seed int64) ([]database.SampleRow, error)
	Source() string
}

// Handler contains dependencies for API handlers
//
// Handler methods are split across multiple files:
//   - handlers.go: Handler struct and constructor (this file)
//   - handlers_helpers.go: Shared response and parsing helpers
//   - handlers_health.go: Health, liveness and readiness endpoints
//   - handlers_recommend.go: Recommendation and profile export endpoints
//   - handlers_catalog.go: Dimensions, questionnaire, tracks and dataset preview
type Handler struct {
	engine    Recommender
	store     DatasetStore
	config    *config.Config
	startTime time.Time
}

// NewHandler creates a new API handler.
//
// store may be nil when the dataset was loaded without a database; the
// dataset preview then answers 503 and health reports the database as
// disconnected.
//
// Example:
//
//	handler := api.NewHandler(engine, db, cfg)
//	router := api.NewRouter(handler, &cfg.Security)
//	http.ListenAndServe(cfg.Server.Addr(), router.SetupChi())
func NewHandler(engine Recommender, store DatasetStore, cfg *config.Config) *Handler {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Handler{
		engine:    engine,
		store:     store,
		config:    cfg,
		startTime: time.Now(),
	}
}
