// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package main

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/tomtom215/trackmatch/internal/config"
	"github.com/tomtom215/trackmatch/internal/database"
	"github.com/tomtom215/trackmatch/internal/recommend"
	"github.com/tomtom215/trackmatch/internal/supervisor/services"
)

// RecommendComponents holds the engine and the service that feeds it.
type RecommendComponents struct {
	Engine  *recommend.Engine
	Service *services.ModelService
}

// initRecommend creates the engine and performs the initial dataset load.
// The API must not start without a model, so any failure is returned.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func initRecommend(ctx context.Context, cfg *config.Config, db *database.DB, logger zerolog.Logger) (*RecommendComponents, error) {
	engine, err := recommend.NewEngine(buildEngineConfig(cfg), logger)
	if err != nil {
		return nil, err
	}

	service := services.NewModelService(db, engine, services.ModelServiceConfig{
		Path:           cfg.Dataset.Path,
		ReloadInterval: cfg.Dataset.ReloadInterval,
	}, logger)

	logger.Info().
		Str("dataset", cfg.Dataset.Path).
		Dur("reload_interval", cfg.Dataset.ReloadInterval).
		Int("default_top_n", cfg.Recommend.DefaultTopN).
		Int("max_top_n", cfg.Recommend.MaxTopN).
		Msg("initializing recommendation engine")

	if err := service.Reload(ctx); err != nil {
		return nil, err
	}

	return &RecommendComponents{
		Engine:  engine,
		Service: service,
	}, nil
}

// buildEngineConfig creates the engine configuration from app config.
func buildEngineConfig(cfg *config.Config) *recommend.Config {
	return &recommend.Config{
		Limits: recommend.LimitsConfig{
			DefaultTopN: cfg.Recommend.DefaultTopN,
			MaxTopN:     cfg.Recommend.MaxTopN,
		},
		Explanation: recommend.ExplanationConfig{
			Size:          cfg.Recommend.ExplanationSize,
			BreakdownSize: cfg.Recommend.BreakdownSize,
		},
		Cache: recommend.CacheConfig{
			Enabled:    cfg.Recommend.CacheEnabled,
			TTL:        cfg.Recommend.CacheTTL,
			MaxEntries: cfg.Recommend.CacheMaxEntries,
		},
	}
}
