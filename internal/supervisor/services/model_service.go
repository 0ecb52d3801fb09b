// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package services

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/trackmatch/internal/recommend"
)

// reloadTimeout bounds one load-and-initialize cycle.
const reloadTimeout = 5 * time.Minute

// DatasetLoader reads the historical dataset in two steps so that it only
// replaces the stored copy once a model has been fitted from it.
// Satisfied by *database.DB.
type DatasetLoader interface {
	StageCSV(ctx context.Context, path string) (recommend.Dataset, error)
	CommitStaged(ctx context.Context) error
	DiscardStaged(ctx context.Context)
}

// ModelEngine fits and installs models. Satisfied by *recommend.Engine.
type ModelEngine interface {
	Fit(ctx context.Context, dataset recommend.Dataset) (*recommend.Model, error)
	Install(m *recommend.Model)
	PruneCache() int
}

// ModelServiceConfig holds configuration for the model service.
type ModelServiceConfig struct {
	// Path is the dataset CSV.
	Path string

	// ReloadInterval is how often the file is checked for changes.
	// Zero disables reloading; the service then only holds its slot in
	// the tree until shutdown.
	ReloadInterval time.Duration
}

// fileFingerprint identifies one version of the dataset file.
type fileFingerprint struct {
	modTime time.Time
	size    int64
}

// ModelService owns the dataset-to-model lifecycle under Suture
// supervision. Reload performs the initial load; Serve then re-initializes
// the engine whenever the dataset file changes and sweeps expired cached
// results on each tick. A failed reload keeps the previous model serving
// and the previous dataset stored.
type ModelService struct {
	loader DatasetLoader
	engine ModelEngine
	config ModelServiceConfig
	logger zerolog.Logger
	name   string

	mu   sync.Mutex
	seen fileFingerprint
}

// NewModelService creates a new model service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewModelService(loader DatasetLoader, engine ModelEngine, cfg ModelServiceConfig, logger zerolog.Logger) *ModelService {
	return &ModelService{
		loader: loader,
		engine: engine,
		config: cfg,
		logger: logger.With().Str("service", "model").Logger(),
		name:   "model-service",
	}
}

// Reload stages the dataset, fits a model from it, commits the staged
// dataset and only then installs the model. Any failure discards the staged
// copy and leaves both the stored dataset and the serving model as they were.
//
// The file fingerprint is recorded before loading, so a broken file is
// not retried on every tick; the next edit to the file triggers another
// attempt.
func (s *ModelService) Reload(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if fp, err := fingerprint(s.config.Path); err == nil {
		s.seen = fp
	}

	loadCtx, cancel := context.WithTimeout(ctx, reloadTimeout)
	defer cancel()

	start := time.Now()
	dataset, err := s.loader.StageCSV(loadCtx, s.config.Path)
	if err != nil {
		return fmt.Errorf("load dataset %s: %w", s.config.Path, err)
	}

	model, err := s.engine.Fit(loadCtx, dataset)
	if err != nil {
		s.loader.DiscardStaged(context.WithoutCancel(loadCtx))
		return fmt.Errorf("initialize model: %w", err)
	}

	if err := s.loader.CommitStaged(loadCtx); err != nil {
		s.loader.DiscardStaged(context.WithoutCancel(loadCtx))
		return fmt.Errorf("commit dataset %s: %w", s.config.Path, err)
	}
	s.engine.Install(model)

	s.logger.Info().
		Str("path", s.config.Path).
		Str("model_version", model.Version).
		Int("records", model.Records).
		Int("tracks", model.Profiles.Len()).
		Int("rejected_rows", dataset.Rejected).
		Dur("duration", time.Since(start)).
		Msg("model loaded")

	return nil
}

// Serve implements the suture.Service interface.
func (s *ModelService) Serve(ctx context.Context) error {
	if s.config.ReloadInterval <= 0 {
		s.logger.Debug().Msg("dataset reload disabled")
		<-ctx.Done()
		return ctx.Err()
	}

	s.logger.Info().
		Str("path", s.config.Path).
		Dur("reload_interval", s.config.ReloadInterval).
		Msg("watching dataset for changes")

	ticker := time.NewTicker(s.config.ReloadInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("model service shutting down")
			return ctx.Err()

		case <-ticker.C:
			if n := s.engine.PruneCache(); n > 0 {
				s.logger.Debug().Int("entries", n).Msg("expired recommendations pruned")
			}

			changed, err := s.changed()
			if err != nil {
				s.logger.Warn().Err(err).Msg("cannot stat dataset, keeping current model")
				continue
			}
			if !changed {
				continue
			}
			s.logger.Info().Msg("dataset changed, reloading")
			if err := s.Reload(ctx); err != nil {
				s.logger.Error().Err(err).Msg("dataset reload failed, keeping current model")
			}
		}
	}
}

// changed reports whether the dataset file differs from the last load.
func (s *ModelService) changed() (bool, error) {
	fp, err := fingerprint(s.config.Path)
	if err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return !fp.equal(s.seen), nil
}

func (f fileFingerprint) equal(other fileFingerprint) bool {
	return f.size == other.size && f.modTime.Equal(other.modTime)
}

func fingerprint(path string) (fileFingerprint, error) {
	info, err := os.Stat(path)
	if err != nil {
		return fileFingerprint{}, err
	}
	return fileFingerprint{modTime: info.ModTime(), size: info.Size()}, nil
}

// String returns the service name for logging.
func (s *ModelService) String() string {
	return s.name
}
