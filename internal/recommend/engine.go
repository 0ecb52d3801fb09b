// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/trackmatch/internal/cache"
	"github.com/tomtom215/trackmatch/internal/logging"
	"github.com/tomtom215/trackmatch/internal/metrics"
)

// Engine serves recommendations from the current Model.
//
// The model is swapped atomically by Initialize and never mutated, so any
// number of Recommend calls may run concurrently without locking.
type Engine struct {
	config *Config
	logger zerolog.Logger

	model  atomic.Pointer[Model]
	initMu sync.Mutex

	results *cache.LRU[*Recommendation]

	requestCount atomic.Int64
	errorCount   atomic.Int64
}

// NewEngine creates an engine with no model. Initialize must succeed before
// Recommend returns results.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	e := &Engine{
		config: cfg.Clone(),
		logger: logger.With().Str("component", "recommend").Logger(),
	}
	if e.config.Cache.Enabled {
		e.results = cache.NewLRU[*Recommendation](e.config.Cache.MaxEntries, e.config.Cache.TTL)
	}
	return e, nil
}

// Initialize fits a new model to dataset and makes it current. On failure
// the previous model, if any, stays in place.
func (e *Engine) Initialize(ctx context.Context, dataset Dataset) (*Model, error) {
	m, err := e.Fit(ctx, dataset)
	if err != nil {
		return nil, err
	}
	e.Install(m)
	return m, nil
}

// Fit builds a model from dataset without making it current. Callers that
// must keep other state in step with the served model fit first and
// Install only once that state is committed.
func (e *Engine) Fit(ctx context.Context, dataset Dataset) (*Model, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	m, err := Initialize(dataset)
	if err != nil {
		metrics.RecordModelInit(0, 0, 0, err)
		e.logger.Error().Err(err).
			Str("source", dataset.Source).
			Int("records", dataset.Len()).
			Msg("model initialization failed")
		return nil, err
	}

	for _, d := range m.DegenerateErrors() {
		e.logger.Debug().Str("dimension", d.Dimension.Column()).Msg(d.Error())
	}
	for _, w := range m.Warnings {
		e.logger.Warn().Err(w).Msg("track profile omitted")
	}

	e.logger.Info().
		Str("source", dataset.Source).
		Str("model_version", m.Version).
		Int("records", m.Records).
		Int("rejected_rows", dataset.Rejected).
		Int("tracks", m.Profiles.Len()).
		Int("degenerate_dimensions", len(m.Degenerate)).
		Dur("duration", time.Since(start)).
		Msg("model fitted")

	return m, nil
}

// Install makes m the current model and drops cached results of the
// previous one.
func (e *Engine) Install(m *Model) {
	if m == nil {
		return
	}
	e.initMu.Lock()
	defer e.initMu.Unlock()

	e.model.Store(m)
	if e.results != nil {
		e.results.Clear()
	}
	metrics.RecordModelInit(m.Records, m.Profiles.Len(), len(m.Degenerate), nil)
	e.logger.Info().Str("model_version", m.Version).Msg("model installed")
}

// PruneCache drops expired cached recommendations and returns how many
// were removed.
func (e *Engine) PruneCache() int {
	if e.results == nil {
		return 0
	}
	return e.results.CleanupExpired()
}

// Model returns the current model, or nil before initialization.
func (e *Engine) Model() *Model {
	return e.model.Load()
}

// Ready reports whether a model is available.
func (e *Engine) Ready() bool {
	return e.model.Load() != nil
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// Recommend ranks tracks for raw ratings. topN <= 0 uses the configured default.
func (e *Engine) Recommend(ctx context.Context, raw []float64, topN int) (*Recommendation, error) {
	return e.RecommendRequest(ctx, Request{Ratings: raw, TopN: topN})
}

// RecommendRequest ranks tracks for req.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) RecommendRequest(ctx context.Context, req Request) (*Recommendation, error) {
	start := time.Now()
	e.requestCount.Add(1)

	if req.RequestID == "" {
		req.RequestID = logging.RequestIDFromContext(ctx)
	}
	if req.RequestID == "" {
		req.RequestID = logging.GenerateRequestID()
	}
	logger := e.logger.With().Str("request_id", req.RequestID).Logger()

	m := e.model.Load()
	if m == nil {
		e.errorCount.Add(1)
		metrics.RecordRecommendation(time.Since(start), metrics.OutcomeNotInitialized)
		return nil, ErrNotInitialized
	}

	raw, err := NewRawVector(req.Ratings)
	if err != nil {
		e.fail(start, err)
		return nil, err
	}

	topN := e.effectiveTopN(req.TopN, m.Profiles.Len())
	logger = logger.With().Int("top_n", topN).Logger()

	key := cacheKey(m.Version, raw, topN)
	if rec := e.cached(key, req.RequestID, start); rec != nil {
		logger.Debug().Msg("recommendation served from cache")
		metrics.RecordRecommendation(time.Since(start), metrics.OutcomeSuccess)
		return rec, nil
	}

	results, user, fallbacks, err := m.recommend(raw, topN, e.config.Explanation.Size)
	if err != nil {
		e.fail(start, err)
		return nil, err
	}

	if len(fallbacks) > 0 {
		metrics.RecordZeroNormFallbacks(len(fallbacks))
		logger.Debug().Int("tracks", len(fallbacks)).Msg(fallbacks[0].Error())
	}

	var breakdown []Contribution
	if len(results) > 0 {
		breakdown, err = m.Breakdown(user, results[0].Track, e.config.Explanation.BreakdownSize)
		if err != nil {
			e.fail(start, err)
			return nil, fmt.Errorf("build breakdown: %w", err)
		}
	}

	rec := &Recommendation{
		Ratings:    raw,
		Normalized: user,
		TopN:       topN,
		Results:    results,
		Breakdown:  breakdown,
		Metadata: ResponseMetadata{
			RequestID:     req.RequestID,
			ModelVersion:  m.Version,
			InitializedAt: m.InitializedAt,
			Timestamp:     time.Now().UTC(),
		},
	}
	rec.Metadata.LatencyMS = float64(time.Since(start).Microseconds()) / 1000

	if e.results != nil {
		e.results.Add(key, rec.Clone())
	}

	metrics.RecordRecommendation(time.Since(start), metrics.OutcomeSuccess)
	logger.Debug().
		Int("returned", len(results)).
		Str("top_track", results[0].Track).
		Float64("top_score", results[0].Score).
		Msg("recommendation complete")

	return rec, nil
}

// Status returns the engine state for health checks.
func (e *Engine) Status() Status {
	s := Status{
		Requests: e.requestCount.Load(),
		Errors:   e.errorCount.Load(),
	}
	if e.results != nil {
		s.Cache = CacheStatus{
			Enabled: true,
			Stats:   e.results.Stats(),
			HitRate: e.results.HitRate(),
		}
	}
	m := e.model.Load()
	if m == nil {
		return s
	}
	s.Ready = true
	s.ModelVersion = m.Version
	s.InitializedAt = m.InitializedAt
	s.Records = m.Records
	s.Tracks = m.Profiles.Len()
	for _, d := range m.Degenerate {
		s.Degenerate = append(s.Degenerate, d.Column())
	}
	return s
}

// effectiveTopN applies the default, caps at MaxTopN and clamps to the
// number of tracks.
func (e *Engine) effectiveTopN(requested, tracks int) int {
	n := requested
	if n <= 0 {
		n = e.config.Limits.DefaultTopN
	}
	if n > e.config.Limits.MaxTopN {
		n = e.config.Limits.MaxTopN
	}
	return ClampTopN(n, tracks)
}

// cached returns a deep copy of a cached recommendation re-stamped for
// this request.
func (e *Engine) cached(key, requestID string, start time.Time) *Recommendation {
	if e.results == nil {
		return nil
	}

	hit, ok := e.results.Get(key)
	metrics.RecordRecommendCache(ok)
	if !ok {
		return nil
	}

	rec := hit.Clone()
	rec.Metadata.RequestID = requestID
	rec.Metadata.CacheHit = true
	rec.Metadata.Timestamp = time.Now().UTC()
	rec.Metadata.LatencyMS = float64(time.Since(start).Microseconds()) / 1000
	return rec
}

func (e *Engine) fail(start time.Time, err error) {
	e.errorCount.Add(1)
	outcome := metrics.OutcomeError
	var ve *ValidationError
	if errors.As(err, &ve) {
		outcome = metrics.OutcomeValidation
	}
	metrics.RecordRecommendation(time.Since(start), outcome)
}

func cacheKey(version string, raw Vector, topN int) string {
	return cache.GenerateKey("recommend", struct {
		Version string `json:"v"`
		Ratings Vector `json:"r"`
		TopN    int    `json:"n"`
	}{version, raw, topN})
}
