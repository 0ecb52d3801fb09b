// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for:
// - Dataset ingestion (DuckDB)
// - Model initialization (normalization + track profiles)
// - Recommendation requests and result cache
// - API endpoint latency and throughput

// Recommendation outcomes used as the "outcome" label.
const (
	OutcomeSuccess        = "success"
	OutcomeValidation     = "validation_error"
	OutcomeNotInitialized = "not_initialized"
	OutcomeError          = "error"
)

var (
	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table", "error_type"},
	)

	// Dataset Metrics
	DatasetLoadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dataset_load_duration_seconds",
			Help:    "Duration of historical dataset loads in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)

	DatasetRecords = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dataset_records",
			Help: "Number of historical records in the loaded dataset",
		},
	)

	DatasetRowsRejected = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dataset_rows_rejected_total",
			Help: "Total number of dataset rows rejected during loading (empty track label)",
		},
	)

	DatasetLoadErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dataset_load_errors_total",
			Help: "Total number of failed dataset loads",
		},
		[]string{"error_type"}, // "schema", "io", "other"
	)

	// Model Metrics
	ModelInitializations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_model_initializations_total",
			Help: "Total number of model initializations",
		},
		[]string{"outcome"},
	)

	ModelTracks = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommend_model_tracks",
			Help: "Number of track reference profiles in the active model",
		},
	)

	ModelRecords = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommend_model_records",
			Help: "Number of historical records the active model was fit on",
		},
	)

	ModelDegenerateDimensions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommend_model_degenerate_dimensions",
			Help: "Number of interest dimensions with a zero min-max range",
		},
	)

	ModelLastInitialized = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommend_model_last_initialized_timestamp",
			Help: "Unix timestamp of the last successful model initialization",
		},
	)

	// Recommendation Metrics
	RecommendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_requests_total",
			Help: "Total number of recommendation requests",
		},
		[]string{"outcome"},
	)

	RecommendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_duration_seconds",
			Help:    "Recommendation latency in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		},
	)

	RecommendZeroNormFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_zero_norm_fallbacks_total",
			Help: "Total number of similarity scores defined as 0 because a vector had zero norm",
		},
	)

	RecommendCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_cache_hits_total",
			Help: "Total number of recommendation result cache hits",
		},
	)

	RecommendCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_cache_misses_total",
			Help: "Total number of recommendation result cache misses",
		},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)
)

// RecordDBQuery records a database query metric
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		errorType := err.Error()
		// Truncate long error messages
		if len(errorType) > 50 {
			errorType = errorType[:50]
		}
		DBQueryErrors.WithLabelValues(operation, table, errorType).Inc()
	}
}

// RecordDatasetLoad records a completed dataset load.
// errorType is ignored when err is nil.
func RecordDatasetLoad(duration time.Duration, records, rejected int, errorType string, err error) {
	DatasetLoadDuration.Observe(duration.Seconds())
	if err != nil {
		if errorType == "" {
			errorType = "other"
		}
		DatasetLoadErrors.WithLabelValues(errorType).Inc()
		return
	}
	DatasetRecords.Set(float64(records))
	DatasetRowsRejected.Add(float64(rejected))
}

// RecordModelInit records the outcome of a model initialization and, on
// success, publishes the model shape.
func RecordModelInit(records, tracks, degenerate int, err error) {
	if err != nil {
		ModelInitializations.WithLabelValues(OutcomeError).Inc()
		return
	}
	ModelInitializations.WithLabelValues(OutcomeSuccess).Inc()
	ModelRecords.Set(float64(records))
	ModelTracks.Set(float64(tracks))
	ModelDegenerateDimensions.Set(float64(degenerate))
	ModelLastInitialized.Set(float64(time.Now().Unix()))
}

// RecordRecommendation records a recommendation request with its outcome.
func RecordRecommendation(duration time.Duration, outcome string) {
	RecommendRequests.WithLabelValues(outcome).Inc()
	RecommendDuration.Observe(duration.Seconds())
}

// RecordZeroNormFallbacks counts similarity scores that fell back to 0.
func RecordZeroNormFallbacks(n int) {
	if n > 0 {
		RecommendZeroNormFallbacks.Add(float64(n))
	}
}

// RecordRecommendCache records a result cache lookup.
func RecordRecommendCache(hit bool) {
	if hit {
		RecommendCacheHits.Inc()
	} else {
		RecommendCacheMisses.Inc()
	}
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordRateLimitHit records a rejected request
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
