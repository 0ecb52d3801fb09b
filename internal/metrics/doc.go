// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

/*
Package metrics provides Prometheus metrics collection and export for observability.

Collectors are registered with the default registry through promauto at package
initialization, and the Record* helpers keep label handling in one place.

# Metrics Endpoint

Metrics are exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:8080/metrics

# Available Metrics

Dataset Metrics:
  - duckdb_query_duration_seconds: Query execution time (histogram)
    Labels: operation, table
  - duckdb_query_errors_total: Failed queries (counter)
  - dataset_load_duration_seconds: Dataset load time (histogram)
  - dataset_records: Records in the loaded dataset (gauge)
  - dataset_rows_rejected_total: Rows dropped for an empty track label (counter)
  - dataset_load_errors_total: Failed loads (counter)
    Labels: error_type (schema, io, other)

Model Metrics:
  - recommend_model_initializations_total: Initializations (counter)
    Labels: outcome
  - recommend_model_tracks: Track reference profiles (gauge)
  - recommend_model_records: Records used for fitting (gauge)
  - recommend_model_degenerate_dimensions: Zero-range dimensions (gauge)
  - recommend_model_last_initialized_timestamp: Unix time of last init (gauge)

Recommendation Metrics:
  - recommend_requests_total: Requests (counter)
    Labels: outcome (success, validation_error, not_initialized, error)
  - recommend_duration_seconds: Latency (histogram)
  - recommend_zero_norm_fallbacks_total: Scores defined as 0 for zero-norm vectors (counter)
  - recommend_cache_hits_total / recommend_cache_misses_total (counters)

API Metrics:
  - api_requests_total: Requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Latency (histogram)
    Labels: method, endpoint
  - api_active_requests: In-flight requests (gauge)
  - api_rate_limit_hits_total: Rate limit rejections (counter)
    Labels: endpoint

# Usage

	start := time.Now()
	rec, err := engine.Recommend(ctx, ratings, topN)
	metrics.RecordRecommendation(time.Since(start), metrics.OutcomeSuccess)
*/
package metrics
