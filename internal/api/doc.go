// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

/*
Package api provides the HTTP interface of the track recommender.

Routes (all JSON bodies use the models.APIResponse envelope):

	GET  /api/v1/health                          health summary
	GET  /api/v1/health/live                     liveness check
	GET  /api/v1/health/ready                    readiness check, 503 until initialized
	GET  /api/v1/dimensions                      the twelve interest dimensions
	GET  /api/v1/questionnaire                   question bank grouped by dimension
	GET  /api/v1/tracks?limit=10                 track reference profiles
	GET  /api/v1/dataset/sample?n=10&seed=42     seeded preview of raw rows
	POST /api/v1/recommendations                 rank tracks for 12 ratings
	POST /api/v1/recommendations/questionnaire   rank tracks for questionnaire answers
	POST /api/v1/profile/export                  one-row profile CSV
	GET  /metrics                                Prometheus exposition

Both recommendation endpoints return recomendaciones_usuario.csv instead
of JSON when called with ?format=csv.

Error mapping:

  - malformed body, wrong vector length, unknown answer key: 400 VALIDATION_ERROR
  - model not initialized, no dataset loaded: 503 SERVICE_UNAVAILABLE
  - rate limit exceeded: 429 RATE_LIMIT_EXCEEDED
  - dataset store failure: 500 DATABASE_ERROR
  - anything else: 500 INTERNAL_ERROR

Middleware order is request ID, real IP, request logging, panic recovery
and CORS globally, then per group rate limiting, security headers,
Prometheus metrics and gzip compression.
*/
package api
