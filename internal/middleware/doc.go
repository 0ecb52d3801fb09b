// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

/*
Package middleware provides HTTP middleware for the recommendation API.

All middleware uses the standard func(http.Handler) http.Handler shape so
it can be mounted directly on a chi router.

Key Components:

  - RequestID: reuses or generates X-Request-ID and stores it in the context
  - RequestLogger: one zerolog line per request, level chosen by status
  - PrometheusMetrics: request counts, latency and in-flight gauge labelled
    by chi route pattern
  - Compression: pooled gzip writers for clients that accept gzip

Typical ordering:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger)
	r.Use(middleware.PrometheusMetrics)
	r.Use(middleware.Compression)

RequestID must run first so the logger attached to the request context
carries the ID for every later layer.
*/
package middleware
