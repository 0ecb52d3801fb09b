// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

/*
Package cache provides a thread-safe LRU cache with TTL support and helpers
for deriving compact cache keys.

The recommendation engine caches ranked results per model version, so that
repeated submissions of the same interest profile are served without
re-running normalization and ranking.

# Usage

	results := cache.NewLRU[*Recommendation](1000, 5*time.Minute)
	key := cache.GenerateKey("recommend", params)
	if rec, ok := results.Get(key); ok {
	    return rec
	}
	results.Add(key, rec)

# Thread Safety

All LRU operations take the cache mutex. Values are returned as stored, so
callers must treat cached values as read-only.
*/
package cache
