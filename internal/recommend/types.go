// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package recommend

import (
	"time"

	"github.com/tomtom215/trackmatch/internal/cache"
)

// Record is one historical individual: raw ratings plus the assigned track.
type Record struct {
	// Track is the assigned track label.
	Track string `json:"track"`

	// Ratings are the raw ratings in canonical dimension order.
	Ratings Vector `json:"ratings"`
}

// NormalizedRecord is a Record projected through a Transform.
type NormalizedRecord struct {
	Track  string
	Vector Vector
}

// Dataset is an ordered collection of historical records.
type Dataset struct {
	// Records in source order.
	Records []Record `json:"records"`

	// Source describes where the records came from, e.g. a file path.
	Source string `json:"source,omitempty"`

	// Rejected counts source rows dropped by the loader.
	Rejected int `json:"rejected,omitempty"`
}

// Len returns the number of records.
func (d Dataset) Len() int {
	return len(d.Records)
}

// Request is a recommendation request.
type Request struct {
	// Ratings are the user's raw ratings. Out-of-range values are clamped.
	Ratings []float64 `json:"ratings"`

	// TopN is the number of tracks to return.
	// Zero or negative uses the configured default.
	TopN int `json:"top_n"`

	// RequestID is for tracing.
	// If empty, one is taken from the context or generated.
	RequestID string `json:"request_id,omitempty"`
}

// Recommendation is the response to a Request.
type Recommendation struct {
	// Ratings are the clamped raw ratings used for ranking.
	Ratings Vector `json:"ratings"`

	// Normalized is the user vector in the fitted space.
	Normalized Vector `json:"normalized"`

	// TopN is the effective number of results after clamping.
	TopN int `json:"top_n"`

	// Results are ordered by descending score.
	Results []Result `json:"results"`

	// Breakdown is the largest contributions for the first result.
	Breakdown []Contribution `json:"breakdown"`

	// Metadata contains request metadata.
	Metadata ResponseMetadata `json:"metadata"`
}

// Clone returns a deep copy of r.
func (r *Recommendation) Clone() *Recommendation {
	out := *r
	out.Ratings = r.Ratings.Clone()
	out.Normalized = r.Normalized.Clone()
	out.Breakdown = cloneContributions(r.Breakdown)
	if r.Results != nil {
		out.Results = make([]Result, len(r.Results))
		for i, res := range r.Results {
			res.Drivers = cloneContributions(res.Drivers)
			out.Results[i] = res
		}
	}
	return &out
}

func cloneContributions(c []Contribution) []Contribution {
	if c == nil {
		return nil
	}
	out := make([]Contribution, len(c))
	copy(out, c)
	return out
}

// ResponseMetadata contains metadata about a recommendation response.
type ResponseMetadata struct {
	// RequestID is the request trace ID.
	RequestID string `json:"request_id"`

	// ModelVersion identifies the model that produced the ranking.
	ModelVersion string `json:"model_version"`

	// InitializedAt is when the model was built.
	InitializedAt time.Time `json:"initialized_at"`

	// LatencyMS is the processing time in milliseconds.
	LatencyMS float64 `json:"latency_ms"`

	// CacheHit indicates whether the result came from the cache.
	CacheHit bool `json:"cache_hit"`

	// Timestamp is when the response was generated.
	Timestamp time.Time `json:"timestamp"`
}

// Status summarizes engine state for health checks.
type Status struct {
	Ready         bool      `json:"ready"`
	ModelVersion  string    `json:"model_version,omitempty"`
	InitializedAt time.Time `json:"initialized_at,omitempty"`
	Records       int       `json:"records"`
	Tracks        int       `json:"tracks"`
	Degenerate    []string  `json:"degenerate_dimensions,omitempty"`
	Requests      int64       `json:"requests"`
	Errors        int64       `json:"errors"`
	Cache         CacheStatus `json:"cache"`
}

// CacheStatus reports the recommendation result cache. Counters survive
// model swaps; Size does not.
type CacheStatus struct {
	Enabled bool `json:"enabled"`
	cache.Stats
	HitRate float64 `json:"hit_rate_pct"`
}
