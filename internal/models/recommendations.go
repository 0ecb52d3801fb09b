// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package models

import (
	"time"

	"github.com/tomtom215/trackmatch/internal/recommend"
)

// DimensionValue is one dimension's value, labelled for display.
type DimensionValue struct {
	Column string  `json:"column"`
	Label  string  `json:"label"`
	Value  float64 `json:"value"`
}

// TrackMatch is one ranked track in a recommendation response.
//
// Score is the raw cosine similarity. Affinity is the same value as a
// percentage. Explanation lists the labels of the strongest shared
// dimensions; it is a heuristic, not an attribution of the score.
type TrackMatch struct {
	Rank        int              `json:"rank"`
	Track       string           `json:"track"`
	Score       float64          `json:"score"`
	Affinity    float64          `json:"affinity"`
	Explanation []string         `json:"explanation"`
	Drivers     []DimensionValue `json:"drivers"`
}

// RecommendationResponse is the data payload of both recommendation endpoints.
type RecommendationResponse struct {
	Ratings       []DimensionValue `json:"ratings"`
	Normalized    []float64        `json:"normalized"`
	TopN          int              `json:"top_n"`
	Results       []TrackMatch     `json:"results"`
	Breakdown     []DimensionValue `json:"breakdown"`
	ModelVersion  string           `json:"model_version"`
	InitializedAt time.Time        `json:"initialized_at"`
}

// NewRecommendationResponse converts an engine recommendation to its API shape.
func NewRecommendationResponse(rec *recommend.Recommendation) *RecommendationResponse {
	results := make([]TrackMatch, len(rec.Results))
	for i, r := range rec.Results {
		results[i] = TrackMatch{
			Rank:        r.Rank,
			Track:       r.Track,
			Score:       r.Score,
			Affinity:    r.Affinity(),
			Explanation: r.Explanation(),
			Drivers:     contributionValues(r.Drivers),
		}
	}

	return &RecommendationResponse{
		Ratings:       DimensionValues(rec.Ratings),
		Normalized:    []float64(rec.Normalized.Clone()),
		TopN:          rec.TopN,
		Results:       results,
		Breakdown:     contributionValues(rec.Breakdown),
		ModelVersion:  rec.Metadata.ModelVersion,
		InitializedAt: rec.Metadata.InitializedAt,
	}
}

// DimensionValues labels a vector in canonical dimension order.
func DimensionValues(v recommend.Vector) []DimensionValue {
	out := make([]DimensionValue, 0, len(v))
	for i, value := range v {
		d := recommend.Dimension(i)
		out = append(out, DimensionValue{Column: d.Column(), Label: d.Label(), Value: value})
	}
	return out
}

func contributionValues(c []recommend.Contribution) []DimensionValue {
	out := make([]DimensionValue, len(c))
	for i, item := range c {
		out[i] = DimensionValue{
			Column: item.Dimension.Column(),
			Label:  item.Label(),
			Value:  item.Value,
		}
	}
	return out
}
