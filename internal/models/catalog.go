// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package models

import (
	"time"

	"github.com/tomtom215/trackmatch/internal/questionnaire"
	"github.com/tomtom215/trackmatch/internal/recommend"
)

// DimensionInfo describes one interest dimension.
type DimensionInfo struct {
	Index  int    `json:"index"`
	Column string `json:"column"`
	Label  string `json:"label"`
}

// Dimensions lists every dimension in canonical order.
func Dimensions() []DimensionInfo {
	out := make([]DimensionInfo, 0, recommend.Dimensions)
	for _, d := range recommend.AllDimensions() {
		out = append(out, DimensionInfo{Index: int(d) + 1, Column: d.Column(), Label: d.Label()})
	}
	return out
}

// QuestionnaireResponse is the data payload of GET /api/v1/questionnaire.
type QuestionnaireResponse struct {
	Scale    RatingScale             `json:"scale"`
	Sections []questionnaire.Section `json:"sections"`
}

// RatingScale documents the answer scale.
type RatingScale struct {
	Min     int `json:"min"`
	Max     int `json:"max"`
	Default int `json:"default"`
}

// DefaultRatingScale returns the 1..5 scale with a neutral default of 3.
func DefaultRatingScale() RatingScale {
	return RatingScale{
		Min:     int(recommend.RatingMin),
		Max:     int(recommend.RatingMax),
		Default: int(recommend.RatingDefault),
	}
}

// TrackProfile is a track's mean normalized interest vector.
type TrackProfile struct {
	Track   string           `json:"track"`
	Records int              `json:"records"`
	Profile []DimensionValue `json:"profile"`
}

// TracksResponse is the data payload of GET /api/v1/tracks.
type TracksResponse struct {
	Total  int            `json:"total"`
	Tracks []TrackProfile `json:"tracks"`
}

// NewTracksResponse returns the first limit profiles in model order.
// A non-positive limit returns all of them.
func NewTracksResponse(profiles recommend.Profiles, limit int) *TracksResponse {
	n := profiles.Len()
	if limit > 0 && limit < n {
		n = limit
	}
	tracks := make([]TrackProfile, n)
	for i := 0; i < n; i++ {
		p := profiles.At(i)
		tracks[i] = TrackProfile{Track: p.Track, Records: p.Count, Profile: DimensionValues(p.Vector)}
	}
	return &TracksResponse{Total: profiles.Len(), Tracks: tracks}
}

// SampleRecord is one raw dataset row.
type SampleRecord struct {
	Row     int64     `json:"row"`
	Track   string    `json:"track"`
	Ratings []float64 `json:"ratings"`
}

// DatasetSampleResponse is the data payload of GET /api/v1/dataset/sample.
type DatasetSampleResponse struct {
	Source  string         `json:"source"`
	Total   int            `json:"total"`
	Seed    int64          `json:"seed"`
	Columns []string       `json:"columns"`
	Rows    []SampleRecord `json:"rows"`
}

// HealthResponse is the data payload of GET /api/v1/health.
type HealthResponse struct {
	Status            string    `json:"status"`
	Version           string    `json:"version"`
	Ready             bool      `json:"ready"`
	DatabaseConnected bool      `json:"database_connected"`
	ModelVersion      string    `json:"model_version,omitempty"`
	InitializedAt     time.Time `json:"initialized_at,omitempty"`
	Records           int       `json:"records"`
	Tracks            int       `json:"tracks"`
	Degenerate        []string  `json:"degenerate_dimensions,omitempty"`
	Uptime            float64   `json:"uptime_seconds"`

	Requests int64                 `json:"requests"`
	Errors   int64                 `json:"errors"`
	Cache    recommend.CacheStatus `json:"cache"`
}
