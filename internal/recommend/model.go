// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package recommend

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Model is the fitted state derived from one dataset: the normalization
// transform and the track reference profiles. A Model is never mutated after
// Initialize returns it.
type Model struct {
	// Transform is the fitted min-max scaling.
	Transform Transform

	// Profiles are the track reference profiles in tie-break order.
	Profiles Profiles

	// Records is the number of historical records used.
	Records int

	// Degenerate lists zero-range dimensions.
	Degenerate []Dimension

	// Warnings are non-fatal aggregation problems.
	Warnings []error

	// Version uniquely identifies this model.
	Version string

	// InitializedAt is when the model was built.
	InitializedAt time.Time
}

// Initialize fits a Model to dataset.
//
// Ratings are clamped into the rating scale before fitting. A record with an
// empty track label, an empty dataset or a dataset yielding no profiles is a
// *ValidationError.
func Initialize(dataset Dataset) (*Model, error) {
	if dataset.Len() == 0 {
		return nil, newValidationError("dataset", "no records")
	}

	records := make([]Record, len(dataset.Records))
	for i, r := range dataset.Records {
		track := strings.TrimSpace(r.Track)
		if track == "" {
			return nil, newValidationError(fmt.Sprintf("records[%d].track", i), "track label is empty")
		}
		raw, err := NewRawVector(r.Ratings)
		if err != nil {
			return nil, newValidationError(fmt.Sprintf("records[%d].ratings", i),
				"expected %d values, got %d", Dimensions, len(r.Ratings))
		}
		records[i] = Record{Track: track, Ratings: raw}
	}

	transform, err := Fit(records)
	if err != nil {
		return nil, fmt.Errorf("failed to fit normalization: %w", err)
	}

	normalized := make([]NormalizedRecord, len(records))
	for i, r := range records {
		v, err := transform.Apply(r.Ratings)
		if err != nil {
			return nil, fmt.Errorf("failed to normalize record %d: %w", i, err)
		}
		normalized[i] = NormalizedRecord{Track: r.Track, Vector: v}
	}

	profiles, warnings := Aggregate(GroupByTrack(normalized))
	if profiles.Len() == 0 {
		return nil, newValidationError("profiles", "dataset produced no track profiles")
	}

	return &Model{
		Transform:     transform,
		Profiles:      profiles,
		Records:       len(records),
		Degenerate:    transform.Degenerate(),
		Warnings:      warnings,
		Version:       uuid.NewString(),
		InitializedAt: time.Now().UTC(),
	}, nil
}

// Recommend clamps raw, projects it through the model's transform and ranks
// every track profile against it. topN is clamped to [1, number of tracks].
func (m *Model) Recommend(raw []float64, topN int) ([]Result, error) {
	results, _, _, err := m.recommend(raw, topN, DefaultExplanationSize)
	return results, err
}

func (m *Model) recommend(raw []float64, topN, explain int) ([]Result, Vector, []*DegenerateInputError, error) {
	rawVec, err := NewRawVector(raw)
	if err != nil {
		return nil, nil, nil, err
	}
	user, err := m.Transform.Apply(rawVec)
	if err != nil {
		return nil, nil, nil, err
	}
	results, fallbacks, err := rank(user, m.Profiles, topN, explain)
	if err != nil {
		return nil, nil, nil, err
	}
	return results, user, fallbacks, nil
}

// Breakdown returns the k largest contributions of user against the profile
// of track.
func (m *Model) Breakdown(user Vector, track string, k int) ([]Contribution, error) {
	p, ok := m.Profiles.Lookup(track)
	if !ok {
		return nil, newValidationError("track", "unknown track %q", track)
	}
	c, err := Contributions(user, p.Vector)
	if err != nil {
		return nil, err
	}
	return TopContributions(c, k), nil
}

// DegenerateErrors describes the zero-range dimensions of the model.
func (m *Model) DegenerateErrors() []*DegenerateInputError {
	out := make([]*DegenerateInputError, len(m.Degenerate))
	for i, d := range m.Degenerate {
		out[i] = &DegenerateInputError{Kind: DegenerateRange, Dimension: d}
	}
	return out
}
