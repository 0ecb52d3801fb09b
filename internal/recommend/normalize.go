// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package recommend

import (
	"fmt"
	"math"
)

// Transform is a per-dimension min-max scaling fit on a historical dataset.
//
// A Transform is an immutable value: it is produced by Fit and only read
// afterwards, so it can be shared freely between goroutines.
type Transform struct {
	min    [Dimensions]float64
	max    [Dimensions]float64
	fitted bool
}

// Fit computes the observed min and max of every dimension across records.
func Fit(records []Record) (Transform, error) {
	if len(records) == 0 {
		return Transform{}, newValidationError("dataset", "no records to fit")
	}

	var t Transform
	for d := 0; d < Dimensions; d++ {
		t.min[d] = math.Inf(1)
		t.max[d] = math.Inf(-1)
	}

	for i, r := range records {
		if len(r.Ratings) != Dimensions {
			return Transform{}, newValidationError(fmt.Sprintf("records[%d].ratings", i),
				"expected %d values, got %d", Dimensions, len(r.Ratings))
		}
		for d, v := range r.Ratings {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return Transform{}, newValidationError(fmt.Sprintf("records[%d].ratings[%d]", i, d),
					"rating is not a finite number")
			}
			t.min[d] = math.Min(t.min[d], v)
			t.max[d] = math.Max(t.max[d], v)
		}
	}

	t.fitted = true
	return t, nil
}

// Fitted reports whether t was produced by Fit.
func (t Transform) Fitted() bool {
	return t.fitted
}

// Min returns the fitted minimum of dimension d.
func (t Transform) Min(d Dimension) float64 {
	return t.min[d]
}

// Max returns the fitted maximum of dimension d.
func (t Transform) Max(d Dimension) float64 {
	return t.max[d]
}

// Degenerate returns the dimensions whose fitted range is zero.
func (t Transform) Degenerate() []Dimension {
	var dims []Dimension
	for d := 0; d < Dimensions; d++ {
		if t.max[d] == t.min[d] {
			dims = append(dims, Dimension(d))
		}
	}
	return dims
}

// Apply scales v into the fitted space: (v - min) / (max - min) per
// dimension, and 0 for zero-range dimensions.
//
// Values are not clipped. A user rating below the historical minimum maps
// below 0 and one above the maximum maps above 1.
func (t Transform) Apply(v Vector) (Vector, error) {
	if !t.fitted {
		return nil, newValidationError("transform", "transform has not been fitted")
	}
	if len(v) != Dimensions {
		return nil, newValidationError("vector", "expected %d values, got %d", Dimensions, len(v))
	}

	out := make(Vector, Dimensions)
	for d, value := range v {
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return nil, newValidationError(fmt.Sprintf("vector[%d]", d), "value is not a finite number")
		}
		out[d] = t.scale(d, value)
	}
	return out, nil
}

func (t Transform) scale(d int, value float64) float64 {
	span := t.max[d] - t.min[d]
	if span == 0 {
		return 0
	}
	return (value - t.min[d]) / span
}
