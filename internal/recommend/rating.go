// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package recommend

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Vector is an ordered sequence of per-dimension values. Raw vectors hold
// ratings in [RatingMin, RatingMax]; normalized vectors hold scaled values.
type Vector []float64

// Clone returns a copy of v.
func (v Vector) Clone() Vector {
	if v == nil {
		return nil
	}
	out := make(Vector, len(v))
	copy(out, v)
	return out
}

// ClampRating clamps a numeric rating into [RatingMin, RatingMax].
// Infinities clamp to the nearest bound; NaN is treated as missing.
func ClampRating(v float64) float64 {
	if math.IsNaN(v) {
		return RatingDefault
	}
	return math.Max(RatingMin, math.Min(RatingMax, v))
}

// CoerceRating converts an untyped rating (a JSON value or a CSV cell) into
// a valid rating. Numbers and numeric strings are clamped; nil, empty and
// non-numeric values become RatingDefault.
func CoerceRating(v interface{}) float64 {
	switch x := v.(type) {
	case nil:
		return RatingDefault
	case float64:
		return ClampRating(x)
	case float32:
		return ClampRating(float64(x))
	case int:
		return ClampRating(float64(x))
	case int32:
		return ClampRating(float64(x))
	case int64:
		return ClampRating(float64(x))
	case uint64:
		return ClampRating(float64(x))
	case bool:
		return RatingDefault
	case string:
		return parseRating(x)
	case *float64:
		if x == nil {
			return RatingDefault
		}
		return ClampRating(*x)
	default:
		// json.Number and similar stringers
		return parseRating(fmt.Sprint(x))
	}
}

func parseRating(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return RatingDefault
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return RatingDefault
	}
	// Out-of-range literals such as 1e999 parse to ±Inf.
	return ClampRating(f)
}

// NewRawVector validates the length of values and returns a clamped copy.
func NewRawVector(values []float64) (Vector, error) {
	if len(values) != Dimensions {
		return nil, newValidationError("ratings", "expected %d values, got %d", Dimensions, len(values))
	}
	out := make(Vector, Dimensions)
	for i, v := range values {
		out[i] = ClampRating(v)
	}
	return out, nil
}

// CoerceVector is NewRawVector over untyped values.
func CoerceVector(values []interface{}) (Vector, error) {
	if len(values) != Dimensions {
		return nil, newValidationError("ratings", "expected %d values, got %d", Dimensions, len(values))
	}
	out := make(Vector, Dimensions)
	for i, v := range values {
		out[i] = CoerceRating(v)
	}
	return out, nil
}

// DefaultVector returns a raw vector with every rating at RatingDefault.
func DefaultVector() Vector {
	out := make(Vector, Dimensions)
	for i := range out {
		out[i] = RatingDefault
	}
	return out
}
