// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package recommend

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotInitialized is returned when recommendations are requested before a
// model has been initialized.
var ErrNotInitialized = errors.New("recommendation engine is not initialized")

// SchemaError reports a dataset that lacks required columns.
// It is fatal for initialization.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return "dataset is missing required columns: " + strings.Join(e.Missing, ", ")
}

// ValidationError reports structurally invalid input: a vector of the wrong
// length, an empty dataset or profile set, or an empty track group.
type ValidationError struct {
	// Field names the offending input, e.g. "ratings" or "records[3].track".
	Field string

	// Reason is a human-readable description.
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return e.Field + ": " + e.Reason
}

func newValidationError(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// DegenerateKind classifies a numeric edge case that is resolved by a
// fallback value instead of failing.
type DegenerateKind string

const (
	// DegenerateRange marks a dimension whose min equals its max.
	// Its normalized output is 0.
	DegenerateRange DegenerateKind = "zero_range"

	// DegenerateNorm marks a vector with zero norm.
	// Its cosine similarity is 0.
	DegenerateNorm DegenerateKind = "zero_norm"
)

// DegenerateInputError describes a fallback that was applied. It is never
// returned from Initialize or Recommend; it is surfaced for logging and
// metrics only.
type DegenerateInputError struct {
	Kind DegenerateKind

	// Dimension is set for DegenerateRange, -1 otherwise.
	Dimension Dimension

	// Track is set for DegenerateNorm when the profile vector has zero norm.
	Track string
}

func (e *DegenerateInputError) Error() string {
	switch e.Kind {
	case DegenerateRange:
		return fmt.Sprintf("dimension %s has zero range, normalized to 0", e.Dimension.Column())
	case DegenerateNorm:
		if e.Track != "" {
			return fmt.Sprintf("zero-norm vector when scoring track %q, similarity set to 0", e.Track)
		}
		return "zero-norm vector, similarity set to 0"
	default:
		return "degenerate input"
	}
}

// IsValidationError reports whether err wraps a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsSchemaError reports whether err wraps a *SchemaError.
func IsSchemaError(err error) bool {
	var se *SchemaError
	return errors.As(err, &se)
}
