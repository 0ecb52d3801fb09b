// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Package recommend ranks career and study tracks by how closely their
// average interest profile matches a user's self-reported interests.
//
// # Pipeline
//
// Data flows one way:
//
//	historical records -> Fit (min-max Transform) -> Aggregate (mean profile per track)
//	user ratings -> Transform.Apply -> Rank (cosine similarity) -> results + drivers
//
// Every vector has Dimensions (12) entries in canonical Dimension order.
// Ratings are clamped to [1, 5]; missing or non-numeric ratings become 3.
//
// # Fallback Policies
//
// Two numeric edge cases resolve to 0 instead of failing:
//
//   - A dimension whose historical min equals its max normalizes to 0.
//   - A cosine similarity involving a zero-norm vector is 0.
//
// Both are reported as DegenerateInputError values to logs and metrics only.
//
// # Explanations
//
// Each result lists the dimensions with the largest elementwise product of
// user vector and track profile. This is a heuristic pointing at shared
// strengths; it is not a decomposition of the cosine score.
//
// # Usage
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), logger)
//	if _, err := engine.Initialize(ctx, dataset); err != nil {
//	    return err // *SchemaError or *ValidationError are fatal
//	}
//	rec, err := engine.Recommend(ctx, ratings, 5)
//
// # Thread Safety
//
// A Model is immutable once built. The Engine swaps models atomically, so
// Recommend is safe for concurrent use and never observes a partial model.
package recommend
