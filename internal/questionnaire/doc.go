// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Package questionnaire holds the 36-item interest questionnaire and reduces
// answers to the 12-value rating vector the recommender consumes.
//
// Items are keyed Interes_<n>_q<j> with n in 1..12 and j in 1..3. Keys and
// answers are validated with the shared validation package before scoring.
package questionnaire
