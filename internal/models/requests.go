// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package models

// RecommendRequest is the body of POST /api/v1/recommendations.
//
// Ratings accepts numbers, numeric strings and nulls. Values are coerced
// and clamped to the rating scale, so only the length is validated here.
// A nil TopN uses the configured default; explicit values are clamped.
//
// Example:
//
//	{"ratings": [5, 4, 1, 2, 5, 3, 2, 1, 3, 1, 2, 3], "top_n": 3}
type RecommendRequest struct {
	Ratings []interface{} `json:"ratings" validate:"required,len=12"`
	TopN    *int          `json:"top_n,omitempty"`
}

// QuestionnaireRequest is the body of POST /api/v1/recommendations/questionnaire.
//
// Answers are keyed Interes_<dimension>_q<question> with values 1..5.
// Unanswered items count as the neutral rating.
//
// Example:
//
//	{"answers": {"Interes_1_q1": 5, "Interes_1_q2": 4}, "top_n": 5}
type QuestionnaireRequest struct {
	Answers map[string]int `json:"answers" validate:"dive,keys,question_key,endkeys,rating"`
	TopN    *int           `json:"top_n,omitempty"`
}

// ProfileExportRequest is the body of POST /api/v1/profile/export.
// Ratings take precedence over Answers; with neither the neutral profile
// is exported.
type ProfileExportRequest struct {
	Ratings []interface{}  `json:"ratings,omitempty" validate:"omitempty,len=12"`
	Answers map[string]int `json:"answers,omitempty" validate:"omitempty,dive,keys,question_key,endkeys,rating"`
}
