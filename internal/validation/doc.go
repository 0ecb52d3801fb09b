// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Package validation provides struct validation using go-playground/validator v10.
//
// It wraps a thread-safe singleton validator with two custom tags and
// user-facing messages that feed the API's VALIDATION_ERROR responses.
//
// # Custom Tags
//
//   - rating: an integer or float within the 1..5 rating scale
//   - question_key: a questionnaire item key such as Interes_7_q2
//
// Field names in messages follow the struct's json tags, so errors name the
// request body fields the client actually sent.
//
// # Usage
//
//	type RecommendRequest struct {
//	    Ratings []float64 `json:"ratings" validate:"required,len=12"`
//	    TopN    int       `json:"top_n" validate:"gte=0"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
//	    return
//	}
//
// Map entries are validated with dive/keys:
//
//	Answers map[string]int `json:"answers" validate:"dive,keys,question_key,endkeys,rating"`
package validation
