// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package questionnaire

import (
	"math"

	"github.com/tomtom215/trackmatch/internal/recommend"
	"github.com/tomtom215/trackmatch/internal/validation"
)

type answerSet struct {
	Answers map[string]int `json:"answers" validate:"dive,keys,question_key,endkeys,rating"`
}

// Score reduces questionnaire answers to a raw rating vector.
//
// Each dimension is the mean of its three answers rounded to the nearest
// integer. Unanswered items count as the neutral rating. Unknown keys and
// answers outside 1..5 fail with *validation.RequestValidationError.
func Score(answers map[string]int) (recommend.Vector, error) {
	if verr := validation.ValidateStruct(&answerSet{Answers: answers}); verr != nil {
		return nil, verr
	}

	out := make(recommend.Vector, recommend.Dimensions)
	for _, d := range recommend.AllDimensions() {
		sum := 0
		for q := 1; q <= validation.QuestionsPerDimension; q++ {
			if v, ok := answers[Key(d, q)]; ok {
				sum += v
			} else {
				sum += recommend.RatingDefault
			}
		}
		// Means of three integers never land on .5
		out[d] = math.Round(float64(sum) / validation.QuestionsPerDimension)
	}
	return out, nil
}

// DefaultVector is the rating vector of an unsubmitted questionnaire.
func DefaultVector() recommend.Vector {
	return recommend.DefaultVector()
}
