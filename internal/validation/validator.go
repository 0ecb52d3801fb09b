// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/tomtom215/trackmatch/internal/recommend"
)

// QuestionsPerDimension is the number of questionnaire items per interest.
const QuestionsPerDimension = 3

var (
	shared     *validator.Validate
	sharedOnce sync.Once
)

// GetValidator returns the process-wide validator with the "rating" and
// "question_key" rules registered. Safe for concurrent use.
func GetValidator() *validator.Validate {
	sharedOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(jsonFieldName)
		// Registration only fails for empty tags or nil functions.
		_ = v.RegisterValidation("rating", isRating)
		_ = v.RegisterValidation("question_key", isQuestionKey)
		shared = v
	})
	return shared
}

// ValidateStruct checks s against its validate tags. The result is nil
// when s is valid.
func ValidateStruct(s interface{}) *RequestValidationError {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		return fromValidator(fieldErrs)
	}
	// InvalidValidationError: s was nil or not a struct.
	return &RequestValidationError{fields: []FieldError{{
		Field:   "unknown",
		Tag:     "unknown",
		Message: err.Error(),
	}}}
}

// ParseQuestionKey splits an item key such as Interes_7_q2 into its
// dimension and 1-based question number. The part before "_q" must be a
// dataset interest column. ok is false for malformed or out-of-range keys.
func ParseQuestionKey(key string) (dim recommend.Dimension, question int, ok bool) {
	i := strings.LastIndex(key, "_q")
	if i < 0 || len(key) != i+3 {
		return 0, 0, false
	}
	q := int(key[i+2] - '0')
	if q < 1 || q > QuestionsPerDimension {
		return 0, 0, false
	}
	dim, ok = recommend.DimensionByColumn(key[:i])
	if !ok {
		return 0, 0, false
	}
	return dim, q, true
}

func isRating(fl validator.FieldLevel) bool {
	f := fl.Field()
	var v float64
	switch {
	case f.CanInt():
		v = float64(f.Int())
	case f.CanFloat():
		v = f.Float()
	default:
		return false
	}
	return v >= recommend.RatingMin && v <= recommend.RatingMax
}

func isQuestionKey(fl validator.FieldLevel) bool {
	_, _, ok := ParseQuestionKey(fl.Field().String())
	return ok
}

// jsonFieldName reports fields by their JSON name so messages match the
// request body.
func jsonFieldName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return fld.Name
	}
	return name
}
