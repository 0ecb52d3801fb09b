// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package validation

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrorCode is the API error code reported for every rejected request body.
const ErrorCode = "VALIDATION_ERROR"

// FieldError describes one rule a request field broke.
type FieldError struct {
	Field   string      // JSON path, e.g. "ratings[3]" or "answers[Interes_2_q1]"
	Tag     string      // rule name, e.g. "rating" or "len"
	Param   string      // rule argument, e.g. "12" for len=12
	Value   interface{} // offending value
	Message string
}

func (e FieldError) Error() string { return e.Message }

// RequestValidationError collects every FieldError raised by one struct.
type RequestValidationError struct {
	fields []FieldError
}

// Errors returns the individual field failures in validator order.
func (ve *RequestValidationError) Errors() []FieldError {
	return ve.fields
}

func (ve *RequestValidationError) Error() string {
	if len(ve.fields) == 0 {
		return "validation failed"
	}
	return ve.joined()
}

func (ve *RequestValidationError) joined() string {
	var b strings.Builder
	for i, f := range ve.fields {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(f.Message)
	}
	return b.String()
}

// APIError mirrors the API error body without importing the api package.
type APIError struct {
	Code    string
	Message string
	Details map[string]interface{}
}

// ToAPIError shapes the failures for the JSON error envelope. A single
// failure is flattened into Details; several are listed under "fields".
func (ve *RequestValidationError) ToAPIError() *APIError {
	out := &APIError{Code: ErrorCode, Message: "Validation failed"}

	switch len(ve.fields) {
	case 0:
		return out
	case 1:
		f := ve.fields[0]
		out.Message = f.Message
		out.Details = map[string]interface{}{"field": f.Field, "tag": f.Tag, "value": f.Value}
		return out
	}

	list := make([]map[string]interface{}, 0, len(ve.fields))
	for _, f := range ve.fields {
		list = append(list, map[string]interface{}{"field": f.Field, "tag": f.Tag, "message": f.Message})
	}
	out.Message = ve.joined()
	out.Details = map[string]interface{}{"fields": list}
	return out
}

// messages holds one template per rule. A "<tag>/string" entry overrides
// the plain one when the failing field is a string.
var messages = map[string]string{
	"required":     "{field} is required",
	"rating":       "{field} must be a rating between 1 and 5",
	"question_key": "{field} is not a known questionnaire item",
	"oneof":        "{field} must be one of: {param}",
	"len":          "{field} must contain exactly {param} values",
	"gte":          "{field} must be greater than or equal to {param}",
	"lte":          "{field} must be less than or equal to {param}",
	"gt":           "{field} must be greater than {param}",
	"lt":           "{field} must be less than {param}",
	"min":          "{field} must be at least {param}",
	"max":          "{field} must be at most {param}",
	"min/string":   "{field} must be at least {param} characters",
	"max/string":   "{field} must be at most {param} characters",
}

func describe(fe validator.FieldError) string {
	tmpl, ok := "", false
	if fe.Kind() == reflect.String {
		tmpl, ok = messages[fe.Tag()+"/string"]
	}
	if !ok {
		tmpl, ok = messages[fe.Tag()]
	}
	if !ok {
		tmpl = "{field} failed {tag} validation"
	}
	return strings.NewReplacer(
		"{field}", fe.Field(),
		"{param}", fe.Param(),
		"{tag}", fe.Tag(),
	).Replace(tmpl)
}

func fromValidator(errs validator.ValidationErrors) *RequestValidationError {
	fields := make([]FieldError, 0, len(errs))
	for _, fe := range errs {
		fields = append(fields, FieldError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Param:   fe.Param(),
			Value:   fe.Value(),
			Message: describe(fe),
		})
	}
	return &RequestValidationError{fields: fields}
}
