// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/trackmatch/internal/logging"
	"github.com/tomtom215/trackmatch/internal/middleware"
	"github.com/tomtom215/trackmatch/internal/models"
	"github.com/tomtom215/trackmatch/internal/recommend"
	"github.com/tomtom215/trackmatch/internal/validation"
)

// maxBodyBytes bounds request bodies. The largest valid body is a full
// questionnaire of 36 answers.
const maxBodyBytes = 64 << 10

// sanitizeLogValue removes control characters from strings to prevent log injection attacks.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			result.WriteString(fmt.Sprintf("\\x%02x", r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// respondJSON sends a JSON response with proper headers
func respondJSON(w http.ResponseWriter, status int, response *models.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")

	data, err := json.Marshal(response)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("ETag", generateETag(data))

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// generateETag creates a simple ETag from data using FNV-1a hash
func generateETag(data []byte) string {
	hash := uint32(2166136261)
	for _, b := range data {
		hash ^= uint32(b)
		hash *= 16777619
	}
	return strconv.FormatUint(uint64(hash), 16)
}

// respondSuccess wraps data in a success envelope.
func respondSuccess(w http.ResponseWriter, r *http.Request, data interface{}, start time.Time, cached bool) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: models.StatusSuccess,
		Data:   data,
		Metadata: models.Metadata{
			Timestamp:   time.Now().UTC(),
			QueryTimeMS: time.Since(start).Milliseconds(),
			Cached:      cached,
			RequestID:   middleware.GetRequestID(r.Context()),
		},
	})
}

// respondError sends an error response
func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string, err error) {
	respondAPIError(w, r, status, &models.APIError{Code: code, Message: message}, err)
}

// respondAPIError sends an error response with details. Server errors are
// logged at error level, client errors at debug.
func respondAPIError(w http.ResponseWriter, r *http.Request, status int, apiErr *models.APIError, err error) {
	if err != nil {
		logger := logging.Ctx(r.Context())
		event := logger.Debug()
		if status >= http.StatusInternalServerError {
			event = logger.Error()
		}
		event.Str("code", sanitizeLogValue(apiErr.Code)).
			Str("error", sanitizeLogValue(err.Error())).
			Msg("API Error")
	}

	respondJSON(w, status, &models.APIResponse{
		Status: models.StatusError,
		Data:   nil,
		Metadata: models.Metadata{
			Timestamp: time.Now().UTC(),
			RequestID: middleware.GetRequestID(r.Context()),
		},
		Error: apiErr,
	})
}

// validateRequest validates a struct using go-playground/validator.
// Returns nil if validation passes, or a models.APIError with the
// VALIDATION_ERROR code if it fails.
func validateRequest(v interface{}) *models.APIError {
	validationErr := validation.ValidateStruct(v)
	if validationErr == nil {
		return nil
	}

	apiErr := validationErr.ToAPIError()
	return &models.APIError{
		Code:    apiErr.Code,
		Message: apiErr.Message,
		Details: apiErr.Details,
	}
}

// decodeJSON reads a size-limited JSON body into dst. Unknown fields and
// trailing data are rejected.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) *models.APIError {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return &models.APIError{Code: models.CodeValidation, Message: "Request body too large"}
		case errors.Is(err, io.EOF):
			return &models.APIError{Code: models.CodeValidation, Message: "Request body is empty"}
		default:
			return &models.APIError{
				Code:    models.CodeValidation,
				Message: "Invalid JSON body",
				Details: map[string]interface{}{"error": sanitizeLogValue(err.Error())},
			}
		}
	}
	if dec.More() {
		return &models.APIError{Code: models.CodeValidation, Message: "Request body must contain a single JSON object"}
	}
	return nil
}

// respondRecommendError maps recommendation failures to HTTP responses.
func respondRecommendError(w http.ResponseWriter, r *http.Request, err error) {
	var reqErr *validation.RequestValidationError
	var valErr *recommend.ValidationError
	switch {
	case errors.As(err, &reqErr):
		apiErr := reqErr.ToAPIError()
		respondAPIError(w, r, http.StatusBadRequest, &models.APIError{
			Code:    apiErr.Code,
			Message: apiErr.Message,
			Details: apiErr.Details,
		}, err)
	case errors.As(err, &valErr):
		respondAPIError(w, r, http.StatusBadRequest, &models.APIError{
			Code:    models.CodeValidation,
			Message: valErr.Error(),
			Details: map[string]interface{}{"field": valErr.Field},
		}, err)
	case errors.Is(err, recommend.ErrNotInitialized):
		respondError(w, r, http.StatusServiceUnavailable, models.CodeServiceUnavailable, "Recommendation model is not initialized", err)
	default:
		respondError(w, r, http.StatusInternalServerError, models.CodeInternal, "Failed to compute recommendations", err)
	}
}

// getIntParam extracts an integer query parameter with a default value
func getIntParam(r *http.Request, key string, defaultValue int) int {
	value := r.URL.Query().Get(key)
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return intValue
}

// getInt64Param extracts an int64 query parameter with a default value
func getInt64Param(r *http.Request, key string, defaultValue int64) int64 {
	value := r.URL.Query().Get(key)
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return defaultValue
	}

	return intValue
}

// requestedTopN maps the optional top_n field to an engine request value.
// Absent uses the configured default; explicit values below 1 become 1.
func requestedTopN(topN *int) int {
	if topN == nil {
		return 0
	}
	if *topN < 1 {
		return 1
	}
	return *topN
}
