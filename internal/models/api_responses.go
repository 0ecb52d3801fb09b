// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package models

import (
	"time"
)

// APIResponse is the envelope for every JSON endpoint. Status is
// StatusSuccess with Data set, or StatusError with Error set.
//
// Success:
//
//	{
//	  "status": "success",
//	  "data": {"top_n": 3, "results": [...]},
//	  "metadata": {
//	    "timestamp": "2026-10-17T12:00:00Z",
//	    "query_time_ms": 2,
//	    "request_id": "0f8a..."
//	  }
//	}
//
// Failure:
//
//	{
//	  "status": "error",
//	  "error": {
//	    "code": "VALIDATION_ERROR",
//	    "message": "ratings must contain exactly 12 values",
//	    "details": {"field": "ratings"}
//	  },
//	  "metadata": {"timestamp": "2026-10-17T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata is attached to every response. QueryTimeMS is handler time;
// Cached is set when a recommendation came from the result cache.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	Cached      bool      `json:"cached,omitempty"`
	RequestID   string    `json:"request_id,omitempty"`
}

// Envelope status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Error codes carried in APIError.Code.
const (
	CodeValidation         = "VALIDATION_ERROR"    // malformed body, wrong vector length, bad answer key
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE" // model not initialized yet
	CodeDatabase           = "DATABASE_ERROR"
	CodeRateLimited        = "RATE_LIMIT_EXCEEDED"
	CodeNotFound           = "NOT_FOUND"
	CodeMethodNotAllowed   = "METHOD_NOT_ALLOWED"
	CodeInternal           = "INTERNAL_ERROR"
)

// APIError is the error member of a failed response.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
