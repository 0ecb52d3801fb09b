// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/trackmatch/internal/models"
)

// Health handles health check requests.
//
// The status is "healthy" when the model is initialized and the dataset
// store answers a ping, "degraded" otherwise. It always answers 200 so
// dashboards can read the body; use /health/ready for gating traffic.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	dbConnected := h.store != nil && h.store.Ping(r.Context()) == nil
	status := h.engine.Status()

	health := models.HealthResponse{
		Status:            "healthy",
		Version:           Version,
		Ready:             status.Ready,
		DatabaseConnected: dbConnected,
		ModelVersion:      status.ModelVersion,
		InitializedAt:     status.InitializedAt,
		Records:           status.Records,
		Tracks:            status.Tracks,
		Degenerate:        status.Degenerate,
		Uptime:            time.Since(h.startTime).Seconds(),
		Requests:          status.Requests,
		Errors:            status.Errors,
		Cache:             status.Cache,
	}
	if !status.Ready || !dbConnected {
		health.Status = "degraded"
	}

	respondSuccess(w, r, health, start, false)
}

// HealthLive handles liveness check requests (Kubernetes-style)
// Returns 200 OK if the process is alive, regardless of dependencies
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	}, time.Now(), false)
}

// HealthReady handles readiness check requests (Kubernetes-style)
// Returns 200 OK only once the recommendation model is initialized.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	ready := h.engine.Status().Ready

	statusCode := http.StatusOK
	status := "ready"
	if !ready {
		statusCode = http.StatusServiceUnavailable
		status = "not_ready"
	}

	respondJSON(w, statusCode, &models.APIResponse{
		Status: status,
		Data: map[string]interface{}{
			"model_initialized": ready,
			"uptime":            time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now().UTC(),
		},
	})
}
