// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package api

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/tomtom215/trackmatch/internal/models"
)

func TestHealth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		initialize bool
		pingErr    error
		want       string
	}{
		{name: "healthy", initialize: true, want: "healthy"},
		{name: "not initialized", initialize: false, want: "degraded"},
		{name: "database down", initialize: true, pingErr: errors.New("closed"), want: "degraded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ts := newTestServer(t, tt.initialize, nil)
			ts.store.pingErr = tt.pingErr

			rec := ts.do(t, http.MethodGet, "/api/v1/health", nil)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rec.Code)
			}

			if body := rec.Body.String(); !strings.Contains(body, `"hit_rate_pct"`) {
				t.Errorf("health body lacks cache stats: %s", body)
			}

			var health models.HealthResponse
			decodeEnvelope(t, rec, &health)
			if health.Status != tt.want {
				t.Errorf("status = %q, want %q", health.Status, tt.want)
			}
			if health.Ready != tt.initialize {
				t.Errorf("ready = %v, want %v", health.Ready, tt.initialize)
			}
			if health.DatabaseConnected != (tt.pingErr == nil) {
				t.Errorf("database_connected = %v", health.DatabaseConnected)
			}
			if tt.initialize && (health.Tracks != 3 || health.Records != 6) {
				t.Errorf("tracks = %d, records = %d, want 3 and 6", health.Tracks, health.Records)
			}
			if health.Version != Version {
				t.Errorf("version = %q, want %q", health.Version, Version)
			}
		})
	}
}

func TestHealthLive(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t, false, nil)

	rec := ts.do(t, http.MethodGet, "/api/v1/health/live", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestHealthReady(t *testing.T) {
	t.Parallel()

	tests := []struct {
		initialize bool
		status     int
		body       string
	}{
		{initialize: true, status: http.StatusOK, body: "ready"},
		{initialize: false, status: http.StatusServiceUnavailable, body: "not_ready"},
	}

	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			t.Parallel()
			ts := newTestServer(t, tt.initialize, nil)

			rec := ts.do(t, http.MethodGet, "/api/v1/health/ready", nil)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}
			if env := decodeEnvelope(t, rec, nil); env.Status != tt.body {
				t.Errorf("status = %q, want %q", env.Status, tt.body)
			}
		})
	}
}
