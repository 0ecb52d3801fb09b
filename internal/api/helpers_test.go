// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/trackmatch/internal/config"
	"github.com/tomtom215/trackmatch/internal/database"
	"github.com/tomtom215/trackmatch/internal/models"
	"github.com/tomtom215/trackmatch/internal/recommend"
)

// fakeStore is an in-memory DatasetStore.
type fakeStore struct {
	mu        sync.Mutex
	pingErr   error
	sampleErr error
	rows      []database.SampleRow
	gotN      int
	gotSeed   int64
}

func (s *fakeStore) Ping(context.Context) error { return s.pingErr }

func (s *fakeStore) Count(context.Context) (int, error) {
	if s.sampleErr != nil {
		return 0, s.sampleErr
	}
	return 6, nil
}

func (s *fakeStore) Sample(_ context.Context, n int, seed int64) ([]database.SampleRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gotN, s.gotSeed = n, seed
	if s.sampleErr != nil {
		return nil, s.sampleErr
	}
	return s.rows, nil
}

func (s *fakeStore) Source() string { return "fixture.csv" }

func vec(values ...float64) recommend.Vector {
	return recommend.Vector(values)
}

// fixtureDataset has three tracks with clearly separated interests.
func fixtureDataset() recommend.Dataset {
	rec := func(track string, v recommend.Vector) recommend.Record {
		return recommend.Record{Track: track, Ratings: v}
	}
	return recommend.Dataset{
		Source: "fixture.csv",
		Records: []recommend.Record{
			rec("Ingeniería", vec(5, 5, 1, 2, 5, 2, 2, 1, 3, 1, 1, 1)),
			rec("Medicina", vec(2, 3, 5, 5, 1, 1, 3, 2, 2, 1, 4, 1)),
			rec("Artes", vec(1, 1, 1, 1, 2, 5, 4, 4, 2, 1, 3, 5)),
			rec("Ingeniería", vec(4, 5, 2, 2, 5, 1, 2, 2, 3, 1, 2, 1)),
			rec("Medicina", vec(3, 2, 5, 4, 2, 2, 3, 2, 1, 2, 5, 2)),
			rec("Artes", vec(2, 1, 2, 1, 1, 5, 5, 4, 1, 2, 3, 5)),
		},
	}
}

// engineerRatings strongly prefers the Ingeniería profile.
var engineerRatings = []interface{}{5, 5, 1, 1, 5, 1, 1, 1, 3, 1, 1, 1}

type testServer struct {
	handler http.Handler
	engine  *recommend.Engine
	store   *fakeStore
}

// newTestServer builds the full router around a real engine. initialize
// controls whether the engine is fitted to fixtureDataset.
func newTestServer(t *testing.T, initialize bool, modify func(*config.Config)) *testServer {
	t.Helper()

	engine, err := recommend.NewEngine(recommend.DefaultConfig(), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	if initialize {
		if _, err := engine.Initialize(context.Background(), fixtureDataset()); err != nil {
			t.Fatalf("Initialize: %v", err)
		}
	}

	cfg := config.DefaultConfig()
	cfg.Security.RateLimitDisabled = true
	if modify != nil {
		modify(cfg)
	}

	store := &fakeStore{}
	router := NewRouter(NewHandler(engine, store, cfg), &cfg.Security)
	return &testServer{handler: router.SetupChi(), engine: engine, store: store}
}

func (ts *testServer) do(t *testing.T, method, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			if err := json.NewEncoder(&buf).Encode(b); err != nil {
				t.Fatalf("encode body: %v", err)
			}
		}
	}

	req := httptest.NewRequest(method, target, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

// envelope mirrors models.APIResponse with a raw payload.
type envelope struct {
	Status   string           `json:"status"`
	Data     json.RawMessage  `json:"data"`
	Metadata models.Metadata  `json:"metadata"`
	Error    *models.APIError `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder, data interface{}) envelope {
	t.Helper()

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("response is not JSON: %v (%s)", err, rec.Body.String())
	}
	if data != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, data); err != nil {
			t.Fatalf("decode data: %v (%s)", err, env.Data)
		}
	}
	return env
}

func intPtr(v int) *int { return &v }
