// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package recommend

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/trackmatch/internal/logging"
)

func newTestEngine(t *testing.T, modify func(*Config)) *Engine {
	t.Helper()
	cfg := DefaultConfig()
	if modify != nil {
		modify(cfg)
	}
	e, err := NewEngine(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return e
}

// manyTracks builds n tracks, each peaking on a different dimension.
func manyTracks(n int) Dataset {
	var ds Dataset
	for i := 0; i < n; i++ {
		r := fill(1)
		r[i%Dimensions] = 5
		ds.Records = append(ds.Records, record(string(rune('A'+i)), r))
	}
	return ds
}

func TestNewEngine(t *testing.T) {
	t.Parallel()

	t.Run("nil config uses defaults", func(t *testing.T) {
		t.Parallel()
		e, err := NewEngine(nil, zerolog.Nop())
		if err != nil {
			t.Fatalf("NewEngine() error = %v", err)
		}
		if e.Config().Limits.DefaultTopN != 5 {
			t.Errorf("DefaultTopN = %d, want 5", e.Config().Limits.DefaultTopN)
		}
		if e.Ready() {
			t.Error("new engine must not be ready")
		}
	})

	t.Run("invalid config", func(t *testing.T) {
		t.Parallel()
		cfg := DefaultConfig()
		cfg.Limits.MaxTopN = 0
		if _, err := NewEngine(cfg, zerolog.Nop()); err == nil {
			t.Error("expected error for invalid config")
		}
	})
}

func TestEngine_RecommendBeforeInitialize(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil)
	_, err := e.Recommend(context.Background(), fill(3), 3)
	if !errors.Is(err, ErrNotInitialized) {
		t.Errorf("expected ErrNotInitialized, got %v", err)
	}
	if e.Status().Errors != 1 {
		t.Errorf("Errors = %d, want 1", e.Status().Errors)
	}
}

func TestEngine_Initialize(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil)
	m, err := e.Initialize(context.Background(), threeTrackDataset())
	if err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	if !e.Ready() || e.Model() != m {
		t.Error("engine should serve the new model")
	}

	s := e.Status()
	if !s.Ready || s.Tracks != 3 || s.Records != 3 || s.ModelVersion != m.Version {
		t.Errorf("Status() = %+v", s)
	}
}

func TestEngine_InitializeFailureKeepsModel(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil)
	first, err := e.Initialize(context.Background(), twoTrackDataset())
	if err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}

	if _, err := e.Initialize(context.Background(), Dataset{}); !IsValidationError(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if e.Model() != first {
		t.Error("failed initialization replaced the model")
	}
}

func TestEngine_InitializeCanceled(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := e.Initialize(ctx, twoTrackDataset()); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if e.Ready() {
		t.Error("engine should not be ready")
	}
}

func TestEngine_TopN(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil)
	if _, err := e.Initialize(context.Background(), manyTracks(12)); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}

	tests := []struct {
		name string
		topN int
		want int
	}{
		{"default", 0, 5},
		{"negative uses default", -4, 5},
		{"explicit", 2, 2},
		{"capped at max", 50, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec, err := e.Recommend(context.Background(), fill(3), tt.topN)
			if err != nil {
				t.Fatalf("Recommend() error = %v", err)
			}
			if rec.TopN != tt.want || len(rec.Results) != tt.want {
				t.Errorf("TopN = %d, results = %d, want %d", rec.TopN, len(rec.Results), tt.want)
			}
		})
	}
}

func TestEngine_TopNClampedToTracks(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil)
	if _, err := e.Initialize(context.Background(), twoTrackDataset()); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	rec, err := e.Recommend(context.Background(), fill(5), 0)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(rec.Results) != 2 {
		t.Errorf("results = %d, want 2", len(rec.Results))
	}
	if rec.Results[0].Track != "B" || rec.Results[0].Rank != 1 {
		t.Errorf("first = %+v", rec.Results[0])
	}
}

func TestEngine_RecommendResponse(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil)
	m, _ := e.Initialize(context.Background(), threeTrackDataset())

	rec, err := e.Recommend(context.Background(), fill(5), 3)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(rec.Ratings) != Dimensions || len(rec.Normalized) != Dimensions {
		t.Fatalf("unexpected vectors: %v %v", rec.Ratings, rec.Normalized)
	}
	if len(rec.Breakdown) != DefaultBreakdownSize {
		t.Errorf("Breakdown = %d entries, want %d", len(rec.Breakdown), DefaultBreakdownSize)
	}
	for _, r := range rec.Results {
		if len(r.Drivers) != DefaultExplanationSize {
			t.Errorf("%s has %d drivers", r.Track, len(r.Drivers))
		}
	}
	if rec.Metadata.ModelVersion != m.Version || rec.Metadata.RequestID == "" {
		t.Errorf("Metadata = %+v", rec.Metadata)
	}
	if rec.Metadata.CacheHit {
		t.Error("first call must not be a cache hit")
	}
}

func TestEngine_RecommendValidation(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil)
	_, _ = e.Initialize(context.Background(), twoTrackDataset())

	_, err := e.Recommend(context.Background(), []float64{1, 2, 3}, 1)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if ve.Field != "ratings" {
		t.Errorf("Field = %q, want ratings", ve.Field)
	}
}

func TestEngine_Cache(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil)
	_, _ = e.Initialize(context.Background(), threeTrackDataset())
	ctx := context.Background()

	first, err := e.Recommend(ctx, fill(4), 2)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	second, err := e.Recommend(ctx, fill(4), 2)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	if !second.Metadata.CacheHit {
		t.Error("second identical call should hit the cache")
	}
	if second.Metadata.RequestID == first.Metadata.RequestID {
		t.Error("cached response must carry its own request id")
	}
	if second.Results[0].Track != first.Results[0].Track {
		t.Error("cached results differ")
	}

	// Clamped ratings share a cache entry with their clamped form
	third, _ := e.Recommend(ctx, fill(9), 2)
	fourth, _ := e.Recommend(ctx, fill(5), 2)
	if third.Metadata.CacheHit || !fourth.Metadata.CacheHit {
		t.Error("expected clamped input to share a cache entry")
	}

	// A new model invalidates cached results
	_, _ = e.Initialize(ctx, threeTrackDataset())
	fifth, _ := e.Recommend(ctx, fill(4), 2)
	if fifth.Metadata.CacheHit {
		t.Error("cache should be cleared by Initialize")
	}

	st := e.Status().Cache
	if !st.Enabled || st.Hits != 2 {
		t.Errorf("Cache = %+v, want enabled with 2 hits", st)
	}
	if st.Size != 1 {
		t.Errorf("Cache.Size = %d, want 1 after the model swap", st.Size)
	}
	if st.HitRate <= 0 || st.HitRate >= 100 {
		t.Errorf("Cache.HitRate = %v", st.HitRate)
	}
}

func TestEngine_CacheDisabled(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, func(c *Config) { c.Cache.Enabled = false })
	_, _ = e.Initialize(context.Background(), twoTrackDataset())

	for i := 0; i < 2; i++ {
		rec, err := e.Recommend(context.Background(), fill(2), 1)
		if err != nil {
			t.Fatalf("Recommend() error = %v", err)
		}
		if rec.Metadata.CacheHit {
			t.Error("cache hit with caching disabled")
		}
	}
	if st := e.Status().Cache; st.Enabled || st.Hits != 0 {
		t.Errorf("Cache = %+v, want disabled", st)
	}
}

func TestEngine_RequestID(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil)
	_, _ = e.Initialize(context.Background(), twoTrackDataset())

	t.Run("from context", func(t *testing.T) {
		t.Parallel()
		ctx := logging.ContextWithRequestID(context.Background(), "req-ctx")
		rec, err := e.Recommend(ctx, fill(1), 1)
		if err != nil {
			t.Fatalf("Recommend() error = %v", err)
		}
		if rec.Metadata.RequestID != "req-ctx" {
			t.Errorf("RequestID = %q", rec.Metadata.RequestID)
		}
	})

	t.Run("from request", func(t *testing.T) {
		t.Parallel()
		rec, err := e.RecommendRequest(context.Background(), Request{
			Ratings:   fill(2),
			TopN:      1,
			RequestID: "req-explicit",
		})
		if err != nil {
			t.Fatalf("RecommendRequest() error = %v", err)
		}
		if rec.Metadata.RequestID != "req-explicit" {
			t.Errorf("RequestID = %q", rec.Metadata.RequestID)
		}
	})
}

func TestEngine_Concurrent(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil)
	_, _ = e.Initialize(context.Background(), threeTrackDataset())

	var wg sync.WaitGroup
	errs := make(chan error, 40)
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%10 == 0 {
				_, err := e.Initialize(context.Background(), threeTrackDataset())
				errs <- err
				return
			}
			_, err := e.Recommend(context.Background(), fill(float64(i%5+1)), i%4)
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Errorf("concurrent call failed: %v", err)
		}
	}
	if got := e.Status().Requests; got != 36 {
		t.Errorf("Requests = %d, want 36", got)
	}
}

func TestEngine_CachedResultsAreIsolated(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil)
	_, _ = e.Initialize(context.Background(), threeTrackDataset())
	ctx := context.Background()

	first, err := e.Recommend(ctx, fill(4), 2)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	want := first.Results[0].Track

	first.Results[0].Track = "changed"
	first.Ratings[0] = 0
	if len(first.Results[0].Drivers) > 0 {
		first.Results[0].Drivers[0].Value = -1
	}

	second, err := e.Recommend(ctx, fill(4), 2)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if !second.Metadata.CacheHit {
		t.Fatal("second identical call should hit the cache")
	}
	if second.Results[0].Track != want || second.Ratings[0] != 4 {
		t.Errorf("cached response was altered through the first: %+v", second.Results[0])
	}
	if len(second.Results[0].Drivers) > 0 && second.Results[0].Drivers[0].Value == -1 {
		t.Error("cached drivers share memory with an earlier response")
	}

	second.Normalized[0] = 42
	third, _ := e.Recommend(ctx, fill(4), 2)
	if third.Normalized[0] == 42 {
		t.Error("cache hits share memory with each other")
	}
}
