// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
)

// histogramSamples reads the observation count and sum of a histogram.
func histogramSamples(t *testing.T, h prometheus.Histogram) (uint64, float64) {
	t.Helper()
	var m dto.Metric
	if err := h.Write(&m); err != nil {
		t.Fatalf("write histogram: %v", err)
	}
	return m.GetHistogram().GetSampleCount(), m.GetHistogram().GetSampleSum()
}

// TestRecordDBQuery tests database query metric recording
func TestRecordDBQuery(t *testing.T) {
	tests := []struct {
		name      string
		operation string
		table     string
		err       error
	}{
		{name: "successful CREATE", operation: "CREATE", table: "history"},
		{name: "successful SELECT", operation: "SELECT", table: "history"},
		{name: "failed query", operation: "SELECT", table: "history", err: errors.New("io error")},
		{
			name:      "long error is truncated",
			operation: "DESCRIBE",
			table:     "history",
			err:       errors.New("this is a very long error message that exceeds fifty characters and should be truncated"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			RecordDBQuery(tt.operation, tt.table, time.Millisecond, tt.err)
		})
	}

	if got := testutil.CollectAndCount(DBQueryErrors); got < 2 {
		t.Errorf("expected at least 2 error series, got %d", got)
	}
}

func TestRecordDatasetLoad(t *testing.T) {
	beforeRejected := testutil.ToFloat64(DatasetRowsRejected)

	RecordDatasetLoad(10*time.Millisecond, 120, 2, "", nil)

	if got := testutil.ToFloat64(DatasetRecords); got != 120 {
		t.Errorf("dataset_records = %f, want 120", got)
	}
	if got := testutil.ToFloat64(DatasetRowsRejected) - beforeRejected; got != 2 {
		t.Errorf("rejected delta = %f, want 2", got)
	}

	beforeSchema := testutil.ToFloat64(DatasetLoadErrors.WithLabelValues("schema"))
	RecordDatasetLoad(time.Millisecond, 0, 0, "schema", errors.New("missing columns"))
	if got := testutil.ToFloat64(DatasetLoadErrors.WithLabelValues("schema")) - beforeSchema; got != 1 {
		t.Errorf("schema error delta = %f, want 1", got)
	}
	// A failed load leaves the gauge untouched
	if got := testutil.ToFloat64(DatasetRecords); got != 120 {
		t.Errorf("dataset_records after failure = %f, want 120", got)
	}
}

func TestRecordModelInit(t *testing.T) {
	beforeOK := testutil.ToFloat64(ModelInitializations.WithLabelValues(OutcomeSuccess))
	beforeErr := testutil.ToFloat64(ModelInitializations.WithLabelValues(OutcomeError))

	RecordModelInit(300, 8, 1, nil)
	RecordModelInit(0, 0, 0, errors.New("boom"))

	if got := testutil.ToFloat64(ModelInitializations.WithLabelValues(OutcomeSuccess)) - beforeOK; got != 1 {
		t.Errorf("success delta = %f, want 1", got)
	}
	if got := testutil.ToFloat64(ModelInitializations.WithLabelValues(OutcomeError)) - beforeErr; got != 1 {
		t.Errorf("error delta = %f, want 1", got)
	}
	if got := testutil.ToFloat64(ModelTracks); got != 8 {
		t.Errorf("tracks = %f, want 8", got)
	}
	if got := testutil.ToFloat64(ModelRecords); got != 300 {
		t.Errorf("records = %f, want 300", got)
	}
	if got := testutil.ToFloat64(ModelDegenerateDimensions); got != 1 {
		t.Errorf("degenerate = %f, want 1", got)
	}
}

func TestRecordRecommendation(t *testing.T) {
	outcomes := []string{OutcomeSuccess, OutcomeValidation, OutcomeNotInitialized, OutcomeError}
	for _, outcome := range outcomes {
		t.Run(outcome, func(t *testing.T) {
			before := testutil.ToFloat64(RecommendRequests.WithLabelValues(outcome))
			RecordRecommendation(time.Millisecond, outcome)
			if got := testutil.ToFloat64(RecommendRequests.WithLabelValues(outcome)) - before; got != 1 {
				t.Errorf("delta = %f, want 1", got)
			}
		})
	}
}

func TestRecordZeroNormFallbacks(t *testing.T) {
	before := testutil.ToFloat64(RecommendZeroNormFallbacks)
	RecordZeroNormFallbacks(0)
	RecordZeroNormFallbacks(3)
	if got := testutil.ToFloat64(RecommendZeroNormFallbacks) - before; got != 3 {
		t.Errorf("delta = %f, want 3", got)
	}
}

func TestRecordRecommendCache(t *testing.T) {
	hits := testutil.ToFloat64(RecommendCacheHits)
	misses := testutil.ToFloat64(RecommendCacheMisses)

	RecordRecommendCache(true)
	RecordRecommendCache(false)
	RecordRecommendCache(false)

	if got := testutil.ToFloat64(RecommendCacheHits) - hits; got != 1 {
		t.Errorf("hits delta = %f, want 1", got)
	}
	if got := testutil.ToFloat64(RecommendCacheMisses) - misses; got != 2 {
		t.Errorf("misses delta = %f, want 2", got)
	}
}

func TestRecordAPIRequest(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		endpoint   string
		statusCode string
	}{
		{name: "successful recommendation", method: "POST", endpoint: "/api/v1/recommendations", statusCode: "200"},
		{name: "validation failure", method: "POST", endpoint: "/api/v1/recommendations", statusCode: "400"},
		{name: "dimensions", method: "GET", endpoint: "/api/v1/dimensions", statusCode: "200"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues(tt.method, tt.endpoint, tt.statusCode))
			RecordAPIRequest(tt.method, tt.endpoint, tt.statusCode, 5*time.Millisecond)
			after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues(tt.method, tt.endpoint, tt.statusCode))
			if after-before != 1 {
				t.Errorf("delta = %f, want 1", after-before)
			}
		})
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	TrackActiveRequest(true)
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests) - before; got != 1 {
		t.Errorf("delta = %f, want 1", got)
	}
	TrackActiveRequest(false)
}

func TestRecordRateLimitHit(t *testing.T) {
	before := testutil.ToFloat64(APIRateLimitHits.WithLabelValues("/api/v1/recommendations"))
	RecordRateLimitHit("/api/v1/recommendations")
	if got := testutil.ToFloat64(APIRateLimitHits.WithLabelValues("/api/v1/recommendations")) - before; got != 1 {
		t.Errorf("delta = %f, want 1", got)
	}
}

// TestMetricGathering tests that metrics can be gathered using testutil
func TestMetricGathering(t *testing.T) {
	RecordDBQuery("TEST", "test_table", time.Millisecond, nil)
	RecordAPIRequest("GET", "/test", "200", time.Millisecond)

	problems, err := testutil.GatherAndLint(prometheus.DefaultGatherer)
	if err != nil {
		t.Logf("Lint errors (may be expected): %v", err)
	}
	for _, p := range problems {
		t.Logf("Metric lint problem: %s", p.Text)
	}
}

func TestDurationHistograms(t *testing.T) {
	tests := []struct {
		name    string
		hist    prometheus.Histogram
		observe func()
		seconds float64
	}{
		{
			name:    "recommendation",
			hist:    RecommendDuration,
			observe: func() { RecordRecommendation(250*time.Millisecond, OutcomeSuccess) },
			seconds: 0.25,
		},
		{
			name:    "dataset load",
			hist:    DatasetLoadDuration,
			observe: func() { RecordDatasetLoad(2*time.Second, 10, 0, "", nil) },
			seconds: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			count, sum := histogramSamples(t, tt.hist)
			tt.observe()
			gotCount, gotSum := histogramSamples(t, tt.hist)

			if gotCount-count != 1 {
				t.Errorf("sample count delta = %d, want 1", gotCount-count)
			}
			if diff := gotSum - sum - tt.seconds; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("sample sum delta = %f, want %f", gotSum-sum, tt.seconds)
			}
		})
	}
}
