// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package recommend

import (
	"reflect"
	"testing"
)

func TestContributions(t *testing.T) {
	t.Parallel()

	c, err := Contributions(ratings(0, 1, 0.5), ratings(0, 0.5, 0.5))
	if err != nil {
		t.Fatalf("Contributions() error = %v", err)
	}
	if len(c) != Dimensions {
		t.Fatalf("len = %d", len(c))
	}
	if c[0].Value != 0.5 || c[1].Value != 0.25 || c[2].Value != 0 {
		t.Errorf("unexpected values: %v", c[:3])
	}
	for d, item := range c {
		if int(item.Dimension) != d {
			t.Errorf("c[%d].Dimension = %d", d, item.Dimension)
		}
	}

	if _, err := Contributions(Vector{1}, fill(1)); !IsValidationError(err) {
		t.Errorf("expected ValidationError, got %v", err)
	}
}

func TestTopContributions(t *testing.T) {
	t.Parallel()

	c, _ := Contributions(ratings(0, 0.1, 0.9, 0.4, 0.9), fill(1))

	top := TopContributions(c, 3)
	got := []Dimension{top[0].Dimension, top[1].Dimension, top[2].Dimension}
	// Dimensions 1 and 3 tie; canonical order puts 1 first
	want := []Dimension{1, 3, 2}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("top dims = %v, want %v", got, want)
	}

	if len(TopContributions(c, 0)) != 0 {
		t.Error("k=0 should return nothing")
	}
	if len(TopContributions(c, -1)) != 0 {
		t.Error("negative k should return nothing")
	}
	if len(TopContributions(c, 50)) != Dimensions {
		t.Error("k above length should return all")
	}
	if c[0].Value != 0.1 {
		t.Error("TopContributions must not reorder its input")
	}
}

func TestTopContributions_AllEqual(t *testing.T) {
	t.Parallel()

	c, _ := Contributions(fill(1), fill(1))
	labels := ContributionLabels(TopContributions(c, 3))
	want := []string{"Matemáticas / Cálculo", "Física / Experimentación", "Biología / Salud"}
	if !reflect.DeepEqual(labels, want) {
		t.Errorf("labels = %v, want %v", labels, want)
	}
}

func TestRank_DriversForSlope(t *testing.T) {
	t.Parallel()

	m, _ := Initialize(threeTrackDataset())
	user, _ := m.Transform.Apply(fill(5))
	results, _ := Rank(user, m.Profiles, 3)

	var slope Result
	for _, r := range results {
		if r.Track == "Slope" {
			slope = r
		}
	}
	want := []string{"Matemáticas / Cálculo", "Física / Experimentación", "Biología / Salud"}
	if got := slope.Explanation(); !reflect.DeepEqual(got, want) {
		t.Errorf("Slope explanation = %v, want %v", got, want)
	}
	if len(slope.Drivers) != DefaultExplanationSize {
		t.Errorf("drivers = %d, want %d", len(slope.Drivers), DefaultExplanationSize)
	}
}
