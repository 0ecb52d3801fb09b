// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package questionnaire

import (
	"errors"
	"testing"

	"github.com/tomtom215/trackmatch/internal/recommend"
	"github.com/tomtom215/trackmatch/internal/validation"
)

func TestBank(t *testing.T) {
	t.Parallel()

	items := Bank()
	if len(items) != 36 {
		t.Fatalf("len(Bank()) = %d, want 36", len(items))
	}

	seen := make(map[string]bool)
	for i, it := range items {
		if seen[it.Key] {
			t.Errorf("duplicate key %s", it.Key)
		}
		seen[it.Key] = true
		if it.Text == "" {
			t.Errorf("%s has no text", it.Key)
		}
		if want := recommend.Dimension(i / 3); it.Dimension != want {
			t.Errorf("items[%d].Dimension = %v, want %v", i, it.Dimension, want)
		}
		if _, _, ok := validation.ParseQuestionKey(it.Key); !ok {
			t.Errorf("key %s does not validate", it.Key)
		}
	}

	if items[0].Key != "Interes_1_q1" || items[35].Key != "Interes_12_q3" {
		t.Errorf("unexpected ordering: %s .. %s", items[0].Key, items[35].Key)
	}
}

func TestSections(t *testing.T) {
	t.Parallel()

	sections := Sections()
	if len(sections) != recommend.Dimensions {
		t.Fatalf("len(Sections()) = %d", len(sections))
	}
	s := sections[4]
	if s.Column != "Interes_5" || s.Label != recommend.Dimension(4).Label() || len(s.Items) != 3 {
		t.Errorf("sections[4] = %+v", s)
	}
}

func TestScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		answers map[string]int
		dim     recommend.Dimension
		want    float64
	}{
		{"unanswered is neutral", nil, 0, 3},
		{"all fives", map[string]int{"Interes_2_q1": 5, "Interes_2_q2": 5, "Interes_2_q3": 5}, 1, 5},
		{"rounds down", map[string]int{"Interes_3_q1": 1, "Interes_3_q2": 1, "Interes_3_q3": 2}, 2, 1},
		{"rounds up", map[string]int{"Interes_4_q1": 5, "Interes_4_q2": 5, "Interes_4_q3": 4}, 3, 5},
		{"partial answers", map[string]int{"Interes_12_q1": 5}, 11, 4},
		{"mixed", map[string]int{"Interes_6_q1": 1, "Interes_6_q2": 3, "Interes_6_q3": 5}, 5, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			v, err := Score(tt.answers)
			if err != nil {
				t.Fatalf("Score() error = %v", err)
			}
			if len(v) != recommend.Dimensions {
				t.Fatalf("len = %d", len(v))
			}
			if v[tt.dim] != tt.want {
				t.Errorf("v[%d] = %v, want %v", tt.dim, v[tt.dim], tt.want)
			}
		})
	}
}

func TestScore_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		answers map[string]int
	}{
		{"unknown key", map[string]int{"Interes_1_q9": 3}},
		{"answer out of range", map[string]int{"Interes_1_q1": 6}},
		{"zero answer", map[string]int{"Interes_1_q1": 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Score(tt.answers)
			var verr *validation.RequestValidationError
			if !errors.As(err, &verr) {
				t.Errorf("expected *validation.RequestValidationError, got %v", err)
			}
		})
	}
}

func TestDefaultVector(t *testing.T) {
	t.Parallel()

	v := DefaultVector()
	scored, _ := Score(nil)
	for i := range v {
		if v[i] != 3 || scored[i] != 3 {
			t.Fatalf("dimension %d: default %v, scored %v", i, v[i], scored[i])
		}
	}
}
