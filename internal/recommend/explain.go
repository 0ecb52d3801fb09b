// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package recommend

import "sort"

// Default explanation sizes.
const (
	DefaultExplanationSize = 3
	DefaultBreakdownSize   = 6
)

// Contribution is one dimension's term of the dot product between a user
// vector and a track profile.
//
// Contributions are a heuristic for "which shared strengths drove this
// match". They are not an attribution of the cosine score: the score also
// depends on both vector norms, which the product ignores.
type Contribution struct {
	Dimension Dimension `json:"dimension"`
	Value     float64   `json:"value"`
}

// Label returns the display label of the contributing dimension.
func (c Contribution) Label() string {
	return c.Dimension.Label()
}

// Contributions returns the elementwise product of user and profile in
// canonical dimension order.
func Contributions(user, profile Vector) ([]Contribution, error) {
	if len(user) != Dimensions || len(profile) != Dimensions {
		return nil, newValidationError("vector", "expected %d values, got %d and %d",
			Dimensions, len(user), len(profile))
	}
	out := make([]Contribution, Dimensions)
	for d := range out {
		out[d] = Contribution{Dimension: Dimension(d), Value: user[d] * profile[d]}
	}
	return out, nil
}

// TopContributions returns the k largest contributions, descending. Equal
// values keep canonical dimension order. k is clamped to [0, len(c)].
func TopContributions(c []Contribution, k int) []Contribution {
	sorted := make([]Contribution, len(c))
	copy(sorted, c)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Value != sorted[j].Value {
			return sorted[i].Value > sorted[j].Value
		}
		return sorted[i].Dimension < sorted[j].Dimension
	})

	if k < 0 {
		k = 0
	}
	if k > len(sorted) {
		k = len(sorted)
	}
	return sorted[:k]
}

// ContributionLabels returns the display labels of c in order.
func ContributionLabels(c []Contribution) []string {
	labels := make([]string, len(c))
	for i, item := range c {
		labels[i] = item.Label()
	}
	return labels
}
