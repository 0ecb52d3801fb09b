// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package recommend

import (
	"math"
	"sort"
)

// Result is one ranked track.
type Result struct {
	// Rank is the 1-based position in the ranking.
	Rank int `json:"rank"`

	// Track is the track label.
	Track string `json:"track"`

	// Score is the cosine similarity between the user vector and the track profile.
	Score float64 `json:"score"`

	// Drivers are the dimensions contributing most to the match, descending.
	Drivers []Contribution `json:"drivers"`
}

// Affinity returns the score as a percentage.
func (r Result) Affinity() float64 {
	return r.Score * 100
}

// Explanation returns the display labels of the result's drivers.
func (r Result) Explanation() []string {
	return ContributionLabels(r.Drivers)
}

// Cosine returns the cosine similarity of a and b, clamped to [-1, 1].
// The second return value is false when the vectors differ in length or
// either has zero norm, in which case the similarity is 0.
func Cosine(a, b Vector) (float64, bool) {
	if len(a) != len(b) {
		return 0, false
	}

	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0, false
	}

	s := dot / (math.Sqrt(na) * math.Sqrt(nb))
	return math.Max(-1, math.Min(1, s)), true
}

// ClampTopN clamps n into [1, available]. available must be positive.
func ClampTopN(n, available int) int {
	if n < 1 {
		n = 1
	}
	if n > available {
		n = available
	}
	return n
}

// Rank scores every profile against user, orders them by descending score
// and returns the first topN with their top three drivers. Equal scores keep
// profile order. topN is clamped to [1, profiles.Len()].
func Rank(user Vector, profiles Profiles, topN int) ([]Result, error) {
	results, _, err := rank(user, profiles, topN, DefaultExplanationSize)
	return results, err
}

// rank is Rank with a configurable explanation size. It also returns the
// zero-norm fallbacks applied while scoring.
func rank(user Vector, profiles Profiles, topN, explain int) ([]Result, []*DegenerateInputError, error) {
	if profiles.Len() == 0 {
		return nil, nil, newValidationError("profiles", "no reference profiles")
	}
	if len(user) != Dimensions {
		return nil, nil, newValidationError("vector", "expected %d values, got %d", Dimensions, len(user))
	}

	type scored struct {
		index int
		score float64
	}

	var fallbacks []*DegenerateInputError
	scores := make([]scored, profiles.Len())
	for i, p := range profiles.items {
		s, ok := Cosine(user, p.Vector)
		if !ok {
			fallbacks = append(fallbacks, &DegenerateInputError{Kind: DegenerateNorm, Dimension: -1, Track: p.Track})
		}
		scores[i] = scored{index: i, score: s}
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].score > scores[j].score
	})

	n := ClampTopN(topN, len(scores))
	results := make([]Result, n)
	for r := 0; r < n; r++ {
		p := profiles.items[scores[r].index]
		// Lengths were checked above
		contribs, _ := Contributions(user, p.Vector) //nolint:errcheck
		results[r] = Result{
			Rank:    r + 1,
			Track:   p.Track,
			Score:   scores[r].score,
			Drivers: TopContributions(contribs, explain),
		}
	}
	return results, fallbacks, nil
}
