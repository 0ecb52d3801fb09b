// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package recommend

import (
	"fmt"
	"sort"
)

// TrackGroup holds the normalized vectors of every record sharing a track label.
type TrackGroup struct {
	Track   string
	Vectors []Vector
}

// Profile is the reference profile of one track: the mean of its members'
// normalized vectors.
type Profile struct {
	// Track is the track label.
	Track string `json:"track"`

	// Vector is the mean normalized vector in canonical dimension order.
	Vector Vector `json:"vector"`

	// Count is the number of records averaged into Vector.
	Count int `json:"count"`
}

// Profiles is an ordered, read-only set of track reference profiles.
// The order is the tie-break order used when ranking.
type Profiles struct {
	items []Profile
	index map[string]int
}

// NewProfiles builds a Profiles set from items, preserving their order.
func NewProfiles(items []Profile) (Profiles, error) {
	p := Profiles{
		items: make([]Profile, 0, len(items)),
		index: make(map[string]int, len(items)),
	}
	for i, item := range items {
		if len(item.Vector) != Dimensions {
			return Profiles{}, newValidationError(fmt.Sprintf("profiles[%d]", i),
				"expected %d values, got %d", Dimensions, len(item.Vector))
		}
		if _, dup := p.index[item.Track]; dup {
			return Profiles{}, newValidationError(fmt.Sprintf("profiles[%d]", i),
				"duplicate track %q", item.Track)
		}
		p.index[item.Track] = len(p.items)
		p.items = append(p.items, Profile{Track: item.Track, Vector: item.Vector.Clone(), Count: item.Count})
	}
	return p, nil
}

// Len returns the number of profiles.
func (p Profiles) Len() int {
	return len(p.items)
}

// At returns a copy of the i-th profile.
func (p Profiles) At(i int) Profile {
	item := p.items[i]
	item.Vector = item.Vector.Clone()
	return item
}

// Lookup returns a copy of the profile for track.
func (p Profiles) Lookup(track string) (Profile, bool) {
	i, ok := p.index[track]
	if !ok {
		return Profile{}, false
	}
	return p.At(i), true
}

// Tracks returns the track labels in profile order.
func (p Profiles) Tracks() []string {
	tracks := make([]string, len(p.items))
	for i, item := range p.items {
		tracks[i] = item.Track
	}
	return tracks
}

// All returns copies of every profile in order.
func (p Profiles) All() []Profile {
	out := make([]Profile, len(p.items))
	for i := range p.items {
		out[i] = p.At(i)
	}
	return out
}

// GroupByTrack groups normalized records by track label. Groups are ordered
// by ascending label so the result does not depend on record order.
func GroupByTrack(records []NormalizedRecord) []TrackGroup {
	index := make(map[string]int)
	var groups []TrackGroup
	for _, r := range records {
		i, ok := index[r.Track]
		if !ok {
			i = len(groups)
			index[r.Track] = i
			groups = append(groups, TrackGroup{Track: r.Track})
		}
		groups[i].Vectors = append(groups[i].Vectors, r.Vector)
	}

	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Track < groups[j].Track
	})
	return groups
}

// Aggregate computes the mean vector of every group, keeping group order.
//
// A group with no usable vectors is omitted from the result and reported as
// a *ValidationError in the returned warnings; the remaining profiles are
// still returned.
func Aggregate(groups []TrackGroup) (Profiles, []error) {
	var warnings []error
	items := make([]Profile, 0, len(groups))
	seen := make(map[string]struct{}, len(groups))

	for _, g := range groups {
		if _, dup := seen[g.Track]; dup {
			warnings = append(warnings, newValidationError("track:"+g.Track, "duplicate group ignored"))
			continue
		}

		sum := make(Vector, Dimensions)
		count := 0
		for _, v := range g.Vectors {
			if len(v) != Dimensions {
				warnings = append(warnings, newValidationError("track:"+g.Track,
					"vector with %d values ignored", len(v)))
				continue
			}
			for d, x := range v {
				sum[d] += x
			}
			count++
		}

		if count == 0 {
			warnings = append(warnings, newValidationError("track:"+g.Track, "no records, profile omitted"))
			continue
		}

		for d := range sum {
			sum[d] /= float64(count)
		}
		seen[g.Track] = struct{}{}
		items = append(items, Profile{Track: g.Track, Vector: sum, Count: count})
	}

	// items are already validated, so NewProfiles cannot fail here
	profiles, err := NewProfiles(items)
	if err != nil {
		warnings = append(warnings, err)
	}
	return profiles, warnings
}
