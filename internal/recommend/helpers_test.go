// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package recommend

import "math"

const epsilon = 1e-9

// fill returns a vector with every dimension set to v.
func fill(v float64) []float64 {
	out := make([]float64, Dimensions)
	for i := range out {
		out[i] = v
	}
	return out
}

// ratings returns a vector starting with head and padded with pad.
func ratings(pad float64, head ...float64) []float64 {
	out := fill(pad)
	copy(out, head)
	return out
}

func record(track string, r []float64) Record {
	return Record{Track: track, Ratings: r}
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

// twoTrackDataset has track A at the bottom of the scale and B at the top.
func twoTrackDataset() Dataset {
	return Dataset{Records: []Record{
		record("A", fill(1)),
		record("B", fill(5)),
	}}
}

// threeTrackDataset has three tracks with distinct profiles:
// Full at 5, Slope descending from 5 to 1, Floor at 1.
func threeTrackDataset() Dataset {
	return Dataset{Records: []Record{
		record("Slope", ratings(1, 5, 4, 3, 2)),
		record("Floor", fill(1)),
		record("Full", fill(5)),
	}}
}
