// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package recommend

import "fmt"

// Dimensions is the number of interest dimensions in every vector.
const Dimensions = 12

// Rating scale bounds. Missing or non-numeric ratings take RatingDefault.
const (
	RatingMin     = 1.0
	RatingMax     = 5.0
	RatingDefault = 3.0
)

// TrackColumn is the dataset column holding the assigned track label.
const TrackColumn = "Carrera_Asignada"

// Dimension identifies an interest dimension by its position in the
// canonical order. Positions never change.
type Dimension int

var dimensionLabels = [Dimensions]string{
	"Matemáticas / Cálculo",
	"Física / Experimentación",
	"Biología / Salud",
	"Química / Laboratorio",
	"Programación / Computación",
	"Diseño / Creatividad",
	"Comunicación / Redacción",
	"Idiomas / Humanidades",
	"Economía / Negocios",
	"Derecho / Normativa",
	"Psicología / Social",
	"Arte / Expresión",
}

// Valid reports whether d is a known dimension.
func (d Dimension) Valid() bool {
	return d >= 0 && d < Dimensions
}

// Column returns the dataset column name, Interes_1 through Interes_12.
func (d Dimension) Column() string {
	return fmt.Sprintf("Interes_%d", int(d)+1)
}

// Label returns the display label.
func (d Dimension) Label() string {
	if !d.Valid() {
		return fmt.Sprintf("unknown(%d)", int(d))
	}
	return dimensionLabels[d]
}

// String implements fmt.Stringer.
func (d Dimension) String() string {
	return d.Column()
}

// AllDimensions returns every dimension in canonical order.
func AllDimensions() []Dimension {
	dims := make([]Dimension, Dimensions)
	for i := range dims {
		dims[i] = Dimension(i)
	}
	return dims
}

// Labels returns the display labels in canonical order.
func Labels() []string {
	labels := make([]string, Dimensions)
	copy(labels, dimensionLabels[:])
	return labels
}

// DimensionByColumn resolves a dataset column name to its dimension.
func DimensionByColumn(name string) (Dimension, bool) {
	for _, d := range AllDimensions() {
		if d.Column() == name {
			return d, true
		}
	}
	return -1, false
}

// RequiredColumns returns the interest columns in canonical order followed
// by the track column.
func RequiredColumns() []string {
	cols := make([]string, 0, Dimensions+1)
	for _, d := range AllDimensions() {
		cols = append(cols, d.Column())
	}
	return append(cols, TrackColumn)
}

// MissingColumns returns the required columns absent from header, in
// required order.
func MissingColumns(header []string) []string {
	present := make(map[string]struct{}, len(header))
	for _, h := range header {
		present[h] = struct{}{}
	}

	var missing []string
	for _, col := range RequiredColumns() {
		if _, ok := present[col]; !ok {
			missing = append(missing, col)
		}
	}
	return missing
}

// CheckSchema returns a *SchemaError when header lacks required columns.
func CheckSchema(header []string) error {
	if missing := MissingColumns(header); len(missing) > 0 {
		return &SchemaError{Missing: missing}
	}
	return nil
}
