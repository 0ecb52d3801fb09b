// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package recommend

import (
	"errors"
	"reflect"
	"testing"
)

func TestDimension_ColumnAndLabel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		dim    Dimension
		column string
		label  string
	}{
		{0, "Interes_1", "Matemáticas / Cálculo"},
		{4, "Interes_5", "Programación / Computación"},
		{11, "Interes_12", "Arte / Expresión"},
	}

	for _, tt := range tests {
		t.Run(tt.column, func(t *testing.T) {
			t.Parallel()
			if got := tt.dim.Column(); got != tt.column {
				t.Errorf("Column() = %q, want %q", got, tt.column)
			}
			if got := tt.dim.Label(); got != tt.label {
				t.Errorf("Label() = %q, want %q", got, tt.label)
			}
		})
	}
}

func TestDimension_Valid(t *testing.T) {
	t.Parallel()

	if Dimension(-1).Valid() || Dimension(Dimensions).Valid() {
		t.Error("out-of-range dimensions must be invalid")
	}
	if got := Dimension(12).Label(); got != "unknown(12)" {
		t.Errorf("Label() of invalid dimension = %q", got)
	}
}

func TestAllDimensionsAndLabels(t *testing.T) {
	t.Parallel()

	dims := AllDimensions()
	labels := Labels()
	if len(dims) != Dimensions || len(labels) != Dimensions {
		t.Fatalf("expected %d dimensions and labels, got %d and %d", Dimensions, len(dims), len(labels))
	}
	seen := make(map[string]bool)
	for i, d := range dims {
		if int(d) != i {
			t.Errorf("dims[%d] = %d", i, d)
		}
		if labels[i] != d.Label() {
			t.Errorf("labels[%d] = %q, want %q", i, labels[i], d.Label())
		}
		if seen[labels[i]] {
			t.Errorf("duplicate label %q", labels[i])
		}
		seen[labels[i]] = true
	}

	// Labels returns a copy
	labels[0] = "changed"
	if Dimension(0).Label() == "changed" {
		t.Error("Labels() must not expose internal state")
	}
}

func TestDimensionByColumn(t *testing.T) {
	t.Parallel()

	d, ok := DimensionByColumn("Interes_7")
	if !ok || d != 6 {
		t.Errorf("DimensionByColumn(Interes_7) = %d, %v", d, ok)
	}
	if _, ok := DimensionByColumn("Interes_13"); ok {
		t.Error("Interes_13 should not resolve")
	}
}

func TestRequiredColumns(t *testing.T) {
	t.Parallel()

	cols := RequiredColumns()
	if len(cols) != Dimensions+1 {
		t.Fatalf("expected %d columns, got %d", Dimensions+1, len(cols))
	}
	if cols[0] != "Interes_1" || cols[11] != "Interes_12" || cols[12] != TrackColumn {
		t.Errorf("unexpected column order: %v", cols)
	}
}

func TestCheckSchema(t *testing.T) {
	t.Parallel()

	full := append([]string{"id"}, RequiredColumns()...)
	if err := CheckSchema(full); err != nil {
		t.Errorf("CheckSchema(full) = %v", err)
	}

	partial := []string{"Interes_1", "Interes_2", "Interes_4", "Interes_5", "Interes_6", "Interes_7",
		"Interes_8", "Interes_9", "Interes_10", "Interes_11", "Interes_12"}
	err := CheckSchema(partial)

	var se *SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("expected *SchemaError, got %v", err)
	}
	want := []string{"Interes_3", TrackColumn}
	if !reflect.DeepEqual(se.Missing, want) {
		t.Errorf("Missing = %v, want %v", se.Missing, want)
	}
	if se.Error() != "dataset is missing required columns: Interes_3, Carrera_Asignada" {
		t.Errorf("unexpected message: %s", se.Error())
	}
	if !IsSchemaError(err) {
		t.Error("IsSchemaError() = false")
	}
}
