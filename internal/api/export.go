// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package api

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/tomtom215/trackmatch/internal/logging"
	"github.com/tomtom215/trackmatch/internal/recommend"
)

// Download file names.
const (
	recommendationsFilename = "recomendaciones_usuario.csv"
	profileFilename         = "perfil_usuario.csv"
)

// recommendationsHeader is the header row of the recommendations export.
// afinidad is the raw cosine score; explicacion_top3 joins driver labels.
var recommendationsHeader = []string{"rank", "carrera", "afinidad", "explicacion_top3"}

// wantsCSV reports whether the client asked for CSV via ?format=csv or
// an Accept header naming text/csv.
func wantsCSV(r *http.Request) bool {
	if format := r.URL.Query().Get("format"); format != "" {
		return strings.EqualFold(format, "csv")
	}
	return strings.Contains(r.Header.Get("Accept"), "text/csv")
}

// formatFloat renders a value with the fewest digits that round-trip.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// recommendationRows renders ranked results as CSV records, header first.
func recommendationRows(results []recommend.Result) [][]string {
	rows := make([][]string, 0, len(results)+1)
	rows = append(rows, recommendationsHeader)
	for _, res := range results {
		rows = append(rows, []string{
			strconv.Itoa(res.Rank),
			res.Track,
			formatFloat(res.Score),
			strings.Join(res.Explanation(), ", "),
		})
	}
	return rows
}

// profileRows renders a rating vector as a labelled header and one value row.
func profileRows(ratings recommend.Vector) [][]string {
	values := make([]string, len(ratings))
	for i, v := range ratings {
		values[i] = formatFloat(v)
	}
	return [][]string{recommend.Labels(), values}
}

// respondCSV writes rows as a UTF-8 CSV attachment.
func respondCSV(w http.ResponseWriter, r *http.Request, filename string, rows [][]string) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)

	cw := csv.NewWriter(w)
	if err := cw.WriteAll(rows); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Str("file", filename).Msg("Failed to write CSV response")
	}
}
