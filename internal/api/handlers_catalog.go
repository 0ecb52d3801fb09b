// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/trackmatch/internal/database"
	"github.com/tomtom215/trackmatch/internal/models"
	"github.com/tomtom215/trackmatch/internal/questionnaire"
	"github.com/tomtom215/trackmatch/internal/recommend"
)

// defaultTracksLimit matches the profile preview of the interactive tool.
const defaultTracksLimit = 10

// Dimensions lists the twelve interest dimensions in canonical order.
func (h *Handler) Dimensions(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, models.Dimensions(), time.Now(), false)
}

// Questionnaire returns the question bank grouped by dimension.
func (h *Handler) Questionnaire(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, models.QuestionnaireResponse{
		Scale:    models.DefaultRatingScale(),
		Sections: questionnaire.Sections(),
	}, time.Now(), false)
}

// Tracks lists track reference profiles in tie-break order.
// ?limit=N bounds the list (default 10); limit<=0 returns every track.
func (h *Handler) Tracks(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	model := h.engine.Model()
	if model == nil {
		respondError(w, r, http.StatusServiceUnavailable, models.CodeServiceUnavailable,
			"Recommendation model is not initialized", recommend.ErrNotInitialized)
		return
	}

	limit := getIntParam(r, "limit", defaultTracksLimit)
	respondSuccess(w, r, models.NewTracksResponse(model.Profiles, limit), start, false)
}

// DatasetSample previews raw dataset rows chosen by seeded reservoir
// sampling. ?n and ?seed default to the configured sample size and seed.
func (h *Handler) DatasetSample(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if h.store == nil {
		respondError(w, r, http.StatusServiceUnavailable, models.CodeServiceUnavailable, "Dataset store is not available", nil)
		return
	}

	n := getIntParam(r, "n", h.config.Dataset.SampleSize)
	seed := getInt64Param(r, "seed", h.config.Dataset.SampleSeed)
	if seed < 0 {
		seed = database.DefaultSampleSeed
	}

	rows, err := h.store.Sample(r.Context(), n, seed)
	if err != nil {
		respondDatasetError(w, r, err)
		return
	}
	total, err := h.store.Count(r.Context())
	if err != nil {
		respondDatasetError(w, r, err)
		return
	}

	records := make([]models.SampleRecord, len(rows))
	for i, row := range rows {
		records[i] = models.SampleRecord{Row: row.Row, Track: row.Track, Ratings: row.Ratings}
	}

	respondSuccess(w, r, models.DatasetSampleResponse{
		Source:  h.store.Source(),
		Total:   total,
		Seed:    seed,
		Columns: recommend.RequiredColumns(),
		Rows:    records,
	}, start, false)
}

func respondDatasetError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, database.ErrNoDataset) {
		respondError(w, r, http.StatusServiceUnavailable, models.CodeServiceUnavailable, "No dataset is loaded", err)
		return
	}
	respondError(w, r, http.StatusInternalServerError, models.CodeDatabase, "Failed to read dataset", err)
}
