// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/trackmatch/internal/middleware"
	"github.com/tomtom215/trackmatch/internal/models"
	"github.com/tomtom215/trackmatch/internal/questionnaire"
	"github.com/tomtom215/trackmatch/internal/recommend"
)

// Recommendations ranks tracks for twelve direct ratings.
//
// Ratings may be numbers, numeric strings or null. Out-of-range values are
// clamped to 1..5 and unusable values become 3. Append ?format=csv for the
// recommendations CSV download.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.RecommendRequest
	if apiErr := decodeJSON(w, r, &req); apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}

	ratings, err := recommend.CoerceVector(req.Ratings)
	if err != nil {
		respondRecommendError(w, r, err)
		return
	}

	h.recommend(w, r, ratings, req.TopN, start)
}

// QuestionnaireRecommendations scores questionnaire answers into ratings
// and ranks tracks for them. Unanswered items count as 3.
func (h *Handler) QuestionnaireRecommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.QuestionnaireRequest
	if apiErr := decodeJSON(w, r, &req); apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}

	ratings, err := questionnaire.Score(req.Answers)
	if err != nil {
		respondRecommendError(w, r, err)
		return
	}

	h.recommend(w, r, ratings, req.TopN, start)
}

func (h *Handler) recommend(w http.ResponseWriter, r *http.Request, ratings recommend.Vector, topN *int, start time.Time) {
	rec, err := h.engine.RecommendRequest(r.Context(), recommend.Request{
		Ratings:   ratings,
		TopN:      requestedTopN(topN),
		RequestID: middleware.GetRequestID(r.Context()),
	})
	if err != nil {
		respondRecommendError(w, r, err)
		return
	}

	if wantsCSV(r) {
		respondCSV(w, r, recommendationsFilename, recommendationRows(rec.Results))
		return
	}

	respondSuccess(w, r, models.NewRecommendationResponse(rec), start, rec.Metadata.CacheHit)
}

// ProfileExport downloads the user's twelve ratings as a one-row CSV with
// the dimension labels as header. Ratings win over answers; with neither
// the neutral profile is exported.
func (h *Handler) ProfileExport(w http.ResponseWriter, r *http.Request) {
	var req models.ProfileExportRequest
	if apiErr := decodeJSON(w, r, &req); apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}

	var (
		ratings recommend.Vector
		err     error
	)
	switch {
	case req.Ratings != nil:
		ratings, err = recommend.CoerceVector(req.Ratings)
	case req.Answers != nil:
		ratings, err = questionnaire.Score(req.Answers)
	default:
		ratings = questionnaire.DefaultVector()
	}
	if err != nil {
		respondRecommendError(w, r, err)
		return
	}

	respondCSV(w, r, profileFilename, profileRows(ratings))
}
