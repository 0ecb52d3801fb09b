// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

/*
Package models defines the request and response bodies of the HTTP API.

Every JSON endpoint wraps its payload in APIResponse. Request types carry
validator tags and are checked with the validation package before any
domain call. Response types label vectors with dimension columns and
display labels so clients never depend on positional order.

Model Categories:

 1. Envelope: APIResponse, Metadata, APIError
 2. Requests: RecommendRequest, QuestionnaireRequest, ProfileExportRequest
 3. Recommendations: RecommendationResponse, TrackMatch, DimensionValue
 4. Catalog: DimensionInfo, QuestionnaireResponse, TracksResponse,
    DatasetSampleResponse, HealthResponse
*/
package models
