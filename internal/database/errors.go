// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package database

import (
	"errors"
	"io"

	"github.com/tomtom215/trackmatch/internal/logging"
)

var (
	// ErrDatasetNotFound is returned when the dataset file does not exist.
	ErrDatasetNotFound = errors.New("dataset file not found")

	// ErrNoDataset is returned by queries issued before a dataset is loaded.
	ErrNoDataset = errors.New("no dataset loaded")

	// ErrNothingStaged is returned by CommitStaged without a prior StageCSV.
	ErrNothingStaged = errors.New("no dataset staged")
)

// Error types reported on the dataset load error counter.
const (
	loadErrorNotFound = "not_found"
	loadErrorSchema   = "schema"
	loadErrorRead     = "read"
	loadErrorQuery    = "query"
	loadErrorCommit   = "commit"
)

// closeWithLog closes a resource and logs any error
func closeWithLog(closer io.Closer, resourceType string) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logging.Warn().Str("type", resourceType).Err(err).Msg("Failed to close resource")
	}
}

// closeQuietly closes a resource and explicitly ignores any error
// Use this for cleanup operations in error paths where Close() errors are not actionable
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close()
	}
}
