// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Package database stages the historical dataset in DuckDB and serves it to
// the recommender.
//
// # Overview
//
// LoadCSV reads the CSV with read_csv_auto in all-varchar mode, checks the
// header against the required interest and track columns and converts each
// row into a recommend.Record. Numeric coercion happens in Go so that
// missing, blank and non-numeric cells all become the neutral rating of 3.
//
// Each CSV is first read into a staging table. It only replaces the current
// dataset table on commit, in a single transaction, so a file that fails
// the header check or is rejected further up never disturbs the dataset
// being served. LoadCSV stages and commits in one call; the model service
// stages, fits a model, and commits only when the fit succeeds.
//
// The committed table also backs the data preview: Sample draws a seeded
// reservoir sample and Count reports its row count.
//
// # Files
//
//   - database.go: connection lifecycle (New, Ping, Close)
//   - database_connection.go: pool settings and SQL quoting helpers
//   - dataset.go: LoadCSV, StageCSV, CommitStaged, DiscardStaged, Sample, Count
//   - errors.go: sentinel errors and close helpers
//
// # Thread Safety
//
// Staging is serialized and never blocks readers. Only the commit takes an
// exclusive lock on the dataset table; Sample and Count take shared locks
// and may run concurrently.
//
// # Usage
//
//	db, err := database.New(&cfg.Database)
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	dataset, err := db.LoadCSV(ctx, cfg.Dataset.Path)
//	if err != nil {
//	    return err // *recommend.SchemaError or ErrDatasetNotFound
//	}
package database
