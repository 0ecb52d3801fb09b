// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/tomtom215/trackmatch/internal/logging"
	"github.com/tomtom215/trackmatch/internal/metrics"
	"github.com/tomtom215/trackmatch/internal/recommend"
)

// Sample defaults match the data preview of the interactive tool.
const (
	DefaultSampleSize = 10
	DefaultSampleSeed = 42
	maxSampleSize     = 1000
)

// SampleRow is one dataset row prepared for preview. Row is the 1-based
// position in the source file.
type SampleRow struct {
	Row     int64            `json:"row"`
	Track   string           `json:"track"`
	Ratings recommend.Vector `json:"ratings"`
}

// LoadCSV reads the CSV at path and makes it the current dataset.
//
// Every cell is read as text. The header must contain Interes_1..Interes_12
// and Carrera_Asignada, otherwise a *recommend.SchemaError is returned.
// Ratings are coerced with recommend.CoerceRating. Rows with an empty track
// label are skipped and counted in Dataset.Rejected. On any error the
// previously loaded dataset is left untouched.
func (db *DB) LoadCSV(ctx context.Context, path string) (recommend.Dataset, error) {
	db.stageMu.Lock()
	defer db.stageMu.Unlock()

	dataset, err := db.stage(ctx, path)
	if err != nil {
		return recommend.Dataset{}, err
	}
	if err := db.commit(ctx); err != nil {
		return recommend.Dataset{}, err
	}
	return dataset, nil
}

// StageCSV reads and checks the CSV at path like LoadCSV, but keeps it in
// a staging table. Queries keep answering from the current dataset until
// CommitStaged; DiscardStaged drops it instead. Staging again replaces
// anything still staged.
func (db *DB) StageCSV(ctx context.Context, path string) (recommend.Dataset, error) {
	db.stageMu.Lock()
	defer db.stageMu.Unlock()
	return db.stage(ctx, path)
}

// CommitStaged makes the staged CSV the current dataset.
func (db *DB) CommitStaged(ctx context.Context) error {
	db.stageMu.Lock()
	defer db.stageMu.Unlock()
	return db.commit(ctx)
}

// DiscardStaged drops the staged CSV, if any.
func (db *DB) DiscardStaged(ctx context.Context) {
	db.stageMu.Lock()
	defer db.stageMu.Unlock()
	db.dropStaging(ctx)
}

// stage must be called with stageMu held.
func (db *DB) stage(ctx context.Context, path string) (recommend.Dataset, error) {
	start := time.Now()

	dataset, errType, err := db.readStaged(ctx, path)
	metrics.RecordDatasetLoad(time.Since(start), dataset.Len(), dataset.Rejected, errType, err)
	if err != nil {
		db.dropStaging(ctx)
		return recommend.Dataset{}, err
	}
	db.staged = path

	logging.Info().
		Str("path", path).
		Int("records", dataset.Len()).
		Int("rejected_rows", dataset.Rejected).
		Dur("duration", time.Since(start)).
		Msg("Dataset staged")

	return dataset, nil
}

func (db *DB) readStaged(ctx context.Context, path string) (recommend.Dataset, string, error) {
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return recommend.Dataset{}, loadErrorNotFound, fmt.Errorf("%w: %s", ErrDatasetNotFound, path)
	case err != nil:
		return recommend.Dataset{}, loadErrorRead, fmt.Errorf("failed to stat dataset %s: %w", path, err)
	case info.IsDir():
		return recommend.Dataset{}, loadErrorRead, fmt.Errorf("dataset path %s is a directory", path)
	}

	if err := db.copyCSV(ctx, path); err != nil {
		return recommend.Dataset{}, classify(err, loadErrorRead), err
	}

	header, err := db.columns(ctx, stagingTable)
	if err != nil {
		return recommend.Dataset{}, classify(err, loadErrorQuery), err
	}
	if err := recommend.CheckSchema(header); err != nil {
		return recommend.Dataset{}, loadErrorSchema, err
	}

	records, rejected, err := db.readRecords(ctx, stagingTable)
	if err != nil {
		return recommend.Dataset{}, classify(err, loadErrorQuery), err
	}

	return recommend.Dataset{
		Records:  records,
		Source:   path,
		Rejected: rejected,
	}, "", nil
}

// copyCSV replaces the staging table with the contents of path.
func (db *DB) copyCSV(ctx context.Context, path string) error {
	start := time.Now()
	query := fmt.Sprintf(
		"CREATE OR REPLACE TABLE %s AS SELECT * FROM read_csv_auto(%s, all_varchar=true, header=true)",
		stagingTable, quoteLiteral(path))
	_, err := db.conn.ExecContext(ctx, query)
	metrics.RecordDBQuery("load_csv", stagingTable, time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to read dataset %s: %w", path, err)
	}
	return nil
}

// commit renames the staging table over the dataset table in one
// transaction. It must be called with stageMu held.
func (db *DB) commit(ctx context.Context) (err error) {
	if db.staged == "" {
		return ErrNothingStaged
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	start := time.Now()
	defer func() {
		metrics.RecordDBQuery("commit", datasetTable, time.Since(start), err)
		if err != nil {
			metrics.DatasetLoadErrors.WithLabelValues(loadErrorCommit).Inc()
		}
	}()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin dataset commit: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+datasetTable); err != nil {
		return fmt.Errorf("failed to drop previous dataset: %w", err)
	}
	if _, err = tx.ExecContext(ctx, fmt.Sprintf("ALTER TABLE %s RENAME TO %s", stagingTable, datasetTable)); err != nil {
		return fmt.Errorf("failed to promote staged dataset: %w", err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit dataset: %w", err)
	}

	db.source = db.staged
	db.loaded = true
	db.staged = ""

	logging.Info().Str("path", db.source).Msg("Dataset committed")
	return nil
}

// columns returns table's column names in file order.
func (db *DB) columns(ctx context.Context, table string) ([]string, error) {
	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, `
		SELECT column_name
		FROM information_schema.columns
		WHERE table_name = ?
		ORDER BY ordinal_position`, table)
	metrics.RecordDBQuery("describe", table, time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to describe dataset: %w", err)
	}
	defer closeWithLog(rows, "rows")

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan column name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// selectColumns lists the track column followed by the rating columns.
func selectColumns() string {
	cols := make([]string, 0, recommend.Dimensions+1)
	cols = append(cols, quoteIdent(recommend.TrackColumn))
	for _, c := range recommend.RequiredColumns() {
		if c == recommend.TrackColumn {
			continue
		}
		cols = append(cols, quoteIdent(c))
	}
	return strings.Join(cols, ", ")
}

// readRecords converts every row of table into a record in file order.
func (db *DB) readRecords(ctx context.Context, table string) ([]recommend.Record, int, error) {
	start := time.Now()
	query := fmt.Sprintf("SELECT rowid, %s FROM %s ORDER BY rowid", selectColumns(), table)
	rows, err := db.conn.QueryContext(ctx, query)
	metrics.RecordDBQuery("read_records", table, time.Since(start), err)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query dataset: %w", err)
	}
	defer closeWithLog(rows, "rows")

	var (
		records  []recommend.Record
		rejected int
	)
	for rows.Next() {
		row, err := scanRow(rows)
		if err != nil {
			return nil, 0, err
		}
		if row.Track == "" {
			rejected++
			logging.Debug().Int64("row", row.Row).Msg("Skipping dataset row without track label")
			continue
		}
		records = append(records, recommend.Record{Track: row.Track, Ratings: row.Ratings})
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate dataset: %w", err)
	}
	return records, rejected, nil
}

// scanRow reads rowid, track and the rating cells of one row.
func scanRow(rows *sql.Rows) (SampleRow, error) {
	var (
		rowID int64
		track sql.NullString
		cells = make([]sql.NullString, recommend.Dimensions)
	)
	dest := make([]interface{}, 0, recommend.Dimensions+2)
	dest = append(dest, &rowID, &track)
	for i := range cells {
		dest = append(dest, &cells[i])
	}
	if err := rows.Scan(dest...); err != nil {
		return SampleRow{}, fmt.Errorf("failed to scan dataset row: %w", err)
	}

	ratings := make(recommend.Vector, recommend.Dimensions)
	for i, c := range cells {
		if c.Valid {
			ratings[i] = recommend.CoerceRating(c.String)
		} else {
			ratings[i] = recommend.CoerceRating(nil)
		}
	}
	return SampleRow{
		Row:     rowID + 1,
		Track:   strings.TrimSpace(track.String),
		Ratings: ratings,
	}, nil
}

// Count returns the number of rows in the current dataset, including
// rejected ones.
func (db *DB) Count(ctx context.Context) (int, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	if !db.loaded {
		return 0, ErrNoDataset
	}

	start := time.Now()
	var n int
	err := db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+datasetTable).Scan(&n)
	metrics.RecordDBQuery("count", datasetTable, time.Since(start), err)
	if err != nil {
		return 0, fmt.Errorf("failed to count dataset rows: %w", err)
	}
	return n, nil
}

// Sample returns up to n rows of the current dataset chosen by reservoir sampling with a
// fixed seed, ordered by file position. n <= 0 uses DefaultSampleSize and
// is capped at 1000; a negative seed uses DefaultSampleSeed.
func (db *DB) Sample(ctx context.Context, n int, seed int64) ([]SampleRow, error) {
	if n <= 0 {
		n = DefaultSampleSize
	}
	if n > maxSampleSize {
		n = maxSampleSize
	}
	if seed < 0 {
		seed = DefaultSampleSeed
	}

	db.mu.RLock()
	defer db.mu.RUnlock()
	if !db.loaded {
		return nil, ErrNoDataset
	}

	start := time.Now()
	query := fmt.Sprintf(`
		SELECT * FROM (
			SELECT rowid AS row_id, %s FROM %s USING SAMPLE reservoir(%d ROWS) REPEATABLE (%d)
		) ORDER BY row_id`, selectColumns(), datasetTable, n, seed)
	rows, err := db.conn.QueryContext(ctx, query)
	metrics.RecordDBQuery("sample", datasetTable, time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to sample dataset: %w", err)
	}
	defer closeWithLog(rows, "rows")

	out := make([]SampleRow, 0, n)
	for rows.Next() {
		row, err := scanRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sample: %w", err)
	}
	return out, nil
}

// dropStaging removes the staging table. It must be called with stageMu held.
func (db *DB) dropStaging(ctx context.Context) {
	db.staged = ""
	if _, err := db.conn.ExecContext(ctx, "DROP TABLE IF EXISTS "+stagingTable); err != nil {
		logging.Warn().Err(err).Msg("Failed to drop staged dataset table")
	}
}

// classify maps an error to a load error type.
func classify(err error, fallback string) string {
	if isConnectionError(err) {
		return "connection"
	}
	return fallback
}
