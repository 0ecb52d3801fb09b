// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/tomtom215/trackmatch/internal/config"
	"github.com/tomtom215/trackmatch/internal/logging"
)

// datasetTable holds the committed dataset; stagingTable holds a CSV that
// has been read and checked but not yet committed.
const (
	datasetTable = "dataset"
	stagingTable = "dataset_staging"
)

// DB wraps the DuckDB connection used to stage and query the dataset
type DB struct {
	conn *sql.DB
	cfg  *config.DatabaseConfig

	// mu guards the dataset table against reads during a commit
	mu     sync.RWMutex
	source string
	loaded bool

	// stageMu serializes use of the staging table; staged is the path
	// currently waiting in it, "" when nothing is staged.
	stageMu sync.Mutex
	staged  string
}

// New opens a DuckDB connection with the configured resource limits
func New(cfg *config.DatabaseConfig) (*DB, error) {
	if cfg == nil {
		return nil, fmt.Errorf("database config is nil")
	}

	if cfg.Path != ":memory:" {
		// Use 0750 permissions (owner: rwx, group: rx, other: none) per gosec G301
		dbDir := filepath.Dir(cfg.Path)
		if dbDir != "" && dbDir != "." {
			if err := os.MkdirAll(dbDir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create database directory %s: %w", dbDir, err)
			}
		}
	}

	conn, err := sql.Open("duckdb", connectionString(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db := &DB{
		conn: conn,
		cfg:  cfg,
	}

	if err := db.configureConnectionPool(); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to configure connection pool: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := conn.PingContext(ctx); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	logging.Debug().
		Str("path", cfg.Path).
		Str("max_memory", cfg.MaxMemory).
		Int("threads", threadCount(cfg)).
		Msg("DuckDB connection established")

	return db, nil
}

// connectionString builds the DuckDB DSN with tuning options.
// Extension auto-install is disabled so startup never reaches the network.
func connectionString(cfg *config.DatabaseConfig) string {
	dsn := fmt.Sprintf("%s?threads=%d&autoinstall_known_extensions=false&autoload_known_extensions=false",
		cfg.Path, threadCount(cfg))
	if cfg.MaxMemory != "" {
		dsn += "&max_memory=" + cfg.MaxMemory
	}
	return dsn
}

func threadCount(cfg *config.DatabaseConfig) int {
	if cfg.Threads > 0 {
		return cfg.Threads
	}
	return runtime.NumCPU()
}

// Conn returns the underlying SQL database connection.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// Source returns the path of the loaded dataset, or "" before LoadCSV.
func (db *DB) Source() string {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.source
}

// Close closes the database connection
func (db *DB) Close() error {
	if db.conn == nil {
		return nil
	}
	return db.conn.Close()
}

// Ping checks if the database connection is alive
func (db *DB) Ping(ctx context.Context) error {
	if db.conn == nil {
		return fmt.Errorf("database connection is nil")
	}
	return db.conn.PingContext(ctx)
}
