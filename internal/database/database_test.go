// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package database

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/trackmatch/internal/config"
)

// testDBSemaphore serializes DuckDB usage across tests.
// The semaphore is held for the whole test and released by t.Cleanup.
var testDBSemaphore = make(chan struct{}, 1)

// setupTestDB creates a new in-memory test database with timeout protection.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	testDBSemaphore <- struct{}{}
	t.Cleanup(func() {
		<-testDBSemaphore
	})

	cfg := &config.DatabaseConfig{
		Path:      ":memory:",
		MaxMemory: "256MB",
		Threads:   2,
	}

	type result struct {
		db  *DB
		err error
	}

	resultCh := make(chan result, 1)
	go func() {
		db, err := New(cfg)
		resultCh <- result{db: db, err: err}
	}()

	select {
	case res := <-resultCh:
		if res.err != nil {
			t.Fatalf("Failed to create test database: %v", res.err)
		}
		t.Cleanup(func() {
			if err := res.db.Close(); err != nil {
				t.Errorf("Close() error = %v", err)
			}
		})
		return res.db
	case <-time.After(60 * time.Second):
		t.Fatalf("Timeout: database creation took longer than 60s")
		return nil
	}
}

// header is the full dataset header in file order.
var header = "Interes_1,Interes_2,Interes_3,Interes_4,Interes_5,Interes_6," +
	"Interes_7,Interes_8,Interes_9,Interes_10,Interes_11,Interes_12,Carrera_Asignada"

// writeCSV writes lines under a temp dir and returns the file path.
func writeCSV(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dataset.csv")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o600); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

func TestNew(t *testing.T) {
	db := setupTestDB(t)

	if err := db.Ping(context.Background()); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
	if db.Conn() == nil {
		t.Error("Conn() returned nil")
	}
	if db.Source() != "" {
		t.Errorf("Source() = %q before load", db.Source())
	}
}

func TestNew_NilConfig(t *testing.T) {
	t.Parallel()

	if _, err := New(nil); err == nil {
		t.Error("expected error for nil config")
	}
}

func TestConnectionString(t *testing.T) {
	t.Parallel()

	got := connectionString(&config.DatabaseConfig{Path: ":memory:", MaxMemory: "1GB", Threads: 3})
	for _, want := range []string{":memory:?", "threads=3", "max_memory=1GB", "autoinstall_known_extensions=false"} {
		if !strings.Contains(got, want) {
			t.Errorf("connectionString() = %q, missing %q", got, want)
		}
	}
	if strings.Contains(connectionString(&config.DatabaseConfig{Path: "x.db"}), "max_memory") {
		t.Error("max_memory should be omitted when unset")
	}
}

func TestQuoting(t *testing.T) {
	t.Parallel()

	if got := quoteLiteral("it's.csv"); got != "'it''s.csv'" {
		t.Errorf("quoteLiteral() = %s", got)
	}
	if got := quoteIdent(`a"b`); got != `"a""b"` {
		t.Errorf("quoteIdent() = %s", got)
	}
}

func TestIsConnectionError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{os.ErrClosed, false},
		{errString("sql: database is closed"), true},
		{errString("driver: bad connection"), true},
		{errString("Parser Error: syntax error"), false},
	}
	for _, tt := range tests {
		if got := isConnectionError(tt.err); got != tt.want {
			t.Errorf("isConnectionError(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

type errString string

func (e errString) Error() string { return string(e) }

// writeCSVAt writes lines to dir/dataset.csv, creating dir.
func writeCSVAt(t *testing.T, dir string, lines ...string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0o750); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	path := filepath.Join(dir, "dataset.csv")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o600); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}
