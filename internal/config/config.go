// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package config

import (
	"time"

	"github.com/joho/godotenv"
)

// Config holds the complete service configuration.
type Config struct {
	Dataset   DatasetConfig   `koanf:"dataset"`
	Database  DatabaseConfig  `koanf:"database"`
	Recommend RecommendConfig `koanf:"recommend"`
	Server    ServerConfig    `koanf:"server"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// DatasetConfig locates the historical dataset.
//
// Environment Variables:
//   - DATASET_PATH: CSV file with Interes_1..Interes_12 and Carrera_Asignada (default: dataset_carreras_sintetico.csv)
//   - DATASET_SAMPLE_SIZE: rows returned by the data preview (default: 10)
//   - DATASET_SAMPLE_SEED: seed for the data preview sample (default: 42)
//   - DATASET_RELOAD_INTERVAL: how often to check the file for changes, 0 disables (default: 0)
type DatasetConfig struct {
	Path           string        `koanf:"path"`
	SampleSize     int           `koanf:"sample_size"`
	SampleSeed     int64         `koanf:"sample_seed"`
	ReloadInterval time.Duration `koanf:"reload_interval"`
}

// DatabaseConfig holds DuckDB settings.
//
// The dataset is staged in DuckDB for ingestion and previews. The default
// in-memory database is rebuilt on every start.
type DatabaseConfig struct {
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads"` // Number of DuckDB threads (0 = use NumCPU)
}

// RecommendConfig holds recommendation engine settings.
//
// Environment Variables:
//   - RECOMMEND_DEFAULT_TOP_N: results when a request omits top_n (default: 5)
//   - RECOMMEND_MAX_TOP_N: upper bound on top_n (default: 10)
//   - RECOMMEND_EXPLANATION_SIZE: drivers reported per result (default: 3)
//   - RECOMMEND_BREAKDOWN_SIZE: contributions reported for the best result (default: 6)
//   - RECOMMEND_CACHE_ENABLED: cache identical requests (default: true)
//   - RECOMMEND_CACHE_TTL: cache entry lifetime (default: 5m)
//   - RECOMMEND_CACHE_MAX_ENTRIES: cache capacity (default: 1000)
type RecommendConfig struct {
	DefaultTopN     int           `koanf:"default_top_n"`
	MaxTopN         int           `koanf:"max_top_n"`
	ExplanationSize int           `koanf:"explanation_size"`
	BreakdownSize   int           `koanf:"breakdown_size"`
	CacheEnabled    bool          `koanf:"cache_enabled"`
	CacheTTL        time.Duration `koanf:"cache_ttl"`
	CacheMaxEntries int           `koanf:"cache_max_entries"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // "development", "staging" or "production" (default: "development")
}

// SecurityConfig holds request limiting and cross-origin settings.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging settings for zerolog.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false - include caller file:line (default: false)
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}

// Addr returns the listen address for the HTTP server.
func (s ServerConfig) Addr() string {
	return joinHostPort(s.Host, s.Port)
}

// Load reads configuration from defaults, an optional YAML file and the
// environment, in increasing order of priority. A .env file in the working
// directory is merged into the environment first; variables that are
// already set win.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return LoadWithKoanf()
}
