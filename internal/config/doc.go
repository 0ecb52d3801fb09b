// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

/*
Package config provides centralized configuration management for the track
recommender service.

# Configuration Sources

Configuration is layered with koanf, lowest priority first:
  - Struct defaults (defaultConfig)
  - YAML file: CONFIG_PATH, or the first of config.yaml, config.yml,
    /etc/trackmatch/config.yaml, /etc/trackmatch/config.yml
  - Environment variables, through an explicit mapping table

A .env file, when present, is loaded into the process environment by the
server binary before Load runs.

# Environment Variables

Dataset (DatasetConfig):
  - DATASET_PATH: historical CSV (default: dataset_carreras_sintetico.csv)
  - DATASET_SAMPLE_SIZE: preview rows (default: 10)
  - DATASET_SAMPLE_SEED: preview seed (default: 42)
  - DATASET_RELOAD_INTERVAL: file change check interval, 0 disables (default: 0)

DuckDB (DatabaseConfig):
  - DUCKDB_PATH: database path (default: :memory:)
  - DUCKDB_MAX_MEMORY: memory limit (default: 512MB)
  - DUCKDB_THREADS: worker threads, 0 for NumCPU (default: 0)

Recommendation engine (RecommendConfig):
  - RECOMMEND_DEFAULT_TOP_N, RECOMMEND_MAX_TOP_N (default: 5, 10)
  - RECOMMEND_EXPLANATION_SIZE, RECOMMEND_BREAKDOWN_SIZE (default: 3, 6)
  - RECOMMEND_CACHE_ENABLED, RECOMMEND_CACHE_TTL, RECOMMEND_CACHE_MAX_ENTRIES

HTTP server (ServerConfig):
  - HTTP_HOST, HTTP_PORT (default: 0.0.0.0, 8501)
  - HTTP_TIMEOUT, HTTP_SHUTDOWN_TIMEOUT (default: 30s, 10s)
  - ENVIRONMENT: development, staging or production

Security (SecurityConfig):
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW (default: 100 per 1m)
  - DISABLE_RATE_LIMIT (default: false)
  - CORS_ORIGINS: comma-separated origins (default: *)

Logging (LoggingConfig):
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

# Usage

	cfg, err := config.Load()
	if err != nil {
	    logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
*/
package config
