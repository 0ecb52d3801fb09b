// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

/*
Package main is the entry point for the track recommender server.

The server loads a historical dataset of twelve interest ratings per student
and the track each student was assigned, fits a normalization over it, and
builds one mean profile per track. Requests with a new student's ratings are
ranked against those profiles by cosine similarity.

# Startup

 1. Configuration: .env, then Koanf v2 (defaults, config.yaml, environment)
 2. Logging: zerolog with JSON or console output
 3. Database: DuckDB, used to ingest the dataset CSV and serve previews
 4. Model: the dataset is loaded and the engine initialized; failure is fatal
 5. HTTP: chi router with request IDs, logging, CORS, rate limits and metrics
 6. Supervisor tree: Suture v4 runs the model reload service and the HTTP server

	RootSupervisor ("trackmatch")
	├── DataSupervisor ("data-layer")
	│   └── ModelService
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

# Configuration

	# Dataset
	DATASET_PATH=dataset_carreras_sintetico.csv
	DATASET_SAMPLE_SIZE=10
	DATASET_SAMPLE_SEED=42
	DATASET_RELOAD_INTERVAL=0     # e.g. 30s to pick up edits to the CSV

	# Engine
	RECOMMEND_DEFAULT_TOP_N=5
	RECOMMEND_MAX_TOP_N=10
	RECOMMEND_CACHE_ENABLED=true

	# Server
	HTTP_PORT=8501
	ENVIRONMENT=development
	CORS_ORIGINS=*
	LOG_LEVEL=info
	LOG_FORMAT=json

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server drains in-flight
requests within HTTP_SHUTDOWN_TIMEOUT and the database is closed on exit.

# Example

	export DATASET_PATH=./data/dataset_carreras_sintetico.csv
	export LOG_FORMAT=console
	./trackmatch

	curl -s localhost:8501/api/v1/recommendations \
	  -d '{"ratings":[5,4,3,2,1,3,3,3,4,5,2,1],"top_n":3}'
*/
package main
