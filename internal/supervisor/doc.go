// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

/*
Package supervisor provides process supervision for the recommender using suture v4.

The tree separates the dataset lifecycle from request serving:

	RootSupervisor ("trackmatch")
	├── DataSupervisor ("data-layer")
	│   └── ModelService (dataset reload)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

A reload loop that keeps failing is restarted with backoff inside the data
layer. The API layer keeps answering from the last model the engine swapped in.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddDataService(services.NewModelService(db, engine, modelCfg, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second, logger))

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    return err
	}

# Configuration

Zero values in TreeConfig are replaced with suture's defaults:
  - FailureThreshold: 5 failures
  - FailureDecay: 30 seconds
  - FailureBackoff: 15 seconds
  - ShutdownTimeout: 10 seconds

# Service Contract

Services implement suture.Service. Returning nil stops the service for good,
returning an error triggers a restart, and returning ctx.Err() after
cancellation is a normal shutdown.

DuckDB is not supervised. It is embedded and owned by the database package.

Supervisor events are logged through sutureslog into the process slog logger.
*/
package supervisor
