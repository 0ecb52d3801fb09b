// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

/*
Package services provides suture.Service wrappers for the recommender's
long-running components.

# Available Services

HTTPServerService wraps anything with ListenAndServe and Shutdown. Serve runs
the server until the context is canceled, then drains connections within the
configured shutdown timeout.

ModelService owns the dataset-to-model lifecycle. Reload stages the CSV through
a DatasetLoader (the database package), fits a model with a ModelEngine (the
recommend engine), commits the staged CSV and then installs the model. Call
it once before starting the tree so the API comes up ready. When ReloadInterval is positive, Serve polls the dataset
file's modification time and size and reloads on change. A failed reload is
logged and the previous model and stored dataset stay in place; the same
broken file is not retried until it changes again. Each tick also prunes
expired entries from the engine's result cache.

# Return Values

	nil         -> stopped cleanly, not restarted
	error       -> crashed, restarted by the supervisor
	ctx.Err()   -> shutdown requested
*/
package services
