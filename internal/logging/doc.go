// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Package logging provides the process-wide zerolog logger for trackmatch.
//
// # Overview
//
// The package provides:
//   - A global zerolog logger configured once from the application config
//   - JSON output for production and console output for development
//   - Request ID propagation through context.Context
//   - Component-scoped child loggers
//   - An slog.Handler adapter so sutureslog writes through zerolog
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//	logging.Info().Int("tracks", n).Msg("Model initialized")
//
//	ctx = logging.ContextWithRequestID(ctx, logging.GenerateRequestID())
//	logging.Ctx(ctx).Debug().Msg("Ranking tracks")
//
// Always terminate log chains with .Msg() or .Send().
package logging
