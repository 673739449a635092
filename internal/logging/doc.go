// Marquee - Movie Catalog Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package logging provides the process-wide zerolog logger for Marquee.
//
// All packages log through this package rather than holding their own
// logger instances:
//
//	logging.Info().Int("movies", n).Msg("Catalog loaded")
//	logging.Ctx(r.Context()).Warn().Err(err).Msg("Lookup failed")
//
// # Configuration
//
// The logger is configured once from main via Init:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json or console (default: json)
//   - LOG_CALLER: include file:line (default: false)
//
// # Request context
//
// The HTTP layer stores a request ID and a short correlation ID in the
// request context. Ctx returns a logger that carries both fields.
//
// # slog bridge
//
// NewSlogLogger exposes the zerolog backend as a *slog.Logger for libraries
// that only speak slog (the suture supervisor event hook).
package logging
