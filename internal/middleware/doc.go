// Marquee - Movie Catalog Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package middleware provides HTTP middleware for the Marquee API.

Key Components:

  - RequestID: accepts or generates X-Request-ID and seeds the logging context
  - PrometheusMetrics: request counters and latency histograms
  - AccessLog: one structured zerolog line per request
  - Compression: gzip for clients that ask for it

All middleware uses the http.HandlerFunc shape; the api package adapts it
for chi with a small wrapper.

Metrics are labelled with the chi route pattern rather than the raw path,
so /api/v1/actors/{name} is a single series regardless of the actor asked for.
*/
package middleware
