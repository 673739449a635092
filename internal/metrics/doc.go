// Marquee - Movie Catalog Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package metrics defines the Prometheus instrumentation for Marquee.

All collectors are registered on the default registry through promauto and
exposed by the /metrics endpoint.

Metric groups:

	duckdb_query_duration_seconds{operation}        query latency
	duckdb_query_errors_total{operation,error_type} failed queries
	api_requests_total{method,endpoint,status_code} request counter
	api_request_duration_seconds{method,endpoint}   request latency
	api_active_requests                             in-flight requests
	cache_hits_total / cache_misses_total{cache}    response cache efficiency
	catalog_reload_duration_seconds                 full reload latency
	catalog_reloads_total{trigger,result}           reload outcomes
	catalog_last_reload_timestamp                   last successful reload
	catalog_rows{table}                             rows in the live snapshot
	source_fetch_total{source,result}               downloaded, not_modified, local, error
	source_fetch_duration_seconds{scheme}           fetch latency
	circuit_breaker_*{name}                         breaker state and transitions

Usage:

	start := time.Now()
	err := store.LoadCatalog(ctx, files)
	metrics.RecordReload("watch", time.Since(start), err)
*/
package metrics
