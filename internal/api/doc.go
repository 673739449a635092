// Marquee - Movie Catalog Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package api provides the HTTP surface of Marquee.

Routes are served by a Chi router (see SetupChi) in two families:

Legacy routes reproduce the payloads of the original service: HTTP 200 with
{"mensaje": "..."} on success and {"error": "..."} when the query matches
nothing. Messages are in Spanish and echo the lower-cased input.

	GET /cantidad_filmaciones_mes/{mes}
	GET /cantidad_filmaciones_dia/{dia}
	GET /score_titulo/{titulo}
	GET /votos_titulo/{titulo}
	GET /get_actor/{nombre}
	GET /get_director/{nombre}

Versioned routes return the models.APIResponse envelope:

	GET  /api/v1/releases/months/{month}
	GET  /api/v1/releases/weekdays/{weekday}
	GET  /api/v1/movies/{title}/score
	GET  /api/v1/movies/{title}/votes
	GET  /api/v1/actors/{name}
	GET  /api/v1/directors/{name}
	GET  /api/v1/catalog
	POST /api/v1/catalog/reload
	GET  /api/v1/health, /api/v1/health/live, /api/v1/health/ready

Error mapping on versioned routes:

	catalog.ErrInvalidMonth, ErrInvalidWeekday, ErrEmptyQuery -> 400 VALIDATION_ERROR
	catalog.ErrMovieNotFound, ErrActorNotFound, ErrDirectorNotFound -> 404 NOT_FOUND
	catalog.ErrNotLoaded -> 503 SERVICE_UNAVAILABLE
	anything else -> 500 DATABASE_ERROR

Query results are cached in a go-cache instance keyed by operation and
normalized argument. The cache is flushed whenever the catalog reloads.

/metrics exposes Prometheus metrics and /swagger/ serves the Swagger UI.
*/
package api
