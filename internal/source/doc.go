// Marquee - Movie Catalog Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package source resolves catalog source URIs to local CSV files.

Supported URIs:

	/data/movies.csv, file:///data/movies.csv   used in place
	https://host/path/movies.csv                downloaded into the cache dir
	gs://bucket/path/movies.csv                 downloaded from Cloud Storage

Remote downloads are conditional. The ETag, Last-Modified, SHA-256 and size
of the last fetch are kept per URI in a BadgerDB StateStore, so a restart
with an unchanged upstream file costs a single 304. HTTP fetches go through a
gobreaker circuit breaker; Cloud Storage fetches compare object ETags before
downloading.

Every fetch reports whether the file changed since the previous fetch, which
lets the reloader skip loads when nothing moved.
*/
package source
