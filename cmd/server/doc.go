// Marquee - Movie Catalog Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package main is the entry point for the Marquee server.

Marquee loads a movies CSV and a credits CSV into DuckDB and answers
release-count, score, vote, actor and director queries over HTTP.

# Commands

	marquee                      # same as marquee serve
	marquee serve                # load the catalog and serve the API
	marquee query month enero    # load once, print the legacy JSON answer
	marquee version

# Application Architecture

The server runs under a Suture v4 supervisor tree:

	RootSupervisor ("marquee")
	├── DataSupervisor ("data-layer")
	│   └── catalog-reload (fsnotify watcher and refresh ticker)
	└── APISupervisor ("api-layer")
	    └── http-server (Chi router)

Component initialization order:

 1. Configuration: Koanf v2 with environment variables and config file
 2. Logging: zerolog with JSON/console output modes
 3. Fetch state: BadgerDB (ETag, Last-Modified, generation per source)
 4. Source manager: local files, HTTP(S) with circuit breaker, gs:// objects
 5. Database: DuckDB, tables built by the loader
 6. Reloader: initial load; the query cache is flushed on every reload
 7. Supervisor tree and HTTP server

A failed initial load does not stop the server. Catalog routes answer 503
until a reload succeeds.

# Configuration

Configuration is loaded via Koanf v2 (environment > config file > defaults):

	MOVIES_SOURCE=data/movies_dataset_transformed.csv   # path, file://, http(s)://, gs://
	CREDITS_SOURCE=data/credits.csv
	CATALOG_REFRESH_INTERVAL=0                          # poll remote sources; 0 disables
	CATALOG_WATCH=true                                  # reload when local files change
	MIN_VOTES=2000
	DUCKDB_PATH=:memory:
	HTTP_HOST=0.0.0.0
	HTTP_PORT=8080
	LOG_LEVEL=info
	LOG_FORMAT=json

CONFIG_PATH points at an optional YAML file.

# Graceful Shutdown

SIGINT and SIGTERM cancel the root context. The HTTP server drains within
server.shutdown_timeout and services that fail to stop are logged.
*/
package main
