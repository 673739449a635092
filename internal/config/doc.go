// Marquee - Movie Catalog Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package config loads Marquee configuration with Koanf v2.
//
// Sources are layered, highest priority last:
//  1. Built-in defaults (defaultConfig)
//  2. An optional YAML file (CONFIG_PATH, ./config.yaml, /etc/marquee/config.yaml)
//  3. Environment variables (see envMappings)
//
// Example config.yaml:
//
//	catalog:
//	  movies_source: https://example.org/movies_dataset_transformed.csv
//	  credits_source: /data/credits.csv
//	  min_votes: 2000
//	server:
//	  port: 8080
//	logging:
//	  level: debug
//	  format: console
//
// The resulting Config is validated and then treated as immutable.
package config
