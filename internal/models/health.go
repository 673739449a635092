// Marquee - Movie Catalog Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package models

import "time"

// HealthStatus is the body of GET /api/v1/health.
//
// Status is "healthy" when the database answers and a catalog is loaded,
// "degraded" otherwise.
type HealthStatus struct {
	Status            string     `json:"status"`
	Version           string     `json:"version"`
	DatabaseConnected bool       `json:"database_connected"`
	CatalogLoaded     bool       `json:"catalog_loaded"`
	LastReload        *time.Time `json:"last_reload,omitempty"`
	LastReloadError   string     `json:"last_reload_error,omitempty"`
	Uptime            float64    `json:"uptime"`
}
