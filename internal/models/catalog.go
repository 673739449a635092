// Marquee - Movie Catalog Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package models

import "time"

// CatalogInfo is the body of GET /api/v1/catalog.
type CatalogInfo struct {
	Movies          int64     `json:"movies"`
	Credits         int64     `json:"credits"`
	CreditsSchema   string    `json:"credits_schema"`
	LoadedAt        time.Time `json:"loaded_at"`
	LoadDurationMS  int64     `json:"load_duration_ms"`
	MoviesSource    string    `json:"movies_source"`
	CreditsSource   string    `json:"credits_source"`
	MinVotes        int64     `json:"min_votes"`
	LastReloadError string    `json:"last_reload_error,omitempty"`
}

// ReloadResult is the body of POST /api/v1/catalog/reload.
type ReloadResult struct {
	Reloaded bool        `json:"reloaded"`
	Catalog  CatalogInfo `json:"catalog"`
}

// MonthCount is the body of GET /api/v1/releases/months/{month}.
type MonthCount struct {
	Month  string `json:"month"`
	Number int    `json:"number"`
	Count  int64  `json:"count"`
}

// WeekdayCount is the body of GET /api/v1/releases/weekdays/{weekday}.
// Number is 0 for Monday through 6 for Sunday.
type WeekdayCount struct {
	Weekday string `json:"weekday"`
	Number  int    `json:"number"`
	Count   int64  `json:"count"`
}
