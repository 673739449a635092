// Marquee - Movie Catalog Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// @title Marquee API
// @version 1.0
// @description Query API over a movies and credits catalog.
// @description
// @description ## Route families
// @description
// @description - **Legacy routes** (`/cantidad_filmaciones_mes/{mes}` and friends) answer HTTP 200 with `{"mensaje": "..."}` or `{"error": "..."}` and Spanish messages.
// @description - **Versioned routes** (`/api/v1/...`) answer with the standard envelope and HTTP status codes.
// @description
// @description ## Rate Limiting
// @description
// @description Default rate limit: 100 requests per minute per IP address. `POST /api/v1/catalog/reload` is limited to 5 per minute.
// @description
// @description ## Error Responses
// @description
// @description Versioned routes report errors as:
// @description ```json
// @description {
// @description   "status": "error",
// @description   "data": null,
// @description   "error": {
// @description     "code": "NOT_FOUND",
// @description     "message": "movie not found"
// @description   },
// @description   "metadata": {
// @description     "timestamp": "2026-01-02T03:04:05Z"
// @description   }
// @description }
// @description ```
//
// @contact.name GitHub Repository
// @contact.url https://github.com/tomtom215/marquee/issues
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @BasePath /
// @schemes http https
//
// @tag.name Core
// @tag.description Health and readiness probes
//
// @tag.name Releases
// @tag.description Release counts by month and weekday
//
// @tag.name Movies
// @tag.description Title lookups
//
// @tag.name People
// @tag.description Actor and director statistics
//
// @tag.name Catalog
// @tag.description Catalog snapshot and reload
//
// @tag.name Legacy
// @tag.description Original Spanish routes
package main
