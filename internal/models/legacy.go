// Marquee - Movie Catalog Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package models

// LegacyMessage is the success body of the Spanish routes.
type LegacyMessage struct {
	Mensaje string `json:"mensaje"`
}

// LegacyError is the failure body of the Spanish routes.
type LegacyError struct {
	Error string `json:"error"`
}

// LegacyDirector is the body of /get_director/{nombre}.
type LegacyDirector struct {
	Mensaje   string       `json:"mensaje"`
	Peliculas []LegacyFilm `json:"peliculas"`
}

// LegacyFilm is one film in LegacyDirector. Costo is the budget and
// Ganancia the revenue, as in the original payload.
type LegacyFilm struct {
	Titulo           string  `json:"titulo"`
	FechaLanzamiento string  `json:"fecha_lanzamiento"`
	Retorno          float64 `json:"retorno"`
	Costo            float64 `json:"costo"`
	Ganancia         float64 `json:"ganancia"`
}
