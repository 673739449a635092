// Marquee - Movie Catalog Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/models"
)

// Legacy error texts.
const (
	legacyInvalidMonth     = "Mes no válido. Ingrese un mes en español."
	legacyInvalidWeekday   = "Día no válido. Ingrese un día en español."
	legacyMovieNotFound    = "No se encontró una película con ese título."
	legacyActorNotFound    = "No se encontró un actor con ese nombre."
	legacyDirectorNotFound = "No se encontró un director con ese nombre."
	legacyNotLoaded        = "El catálogo todavía no fue cargado."
	legacyInternal         = "Error interno al consultar el catálogo."
)

// respondLegacy writes a legacy body. Legacy routes answer 200 for every
// query outcome; only infrastructure failures use other statuses.
func respondLegacy(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Cache-Control", "no-cache")
	writeJSON(w, status, body)
}

// legacyErrorBody maps err onto a status and {"error": ...}. domainMsg is the
// text for the "no match" outcome of the route.
func legacyErrorBody(ctx context.Context, err error, domainMsg string) (int, models.LegacyError) {
	switch {
	case errors.Is(err, catalog.ErrInvalidMonth),
		errors.Is(err, catalog.ErrInvalidWeekday),
		errors.Is(err, catalog.ErrEmptyQuery),
		errors.Is(err, catalog.ErrMovieNotFound),
		errors.Is(err, catalog.ErrActorNotFound),
		errors.Is(err, catalog.ErrDirectorNotFound):
		return http.StatusOK, models.LegacyError{Error: domainMsg}
	case errors.Is(err, catalog.ErrNotLoaded):
		return http.StatusServiceUnavailable, models.LegacyError{Error: legacyNotLoaded}
	default:
		logging.Ctx(ctx).Error().Err(err).Msg("Legacy catalog query failed")
		return http.StatusInternalServerError, models.LegacyError{Error: legacyInternal}
	}
}

// legacyQuery computes one legacy payload. The second result is the domain
// message used when err is a "no match" error.
type legacyQuery func(h *Handler, ctx context.Context, arg string) (interface{}, string, error)

// LegacyOps lists the operations accepted by LegacyQuery, in route order.
var LegacyOps = []string{"month", "weekday", "score", "votes", "actor", "director"}

var legacyQueries = map[string]legacyQuery{
	"month":    (*Handler).legacyMonth,
	"weekday":  (*Handler).legacyWeekday,
	"score":    (*Handler).legacyScore,
	"votes":    (*Handler).legacyVotes,
	"actor":    (*Handler).legacyActor,
	"director": (*Handler).legacyDirector,
}

// LegacyQuery runs op against arg and returns the HTTP status and body the
// legacy route would answer with.
func (h *Handler) LegacyQuery(ctx context.Context, op, arg string) (int, interface{}, error) {
	q, ok := legacyQueries[op]
	if !ok {
		return 0, nil, fmt.Errorf("unknown operation %q", op)
	}
	body, domainMsg, err := q(h, ctx, arg)
	if err != nil {
		status, errBody := legacyErrorBody(ctx, err, domainMsg)
		return status, errBody, nil
	}
	return http.StatusOK, body, nil
}

func (h *Handler) serveLegacy(w http.ResponseWriter, r *http.Request, op, param string) {
	status, body, err := h.LegacyQuery(r.Context(), op, pathParam(r, param))
	if err != nil {
		respondLegacy(w, http.StatusInternalServerError, models.LegacyError{Error: legacyInternal})
		return
	}
	respondLegacy(w, status, body)
}

// LegacyMonth handles GET /cantidad_filmaciones_mes/{mes}.
//
// @Summary Releases in a month (legacy)
// @Tags Legacy
// @Produce json
// @Param mes path string true "Mes en español"
// @Success 200 {object} models.LegacyMessage
// @Router /cantidad_filmaciones_mes/{mes} [get]
func (h *Handler) LegacyMonth(w http.ResponseWriter, r *http.Request) {
	h.serveLegacy(w, r, "month", "mes")
}

// LegacyWeekday handles GET /cantidad_filmaciones_dia/{dia}.
//
// @Summary Releases on a weekday (legacy)
// @Tags Legacy
// @Produce json
// @Param dia path string true "Día en español"
// @Success 200 {object} models.LegacyMessage
// @Router /cantidad_filmaciones_dia/{dia} [get]
func (h *Handler) LegacyWeekday(w http.ResponseWriter, r *http.Request) {
	h.serveLegacy(w, r, "weekday", "dia")
}

// LegacyScore handles GET /score_titulo/{titulo}.
//
// @Summary Movie score (legacy)
// @Tags Legacy
// @Produce json
// @Param titulo path string true "Título de la filmación"
// @Success 200 {object} models.LegacyMessage
// @Router /score_titulo/{titulo} [get]
func (h *Handler) LegacyScore(w http.ResponseWriter, r *http.Request) {
	h.serveLegacy(w, r, "score", "titulo")
}

// LegacyVotes handles GET /votos_titulo/{titulo}.
//
// @Summary Movie votes (legacy)
// @Tags Legacy
// @Produce json
// @Param titulo path string true "Título de la filmación"
// @Success 200 {object} models.LegacyMessage
// @Router /votos_titulo/{titulo} [get]
func (h *Handler) LegacyVotes(w http.ResponseWriter, r *http.Request) {
	h.serveLegacy(w, r, "votes", "titulo")
}

// LegacyActor handles GET /get_actor/{nombre}.
//
// @Summary Actor statistics (legacy)
// @Tags Legacy
// @Produce json
// @Param nombre path string true "Nombre del actor"
// @Success 200 {object} models.LegacyMessage
// @Router /get_actor/{nombre} [get]
func (h *Handler) LegacyActor(w http.ResponseWriter, r *http.Request) {
	h.serveLegacy(w, r, "actor", "nombre")
}

// LegacyDirector handles GET /get_director/{nombre}.
//
// @Summary Director statistics (legacy)
// @Tags Legacy
// @Produce json
// @Param nombre path string true "Nombre del director"
// @Success 200 {object} models.LegacyDirector
// @Router /get_director/{nombre} [get]
func (h *Handler) LegacyDirector(w http.ResponseWriter, r *http.Request) {
	h.serveLegacy(w, r, "director", "nombre")
}

func (h *Handler) legacyMonth(ctx context.Context, mes string) (interface{}, string, error) {
	res, _, err := cached(h, "month", mes, func() (models.MonthCount, error) {
		m, n, err := h.service.CountByMonth(ctx, mes)
		return models.MonthCount{Month: m.String(), Number: int(m), Count: n}, err
	})
	if err != nil {
		return nil, legacyInvalidMonth, err
	}
	return models.LegacyMessage{
		Mensaje: formatLegacyInt(res.Count) + " cantidad de películas fueron estrenadas en el mes de " + legacyLower(mes),
	}, "", nil
}

func (h *Handler) legacyWeekday(ctx context.Context, dia string) (interface{}, string, error) {
	res, _, err := cached(h, "weekday", dia, func() (models.WeekdayCount, error) {
		d, n, err := h.service.CountByWeekday(ctx, dia)
		return models.WeekdayCount{Weekday: d.String(), Number: int(d), Count: n}, err
	})
	if err != nil {
		return nil, legacyInvalidWeekday, err
	}
	return models.LegacyMessage{
		Mensaje: formatLegacyInt(res.Count) + " cantidad de películas fueron estrenadas en los días " + legacyLower(dia),
	}, "", nil
}

func (h *Handler) legacyScore(ctx context.Context, titulo string) (interface{}, string, error) {
	res, _, err := cached(h, "score", titulo, func() (*catalog.MovieScore, error) {
		return h.service.ScoreByTitle(ctx, titulo)
	})
	if err != nil {
		return nil, legacyMovieNotFound, err
	}
	return models.LegacyMessage{
		Mensaje: "La película " + res.Title +
			" fue estrenada en el año " + formatLegacyInt(res.ReleaseYear) +
			" con un score/popularidad de " + formatLegacyFloat(res.Popularity),
	}, "", nil
}

func (h *Handler) legacyVotes(ctx context.Context, titulo string) (interface{}, string, error) {
	res, _, err := cached(h, "votes", titulo, func() (*catalog.MovieVotes, error) {
		return h.service.VotesByTitle(ctx, titulo)
	})
	if err != nil {
		return nil, legacyMovieNotFound, err
	}

	if !res.Qualified {
		return models.LegacyMessage{
			Mensaje: "La película " + res.Title + " no cumple con la condición de tener al menos " +
				formatLegacyInt(res.MinVotes) + " valoraciones.",
		}, "", nil
	}
	return models.LegacyMessage{
		Mensaje: "La película " + res.Title +
			" fue estrenada en el año " + formatLegacyInt(res.ReleaseYear) +
			". La misma cuenta con un total de " + formatLegacyFloat(res.VoteCount) +
			" valoraciones, con un promedio de " + formatLegacyFloat(res.VoteAverage),
	}, "", nil
}

func (h *Handler) legacyActor(ctx context.Context, nombre string) (interface{}, string, error) {
	res, _, err := cached(h, "actor", nombre, func() (*catalog.ActorStats, error) {
		return h.service.ActorStats(ctx, nombre)
	})
	if err != nil {
		return nil, legacyActorNotFound, err
	}

	// With no joined films the average is the integer 0, not 0.0.
	promedio := "0"
	if res.FilmCount > 0 {
		promedio = formatLegacyFloat(res.AverageReturn)
	}
	return models.LegacyMessage{
		Mensaje: "El actor " + legacyLower(nombre) +
			" ha participado de " + formatLegacyInt(res.FilmCount) +
			" cantidad de filmaciones, el mismo ha conseguido un retorno de " + formatLegacyFloat(res.TotalReturn) +
			" con un promedio de " + promedio + " por filmación",
	}, "", nil
}

func (h *Handler) legacyDirector(ctx context.Context, nombre string) (interface{}, string, error) {
	res, _, err := cached(h, "director", nombre, func() (*catalog.DirectorStats, error) {
		return h.service.DirectorStats(ctx, nombre)
	})
	if err != nil {
		return nil, legacyDirectorNotFound, err
	}

	peliculas := make([]models.LegacyFilm, 0, len(res.Films))
	for _, f := range res.Films {
		peliculas = append(peliculas, models.LegacyFilm{
			Titulo:           f.Title,
			FechaLanzamiento: f.ReleaseDate,
			Retorno:          f.Return,
			Costo:            f.Budget,
			Ganancia:         f.Revenue,
		})
	}
	return models.LegacyDirector{
		Mensaje: "El director " + legacyLower(nombre) +
			" ha dirigido " + formatLegacyInt(res.FilmCount) +
			" películas con un retorno total de " + formatLegacyFloat(res.TotalReturn),
		Peliculas: peliculas,
	}, "", nil
}
