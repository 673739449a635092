// Marquee - Movie Catalog Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/models"
)

// validatePath validates req and writes a 400 on failure.
func validatePath(w http.ResponseWriter, req interface{}) bool {
	if apiErr := validateRequest(req); apiErr != nil {
		respondErrorWithDetails(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details, nil)
		return false
	}
	return true
}

// ReleasesByMonth counts movies released in a month.
//
// @Summary Count releases by month
// @Description Number of movies released in the given Spanish month name (any year). Accents and case are ignored.
// @Tags Releases
// @Produce json
// @Param month path string true "Month name in Spanish" example(enero)
// @Success 200 {object} models.APIResponse{data=models.MonthCount}
// @Failure 400 {object} models.APIResponse "Unknown month"
// @Failure 503 {object} models.APIResponse "Catalog not loaded"
// @Router /releases/months/{month} [get]
func (h *Handler) ReleasesByMonth(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	req := MonthRequest{Month: pathParam(r, "month")}
	if !validatePath(w, &req) {
		return
	}

	res, hit, err := cached(h, "month", req.Month, func() (models.MonthCount, error) {
		m, n, err := h.service.CountByMonth(r.Context(), req.Month)
		return models.MonthCount{Month: m.String(), Number: int(m), Count: n}, err
	})
	if err != nil {
		respondCatalogError(w, r, err)
		return
	}
	respondSuccess(w, res, start, hit)
}

// ReleasesByWeekday counts movies released on a day of the week.
//
// @Summary Count releases by weekday
// @Description Number of movies released on the given Spanish weekday name. Accents and case are ignored.
// @Tags Releases
// @Produce json
// @Param weekday path string true "Weekday name in Spanish" example(lunes)
// @Success 200 {object} models.APIResponse{data=models.WeekdayCount}
// @Failure 400 {object} models.APIResponse "Unknown weekday"
// @Failure 503 {object} models.APIResponse "Catalog not loaded"
// @Router /releases/weekdays/{weekday} [get]
func (h *Handler) ReleasesByWeekday(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	req := WeekdayRequest{Weekday: pathParam(r, "weekday")}
	if !validatePath(w, &req) {
		return
	}

	res, hit, err := cached(h, "weekday", req.Weekday, func() (models.WeekdayCount, error) {
		d, n, err := h.service.CountByWeekday(r.Context(), req.Weekday)
		return models.WeekdayCount{Weekday: d.String(), Number: int(d), Count: n}, err
	})
	if err != nil {
		respondCatalogError(w, r, err)
		return
	}
	respondSuccess(w, res, start, hit)
}

// MovieScore returns the release year and popularity of a title.
//
// @Summary Movie score
// @Description First movie in file order whose title matches case-insensitively.
// @Tags Movies
// @Produce json
// @Param title path string true "Movie title"
// @Success 200 {object} models.APIResponse{data=catalog.MovieScore}
// @Failure 404 {object} models.APIResponse "No such title"
// @Router /movies/{title}/score [get]
func (h *Handler) MovieScore(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	req := TitleRequest{Title: pathParam(r, "title")}
	if !validatePath(w, &req) {
		return
	}

	res, hit, err := cached(h, "score", req.Title, func() (*catalog.MovieScore, error) {
		return h.service.ScoreByTitle(r.Context(), req.Title)
	})
	if err != nil {
		respondCatalogError(w, r, err)
		return
	}
	respondSuccess(w, res, start, hit)
}

// MovieVotes returns the vote count and average of a title.
//
// @Summary Movie votes
// @Description Vote count and average. qualified is false below the configured minimum vote count (2000 by default).
// @Tags Movies
// @Produce json
// @Param title path string true "Movie title"
// @Success 200 {object} models.APIResponse{data=catalog.MovieVotes}
// @Failure 404 {object} models.APIResponse "No such title"
// @Router /movies/{title}/votes [get]
func (h *Handler) MovieVotes(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	req := TitleRequest{Title: pathParam(r, "title")}
	if !validatePath(w, &req) {
		return
	}

	res, hit, err := cached(h, "votes", req.Title, func() (*catalog.MovieVotes, error) {
		return h.service.VotesByTitle(r.Context(), req.Title)
	})
	if err != nil {
		respondCatalogError(w, r, err)
		return
	}
	respondSuccess(w, res, start, hit)
}

// Actor aggregates the return of every movie an actor appears in.
//
// @Summary Actor statistics
// @Description Case-insensitive substring match against cast text; counts, total and average return of the joined movies.
// @Tags People
// @Produce json
// @Param name path string true "Actor name or fragment"
// @Success 200 {object} models.APIResponse{data=catalog.ActorStats}
// @Failure 404 {object} models.APIResponse "No cast entry matched"
// @Router /actors/{name} [get]
func (h *Handler) Actor(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	req := PersonRequest{Name: pathParam(r, "name")}
	if !validatePath(w, &req) {
		return
	}

	res, hit, err := cached(h, "actor", req.Name, func() (*catalog.ActorStats, error) {
		return h.service.ActorStats(r.Context(), req.Name)
	})
	if err != nil {
		respondCatalogError(w, r, err)
		return
	}
	respondSuccess(w, res, start, hit)
}

// Director aggregates and lists every movie a director worked on.
//
// @Summary Director statistics
// @Description Case-insensitive substring match against crew text; total return and per-film details in file order.
// @Tags People
// @Produce json
// @Param name path string true "Director name or fragment"
// @Success 200 {object} models.APIResponse{data=catalog.DirectorStats}
// @Failure 404 {object} models.APIResponse "No crew entry matched"
// @Router /directors/{name} [get]
func (h *Handler) Director(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	req := PersonRequest{Name: pathParam(r, "name")}
	if !validatePath(w, &req) {
		return
	}

	res, hit, err := cached(h, "director", req.Name, func() (*catalog.DirectorStats, error) {
		return h.service.DirectorStats(r.Context(), req.Name)
	})
	if err != nil {
		respondCatalogError(w, r, err)
		return
	}
	respondSuccess(w, res, start, hit)
}

// Catalog describes the loaded tables.
//
// @Summary Catalog snapshot
// @Tags Catalog
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.CatalogInfo}
// @Failure 503 {object} models.APIResponse "Catalog not loaded"
// @Router /catalog [get]
func (h *Handler) Catalog(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.service.Snapshot()
	if !ok {
		respondCatalogError(w, r, catalog.ErrNotLoaded)
		return
	}
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     h.catalogInfo(snap),
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}

// ReloadCatalog refetches both sources and reloads the tables.
//
// @Summary Reload the catalog
// @Description Fetches both sources and rebuilds the tables. On failure the previous catalog stays live.
// @Tags Catalog
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.ReloadResult}
// @Failure 500 {object} models.APIResponse "Reload failed"
// @Failure 503 {object} models.APIResponse "Reload not available"
// @Router /catalog/reload [post]
func (h *Handler) ReloadCatalog(w http.ResponseWriter, r *http.Request) {
	if h.reloader == nil {
		respondError(w, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Catalog reload is not configured", nil)
		return
	}
	start := time.Now()

	res, err := h.reloader.Reload(r.Context(), catalog.TriggerAPI)
	if err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Msg("Catalog reload requested over API failed")
		respondErrorWithDetails(w, http.StatusInternalServerError, ErrCodeInternalError, "Catalog reload failed; the previous catalog is still served",
			map[string]interface{}{"error": sanitizeLogValue(err.Error())}, nil)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: models.ReloadResult{
			Reloaded: res.Reloaded,
			Catalog:  h.catalogInfo(res.Snapshot),
		},
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}

func (h *Handler) catalogInfo(snap catalog.Snapshot) models.CatalogInfo {
	info := models.CatalogInfo{
		Movies:         snap.Movies,
		Credits:        snap.Credits,
		CreditsSchema:  string(snap.CreditsSchema),
		LoadedAt:       snap.LoadedAt,
		LoadDurationMS: snap.LoadDuration.Milliseconds(),
		MoviesSource:   snap.MoviesSource,
		CreditsSource:  snap.CreditsSource,
		MinVotes:       h.service.MinVotes(),
	}
	if h.reloader != nil {
		if info.MoviesSource == "" {
			info.MoviesSource, info.CreditsSource = h.reloader.Sources()
		}
		if err := h.reloader.LastError(); err != nil {
			info.LastReloadError = err.Error()
		}
	}
	return info
}
