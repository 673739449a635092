// Marquee - Movie Catalog Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/marquee/internal/catalog"
)

// CountReleasesInMonth counts movies whose parsed release date falls in month.
func (db *DB) CountReleasesInMonth(ctx context.Context, month catalog.Month) (n int64, err error) {
	if err := db.ready(); err != nil {
		return 0, err
	}
	start := time.Now()
	defer func() { observe("count_month", start, err) }()

	err = db.conn.QueryRowContext(ctx,
		"SELECT count(*) FROM movies WHERE month(release_date) = ?", int(month)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count releases in month: %w", err)
	}
	return n, nil
}

// CountReleasesOnWeekday counts movies whose parsed release date falls on day.
func (db *DB) CountReleasesOnWeekday(ctx context.Context, day catalog.Weekday) (n int64, err error) {
	if err := db.ready(); err != nil {
		return 0, err
	}
	start := time.Now()
	defer func() { observe("count_weekday", start, err) }()

	err = db.conn.QueryRowContext(ctx,
		"SELECT count(*) FROM movies WHERE isodow(release_date) = ?", day.ISO()).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count releases on weekday: %w", err)
	}
	return n, nil
}

// FindMovieByTitle returns the first movie in file order whose title equals
// title ignoring case.
func (db *DB) FindMovieByTitle(ctx context.Context, title string) (_ *catalog.Movie, err error) {
	if err := db.ready(); err != nil {
		return nil, err
	}
	start := time.Now()
	defer func() {
		if errors.Is(err, catalog.ErrMovieNotFound) {
			observe("find_title", start, nil)
			return
		}
		observe("find_title", start, err)
	}()

	var (
		m  catalog.Movie
		id sql.NullInt64
	)
	err = db.conn.QueryRowContext(ctx, `
		SELECT id, title, release_date_raw, release_year, popularity,
		       vote_count, vote_average, budget, revenue, "return"
		FROM movies
		WHERE title_key = lower(?)
		ORDER BY row_idx
		LIMIT 1`, title).Scan(
		&id, &m.Title, &m.ReleaseDateRaw, &m.ReleaseYear, &m.Popularity,
		&m.VoteCount, &m.VoteAverage, &m.Budget, &m.Revenue, &m.Return,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, catalog.ErrMovieNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find movie by title: %w", err)
	}
	m.ID = id.Int64
	return &m, nil
}

// matchedMovies selects movies joined to the credits rows whose lower-cased
// text column contains the lower-cased name. Only one of movie_id and
// title_key is populated per load, so the OR picks whichever key is in use.
const matchedMovies = `
	WITH matched AS (
		SELECT movie_id, title_key FROM credits WHERE contains(%[1]s, lower(?))
	)
	SELECT %[2]s
	FROM movies m
	WHERE m.id IN (SELECT movie_id FROM matched WHERE movie_id IS NOT NULL)
	   OR m.title_key IN (SELECT title_key FROM matched WHERE title_key IS NOT NULL)`

// MatchCast aggregates the movies whose cast text mentions name.
func (db *DB) MatchCast(ctx context.Context, name string) (catalog.PersonMatch, error) {
	return db.matchAggregate(ctx, "match_cast", "cast_lower", name)
}

// MatchCrew aggregates and lists, in file order, the movies whose crew text mentions name.
func (db *DB) MatchCrew(ctx context.Context, name string) (pm catalog.PersonMatch, err error) {
	pm, err = db.matchAggregate(ctx, "match_crew", "crew_lower", name)
	if err != nil || pm.CreditRows == 0 {
		return pm, err
	}

	start := time.Now()
	defer func() { observe("list_crew_films", start, err) }()

	query := fmt.Sprintf(matchedMovies,
		"crew_lower",
		`m.title, m.release_date_raw, m."return", m.budget, m.revenue`) + "\n\tORDER BY m.row_idx"

	rows, err := db.conn.QueryContext(ctx, query, name)
	if err != nil {
		return catalog.PersonMatch{}, fmt.Errorf("list crew films: %w", err)
	}
	defer closeQuietly(rows)

	pm.Films = make([]catalog.Film, 0, pm.FilmCount)
	for rows.Next() {
		var f catalog.Film
		if err = rows.Scan(&f.Title, &f.ReleaseDate, &f.Return, &f.Budget, &f.Revenue); err != nil {
			return catalog.PersonMatch{}, fmt.Errorf("scan crew film: %w", err)
		}
		pm.Films = append(pm.Films, f)
	}
	if err = rows.Err(); err != nil {
		return catalog.PersonMatch{}, fmt.Errorf("iterate crew films: %w", err)
	}
	return pm, nil
}

func (db *DB) matchAggregate(ctx context.Context, op, column, name string) (pm catalog.PersonMatch, err error) {
	if err := db.ready(); err != nil {
		return catalog.PersonMatch{}, err
	}
	start := time.Now()
	defer func() { observe(op, start, err) }()

	err = db.conn.QueryRowContext(ctx,
		"SELECT count(*) FROM credits WHERE contains("+column+", lower(?))", name).Scan(&pm.CreditRows)
	if err != nil {
		return catalog.PersonMatch{}, fmt.Errorf("%s: count credits: %w", op, err)
	}
	if pm.CreditRows == 0 {
		return pm, nil
	}

	query := fmt.Sprintf(matchedMovies, column, `count(*), COALESCE(sum(m."return"), 0)`)
	if err = db.conn.QueryRowContext(ctx, query, name).Scan(&pm.FilmCount, &pm.TotalReturn); err != nil {
		return catalog.PersonMatch{}, fmt.Errorf("%s: join movies: %w", op, err)
	}
	return pm, nil
}
