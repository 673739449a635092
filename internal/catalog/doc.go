// Marquee - Movie Catalog Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package catalog holds the domain model of the movie catalog and the query
service built on top of it.

The catalog is two read-only tables loaded from CSV files:

  - movies: one row per film with release date, popularity, votes, budget,
    revenue and return (revenue divided by budget)
  - credits: packed cast and crew text per film, keyed by movie id or, in
    older dataset versions, by title

Queries:

  - CountByMonth, CountByWeekday: releases per Spanish month or weekday name
  - ScoreByTitle, VotesByTitle: case-insensitive exact title lookup, first row
    in file order wins
  - ActorStats, DirectorStats: case-insensitive substring match against the
    cast or crew text, joined back to movies by set membership

Storage is abstracted behind Store; the database package implements it on
DuckDB. Reloader swaps in a new snapshot when the source files change and
keeps serving the previous one if a reload fails.

Usage:

	svc := catalog.NewService(store, catalog.WithMinVotes(2000))
	n, err := svc.CountByMonth(ctx, "Septiembre")
	if errors.Is(err, catalog.ErrInvalidMonth) {
	    // 400
	}
*/
package catalog
