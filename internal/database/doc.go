// Marquee - Movie Catalog Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package database implements catalog.Store and catalog.Loader on DuckDB.

Loading:

LoadCatalog reads the movies and credits CSV files with read_csv in
all_varchar mode, so no row is ever rejected for a type error. Each file's
header decides how it is normalized:

	movies:  title, release_date required; id, release_year, popularity,
	         vote_count, vote_average, budget, revenue, return optional
	credits: id (credits keyed by movie id) or title (keyed by title),
	         plus cast and crew

Numeric columns are TRY_CAST to DOUBLE and COALESCE'd to 0. Dates go through
a tolerant parse and are NULL when unparseable, so such rows never count
toward a month or weekday. The raw release_date text is kept for display.

Both tables are built under staging names and renamed over the live ones in a
single transaction; readers see either the old catalog or the new one.

Row order:

Every table carries row_idx, the 0-based position of the row in its file.
Title lookups and film listings order by it so "first match" means first in
file order.

Person lookups:

A name matches a credits row when the lower-cased cast (or crew) text
contains the lower-cased name. Matching rows contribute their movie_id or
title_key to a set and movies join on IN (set), so a film listed twice in
credits still counts once while duplicate movie rows count every time.
*/
package database
