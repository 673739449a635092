// Marquee - Movie Catalog Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/logging"
)

// columnSet maps lower-cased header names to the names as written in the file.
type columnSet map[string]string

func (c columnSet) has(name string) bool {
	_, ok := c[name]
	return ok
}

// text is the trimmed VARCHAR value of a column, or NULL when absent.
func (c columnSet) text(name string) string {
	col, ok := c[name]
	if !ok {
		return "CAST(NULL AS VARCHAR)"
	}
	return "trim(" + quoteIdent(col) + ")"
}

// number is a DOUBLE value of a column with malformed or missing values as 0.
func (c columnSet) number(name string) string {
	if !c.has(name) {
		return "CAST(0 AS DOUBLE)"
	}
	return "COALESCE(TRY_CAST(" + c.text(name) + " AS DOUBLE), 0)"
}

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// readCSV is a read_csv call that keeps every column as VARCHAR.
func readCSV(path string) string {
	return fmt.Sprintf(`read_csv(%s, header=true, delim=',', quote='"', escape='"', all_varchar=true, null_padding=true)`, quoteLiteral(path))
}

// LoadCatalog materializes the movies and credits tables from CSV files and
// swaps them in atomically. On error the previous tables stay live.
func (db *DB) LoadCatalog(ctx context.Context, moviesPath, creditsPath string) (snap catalog.Snapshot, err error) {
	db.loadMu.Lock()
	defer db.loadMu.Unlock()

	if err := db.Ping(ctx); err != nil {
		return catalog.Snapshot{}, err
	}

	start := time.Now()
	defer func() { observe("load_catalog", start, err) }()

	db.generation++
	gen := db.generation
	moviesRaw := fmt.Sprintf("movies_raw_%d", gen)
	creditsRaw := fmt.Sprintf("credits_raw_%d", gen)
	defer db.dropQuietly(moviesRaw, creditsRaw, "movies_next", "credits_next")

	movieCols, err := db.copyRaw(ctx, moviesRaw, moviesPath)
	if err != nil {
		return catalog.Snapshot{}, fmt.Errorf("read movies %s: %w", moviesPath, err)
	}
	creditCols, err := db.copyRaw(ctx, creditsRaw, creditsPath)
	if err != nil {
		return catalog.Snapshot{}, fmt.Errorf("read credits %s: %w", creditsPath, err)
	}

	schema, err := detectCreditsSchema(creditCols)
	if err != nil {
		return catalog.Snapshot{}, fmt.Errorf("credits %s: %w", creditsPath, err)
	}
	moviesSQL, err := moviesSelect(movieCols, moviesRaw, schema)
	if err != nil {
		return catalog.Snapshot{}, fmt.Errorf("movies %s: %w", moviesPath, err)
	}
	creditsSQL := creditsSelect(creditCols, creditsRaw, schema)

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return catalog.Snapshot{}, fmt.Errorf("begin load transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmts := []string{
		"CREATE OR REPLACE TABLE movies_next AS " + moviesSQL,
		"CREATE OR REPLACE TABLE credits_next AS " + creditsSQL,
		"DROP TABLE IF EXISTS movies",
		"DROP TABLE IF EXISTS credits",
		"ALTER TABLE movies_next RENAME TO movies",
		"ALTER TABLE credits_next RENAME TO credits",
	}
	for _, stmt := range stmts {
		if _, err = tx.ExecContext(ctx, stmt); err != nil {
			return catalog.Snapshot{}, fmt.Errorf("swap catalog tables: %w", err)
		}
	}

	var movies, credits int64
	if err = tx.QueryRowContext(ctx, "SELECT (SELECT count(*) FROM movies), (SELECT count(*) FROM credits)").Scan(&movies, &credits); err != nil {
		return catalog.Snapshot{}, fmt.Errorf("count catalog rows: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return catalog.Snapshot{}, fmt.Errorf("commit catalog load: %w", err)
	}

	snap = catalog.Snapshot{
		Movies:        movies,
		Credits:       credits,
		CreditsSchema: schema,
		LoadedAt:      time.Now().UTC(),
		LoadDuration:  time.Since(start),
	}

	db.mu.Lock()
	db.snapshot = snap
	db.loaded = true
	db.mu.Unlock()

	logging.Debug().
		Int64("movies", movies).
		Int64("credits", credits).
		Str("credits_schema", string(schema)).
		Msg("Catalog tables swapped")

	return snap, nil
}

// copyRaw copies a CSV file into table name and returns its header.
// The copy is committed on its own so rowid numbers rows from 0 in file order.
func (db *DB) copyRaw(ctx context.Context, name, path string) (columnSet, error) {
	if _, err := db.conn.ExecContext(ctx, fmt.Sprintf("CREATE OR REPLACE TABLE %s AS SELECT * FROM %s", quoteIdent(name), readCSV(path))); err != nil {
		return nil, err
	}

	rows, err := db.conn.QueryContext(ctx, fmt.Sprintf("SELECT * FROM %s LIMIT 0", quoteIdent(name)))
	if err != nil {
		return nil, err
	}
	defer closeQuietly(rows)

	names, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	cols := make(columnSet, len(names))
	for _, n := range names {
		key := strings.ToLower(strings.TrimSpace(n))
		if _, dup := cols[key]; !dup {
			cols[key] = n
		}
	}
	return cols, rows.Err()
}

func (db *DB) dropQuietly(tables ...string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	for _, t := range tables {
		if _, err := db.conn.ExecContext(ctx, "DROP TABLE IF EXISTS "+quoteIdent(t)); err != nil && err != sql.ErrConnDone {
			logging.Debug().Err(err).Str("table", t).Msg("Failed to drop staging table")
		}
	}
}

// detectCreditsSchema picks the join key from the credits header.
func detectCreditsSchema(cols columnSet) (catalog.CreditsSchema, error) {
	if !cols.has("cast") && !cols.has("crew") {
		return "", fmt.Errorf("%w: credits need a cast or crew column", ErrUnsupportedSchema)
	}
	switch {
	case cols.has("id"):
		return catalog.CreditsByID, nil
	case cols.has("title"):
		return catalog.CreditsByTitle, nil
	default:
		return "", fmt.Errorf("%w: credits need an id or title column", ErrUnsupportedSchema)
	}
}

// releaseDate parses dates the way a lenient CSV reader would: ISO dates,
// timestamps, US-style and partial dates. Anything else is NULL.
func releaseDate(raw string) string {
	parts := []string{
		fmt.Sprintf("TRY_CAST(%s AS DATE)", raw),
		fmt.Sprintf("CAST(TRY_CAST(%s AS TIMESTAMP) AS DATE)", raw),
	}
	for _, layout := range dateLayouts {
		parts = append(parts, fmt.Sprintf("CAST(TRY_STRPTIME(%s, %s) AS DATE)", raw, quoteLiteral(layout)))
	}
	return "COALESCE(" + strings.Join(parts, ", ") + ")"
}

// dateLayouts are tried in order after the ISO date and timestamp casts.
var dateLayouts = []string{"%m/%d/%Y", "%Y/%m/%d", "%Y-%m", "%Y"}

func moviesSelect(cols columnSet, raw string, schema catalog.CreditsSchema) (string, error) {
	for _, req := range []string{"title", "release_date"} {
		if !cols.has(req) {
			return "", fmt.Errorf("%w: movies need a %s column", ErrUnsupportedSchema, req)
		}
	}
	if schema == catalog.CreditsByID && !cols.has("id") {
		return "", fmt.Errorf("%w: credits are keyed by id but movies have no id column", ErrUnsupportedSchema)
	}

	id := "CAST(NULL AS BIGINT)"
	if cols.has("id") {
		id = "TRY_CAST(TRY_CAST(" + cols.text("id") + " AS DOUBLE) AS BIGINT)"
	}

	date := releaseDate(cols.text("release_date"))

	year := "COALESCE(year(release_date), 0)"
	if cols.has("release_year") {
		year = "COALESCE(TRY_CAST(TRY_CAST(" + cols.text("release_year") + " AS DOUBLE) AS BIGINT), year(release_date), 0)"
	}

	ret := "CASE WHEN budget > 0 THEN revenue / budget ELSE 0 END"
	if cols.has("return") {
		ret = cols.number("return")
	}

	// Two passes: the inner select types the columns, the outer derives
	// release_year and return from them.
	inner := fmt.Sprintf(`SELECT
	rowid AS row_idx,
	%s AS id,
	COALESCE(%s, '') AS title,
	%s AS release_date,
	COALESCE(%s, '') AS release_date_raw,
	%s AS popularity,
	%s AS vote_count,
	%s AS vote_average,
	%s AS budget,
	%s AS revenue%s
FROM %s`,
		id,
		cols.text("title"),
		date,
		cols.text("release_date"),
		cols.number("popularity"),
		cols.number("vote_count"),
		cols.number("vote_average"),
		cols.number("budget"),
		cols.number("revenue"),
		passthrough(cols, "release_year", "return"),
		quoteIdent(raw),
	)

	return fmt.Sprintf(`SELECT
	row_idx,
	id,
	title,
	lower(title) AS title_key,
	release_date,
	release_date_raw,
	CAST(%s AS BIGINT) AS release_year,
	popularity,
	vote_count,
	vote_average,
	budget,
	revenue,
	CAST(%s AS DOUBLE) AS "return"
FROM (%s)`, year, ret, inner), nil
}

// passthrough carries optional raw columns into the inner select so the
// outer select can read them by their canonical names.
func passthrough(cols columnSet, names ...string) string {
	var b strings.Builder
	for _, n := range names {
		if col, ok := cols[n]; ok {
			fmt.Fprintf(&b, ",\n\t%s AS %s", quoteIdent(col), quoteIdent(n))
		}
	}
	return b.String()
}

func creditsSelect(cols columnSet, raw string, schema catalog.CreditsSchema) string {
	movieID := "CAST(NULL AS BIGINT)"
	titleKey := "CAST(NULL AS VARCHAR)"
	if schema == catalog.CreditsByID {
		movieID = "TRY_CAST(TRY_CAST(" + cols.text("id") + " AS DOUBLE) AS BIGINT)"
	} else {
		titleKey = "lower(" + cols.text("title") + ")"
	}

	castText := "COALESCE(" + rawText(cols, "cast") + ", '')"
	crewText := "COALESCE(" + rawText(cols, "crew") + ", '')"

	return fmt.Sprintf(`SELECT
	rowid AS row_idx,
	%s AS movie_id,
	%s AS title_key,
	%s AS cast_text,
	lower(%s) AS cast_lower,
	%s AS crew_text,
	lower(%s) AS crew_lower
FROM %s`, movieID, titleKey, castText, castText, crewText, crewText, quoteIdent(raw))
}

// rawText is an untrimmed column value; substring search runs on the text as stored.
func rawText(cols columnSet, name string) string {
	col, ok := cols[name]
	if !ok {
		return "CAST(NULL AS VARCHAR)"
	}
	return quoteIdent(col)
}
