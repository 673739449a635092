// Marquee - Movie Catalog Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

import (
	"context"
	"errors"
	"time"
)

var (
	ErrInvalidMonth     = errors.New("invalid month name")
	ErrInvalidWeekday   = errors.New("invalid weekday name")
	ErrMovieNotFound    = errors.New("movie not found")
	ErrActorNotFound    = errors.New("actor not found")
	ErrDirectorNotFound = errors.New("director not found")
	ErrEmptyQuery       = errors.New("query must not be blank")
	ErrNotLoaded        = errors.New("catalog not loaded")
)

// DefaultMinVotes is the vote count a title needs before its rating is reported.
const DefaultMinVotes = 2000

// CreditsSchema identifies how credits rows join to movies.
type CreditsSchema string

const (
	// CreditsByID joins credits.id to movies.id.
	CreditsByID CreditsSchema = "id"
	// CreditsByTitle joins lower(credits.title) to lower(movies.title).
	CreditsByTitle CreditsSchema = "title"
)

// Movie is one row of the movies table. Numeric fields that were missing or
// malformed in the source are zero.
type Movie struct {
	ID             int64
	Title          string
	ReleaseDateRaw string
	ReleaseYear    int64
	Popularity     float64
	VoteCount      float64
	VoteAverage    float64
	Budget         float64
	Revenue        float64
	Return         float64
}

// Film is a joined movie row as listed in person lookups.
type Film struct {
	Title       string  `json:"title"`
	ReleaseDate string  `json:"release_date"`
	Return      float64 `json:"return"`
	Budget      float64 `json:"budget"`
	Revenue     float64 `json:"revenue"`
}

// PersonMatch is the result of matching a name against cast or crew text.
// CreditRows counts matching credits rows; FilmCount and TotalReturn are
// computed over the movies joined by set membership.
type PersonMatch struct {
	CreditRows  int64
	FilmCount   int64
	TotalReturn float64
	Films       []Film
}

// MovieScore answers the score-by-title query.
type MovieScore struct {
	Title       string  `json:"title"`
	ReleaseYear int64   `json:"release_year"`
	Popularity  float64 `json:"popularity"`
}

// MovieVotes answers the votes-by-title query.
type MovieVotes struct {
	Title       string  `json:"title"`
	ReleaseYear int64   `json:"release_year"`
	VoteCount   float64 `json:"vote_count"`
	VoteAverage float64 `json:"vote_average"`
	Qualified   bool    `json:"qualified"`
	MinVotes    int64   `json:"min_votes"`
}

// ActorStats answers the actor query.
type ActorStats struct {
	Query         string  `json:"query"`
	FilmCount     int64   `json:"film_count"`
	TotalReturn   float64 `json:"total_return"`
	AverageReturn float64 `json:"average_return"`
}

// DirectorStats answers the director query.
type DirectorStats struct {
	Query       string  `json:"query"`
	FilmCount   int64   `json:"film_count"`
	TotalReturn float64 `json:"total_return"`
	Films       []Film  `json:"films"`
}

// Snapshot describes the currently loaded tables.
type Snapshot struct {
	Movies        int64         `json:"movies"`
	Credits       int64         `json:"credits"`
	CreditsSchema CreditsSchema `json:"credits_schema"`
	LoadedAt      time.Time     `json:"loaded_at"`
	LoadDuration  time.Duration `json:"load_duration_ns"`
	MoviesSource  string        `json:"movies_source,omitempty"`
	CreditsSource string        `json:"credits_source,omitempty"`
}

// Store is the read side of the catalog tables.
type Store interface {
	CountReleasesInMonth(ctx context.Context, month Month) (int64, error)
	CountReleasesOnWeekday(ctx context.Context, day Weekday) (int64, error)

	// FindMovieByTitle returns the first row in file order whose title equals
	// title case-insensitively, or ErrMovieNotFound.
	FindMovieByTitle(ctx context.Context, title string) (*Movie, error)

	// MatchCast and MatchCrew return a zero CreditRows when nothing matches.
	// Only MatchCrew fills Films.
	MatchCast(ctx context.Context, name string) (PersonMatch, error)
	MatchCrew(ctx context.Context, name string) (PersonMatch, error)

	// Snapshot returns false until the first successful load.
	Snapshot() (Snapshot, bool)
	Ping(ctx context.Context) error
}

// Loader materializes the tables from local CSV files.
type Loader interface {
	LoadCatalog(ctx context.Context, moviesPath, creditsPath string) (Snapshot, error)
}

// FetchedFile is a source made available on local disk.
type FetchedFile struct {
	Path    string
	Changed bool
}

// Fetcher resolves a source URI to a local file.
type Fetcher interface {
	Fetch(ctx context.Context, name, uri string) (FetchedFile, error)
}
