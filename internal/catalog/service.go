// Marquee - Movie Catalog Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

import (
	"context"
	"fmt"
	"strings"
)

// Service answers catalog queries against a Store.
type Service struct {
	store    Store
	minVotes int64
}

// Option configures a Service.
type Option func(*Service)

// WithMinVotes sets the vote threshold used by VotesByTitle.
func WithMinVotes(n int64) Option {
	return func(s *Service) {
		if n >= 0 {
			s.minVotes = n
		}
	}
}

// NewService creates a query service over store.
func NewService(store Store, opts ...Option) *Service {
	s := &Service{store: store, minVotes: DefaultMinVotes}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// MinVotes returns the configured vote threshold.
func (s *Service) MinVotes() int64 { return s.minVotes }

// CountByMonth counts movies released in the named month of any year.
func (s *Service) CountByMonth(ctx context.Context, name string) (Month, int64, error) {
	m, err := ParseMonth(name)
	if err != nil {
		return 0, 0, err
	}
	n, err := s.store.CountReleasesInMonth(ctx, m)
	if err != nil {
		return m, 0, fmt.Errorf("count releases in %s: %w", m, err)
	}
	return m, n, nil
}

// CountByWeekday counts movies released on the named day of the week.
func (s *Service) CountByWeekday(ctx context.Context, name string) (Weekday, int64, error) {
	d, err := ParseWeekday(name)
	if err != nil {
		return 0, 0, err
	}
	n, err := s.store.CountReleasesOnWeekday(ctx, d)
	if err != nil {
		return d, 0, fmt.Errorf("count releases on %s: %w", d, err)
	}
	return d, n, nil
}

// ScoreByTitle returns release year and popularity of the first movie titled title.
func (s *Service) ScoreByTitle(ctx context.Context, title string) (*MovieScore, error) {
	m, err := s.findMovie(ctx, title)
	if err != nil {
		return nil, err
	}
	return &MovieScore{
		Title:       m.Title,
		ReleaseYear: m.ReleaseYear,
		Popularity:  m.Popularity,
	}, nil
}

// VotesByTitle returns the vote count and average of the first movie titled
// title. A movie below the threshold is returned with Qualified false.
func (s *Service) VotesByTitle(ctx context.Context, title string) (*MovieVotes, error) {
	m, err := s.findMovie(ctx, title)
	if err != nil {
		return nil, err
	}
	return &MovieVotes{
		Title:       m.Title,
		ReleaseYear: m.ReleaseYear,
		VoteCount:   m.VoteCount,
		VoteAverage: m.VoteAverage,
		Qualified:   m.VoteCount >= float64(s.minVotes),
		MinVotes:    s.minVotes,
	}, nil
}

func (s *Service) findMovie(ctx context.Context, title string) (*Movie, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrEmptyQuery
	}
	m, err := s.store.FindMovieByTitle(ctx, title)
	if err != nil {
		return nil, fmt.Errorf("find movie %q: %w", title, err)
	}
	return m, nil
}

// ActorStats aggregates the return of every movie whose cast mentions name.
func (s *Service) ActorStats(ctx context.Context, name string) (*ActorStats, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyQuery
	}
	match, err := s.store.MatchCast(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("match cast %q: %w", name, err)
	}
	if match.CreditRows == 0 {
		return nil, fmt.Errorf("%w: %q", ErrActorNotFound, name)
	}
	return &ActorStats{
		Query:         name,
		FilmCount:     match.FilmCount,
		TotalReturn:   match.TotalReturn,
		AverageReturn: average(match.TotalReturn, match.FilmCount),
	}, nil
}

// DirectorStats aggregates and lists every movie whose crew mentions name.
func (s *Service) DirectorStats(ctx context.Context, name string) (*DirectorStats, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyQuery
	}
	match, err := s.store.MatchCrew(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("match crew %q: %w", name, err)
	}
	if match.CreditRows == 0 {
		return nil, fmt.Errorf("%w: %q", ErrDirectorNotFound, name)
	}
	films := match.Films
	if films == nil {
		films = []Film{}
	}
	return &DirectorStats{
		Query:       name,
		FilmCount:   match.FilmCount,
		TotalReturn: match.TotalReturn,
		Films:       films,
	}, nil
}

// Snapshot describes the loaded catalog.
func (s *Service) Snapshot() (Snapshot, bool) {
	return s.store.Snapshot()
}

// Ping checks the underlying store.
func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

func average(total float64, count int64) float64 {
	if count == 0 {
		return 0
	}
	return total / float64(count)
}
