// Marquee - Movie Catalog Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
)

// Reload triggers, used as metric labels.
const (
	TriggerStartup  = "startup"
	TriggerWatch    = "watch"
	TriggerInterval = "interval"
	TriggerAPI      = "api"
	TriggerCLI      = "cli"
)

// ReloadListener is called after every successful reload.
type ReloadListener func(Snapshot)

// ReloadResult reports the outcome of a reload.
type ReloadResult struct {
	Snapshot Snapshot
	// Reloaded is false when both sources were unchanged and the load was skipped.
	Reloaded bool
}

// Reloader fetches both sources and loads them into the store.
// Reloads are serialized; a failed reload leaves the previous tables in place.
type Reloader struct {
	fetcher    Fetcher
	loader     Loader
	moviesURI  string
	creditsURI string

	mu        sync.Mutex
	listeners []ReloadListener
	current   Snapshot
	loaded    bool
	lastErr   error
}

// NewReloader creates a Reloader for the two source URIs.
func NewReloader(fetcher Fetcher, loader Loader, moviesURI, creditsURI string) *Reloader {
	return &Reloader{
		fetcher:    fetcher,
		loader:     loader,
		moviesURI:  moviesURI,
		creditsURI: creditsURI,
	}
}

// OnReload registers fn to run after each successful reload.
func (r *Reloader) OnReload(fn ReloadListener) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(r.listeners, fn)
}

// Sources returns the movies and credits URIs.
func (r *Reloader) Sources() (movies, credits string) {
	return r.moviesURI, r.creditsURI
}

// LastError returns the error of the most recent reload, or nil.
func (r *Reloader) LastError() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastErr
}

// Reload fetches and loads both sources unconditionally.
func (r *Reloader) Reload(ctx context.Context, trigger string) (ReloadResult, error) {
	return r.reload(ctx, trigger, true)
}

// Refresh fetches both sources and reloads only if one of them changed,
// nothing has been loaded yet, or the previous reload failed. Fetch state
// is recorded before the load runs, so a failed load is retried even when
// the sources now report no change.
func (r *Reloader) Refresh(ctx context.Context, trigger string) (ReloadResult, error) {
	return r.reload(ctx, trigger, false)
}

func (r *Reloader) reload(ctx context.Context, trigger string, force bool) (ReloadResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	logger := logging.Ctx(ctx).With().Str("trigger", trigger).Logger()
	start := time.Now()

	movies, err := r.fetcher.Fetch(ctx, "movies", r.moviesURI)
	if err != nil {
		return r.fail(trigger, start, fmt.Errorf("fetch movies source: %w", err))
	}
	credits, err := r.fetcher.Fetch(ctx, "credits", r.creditsURI)
	if err != nil {
		return r.fail(trigger, start, fmt.Errorf("fetch credits source: %w", err))
	}

	if !force && r.loaded && r.lastErr == nil && !movies.Changed && !credits.Changed {
		logger.Debug().Msg("Catalog sources unchanged, skipping reload")
		return ReloadResult{Snapshot: r.current}, nil
	}

	snap, err := r.loader.LoadCatalog(ctx, movies.Path, credits.Path)
	if err != nil {
		return r.fail(trigger, start, fmt.Errorf("load catalog: %w", err))
	}
	snap.MoviesSource = r.moviesURI
	snap.CreditsSource = r.creditsURI

	r.current = snap
	r.loaded = true
	r.lastErr = nil

	elapsed := time.Since(start)
	metrics.RecordReload(trigger, elapsed, nil)
	metrics.SetCatalogRows(snap.Movies, snap.Credits)

	logger.Info().
		Int64("movies", snap.Movies).
		Int64("credits", snap.Credits).
		Str("credits_schema", string(snap.CreditsSchema)).
		Dur("duration", elapsed).
		Msg("Catalog loaded")

	for _, fn := range r.listeners {
		fn(snap)
	}
	return ReloadResult{Snapshot: snap, Reloaded: true}, nil
}

func (r *Reloader) fail(trigger string, start time.Time, err error) (ReloadResult, error) {
	r.lastErr = err
	metrics.RecordReload(trigger, time.Since(start), err)
	logging.Error().Err(err).Str("trigger", trigger).Bool("previous_snapshot", r.loaded).Msg("Catalog reload failed")
	return ReloadResult{Snapshot: r.current}, err
}
