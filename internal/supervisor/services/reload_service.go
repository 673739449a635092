// Marquee - Movie Catalog Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tomtom215/marquee/internal/catalog"
)

// CatalogRefresher reloads the catalog when its sources changed.
// Satisfied by *catalog.Reloader.
type CatalogRefresher interface {
	Refresh(ctx context.Context, trigger string) (catalog.ReloadResult, error)
}

// ReloadServiceConfig holds configuration for the reload service.
type ReloadServiceConfig struct {
	// WatchPaths are local source files to watch. Empty disables watching.
	WatchPaths []string

	// Debounce is how long the file must stay quiet before a reload.
	// Default: 500ms
	Debounce time.Duration

	// RefreshInterval is how often to check all sources. Zero disables it.
	RefreshInterval time.Duration

	// MinReloadInterval is the minimum spacing of watch-triggered reloads.
	// Zero disables throttling.
	MinReloadInterval time.Duration

	// Timeout bounds a single refresh.
	// Default: 5m
	Timeout time.Duration
}

// ReloadService keeps the catalog in sync with its sources.
type ReloadService struct {
	refresher CatalogRefresher
	config    ReloadServiceConfig
	limiter   *rate.Limiter
	logger    zerolog.Logger
	name      string
}

// NewReloadService creates a new reload service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewReloadService(refresher CatalogRefresher, cfg ReloadServiceConfig, logger zerolog.Logger) *ReloadService {
	if cfg.Debounce <= 0 {
		cfg.Debounce = 500 * time.Millisecond
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Minute
	}
	limit := rate.Inf
	if cfg.MinReloadInterval > 0 {
		limit = rate.Every(cfg.MinReloadInterval)
	}
	return &ReloadService{
		refresher: refresher,
		config:    cfg,
		limiter:   rate.NewLimiter(limit, 1),
		logger:    logger.With().Str("service", "reload").Logger(),
		name:      "catalog-reload",
	}
}

// Serve implements suture.Service.
func (s *ReloadService) Serve(ctx context.Context) error {
	var events <-chan fsnotify.Event
	var watchErrs <-chan error
	targets := make(map[string]struct{}, len(s.config.WatchPaths))

	if len(s.config.WatchPaths) > 0 {
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("create file watcher: %w", err)
		}
		defer func() { _ = watcher.Close() }()

		// Watch directories so files replaced by rename are still seen.
		dirs := make(map[string]struct{})
		for _, p := range s.config.WatchPaths {
			abs, err := filepath.Abs(p)
			if err != nil {
				return fmt.Errorf("resolve %s: %w", p, err)
			}
			targets[abs] = struct{}{}
			dirs[filepath.Dir(abs)] = struct{}{}
		}
		for dir := range dirs {
			if err := watcher.Add(dir); err != nil {
				return fmt.Errorf("watch %s: %w", dir, err)
			}
		}
		events, watchErrs = watcher.Events, watcher.Errors
	}

	var tick <-chan time.Time
	if s.config.RefreshInterval > 0 {
		ticker := time.NewTicker(s.config.RefreshInterval)
		defer ticker.Stop()
		tick = ticker.C
	}

	s.logger.Info().
		Strs("watch", s.config.WatchPaths).
		Dur("refresh_interval", s.config.RefreshInterval).
		Msg("reload service running")

	debounce := time.NewTimer(time.Hour)
	debounce.Stop()
	defer debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("reload service shutting down")
			return ctx.Err()

		case ev, ok := <-events:
			if !ok {
				return errors.New("file watcher closed")
			}
			if !relevant(ev) {
				continue
			}
			if _, ok := targets[filepath.Clean(ev.Name)]; !ok {
				continue
			}
			s.logger.Debug().Str("file", ev.Name).Str("op", ev.Op.String()).Msg("source file changed")
			debounce.Reset(s.config.Debounce)

		case err, ok := <-watchErrs:
			if !ok {
				return errors.New("file watcher closed")
			}
			s.logger.Warn().Err(err).Msg("file watcher error")

		case <-debounce.C:
			if d := s.throttle(); d > 0 {
				s.logger.Debug().Dur("delay", d).Msg("reload throttled")
				debounce.Reset(d)
				continue
			}
			s.refresh(ctx, catalog.TriggerWatch)

		case <-tick:
			s.refresh(ctx, catalog.TriggerInterval)
		}
	}
}

// throttle takes a token for a watch reload, or returns how long to wait.
func (s *ReloadService) throttle() time.Duration {
	r := s.limiter.Reserve()
	d := r.Delay()
	if d > 0 {
		r.Cancel()
	}
	return d
}

func (s *ReloadService) refresh(ctx context.Context, trigger string) {
	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	res, err := s.refresher.Refresh(ctx, trigger)
	if err != nil {
		// The reloader already logged and counted the failure.
		s.logger.Debug().Err(err).Str("trigger", trigger).Msg("refresh failed, keeping current catalog")
		return
	}
	if res.Reloaded {
		s.logger.Debug().
			Str("trigger", trigger).
			Int64("movies", res.Snapshot.Movies).
			Int64("credits", res.Snapshot.Credits).
			Msg("catalog refreshed")
	}
}

func relevant(ev fsnotify.Event) bool {
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename)
}

// String returns the service name for logging.
func (s *ReloadService) String() string {
	return s.name
}
