// Marquee - Movie Catalog Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package main

import (
	"errors"
	"fmt"

	"github.com/tomtom215/marquee/internal/api"
	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/database"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/source"
)

// app holds the components shared by serve and query.
type app struct {
	cfg      *config.Config
	state    *source.StateStore
	sources  *source.Manager
	db       *database.DB
	reloader *catalog.Reloader
	service  *catalog.Service
	handler  *api.Handler
}

// newApp wires the catalog pipeline: fetch state, source manager, DuckDB,
// reloader, query service and HTTP handler. Nothing is loaded yet.
func newApp(cfg *config.Config) (*app, error) {
	a := &app{cfg: cfg}

	state, err := source.OpenStateStore(cfg.Catalog.StatePath)
	if err != nil {
		return nil, err
	}
	a.state = state

	a.sources = source.NewManager(source.Config{
		CacheDir:           cfg.Catalog.CacheDir,
		FetchTimeout:       cfg.Catalog.FetchTimeout,
		GCSCredentialsFile: cfg.Catalog.GCSCredentialsFile,
	}, state)

	db, err := database.New(&cfg.Database)
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("initialize database: %w", err)
	}
	a.db = db

	a.reloader = catalog.NewReloader(a.sources, db, cfg.Catalog.MoviesSource, cfg.Catalog.CreditsSource)
	a.service = catalog.NewService(db, catalog.WithMinVotes(int64(cfg.Catalog.MinVotes)))
	a.handler = api.NewHandler(a.service, a.reloader, cfg)
	a.reloader.OnReload(a.handler.OnCatalogReloaded)

	return a, nil
}

// Close releases the database, source clients and fetch state.
func (a *app) Close() error {
	var errs []error
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close database: %w", err))
		}
	}
	if a.sources != nil {
		if err := a.sources.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close sources: %w", err))
		}
	}
	if a.state != nil {
		if err := a.state.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close fetch state: %w", err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		logging.Error().Err(err).Msg("Error during shutdown")
		return err
	}
	return nil
}

// watchPaths returns the local files among the configured sources.
func (a *app) watchPaths() []string {
	if !a.cfg.Catalog.Watch {
		return nil
	}
	var paths []string
	for _, uri := range []string{a.cfg.Catalog.MoviesSource, a.cfg.Catalog.CreditsSource} {
		if p, ok := source.LocalPath(uri); ok {
			paths = append(paths, p)
		}
	}
	return paths
}
