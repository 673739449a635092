// Marquee - Movie Catalog Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"context"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
)

// Version is reported by the health endpoint. Set at build time.
var Version = "dev"

// CatalogReloader triggers catalog reloads. Satisfied by *catalog.Reloader.
type CatalogReloader interface {
	Reload(ctx context.Context, trigger string) (catalog.ReloadResult, error)
	LastError() error
	Sources() (movies, credits string)
}

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files:
//   - handlers.go: Handler struct, constructor, cache plumbing (this file)
//   - handlers_helpers.go: response writers and request helpers
//   - handlers_health.go: health and readiness probes
//   - handlers_catalog.go: /api/v1 catalog queries and reload
//   - handlers_legacy.go: original Spanish routes
type Handler struct {
	service   *catalog.Service
	reloader  CatalogReloader
	config    *config.Config
	cache     *gocache.Cache
	startTime time.Time

	// cacheMu orders flushes against stores; cacheGen counts flushes.
	cacheMu  sync.Mutex
	cacheGen uint64
}

// NewHandler creates a handler. reloader may be nil, in which case the
// reload endpoint answers 503.
//
// Example:
//
//	handler := api.NewHandler(service, reloader, cfg)
//	reloader.OnReload(handler.OnCatalogReloaded)
//	router := api.NewRouter(handler, cfg)
//	http.ListenAndServe(cfg.Server.ListenAddr(), router.SetupChi())
func NewHandler(service *catalog.Service, reloader CatalogReloader, cfg *config.Config) *Handler {
	ttl := 5 * time.Minute
	if cfg != nil && cfg.API.CacheTTL > 0 {
		ttl = cfg.API.CacheTTL
	}
	return &Handler{
		service:   service,
		reloader:  reloader,
		config:    cfg,
		cache:     gocache.New(ttl, 2*ttl),
		startTime: time.Now(),
	}
}

// ClearCache drops every cached query result.
func (h *Handler) ClearCache() {
	if h.cache == nil {
		return
	}
	h.cacheMu.Lock()
	h.cacheGen++
	h.cache.Flush()
	h.cacheMu.Unlock()
	metrics.CacheFlushes.Inc()
	logging.Debug().Msg("Query cache cleared")
}

// OnCatalogReloaded is registered with the reloader so that cached answers
// never outlive the tables they were computed from.
func (h *Handler) OnCatalogReloaded(snap catalog.Snapshot) {
	h.ClearCache()
	logging.Info().
		Int64("movies", snap.Movies).
		Int64("credits", snap.Credits).
		Msg("Query cache invalidated after catalog reload")
}

// cacheName labels query-cache metrics.
const cacheName = "query"

// cached returns the cached result for op and key, or computes and stores it.
// Errors are never cached, nor are results computed across a flush. The
// bool reports a cache hit.
func cached[T any](h *Handler, op, key string, fn func() (T, error)) (T, bool, error) {
	cacheKey := op + ":" + key
	if h.cache != nil {
		if v, ok := h.cache.Get(cacheKey); ok {
			if res, ok := v.(T); ok {
				metrics.RecordCacheLookup(cacheName, true)
				return res, true, nil
			}
		}
	}
	metrics.RecordCacheLookup(cacheName, false)

	h.cacheMu.Lock()
	gen := h.cacheGen
	h.cacheMu.Unlock()

	res, err := fn()
	if err != nil {
		return res, false, err
	}
	if h.cache != nil {
		h.cacheMu.Lock()
		if h.cacheGen == gen {
			h.cache.SetDefault(cacheKey, res)
		}
		h.cacheMu.Unlock()
	}
	return res, false, nil
}
