// Marquee - Movie Catalog Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/middleware"
	"github.com/tomtom215/marquee/internal/models"
)

// Router wires handlers and middleware into a Chi router.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
	config        *config.Config
}

// NewRouter creates a router. A nil cfg serves every route family with
// default middleware settings.
func NewRouter(handler *Handler, cfg *config.Config) *Router {
	chiMw := NewChiMiddleware(nil)
	if cfg != nil {
		chiMw = NewChiMiddlewareFromConfig(cfg.Security)
	}
	return &Router{
		handler:       handler,
		chiMiddleware: chiMw,
		config:        cfg,
	}
}

// chiMiddleware adapts http.HandlerFunc middleware to Chi's func(http.Handler) http.Handler.
func chiMiddleware(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}

func (router *Router) legacyRoutes() bool {
	return router.config == nil || router.config.API.LegacyRoutes
}

func (router *Router) swaggerEnabled() bool {
	return router.config == nil || router.config.API.SwaggerEnabled
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied in order
	r.Use(chiMiddleware(middleware.RequestID))
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(chiMiddleware(middleware.AccessLog))
	r.Use(router.chiMiddleware.CORS()) // must be global to answer OPTIONS preflight
	r.Use(chiMiddleware(middleware.Compression))

	r.NotFound(notFound)
	r.MethodNotAllowed(methodNotAllowed)

	// ========================
	// Health Endpoints
	// ========================
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Use(APISecurityHeaders())
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
		r.Get("/", router.handler.Health)
	})

	// ========================
	// Catalog Endpoints
	// ========================
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(chiMiddleware(middleware.PrometheusMetrics))

		r.Get("/releases/months/{month}", router.handler.ReleasesByMonth)
		r.Get("/releases/weekdays/{weekday}", router.handler.ReleasesByWeekday)
		r.Get("/movies/{title}/score", router.handler.MovieScore)
		r.Get("/movies/{title}/votes", router.handler.MovieVotes)
		r.Get("/actors/{name}", router.handler.Actor)
		r.Get("/directors/{name}", router.handler.Director)
		r.Get("/catalog", router.handler.Catalog)
		r.With(router.chiMiddleware.RateLimitReload()).Post("/catalog/reload", router.handler.ReloadCatalog)
	})

	// ========================
	// Legacy Endpoints
	// ========================
	if router.legacyRoutes() {
		r.Group(func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimit())
			r.Use(chiMiddleware(middleware.PrometheusMetrics))

			r.Get("/cantidad_filmaciones_mes/{mes}", router.handler.LegacyMonth)
			r.Get("/cantidad_filmaciones_dia/{dia}", router.handler.LegacyWeekday)
			r.Get("/score_titulo/{titulo}", router.handler.LegacyScore)
			r.Get("/votos_titulo/{titulo}", router.handler.LegacyVotes)
			r.Get("/get_actor/{nombre}", router.handler.LegacyActor)
			r.Get("/get_director/{nombre}", router.handler.LegacyDirector)
		})
	}

	r.Handle("/metrics", promhttp.Handler())

	if router.swaggerEnabled() {
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
			httpSwagger.DeepLinking(true),
			httpSwagger.DocExpansion("list"),
			httpSwagger.DomID("swagger-ui"),
		))
	}

	return r
}

func notFound(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusNotFound, &models.APIResponse{
		Status:   "error",
		Metadata: models.Metadata{Timestamp: time.Now()},
		Error: &models.APIError{
			Code:    ErrCodeNotFound,
			Message: "No route for " + sanitizeLogValue(r.URL.Path),
		},
	})
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusMethodNotAllowed, &models.APIResponse{
		Status:   "error",
		Metadata: models.Metadata{Timestamp: time.Now()},
		Error: &models.APIError{
			Code:    ErrCodeMethodNotAllowed,
			Message: r.Method + " is not allowed on this route",
		},
	})
}
