// Marquee - Movie Catalog Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Validate checks the whole configuration.
func (c *Config) Validate() error {
	if err := c.validateCatalog(); err != nil {
		return err
	}
	if err := c.validateDatabase(); err != nil {
		return err
	}
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateAPI(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateCatalog() error {
	if err := validateSource("catalog.movies_source", c.Catalog.MoviesSource); err != nil {
		return err
	}
	if err := validateSource("catalog.credits_source", c.Catalog.CreditsSource); err != nil {
		return err
	}
	if c.Catalog.MinVotes < 0 {
		return fmt.Errorf("catalog.min_votes must be >= 0, got %d", c.Catalog.MinVotes)
	}
	if c.Catalog.RefreshInterval < 0 {
		return fmt.Errorf("catalog.refresh_interval must be >= 0")
	}
	if c.Catalog.RefreshInterval > 0 && c.Catalog.RefreshInterval < time.Second {
		return fmt.Errorf("catalog.refresh_interval must be at least 1s when enabled")
	}
	if c.Catalog.WatchDebounce < 0 || c.Catalog.MinReloadInterval < 0 {
		return fmt.Errorf("catalog watch durations must be >= 0")
	}
	if c.Catalog.FetchTimeout <= 0 {
		return fmt.Errorf("catalog.fetch_timeout must be > 0")
	}
	if c.Catalog.CacheDir == "" && (isRemote(c.Catalog.MoviesSource) || isRemote(c.Catalog.CreditsSource)) {
		return fmt.Errorf("catalog.cache_dir is required for remote sources")
	}
	return nil
}

// validateSource accepts plain paths and file, http, https and gs URIs.
func validateSource(field, src string) error {
	if strings.TrimSpace(src) == "" {
		return fmt.Errorf("%s is required", field)
	}
	if !strings.Contains(src, "://") {
		return nil
	}
	u, err := url.Parse(src)
	if err != nil {
		return fmt.Errorf("%s is not a valid URI: %w", field, err)
	}
	switch u.Scheme {
	case "file":
		if u.Path == "" {
			return fmt.Errorf("%s: file URI has no path", field)
		}
	case "http", "https":
		if u.Host == "" {
			return fmt.Errorf("%s: URL has no host", field)
		}
	case "gs":
		if u.Host == "" || strings.Trim(u.Path, "/") == "" {
			return fmt.Errorf("%s: gs URI must be gs://bucket/object", field)
		}
	default:
		return fmt.Errorf("%s: unsupported scheme %q (use file, http, https or gs)", field, u.Scheme)
	}
	return nil
}

func isRemote(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") || strings.HasPrefix(src, "gs://")
}

func (c *Config) validateDatabase() error {
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if c.Database.Threads < 0 {
		return fmt.Errorf("database.threads must be >= 0, got %d", c.Database.Threads)
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be > 0")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server.shutdown_timeout must be > 0")
	}
	switch c.Server.Environment {
	case "development", "staging", "production":
	default:
		return fmt.Errorf("server.environment must be development, staging or production, got %q", c.Server.Environment)
	}
	return nil
}

func (c *Config) validateAPI() error {
	if c.API.CacheTTL < 0 {
		return fmt.Errorf("api.cache_ttl must be >= 0")
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 || c.Security.RateLimitReqs > 100000 {
		return fmt.Errorf("security.rate_limit_reqs must be between 1 and 100000, got %d", c.Security.RateLimitReqs)
	}
	if c.Security.RateLimitWindow < time.Second || c.Security.RateLimitWindow > time.Hour {
		return fmt.Errorf("security.rate_limit_window must be between 1s and 1h, got %s", c.Security.RateLimitWindow)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic", "off", "disabled", "":
	default:
		return fmt.Errorf("logging.level %q is not valid", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console", "":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}
	return nil
}
