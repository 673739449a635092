// Marquee - Movie Catalog Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration.
//
// Categories:
//   - Catalog: where the movies and credits tables come from and how they refresh
//   - Database: DuckDB settings for the query engine
//   - Server, API, Security: HTTP surface
//   - Logging: zerolog output
//
// Config is immutable after Load() and safe for concurrent reads.
type Config struct {
	Catalog  CatalogConfig  `koanf:"catalog"`
	Database DatabaseConfig `koanf:"database"`
	Server   ServerConfig   `koanf:"server"`
	API      APIConfig      `koanf:"api"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// CatalogConfig describes the two source tables and their refresh policy.
type CatalogConfig struct {
	// MoviesSource is a local path, file://, http(s):// or gs:// URI.
	MoviesSource string `koanf:"movies_source"`

	// CreditsSource is a local path, file://, http(s):// or gs:// URI.
	CreditsSource string `koanf:"credits_source"`

	// CacheDir receives downloaded copies of remote sources.
	CacheDir string `koanf:"cache_dir"`

	// StatePath is the BadgerDB directory for fetch state (ETag, checksums).
	// Empty keeps the state in memory only.
	StatePath string `koanf:"state_path"`

	// RefreshInterval re-fetches remote sources periodically. 0 disables.
	RefreshInterval time.Duration `koanf:"refresh_interval"`

	// Watch reloads when local source files change.
	Watch bool `koanf:"watch"`

	// WatchDebounce batches bursts of file events into one reload.
	WatchDebounce time.Duration `koanf:"watch_debounce"`

	// MinReloadInterval throttles automatic reloads.
	MinReloadInterval time.Duration `koanf:"min_reload_interval"`

	// FetchTimeout bounds a single remote download.
	FetchTimeout time.Duration `koanf:"fetch_timeout"`

	// MinVotes is the vote count a title needs before its rating is reported.
	MinVotes int `koanf:"min_votes"`

	// GCSCredentialsFile is a service account key for gs:// sources.
	// Empty uses application default credentials.
	GCSCredentialsFile string `koanf:"gcs_credentials_file"`
}

// DatabaseConfig configures the embedded DuckDB engine.
type DatabaseConfig struct {
	// Path is ":memory:" or a DuckDB file path.
	Path string `koanf:"path"`

	// MaxMemory is a DuckDB memory limit such as "1GB".
	MaxMemory string `koanf:"max_memory"`

	// Threads is the DuckDB worker count; 0 uses runtime.NumCPU().
	Threads int `koanf:"threads"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"`
}

// APIConfig configures response behaviour.
type APIConfig struct {
	// CacheTTL is how long query results stay cached. 0 disables caching.
	CacheTTL time.Duration `koanf:"cache_ttl"`

	// LegacyRoutes mounts the original /cantidad_filmaciones_mes/... routes.
	LegacyRoutes bool `koanf:"legacy_routes"`

	// SwaggerEnabled mounts the Swagger UI under /swagger/.
	SwaggerEnabled bool `koanf:"swagger_enabled"`
}

// SecurityConfig holds CORS and rate limiting settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig mirrors logging.Config.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// ListenAddr returns host:port for http.Server.
func (s ServerConfig) ListenAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// IsProduction reports whether ENVIRONMENT=production.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// Load reads configuration from defaults, file and environment.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
