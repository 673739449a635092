// Marquee - Movie Catalog Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package source

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
)

var (
	// ErrUnsupportedScheme is returned for URIs other than file, http(s) and gs.
	ErrUnsupportedScheme = errors.New("unsupported source scheme")
	// ErrClosed is returned by Cloud Storage fetches after Close.
	ErrClosed = errors.New("source manager closed")
)

// Fetch results, used as metric labels.
const (
	resultDownloaded  = "downloaded"
	resultNotModified = "not_modified"
	resultLocal       = "local"
	resultError       = "error"
)

// Config configures a Manager.
type Config struct {
	CacheDir     string
	FetchTimeout time.Duration
	// GCSCredentialsFile is optional; empty uses application default credentials.
	GCSCredentialsFile string
}

// Manager implements catalog.Fetcher over local, HTTP and Cloud Storage sources.
type Manager struct {
	cfg   Config
	state *StateStore
	http  *HTTPFetcher

	gcsOnce sync.Once
	gcs     *GCSFetcher
	gcsErr  error
	// newGCS builds the Cloud Storage fetcher on first use.
	newGCS func(ctx context.Context) (*GCSFetcher, error)
}

var _ catalog.Fetcher = (*Manager)(nil)

// NewManager creates a Manager. The HTTP fetcher is created eagerly; the
// Cloud Storage client only when a gs:// URI is first fetched.
func NewManager(cfg Config, state *StateStore) *Manager {
	m := &Manager{
		cfg:   cfg,
		state: state,
		http:  NewHTTPFetcher(cfg.FetchTimeout),
	}
	m.newGCS = func(ctx context.Context) (*GCSFetcher, error) {
		return NewGCSFetcher(ctx, cfg.GCSCredentialsFile)
	}
	return m
}

// HTTP returns the HTTP fetcher, for tests that need to swap its client.
func (m *Manager) HTTP() *HTTPFetcher { return m.http }

// Close releases the Cloud Storage client if one was created. It waits
// for a client creation already in progress; later gs:// fetches fail
// with ErrClosed.
func (m *Manager) Close() error {
	m.gcsOnce.Do(func() { m.gcsErr = ErrClosed })
	if m.gcs != nil {
		return m.gcs.Close()
	}
	return nil
}

// Scheme returns the URI scheme, "file" for plain paths.
func Scheme(uri string) string {
	if i := strings.Index(uri, "://"); i > 0 {
		return strings.ToLower(uri[:i])
	}
	return "file"
}

// LocalPath returns the filesystem path for plain paths and file:// URIs.
func LocalPath(uri string) (string, bool) {
	switch Scheme(uri) {
	case "file":
		if strings.HasPrefix(uri, "file://") {
			u, err := url.Parse(uri)
			if err != nil {
				return "", false
			}
			return filepath.FromSlash(u.Path), true
		}
		return uri, true
	default:
		return "", false
	}
}

// Fetch makes uri available as a local file. name labels the source in
// logs and metrics ("movies" or "credits").
func (m *Manager) Fetch(ctx context.Context, name, uri string) (catalog.FetchedFile, error) {
	start := time.Now()
	scheme := Scheme(uri)

	prev, err := m.state.Get(uri)
	switch {
	case errors.Is(err, ErrStateNotFound):
		prev = nil
	case err != nil:
		return catalog.FetchedFile{}, err
	}

	var res fetchResult
	switch scheme {
	case "file":
		res, err = m.fetchLocal(uri, prev)
	case "http", "https":
		ctx, cancel := context.WithTimeout(ctx, m.cfg.FetchTimeout)
		defer cancel()
		res, err = m.http.Fetch(ctx, uri, m.cachePath(name, uri), prev)
	case "gs":
		var g *GCSFetcher
		if g, err = m.gcsFetcher(ctx); err == nil {
			ctx, cancel := context.WithTimeout(ctx, m.cfg.FetchTimeout)
			defer cancel()
			res, err = g.Fetch(ctx, uri, m.cachePath(name, uri), prev)
		}
	default:
		err = fmt.Errorf("%w: %q", ErrUnsupportedScheme, scheme)
	}

	if err != nil {
		metrics.RecordSourceFetch(name, scheme, resultError, time.Since(start), 0)
		return catalog.FetchedFile{}, fmt.Errorf("fetch %s source %s: %w", name, uri, err)
	}

	result := resultLocal
	if scheme != "file" {
		result = resultNotModified
		if res.downloaded {
			result = resultDownloaded
		}
	}
	var bytes int64
	if res.downloaded {
		bytes = res.state.Size
	}
	metrics.RecordSourceFetch(name, scheme, result, time.Since(start), bytes)
	next := res.state

	if err := m.state.Put(next); err != nil {
		logging.Warn().Err(err).Str("uri", uri).Msg("Failed to persist fetch state")
	}

	logging.Debug().
		Str("source", name).
		Str("uri", uri).
		Str("path", next.LocalPath).
		Str("result", result).
		Bool("changed", res.changed).
		Msg("Source fetched")

	return catalog.FetchedFile{Path: next.LocalPath, Changed: res.changed}, nil
}

func (m *Manager) gcsFetcher(ctx context.Context) (*GCSFetcher, error) {
	m.gcsOnce.Do(func() {
		m.gcs, m.gcsErr = m.newGCS(ctx)
	})
	return m.gcs, m.gcsErr
}

// fetchResult is what a scheme-specific fetch reports back.
type fetchResult struct {
	state   *State
	changed bool
	// downloaded is true when a body was transferred.
	downloaded bool
}

// fetchLocal stats a local file; it changed when size or mtime moved.
func (m *Manager) fetchLocal(uri string, prev *State) (fetchResult, error) {
	p, _ := LocalPath(uri)
	info, err := os.Stat(p)
	if err != nil {
		return fetchResult{}, err
	}
	if info.IsDir() {
		return fetchResult{}, fmt.Errorf("%s is a directory", p)
	}
	next := &State{
		URI:       uri,
		LocalPath: p,
		Size:      info.Size(),
		ModTime:   info.ModTime().UTC(),
		FetchedAt: time.Now().UTC(),
	}
	changed := prev == nil || prev.LocalPath != p || prev.Size != next.Size || !prev.ModTime.Equal(next.ModTime)
	return fetchResult{state: next, changed: changed}, nil
}

// cachePath is the download target for a remote URI inside the cache dir.
func (m *Manager) cachePath(name, uri string) string {
	sum := sha256.Sum256([]byte(uri))
	ext := ".csv"
	if u, err := url.Parse(uri); err == nil {
		if e := path.Ext(u.Path); e != "" && len(e) <= 5 {
			ext = e
		}
	}
	return filepath.Join(m.cfg.CacheDir, fmt.Sprintf("%s-%s%s", name, hex.EncodeToString(sum[:6]), ext))
}

// writeAtomic copies r into dest through a temp file in the same directory
// and returns the SHA-256 and size of what was written.
func writeAtomic(dest string, r io.Reader) (string, int64, error) {
	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", 0, fmt.Errorf("create cache dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".fetch-*")
	if err != nil {
		return "", 0, fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	h := sha256.New()
	n, err := io.Copy(io.MultiWriter(tmp, h), r)
	if err != nil {
		_ = tmp.Close()
		return "", 0, fmt.Errorf("write %s: %w", dest, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return "", 0, fmt.Errorf("sync %s: %w", dest, err)
	}
	if err := tmp.Close(); err != nil {
		return "", 0, fmt.Errorf("close %s: %w", dest, err)
	}
	if err := os.Rename(tmpName, dest); err != nil {
		return "", 0, fmt.Errorf("rename into %s: %w", dest, err)
	}
	return hex.EncodeToString(h.Sum(nil)), n, nil
}

func fileExists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}
