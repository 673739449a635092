// Marquee - Movie Catalog Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package source

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	return NewManager(Config{CacheDir: t.TempDir(), FetchTimeout: 5 * time.Second}, newTestState(t))
}

func TestScheme(t *testing.T) {
	tests := map[string]string{
		"data/movies.csv":           "file",
		"/abs/movies.csv":           "file",
		"file:///abs/movies.csv":    "file",
		"https://example.org/m.csv": "https",
		"HTTP://example.org/m.csv":  "http",
		"gs://bucket/m.csv":         "gs",
		"s3://bucket/m.csv":         "s3",
	}
	for in, want := range tests {
		if got := Scheme(in); got != want {
			t.Errorf("Scheme(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLocalPath(t *testing.T) {
	if p, ok := LocalPath("file:///srv/data/credits.csv"); !ok || p != filepath.FromSlash("/srv/data/credits.csv") {
		t.Errorf("LocalPath(file URI) = %q, %v", p, ok)
	}
	if p, ok := LocalPath("data/credits.csv"); !ok || p != "data/credits.csv" {
		t.Errorf("LocalPath(relative) = %q, %v", p, ok)
	}
	if _, ok := LocalPath("https://example.org/c.csv"); ok {
		t.Error("LocalPath(https) should be false")
	}
}

func TestManager_FetchLocal(t *testing.T) {
	m := newTestManager(t)
	path := filepath.Join(t.TempDir(), "movies.csv")
	if err := os.WriteFile(path, []byte("id,title\n1,A\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	first, err := m.Fetch(ctx, "movies", path)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if first.Path != path || !first.Changed {
		t.Errorf("first Fetch() = %+v, want changed local path", first)
	}

	second, err := m.Fetch(ctx, "movies", path)
	if err != nil {
		t.Fatal(err)
	}
	if second.Changed {
		t.Error("second Fetch() of untouched file should not be changed")
	}

	if err := os.WriteFile(path, []byte("id,title\n1,A\n2,B\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	third, err := m.Fetch(ctx, "movies", "file://"+filepath.ToSlash(path))
	if err != nil {
		t.Fatal(err)
	}
	if !third.Changed {
		t.Error("Fetch() after rewrite should be changed")
	}
}

func TestManager_FetchErrors(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	if _, err := m.Fetch(ctx, "movies", "s3://bucket/m.csv"); !errors.Is(err, ErrUnsupportedScheme) {
		t.Errorf("s3 error = %v, want ErrUnsupportedScheme", err)
	}
	if _, err := m.Fetch(ctx, "movies", filepath.Join(t.TempDir(), "missing.csv")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file error = %v, want os.ErrNotExist", err)
	}
	if _, err := m.Fetch(ctx, "movies", t.TempDir()); err == nil {
		t.Error("directory source should fail")
	}
}

func TestManager_CachePath(t *testing.T) {
	m := newTestManager(t)
	a := m.cachePath("movies", "https://example.org/a/movies.csv")
	b := m.cachePath("movies", "https://example.org/b/movies.csv")
	if a == b {
		t.Error("different URIs should map to different cache files")
	}
	if !strings.HasPrefix(filepath.Base(a), "movies-") || filepath.Ext(a) != ".csv" {
		t.Errorf("cachePath = %q", a)
	}
	if ext := filepath.Ext(m.cachePath("credits", "https://drive.example/uc?id=1")); ext != ".csv" {
		t.Errorf("extension for query-only URL = %q, want .csv", ext)
	}
}

func TestWriteAtomic(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "nested", "out.csv")
	sum, n, err := writeAtomic(dest, strings.NewReader("abc"))
	if err != nil {
		t.Fatal(err)
	}
	// sha256("abc")
	if sum != "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad" || n != 3 {
		t.Errorf("writeAtomic() = %s, %d", sum, n)
	}
	entries, err := os.ReadDir(filepath.Dir(dest))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("temp file left behind: %v", entries)
	}
}
