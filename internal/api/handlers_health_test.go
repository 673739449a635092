// Marquee - Movie Catalog Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"errors"
	"net/http"
	"testing"

	"github.com/tomtom215/marquee/internal/models"
)

func TestHealth(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*fakeStore)
		wantStatus string
		wantDB     bool
		wantLoaded bool
	}{
		{"healthy", nil, "healthy", true, true},
		{"not loaded", func(s *fakeStore) { s.loaded = false }, "degraded", true, false},
		{"database down", func(s *fakeStore) { s.pingErr = errors.New("closed") }, "degraded", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore()
			if tt.mutate != nil {
				tt.mutate(store)
			}
			srv := newTestServer(t, store, &fakeReloader{lastErr: errors.New("stale")}, nil)

			rec := srv.get(t, "/api/v1/health")
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rec.Code)
			}
			var health models.HealthStatus
			decodeData(t, decodeEnvelope(t, rec), &health)
			if health.Status != tt.wantStatus {
				t.Errorf("status = %q, want %q", health.Status, tt.wantStatus)
			}
			if health.DatabaseConnected != tt.wantDB || health.CatalogLoaded != tt.wantLoaded {
				t.Errorf("health = %+v", health)
			}
			if tt.wantLoaded && health.LastReload == nil {
				t.Error("last_reload missing for a loaded catalog")
			}
			if health.LastReloadError != "stale" {
				t.Errorf("last_reload_error = %q", health.LastReloadError)
			}
			if health.Version != Version {
				t.Errorf("version = %q, want %q", health.Version, Version)
			}
		})
	}
}

func TestHealthLive(t *testing.T) {
	store := newFakeStore()
	store.loaded = false
	srv := newTestServer(t, store, nil, nil)

	rec := srv.get(t, "/api/v1/health/live")
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 regardless of catalog state", rec.Code)
	}
}

func TestHealthReady(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*fakeStore)
		wantCode int
		want     string
	}{
		{"ready", nil, http.StatusOK, "ready"},
		{"not loaded", func(s *fakeStore) { s.loaded = false }, http.StatusServiceUnavailable, "not_ready"},
		{"database down", func(s *fakeStore) { s.pingErr = errors.New("closed") }, http.StatusServiceUnavailable, "not_ready"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore()
			if tt.mutate != nil {
				tt.mutate(store)
			}
			srv := newTestServer(t, store, nil, nil)

			rec := srv.get(t, "/api/v1/health/ready")
			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			if env := decodeEnvelope(t, rec); env.Status != tt.want {
				t.Errorf("status = %q, want %q", env.Status, tt.want)
			}
		})
	}
}
