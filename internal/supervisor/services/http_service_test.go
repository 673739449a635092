// Marquee - Movie Catalog Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package services

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/marquee/internal/api"
	"github.com/tomtom215/marquee/internal/config"
)

var _ suture.Service = (*HTTPServerService)(nil)

// apiServer builds the real router over a handler with no catalog, so
// liveness answers 200 and readiness 503. /slow blocks until release closes.
func apiServer(release <-chan struct{}, started chan<- struct{}) *http.Server {
	cfg := &config.Config{
		API:      config.APIConfig{CacheTTL: time.Minute},
		Security: config.SecurityConfig{RateLimitDisabled: true},
	}
	router := api.NewRouter(api.NewHandler(nil, nil, cfg), cfg).SetupChi()

	mux := http.NewServeMux()
	mux.Handle("/", router)
	mux.HandleFunc("/slow", func(w http.ResponseWriter, r *http.Request) {
		started <- struct{}{}
		<-release
		w.WriteHeader(http.StatusOK)
	})
	return &http.Server{Addr: "127.0.0.1:0", Handler: mux, ReadHeaderTimeout: time.Second}
}

func testClient(t *testing.T) *http.Client {
	t.Helper()
	tr := &http.Transport{DisableKeepAlives: true}
	t.Cleanup(tr.CloseIdleConnections)
	return &http.Client{Transport: tr, Timeout: 3 * time.Second}
}

func waitReady(t *testing.T, svc *HTTPServerService) string {
	t.Helper()
	select {
	case <-svc.Ready():
	case <-time.After(2 * time.Second):
		t.Fatal("server did not start listening")
	}
	return "http://" + svc.Addr().String()
}

func statusOf(t *testing.T, c *http.Client, url string) int {
	t.Helper()
	resp, err := c.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode
}

func TestNewHTTPServerService_DefaultTimeout(t *testing.T) {
	for _, d := range []time.Duration{0, -5 * time.Second} {
		if svc := NewHTTPServerService(&http.Server{}, d); svc.shutdownTimeout != 10*time.Second {
			t.Errorf("timeout %v -> %v, want 10s", d, svc.shutdownTimeout)
		}
	}
	if svc := NewHTTPServerService(&http.Server{}, time.Second); svc.String() != "http-server" || svc.Addr() != nil {
		t.Errorf("new service = %q, addr %v", svc.String(), svc.Addr())
	}
}

func TestHTTPServerService_ServesHealthRoutes(t *testing.T) {
	svc := NewHTTPServerService(apiServer(nil, nil), time.Second)
	stop := runService(t, svc)
	base := waitReady(t, svc)
	client := testClient(t)

	if got := statusOf(t, client, base+"/api/v1/health/live"); got != http.StatusOK {
		t.Errorf("live = %d, want 200", got)
	}
	if got := statusOf(t, client, base+"/api/v1/health/ready"); got != http.StatusServiceUnavailable {
		t.Errorf("ready without catalog = %d, want 503", got)
	}

	if err := stop(); !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() = %v, want context.Canceled", err)
	}
	if _, err := client.Get(base + "/api/v1/health/live"); err == nil {
		t.Error("server still answering after shutdown")
	}
}

func TestHTTPServerService_ShutdownDrainsInFlight(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{}, 1)
	svc := NewHTTPServerService(apiServer(release, started), 2*time.Second)
	stop := runService(t, svc)
	base := waitReady(t, svc)
	client := testClient(t)

	got := make(chan int, 1)
	go func() {
		resp, err := client.Get(base + "/slow")
		if err != nil {
			got <- 0
			return
		}
		_ = resp.Body.Close()
		got <- resp.StatusCode
	}()
	<-started

	stopped := make(chan error, 1)
	go func() { stopped <- stop() }()

	time.Sleep(50 * time.Millisecond)
	close(release)

	if code := <-got; code != http.StatusOK {
		t.Errorf("in-flight request status = %d, want 200", code)
	}
	if err := <-stopped; !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() = %v, want context.Canceled", err)
	}
}

func TestHTTPServerService_ShutdownTimeout(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{}, 1)
	svc := NewHTTPServerService(apiServer(release, started), 50*time.Millisecond)
	stop := runService(t, svc)
	base := waitReady(t, svc)
	client := testClient(t)

	done := make(chan struct{})
	go func() {
		defer close(done)
		if resp, err := client.Get(base + "/slow"); err == nil {
			_ = resp.Body.Close()
		}
	}()
	<-started

	err := stop()
	close(release)
	<-done

	if err == nil || errors.Is(err, context.Canceled) {
		t.Errorf("Serve() = %v, want shutdown failure", err)
	}
}

func TestHTTPServerService_ListenFailure(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = ln.Close() }()

	svc := NewHTTPServerService(&http.Server{Addr: ln.Addr().String(), ReadHeaderTimeout: time.Second}, time.Second)
	if err := svc.Serve(context.Background()); err == nil {
		t.Fatal("Serve() on a bound port should fail")
	}
	select {
	case <-svc.Ready():
		t.Error("Ready closed although nothing listened")
	default:
	}
}

func TestHTTPServerService_WithSupervisor(t *testing.T) {
	svc := NewHTTPServerService(apiServer(nil, nil), time.Second)

	sup := suture.New("api", suture.Spec{
		FailureThreshold: 3,
		FailureBackoff:   10 * time.Millisecond,
		Timeout:          2 * time.Second,
	})
	sup.Add(svc)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := sup.ServeBackground(ctx)

	base := waitReady(t, svc)
	if got := statusOf(t, testClient(t), base+"/api/v1/health/live"); got != http.StatusOK {
		t.Errorf("live under supervisor = %d, want 200", got)
	}

	cancel()
	<-errCh
}
