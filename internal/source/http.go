// Marquee - Movie Catalog Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
)

const breakerName = "source-http"

// HTTPStatusError is returned for responses other than 200 and 304.
type HTTPStatusError struct {
	URL        string
	StatusCode int
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d", e.URL, e.StatusCode)
}

// HTTPFetcher downloads sources over HTTP with conditional requests behind a
// circuit breaker.
//
// The breaker uses real time (via sony/gobreaker) for its interval and
// timeout; tests exercise the fetcher through httpmock, not the breaker clock.
type HTTPFetcher struct {
	client *http.Client
	cb     *gobreaker.CircuitBreaker[fetchResult]
}

// NewHTTPFetcher creates a fetcher. timeout bounds each request.
// Circuit breaker configuration:
// - Max 1 request in half-open state
// - 5 minute measurement window
// - 1 minute timeout before attempting recovery
// - Opens after 3 consecutive failures
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(breakerName).Set(0)

	cb := gobreaker.NewCircuitBreaker[fetchResult](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Interval:    5 * time.Minute,
		Timeout:     time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			trip := counts.ConsecutiveFailures >= 3
			if trip {
				logging.Warn().Uint32("consecutive_failures", counts.ConsecutiveFailures).Msg("[CIRCUIT BREAKER] Opening circuit")
			}
			return trip
		},
		// A cancelled caller says nothing about the upstream's health.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr, toStr := stateToString(from), stateToString(to)
			logging.Info().Str("breaker", name).Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},
	})

	return &HTTPFetcher{
		client: &http.Client{Timeout: timeout},
		cb:     cb,
	}
}

// Client returns the underlying HTTP client.
func (f *HTTPFetcher) Client() *http.Client { return f.client }

// Fetch downloads uri into dest unless the server reports it unchanged
// relative to prev.
func (f *HTTPFetcher) Fetch(ctx context.Context, uri, dest string, prev *State) (fetchResult, error) {
	res, err := f.cb.Execute(func() (fetchResult, error) {
		return f.get(ctx, uri, dest, prev)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "rejected").Inc()
		} else {
			metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "failure").Inc()
			metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(breakerName).Set(float64(f.cb.Counts().ConsecutiveFailures))
		}
		return fetchResult{}, err
	}
	metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "success").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(breakerName).Set(0)
	return res, nil
}

func (f *HTTPFetcher) get(ctx context.Context, uri, dest string, prev *State) (fetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, http.NoBody)
	if err != nil {
		return fetchResult{}, fmt.Errorf("build request: %w", err)
	}

	// Conditional headers only make sense while the cached copy still exists.
	conditional := prev != nil && fileExists(prev.LocalPath)
	if conditional {
		if prev.ETag != "" {
			req.Header.Set("If-None-Match", prev.ETag)
		}
		if prev.LastModified != "" {
			req.Header.Set("If-Modified-Since", prev.LastModified)
		}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return fetchResult{}, err
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	now := time.Now().UTC()
	switch {
	case resp.StatusCode == http.StatusNotModified && conditional:
		st := *prev
		st.FetchedAt = now
		return fetchResult{state: &st}, nil
	case resp.StatusCode != http.StatusOK:
		return fetchResult{}, &HTTPStatusError{URL: uri, StatusCode: resp.StatusCode}
	}

	sum, size, err := writeAtomic(dest, resp.Body)
	if err != nil {
		return fetchResult{}, err
	}

	st := &State{
		URI:          uri,
		LocalPath:    dest,
		ETag:         resp.Header.Get("ETag"),
		LastModified: resp.Header.Get("Last-Modified"),
		SHA256:       sum,
		Size:         size,
		FetchedAt:    now,
	}
	changed := prev == nil || prev.SHA256 != sum || prev.LocalPath != dest
	return fetchResult{state: st, changed: changed, downloaded: true}, nil
}

// stateToFloat converts circuit breaker state to numeric value for metrics
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// stateToString converts circuit breaker state to string for logging
func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
