// Marquee - Movie Catalog Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package metrics

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordDBQuery(t *testing.T) {
	before := testutil.ToFloat64(DBQueryErrors.WithLabelValues("count_month", "boom"))
	RecordDBQuery("count_month", 2*time.Millisecond, nil)
	RecordDBQuery("count_month", 3*time.Millisecond, errors.New("boom"))

	if got := testutil.ToFloat64(DBQueryErrors.WithLabelValues("count_month", "boom")); got != before+1 {
		t.Errorf("error counter = %v, want %v", got, before+1)
	}
}

func TestRecordDBQuery_TruncatesErrorLabel(t *testing.T) {
	long := strings.Repeat("x", 80)
	RecordDBQuery("truncate_check", time.Millisecond, errors.New(long))

	if got := testutil.ToFloat64(DBQueryErrors.WithLabelValues("truncate_check", long[:50])); got != 1 {
		t.Errorf("truncated label counter = %v, want 1", got)
	}
}

func TestRecordAPIRequest(t *testing.T) {
	c := APIRequestsTotal.WithLabelValues("GET", "/api/v1/actors/{name}", "200")
	before := testutil.ToFloat64(c)
	RecordAPIRequest("GET", "/api/v1/actors/{name}", "200", 5*time.Millisecond)
	if got := testutil.ToFloat64(c); got != before+1 {
		t.Errorf("api_requests_total = %v, want %v", got, before+1)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("active = %v, want %v", got, before+1)
	}
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("active = %v, want %v", got, before)
	}
}

func TestRecordCacheLookup(t *testing.T) {
	hits := testutil.ToFloat64(CacheHits.WithLabelValues("test"))
	misses := testutil.ToFloat64(CacheMisses.WithLabelValues("test"))
	RecordCacheLookup("test", true)
	RecordCacheLookup("test", false)
	RecordCacheLookup("test", false)

	if got := testutil.ToFloat64(CacheHits.WithLabelValues("test")); got != hits+1 {
		t.Errorf("hits = %v, want %v", got, hits+1)
	}
	if got := testutil.ToFloat64(CacheMisses.WithLabelValues("test")); got != misses+2 {
		t.Errorf("misses = %v, want %v", got, misses+2)
	}
}

func TestRecordReload(t *testing.T) {
	ok := testutil.ToFloat64(ReloadsTotal.WithLabelValues("test", "success"))
	fail := testutil.ToFloat64(ReloadsTotal.WithLabelValues("test", "failure"))

	RecordReload("test", time.Second, nil)
	RecordReload("test", time.Second, errors.New("fetch failed"))

	if got := testutil.ToFloat64(ReloadsTotal.WithLabelValues("test", "success")); got != ok+1 {
		t.Errorf("success = %v, want %v", got, ok+1)
	}
	if got := testutil.ToFloat64(ReloadsTotal.WithLabelValues("test", "failure")); got != fail+1 {
		t.Errorf("failure = %v, want %v", got, fail+1)
	}
	if testutil.ToFloat64(ReloadLastSuccess) == 0 {
		t.Error("last success timestamp not set")
	}
}

func TestSetCatalogRows(t *testing.T) {
	SetCatalogRows(45000, 44000)
	if got := testutil.ToFloat64(CatalogRows.WithLabelValues("movies")); got != 45000 {
		t.Errorf("movies rows = %v", got)
	}
	if got := testutil.ToFloat64(CatalogRows.WithLabelValues("credits")); got != 44000 {
		t.Errorf("credits rows = %v", got)
	}
}

func TestRecordSourceFetch(t *testing.T) {
	bytes := testutil.ToFloat64(SourceBytes.WithLabelValues("https"))
	RecordSourceFetch("movies", "https", "downloaded", time.Second, 1024)
	RecordSourceFetch("movies", "https", "not_modified", time.Second, 0)

	if got := testutil.ToFloat64(SourceBytes.WithLabelValues("https")); got != bytes+1024 {
		t.Errorf("bytes = %v, want %v", got, bytes+1024)
	}
	if got := testutil.ToFloat64(SourceFetchTotal.WithLabelValues("movies", "not_modified")); got < 1 {
		t.Errorf("not_modified count = %v", got)
	}
}
