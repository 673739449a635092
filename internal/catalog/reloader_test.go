// Marquee - Movie Catalog Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

import (
	"context"
	"errors"
	"sync"
	"testing"
)

type fakeFetcher struct {
	mu      sync.Mutex
	changed bool
	err     error
	calls   int
}

func (f *fakeFetcher) Fetch(_ context.Context, name, uri string) (FetchedFile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return FetchedFile{}, f.err
	}
	return FetchedFile{Path: "/tmp/" + name + ".csv", Changed: f.changed}, nil
}

type fakeLoader struct {
	loads int
	err   error
	paths []string
}

func (l *fakeLoader) LoadCatalog(_ context.Context, movies, credits string) (Snapshot, error) {
	if l.err != nil {
		return Snapshot{}, l.err
	}
	l.loads++
	l.paths = []string{movies, credits}
	return Snapshot{Movies: int64(10 * l.loads), Credits: 5, CreditsSchema: CreditsByID}, nil
}

func TestReloader_ReloadNotifiesListeners(t *testing.T) {
	fetcher := &fakeFetcher{changed: true}
	loader := &fakeLoader{}
	r := NewReloader(fetcher, loader, "movies.csv", "gs://bucket/credits.csv")

	var got []Snapshot
	r.OnReload(func(s Snapshot) { got = append(got, s) })

	res, err := r.Reload(context.Background(), TriggerStartup)
	if err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if !res.Reloaded || res.Snapshot.Movies != 10 {
		t.Errorf("Reload() = %+v", res)
	}
	if res.Snapshot.MoviesSource != "movies.csv" || res.Snapshot.CreditsSource != "gs://bucket/credits.csv" {
		t.Errorf("sources not recorded: %+v", res.Snapshot)
	}
	if loader.paths[0] != "/tmp/movies.csv" || loader.paths[1] != "/tmp/credits.csv" {
		t.Errorf("loader paths = %v", loader.paths)
	}
	if len(got) != 1 {
		t.Errorf("listener calls = %d, want 1", len(got))
	}
}

func TestReloader_RefreshSkipsUnchanged(t *testing.T) {
	fetcher := &fakeFetcher{changed: false}
	loader := &fakeLoader{}
	r := NewReloader(fetcher, loader, "m", "c")

	// First refresh always loads.
	if res, err := r.Refresh(context.Background(), TriggerInterval); err != nil || !res.Reloaded {
		t.Fatalf("first Refresh() = %+v, %v", res, err)
	}
	res, err := r.Refresh(context.Background(), TriggerInterval)
	if err != nil {
		t.Fatal(err)
	}
	if res.Reloaded {
		t.Error("second Refresh() should skip unchanged sources")
	}
	if loader.loads != 1 {
		t.Errorf("loads = %d, want 1", loader.loads)
	}

	// Reload ignores change detection.
	if res, _ := r.Reload(context.Background(), TriggerAPI); !res.Reloaded {
		t.Error("Reload() should always load")
	}
}

func TestReloader_FailureKeepsPreviousSnapshot(t *testing.T) {
	fetcher := &fakeFetcher{changed: true}
	loader := &fakeLoader{}
	r := NewReloader(fetcher, loader, "m", "c")

	if _, err := r.Reload(context.Background(), TriggerStartup); err != nil {
		t.Fatal(err)
	}

	loader.err = errors.New("bad csv")
	res, err := r.Reload(context.Background(), TriggerWatch)
	if err == nil {
		t.Fatal("expected error")
	}
	if res.Reloaded || res.Snapshot.Movies != 10 {
		t.Errorf("failed reload should return previous snapshot, got %+v", res)
	}
	if !errors.Is(r.LastError(), loader.err) {
		t.Errorf("LastError() = %v", r.LastError())
	}

	fetcher.err = errors.New("network down")
	loader.err = nil
	if _, err := r.Reload(context.Background(), TriggerWatch); !errors.Is(err, fetcher.err) {
		t.Errorf("fetch error not wrapped: %v", err)
	}
}

func TestReloader_Serialized(t *testing.T) {
	fetcher := &fakeFetcher{changed: true}
	loader := &fakeLoader{}
	r := NewReloader(fetcher, loader, "m", "c")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = r.Reload(context.Background(), TriggerAPI)
		}()
	}
	wg.Wait()

	if loader.loads != 8 {
		t.Errorf("loads = %d, want 8", loader.loads)
	}
}

func TestReloader_RefreshRetriesAfterFailedLoad(t *testing.T) {
	fetcher := &fakeFetcher{changed: true}
	loader := &fakeLoader{}
	r := NewReloader(fetcher, loader, "m", "c")
	ctx := context.Background()

	if _, err := r.Refresh(ctx, TriggerStartup); err != nil {
		t.Fatal(err)
	}

	// The sources change but the load fails; the fetcher has already
	// recorded the new state, so it reports no change afterwards.
	loader.err = errors.New("transient load failure")
	if _, err := r.Refresh(ctx, TriggerWatch); err == nil {
		t.Fatal("expected load error")
	}
	fetcher.changed = false
	loader.err = nil

	res, err := r.Refresh(ctx, TriggerWatch)
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if !res.Reloaded || loader.loads != 2 {
		t.Errorf("Refresh() after failed load = %+v, loads = %d, want a reload", res, loader.loads)
	}
	if r.LastError() != nil {
		t.Errorf("LastError() = %v, want nil", r.LastError())
	}

	if res, _ := r.Refresh(ctx, TriggerWatch); res.Reloaded {
		t.Error("unchanged sources after a successful load should be skipped")
	}
}
