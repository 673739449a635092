// Marquee - Movie Catalog Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/models"
)

type creditRow struct {
	movieID int64
	text    string
}

// fakeStore is an in-memory catalog.Store. Credits join movies by id.
type fakeStore struct {
	movies  []catalog.Movie
	dates   map[int64]string
	months  map[catalog.Month]int64
	days    map[catalog.Weekday]int64
	cast    []creditRow
	crew    []creditRow
	loaded  bool
	pingErr error
	failErr error

	queries atomic.Int64
}

func (f *fakeStore) CountReleasesInMonth(_ context.Context, m catalog.Month) (int64, error) {
	f.queries.Add(1)
	if f.failErr != nil {
		return 0, f.failErr
	}
	if !f.loaded {
		return 0, catalog.ErrNotLoaded
	}
	return f.months[m], nil
}

func (f *fakeStore) CountReleasesOnWeekday(_ context.Context, d catalog.Weekday) (int64, error) {
	f.queries.Add(1)
	if f.failErr != nil {
		return 0, f.failErr
	}
	if !f.loaded {
		return 0, catalog.ErrNotLoaded
	}
	return f.days[d], nil
}

func (f *fakeStore) FindMovieByTitle(_ context.Context, title string) (*catalog.Movie, error) {
	f.queries.Add(1)
	if f.failErr != nil {
		return nil, f.failErr
	}
	if !f.loaded {
		return nil, catalog.ErrNotLoaded
	}
	for i := range f.movies {
		if strings.EqualFold(f.movies[i].Title, title) {
			m := f.movies[i]
			return &m, nil
		}
	}
	return nil, catalog.ErrMovieNotFound
}

func (f *fakeStore) match(rows []creditRow, name string, withFilms bool) (catalog.PersonMatch, error) {
	f.queries.Add(1)
	if f.failErr != nil {
		return catalog.PersonMatch{}, f.failErr
	}
	if !f.loaded {
		return catalog.PersonMatch{}, catalog.ErrNotLoaded
	}
	var pm catalog.PersonMatch
	ids := map[int64]bool{}
	for _, row := range rows {
		if strings.Contains(strings.ToLower(row.text), strings.ToLower(name)) {
			pm.CreditRows++
			ids[row.movieID] = true
		}
	}
	for _, m := range f.movies {
		if !ids[m.ID] {
			continue
		}
		pm.FilmCount++
		pm.TotalReturn += m.Return
		if withFilms {
			pm.Films = append(pm.Films, catalog.Film{
				Title:       m.Title,
				ReleaseDate: f.dates[m.ID],
				Return:      m.Return,
				Budget:      m.Budget,
				Revenue:     m.Revenue,
			})
		}
	}
	return pm, nil
}

func (f *fakeStore) MatchCast(_ context.Context, name string) (catalog.PersonMatch, error) {
	return f.match(f.cast, name, false)
}

func (f *fakeStore) MatchCrew(_ context.Context, name string) (catalog.PersonMatch, error) {
	return f.match(f.crew, name, true)
}

func (f *fakeStore) Snapshot() (catalog.Snapshot, bool) {
	if !f.loaded {
		return catalog.Snapshot{}, false
	}
	return catalog.Snapshot{
		Movies:        int64(len(f.movies)),
		Credits:       int64(len(f.cast)),
		CreditsSchema: catalog.CreditsByID,
		LoadedAt:      time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		LoadDuration:  1500 * time.Millisecond,
	}, true
}

func (f *fakeStore) Ping(context.Context) error {
	return f.pingErr
}

// newFakeStore returns a loaded store over three movies.
func newFakeStore() *fakeStore {
	return &fakeStore{
		movies: []catalog.Movie{
			{ID: 862, Title: "Toy Story", ReleaseYear: 1995, Popularity: 21.946943, VoteCount: 5415, VoteAverage: 7.7, Budget: 30000000, Revenue: 373554033, Return: 12.5},
			{ID: 8844, Title: "Jumanji", ReleaseYear: 1995, Popularity: 17.015539, VoteCount: 2413, VoteAverage: 6.9, Budget: 65000000, Revenue: 262797249, Return: 4},
			{ID: 949, Title: "Heat", ReleaseYear: 1995, Popularity: 17.924927, VoteCount: 1886, VoteAverage: 7.7, Budget: 60000000, Revenue: 187436818, Return: 3.5},
		},
		dates: map[int64]string{862: "1995-10-30", 8844: "1995-12-15", 949: "1995-12-15"},
		months: map[catalog.Month]int64{10: 1, 12: 2},
		days:   map[catalog.Weekday]int64{0: 1, 4: 2},
		cast: []creditRow{
			{862, "[{'name': 'Tom Hanks'}, {'name': 'Tim Allen'}]"},
			{8844, "[{'name': 'Robin Williams'}]"},
			{949, "[{'name': 'Al Pacino'}, {'name': 'Robert De Niro'}]"},
			{4242, "[{'name': 'Ghost Actor'}]"},
		},
		crew: []creditRow{
			{862, "[{'job': 'Director', 'name': 'John Lasseter'}]"},
			{949, "[{'job': 'Director', 'name': 'Michael Mann'}]"},
			{4243, "[{'job': 'Director', 'name': 'Ghost Director'}]"},
		},
		loaded: true,
	}
}

// fakeReloader records reload calls.
type fakeReloader struct {
	mu      sync.Mutex
	calls   []string
	result  catalog.ReloadResult
	err     error
	lastErr error
}

func (f *fakeReloader) Reload(_ context.Context, trigger string) (catalog.ReloadResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, trigger)
	return f.result, f.err
}

func (f *fakeReloader) LastError() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastErr
}

func (f *fakeReloader) Sources() (string, string) {
	return "testdata/movies.csv", "testdata/credits.csv"
}

func testConfig() *config.Config {
	return &config.Config{
		API: config.APIConfig{
			CacheTTL:     time.Minute,
			LegacyRoutes: true,
		},
		Security: config.SecurityConfig{
			RateLimitDisabled: true,
		},
	}
}

type testServer struct {
	store   *fakeStore
	handler *Handler
	router  http.Handler
}

func newTestServer(t *testing.T, store *fakeStore, reloader CatalogReloader, cfg *config.Config) *testServer {
	t.Helper()
	if cfg == nil {
		cfg = testConfig()
	}
	svc := catalog.NewService(store, catalog.WithMinVotes(catalog.DefaultMinVotes))
	h := NewHandler(svc, reloader, cfg)
	return &testServer{
		store:   store,
		handler: h,
		router:  NewRouter(h, cfg).SetupChi(),
	}
}

func (s *testServer) do(t *testing.T, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) get(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()
	return s.do(t, http.MethodGet, target)
}

// envelope mirrors models.APIResponse with a raw data field.
type envelope struct {
	Status   string           `json:"status"`
	Data     json.RawMessage  `json:"data"`
	Metadata models.Metadata  `json:"metadata"`
	Error    *models.APIError `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (body %q)", err, rec.Body.String())
	}
	return env
}

func decodeData(t *testing.T, env envelope, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(env.Data, v); err != nil {
		t.Fatalf("decode data: %v (data %s)", err, env.Data)
	}
}

func decodeLegacy(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode legacy body: %v (body %q)", err, rec.Body.String())
	}
	return body
}

var errBoom = errors.New("boom")
