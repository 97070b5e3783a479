package igdb

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/josegonzalez/gamenote/pkg/gamenote"
	"github.com/josegonzalez/gamenote/pkg/internal/metrics"
	"github.com/josegonzalez/gamenote/pkg/testutil"
)

const quakeQuery = `fields franchises.name, websites.url, keywords.name, platforms.name, first_release_date, involved_companies.developer, involved_companies.company.name, involved_companies.company.logo.url, url, cover.url, genres.name, game_modes.name, storyline, summary, name, alternative_names.name; search "quake"; limit 15;`

func TestQuery(t *testing.T) {
	c := NewClient("id", Options{})

	if got := c.Query("quake"); got != quakeQuery {
		t.Errorf("Query() = %q\nwant %q", got, quakeQuery)
	}
	if c.Limit() != DefaultLimit {
		t.Errorf("Limit() = %d, want %d", c.Limit(), DefaultLimit)
	}
}

func TestQueryEscapesQuotes(t *testing.T) {
	c := NewClient("id", Options{Limit: 3})

	got := c.Query(`say "hi" \o/`)
	if !strings.HasSuffix(got, `search "say \"hi\" \\o/"; limit 3;`) {
		t.Errorf("Query() = %q", got)
	}
}

func TestSearch(t *testing.T) {
	fixture := testutil.LoadFixture(t, "igdb", "search_quake.json")

	var gotBody string
	var gotHeaders http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/games" {
			http.NotFound(w, r)
			return
		}
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		gotHeaders = r.Header.Clone()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(fixture)
	}))
	defer server.Close()

	c := NewClient("client-abc", Options{BaseURL: server.URL})
	games, err := c.Search(context.Background(), "quake", "token-xyz")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if gotBody != quakeQuery {
		t.Errorf("body = %q", gotBody)
	}
	wantHeaders := map[string]string{
		"Authorization": "Bearer token-xyz",
		"Client-Id":     "client-abc",
		"Accept":        "application/json",
		"User-Agent":    "gamenote/1.0",
	}
	for k, v := range wantHeaders {
		if got := gotHeaders.Get(k); got != v {
			t.Errorf("header %s = %q, want %q", k, got, v)
		}
	}

	if len(games) != 2 {
		t.Fatalf("len(games) = %d, want 2", len(games))
	}
	quake := games[0]
	if quake.ID != 333 || quake.Name != "Quake" {
		t.Errorf("games[0] = %d %q", quake.ID, quake.Name)
	}
	if quake.Cover == nil || quake.Cover.URL != "//images.igdb.com/igdb/image/upload/t_thumb/co1x7d.jpg" {
		t.Errorf("cover = %+v", quake.Cover)
	}
	if quake.FirstReleaseDate == nil || *quake.FirstReleaseDate != 835488000 {
		t.Errorf("first_release_date = %v", quake.FirstReleaseDate)
	}
	if len(quake.InvolvedCompanies) != 2 || !quake.InvolvedCompanies[1].Developer {
		t.Errorf("involved_companies = %+v", quake.InvolvedCompanies)
	}
	if games[1].Cover != nil {
		t.Errorf("games[1].Cover = %+v, want nil", games[1].Cover)
	}
}

func TestSearchEmpty(t *testing.T) {
	fixture := testutil.LoadFixture(t, "igdb", "search_empty.json")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(fixture)
	}))
	defer server.Close()

	games, err := NewClient("id", Options{BaseURL: server.URL}).Search(context.Background(), "zzzz", "t")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if games == nil || len(games) != 0 {
		t.Errorf("Search() = %#v, want empty slice", games)
	}
}

func TestSearchErrors(t *testing.T) {
	unauthorized := testutil.LoadFixture(t, "igdb", "unauthorized.json")

	tests := []struct {
		name             string
		status           int
		body             []byte
		wantUnauthorized bool
		wantSentinel     error
	}{
		{"status 401", http.StatusUnauthorized, unauthorized, true, gamenote.ErrUnauthorized},
		{"401 object with 200", http.StatusOK, unauthorized, true, gamenote.ErrUnauthorized},
		{"server error", http.StatusInternalServerError, []byte(`{"message": "boom"}`), false, gamenote.ErrProviderResponse},
		{"forbidden", http.StatusForbidden, []byte(`[]`), false, gamenote.ErrProviderResponse},
		{"malformed json", http.StatusOK, []byte(`[{"id":`), false, gamenote.ErrProviderResponse},
		{"object with other status", http.StatusOK, []byte(`{"status": 400}`), false, gamenote.ErrProviderResponse},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write(tc.body)
			}))
			defer server.Close()

			_, err := NewClient("id", Options{BaseURL: server.URL}).Search(context.Background(), "quake", "t")
			if err == nil {
				t.Fatal("Search() error = nil")
			}
			if got := errors.Is(err, gamenote.ErrUnauthorized); got != tc.wantUnauthorized {
				t.Errorf("errors.Is(ErrUnauthorized) = %v, want %v (%v)", got, tc.wantUnauthorized, err)
			}
			if !errors.Is(err, tc.wantSentinel) {
				t.Errorf("error %v does not match %v", err, tc.wantSentinel)
			}
			var perr *gamenote.ProviderError
			if !errors.As(err, &perr) || perr.Provider != "igdb" {
				t.Errorf("error %v is not an igdb ProviderError", err)
			}
		})
	}
}

func TestSearchConnectionError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := NewClient("id", Options{BaseURL: url}).Search(context.Background(), "quake", "t")
	if !errors.Is(err, gamenote.ErrProviderConnection) {
		t.Errorf("error = %v, want ErrProviderConnection", err)
	}
	if errors.Is(err, gamenote.ErrUnauthorized) {
		t.Error("connection failure reported as unauthorized")
	}
}

func TestSearchRecordsMetrics(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	m := metrics.New()
	c := NewClient("id", Options{BaseURL: server.URL, Metrics: m})
	_, _ = c.Search(context.Background(), "quake", "old")
	_, _ = c.Search(context.Background(), "quake", "new")

	n, err := promtestutil.GatherAndCount(m.Registry(), "gamenote_api_requests_total")
	if err != nil {
		t.Fatalf("GatherAndCount() error = %v", err)
	}
	if n != 2 {
		t.Errorf("series = %d, want 2 (unauthorized and success)", n)
	}
}
