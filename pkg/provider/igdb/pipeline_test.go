package igdb

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/josegonzalez/gamenote/pkg/gamenote"
	"github.com/josegonzalez/gamenote/pkg/testutil"
)

type fakeSearcher struct {
	results [][]gamenote.Game
	errs    []error
	tokens  []string
	queries []string
}

func (f *fakeSearcher) Name() string { return "fake" }

func (f *fakeSearcher) Search(_ context.Context, query, token string) ([]gamenote.Game, error) {
	i := len(f.tokens)
	f.tokens = append(f.tokens, token)
	f.queries = append(f.queries, query)
	var games []gamenote.Game
	if i < len(f.results) {
		games = f.results[i]
	}
	if i < len(f.errs) && f.errs[i] != nil {
		return nil, f.errs[i]
	}
	return games, nil
}

type countingRefresh struct {
	calls int
	token string
	err   error
}

func (c *countingRefresh) refresh(context.Context) (string, error) {
	c.calls++
	return c.token, c.err
}

var unauthorized = &gamenote.ProviderError{Provider: "fake", Op: "search", Status: 401, Err: gamenote.ErrUnauthorized}

func TestPipelineSuccessWithoutRefresh(t *testing.T) {
	s := &fakeSearcher{results: [][]gamenote.Game{{{Name: "Quake"}}}}
	r := &countingRefresh{token: "new"}

	games, err := NewPipeline(s, nil).Search(context.Background(), "quake", "cached", r.refresh)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(games) != 1 || r.calls != 0 || len(s.tokens) != 1 {
		t.Errorf("games=%d refreshes=%d searches=%d", len(games), r.calls, len(s.tokens))
	}
}

func TestPipelineRefreshesOnceAndRetries(t *testing.T) {
	s := &fakeSearcher{
		results: [][]gamenote.Game{nil, {{Name: "Quake"}}},
		errs:    []error{unauthorized, nil},
	}
	r := &countingRefresh{token: "new"}

	games, err := NewPipeline(s, nil).Search(context.Background(), "quake", "stale", r.refresh)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(games) != 1 {
		t.Errorf("len(games) = %d", len(games))
	}
	if r.calls != 1 {
		t.Errorf("refresh calls = %d, want 1", r.calls)
	}
	if len(s.tokens) != 2 || s.tokens[0] != "stale" || s.tokens[1] != "new" {
		t.Errorf("tokens = %v", s.tokens)
	}
	if s.queries[0] != s.queries[1] {
		t.Errorf("retry query %q differs from %q", s.queries[1], s.queries[0])
	}
}

func TestPipelineSecondUnauthorizedIsTerminal(t *testing.T) {
	s := &fakeSearcher{errs: []error{unauthorized, unauthorized, unauthorized}}
	r := &countingRefresh{token: "new"}

	_, err := NewPipeline(s, nil).Search(context.Background(), "quake", "stale", r.refresh)
	if !errors.Is(err, gamenote.ErrUnauthorized) {
		t.Errorf("error = %v, want ErrUnauthorized", err)
	}
	if r.calls != 1 || len(s.tokens) != 2 {
		t.Errorf("refreshes=%d searches=%d, want 1 and 2", r.calls, len(s.tokens))
	}
}

func TestPipelineOtherFailureDoesNotRefresh(t *testing.T) {
	fail := &gamenote.ProviderError{Provider: "fake", Op: "search", Status: 500, Err: gamenote.ErrProviderResponse}
	s := &fakeSearcher{errs: []error{fail}}
	r := &countingRefresh{token: "new"}

	_, err := NewPipeline(s, nil).Search(context.Background(), "quake", "cached", r.refresh)
	if !errors.Is(err, gamenote.ErrProviderResponse) {
		t.Errorf("error = %v", err)
	}
	if r.calls != 0 || len(s.tokens) != 1 {
		t.Errorf("refreshes=%d searches=%d, want 0 and 1", r.calls, len(s.tokens))
	}
}

func TestPipelineRefreshFailure(t *testing.T) {
	s := &fakeSearcher{errs: []error{unauthorized}}
	r := &countingRefresh{err: errors.New("twitch down")}

	_, err := NewPipeline(s, nil).Search(context.Background(), "quake", "stale", r.refresh)
	if !errors.Is(err, gamenote.ErrTokenRequest) {
		t.Errorf("error = %v, want ErrTokenRequest", err)
	}
	if r.calls != 1 || len(s.tokens) != 1 {
		t.Errorf("refreshes=%d searches=%d, want 1 and 1", r.calls, len(s.tokens))
	}
}

func TestPipelineZeroResultsDoesNotRefresh(t *testing.T) {
	s := &fakeSearcher{results: [][]gamenote.Game{{}}}
	r := &countingRefresh{token: "new"}

	games, err := NewPipeline(s, nil).Search(context.Background(), "zzzz", "cached", r.refresh)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(games) != 0 || r.calls != 0 {
		t.Errorf("games=%d refreshes=%d", len(games), r.calls)
	}
}

func TestPipelineAgainstServer(t *testing.T) {
	fixture := testutil.LoadFixture(t, "igdb", "search_quake.json")

	var auths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auths = append(auths, r.Header.Get("Authorization"))
		if r.Header.Get("Authorization") != "Bearer fresh" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write(fixture)
	}))
	defer server.Close()

	r := &countingRefresh{token: "fresh"}
	p := NewPipeline(NewClient("id", Options{BaseURL: server.URL}), nil)

	games, err := p.Search(context.Background(), "quake", "stale", r.refresh)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(games) != 2 {
		t.Errorf("len(games) = %d, want 2", len(games))
	}
	if len(auths) != 2 || auths[0] != "Bearer stale" || auths[1] != "Bearer fresh" || r.calls != 1 {
		t.Errorf("auths = %v refreshes = %d", auths, r.calls)
	}
}
