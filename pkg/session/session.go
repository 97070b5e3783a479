// Package session runs one interactive game lookup from query to note variables.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/josegonzalez/gamenote/pkg/format"
	"github.com/josegonzalez/gamenote/pkg/gamenote"
	"github.com/josegonzalez/gamenote/pkg/internal/logging"
	"github.com/josegonzalez/gamenote/pkg/internal/matching"
	"github.com/josegonzalez/gamenote/pkg/prompt"
	"github.com/josegonzalez/gamenote/pkg/provider"
)

// User facing notices.
const (
	NoticeNoQuery      = "No query entered."
	NoticeNoResults    = "No results found."
	NoticeNoSelection  = "No choice selected."
	NoticeTokenFailed  = "Failed to refresh access token."
	NoticeFetchFailed  = "Failed to fetch game results."
	NoticeRefreshRetry = "Access token refresh failed."
)

const queryHeader = "Enter video game title: "

// Placeholders are the example titles shown in the empty query prompt.
var Placeholders = []string{
	"Leisure Suit Larry: Love for Sail!",
	"Cyberpunk 2077",
	"Shenmue",
	"Super Mario Bros. 3",
	"Daikatana",
	"Quake",
}

// TokenSource supplies access tokens.
type TokenSource interface {
	Ensure(ctx context.Context) (string, error)
	Refresh(ctx context.Context) (string, error)
}

// Searcher runs a query with refresh-and-retry semantics.
type Searcher interface {
	Search(ctx context.Context, query, token string, refresh provider.RefreshFunc) ([]gamenote.Game, error)
}

// CoverFetcher stores cover images locally.
type CoverFetcher interface {
	DownloadCover(ctx context.Context, posterURL, gameName, baseDir string) (string, bool)
}

// Session holds everything one lookup needs. It is not safe for concurrent use.
type Session struct {
	tokens    TokenSource
	searcher  Searcher
	prompter  prompt.Prompter
	notifier  prompt.Notifier
	clipboard prompt.Clipboard
	fetcher   CoverFetcher

	posterPath   string
	useClipboard bool
	query        string
	location     *time.Location
	choose       func(n int) int
	logger       *slog.Logger
}

// Option is a functional option for Session.
type Option func(*Session)

// WithNotifier sets where failure notices go.
func WithNotifier(n prompt.Notifier) Option {
	return func(s *Session) { s.notifier = n }
}

// WithClipboard seeds the query prompt from c.
func WithClipboard(c prompt.Clipboard) Option {
	return func(s *Session) {
		s.clipboard = c
		s.useClipboard = c != nil
	}
}

// WithCoverFetcher enables cover downloads into dir.
func WithCoverFetcher(f CoverFetcher, dir string) Option {
	return func(s *Session) {
		s.fetcher = f
		s.posterPath = dir
	}
}

// WithQuery pre-fills the query prompt. It takes precedence over the clipboard.
func WithQuery(q string) Option {
	return func(s *Session) { s.query = strings.TrimSpace(q) }
}

// WithLocation sets the zone release dates are shown in.
func WithLocation(loc *time.Location) Option {
	return func(s *Session) { s.location = loc }
}

// WithPlaceholderChooser replaces the random placeholder choice.
func WithPlaceholderChooser(choose func(n int) int) Option {
	return func(s *Session) { s.choose = choose }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) { s.logger = logging.OrDiscard(logger) }
}

type discardNotifier struct{}

func (discardNotifier) Notify(string) {}

// New creates a session.
func New(tokens TokenSource, searcher Searcher, prompter prompt.Prompter, opts ...Option) *Session {
	s := &Session{
		tokens:   tokens,
		searcher: searcher,
		prompter: prompter,
		notifier: discardNotifier{},
		location: time.Local,
		choose:   rand.Intn,
		logger:   logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) fail(notice string, err error) error {
	s.notifier.Notify(notice)
	s.logger.Debug("session aborted", "reason", notice, "error", err)
	return err
}

// Run executes the lookup. Every failure has already been shown to the user
// through the notifier when Run returns.
func (s *Session) Run(ctx context.Context) (*Variables, error) {
	token, err := s.tokens.Ensure(ctx)
	if err != nil {
		return nil, s.fail(NoticeTokenFailed, err)
	}

	query, err := s.askQuery(ctx)
	if err != nil {
		return nil, err
	}
	if query == "" {
		return nil, s.fail(NoticeNoQuery, gamenote.ErrNoQuery)
	}

	games, err := s.searcher.Search(ctx, query, token, s.tokens.Refresh)
	if err != nil {
		if errors.Is(err, gamenote.ErrTokenRequest) {
			return nil, s.fail(NoticeRefreshRetry, err)
		}
		return nil, s.fail(NoticeFetchFailed, err)
	}
	if len(games) == 0 {
		return nil, s.fail(NoticeNoResults, gamenote.ErrNoResults)
	}

	game, err := s.selectGame(ctx, query, games)
	if err != nil {
		return nil, err
	}

	record := format.Pick(game, format.Fields(s.location))

	var posterPath string
	if posterURL, ok := record.Value("posterUrl").TextValue(); ok && s.fetcher != nil {
		if path, ok := s.fetcher.DownloadCover(ctx, posterURL, game.Name, s.posterPath); ok {
			posterPath = path
		}
	}

	return NewVariables(record, game, posterPath), nil
}

func (s *Session) askQuery(ctx context.Context) (string, error) {
	seed := s.query
	if seed == "" && s.useClipboard {
		text, err := s.clipboard.Read()
		if err != nil {
			s.logger.Warn("failed to read clipboard", "error", err)
		}
		seed = strings.TrimSpace(text)
	}

	placeholder := "ex. " + Placeholders[s.choose(len(Placeholders))]
	query, err := s.prompter.Input(ctx, queryHeader, placeholder, seed)
	if errors.Is(err, prompt.ErrCancelled) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("query prompt: %w", err)
	}
	return strings.TrimSpace(query), nil
}

func (s *Session) selectGame(ctx context.Context, query string, games []gamenote.Game) (gamenote.Game, error) {
	labels := make([]string, len(games))
	names := make([]string, len(games))
	for i, g := range games {
		labels[i] = format.SuggestionLabel(g, s.location)
		names[i] = g.Name
	}

	cursor, score := matching.BestIndex(query, names)
	s.logger.Debug("preselected result", "name", names[cursor], "confidence", matching.MatchConfidence(score))

	idx, err := s.prompter.Suggest(ctx, labels, cursor)
	if errors.Is(err, prompt.ErrCancelled) || (err == nil && (idx < 0 || idx >= len(games))) {
		return gamenote.Game{}, s.fail(NoticeNoSelection, gamenote.ErrNoSelection)
	}
	if err != nil {
		return gamenote.Game{}, fmt.Errorf("result prompt: %w", err)
	}
	return games[idx], nil
}
