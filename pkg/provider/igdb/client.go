// Package igdb provides the IGDB game search and Twitch token authority.
package igdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/josegonzalez/gamenote/pkg/gamenote"
	"github.com/josegonzalez/gamenote/pkg/internal/logging"
	"github.com/josegonzalez/gamenote/pkg/internal/metrics"
	"github.com/josegonzalez/gamenote/pkg/internal/normalization"
)

const (
	providerName = "igdb"

	// DefaultBaseURL is the IGDB v4 API root.
	DefaultBaseURL = "https://api.igdb.com/v4"
	// DefaultTokenURL is the Twitch client credentials endpoint.
	DefaultTokenURL = "https://id.twitch.tv/oauth2/token"
	// DefaultLimit is the number of results requested per search.
	DefaultLimit = 15

	defaultUserAgent = "gamenote/1.0"
	defaultTimeout   = 30 * time.Second

	endpointGames = "games"
	endpointToken = "token"
)

// searchFields is the field selection sent with every search.
var searchFields = []string{
	"franchises.name", "websites.url", "keywords.name", "platforms.name",
	"first_release_date", "involved_companies.developer",
	"involved_companies.company.name", "involved_companies.company.logo.url",
	"url", "cover.url", "genres.name", "game_modes.name", "storyline",
	"summary", "name", "alternative_names.name",
}

var queryEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// Options configures the IGDB client and token authority.
type Options struct {
	BaseURL    string
	TokenURL   string
	UserAgent  string
	Limit      int
	HTTPClient *http.Client
	Logger     *slog.Logger
	Metrics    *metrics.Metrics
}

func (o Options) withDefaults() Options {
	if o.BaseURL == "" {
		o.BaseURL = DefaultBaseURL
	}
	if o.TokenURL == "" {
		o.TokenURL = DefaultTokenURL
	}
	if o.UserAgent == "" {
		o.UserAgent = defaultUserAgent
	}
	if o.Limit <= 0 {
		o.Limit = DefaultLimit
	}
	if o.HTTPClient == nil {
		o.HTTPClient = &http.Client{Timeout: defaultTimeout}
	}
	o.Logger = logging.OrDiscard(o.Logger)
	o.BaseURL = strings.TrimSuffix(o.BaseURL, "/")
	return o
}

// Client searches the IGDB games endpoint.
type Client struct {
	clientID string
	opts     Options
}

// NewClient creates a client sending clientID with every request.
func NewClient(clientID string, opts Options) *Client {
	return &Client{clientID: clientID, opts: opts.withDefaults()}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return providerName
}

// Limit returns the per-search result cap.
func (c *Client) Limit() int {
	return c.opts.Limit
}

// Query builds the APICalypse body for a text search.
func (c *Client) Query(query string) string {
	return fmt.Sprintf(`fields %s; search "%s"; limit %d;`,
		strings.Join(searchFields, ", "), queryEscaper.Replace(query), c.opts.Limit)
}

// errorBody is the JSON object IGDB returns in place of a result array on failure.
type errorBody struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

// Search runs a text search. A rejected token is reported as gamenote.ErrUnauthorized.
func (c *Client) Search(ctx context.Context, query, token string) ([]gamenote.Game, error) {
	endpoint := c.opts.BaseURL + "/" + endpointGames
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(c.Query(query)))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Client-ID", c.clientID)
	req.Header.Set("User-Agent", c.opts.UserAgent)

	c.opts.Logger.Debug("searching games",
		"url", endpoint,
		"query", query,
		"headers", normalization.MaskSensitiveValues(map[string]string{
			"Authorization": req.Header.Get("Authorization"),
			"Client-ID":     c.clientID,
		}))

	resp, err := c.opts.HTTPClient.Do(req)
	if err != nil {
		c.opts.Metrics.APIRequest(endpointGames, metrics.ResultFailure)
		return nil, &gamenote.ConnectionError{Provider: providerName, Details: "search", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		c.opts.Metrics.APIRequest(endpointGames, metrics.ResultUnauthorized)
		return nil, &gamenote.ProviderError{Provider: providerName, Op: "search", Status: resp.StatusCode, Err: gamenote.ErrUnauthorized}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.opts.Metrics.APIRequest(endpointGames, metrics.ResultFailure)
		return nil, &gamenote.ConnectionError{Provider: providerName, Details: "read search response", Err: err}
	}

	games, err := decodeGames(resp.StatusCode, body)
	if err != nil {
		result := metrics.ResultFailure
		if errors.Is(err, gamenote.ErrUnauthorized) {
			result = metrics.ResultUnauthorized
		}
		c.opts.Metrics.APIRequest(endpointGames, result)
		return nil, err
	}

	c.opts.Metrics.APIRequest(endpointGames, metrics.ResultSuccess)
	c.opts.Logger.Debug("search complete", "query", query, "results", len(games))
	return games, nil
}

func decodeGames(status int, body []byte) ([]gamenote.Game, error) {
	trimmed := strings.TrimSpace(string(body))

	if strings.HasPrefix(trimmed, "{") {
		var eb errorBody
		if err := json.Unmarshal(body, &eb); err == nil && eb.Status == http.StatusUnauthorized {
			return nil, &gamenote.ProviderError{Provider: providerName, Op: "search", Status: eb.Status, Err: gamenote.ErrUnauthorized}
		}
	}

	if status < 200 || status >= 300 {
		return nil, &gamenote.ProviderError{Provider: providerName, Op: "search", Status: status, Err: gamenote.ErrProviderResponse}
	}

	var games []gamenote.Game
	if err := json.Unmarshal(body, &games); err != nil {
		return nil, &gamenote.ProviderError{
			Provider: providerName,
			Op:       "search",
			Status:   status,
			Err:      fmt.Errorf("%w: %v", gamenote.ErrProviderResponse, err),
		}
	}
	if games == nil {
		games = []gamenote.Game{}
	}
	return games, nil
}
