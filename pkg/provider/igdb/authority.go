package igdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/josegonzalez/gamenote/pkg/gamenote"
	"github.com/josegonzalez/gamenote/pkg/internal/metrics"
	"github.com/josegonzalez/gamenote/pkg/internal/normalization"
)

// TokenAuthority mints access tokens with the Twitch client credentials grant.
type TokenAuthority struct {
	opts Options
}

// NewTokenAuthority creates a token authority.
func NewTokenAuthority(opts Options) *TokenAuthority {
	return &TokenAuthority{opts: opts.withDefaults()}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	TokenType   string `json:"token_type"`
}

// RequestToken exchanges creds for a fresh access token.
// Every failure matches gamenote.ErrTokenRequest.
func (a *TokenAuthority) RequestToken(ctx context.Context, creds gamenote.Credentials) (string, error) {
	data := url.Values{}
	data.Set("client_id", creds.ClientID)
	data.Set("client_secret", creds.ClientSecret)
	data.Set("grant_type", "client_credentials")
	endpoint := a.opts.TokenURL + "?" + data.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return "", &gamenote.AuthError{Provider: providerName, Details: fmt.Sprintf("failed to create token request: %v", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", a.opts.UserAgent)

	a.opts.Logger.Debug("requesting access token", "url", normalization.StripSensitiveQueryParams(endpoint))

	resp, err := a.opts.HTTPClient.Do(req)
	if err != nil {
		a.opts.Metrics.APIRequest(endpointToken, metrics.ResultFailure)
		return "", fmt.Errorf("%w: %w", gamenote.ErrTokenRequest, &gamenote.ConnectionError{Provider: providerName, Details: "token request", Err: err})
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		a.opts.Metrics.APIRequest(endpointToken, metrics.ResultFailure)
		return "", fmt.Errorf("%w: %w", gamenote.ErrTokenRequest, &gamenote.ConnectionError{Provider: providerName, Details: "read token response", Err: err})
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		a.opts.Metrics.APIRequest(endpointToken, metrics.ResultFailure)
		return "", &gamenote.AuthError{Provider: providerName, Details: fmt.Sprintf("status %d: unreadable token response", resp.StatusCode)}
	}
	if tr.AccessToken == "" {
		a.opts.Metrics.APIRequest(endpointToken, metrics.ResultFailure)
		return "", &gamenote.AuthError{Provider: providerName, Details: fmt.Sprintf("status %d: response has no access_token", resp.StatusCode)}
	}

	a.opts.Metrics.APIRequest(endpointToken, metrics.ResultSuccess)
	a.opts.Logger.Debug("access token issued", "token", normalization.MaskToken(tr.AccessToken), "expires_in", tr.ExpiresIn)
	return tr.AccessToken, nil
}
