// Package provider defines the interfaces shared by game metadata providers.
package provider

import (
	"context"

	"github.com/josegonzalez/gamenote/pkg/gamenote"
)

// Searcher runs a single text search with a bearer token.
// An invalid token is reported as gamenote.ErrUnauthorized.
type Searcher interface {
	// Name returns the provider name (e.g., "igdb").
	Name() string

	// Search returns the games matching query. Zero matches is an empty slice, not an error.
	Search(ctx context.Context, query, token string) ([]gamenote.Game, error)
}

// TokenIssuer mints a fresh access token from client credentials.
type TokenIssuer interface {
	RequestToken(ctx context.Context, creds gamenote.Credentials) (string, error)
}

// RefreshFunc obtains a replacement token after the current one was rejected.
type RefreshFunc func(ctx context.Context) (string, error)
