package igdb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/josegonzalez/gamenote/pkg/gamenote"
	"github.com/josegonzalez/gamenote/pkg/internal/logging"
	"github.com/josegonzalez/gamenote/pkg/provider"
)

// Pipeline runs a query with a single refresh-and-retry on an authorization failure.
type Pipeline struct {
	searcher provider.Searcher
	logger   *slog.Logger
}

// NewPipeline creates a pipeline over searcher.
func NewPipeline(searcher provider.Searcher, logger *slog.Logger) *Pipeline {
	return &Pipeline{searcher: searcher, logger: logging.OrDiscard(logger)}
}

// Search runs query with token. When the token is rejected, refresh is called
// exactly once and the identical query is retried exactly once. Failures of the
// refresh match gamenote.ErrTokenRequest; every other failure is returned as is.
func (p *Pipeline) Search(ctx context.Context, query, token string, refresh provider.RefreshFunc) ([]gamenote.Game, error) {
	games, err := p.searcher.Search(ctx, query, token)
	if err == nil {
		return games, nil
	}
	if !errors.Is(err, gamenote.ErrUnauthorized) {
		return nil, err
	}

	p.logger.Info("access token rejected, refreshing", "provider", p.searcher.Name())
	fresh, rerr := refresh(ctx)
	if rerr != nil {
		if errors.Is(rerr, gamenote.ErrTokenRequest) {
			return nil, rerr
		}
		return nil, fmt.Errorf("%w: %w", gamenote.ErrTokenRequest, rerr)
	}

	games, err = p.searcher.Search(ctx, query, fresh)
	if err != nil {
		return nil, fmt.Errorf("retry with refreshed token: %w", err)
	}
	return games, nil
}
