// Package auth keeps a session supplied with a usable access token.
package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/josegonzalez/gamenote/pkg/cache"
	"github.com/josegonzalez/gamenote/pkg/gamenote"
	"github.com/josegonzalez/gamenote/pkg/internal/logging"
	"github.com/josegonzalez/gamenote/pkg/internal/metrics"
	"github.com/josegonzalez/gamenote/pkg/provider"
)

// Manager combines a token store with the authority that mints tokens.
type Manager struct {
	creds     gamenote.Credentials
	authority provider.TokenIssuer
	store     cache.Store
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

// Option is a functional option for Manager.
type Option func(*Manager)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logging.OrDiscard(logger)
	}
}

// WithMetrics sets the metrics sink.
func WithMetrics(mt *metrics.Metrics) Option {
	return func(m *Manager) {
		m.metrics = mt
	}
}

// NewManager creates a manager.
func NewManager(creds gamenote.Credentials, authority provider.TokenIssuer, store cache.Store, opts ...Option) *Manager {
	m := &Manager{
		creds:     creds,
		authority: authority,
		store:     store,
		logger:    logging.Discard(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Ensure returns the stored token, or mints and stores one when none is stored.
func (m *Manager) Ensure(ctx context.Context) (string, error) {
	if token, ok := m.store.Load(ctx); ok {
		m.logger.Debug("using cached access token")
		return token, nil
	}
	return m.Refresh(ctx)
}

// Refresh mints a new token and stores it. A failed save is logged and the fresh token is still returned.
func (m *Manager) Refresh(ctx context.Context) (string, error) {
	token, err := m.authority.RequestToken(ctx, m.creds)
	if err != nil {
		m.metrics.TokenRefresh(metrics.ResultFailure)
		return "", fmt.Errorf("refresh access token: %w", err)
	}
	m.metrics.TokenRefresh(metrics.ResultSuccess)

	if err := m.store.Save(ctx, token); err != nil {
		m.logger.Warn("failed to persist access token", "error", err)
	}
	return token, nil
}
