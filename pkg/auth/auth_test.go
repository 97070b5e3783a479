package auth

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josegonzalez/gamenote/pkg/cache"
	"github.com/josegonzalez/gamenote/pkg/gamenote"
	"github.com/josegonzalez/gamenote/pkg/internal/logging"
)

type fakeAuthority struct {
	tokens []string
	err    error
	calls  int
	creds  gamenote.Credentials
}

func (f *fakeAuthority) RequestToken(_ context.Context, creds gamenote.Credentials) (string, error) {
	f.calls++
	f.creds = creds
	if f.err != nil {
		return "", f.err
	}
	return f.tokens[(f.calls-1)%len(f.tokens)], nil
}

type brokenStore struct {
	cache.NullStore
}

func (brokenStore) Save(context.Context, string) error {
	return &gamenote.CacheError{Op: "save", Err: errors.New("disk full")}
}

var creds = gamenote.Credentials{ClientID: "id", ClientSecret: "secret"}

func TestEnsureUsesCachedToken(t *testing.T) {
	authority := &fakeAuthority{tokens: []string{"minted"}}
	store := cache.NewMemoryStore("cached")

	token, err := NewManager(creds, authority, store).Ensure(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "cached", token)
	assert.Zero(t, authority.calls)
	assert.Zero(t, store.Saves())
}

func TestEnsureMintsAndPersistsWhenEmpty(t *testing.T) {
	authority := &fakeAuthority{tokens: []string{"minted"}}
	store := cache.NewMemoryStore("")

	token, err := NewManager(creds, authority, store).Ensure(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "minted", token)
	assert.Equal(t, 1, authority.calls)
	assert.Equal(t, creds, authority.creds)
	assert.Equal(t, int64(1), store.Saves())

	stored, ok := store.Load(context.Background())
	assert.True(t, ok)
	assert.Equal(t, "minted", stored)
}

func TestRefreshReplacesStoredToken(t *testing.T) {
	authority := &fakeAuthority{tokens: []string{"second"}}
	store := cache.NewMemoryStore("first")

	token, err := NewManager(creds, authority, store).Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "second", token)

	stored, _ := store.Load(context.Background())
	assert.Equal(t, "second", stored)
}

func TestRefreshFailure(t *testing.T) {
	authority := &fakeAuthority{err: &gamenote.AuthError{Provider: "igdb", Details: "no access_token"}}
	store := cache.NewMemoryStore("")

	_, err := NewManager(creds, authority, store).Ensure(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, gamenote.ErrTokenRequest)
	assert.Zero(t, store.Saves())
}

func TestRefreshSaveFailureStillReturnsToken(t *testing.T) {
	var logs bytes.Buffer
	authority := &fakeAuthority{tokens: []string{"minted"}}
	m := NewManager(creds, authority, brokenStore{}, WithLogger(logging.New(&logs, logging.Config{Level: "warn"})))

	token, err := m.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "minted", token)
	assert.Contains(t, logs.String(), "failed to persist access token")
}
