package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josegonzalez/gamenote/pkg/gamenote"
	"github.com/josegonzalez/gamenote/pkg/vfs"
)

func newVault(t *testing.T) *vfs.Vault {
	t.Helper()
	v, err := vfs.New("mem://localhost/" + t.Name())
	require.NoError(t, err)
	return v
}

func TestFileStoreMissingFile(t *testing.T) {
	store := NewFileStore(newVault(t), ".obsidian/igdbToken.json")

	token, ok := store.Load(context.Background())
	assert.False(t, ok)
	assert.Empty(t, token)
}

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	vault := newVault(t)
	store := NewFileStore(vault, ".obsidian/igdbToken.json")

	require.NoError(t, store.Save(ctx, "abc123"))

	token, ok := store.Load(ctx)
	require.True(t, ok)
	assert.Equal(t, "abc123", token)

	data, err := vault.ReadFile(ctx, ".obsidian/igdbToken.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"igdbToken": "abc123"}`, string(data))
}

func TestFileStoreSaveReplaces(t *testing.T) {
	ctx := context.Background()
	store := NewFileStore(newVault(t), "igdbToken.json")

	require.NoError(t, store.Save(ctx, "first"))
	require.NoError(t, store.Save(ctx, "second"))

	token, ok := store.Load(ctx)
	require.True(t, ok)
	assert.Equal(t, "second", token)
}

func TestFileStoreMalformedDocument(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not json", "igdbToken=abc"},
		{"wrong shape", `["abc"]`},
		{"missing key", `{"token": "abc"}`},
		{"empty token", `{"igdbToken": ""}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			vault := newVault(t)
			require.NoError(t, vault.WriteFile(ctx, "igdbToken.json", []byte(tc.doc)))

			_, ok := NewFileStore(vault, "igdbToken.json").Load(ctx)
			assert.False(t, ok)
		})
	}
}

type failingFS struct {
	vfs.FS
}

func (failingFS) WriteFile(context.Context, string, []byte) error {
	return errors.New("read-only vault")
}

func TestFileStoreSaveFailure(t *testing.T) {
	store := NewFileStore(failingFS{newVault(t)}, "igdbToken.json")

	err := store.Save(context.Background(), "abc")
	require.Error(t, err)
	assert.True(t, errors.Is(err, gamenote.ErrCacheOperation))

	var cacheErr *gamenote.CacheError
	require.True(t, errors.As(err, &cacheErr))
	assert.Equal(t, "igdbToken.json", cacheErr.Path)
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore("")

	_, ok := store.Load(ctx)
	assert.False(t, ok)

	require.NoError(t, store.Save(ctx, "abc"))
	token, ok := store.Load(ctx)
	assert.True(t, ok)
	assert.Equal(t, "abc", token)
	assert.Equal(t, int64(1), store.Saves())
}

func TestMemoryStoreSeeded(t *testing.T) {
	token, ok := NewMemoryStore("seed").Load(context.Background())
	assert.True(t, ok)
	assert.Equal(t, "seed", token)
}

func TestNullStore(t *testing.T) {
	ctx := context.Background()
	store := NewNullStore()

	require.NoError(t, store.Save(ctx, "abc"))
	_, ok := store.Load(ctx)
	assert.False(t, ok)
}
