package vfs

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResolvesLocalRoot(t *testing.T) {
	dir := t.TempDir()
	v, err := New(dir)
	require.NoError(t, err)
	assert.Equal(t, "file://"+filepath.ToSlash(dir), v.Root())
}

func TestNewRejectsEmptyRoot(t *testing.T) {
	_, err := New("  ")
	assert.Error(t, err)
}

func TestURL(t *testing.T) {
	v, err := New("mem://localhost/vault/")
	require.NoError(t, err)

	assert.Equal(t, "mem://localhost/vault", v.URL(""))
	assert.Equal(t, "mem://localhost/vault", v.URL("/"))
	assert.Equal(t, "mem://localhost/vault/.obsidian/igdbToken.json", v.URL("/.obsidian//igdbToken.json"))
}

func TestVaultRoundTrip(t *testing.T) {
	ctx := context.Background()
	v, err := New(t.TempDir())
	require.NoError(t, err)

	exists, err := v.Exists(ctx, "Games/posters/Quake.jpg")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, v.MkdirAll(ctx, "Games/posters"))
	require.NoError(t, v.WriteFile(ctx, "Games/posters/Quake.jpg", []byte{0xff, 0xd8}))

	exists, err = v.Exists(ctx, "Games/posters/Quake.jpg")
	require.NoError(t, err)
	assert.True(t, exists)

	data, err := v.ReadFile(ctx, "Games/posters/Quake.jpg")
	require.NoError(t, err)
	assert.Equal(t, []byte{0xff, 0xd8}, data)
}
