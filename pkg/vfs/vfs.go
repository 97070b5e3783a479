// Package vfs exposes a knowledge base vault as a small file system rooted at an afs URL.
package vfs

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/file"

	"github.com/josegonzalez/gamenote/pkg/filename"
)

// FS is the vault file system used by the token cache, the cover fetcher and note output.
// Paths are vault relative and normalized with filename.NormalizePath.
type FS interface {
	// Exists reports whether a file or directory exists at path.
	Exists(ctx context.Context, path string) (bool, error)
	// MkdirAll creates path and any missing parents.
	MkdirAll(ctx context.Context, path string) error
	// ReadFile returns the contents of path.
	ReadFile(ctx context.Context, path string) ([]byte, error)
	// WriteFile replaces the contents of path.
	WriteFile(ctx context.Context, path string, data []byte) error
}

// Vault is an FS backed by an afs service.
type Vault struct {
	fs   afs.Service
	root string
}

// New creates a vault rooted at root. A root without a scheme is treated as a local directory.
func New(root string) (*Vault, error) {
	return NewWithService(afs.New(), root)
}

// NewWithService creates a vault using the given afs service.
func NewWithService(service afs.Service, root string) (*Vault, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return nil, fmt.Errorf("vault root is empty")
	}
	if !strings.Contains(root, "://") {
		abs, err := filepath.Abs(root)
		if err != nil {
			return nil, fmt.Errorf("resolve vault root: %w", err)
		}
		root = file.Scheme + "://" + filepath.ToSlash(abs)
	}
	return &Vault{fs: service, root: strings.TrimSuffix(root, "/")}, nil
}

// Root returns the vault root URL.
func (v *Vault) Root() string {
	return v.root
}

// URL resolves a vault relative path to an afs URL.
func (v *Vault) URL(path string) string {
	path = filename.NormalizePath(path)
	if path == "/" {
		return v.root
	}
	return v.root + "/" + path
}

// Exists reports whether path exists.
func (v *Vault) Exists(ctx context.Context, path string) (bool, error) {
	return v.fs.Exists(ctx, v.URL(path))
}

// MkdirAll creates path as a directory.
func (v *Vault) MkdirAll(ctx context.Context, path string) error {
	return v.fs.Create(ctx, v.URL(path), file.DefaultDirOsMode, true)
}

// ReadFile downloads path.
func (v *Vault) ReadFile(ctx context.Context, path string) ([]byte, error) {
	return v.fs.DownloadWithURL(ctx, v.URL(path))
}

// WriteFile uploads data to path.
func (v *Vault) WriteFile(ctx context.Context, path string, data []byte) error {
	return v.fs.Upload(ctx, v.URL(path), file.DefaultFileOsMode, bytes.NewReader(data))
}
