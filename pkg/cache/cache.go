// Package cache persists the provider access token between sessions.
package cache

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"

	"github.com/josegonzalez/gamenote/pkg/gamenote"
	"github.com/josegonzalez/gamenote/pkg/vfs"
)

// Store is the interface for token storage backends.
type Store interface {
	// Load returns the stored token. ok is false when nothing usable is stored.
	Load(ctx context.Context) (token string, ok bool)

	// Save replaces the stored token.
	Save(ctx context.Context, token string) error
}

// document is the on-disk shape of the token file.
type document struct {
	Token string `json:"igdbToken"`
}

// FileStore keeps the token in a JSON document inside the vault.
type FileStore struct {
	fs     vfs.FS
	path   string
	logger *slog.Logger
}

// FileStoreOption is a functional option for FileStore.
type FileStoreOption func(*FileStore)

// WithLogger sets the logger used for load warnings.
func WithLogger(logger *slog.Logger) FileStoreOption {
	return func(s *FileStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewFileStore creates a store reading and writing path on fs.
func NewFileStore(fs vfs.FS, path string, opts ...FileStoreOption) *FileStore {
	s := &FileStore{
		fs:     fs,
		path:   path,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the vault relative location of the token file.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the token file. Missing, unreadable and malformed documents are all reported as absent.
func (s *FileStore) Load(ctx context.Context) (string, bool) {
	exists, err := s.fs.Exists(ctx, s.path)
	if err != nil || !exists {
		return "", false
	}

	data, err := s.fs.ReadFile(ctx, s.path)
	if err != nil {
		s.logger.Warn("failed to read token file", "path", s.path, "error", err)
		return "", false
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		s.logger.Warn("token file is not valid JSON", "path", s.path, "error", err)
		return "", false
	}
	if doc.Token == "" {
		return "", false
	}
	return doc.Token, true
}

// Save writes token to the token file.
func (s *FileStore) Save(ctx context.Context, token string) error {
	data, err := json.Marshal(document{Token: token})
	if err != nil {
		return &gamenote.CacheError{Op: "save", Path: s.path, Err: err}
	}
	if err := s.fs.WriteFile(ctx, s.path, data); err != nil {
		return &gamenote.CacheError{Op: "save", Path: s.path, Err: err}
	}
	return nil
}

// NullStore never stores anything.
type NullStore struct{}

// NewNullStore creates a new NullStore.
func NewNullStore() *NullStore {
	return &NullStore{}
}

// Load always reports absent.
func (NullStore) Load(_ context.Context) (string, bool) {
	return "", false
}

// Save does nothing.
func (NullStore) Save(_ context.Context, _ string) error {
	return nil
}
