package gamenote

import (
	"path"
	"strings"
	"time"
)

// TokenFileName is the name of the cached token document inside the config directory.
const TokenFileName = "igdbToken.json"

// Settings is the per-session configuration.
type Settings struct {
	// ClientID is the IGDB (Twitch) application client ID
	ClientID string `yaml:"client_id" toml:"client_id" json:"client_id"`
	// ClientSecret is the IGDB (Twitch) application client secret
	ClientSecret string `yaml:"client_secret" toml:"client_secret" json:"client_secret"`
	// PosterPath is the vault directory that receives downloaded covers
	PosterPath string `yaml:"poster_path" toml:"poster_path" json:"poster_path"`
	// UseClipboard seeds the query prompt with the clipboard contents
	UseClipboard bool `yaml:"use_clipboard" toml:"use_clipboard" json:"use_clipboard"`
	// Vault is the vault root, as a path or an afs URL
	Vault string `yaml:"vault" toml:"vault" json:"vault"`
	// ConfigDir is the vault-relative host configuration directory
	ConfigDir string `yaml:"config_dir" toml:"config_dir" json:"config_dir"`
	// NotesDir is the vault-relative directory rendered notes are written to
	NotesDir string `yaml:"notes_dir" toml:"notes_dir" json:"notes_dir"`
	// Template is an optional path to a note template file
	Template string `yaml:"template" toml:"template" json:"template"`
	// LogLevel is one of debug, info, warn, error
	LogLevel string `yaml:"log_level" toml:"log_level" json:"log_level"`
	// LogFormat is "text" or "json"
	LogFormat string `yaml:"log_format" toml:"log_format" json:"log_format"`
	// Timeout is the HTTP request timeout in seconds
	Timeout int `yaml:"timeout" toml:"timeout" json:"timeout"`
}

// DefaultSettings returns settings with sensible defaults.
func DefaultSettings() Settings {
	return Settings{
		Vault:     ".",
		ConfigDir: ".obsidian",
		LogLevel:  "warn",
		LogFormat: "text",
		Timeout:   30,
	}
}

// Credentials returns the client credentials pair.
func (s Settings) Credentials() Credentials {
	return Credentials{ClientID: s.ClientID, ClientSecret: s.ClientSecret}
}

// TokenPath returns the vault-relative location of the cached token.
func (s Settings) TokenPath() string {
	return path.Join(strings.Trim(s.ConfigDir, "/"), TokenFileName)
}

// RequestTimeout returns Timeout as a duration, falling back to 30s.
func (s Settings) RequestTimeout() time.Duration {
	if s.Timeout <= 0 {
		return 30 * time.Second
	}
	return time.Duration(s.Timeout) * time.Second
}

// Validate checks that a session can be started with these settings.
func (s Settings) Validate() error {
	if strings.TrimSpace(s.ClientID) == "" {
		return &ConfigError{Field: "client_id", Details: "IGDB API Client ID is required"}
	}
	if strings.TrimSpace(s.ClientSecret) == "" {
		return &ConfigError{Field: "client_secret", Details: "IGDB API Client secret is required"}
	}
	if strings.TrimSpace(s.Vault) == "" {
		return &ConfigError{Field: "vault", Details: "vault location is required"}
	}
	switch strings.ToLower(s.LogFormat) {
	case "", "text", "json":
	default:
		return &ConfigError{Field: "log_format", Details: "must be text or json"}
	}
	return nil
}

// Option is a functional option for configuring Settings.
type Option func(*Settings)

// NewSettings returns DefaultSettings with opts applied.
func NewSettings(opts ...Option) Settings {
	s := DefaultSettings()
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Apply applies opts to s in order.
func (s *Settings) Apply(opts ...Option) {
	for _, opt := range opts {
		opt(s)
	}
}

// WithIGDB sets the IGDB client credentials.
func WithIGDB(clientID, clientSecret string) Option {
	return func(s *Settings) {
		s.ClientID = clientID
		s.ClientSecret = clientSecret
	}
}

// WithVault sets the vault root.
func WithVault(vault string) Option {
	return func(s *Settings) {
		s.Vault = vault
	}
}

// WithPosterPath sets the vault directory for covers.
func WithPosterPath(dir string) Option {
	return func(s *Settings) {
		s.PosterPath = dir
	}
}

// WithClipboard toggles seeding the query from the clipboard.
func WithClipboard(enabled bool) Option {
	return func(s *Settings) {
		s.UseClipboard = enabled
	}
}

// WithConfigDir sets the host configuration directory.
func WithConfigDir(dir string) Option {
	return func(s *Settings) {
		s.ConfigDir = dir
	}
}

// WithNotesDir sets the directory rendered notes are written to.
func WithNotesDir(dir string) Option {
	return func(s *Settings) {
		s.NotesDir = dir
	}
}

// WithTemplate sets the note template file.
func WithTemplate(file string) Option {
	return func(s *Settings) {
		s.Template = file
	}
}

// WithLogging sets the log level and format.
func WithLogging(level, format string) Option {
	return func(s *Settings) {
		if level != "" {
			s.LogLevel = level
		}
		if format != "" {
			s.LogFormat = format
		}
	}
}

// WithTimeout sets the request timeout in seconds.
func WithTimeout(seconds int) Option {
	return func(s *Settings) {
		s.Timeout = seconds
	}
}
