// Package app wires settings into a ready to run lookup: vault, token
// cache, IGDB client, cover fetcher, logging and metrics.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/josegonzalez/gamenote/pkg/asset"
	"github.com/josegonzalez/gamenote/pkg/auth"
	"github.com/josegonzalez/gamenote/pkg/cache"
	"github.com/josegonzalez/gamenote/pkg/filename"
	"github.com/josegonzalez/gamenote/pkg/gamenote"
	"github.com/josegonzalez/gamenote/pkg/internal/logging"
	"github.com/josegonzalez/gamenote/pkg/internal/metrics"
	"github.com/josegonzalez/gamenote/pkg/internal/normalization"
	"github.com/josegonzalez/gamenote/pkg/prompt"
	"github.com/josegonzalez/gamenote/pkg/provider/igdb"
	"github.com/josegonzalez/gamenote/pkg/render"
	"github.com/josegonzalez/gamenote/pkg/session"
	"github.com/josegonzalez/gamenote/pkg/vfs"
)

// Output formats accepted by Render.
const (
	OutputNote = "note"
	OutputYAML = "yaml"
	OutputJSON = "json"
)

// ErrNoteExists indicates that a note would be overwritten without force.
var ErrNoteExists = errors.New("note already exists")

// Options adjusts how New builds an App.
type Options struct {
	// LogOutput receives log records. Nil discards them.
	LogOutput io.Writer
	// NoTokenCache keeps tokens in memory only.
	NoTokenCache bool
	// BaseURL and TokenURL override the IGDB and Twitch endpoints.
	BaseURL  string
	TokenURL string
	// HTTPClient replaces the client built from the settings timeout.
	HTTPClient *http.Client
}

// App holds the components of one configured run.
type App struct {
	settings gamenote.Settings
	vault    *vfs.Vault
	logger   *slog.Logger
	metrics  *metrics.Metrics
	store    cache.Store
	tokens   *auth.Manager
	pipeline *igdb.Pipeline
	covers   *asset.Fetcher
}

// New validates settings and builds every component.
func New(settings gamenote.Settings, opts Options) (*App, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	logger := logging.Discard()
	if opts.LogOutput != nil {
		logger = logging.New(opts.LogOutput, logging.Config{Format: settings.LogFormat, Level: settings.LogLevel})
	}

	vault, err := vfs.New(settings.Vault)
	if err != nil {
		return nil, &gamenote.ConfigError{Field: "vault", Details: err.Error()}
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: settings.RequestTimeout()}
	}

	mt := metrics.New()
	clientOpts := igdb.Options{
		BaseURL:    opts.BaseURL,
		TokenURL:   opts.TokenURL,
		HTTPClient: httpClient,
		Logger:     logger,
		Metrics:    mt,
	}

	var store cache.Store
	if opts.NoTokenCache {
		store = cache.NewMemoryStore("")
	} else {
		store = cache.NewFileStore(vault, settings.TokenPath(), cache.WithLogger(logger))
	}

	a := &App{
		settings: settings,
		vault:    vault,
		logger:   logger,
		metrics:  mt,
		store:    store,
	}
	a.tokens = auth.NewManager(settings.Credentials(), igdb.NewTokenAuthority(clientOpts), store,
		auth.WithLogger(logger), auth.WithMetrics(mt))
	a.pipeline = igdb.NewPipeline(igdb.NewClient(settings.ClientID, clientOpts), logger)
	a.covers = asset.NewFetcher(vault,
		asset.WithHTTPClient(httpClient), asset.WithLogger(logger), asset.WithMetrics(mt))

	logger.Debug("configured",
		"vault", vault.Root(),
		"token_path", settings.TokenPath(),
		"token_cache", !opts.NoTokenCache,
		"client_id", normalization.MaskToken(settings.ClientID),
	)
	return a, nil
}

// Logger returns the configured logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Vault returns the vault file system.
func (a *App) Vault() *vfs.Vault {
	return a.vault
}

// Tokens returns the access token manager.
func (a *App) Tokens() *auth.Manager {
	return a.tokens
}

// CachedToken returns the stored access token, if any.
func (a *App) CachedToken(ctx context.Context) (string, bool) {
	return a.store.Load(ctx)
}

// Session builds an interactive session. A non-empty query pre-fills the prompt.
func (a *App) Session(prompter prompt.Prompter, notifier prompt.Notifier, clipboard prompt.Clipboard, query string) *session.Session {
	opts := []session.Option{
		session.WithQuery(query),
		session.WithLogger(a.logger),
		session.WithCoverFetcher(a.covers, a.settings.PosterPath),
	}
	if notifier != nil {
		opts = append(opts, session.WithNotifier(notifier))
	}
	if a.settings.UseClipboard && clipboard != nil {
		opts = append(opts, session.WithClipboard(clipboard))
	}
	return session.New(a.tokens, a.pipeline, prompter, opts...)
}

// Template returns the configured note template, or "" for the default one.
func (a *App) Template(ctx context.Context) (string, error) {
	if strings.TrimSpace(a.settings.Template) == "" {
		return "", nil
	}
	data, err := a.vault.ReadFile(ctx, a.settings.Template)
	if err != nil {
		return "", fmt.Errorf("read template %s: %w", a.settings.Template, err)
	}
	return string(data), nil
}

// Render serializes vars in the given output format.
func (a *App) Render(ctx context.Context, vars *session.Variables, output string) ([]byte, error) {
	switch strings.ToLower(output) {
	case "", OutputNote:
		tmpl, err := a.Template(ctx)
		if err != nil {
			return nil, err
		}
		note, err := render.Note(vars, tmpl)
		if err != nil {
			return nil, err
		}
		return []byte(note), nil
	case OutputYAML:
		return render.YAML(vars)
	case OutputJSON:
		return render.JSON(vars)
	default:
		return nil, &gamenote.ConfigError{Field: "output", Details: "must be note, yaml or json"}
	}
}

// NotePath returns the vault path a note for vars is written to.
func (a *App) NotePath(vars *session.Variables) string {
	name, _ := vars.Record.Value("fileName").TextValue()
	if strings.TrimSpace(name) == "" {
		name = fmt.Sprintf("igdb-%d", vars.Original.ID)
	}
	return filename.Join(a.settings.NotesDir, name+".md")
}

// WriteNote stores content at NotePath. An existing note is only replaced with force.
func (a *App) WriteNote(ctx context.Context, vars *session.Variables, content []byte, force bool) (string, error) {
	target := a.NotePath(vars)
	exists, err := a.vault.Exists(ctx, target)
	if err != nil {
		return "", fmt.Errorf("check note %s: %w", target, err)
	}
	if exists && !force {
		return "", fmt.Errorf("%w: %s", ErrNoteExists, target)
	}
	if err := a.vault.WriteFile(ctx, target, content); err != nil {
		return "", fmt.Errorf("write note %s: %w", target, err)
	}
	a.logger.Info("note written", "path", target)
	return target, nil
}

// WriteMetrics writes the collected counters in the textfile collector format.
func (a *App) WriteMetrics(path string) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	return a.metrics.WriteTextfile(path)
}

// MaskToken hides all but the edges of a secret for display.
func MaskToken(token string) string {
	return normalization.MaskToken(token)
}

// Redacted returns the settings as a flat map with secrets masked.
func (a *App) Redacted() map[string]string {
	s := a.settings
	return normalization.MaskSensitiveValues(map[string]string{
		"client_id":     s.ClientID,
		"client_secret": s.ClientSecret,
		"vault":         a.vault.Root(),
		"config_dir":    s.ConfigDir,
		"notes_dir":     s.NotesDir,
		"poster_path":   s.PosterPath,
		"template":      s.Template,
		"use_clipboard": fmt.Sprint(s.UseClipboard),
		"log_level":     s.LogLevel,
		"log_format":    s.LogFormat,
		"timeout":       fmt.Sprint(s.Timeout),
	})
}
