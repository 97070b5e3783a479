// Package asset downloads cover images into the vault.
package asset

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/josegonzalez/gamenote/pkg/filename"
	"github.com/josegonzalez/gamenote/pkg/internal/logging"
	"github.com/josegonzalez/gamenote/pkg/internal/metrics"
	"github.com/josegonzalez/gamenote/pkg/vfs"
)

// Fetcher stores remote images under the vault.
type Fetcher struct {
	fs         vfs.FS
	httpClient *http.Client
	userAgent  string
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

// Option is a functional option for Fetcher.
type Option func(*Fetcher)

// WithHTTPClient sets the client used for downloads.
func WithHTTPClient(client *http.Client) Option {
	return func(f *Fetcher) {
		if client != nil {
			f.httpClient = client
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) {
		f.logger = logging.OrDiscard(logger)
	}
}

// WithMetrics sets the metrics sink.
func WithMetrics(m *metrics.Metrics) Option {
	return func(f *Fetcher) {
		f.metrics = m
	}
}

// NewFetcher creates a fetcher writing to fs.
func NewFetcher(fs vfs.FS, opts ...Option) *Fetcher {
	f := &Fetcher{
		fs:         fs,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		userAgent:  "gamenote/1.0",
		logger:     logging.Discard(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// TargetPath computes where the cover at posterURL is stored for gameName under baseDir.
// ok is false when posterURL has no path separator or its basename lacks a name or extension.
func TargetPath(posterURL, gameName, baseDir string) (dir, target string, ok bool) {
	i := strings.LastIndex(posterURL, "/")
	if i == -1 {
		return "", "", false
	}

	name, ext, ok := filename.SplitExt(posterURL[i:])
	name, ext = filename.Sanitize(name), filename.Sanitize(ext)
	if !ok || name == "" || ext == "" {
		return "", "", false
	}

	dir = filename.SanitizePath(baseDir)
	target = filename.Join(dir, filename.Sanitize(gameName)+"-"+name+"."+ext)
	return dir, target, true
}

// DownloadCover stores the image at posterURL and returns its vault path.
// An existing file at the target path is reused without fetching. The target
// directory is only created once the image bytes are in hand. Failures are
// logged and reported as ok == false.
func (f *Fetcher) DownloadCover(ctx context.Context, posterURL, gameName, baseDir string) (string, bool) {
	dir, target, ok := TargetPath(posterURL, gameName, baseDir)
	if !ok {
		f.logger.Debug("cover URL has no usable file name", "url", posterURL)
		return "", false
	}

	dirExists, err := f.fs.Exists(ctx, dir)
	if err != nil {
		f.logger.Warn("failed to check cover directory", "dir", dir, "error", err)
		dirExists = false
	}

	targetExists, err := f.fs.Exists(ctx, target)
	if err == nil && targetExists {
		f.metrics.CoverDownload(metrics.ResultSkipped)
		f.logger.Debug("cover already downloaded", "path", target)
		return target, true
	}

	data, err := f.fetch(ctx, posterURL)
	if err != nil {
		f.metrics.CoverDownload(metrics.ResultFailure)
		f.logger.Error("failed to download cover", "url", posterURL, "error", err)
		return "", false
	}

	if !dirExists && dir != "/" {
		if err := f.fs.MkdirAll(ctx, dir); err != nil {
			f.metrics.CoverDownload(metrics.ResultFailure)
			f.logger.Error("failed to create cover directory", "dir", dir, "error", err)
			return "", false
		}
	}

	if err := f.fs.WriteFile(ctx, target, data); err != nil {
		f.metrics.CoverDownload(metrics.ResultFailure)
		f.logger.Error("failed to write cover", "path", target, "error", err)
		return "", false
	}

	f.metrics.CoverDownload(metrics.ResultSuccess)
	f.logger.Info("cover downloaded", "path", target, "bytes", len(data))
	return target, true
}

func (f *Fetcher) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return data, nil
}
