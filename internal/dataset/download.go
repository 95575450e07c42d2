// Package dataset fetches and parses the raw Storm Events archive.
package dataset

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// Downloader fetches the compressed archive to local disk.
type Downloader struct {
	httpClient *http.Client
	logger     *slog.Logger
}

// NewDownloader creates a Downloader with the given request timeout.
func NewDownloader(timeout time.Duration, logger *slog.Logger) *Downloader {
	return &Downloader{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Fetch downloads sourceURL to destPath unless the file already exists.
// The archive is written via a temp file and renamed so an interrupted
// download never leaves a truncated archive behind. A failed download is
// fatal to the run; there is no retry policy.
func (d *Downloader) Fetch(ctx context.Context, sourceURL, destPath string) error {
	if info, err := os.Stat(destPath); err == nil && info.Size() > 0 {
		d.logger.Info("archive already present, skipping download",
			"path", destPath, "size_bytes", info.Size())
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	d.logger.Info("downloading archive", "url", sourceURL, "dest", destPath)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("download archive: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download archive: status %d from %s", resp.StatusCode, sourceURL)
	}

	tmp, err := os.CreateTemp(filepath.Dir(destPath), ".download-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	written, err := io.Copy(tmp, resp.Body)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("write archive: %w", err)
	}

	if err := os.Rename(tmp.Name(), destPath); err != nil {
		return fmt.Errorf("move archive into place: %w", err)
	}

	d.logger.Info("archive downloaded", "path", destPath, "size_bytes", written)
	return nil
}
