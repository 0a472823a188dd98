package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"go.uber.org/zap"

	"ir-research/pkg/httpclient"
	"ir-research/pkg/logging"
)

var ErrUnexpectedStatus = errors.New("unexpected status code")

// Downloader saves remote documents to local files. It never retries.
type Downloader struct {
	client *httpclient.HTTPClient
	logger *zap.Logger
}

// New creates a downloader
func New(client *httpclient.HTTPClient, logger *zap.Logger) *Downloader {
	return &Downloader{
		client: client,
		logger: logging.OrNop(logger),
	}
}

// Download fetches url and writes the raw body to dest, replacing any existing file.
// It returns the number of bytes written. On any failure no file is written.
func (d *Downloader) Download(ctx context.Context, url, dest string) (int64, error) {
	body, err := d.fetch(ctx, url)
	if err != nil {
		if errors.Is(err, ErrUnexpectedStatus) {
			d.logger.Warn("Failed to download", zap.String("url", url), zap.Error(err))
		} else {
			d.logger.Error("Error downloading", zap.String("url", url), zap.Error(err))
		}
		return 0, err
	}

	if err := os.WriteFile(dest, body, 0o644); err != nil {
		d.logger.Error("Error downloading", zap.String("url", url), zap.String("path", dest), zap.Error(err))
		return 0, fmt.Errorf("write %s: %w", dest, err)
	}

	d.logger.Info("Downloaded", zap.String("path", dest), zap.Int("bytes", len(body)))
	return int64(len(body)), nil
}

func (d *Downloader) fetch(ctx context.Context, url string) ([]byte, error) {
	resp, err := d.client.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}
