package earnings

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"ir-research/pkg/content"
	"ir-research/pkg/domain"
	"ir-research/pkg/httpclient"
	"ir-research/pkg/logging"
)

const DefaultBaseURL = "https://finance.yahoo.com"

var ErrUnexpectedStatus = errors.New("unexpected status code")

// Scraper pulls the first table off a ticker's earnings page
type Scraper struct {
	client  *httpclient.HTTPClient
	baseURL string
	logger  *zap.Logger
}

// NewScraper creates a scraper. An empty baseURL uses DefaultBaseURL.
func NewScraper(client *httpclient.HTTPClient, baseURL string, logger *zap.Logger) *Scraper {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Scraper{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logging.OrNop(logger),
	}
}

// PageURL returns the earnings page address for a ticker
func (s *Scraper) PageURL(ticker string) string {
	return fmt.Sprintf("%s/calendar/earnings?symbol=%s", s.baseURL, url.QueryEscape(ticker))
}

// FetchTable returns the first table on the ticker's earnings page.
// A page without tables yields an empty, non-nil table.
func (s *Scraper) FetchTable(ctx context.Context, ticker string) (*content.Table, error) {
	page, err := s.fetchHTML(ctx, s.PageURL(ticker))
	if err != nil {
		return nil, err
	}

	table, err := content.ExtractFirstTable(page)
	if err != nil {
		return nil, err
	}
	if table == nil {
		return &content.Table{}, nil
	}
	return table, nil
}

// Save writes the ticker's earnings table to <dir>/<TICKER>_earnings.csv.
// It returns the path written, or "" when the table was empty and nothing was written.
func (s *Scraper) Save(ctx context.Context, ticker, dir string) (string, error) {
	table, err := s.FetchTable(ctx, ticker)
	if err != nil {
		s.logger.Warn("Failed to fetch earnings page", zap.String("ticker", ticker), zap.Error(err))
		return "", err
	}

	if table.Empty() {
		s.logger.Info("No earnings table found", zap.String("ticker", ticker))
		return "", nil
	}

	path := filepath.Join(dir, domain.EarningsTable.FileName(ticker))
	if err := WriteCSVFile(path, table); err != nil {
		s.logger.Error("Failed to write earnings table", zap.String("path", path), zap.Error(err))
		return "", err
	}

	s.logger.Info("Saved earnings table",
		zap.String("ticker", ticker),
		zap.String("path", path),
		zap.Int("rows", len(table.Rows)),
		zap.Int("columns", table.NumColumns()))
	return path, nil
}

// WriteCSV writes the header (when present) followed by every data row
func WriteCSV(w io.Writer, table *content.Table) error {
	cw := csv.NewWriter(w)
	if len(table.Header) > 0 {
		if err := cw.Write(table.Header); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	if err := cw.WriteAll(table.Rows); err != nil {
		return fmt.Errorf("write rows: %w", err)
	}
	return nil
}

// WriteCSVFile writes the table to path, replacing any existing file
func WriteCSVFile(path string, table *content.Table) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	if err := WriteCSV(file, table); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func (s *Scraper) fetchHTML(ctx context.Context, pageURL string) (string, error) {
	resp, err := s.client.Get(ctx, pageURL)
	if err != nil {
		return "", fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	return string(body), nil
}
