package transcript

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"ir-research/pkg/content"
	"ir-research/pkg/httpclient"
	"ir-research/pkg/logging"
)

// MinLength is the number of characters a transcript must exceed to be kept.
const MinLength = 1000

const DefaultBaseURL = "https://finance.yahoo.com"

var (
	ErrNotFound         = errors.New("transcript not found")
	ErrUnexpectedStatus = errors.New("unexpected status code")
)

// Transcript is the text scraped from a transcript page
type Transcript struct {
	URL   string
	Title string
	Text  string
}

// Accepted reports whether the transcript is long enough to keep
func (t *Transcript) Accepted() bool {
	return t != nil && Accept(t.Text)
}

// Accept reports whether text is strictly longer than MinLength characters
func Accept(text string) bool {
	return utf8.RuneCountInString(text) > MinLength
}

// Scraper fetches earnings-call transcript pages
type Scraper struct {
	client    *httpclient.HTTPClient
	extractor content.Extractor
	baseURL   string
	logger    *zap.Logger
}

// NewScraper creates a scraper. An empty baseURL uses DefaultBaseURL.
func NewScraper(client *httpclient.HTTPClient, baseURL string, logger *zap.Logger) *Scraper {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Scraper{
		client:    client,
		extractor: content.NewDefaultExtractor(),
		baseURL:   strings.TrimRight(baseURL, "/"),
		logger:    logging.OrNop(logger),
	}
}

// SetExtractor replaces the page extractor
func (s *Scraper) SetExtractor(extractor content.Extractor) {
	s.extractor = extractor
}

// PageURL returns the transcript page address for a ticker
func (s *Scraper) PageURL(ticker string) string {
	return fmt.Sprintf("%s/quote/%s/earnings-call-transcript", s.baseURL, url.PathEscape(ticker))
}

// Fetch downloads and extracts the transcript for ticker. A page that cannot
// be fetched yields ErrNotFound; the returned text is not length-checked.
func (s *Scraper) Fetch(ctx context.Context, ticker string) (*Transcript, error) {
	pageURL := s.PageURL(ticker)

	page, err := s.fetchHTML(ctx, pageURL)
	if err != nil {
		s.logger.Debug("Transcript page unavailable", zap.String("ticker", ticker), zap.String("url", pageURL), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
	}

	text, err := s.extractor.ExtractTranscript(page)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
	}

	// The title only labels the saved record; a page without one is still usable.
	title, _ := s.extractor.ExtractTitle(page)

	return &Transcript{
		URL:   pageURL,
		Title: title,
		Text:  text,
	}, nil
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
