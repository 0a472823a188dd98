package edgar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"ir-research/pkg/domain"
	"ir-research/pkg/httpclient"
	"ir-research/pkg/logging"
)

var (
	// ErrFilingNotFound is returned when no document of the requested form could be resolved.
	ErrFilingNotFound   = errors.New("filing not found")
	ErrUnexpectedStatus = errors.New("unexpected status code")
)

const (
	DefaultDataBaseURL     = "https://data.sec.gov"
	DefaultArchivesBaseURL = "https://www.sec.gov"
)

// Resolver finds the most recent filing of a form type for a company
type Resolver struct {
	client       *httpclient.HTTPClient
	dataBase     string
	archivesBase string
	logger       *zap.Logger
}

// Option configures a Resolver
type Option func(*Resolver)

// WithDataBaseURL overrides the host serving the submissions index
func WithDataBaseURL(base string) Option {
	return func(r *Resolver) {
		r.dataBase = strings.TrimRight(base, "/")
	}
}

// WithArchivesBaseURL overrides the host serving filing folders
func WithArchivesBaseURL(base string) Option {
	return func(r *Resolver) {
		r.archivesBase = strings.TrimRight(base, "/")
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(r *Resolver) {
		r.logger = logging.OrNop(logger)
	}
}

// NewResolver creates a resolver that talks to EDGAR through client
func NewResolver(client *httpclient.HTTPClient, opts ...Option) *Resolver {
	r := &Resolver{
		client:       client,
		dataBase:     DefaultDataBaseURL,
		archivesBase: DefaultArchivesBaseURL,
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SubmissionsURL returns the submissions index address for a CIK
func (r *Resolver) SubmissionsURL(cik string) string {
	return fmt.Sprintf("%s/submissions/CIK%s.json", r.dataBase, cik)
}

// FolderURL returns the document folder address of a filing, with a trailing slash.
// The CIK loses its zero padding and the accession number its dashes.
func (r *Resolver) FolderURL(cik, accessionNumber string) string {
	return fmt.Sprintf("%s/Archives/edgar/data/%s/%s/", r.archivesBase, trimCIK(cik), strings.ReplaceAll(accessionNumber, "-", ""))
}

// Latest resolves the newest filing of the given form for cik.
//
// The recent-filings table is scanned newest first. A filing whose folder
// listing cannot be fetched is skipped and the scan continues; the first
// folder that is listed decides the outcome, so older filings are never
// considered once a listing has been read. ErrFilingNotFound is returned
// when nothing usable is found.
func (r *Resolver) Latest(ctx context.Context, cik string, form domain.FormType) (*domain.FilingRef, error) {
	var subs submissions
	if err := r.getJSON(ctx, r.SubmissionsURL(cik), &subs); err != nil {
		r.logger.Warn("Failed to fetch submissions", zap.String("cik", cik), zap.Error(err))
		return nil, fmt.Errorf("%w: submissions for CIK %s: %v", ErrFilingNotFound, cik, err)
	}

	recent := subs.Filings.Recent
	for i, f := range recent.Form {
		if f != string(form) {
			continue
		}
		if i >= len(recent.AccessionNumber) {
			r.logger.Warn("Recent filings table is ragged", zap.String("cik", cik), zap.Int("index", i))
			break
		}

		accession := recent.AccessionNumber[i]
		folder := r.FolderURL(cik, accession)

		var idx folderIndex
		if err := r.getJSON(ctx, folder+"index.json", &idx); err != nil {
			r.logger.Debug("Skipping filing folder", zap.String("folder", folder), zap.Error(err))
			continue
		}

		name, ok := PickDocument(idx.names(), form)
		if !ok {
			r.logger.Info("Filing folder has no usable document",
				zap.String("cik", cik), zap.String("form", string(form)), zap.String("folder", folder))
			return nil, fmt.Errorf("%w: %s folder %s has no document", ErrFilingNotFound, form, folder)
		}

		return &domain.FilingRef{
			URL:             folder + name,
			FormType:        form,
			AccessionNumber: accession,
			CIK:             cik,
		}, nil
	}

	return nil, fmt.Errorf("%w: no %s for CIK %s", ErrFilingNotFound, form, cik)
}

// PickDocument chooses the main document of a filing folder.
// The first item whose name contains the form type (case-insensitive) wins;
// otherwise the first .htm/.html item.
func PickDocument(names []string, form domain.FormType) (string, bool) {
	want := strings.ToLower(string(form))
	for _, name := range names {
		if strings.Contains(strings.ToLower(name), want) {
			return name, true
		}
	}

	// Fallback: Return the first HTML in the folder
	for _, name := range names {
		lower := strings.ToLower(name)
		if strings.HasSuffix(lower, ".htm") || strings.HasSuffix(lower, ".html") {
			return name, true
		}
	}

	return "", false
}

func (r *Resolver) getJSON(ctx context.Context, url string, v any) error {
	resp, err := r.client.Get(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", url, err)
	}
	return nil
}

func trimCIK(cik string) string {
	n, err := strconv.ParseUint(strings.TrimSpace(cik), 10, 64)
	if err != nil {
		return strings.TrimLeft(cik, "0")
	}
	return strconv.FormatUint(n, 10)
}
