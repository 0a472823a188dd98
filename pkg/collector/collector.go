package collector

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ir-research/pkg/domain"
	"ir-research/pkg/logging"
	"ir-research/pkg/transcript"
)

const DefaultPause = time.Second

// Resolver finds the newest filing of a form type for a company
type Resolver interface {
	Latest(ctx context.Context, cik string, form domain.FormType) (*domain.FilingRef, error)
}

// Downloader writes a remote document to a local path
type Downloader interface {
	Download(ctx context.Context, url, dest string) (int64, error)
}

// TranscriptFetcher scrapes the transcript page for a ticker
type TranscriptFetcher interface {
	Fetch(ctx context.Context, ticker string) (*transcript.Transcript, error)
}

// Recorder persists a record of every file the collector writes
type Recorder interface {
	SaveArtifact(ctx context.Context, artifact *domain.Artifact) error
}

// Summary counts what a run produced
type Summary struct {
	RunID     string
	Companies int
	Saved     map[domain.ArtifactKind]int
	Missing   map[domain.ArtifactKind]int
}

func newSummary(runID string) Summary {
	return Summary{
		RunID:   runID,
		Saved:   make(map[domain.ArtifactKind]int),
		Missing: make(map[domain.ArtifactKind]int),
	}
}

// Config wires the collector dependencies
type Config struct {
	Resolver    Resolver
	Downloader  Downloader
	Transcripts TranscriptFetcher
	Recorder    Recorder
	OutputDir   string
	Pause       time.Duration
	Logger      *zap.Logger
}

// Collector fetches the latest filings and transcript for each company, one at a time
type Collector struct {
	resolver    Resolver
	downloader  Downloader
	transcripts TranscriptFetcher
	recorder    Recorder
	outputDir   string
	pause       time.Duration
	logger      *zap.Logger

	sleep func(context.Context, time.Duration)
	now   func() time.Time
}

// New creates a collector. A zero Pause uses DefaultPause; a negative Pause disables it.
func New(cfg Config) (*Collector, error) {
	if cfg.Resolver == nil {
		return nil, fmt.Errorf("filing resolver is required")
	}
	if cfg.Downloader == nil {
		return nil, fmt.Errorf("downloader is required")
	}
	if cfg.Transcripts == nil {
		return nil, fmt.Errorf("transcript fetcher is required")
	}

	outputDir := cfg.OutputDir
	if outputDir == "" {
		outputDir = "output"
	}
	pause := cfg.Pause
	if pause == 0 {
		pause = DefaultPause
	}

	return &Collector{
		resolver:    cfg.Resolver,
		downloader:  cfg.Downloader,
		transcripts: cfg.Transcripts,
		recorder:    cfg.Recorder,
		outputDir:   outputDir,
		pause:       pause,
		logger:      logging.OrNop(cfg.Logger),
		sleep:       sleepContext,
		now:         time.Now,
	}, nil
}

// Run processes every company in order. A failure for one company is logged
// and never stops the batch. Run returns early only when ctx is cancelled.
func (c *Collector) Run(ctx context.Context, companies []domain.Company) Summary {
	summary := newSummary(uuid.NewString())
	logger := c.logger.With(zap.String("run_id", summary.RunID))
	logger.Info("Starting collection", zap.Int("companies", len(companies)), zap.String("output", c.outputDir))

	for _, company := range companies {
		if ctx.Err() != nil {
			logger.Warn("Collection cancelled", zap.Error(ctx.Err()))
			break
		}

		c.collect(ctx, logger, company, &summary)
		summary.Companies++

		c.sleep(ctx, c.pause)
	}

	logger.Info("Collection finished",
		zap.Int("companies", summary.Companies),
		zap.Any("saved", summary.Saved),
		zap.Any("missing", summary.Missing))
	return summary
}

func (c *Collector) collect(ctx context.Context, logger *zap.Logger, company domain.Company, summary *Summary) {
	logger = logger.With(zap.String("ticker", company.Ticker))
	logger.Info("Processing", zap.String("cik", company.CIK))

	dir := filepath.Join(c.outputDir, company.Ticker)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logger.Error("Failed to create output directory", zap.String("path", dir), zap.Error(err))
		return
	}

	for _, form := range []domain.FormType{domain.Quarterly, domain.Annual} {
		kind := domain.KindForForm(form)
		if c.saveFiling(ctx, logger, company, form, dir, summary.RunID) {
			summary.Saved[kind]++
		} else {
			summary.Missing[kind]++
		}
	}

	if c.saveTranscript(ctx, logger, company, dir, summary.RunID) {
		summary.Saved[domain.Transcript]++
	} else {
		summary.Missing[domain.Transcript]++
	}
}

func (c *Collector) saveFiling(ctx context.Context, logger *zap.Logger, company domain.Company, form domain.FormType, dir, runID string) bool {
	ref, err := c.resolver.Latest(ctx, company.CIK, form)
	if err != nil {
		logger.Info(fmt.Sprintf("No %s found for %s", form, company.Ticker), zap.Error(err))
		return false
	}

	kind := domain.KindForForm(form)
	path := filepath.Join(dir, kind.FileName(company.Ticker))
	n, err := c.downloader.Download(ctx, ref.URL, path)
	if err != nil {
		return false
	}

	c.record(ctx, logger, &domain.Artifact{
		RunID:     runID,
		Ticker:    company.Ticker,
		Kind:      kind,
		Path:      path,
		SourceURL: ref.URL,
		Title:     ref.AccessionNumber,
		Bytes:     n,
		SavedAt:   c.now().UTC(),
	})
	return true
}

func (c *Collector) saveTranscript(ctx context.Context, logger *zap.Logger, company domain.Company, dir, runID string) bool {
	notFound := fmt.Sprintf("No transcript found for %s", company.Ticker)

	t, err := c.transcripts.Fetch(ctx, company.Ticker)
	if err != nil {
		logger.Info(notFound, zap.Error(err))
		return false
	}
	if !t.Accepted() {
		logger.Info(notFound, zap.Int("chars", len([]rune(t.Text))))
		return false
	}

	path := filepath.Join(dir, domain.Transcript.FileName(company.Ticker))
	if err := os.WriteFile(path, []byte(t.Text), 0o644); err != nil {
		logger.Error("Failed to write transcript", zap.String("path", path), zap.Error(err))
		return false
	}
	logger.Info(fmt.Sprintf("Transcript saved for %s", company.Ticker), zap.String("path", path))

	c.record(ctx, logger, &domain.Artifact{
		RunID:     runID,
		Ticker:    company.Ticker,
		Kind:      domain.Transcript,
		Path:      path,
		SourceURL: t.URL,
		Title:     t.Title,
		Bytes:     int64(len(t.Text)),
		SavedAt:   c.now().UTC(),
	})
	return true
}

func (c *Collector) record(ctx context.Context, logger *zap.Logger, artifact *domain.Artifact) {
	if c.recorder == nil {
		return
	}
	if err := c.recorder.SaveArtifact(ctx, artifact); err != nil {
		logger.Warn("Failed to record artifact", zap.String("path", artifact.Path), zap.Error(err))
	}
}

func sleepContext(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
