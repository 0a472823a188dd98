package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ir-research/pkg/companies"
	"ir-research/pkg/config"
	"ir-research/pkg/db"
	"ir-research/pkg/domain"
	"ir-research/pkg/earnings"
	"ir-research/pkg/httpclient"
	"ir-research/pkg/logging"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	var (
		tickersFile = flag.String("tickers", cfg.TickersFile, "YAML or text file of tickers (default: built-in peer list)")
		outDir      = flag.String("out", cfg.EarningsDir, "Directory for <TICKER>_earnings.csv files")
		userAgent   = flag.String("user-agent", cfg.UserAgent, "User-Agent sent with every request")
		logLevel    = flag.String("log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")

		mongoURI         = flag.String("mongo-uri", cfg.MongoURI, "MongoDB connection string for run records (optional)")
		postgresDSN      = flag.String("postgres-dsn", cfg.PostgresDSN, "Postgres DSN for run records (optional)")
		supabaseURL      = flag.String("supabase-url", cfg.SupabaseURL, "Supabase project URL for run records (optional)")
		supabaseKey      = flag.String("supabase-key", cfg.SupabaseKey, "Supabase API key (REST mode when no password is set)")
		supabasePassword = flag.String("supabase-password", cfg.SupabasePassword, "Supabase database password")
	)
	flag.Parse()

	logger, err := logging.New(*logLevel, cfg.LogDev)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer logger.Sync()

	tickers, err := companies.LoadTickers(*tickersFile)
	if err != nil {
		return fmt.Errorf("load ticker list %q: %w", *tickersFile, err)
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg.MongoURI = *mongoURI
	cfg.PostgresDSN = *postgresDSN
	cfg.SupabaseURL = *supabaseURL
	cfg.SupabaseKey = *supabaseKey
	cfg.SupabasePassword = *supabasePassword

	var recorder db.Recorders
	if opts := cfg.StoreOptions(); opts.Enabled() {
		stores, err := db.Open(ctx, opts)
		if err != nil {
			return fmt.Errorf("open run-record store: %w", err)
		}
		defer stores.Close(context.Background())
		recorder = stores.Recorder()
	}

	runID := uuid.NewString()
	scraper := earnings.NewScraper(httpclient.NewClient(*userAgent), cfg.EarningsBaseURL, logger)

	saved := 0
	for _, ticker := range tickers {
		if ctx.Err() != nil {
			break
		}

		path, err := scraper.Save(ctx, ticker, *outDir)
		if err != nil || path == "" {
			continue
		}
		saved++

		artifact := &domain.Artifact{
			RunID:     runID,
			Ticker:    ticker,
			Kind:      domain.EarningsTable,
			Path:      path,
			SourceURL: scraper.PageURL(ticker),
			Bytes:     fileSize(path),
			SavedAt:   time.Now().UTC(),
		}
		if err := recorder.SaveArtifact(ctx, artifact); err != nil {
			logger.Warn("Failed to record artifact", zap.String("path", path), zap.Error(err))
		}
	}

	logger.Info("Done", zap.String("run_id", runID), zap.Int("tickers", len(tickers)), zap.Int("saved", saved))
	return nil
}

func fileSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}
