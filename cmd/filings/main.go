package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"ir-research/pkg/collector"
	"ir-research/pkg/companies"
	"ir-research/pkg/config"
	"ir-research/pkg/db"
	"ir-research/pkg/download"
	"ir-research/pkg/edgar"
	"ir-research/pkg/httpclient"
	"ir-research/pkg/logging"
	"ir-research/pkg/transcript"
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
		companiesFile = flag.String("companies", cfg.CompaniesFile, "YAML or text file of ticker/CIK pairs (default: built-in peer list)")
		outputDir     = flag.String("output", cfg.OutputDir, "Directory that receives one folder per ticker")
		userAgent     = flag.String("user-agent", cfg.UserAgent, "User-Agent sent with every request")
		pause         = flag.Duration("pause", cfg.Pause, "Pause after each company")
		logLevel      = flag.String("log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")

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

	list, err := companies.LoadCompanies(*companiesFile)
	if err != nil {
		return fmt.Errorf("load company list %q: %w", *companiesFile, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg.MongoURI = *mongoURI
	cfg.PostgresDSN = *postgresDSN
	cfg.SupabaseURL = *supabaseURL
	cfg.SupabaseKey = *supabaseKey
	cfg.SupabasePassword = *supabasePassword

	var recorder collector.Recorder
	if opts := cfg.StoreOptions(); opts.Enabled() {
		stores, err := db.Open(ctx, opts)
		if err != nil {
			return fmt.Errorf("open run-record store: %w", err)
		}
		defer stores.Close(context.Background())
		recorder = stores.Recorder()
	}

	client := httpclient.NewClient(*userAgent)
	c, err := collector.New(collector.Config{
		Resolver: edgar.NewResolver(client,
			edgar.WithDataBaseURL(cfg.SubmissionsBaseURL),
			edgar.WithArchivesBaseURL(cfg.ArchivesBaseURL),
			edgar.WithLogger(logger)),
		Downloader:  download.New(client, logger),
		Transcripts: transcript.NewScraper(client, cfg.TranscriptBaseURL, logger),
		Recorder:    recorder,
		OutputDir:   *outputDir,
		Pause:       *pause,
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("create collector: %w", err)
	}

	start := time.Now()
	summary := c.Run(ctx, list)
	logger.Info("Done",
		zap.String("run_id", summary.RunID),
		zap.Int("companies", summary.Companies),
		zap.Duration("duration", time.Since(start)))
	return nil
}
