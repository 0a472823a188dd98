package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"time"

	"go.uber.org/zap"

	"ir-research/pkg/config"
	"ir-research/pkg/db"
	"ir-research/pkg/logging"
	"ir-research/pkg/replication"
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
		ticker    = flag.String("ticker", "", "Only replicate records for this ticker (default: all)")
		batchSize = flag.Int("batch-size", replication.DefaultBatchSize, "Records per insert transaction")
		logLevel  = flag.String("log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")

		mongoURI         = flag.String("mongo-uri", cfg.MongoURI, "MongoDB connection string (source)")
		postgresDSN      = flag.String("postgres-dsn", cfg.PostgresDSN, "Postgres DSN (target)")
		supabaseURL      = flag.String("supabase-url", cfg.SupabaseURL, "Supabase project URL (target, when no Postgres DSN)")
		supabasePassword = flag.String("supabase-password", cfg.SupabasePassword, "Supabase database password")
	)
	flag.Parse()

	logger, err := logging.New(*logLevel, cfg.LogDev)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer logger.Sync()

	cfg.MongoURI = *mongoURI
	cfg.PostgresDSN = *postgresDSN
	cfg.SupabaseURL = *supabaseURL
	cfg.SupabasePassword = *supabasePassword

	ctx := context.Background()

	stores, err := db.Open(ctx, cfg.StoreOptions())
	if err != nil {
		return fmt.Errorf("open stores: %w", err)
	}
	defer stores.Close(ctx)

	if stores.Mongo == nil || stores.SQL == nil {
		return errors.New("replication needs -mongo-uri and a Postgres DSN or Supabase database password")
	}

	replicator, err := replication.NewReplicator(replication.Config{
		Source:    stores.Mongo,
		Sink:      stores.SQL,
		BatchSize: *batchSize,
		Logger:    logger,
	})
	if err != nil {
		return fmt.Errorf("create replicator: %w", err)
	}

	start := time.Now()
	res, err := replicator.Replicate(ctx, *ticker)
	if err != nil {
		return fmt.Errorf("replicate: %w", err)
	}
	logger.Info("Done", zap.Int("read", res.Read), zap.Int("written", res.Written), zap.Duration("duration", time.Since(start)))
	return nil
}
