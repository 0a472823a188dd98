package replication

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"ir-research/pkg/domain"
	"ir-research/pkg/logging"
)

const DefaultBatchSize = 100

// Source lists artifact records; an empty ticker means all of them
type Source interface {
	GetArtifacts(ctx context.Context, ticker string) ([]domain.Artifact, error)
}

// Sink writes a batch of artifact records
type Sink interface {
	EnsureSchema(ctx context.Context) error
	SaveArtifacts(ctx context.Context, batch []domain.Artifact) (int, error)
}

// Config wires the replication dependencies.
type Config struct {
	Source    Source
	Sink      Sink
	BatchSize int
	Logger    *zap.Logger
}

// Replicator copies run records from MongoDB into the Postgres artifact table.
type Replicator struct {
	source    Source
	sink      Sink
	batchSize int
	logger    *zap.Logger
}

func NewReplicator(cfg Config) (*Replicator, error) {
	if cfg.Source == nil {
		return nil, fmt.Errorf("source is required")
	}
	if cfg.Sink == nil {
		return nil, fmt.Errorf("sink is required")
	}
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Replicator{
		source:    cfg.Source,
		sink:      cfg.Sink,
		batchSize: batchSize,
		logger:    logging.OrNop(cfg.Logger),
	}, nil
}

// Result counts what a replication pass did
type Result struct {
	Read    int
	Written int
}

// Replicate reads the records for ticker (all records when empty) and
// upserts them into the sink in batches. It stops at the first failed batch.
func (r *Replicator) Replicate(ctx context.Context, ticker string) (Result, error) {
	var res Result

	if err := r.sink.EnsureSchema(ctx); err != nil {
		return res, err
	}

	artifacts, err := r.source.GetArtifacts(ctx, ticker)
	if err != nil {
		return res, fmt.Errorf("read artifacts: %w", err)
	}
	res.Read = len(artifacts)
	r.logger.Info("Loaded artifact records", zap.Int("count", res.Read), zap.String("ticker", ticker))

	for start := 0; start < len(artifacts); start += r.batchSize {
		end := min(start+r.batchSize, len(artifacts))

		written, err := r.sink.SaveArtifacts(ctx, artifacts[start:end])
		if err != nil {
			return res, fmt.Errorf("batch [%d:%d]: %w", start, end, err)
		}
		res.Written += written
		r.logger.Debug("Replicated batch", zap.Int("start", start), zap.Int("end", end), zap.Int("written", written))
	}

	r.logger.Info("Replication complete", zap.Int("read", res.Read), zap.Int("written", res.Written))
	return res, nil
}
