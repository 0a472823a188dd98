package db

import (
	"context"
	"database/sql"
	"fmt"

	"ir-research/pkg/domain"
)

const artifactTable = "artifact"

// ArtifactStore records written files in the Postgres `artifact` table.
// It works over any DBProvider, so plain Postgres and Supabase share it.
type ArtifactStore struct {
	pg DBProvider
}

// NewArtifactStore creates a store over an already connected provider
func NewArtifactStore(pg DBProvider) *ArtifactStore {
	return &ArtifactStore{pg: pg}
}

// EnsureSchema creates the artifact table when it does not exist yet.
func (s *ArtifactStore) EnsureSchema(ctx context.Context) error {
	if s.pg.DB() == nil {
		return fmt.Errorf("postgres DB not connected")
	}

	// path is the primary key; a rerun overwrites the file and the row.
	const ddl = `
CREATE TABLE IF NOT EXISTS artifact (
  path TEXT PRIMARY KEY,
  run_id TEXT NOT NULL DEFAULT '',
  ticker TEXT NOT NULL,
  kind TEXT NOT NULL,
  source_url TEXT NOT NULL DEFAULT '',
  title TEXT NOT NULL DEFAULT '',
  bytes BIGINT NOT NULL DEFAULT 0,
  saved_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`

	if _, err := s.pg.DB().ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create artifact table: %w", err)
	}
	return nil
}

const upsertArtifactQuery = `
INSERT INTO artifact (path, run_id, ticker, kind, source_url, title, bytes, saved_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (path) DO UPDATE SET
  run_id = EXCLUDED.run_id,
  ticker = EXCLUDED.ticker,
  kind = EXCLUDED.kind,
  source_url = EXCLUDED.source_url,
  title = EXCLUDED.title,
  bytes = EXCLUDED.bytes,
  saved_at = EXCLUDED.saved_at`

// SaveArtifact upserts a single record
func (s *ArtifactStore) SaveArtifact(ctx context.Context, a *domain.Artifact) error {
	if s.pg.DB() == nil {
		return fmt.Errorf("postgres DB not connected")
	}
	if a.Path == "" {
		return fmt.Errorf("artifact path is required")
	}

	if _, err := s.pg.DB().ExecContext(ctx, upsertArtifactQuery, artifactArgs(a)...); err != nil {
		return fmt.Errorf("upsert artifact path=%q: %w", a.Path, err)
	}
	return nil
}

// SaveArtifacts upserts a batch of records in one transaction and returns
// how many were written. Records without a path are skipped.
func (s *ArtifactStore) SaveArtifacts(ctx context.Context, batch []domain.Artifact) (int, error) {
	if s.pg.DB() == nil {
		return 0, fmt.Errorf("postgres DB not connected")
	}

	tx, err := s.pg.DB().BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, upsertArtifactQuery)
	if err != nil {
		return 0, fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	written := 0
	for i := range batch {
		a := &batch[i]
		if a.Path == "" {
			continue
		}
		if _, err := stmt.ExecContext(ctx, artifactArgs(a)...); err != nil {
			return 0, fmt.Errorf("upsert artifact path=%q: %w", a.Path, err)
		}
		written++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return written, nil
}

// GetArtifacts returns the records for a ticker, newest first
func (s *ArtifactStore) GetArtifacts(ctx context.Context, ticker string) ([]domain.Artifact, error) {
	if s.pg.DB() == nil {
		return nil, fmt.Errorf("postgres DB not connected")
	}

	const query = `
SELECT path, run_id, ticker, kind, source_url, title, bytes, saved_at
FROM artifact
WHERE ticker = $1
ORDER BY saved_at DESC`

	rows, err := s.pg.DB().QueryContext(ctx, query, ticker)
	if err != nil {
		return nil, fmt.Errorf("query artifacts: %w", err)
	}
	defer rows.Close()

	var out []domain.Artifact
	for rows.Next() {
		var a domain.Artifact
		var kind string
		if err := rows.Scan(&a.Path, &a.RunID, &a.Ticker, &kind, &a.SourceURL, &a.Title, &a.Bytes, &a.SavedAt); err != nil {
			return nil, fmt.Errorf("scan artifact: %w", err)
		}
		a.Kind = domain.ArtifactKind(kind)
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return out, nil
}

func artifactArgs(a *domain.Artifact) []any {
	return []any{a.Path, a.RunID, a.Ticker, string(a.Kind), a.SourceURL, a.Title, a.Bytes, a.SavedAt}
}
