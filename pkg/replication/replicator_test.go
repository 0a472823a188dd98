package replication

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"ir-research/pkg/domain"
)

type sliceSource struct {
	artifacts []domain.Artifact
	ticker    string
}

func (s *sliceSource) GetArtifacts(_ context.Context, ticker string) ([]domain.Artifact, error) {
	s.ticker = ticker
	return s.artifacts, nil
}

type recordingSink struct {
	batches  [][]domain.Artifact
	schema   bool
	failAt   int
	failWith error
}

func (s *recordingSink) EnsureSchema(context.Context) error {
	s.schema = true
	return nil
}

func (s *recordingSink) SaveArtifacts(_ context.Context, batch []domain.Artifact) (int, error) {
	if s.failWith != nil && len(s.batches) == s.failAt {
		return 0, s.failWith
	}
	s.batches = append(s.batches, batch)
	return len(batch), nil
}

func makeArtifacts(n int) []domain.Artifact {
	out := make([]domain.Artifact, n)
	for i := range out {
		out[i] = domain.Artifact{Ticker: "PANW", Path: fmt.Sprintf("output/PANW/%d", i)}
	}
	return out
}

func TestReplicator_Replicate_Batches(t *testing.T) {
	source := &sliceSource{artifacts: makeArtifacts(7)}
	sink := &recordingSink{}

	r, err := NewReplicator(Config{Source: source, Sink: sink, BatchSize: 3})
	if err != nil {
		t.Fatalf("NewReplicator returned error: %v", err)
	}

	res, err := r.Replicate(context.Background(), "PANW")
	if err != nil {
		t.Fatalf("Replicate returned error: %v", err)
	}

	if !sink.schema {
		t.Error("Expected schema to be ensured")
	}
	if source.ticker != "PANW" {
		t.Errorf("Expected ticker filter PANW, got %q", source.ticker)
	}
	if res.Read != 7 || res.Written != 7 {
		t.Errorf("Unexpected result: %+v", res)
	}

	wantSizes := []int{3, 3, 1}
	if len(sink.batches) != len(wantSizes) {
		t.Fatalf("Expected %d batches, got %d", len(wantSizes), len(sink.batches))
	}
	for i, want := range wantSizes {
		if len(sink.batches[i]) != want {
			t.Errorf("Batch %d: expected %d records, got %d", i, want, len(sink.batches[i]))
		}
	}
}

func TestReplicator_Replicate_StopsOnBatchError(t *testing.T) {
	boom := errors.New("insert failed")
	sink := &recordingSink{failAt: 1, failWith: boom}

	r, _ := NewReplicator(Config{Source: &sliceSource{artifacts: makeArtifacts(5)}, Sink: sink, BatchSize: 2})

	res, err := r.Replicate(context.Background(), "")
	if !errors.Is(err, boom) {
		t.Fatalf("Expected batch error, got %v", err)
	}
	if res.Written != 2 {
		t.Errorf("Expected 2 records written before failure, got %d", res.Written)
	}
}

func TestNewReplicator_RequiresSourceAndSink(t *testing.T) {
	if _, err := NewReplicator(Config{Sink: &recordingSink{}}); err == nil {
		t.Error("Expected error without source")
	}
	if _, err := NewReplicator(Config{Source: &sliceSource{}}); err == nil {
		t.Error("Expected error without sink")
	}

	r, err := NewReplicator(Config{Source: &sliceSource{}, Sink: &recordingSink{}})
	if err != nil {
		t.Fatalf("NewReplicator returned error: %v", err)
	}
	if r.batchSize != DefaultBatchSize {
		t.Errorf("Expected default batch size, got %d", r.batchSize)
	}
}
