package db

import (
	"context"
	"errors"
	"testing"

	"ir-research/pkg/domain"
)

type memoryRecorder struct {
	paths []string
	err   error
}

func (m *memoryRecorder) SaveArtifact(_ context.Context, a *domain.Artifact) error {
	m.paths = append(m.paths, a.Path)
	return m.err
}

func TestRecorders_SaveArtifact(t *testing.T) {
	boom := errors.New("database down")
	failing := &memoryRecorder{err: boom}
	ok := &memoryRecorder{}

	err := Recorders{failing, ok}.SaveArtifact(context.Background(), &domain.Artifact{Path: "output/NOW/latest_10K.html"})
	if !errors.Is(err, boom) {
		t.Fatalf("Expected joined error to wrap %v, got %v", boom, err)
	}
	if len(failing.paths) != 1 || len(ok.paths) != 1 {
		t.Errorf("Expected every recorder to be called once, got %d and %d", len(failing.paths), len(ok.paths))
	}
}

func TestStores_Recorder_Empty(t *testing.T) {
	s := &Stores{}
	rs := s.Recorder()
	if len(rs) != 0 {
		t.Fatalf("Expected no recorders, got %d", len(rs))
	}
	if err := rs.SaveArtifact(context.Background(), &domain.Artifact{Path: "x"}); err != nil {
		t.Errorf("Expected no error from empty recorders, got %v", err)
	}
}
