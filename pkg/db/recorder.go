package db

import (
	"context"
	"errors"

	"ir-research/pkg/domain"
)

// Recorder persists the record of a written file
type Recorder interface {
	SaveArtifact(ctx context.Context, artifact *domain.Artifact) error
}

// Recorders fans a record out to several recorders
type Recorders []Recorder

// SaveArtifact calls every recorder and joins their errors
func (rs Recorders) SaveArtifact(ctx context.Context, artifact *domain.Artifact) error {
	var errs []error
	for _, r := range rs {
		if err := r.SaveArtifact(ctx, artifact); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
