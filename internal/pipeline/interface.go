package pipeline

import (
	"context"

	"media-summarizer/internal/domain"
)

// UpdateFunc receives a snapshot of the job after every state change.
// Implementations must not retain references into the snapshot's fields.
type UpdateFunc func(domain.Job)

// Orchestrator drives one job through acquisition, transcription,
// summarization and persistence, reporting progress along the way.
type Orchestrator interface {
	Run(ctx context.Context, job domain.Job, update UpdateFunc) domain.Job
}
