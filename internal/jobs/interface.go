package jobs

import (
	"context"

	"media-summarizer/internal/domain"
)

// Registry tracks jobs from submission to completion. Submissions return
// immediately; the pipeline runs on a worker goroutine per job and status
// reads never block on pipeline work.
type Registry interface {
	// Submit registers a new job and starts its pipeline run. The
	// returned snapshot carries the assigned job ID.
	Submit(ctx context.Context, input domain.Input, cfg domain.JobConfig) domain.Job
	// Get returns a snapshot of one job by ID.
	Get(id string) (domain.Job, bool)
	// Recent returns snapshots of the most recently submitted jobs,
	// newest first, capped at limit (0 means all).
	Recent(limit int) []domain.Job
}
