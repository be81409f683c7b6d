package batch

import (
	"context"

	"media-summarizer/internal/domain"
)

// Runner processes every supported audio file in a directory through the
// pipeline and produces a report of the outcomes.
type Runner interface {
	Run(ctx context.Context, dir string, cfg domain.JobConfig) (domain.BatchReport, error)
}

// Watcher monitors the uploads directory and submits a pipeline job for
// every new supported audio file.
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}
