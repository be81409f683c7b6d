package jobs

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"media-summarizer/internal/domain"
	"media-summarizer/internal/logger"
	"media-summarizer/internal/pipeline"
)

type implRegistry struct {
	orchestrator pipeline.Orchestrator
	logger       logger.Logger

	mu    sync.RWMutex
	byID  map[string]domain.Job
	order []string
}

// New creates a Registry over the given orchestrator.
func New(orchestrator pipeline.Orchestrator, log logger.Logger) Registry {
	return &implRegistry{
		orchestrator: orchestrator,
		logger:       log,
		byID:         make(map[string]domain.Job),
	}
}

func (r *implRegistry) Submit(ctx context.Context, input domain.Input, cfg domain.JobConfig) domain.Job {
	job := domain.Job{
		ID:        uuid.NewString(),
		Input:     input,
		Config:    cfg,
		State:     domain.JobStateCreated,
		CreatedAt: time.Now(),
	}

	r.mu.Lock()
	r.byID[job.ID] = job
	r.order = append(r.order, job.ID)
	r.mu.Unlock()

	r.logger.Info(ctx, "Job %s submitted (%s)", job.ID, input.Kind)

	// The job outlives the submitting request, so the worker must not
	// inherit its cancellation.
	runCtx := context.WithoutCancel(ctx)
	go func() {
		final := r.orchestrator.Run(runCtx, job, r.store)
		r.store(final)
	}()

	return job
}

func (r *implRegistry) Get(id string) (domain.Job, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	job, ok := r.byID[id]
	return job, ok
}

func (r *implRegistry) Recent(limit int) []domain.Job {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := len(r.order)
	if limit > 0 && limit < n {
		n = limit
	}

	out := make([]domain.Job, 0, n)
	for i := len(r.order) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, r.byID[r.order[i]])
	}
	return out
}

// store records a job snapshot; transitions out of a terminal state are
// rejected so a late update can never resurrect a finished job.
func (r *implRegistry) store(job domain.Job) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if current, ok := r.byID[job.ID]; ok && current.State.Terminal() {
		return
	}
	r.byID[job.ID] = job
}
