package pipeline

import (
	"context"
	"time"

	"media-summarizer/internal/domain"
)

// Progress milestones reported at each stage entry. Succeeded is the
// only state that reaches 100.
const (
	progressCreated      = 5
	progressAcquiring    = 10
	progressTranscribing = 20
	progressSummarizing  = 70
	progressPersisting   = 90
	progressSucceeded    = 100
)

// Run executes the full pipeline for one job and returns its terminal
// snapshot. Every state change is pushed through update before the next
// stage starts, so observers see a monotonic progress sequence.
func (o *implOrchestrator) Run(ctx context.Context, job domain.Job, update UpdateFunc) domain.Job {
	if update == nil {
		update = func(domain.Job) {}
	}
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now()
	}

	advance := func(state domain.JobState, progress int, message string) {
		job.State = state
		job.Progress = progress
		job.Message = message
		update(job)
	}

	fail := func(stage string, err error) domain.Job {
		o.logger.Error(ctx, "Job %s failed during %s: %v", job.ID, stage, err)
		job.State = domain.JobStateFailed
		job.Message = "Failed during " + stage
		job.Error = err.Error()
		job.CompletedAt = time.Now()
		update(job)
		return job
	}

	advance(domain.JobStateCreated, progressCreated, "Job accepted")

	advance(domain.JobStateAcquiring, progressAcquiring, "Acquiring audio")
	asset, err := o.gateway.Acquire(ctx, job.Input)
	if err != nil {
		return fail("acquisition", err)
	}
	o.logger.Info(ctx, "Job %s acquired %s (%d bytes via %s)", job.ID, asset.Path, asset.Size, asset.Provider)

	advance(domain.JobStateTranscribing, progressTranscribing, "Transcribing audio")
	transcript, err := o.transcriber.Transcribe(ctx, asset.Path)
	if err != nil {
		return fail("transcription", err)
	}

	advance(domain.JobStateSummarizing, progressSummarizing, "Generating summary")
	summary, err := o.summarizer.Summarize(ctx, transcript, job.Config.Prompt)
	if err != nil {
		return fail("summarization", err)
	}

	advance(domain.JobStatePersisting, progressPersisting, "Writing results")
	base := OutputBaseName(job.Input, job.CreatedAt)
	transcriptPath, err := o.writer.WriteTranscript(base, transcript)
	if err != nil {
		return fail("persistence", err)
	}
	resultPath, err := o.writer.WriteSummary(base, summary, job.Config.ExportDocx)
	if err != nil {
		return fail("persistence", err)
	}

	job.TranscriptPath = transcriptPath
	job.ResultPath = resultPath
	job.CompletedAt = time.Now()
	advance(domain.JobStateSucceeded, progressSucceeded, "Summary ready")
	o.logger.Info(ctx, "Job %s succeeded: %s", job.ID, resultPath)
	return job
}
