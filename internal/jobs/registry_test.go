package jobs

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"media-summarizer/internal/domain"
	"media-summarizer/internal/logger"
	"media-summarizer/internal/pipeline"
)

// fakeOrchestrator runs a scripted sequence of updates, optionally
// holding until released so tests can observe in-flight state.
type fakeOrchestrator struct {
	release chan struct{}
	fail    bool
}

func (f *fakeOrchestrator) Run(_ context.Context, job domain.Job, update pipeline.UpdateFunc) domain.Job {
	job.State = domain.JobStateAcquiring
	job.Progress = 10
	update(job)

	if f.release != nil {
		<-f.release
	}

	if f.fail {
		job.State = domain.JobStateFailed
		job.Error = "boom"
	} else {
		job.State = domain.JobStateSucceeded
		job.Progress = 100
		job.ResultPath = "/out/summary.md"
	}
	job.CompletedAt = time.Now()
	update(job)
	return job
}

func waitForTerminal(t *testing.T, reg Registry, id string) domain.Job {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if job, ok := reg.Get(id); ok && job.State.Terminal() {
			return job
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("job %s never reached a terminal state", id)
	return domain.Job{}
}

func TestSubmitReturnsImmediately(t *testing.T) {
	orch := &fakeOrchestrator{release: make(chan struct{})}
	reg := New(orch, logger.New("error", "text"))

	job := reg.Submit(context.Background(), domain.URLInput("https://youtu.be/x"), domain.JobConfig{})
	require.NotEmpty(t, job.ID)
	assert.Equal(t, domain.JobStateCreated, job.State)

	// In-flight state is visible while the pipeline is blocked.
	assert.Eventually(t, func() bool {
		got, ok := reg.Get(job.ID)
		return ok && got.State == domain.JobStateAcquiring
	}, time.Second, 5*time.Millisecond)

	close(orch.release)
	final := waitForTerminal(t, reg, job.ID)
	assert.Equal(t, domain.JobStateSucceeded, final.State)
	assert.Equal(t, 100, final.Progress)
	assert.Equal(t, "/out/summary.md", final.ResultPath)
}

func TestTerminalJobExactlyOneOfResultOrError(t *testing.T) {
	reg := New(&fakeOrchestrator{fail: true}, logger.New("error", "text"))

	job := reg.Submit(context.Background(), domain.LocalFileInput("/in/a.mp3"), domain.JobConfig{})
	final := waitForTerminal(t, reg, job.ID)

	assert.Equal(t, domain.JobStateFailed, final.State)
	assert.Equal(t, "boom", final.Error)
	assert.Empty(t, final.ResultPath)
}

func TestGetUnknownJob(t *testing.T) {
	reg := New(&fakeOrchestrator{}, logger.New("error", "text"))
	_, ok := reg.Get("no-such-id")
	assert.False(t, ok)
}

func TestRecentNewestFirst(t *testing.T) {
	reg := New(&fakeOrchestrator{}, logger.New("error", "text"))

	var ids []string
	for i := 0; i < 5; i++ {
		job := reg.Submit(context.Background(), domain.LocalFileInput("/in/a.mp3"), domain.JobConfig{})
		ids = append(ids, job.ID)
	}

	recent := reg.Recent(3)
	require.Len(t, recent, 3)
	assert.Equal(t, ids[4], recent[0].ID)
	assert.Equal(t, ids[3], recent[1].ID)
	assert.Equal(t, ids[2], recent[2].ID)

	all := reg.Recent(0)
	assert.Len(t, all, 5)
}

func TestConcurrentReadersDuringUpdates(t *testing.T) {
	orch := &fakeOrchestrator{release: make(chan struct{})}
	reg := New(orch, logger.New("error", "text"))

	job := reg.Submit(context.Background(), domain.LocalFileInput("/in/a.mp3"), domain.JobConfig{})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if got, ok := reg.Get(job.ID); ok {
					// A reader must never see a torn snapshot.
					if got.State == domain.JobStateSucceeded {
						assert.Equal(t, 100, got.Progress)
					}
				}
				reg.Recent(10)
			}
		}()
	}

	close(orch.release)
	wg.Wait()
	waitForTerminal(t, reg, job.ID)
}
