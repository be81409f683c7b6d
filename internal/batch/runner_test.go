package batch

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"media-summarizer/internal/domain"
	"media-summarizer/internal/logger"
	"media-summarizer/internal/pipeline"
)

// scriptedOrchestrator succeeds or fails per input file basename.
type scriptedOrchestrator struct {
	failFiles map[string]string
	ran       []string
}

func (o *scriptedOrchestrator) Run(_ context.Context, job domain.Job, _ pipeline.UpdateFunc) domain.Job {
	name := filepath.Base(job.Input.Path)
	o.ran = append(o.ran, name)

	if msg, ok := o.failFiles[name]; ok {
		job.State = domain.JobStateFailed
		job.Error = msg
		return job
	}
	job.State = domain.JobStateSucceeded
	job.TranscriptPath = "/out/" + name + ".txt"
	job.ResultPath = "/out/" + name + ".md"
	return job
}

type captureWriter struct {
	report   domain.BatchReport
	baseName string
}

func (w *captureWriter) WriteTranscript(string, string) (string, error) { return "", nil }
func (w *captureWriter) WriteSummary(string, string, bool) (string, error) {
	return "", nil
}
func (w *captureWriter) WriteBatchReport(baseName string, report domain.BatchReport) (string, error) {
	w.baseName = baseName
	w.report = report
	return "/reports/" + baseName + ".json", nil
}

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
}

func TestRunFiltersAndSortsInputs(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "b.mp3", "a.WAV", "notes.txt", "clip.mp4", "image.png")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))

	orch := &scriptedOrchestrator{}
	runner := NewRunner(orch, &captureWriter{}, logger.New("error", "text"))

	report, err := runner.Run(context.Background(), dir, domain.JobConfig{})
	require.NoError(t, err)

	assert.Equal(t, 3, report.TotalFiles)
	assert.Equal(t, []string{"a.WAV", "b.mp3", "clip.mp4"}, orch.ran)
	assert.Equal(t, 3, report.SuccessCount)
	assert.Equal(t, 0, report.ErrorCount)
}

func TestRunContinuesPastFailures(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.mp3", "b.mp3", "c.mp3")

	orch := &scriptedOrchestrator{failFiles: map[string]string{"b.mp3": "transcription failed: whisper exited 1"}}
	writer := &captureWriter{}
	runner := NewRunner(orch, writer, logger.New("error", "text"))

	report, err := runner.Run(context.Background(), dir, domain.JobConfig{Provider: "deepseek"})
	require.NoError(t, err)

	// The failing middle file does not abort the run.
	assert.Equal(t, []string{"a.mp3", "b.mp3", "c.mp3"}, orch.ran)
	assert.Equal(t, 2, report.SuccessCount)
	assert.Equal(t, 1, report.ErrorCount)

	require.Len(t, report.Results, 3)
	assert.Equal(t, "success", report.Results[0].Status)
	assert.Equal(t, "error", report.Results[1].Status)
	assert.Contains(t, report.Results[1].Error, "whisper exited 1")
	assert.Equal(t, "success", report.Results[2].Status)

	// Report was persisted with the run's outcomes.
	assert.Equal(t, 3, writer.report.TotalFiles)
	assert.Contains(t, writer.baseName, "batch_")
	assert.Equal(t, "deepseek", writer.report.Config.Provider)
}

func TestRunEmptyDirectory(t *testing.T) {
	dir := t.TempDir()
	runner := NewRunner(&scriptedOrchestrator{}, &captureWriter{}, logger.New("error", "text"))

	report, err := runner.Run(context.Background(), dir, domain.JobConfig{})
	require.NoError(t, err)
	assert.Equal(t, 0, report.TotalFiles)
	assert.Empty(t, report.Results)
}

func TestRunMissingDirectory(t *testing.T) {
	runner := NewRunner(&scriptedOrchestrator{}, &captureWriter{}, logger.New("error", "text"))
	_, err := runner.Run(context.Background(), "/no/such/dir", domain.JobConfig{})
	assert.Error(t, err)
}
