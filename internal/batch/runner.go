package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"media-summarizer/internal/domain"
)

// audioExtensions is the allow-list of batch input formats. Matching is
// case-insensitive; everything else in the directory is skipped.
var audioExtensions = map[string]bool{
	".mp3":  true,
	".wav":  true,
	".m4a":  true,
	".mp4":  true,
	".aac":  true,
	".flac": true,
	".wma":  true,
	".amr":  true,
}

// Run processes every supported file in dir sequentially. One file's
// failure is recorded and the run continues; the returned report keeps
// outcomes in input-path order.
func (r *implRunner) Run(ctx context.Context, dir string, cfg domain.JobConfig) (domain.BatchReport, error) {
	files, err := listAudioFiles(dir)
	if err != nil {
		return domain.BatchReport{}, err
	}

	r.logger.Info(ctx, "Batch run: %d supported file(s) in %s", len(files), dir)

	report := domain.BatchReport{
		SourceDir:  dir,
		TotalFiles: len(files),
		Config:     cfg,
	}

	for i, file := range files {
		r.logger.Info(ctx, "Batch file %d/%d: %s", i+1, len(files), file)

		job := r.orchestrator.Run(ctx, domain.Job{
			ID:     fmt.Sprintf("batch-%d", i+1),
			Input:  domain.LocalFileInput(file),
			Config: cfg,
		}, nil)

		outcome := domain.FileOutcome{File: file}
		if job.State == domain.JobStateSucceeded {
			outcome.Status = "success"
			outcome.TranscriptPath = job.TranscriptPath
			outcome.SummaryPath = job.ResultPath
			report.SuccessCount++
		} else {
			outcome.Status = "error"
			outcome.Error = job.Error
			report.ErrorCount++
		}
		report.Results = append(report.Results, outcome)
	}

	report.GeneratedAt = time.Now()

	reportName := "batch_" + report.GeneratedAt.Format("20060102_150405")
	if path, err := r.writer.WriteBatchReport(reportName, report); err != nil {
		r.logger.Error(ctx, "Batch report write failed: %v", err)
	} else {
		r.logger.Info(ctx, "Batch report written: %s", path)
	}

	return report, nil
}

// listAudioFiles returns the supported files directly under dir, deduped
// and sorted by path.
func listAudioFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read batch dir: %w", err)
	}

	seen := make(map[string]bool)
	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !audioExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if seen[path] {
			continue
		}
		seen[path] = true
		files = append(files, path)
	}

	sort.Strings(files)
	return files, nil
}
