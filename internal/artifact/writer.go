package artifact

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"media-summarizer/internal/domain"
)

const dirPerm = 0o755

func (w *implWriter) WriteTranscript(baseName, text string) (string, error) {
	path := filepath.Join(w.transcriptionsDir, baseName+"_transcript.txt")
	if err := w.writeFile(path, []byte(text)); err != nil {
		return "", err
	}
	return path, nil
}

func (w *implWriter) WriteSummary(baseName, markdown string, exportDocx bool) (string, error) {
	path := filepath.Join(w.summariesDir, baseName+"_summary.md")
	if err := w.writeFile(path, []byte(markdown)); err != nil {
		return "", err
	}

	if exportDocx {
		docxPath := filepath.Join(w.summariesDir, baseName+"_summary.docx")
		if err := markdownToDocx(baseName, markdown, docxPath); err != nil {
			// The markdown artifact is the primary result; a docx
			// render failure does not fail the job.
			w.logger.Warn(context.Background(), "Docx export failed for %s: %v", baseName, err)
		}
	}
	return path, nil
}

func (w *implWriter) WriteBatchReport(baseName string, report domain.BatchReport) (string, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", &domain.PersistenceError{Path: baseName, Err: err}
	}

	jsonPath := filepath.Join(w.reportsDir, baseName+".json")
	if err := w.writeFile(jsonPath, data); err != nil {
		return "", err
	}

	txtPath := filepath.Join(w.reportsDir, baseName+".txt")
	if err := w.writeFile(txtPath, []byte(formatReport(report))); err != nil {
		return "", err
	}
	return jsonPath, nil
}

func (w *implWriter) writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return &domain.PersistenceError{Path: path, Err: err}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &domain.PersistenceError{Path: path, Err: err}
	}
	return nil
}

// formatReport renders the human-readable companion of the JSON report.
func formatReport(report domain.BatchReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Batch summarization report\n")
	fmt.Fprintf(&b, "Generated: %s\n", report.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Source directory: %s\n", report.SourceDir)
	fmt.Fprintf(&b, "Files: %d total, %d succeeded, %d failed\n\n",
		report.TotalFiles, report.SuccessCount, report.ErrorCount)

	for _, r := range report.Results {
		fmt.Fprintf(&b, "[%s] %s\n", r.Status, r.File)
		if r.SummaryPath != "" {
			fmt.Fprintf(&b, "    summary: %s\n", r.SummaryPath)
		}
		if r.Error != "" {
			fmt.Fprintf(&b, "    error: %s\n", r.Error)
		}
	}
	return b.String()
}
