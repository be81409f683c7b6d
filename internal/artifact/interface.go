package artifact

import "media-summarizer/internal/domain"

// Writer persists pipeline outputs under the configured result dirs.
type Writer interface {
	// WriteTranscript stores the transcript as plain text and returns
	// the path written.
	WriteTranscript(baseName, text string) (string, error)
	// WriteSummary stores the summary as markdown, optionally rendering
	// a docx alongside it, and returns the markdown path.
	WriteSummary(baseName, markdown string, exportDocx bool) (string, error)
	// WriteBatchReport stores a batch report as JSON plus a
	// human-readable text document and returns the JSON path.
	WriteBatchReport(baseName string, report domain.BatchReport) (string, error)
}
