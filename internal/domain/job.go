package domain

import "time"

// JobState is the lifecycle state of one summarization job.
type JobState string

const (
	JobStateCreated      JobState = "created"
	JobStateAcquiring    JobState = "acquiring"
	JobStateTranscribing JobState = "transcribing"
	JobStateSummarizing  JobState = "summarizing"
	JobStatePersisting   JobState = "persisting"
	JobStateSucceeded    JobState = "succeeded"
	JobStateFailed       JobState = "failed"
)

// Terminal reports whether no further transition can occur.
func (s JobState) Terminal() bool {
	return s == JobStateSucceeded || s == JobStateFailed
}

// InputKind discriminates the two accepted job inputs.
type InputKind string

const (
	InputURL       InputKind = "url"
	InputLocalFile InputKind = "local_file"
)

// Input describes what a job should process: a video URL or a local
// audio file already on disk.
type Input struct {
	Kind InputKind `json:"kind"`
	URL  string    `json:"url,omitempty"`
	Path string    `json:"path,omitempty"`
}

// URLInput builds an Input for a remote video URL.
func URLInput(url string) Input {
	return Input{Kind: InputURL, URL: url}
}

// LocalFileInput builds an Input for an audio file on disk.
func LocalFileInput(path string) Input {
	return Input{Kind: InputLocalFile, Path: path}
}

// JobConfig is the per-job configuration snapshot taken at submit time.
type JobConfig struct {
	WhisperModel string `json:"whisper_model"`
	Language     string `json:"language,omitempty"`
	Prompt       string `json:"prompt"`
	Provider     string `json:"provider"`
	Model        string `json:"model"`
	ExportDocx   bool   `json:"export_docx,omitempty"`
}

// Job is one end-to-end acquire -> transcribe -> summarize request.
// Exactly one of ResultPath / Error is set once the state is terminal,
// and Progress is 100 iff the job succeeded.
type Job struct {
	ID             string    `json:"job_id"`
	Input          Input     `json:"input"`
	Config         JobConfig `json:"config"`
	State          JobState  `json:"state"`
	Progress       int       `json:"progress"`
	Message        string    `json:"message"`
	ResultPath     string    `json:"result_path,omitempty"`
	TranscriptPath string    `json:"transcript_path,omitempty"`
	Error          string    `json:"error,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	CompletedAt    time.Time `json:"completed_at,omitempty"`
}

// AudioAsset is a resolved local audio file ready for transcription.
type AudioAsset struct {
	Path     string
	Size     int64
	Provider string
}

// FileOutcome records one file's result inside a batch run.
type FileOutcome struct {
	File           string `json:"file"`
	Status         string `json:"status"`
	TranscriptPath string `json:"transcript_path,omitempty"`
	SummaryPath    string `json:"summary_path,omitempty"`
	Error          string `json:"error,omitempty"`
}

// BatchReport aggregates the outcomes of one batch run. It is built once
// at the end of the run and never mutated afterwards.
type BatchReport struct {
	SourceDir    string        `json:"source_dir"`
	TotalFiles   int           `json:"total_files"`
	SuccessCount int           `json:"success_count"`
	ErrorCount   int           `json:"error_count"`
	Config       JobConfig     `json:"config"`
	Results      []FileOutcome `json:"results"`
	GeneratedAt  time.Time     `json:"generated_at"`
}
