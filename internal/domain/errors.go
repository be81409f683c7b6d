package domain

import (
	"errors"
	"fmt"
)

// ErrNoAudioFound is returned when a provider claims success but no
// plausible audio file can be located in the output directory.
var ErrNoAudioFound = errors.New("no audio file found after download")

// UnsupportedPlatformError means the input URL matched no known platform.
type UnsupportedPlatformError struct {
	URL string
}

func (e *UnsupportedPlatformError) Error() string {
	return fmt.Sprintf("unsupported platform: %s", e.URL)
}

// AcquisitionError wraps a failure inside an acquisition provider.
type AcquisitionError struct {
	Provider string
	Err      error
}

func (e *AcquisitionError) Error() string {
	return fmt.Sprintf("acquisition failed (%s): %v", e.Provider, e.Err)
}

func (e *AcquisitionError) Unwrap() error { return e.Err }

// TranscriptionError wraps a failure during audio transcription.
type TranscriptionError struct {
	Err error
}

func (e *TranscriptionError) Error() string {
	return fmt.Sprintf("transcription failed: %v", e.Err)
}

func (e *TranscriptionError) Unwrap() error { return e.Err }

// SummarizationError wraps a failure from a summarization provider.
type SummarizationError struct {
	Provider string
	Err      error
}

func (e *SummarizationError) Error() string {
	return fmt.Sprintf("summarization failed (%s): %v", e.Provider, e.Err)
}

func (e *SummarizationError) Unwrap() error { return e.Err }

// MissingCredentialError means the selected provider has no API key
// configured; raised before any network call is attempted.
type MissingCredentialError struct {
	Provider string
}

func (e *MissingCredentialError) Error() string {
	return fmt.Sprintf("no API key configured for provider %q", e.Provider)
}

// PersistenceError wraps a failure writing a result artifact.
type PersistenceError struct {
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist %s: %v", e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// ConvergenceError means recursive re-summarization hit its pass limit
// without the output shrinking below the chunk bound.
type ConvergenceError struct {
	Passes int
	Length int
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("summary did not converge after %d passes (still %d chars)", e.Passes, e.Length)
}
