package segment

import "strings"

// SplitText splits text into chunks of at most maxLen characters,
// preferring line boundaries. Text at or under the bound is returned
// as a single chunk untouched. A single line longer than maxLen is
// emitted whole as its own oversized chunk; splitting inside a line
// is deliberately not attempted.
//
// Rejoining the chunks with "\n" reproduces the input exactly.
func SplitText(text string, maxLen int) []string {
	if len(text) <= maxLen {
		return []string{text}
	}

	// Buffer whole lines rather than bytes: an empty line is real
	// content (it carries a separator on rejoin), so presence in the
	// chunk must not be inferred from accumulated length.
	var parts []string
	var lines []string
	length := 0

	flush := func() {
		parts = append(parts, strings.Join(lines, "\n"))
		lines = lines[:0]
		length = 0
	}

	for _, line := range strings.Split(text, "\n") {
		if len(lines) > 0 && length+1+len(line) > maxLen {
			flush()
		}
		if len(lines) > 0 {
			length++
		}
		lines = append(lines, line)
		length += len(line)
	}
	if len(lines) > 0 {
		flush()
	}

	return parts
}

// Window is one time range of an audio file, in seconds.
type Window struct {
	Start int
	End   int
}

// Duration returns the window length in seconds.
func (w Window) Duration() int { return w.End - w.Start }

// SplitAudioByTime produces contiguous non-overlapping windows covering
// [0, duration). The last window may be shorter than chunkSec.
func SplitAudioByTime(duration, chunkSec int) []Window {
	if duration <= 0 || chunkSec <= 0 {
		return nil
	}

	windows := make([]Window, 0, (duration+chunkSec-1)/chunkSec)
	for start := 0; start < duration; start += chunkSec {
		end := start + chunkSec
		if end > duration {
			end = duration
		}
		windows = append(windows, Window{Start: start, End: end})
	}
	return windows
}
