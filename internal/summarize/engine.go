package summarize

import (
	"context"
	"strings"

	"media-summarizer/internal/domain"
	"media-summarizer/internal/segment"
)

// Summarize splits the text into bounded chunks, summarizes each in
// order, and joins the results with blank lines. When the joined result
// still exceeds the bound the whole procedure runs again on it, up to
// maxPasses times; a result that never shrinks under the bound is a
// ConvergenceError rather than endless recursion.
func (e *implEngine) Summarize(ctx context.Context, text, prompt string) (string, error) {
	for pass := 1; ; pass++ {
		chunks := segment.SplitText(text, e.maxChunkLen)
		e.logger.Info(ctx, "Summarization pass %d: %d chunk(s) via %s", pass, len(chunks), e.provider.Name())

		summaries := make([]string, 0, len(chunks))
		for _, chunk := range chunks {
			out, err := e.provider.SummarizeChunk(ctx, prompt+"\n"+chunk, e.model)
			if err != nil {
				return "", &domain.SummarizationError{Provider: e.provider.Name(), Err: err}
			}
			summaries = append(summaries, strings.TrimSpace(out))
		}

		result := strings.Join(summaries, "\n\n")
		if len(result) <= e.maxChunkLen {
			return result, nil
		}
		if pass >= e.maxPasses {
			return "", &domain.SummarizationError{
				Provider: e.provider.Name(),
				Err:      &domain.ConvergenceError{Passes: pass, Length: len(result)},
			}
		}

		e.logger.Info(ctx, "Summary still %d chars, re-summarizing", len(result))
		text = result
	}
}
