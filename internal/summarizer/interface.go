package summarizer

import (
	"context"

	"github.com/nguyentantai21042004/voicescribe/internal/transcript"
)

// Summarizer produces an LLM-generated markdown summary of a transcript.
type Summarizer interface {
	// Summarize returns a markdown summary of the record's transcript.
	Summarize(ctx context.Context, rec transcript.Record) (string, error)

	// SummarizeToFile writes the summary as a markdown document.
	SummarizeToFile(ctx context.Context, rec transcript.Record, outputPath string) error
}
