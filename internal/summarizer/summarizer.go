package summarizer

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/voicescribe/internal/transcript"
)

const summaryPrompt = `You are an expert at analyzing spoken-word transcripts. Based on the timestamped transcript below, write a DETAILED summary.

Requirements:
- Start with a one-sentence title describing the overall topic
- List ALL the main points in order of appearance, with their timestamps
- Explain each point, including any caveats or warnings the speaker raises
- Keep domain terminology as spoken
- Use markdown: headings, bullet points, bold for key terms
- End with a "Key takeaways" section

Transcript:
---
%s
---`

// Summarize sends the transcript to Gemini and returns the markdown summary.
func (s *implSummarizer) Summarize(ctx context.Context, rec transcript.Record) (string, error) {
	if len(s.apiKeys) == 0 {
		return "", fmt.Errorf("no Gemini API keys configured")
	}
	return s.callGemini(ctx, fmt.Sprintf(summaryPrompt, flatten(rec.Segments)))
}

// SummarizeToFile writes the summary as a titled markdown document.
func (s *implSummarizer) SummarizeToFile(ctx context.Context, rec transcript.Record, outputPath string) error {
	summary, err := s.Summarize(ctx, rec)
	if err != nil {
		return err
	}

	md := fmt.Sprintf("# %s\n\n_%s_\n\n%s\n",
		rec.SourceID,
		time.Now().Format("2006-01-02 15:04"),
		strings.TrimSpace(summary),
	)
	if err := os.WriteFile(outputPath, []byte(md), 0644); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}

	s.logger.Info(ctx, "Summary written: %s", outputPath)
	return nil
}

// callGemini runs the prompt, rotating API keys on 429 / quota errors.
func (s *implSummarizer) callGemini(ctx context.Context, prompt string) (string, error) {
	attempts := len(s.apiKeys)
	var lastErr error

	for range attempts {
		key := s.apiKeys[s.currentKey]

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			s.rotateKey()
			continue
		}

		result, err := client.Models.GenerateContent(ctx, s.model, genai.Text(prompt), nil)
		if err != nil {
			if isQuotaError(err) {
				s.logger.Warn(ctx, "Key %d rate limited, rotating...", s.currentKey+1)
				s.rotateKey()
				lastErr = err
				continue
			}
			return "", fmt.Errorf("generate content: %w", err)
		}

		if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
			var text string
			for _, part := range result.Candidates[0].Content.Parts {
				if part.Text != "" {
					text += part.Text
				}
			}
			return text, nil
		}

		return "", fmt.Errorf("empty response from Gemini")
	}

	return "", fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func (s *implSummarizer) rotateKey() {
	s.currentKey = (s.currentKey + 1) % len(s.apiKeys)
}

func isQuotaError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "quota") ||
		strings.Contains(msg, "RESOURCE_EXHAUSTED")
}

// flatten renders segments as timestamped lines for the prompt.
func flatten(segs transcript.Sequence) string {
	var b strings.Builder
	for _, seg := range segs {
		total := int(seg.Start)
		fmt.Fprintf(&b, "[%d:%02d] %s\n", total/60, total%60, seg.Text)
	}
	return b.String()
}
