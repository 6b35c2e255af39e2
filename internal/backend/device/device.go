package device

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/nguyentantai21042004/voicescribe/internal/backend"
	"github.com/nguyentantai21042004/voicescribe/internal/media"
	"github.com/nguyentantai21042004/voicescribe/internal/transcript"
)

// Transcribe recognizes the audio in sequential 60-second windows. Windows
// are never processed in parallel: the recognizer holds one context at a
// time and window order must match transcript order.
func (b *implBackend) Transcribe(ctx context.Context, audioPath string, opts backend.Options, onProgress backend.ProgressFunc) (transcript.Sequence, error) {
	reporter := backend.NewReporter(onProgress)

	wavPath, err := b.media.ConvertToWAV(ctx, audioPath)
	if err != nil {
		return nil, fmt.Errorf("convert for recognition: %w", err)
	}
	defer os.Remove(wavPath)

	samples, rate, err := media.DecodeWAV(wavPath)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", wavPath, err)
	}

	total := media.SampleDuration(samples, rate)
	chunks := CalculateChunks(total)
	if len(chunks) == 0 {
		return nil, fmt.Errorf("%w: audio is empty", backend.ErrNoTranscriptData)
	}

	b.logger.Info(ctx, "Recognizing %.1fs of audio in %d windows", total, len(chunks))

	var segs transcript.Sequence
	for i, c := range chunks {
		reporter.Report(float64(i)/float64(len(chunks)),
			fmt.Sprintf("Recognizing window %d of %d", i+1, len(chunks)))

		res, err := b.recognizer.Recognize(ctx, window(samples, rate, c), opts.Language)
		if err != nil {
			if errors.Is(err, backend.ErrRecognizerUnavailable) || ctx.Err() != nil {
				return nil, err
			}
			// One bad window must not lose the rest of the transcript.
			b.logger.Warn(ctx, "Window %d failed, skipping: %v", i+1, err)
			continue
		}

		segs = append(segs, windowSegments(res, c)...)
	}

	reporter.Report(1.0, "Recognition complete")
	return segs, nil
}

// windowSegments normalizes one window's raw result using the window's
// absolute start as the time base. A window with no word detail but flat
// text still contributes one segment covering the window.
func windowSegments(res Result, c Chunk) transcript.Sequence {
	if len(res.Words) == 0 {
		text := strings.TrimSpace(res.Text)
		if text == "" {
			return nil
		}
		return transcript.Sequence{transcript.NewSegment(text, c.Start, 1.0)}
	}
	return transcript.Normalize(res.Words, c.Start)
}

// window slices the sample buffer for one chunk.
func window(samples []float32, rate int, c Chunk) []float32 {
	start := int(c.Start * float64(rate))
	end := start + int(c.Duration*float64(rate))
	if start > len(samples) {
		start = len(samples)
	}
	if end > len(samples) {
		end = len(samples)
	}
	return samples[start:end]
}
