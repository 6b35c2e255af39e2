package cloud

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/nguyentantai21042004/voicescribe/internal/backend"
	"github.com/nguyentantai21042004/voicescribe/internal/transcript"
)

// Transcribe drives the provider's upload -> submit -> poll state machine.
func (b *implBackend) Transcribe(ctx context.Context, audioPath string, opts backend.Options, onProgress backend.ProgressFunc) (transcript.Sequence, error) {
	if b.baseURL == "" {
		return nil, fmt.Errorf("%w: missing base URL", backend.ErrNotConfigured)
	}
	if opts.APIKey == "" {
		return nil, fmt.Errorf("%w: missing API key", backend.ErrNotConfigured)
	}

	reporter := backend.NewReporter(onProgress)
	reporter.Report(0.0, "Uploading audio")

	audioURL, err := b.upload(ctx, audioPath, opts.APIKey)
	if err != nil {
		return nil, err
	}
	reporter.Report(0.15, "Audio uploaded")

	jobID, err := b.submit(ctx, audioURL, opts)
	if err != nil {
		return nil, err
	}
	reporter.Report(0.2, "Transcription submitted")
	b.logger.Info(ctx, "Cloud job %s submitted, polling every %s", jobID, b.pollInterval)

	words, err := b.poll(ctx, jobID, opts.APIKey, reporter)
	if err != nil {
		return nil, err
	}

	segs := transcript.Normalize(words, 0)
	reporter.Report(1.0, "Transcription complete")
	return segs, nil
}

// upload streams the raw audio bytes to the provider and returns the
// addressable URL of the payload.
func (b *implBackend) upload(ctx context.Context, audioPath, apiKey string) (string, error) {
	f, err := os.Open(audioPath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", backend.ErrUploadFailed, err)
	}
	defer f.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+"/upload", f)
	if err != nil {
		return "", fmt.Errorf("%w: %v", backend.ErrUploadFailed, err)
	}
	req.Header.Set("Authorization", apiKey)
	req.Header.Set("Content-Type", "application/octet-stream")

	var out uploadResponse
	if err := b.do(req, &out, backend.ErrUploadFailed); err != nil {
		return "", err
	}
	if out.UploadURL == "" {
		return "", fmt.Errorf("%w: provider returned no upload URL", backend.ErrUploadFailed)
	}
	return out.UploadURL, nil
}

// submit creates the transcription job for an uploaded payload.
func (b *implBackend) submit(ctx context.Context, audioURL string, opts backend.Options) (string, error) {
	payload := submitRequest{AudioURL: audioURL}
	if opts.Language != "" && opts.Language != "auto" {
		payload.LanguageCode = opts.Language
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("%w: %v", backend.ErrSubmissionFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+"/transcript", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: %v", backend.ErrSubmissionFailed, err)
	}
	req.Header.Set("Authorization", opts.APIKey)
	req.Header.Set("Content-Type", "application/json")

	var out submitResponse
	if err := b.do(req, &out, backend.ErrSubmissionFailed); err != nil {
		return "", err
	}
	if out.ID == "" {
		return "", fmt.Errorf("%w: provider returned no job id", backend.ErrSubmissionFailed)
	}
	return out.ID, nil
}

// poll asks for job status on a fixed interval until the job completes,
// fails, or the attempt budget runs out. While the job is queued or
// processing the progress estimate creeps toward 0.95 to show liveness
// without claiming certainty.
func (b *implBackend) poll(ctx context.Context, jobID, apiKey string, reporter *backend.Reporter) ([]transcript.Word, error) {
	for attempt := 1; attempt <= b.pollAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(b.pollInterval):
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.baseURL+"/transcript/"+jobID, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", backend.ErrTranscriptionFailed, err)
		}
		req.Header.Set("Authorization", apiKey)

		var out pollResponse
		if err := b.do(req, &out, backend.ErrTranscriptionFailed); err != nil {
			return nil, err
		}

		switch out.Status {
		case "completed":
			if len(out.Words) == 0 {
				// Completion without a word payload is a provider fault,
				// not an empty transcript.
				return nil, backend.ErrNoTranscriptData
			}
			words := make([]transcript.Word, 0, len(out.Words))
			for _, w := range out.Words {
				words = append(words, transcript.Word{
					Text:       w.Text,
					Start:      float64(w.StartMs) / 1000.0,
					Confidence: w.Confidence,
				})
			}
			return words, nil

		case "error", "failed":
			if out.Error != "" {
				return nil, fmt.Errorf("%w: %s", backend.ErrTranscriptionFailed, out.Error)
			}
			return nil, backend.ErrTranscriptionFailed

		case "queued", "processing", "submitted":
			estimate := 0.2 + 0.75*float64(attempt)/float64(b.pollAttempts)
			if estimate > 0.95 {
				estimate = 0.95
			}
			reporter.Report(estimate, "Transcribing in the cloud")

		default:
			return nil, fmt.Errorf("%w: unknown job status %q", backend.ErrTranscriptionFailed, out.Status)
		}
	}

	return nil, fmt.Errorf("%w: job %s still running after %d poll attempts", backend.ErrTranscriptionFailed, jobID, b.pollAttempts)
}

// do executes a request, maps HTTP failures onto the given sentinel and
// decodes the JSON body into out.
func (b *implBackend) do(req *http.Request, out interface{}, sentinel error) error {
	resp, err := b.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", sentinel, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return fmt.Errorf("%w: http %d", backend.ErrNotAuthorized, resp.StatusCode)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%w: http %d: %s", sentinel, resp.StatusCode, bytes.TrimSpace(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %v", sentinel, err)
	}
	return nil
}
