package backend

import "errors"

// Configuration errors: fatal, not retried, require user action to fix.
var (
	// ErrNotConfigured is returned when a required setting (API key, base
	// URL, binary path) is missing.
	ErrNotConfigured = errors.New("backend is not configured")

	// ErrNotAuthorized is returned when the provider rejects the supplied
	// credentials.
	ErrNotAuthorized = errors.New("backend rejected the credentials")

	// ErrRecognizerUnavailable is returned when the on-device recognizer is
	// not present in this build or on this machine.
	ErrRecognizerUnavailable = errors.New("speech recognizer is unavailable")

	// ErrModelNotDownloaded is returned by the local backend when the
	// selected model asset is not on disk. Recoverable by downloading it.
	ErrModelNotDownloaded = errors.New("model is not downloaded")
)

// Transport and processing errors: fatal for the call, never auto-retried.
var (
	ErrUploadFailed        = errors.New("audio upload failed")
	ErrSubmissionFailed    = errors.New("transcription job submission failed")
	ErrTranscriptionFailed = errors.New("transcription failed")

	// ErrNoTranscriptData is returned when a provider reports completion
	// without any word-level payload. An empty result is not a success.
	ErrNoTranscriptData = errors.New("provider returned no transcript data")

	// ErrTranscriptionTimeout is returned when the local model subprocess
	// exceeds its wall-clock budget and is terminated.
	ErrTranscriptionTimeout = errors.New("transcription timed out")
)
