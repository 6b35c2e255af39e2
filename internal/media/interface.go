package media

import (
	"context"
	"errors"
)

var (
	// ErrNoAudioTrack is returned when the input video has no audio stream.
	ErrNoAudioTrack = errors.New("video has no audio track")

	// ErrExportFailed is returned when audio extraction or conversion fails.
	ErrExportFailed = errors.New("audio export failed")
)

// Extractor produces audio files from video sources.
type Extractor interface {
	// Extract verifies the video has at least one audio stream and demuxes
	// it into a uniquely named temporary AAC file. The caller owns the file
	// and deletes it when done.
	Extract(ctx context.Context, videoPath string) (string, error)

	// ConvertToWAV converts an audio file to 16 kHz mono 16-bit PCM WAV, the
	// sample format the speech models expect. The caller owns the file.
	ConvertToWAV(ctx context.Context, audioPath string) (string, error)

	// Duration reports a media file's duration in seconds.
	Duration(ctx context.Context, path string) (float64, error)
}
