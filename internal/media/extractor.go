package media

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/xid"
)

// Extract demuxes the video's audio track into a temporary .m4a file.
// The intermediate is a general-purpose lossy container; backends that need
// raw PCM run their own conversion afterwards.
func (e *implExtractor) Extract(ctx context.Context, videoPath string) (string, error) {
	hasAudio, err := e.hasAudioStream(ctx, videoPath)
	if err != nil {
		return "", fmt.Errorf("probe %s: %w", videoPath, err)
	}
	if !hasAudio {
		return "", fmt.Errorf("%s: %w", videoPath, ErrNoAudioTrack)
	}

	base := strings.TrimSuffix(filepath.Base(videoPath), filepath.Ext(videoPath))
	// xid keeps concurrent extractions of the same video from colliding.
	audioPath := filepath.Join(e.tempDir, fmt.Sprintf("%s-%s.m4a", base, xid.New().String()))

	e.logger.Info(ctx, "Extracting audio: %s -> %s", videoPath, audioPath)

	args := []string{
		"-i", videoPath,
		"-vn",
		"-c:a", "aac",
		"-b:a", "128k",
		"-y",
		audioPath,
	}
	if _, err := e.executor.Execute(ctx, "ffmpeg", args...); err != nil {
		return "", fmt.Errorf("%w: %v", ErrExportFailed, err)
	}

	return audioPath, nil
}

// ConvertToWAV resamples an audio file to the 16 kHz mono s16le format the
// speech models require.
func (e *implExtractor) ConvertToWAV(ctx context.Context, audioPath string) (string, error) {
	base := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	wavPath := filepath.Join(e.tempDir, fmt.Sprintf("%s-%s.wav", base, xid.New().String()))

	e.logger.Debug(ctx, "Converting to 16kHz mono WAV: %s -> %s", audioPath, wavPath)

	args := []string{
		"-i", audioPath,
		"-vn",
		"-ar", "16000",
		"-ac", "1",
		"-c:a", "pcm_s16le",
		"-y",
		wavPath,
	}
	if _, err := e.executor.Execute(ctx, "ffmpeg", args...); err != nil {
		return "", fmt.Errorf("%w: %v", ErrExportFailed, err)
	}

	return wavPath, nil
}

// Duration reports the container duration in seconds.
func (e *implExtractor) Duration(ctx context.Context, path string) (float64, error) {
	out, err := e.executor.Execute(ctx, "ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "csv=p=0",
		path,
	)
	if err != nil {
		return 0, fmt.Errorf("probe duration %s: %w", path, err)
	}
	d, err := strconv.ParseFloat(strings.TrimSpace(out), 64)
	if err != nil {
		return 0, fmt.Errorf("probe duration %s: %w", path, err)
	}
	return d, nil
}

// hasAudioStream asks ffprobe whether the container carries an audio stream.
func (e *implExtractor) hasAudioStream(ctx context.Context, videoPath string) (bool, error) {
	out, err := e.executor.Execute(ctx, "ffprobe",
		"-v", "error",
		"-select_streams", "a",
		"-show_entries", "stream=codec_type",
		"-of", "csv=p=0",
		videoPath,
	)
	if err != nil {
		return false, err
	}
	for _, line := range strings.Split(out, "\n") {
		if strings.TrimSpace(line) == "audio" {
			return true, nil
		}
	}
	return false, nil
}
