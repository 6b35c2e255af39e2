//go:build whisper_cpp

package device

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	whisperpkg "github.com/ggerganov/whisper.cpp/bindings/go/pkg/whisper"

	"github.com/nguyentantai21042004/voicescribe/internal/transcript"
)

// cppRecognizer is the whisper.cpp-backed Recognizer. The model is loaded
// once and reused; a fresh context is created per window because contexts
// are not safe for reuse across inferences.
type cppRecognizer struct {
	model whisperpkg.Model
}

// NewRecognizer loads the whisper.cpp model at modelPath.
func NewRecognizer(modelPath string) (Recognizer, error) {
	if modelPath == "" {
		return nil, errors.New("recognizer: model path must not be empty")
	}
	m, err := whisperpkg.New(modelPath)
	if err != nil {
		return nil, fmt.Errorf("recognizer: load model %q: %w", modelPath, err)
	}
	return &cppRecognizer{model: m}, nil
}

func (r *cppRecognizer) Recognize(ctx context.Context, samples []float32, language string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if len(samples) == 0 {
		return Result{}, nil
	}

	wctx, err := r.model.NewContext()
	if err != nil {
		return Result{}, fmt.Errorf("recognizer: create context: %w", err)
	}

	if language == "" {
		language = "auto"
	}
	_ = wctx.SetLanguage(language)
	wctx.SetSplitOnWord(true)
	wctx.SetTokenTimestamps(true)

	if err := wctx.Process(samples, nil, nil, nil); err != nil {
		return Result{}, fmt.Errorf("recognizer: process audio: %w", err)
	}

	var res Result
	var texts []string
	for {
		seg, err := wctx.NextSegment()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Result{}, fmt.Errorf("recognizer: read segment: %w", err)
		}
		if t := strings.TrimSpace(seg.Text); t != "" {
			texts = append(texts, t)
		}
		for _, tok := range seg.Tokens {
			text := strings.TrimSpace(tok.Text)
			if text == "" || strings.HasPrefix(text, "[_") {
				continue
			}
			res.Words = append(res.Words, transcript.Word{
				Text:       text,
				Start:      tok.Start.Seconds(),
				Confidence: float64(tok.P),
			})
		}
	}

	res.Text = strings.Join(texts, " ")
	return res, nil
}

func (r *cppRecognizer) Close() error {
	if r.model != nil {
		return r.model.Close()
	}
	return nil
}
