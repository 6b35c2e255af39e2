package transcript

import (
	"math"
	"strings"
	"testing"
)

func TestNormalizeSentencePunctuation(t *testing.T) {
	words := []Word{
		{Text: "Hi", Start: 0.0, Confidence: 0.9},
		{Text: "there.", Start: 0.5, Confidence: 0.8},
		{Text: "Bye", Start: 1.0, Confidence: 1.0},
	}

	segs := Normalize(words, 0)
	if len(segs) != 2 {
		t.Fatalf("Normalize() produced %d segments, want 2", len(segs))
	}
	if segs[0].Text != "Hi there." {
		t.Errorf("first segment text = %q, want %q", segs[0].Text, "Hi there.")
	}
	if segs[0].Start != 0.0 {
		t.Errorf("first segment start = %v, want 0.0", segs[0].Start)
	}
	if math.Abs(segs[0].Confidence-0.85) > 1e-9 {
		t.Errorf("first segment confidence = %v, want 0.85", segs[0].Confidence)
	}
	if segs[1].Text != "Bye" {
		t.Errorf("second segment text = %q, want %q", segs[1].Text, "Bye")
	}
}

func TestNormalizeWordLimit(t *testing.T) {
	var words []Word
	for i := 0; i < 25; i++ {
		words = append(words, Word{Text: "word", Start: float64(i), Confidence: 1.0})
	}

	segs := Normalize(words, 0)
	if len(segs) != 3 {
		t.Fatalf("Normalize() produced %d segments, want 3", len(segs))
	}
	for i, s := range segs[:2] {
		if n := len(strings.Fields(s.Text)); n != 10 {
			t.Errorf("segment %d has %d words, want 10", i, n)
		}
	}
	if n := len(strings.Fields(segs[2].Text)); n != 5 {
		t.Errorf("final segment has %d words, want 5", n)
	}
}

func TestNormalizePartitionsInput(t *testing.T) {
	words := []Word{
		{Text: "One", Start: 0, Confidence: 0.5},
		{Text: "two", Start: 1, Confidence: 0.6},
		{Text: "three!", Start: 2, Confidence: 0.7},
		{Text: "Four", Start: 3, Confidence: 0.8},
		{Text: "five?", Start: 4, Confidence: 0.9},
		{Text: "Six", Start: 5, Confidence: 1.0},
	}

	segs := Normalize(words, 0)

	var total int
	for _, s := range segs {
		total += len(strings.Fields(s.Text))
	}
	if total != len(words) {
		t.Errorf("segments contain %d words in total, want %d", total, len(words))
	}

	// Order must be preserved.
	joined := ""
	for _, s := range segs {
		joined += s.Text + " "
	}
	want := "One two three! Four five? Six "
	if joined != want {
		t.Errorf("joined = %q, want %q", joined, want)
	}
}

func TestNormalizeBaseOffset(t *testing.T) {
	words := []Word{{Text: "Hello.", Start: 2.5, Confidence: 1.0}}

	segs := Normalize(words, 120.0)
	if len(segs) != 1 {
		t.Fatalf("Normalize() produced %d segments, want 1", len(segs))
	}
	if segs[0].Start != 122.5 {
		t.Errorf("segment start = %v, want 122.5", segs[0].Start)
	}
}

func TestNormalizeEmpty(t *testing.T) {
	if segs := Normalize(nil, 0); len(segs) != 0 {
		t.Errorf("Normalize(nil) produced %d segments, want 0", len(segs))
	}
}

func TestNormalizeConfidenceMean(t *testing.T) {
	words := []Word{
		{Text: "a", Start: 0, Confidence: 0.2},
		{Text: "b", Start: 1, Confidence: 0.4},
		{Text: "c.", Start: 2, Confidence: 0.9},
	}

	segs := Normalize(words, 0)
	if len(segs) != 1 {
		t.Fatalf("Normalize() produced %d segments, want 1", len(segs))
	}
	if math.Abs(segs[0].Confidence-0.5) > 1e-9 {
		t.Errorf("confidence = %v, want 0.5", segs[0].Confidence)
	}
}
