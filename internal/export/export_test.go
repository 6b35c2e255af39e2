package export

import (
	"strings"
	"testing"
	"time"

	"github.com/nguyentantai21042004/voicescribe/internal/transcript"
)

func testRecord() transcript.Record {
	segs := transcript.Sequence{
		transcript.NewSegment("Hello there.", 0.0, 0.9),
		transcript.NewSegment("This is the second segment of the talk.", 65.25, 0.8),
		transcript.NewSegment("Goodbye.", 120.5, 1.0),
	}
	return transcript.NewRecord("talk.mp4", segs, 125.0, time.Second)
}

func TestWriteText(t *testing.T) {
	var b strings.Builder
	if err := WriteText(&b, testRecord()); err != nil {
		t.Fatalf("WriteText() error = %v", err)
	}
	out := b.String()

	if !strings.HasPrefix(out, "Transcript: talk.mp4\n") {
		t.Errorf("missing header:\n%s", out)
	}
	for _, want := range []string{"[0:00] Hello there.", "[1:05] This is the second", "[2:00] Goodbye."} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteSRT(t *testing.T) {
	var b strings.Builder
	if err := WriteSRT(&b, testRecord().Segments, 0); err != nil {
		t.Fatalf("WriteSRT() error = %v", err)
	}
	out := b.String()

	// Entry end is the next segment's start; the last gets +2 s.
	for _, want := range []string{
		"1\n00:00:00,000 --> 00:01:05,250\nHello there.\n",
		"2\n00:01:05,250 --> 00:02:00,500\n",
		"3\n00:02:00,500 --> 00:02:02,500\nGoodbye.\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteSRTWordWrap(t *testing.T) {
	segs := transcript.Sequence{
		transcript.NewSegment("one two three four five six seven", 0.0, 1.0),
	}
	var b strings.Builder
	if err := WriteSRT(&b, segs, 12); err != nil {
		t.Fatalf("WriteSRT() error = %v", err)
	}
	for _, line := range strings.Split(b.String(), "\n") {
		if strings.Contains(line, "-->") {
			continue
		}
		if len(line) > 12 {
			t.Errorf("line %q exceeds wrap limit", line)
		}
	}
}

func TestSRTRoundTrip(t *testing.T) {
	original := testRecord().Segments

	var b strings.Builder
	if err := WriteSRT(&b, original, 20); err != nil {
		t.Fatalf("WriteSRT() error = %v", err)
	}
	parsed, err := ParseSRT(strings.NewReader(b.String()))
	if err != nil {
		t.Fatalf("ParseSRT() error = %v", err)
	}

	if len(parsed) != len(original) {
		t.Fatalf("got %d segments, want %d", len(parsed), len(original))
	}
	for i := range original {
		if parsed[i].Text != original[i].Text {
			t.Errorf("segment %d text = %q, want %q (wrap must rejoin)", i, parsed[i].Text, original[i].Text)
		}
		// Timestamps survive at millisecond resolution.
		if diff := parsed[i].Start - original[i].Start; diff > 0.001 || diff < -0.001 {
			t.Errorf("segment %d start = %v, want %v", i, parsed[i].Start, original[i].Start)
		}
	}
}

func TestParseSRTBadTimestamp(t *testing.T) {
	in := "1\nnot a timestamp --> 00:00:02,000\ntext\n"
	if _, err := ParseSRT(strings.NewReader(in)); err == nil {
		t.Error("ParseSRT() should reject malformed timestamps")
	}
}

func TestSrtStamp(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "00:00:00,000"},
		{65.25, "00:01:05,250"},
		{3661.001, "01:01:01,001"},
	}
	for _, tt := range tests {
		if got := srtStamp(tt.seconds); got != tt.want {
			t.Errorf("srtStamp(%v) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}
