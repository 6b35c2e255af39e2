package transcript

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/rs/xid"
)

// Segment is one timestamped unit of transcribed text.
type Segment struct {
	ID         string  `json:"id"`
	Text       string  `json:"text"`
	Start      float64 `json:"start"` // seconds from the beginning of the source
	Confidence float64 `json:"confidence"`
}

// Sequence is an ordered list of segments. Insertion order is display and
// playback order; it is never re-sorted by timestamp.
type Sequence []Segment

// NewSegment creates a segment with a fresh ID.
func NewSegment(text string, start, confidence float64) Segment {
	return Segment{
		ID:         xid.New().String(),
		Text:       text,
		Start:      start,
		Confidence: confidence,
	}
}

// Record is a completed transcription. Immutable once created; a later
// transcription of the same source supersedes it with a new record.
type Record struct {
	ID                 string        `json:"id"`
	SourceID           string        `json:"source_id"`
	Segments           Sequence      `json:"segments"`
	CreatedAt          time.Time     `json:"created_at"`
	SourceDuration     float64       `json:"source_duration"`
	TranscribeDuration time.Duration `json:"transcribe_duration"`
	Fingerprint        string        `json:"fingerprint"`
}

// NewRecord builds a record and derives its content fingerprint.
func NewRecord(sourceID string, segs Sequence, sourceDuration float64, took time.Duration) Record {
	return Record{
		ID:                 xid.New().String(),
		SourceID:           sourceID,
		Segments:           segs,
		CreatedAt:          time.Now(),
		SourceDuration:     sourceDuration,
		TranscribeDuration: took,
		Fingerprint:        Fingerprint(sourceID, segs, sourceDuration),
	}
}

// Fingerprint derives a stable identity for a transcription from the source
// identifier, segment count, source duration and the first/last segment text.
// Two saves of the same transcription produce the same fingerprint.
func Fingerprint(sourceID string, segs Sequence, sourceDuration float64) string {
	first, last := "", ""
	if len(segs) > 0 {
		first = segs[0].Text
		last = segs[len(segs)-1].Text
	}
	sum := sha256.Sum256(fmt.Appendf(nil, "%s|%d|%.3f|%s|%s", sourceID, len(segs), sourceDuration, first, last))
	return hex.EncodeToString(sum[:])
}
