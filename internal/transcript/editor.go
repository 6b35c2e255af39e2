package transcript

import (
	"fmt"
	"strings"
)

// Editor applies in-memory edits to a sequence. It owns its copy of the
// sequence; no concurrent use. Edits may leave timestamps non-monotonic
// (e.g. after Retime); this is tolerated, not repaired.
type Editor struct {
	segs Sequence
}

// NewEditor copies the sequence into a new edit session.
func NewEditor(segs Sequence) *Editor {
	cp := make(Sequence, len(segs))
	copy(cp, segs)
	return &Editor{segs: cp}
}

// Segments returns the current state of the sequence.
func (e *Editor) Segments() Sequence {
	out := make(Sequence, len(e.segs))
	copy(out, e.segs)
	return out
}

// Merge joins the segment at index with its successor. The merged segment
// replaces both, keeping the earlier start time; being a replacement it gets
// a fresh ID. Confidence is the mean of the two.
func (e *Editor) Merge(index int) error {
	if index < 0 || index >= len(e.segs)-1 {
		return fmt.Errorf("merge: index %d out of range (0..%d)", index, len(e.segs)-2)
	}
	a, b := e.segs[index], e.segs[index+1]
	merged := NewSegment(a.Text+" "+b.Text, a.Start, (a.Confidence+b.Confidence)/2)
	e.segs[index] = merged
	e.segs = append(e.segs[:index+1], e.segs[index+2:]...)
	return nil
}

// Split divides the segment at index at the given word boundary. The first
// part keeps the segment's ID and start; the second part is a new segment
// starting at splitStart.
func (e *Editor) Split(index, wordIndex int, splitStart float64) error {
	if index < 0 || index >= len(e.segs) {
		return fmt.Errorf("split: index %d out of range (0..%d)", index, len(e.segs)-1)
	}
	words := strings.Fields(e.segs[index].Text)
	if wordIndex <= 0 || wordIndex >= len(words) {
		return fmt.Errorf("split: word index %d out of range (1..%d)", wordIndex, len(words)-1)
	}

	head := e.segs[index]
	head.Text = strings.Join(words[:wordIndex], " ")
	tail := NewSegment(strings.Join(words[wordIndex:], " "), splitStart, e.segs[index].Confidence)

	e.segs[index] = head
	e.segs = append(e.segs[:index+1], append(Sequence{tail}, e.segs[index+1:]...)...)
	return nil
}

// Retime changes the start offset of the segment at index. The ID is kept;
// the sequence is not re-ordered.
func (e *Editor) Retime(index int, start float64) error {
	if index < 0 || index >= len(e.segs) {
		return fmt.Errorf("retime: index %d out of range (0..%d)", index, len(e.segs)-1)
	}
	if start < 0 {
		return fmt.Errorf("retime: start %f must not be negative", start)
	}
	e.segs[index].Start = start
	return nil
}

// SetText replaces the text of the segment at index, keeping its ID.
func (e *Editor) SetText(index int, text string) error {
	if index < 0 || index >= len(e.segs) {
		return fmt.Errorf("set text: index %d out of range (0..%d)", index, len(e.segs)-1)
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("set text: text must not be empty")
	}
	e.segs[index].Text = text
	return nil
}

// Delete removes the segment at index.
func (e *Editor) Delete(index int) error {
	if index < 0 || index >= len(e.segs) {
		return fmt.Errorf("delete: index %d out of range (0..%d)", index, len(e.segs)-1)
	}
	e.segs = append(e.segs[:index], e.segs[index+1:]...)
	return nil
}

// Search returns the indices of segments whose text contains the query,
// case-insensitive.
func (e *Editor) Search(query string) []int {
	q := strings.ToLower(query)
	var hits []int
	for i, s := range e.segs {
		if strings.Contains(strings.ToLower(s.Text), q) {
			hits = append(hits, i)
		}
	}
	return hits
}
