package transcript

import "strings"

// Word is a single recognized token with its absolute start offset in
// seconds and a confidence score, as reported by a backend.
type Word struct {
	Text       string
	Start      float64
	Confidence float64
}

// maxWordsPerSegment caps how many words accumulate into a single segment
// before it is closed regardless of punctuation.
const maxWordsPerSegment = 10

// Normalize groups a backend's ordered word list into sentence-like segments.
// A segment starts at its first word's offset (shifted by base) and closes
// when it holds ten words, when a word ends in sentence punctuation, or at
// the end of the list. Segment confidence is the mean of its words'
// confidences. The same heuristic is used by every backend so output shape
// does not depend on the provider.
func Normalize(words []Word, base float64) Sequence {
	var segs Sequence
	var texts []string
	var start, confSum float64

	for i, w := range words {
		if len(texts) == 0 {
			start = base + w.Start
		}
		texts = append(texts, w.Text)
		confSum += w.Confidence

		if len(texts) >= maxWordsPerSegment || endsSentence(w.Text) || i == len(words)-1 {
			segs = append(segs, NewSegment(strings.Join(texts, " "), start, confSum/float64(len(texts))))
			texts = nil
			confSum = 0
		}
	}

	return segs
}

func endsSentence(text string) bool {
	return strings.HasSuffix(text, ".") || strings.HasSuffix(text, "!") || strings.HasSuffix(text, "?")
}
