package export

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/voicescribe/internal/transcript"
)

// DefaultWrapLimit is the subtitle line length used when the caller passes
// no explicit limit.
const DefaultWrapLimit = 42

// A segment with no successor is shown for this long.
const lastEntrySeconds = 2.0

// WriteSRT renders segments as numbered SRT entries. Each entry ends where
// the next segment starts; the final entry gets a fixed display window.
// Lines longer than wrapLimit characters are word-wrapped. A wrapLimit of
// zero or less means DefaultWrapLimit.
func WriteSRT(w io.Writer, segs transcript.Sequence, wrapLimit int) error {
	if wrapLimit <= 0 {
		wrapLimit = DefaultWrapLimit
	}
	for i, seg := range segs {
		end := seg.Start + lastEntrySeconds
		if i+1 < len(segs) {
			end = segs[i+1].Start
		}
		_, err := fmt.Fprintf(w, "%d\n%s --> %s\n%s\n\n",
			i+1, srtStamp(seg.Start), srtStamp(end), wrapWords(seg.Text, wrapLimit))
		if err != nil {
			return err
		}
	}
	return nil
}

// ParseSRT reads SRT content back into a Sequence. Wrapped lines within an
// entry are rejoined with single spaces; confidence defaults to full since
// the format carries none.
func ParseSRT(r io.Reader) (transcript.Sequence, error) {
	var segs transcript.Sequence
	scanner := bufio.NewScanner(r)

	var (
		start    float64
		haveTime bool
		text     []string
	)
	flush := func() {
		if haveTime && len(text) > 0 {
			segs = append(segs, transcript.NewSegment(strings.Join(text, " "), start, 1.0))
		}
		haveTime = false
		text = nil
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			flush()
		case strings.Contains(line, "-->"):
			from := strings.TrimSpace(strings.SplitN(line, "-->", 2)[0])
			s, err := parseSrtStamp(from)
			if err != nil {
				return nil, fmt.Errorf("bad SRT timestamp %q: %w", from, err)
			}
			start = s
			haveTime = true
		case !haveTime:
			// entry number line, ignored
		default:
			text = append(text, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	flush()
	return segs, nil
}

// srtStamp renders seconds as HH:MM:SS,mmm.
func srtStamp(seconds float64) string {
	ms := int(seconds*1000 + 0.5)
	h := ms / 3600000
	m := ms % 3600000 / 60000
	s := ms % 60000 / 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms%1000)
}

func parseSrtStamp(stamp string) (float64, error) {
	parts := strings.Split(strings.Replace(stamp, ",", ":", 1), ":")
	if len(parts) != 4 {
		return 0, fmt.Errorf("expected HH:MM:SS,mmm")
	}
	var total float64
	for i, mult := range []float64{3600, 60, 1, 0.001} {
		v, err := strconv.Atoi(parts[i])
		if err != nil {
			return 0, err
		}
		total += float64(v) * mult
	}
	return total, nil
}

// wrapWords breaks text at word boundaries so no line exceeds limit
// characters. A single word longer than the limit stays on its own line.
func wrapWords(text string, limit int) string {
	words := strings.Fields(text)
	var (
		lines []string
		cur   string
	)
	for _, word := range words {
		switch {
		case cur == "":
			cur = word
		case len(cur)+1+len(word) <= limit:
			cur += " " + word
		default:
			lines = append(lines, cur)
			cur = word
		}
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	return strings.Join(lines, "\n")
}
