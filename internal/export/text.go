// Package export renders finished transcripts as plain text, SRT subtitles
// and DOCX documents.
package export

import (
	"fmt"
	"io"

	"github.com/nguyentantai21042004/voicescribe/internal/transcript"
)

// WriteText renders a record as plain text: a short header followed by one
// `[m:ss] text` line per segment.
func WriteText(w io.Writer, rec transcript.Record) error {
	if _, err := fmt.Fprintf(w, "Transcript: %s\nCreated: %s\n\n",
		rec.SourceID, rec.CreatedAt.Format("2006-01-02 15:04:05")); err != nil {
		return err
	}
	for _, seg := range rec.Segments {
		if _, err := fmt.Fprintf(w, "[%s] %s\n", clockStamp(seg.Start), seg.Text); err != nil {
			return err
		}
	}
	return nil
}

// clockStamp renders seconds as m:ss, e.g. 65.4 -> "1:05".
func clockStamp(seconds float64) string {
	total := int(seconds)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
