package export

import (
	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"

	"github.com/nguyentantai21042004/voicescribe/internal/transcript"
)

const (
	fontName = "Times New Roman"
	fontSize = 13
)

// WriteDOCX renders a record as a styled document: a bold title, a created
// line, then one timestamped paragraph per segment.
func WriteDOCX(rec transcript.Record, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	addStyledRun(doc.AddParagraph(""), "Transcript: "+rec.SourceID, true, 16)
	addStyledRun(doc.AddParagraph(""), "Created "+rec.CreatedAt.Format("2006-01-02 15:04"), false, fontSize)
	doc.AddParagraph("")

	for _, seg := range rec.Segments {
		p := doc.AddParagraph("")
		p.AddText("["+clockStamp(seg.Start)+"] ").Font(fontName).Size(fontSize).Color("808080")
		p.AddText(seg.Text).Font(fontName).Size(fontSize).Color("000000")
	}

	return doc.SaveTo(outputPath)
}

func addStyledRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	run := p.AddText(text).Font(fontName).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}
