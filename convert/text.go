package convert

import (
	"bufio"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tsawler/docextract/model"
)

// Text writes plain text: the title, "#"-prefixed headings, and paragraph
// runs each followed by a space, with a blank line after every block.
// Table rows are written one per line with cells separated by tabs.
type Text struct {
	recognizer Recognizer
	log        zerolog.Logger
}

// NewText creates a text converter.
func NewText(opts Options) *Text {
	return &Text{recognizer: opts.Recognizer, log: opts.logger()}
}

func (c *Text) Name() string         { return "text" }
func (c *Text) Extensions() []string { return []string{"txt"} }

// Convert implements Converter.
func (c *Text) Convert(w io.Writer, doc Source) error {
	bw := bufio.NewWriter(w)

	bw.WriteString(doc.Title())
	bw.WriteString("\n\n")

	for _, e := range doc.Elements() {
		switch el := e.(type) {
		case *model.Heading:
			bw.WriteString(strings.Repeat("#", el.Level()))
			bw.WriteString(" ")
			bw.WriteString(el.GetText())
			bw.WriteString("\n\n")
		case *model.Paragraph:
			for _, t := range el.Texts() {
				bw.WriteString(t.GetText())
				bw.WriteString(" ")
			}
			bw.WriteString("\n\n")
		case *model.Text:
			bw.WriteString(el.GetText())
			bw.WriteString("\n\n")
		case *model.Table:
			if el.RowCount() == 0 {
				continue
			}
			for _, row := range el.Rows() {
				cells := row.Cells()
				for i, cell := range cells {
					if i > 0 {
						bw.WriteString("\t")
					}
					bw.WriteString(strings.ReplaceAll(cell.Text(), "\n", " "))
				}
				bw.WriteString("\n")
			}
			bw.WriteString("\n")
		case *model.Image:
			if text := c.recognize(el); text != "" {
				bw.WriteString(text)
				bw.WriteString("\n\n")
			}
		}
	}

	return bw.Flush()
}

func (c *Text) recognize(img *model.Image) string {
	if c.recognizer == nil {
		return ""
	}
	text, err := c.recognizer.Recognize(img)
	if err != nil {
		c.log.Warn().Err(err).Str("format", img.Format()).Msg("image text recognition failed")
		return ""
	}
	return text
}
