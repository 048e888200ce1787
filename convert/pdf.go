package convert

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/rs/zerolog"

	"github.com/tsawler/docextract/media"
	"github.com/tsawler/docextract/model"
)

const (
	pdfFont       = "Helvetica"
	pdfBodySize   = 11.0
	pdfLineHeight = 5.0
	pdfMargin     = 15.0
	mmPerPixel    = 25.4 / 96
)

var pdfHeadingSizes = [...]float64{18, 16, 14, 13, 12, 11}

// PDF writes an A4 document using the core Helvetica font. Text outside
// Windows-1252 cannot be represented and is replaced. JPEG, PNG and GIF
// images are embedded; other formats are skipped.
type PDF struct {
	log zerolog.Logger
}

// NewPDF creates a PDF converter.
func NewPDF(opts Options) *PDF {
	return &PDF{log: opts.logger()}
}

func (c *PDF) Name() string         { return "pdf" }
func (c *PDF) Extensions() []string { return []string{"pdf"} }

// Convert implements Converter.
func (c *PDF) Convert(w io.Writer, doc Source) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	pdf.SetTitle(doc.Title(), true)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	if title := doc.Title(); title != "" {
		pdf.SetFont(pdfFont, "B", pdfHeadingSizes[0]+2)
		pdf.MultiCell(0, 9, tr(title), "", "L", false)
		pdf.Ln(pdfLineHeight)
	}
	pdf.SetFont(pdfFont, "", pdfBodySize)

	for i, e := range doc.Elements() {
		switch el := e.(type) {
		case *model.Heading:
			size := pdfHeadingSizes[el.Level()-1]
			pdf.SetFont(pdfFont, "B", size)
			pdf.MultiCell(0, size*0.5, tr(el.GetText()), "", "L", false)
			pdf.SetFont(pdfFont, "", pdfBodySize)
			pdf.Ln(2)
		case *model.Paragraph:
			var sb strings.Builder
			for _, t := range el.Texts() {
				sb.WriteString(t.GetText())
			}
			pdf.MultiCell(0, pdfLineHeight, tr(sb.String()), "", "L", false)
			pdf.Ln(2)
		case *model.Text:
			pdf.MultiCell(0, pdfLineHeight, tr(el.GetText()), "", "L", false)
			pdf.Ln(2)
		case *model.Table:
			pdfTable(pdf, el, tr)
		case *model.Image:
			c.image(pdf, el, fmt.Sprintf("img%d", i))
		}
		if err := pdf.Error(); err != nil {
			return fmt.Errorf("element %d (%s): %w", i, e.Type(), err)
		}
	}

	return pdf.Output(w)
}

func pdfTable(pdf *gofpdf.Fpdf, t *model.Table, tr func(string) string) {
	cols := t.ColCount()
	if cols == 0 {
		return
	}

	left, _, right, bottom := pdf.GetMargins()
	pageW, pageH := pdf.GetPageSize()
	colW := (pageW - left - right) / float64(cols)

	for _, row := range t.Rows() {
		cells := row.Cells()
		lines := make([][][]byte, cols)
		maxLines := 1
		for i := range lines {
			var text string
			if i < len(cells) {
				text = tr(cells[i].Text())
			}
			lines[i] = pdf.SplitLines([]byte(text), colW-2)
			if len(lines[i]) > maxLines {
				maxLines = len(lines[i])
			}
		}

		h := float64(maxLines) * pdfLineHeight
		if pdf.GetY()+h > pageH-bottom {
			pdf.AddPage()
		}
		x, y := left, pdf.GetY()
		for i := 0; i < cols; i++ {
			cx := x + float64(i)*colW
			pdf.Rect(cx, y, colW, h, "D")
			for j, ln := range lines[i] {
				pdf.SetXY(cx+1, y+float64(j)*pdfLineHeight)
				pdf.CellFormat(colW-2, pdfLineHeight, string(ln), "", 0, "L", false, 0, "")
			}
		}
		pdf.SetXY(x, y+h)
	}
	pdf.Ln(pdfLineHeight)
}

func (c *PDF) image(pdf *gofpdf.Fpdf, img *model.Image, name string) {
	var imageType string
	switch media.Normalize(img.Format()) {
	case "jpg":
		imageType = "JPG"
	case "png":
		imageType = "PNG"
	case "gif":
		imageType = "GIF"
	default:
		c.log.Debug().Str("format", img.Format()).Msg("image format not embeddable in PDF, skipped")
		return
	}

	opts := gofpdf.ImageOptions{ImageType: imageType}
	info := pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(img.Data()))
	if !pdf.Ok() || info == nil {
		c.log.Warn().Err(pdf.Error()).Str("format", img.Format()).Msg("image could not be decoded, skipped")
		pdf.ClearError()
		return
	}

	left, _, right, _ := pdf.GetMargins()
	pageW, _ := pdf.GetPageSize()
	maxW := pageW - left - right

	w, h := float64(img.Width())*mmPerPixel, float64(img.Height())*mmPerPixel
	if w <= 0 || h <= 0 {
		w, h = info.Width(), info.Height()
	}
	if w > maxW {
		h = h * maxW / w
		w = maxW
	}

	pdf.ImageOptions(name, left, pdf.GetY(), w, h, true, opts, 0, "")
	pdf.Ln(2)
}
