package convert

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/tsawler/docextract/media"
	"github.com/tsawler/docextract/model"
)

// HTML writes a standalone HTML5 page. Images are embedded as data URIs.
type HTML struct {
	sanitize   bool
	omitImages bool
	log        zerolog.Logger
}

// NewHTML creates an HTML converter.
func NewHTML(opts Options) *HTML {
	return &HTML{sanitize: opts.Sanitize, omitImages: opts.OmitImages, log: opts.logger()}
}

func (c *HTML) Name() string         { return "html" }
func (c *HTML) Extensions() []string { return []string{"html", "htm"} }

// Convert implements Converter.
func (c *HTML) Convert(w io.Writer, doc Source) error {
	body, err := c.Body(doc)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\"/><title>")
	buf.WriteString(html.EscapeString(doc.Title()))
	buf.WriteString("</title></head><body>")
	buf.WriteString(body)
	buf.WriteString("</body></html>\n")

	_, err = w.Write(buf.Bytes())
	return err
}

// Body renders the document elements as an HTML fragment.
func (c *HTML) Body(doc Source) (string, error) {
	var buf bytes.Buffer
	for _, e := range doc.Elements() {
		n := c.node(e)
		if n == nil {
			continue
		}
		if err := html.Render(&buf, n); err != nil {
			return "", fmt.Errorf("rendering %s: %w", e.Type(), err)
		}
		buf.WriteByte('\n')
	}

	out := buf.String()
	if c.sanitize {
		out = sanitizePolicy().Sanitize(out)
	}
	return out, nil
}

func sanitizePolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowDataURIImages()
	return p
}

var headingAtoms = [...]atom.Atom{atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6}

func (c *HTML) node(e model.Element) *html.Node {
	switch el := e.(type) {
	case *model.Heading:
		h := elementNode(headingAtoms[el.Level()-1])
		h.AppendChild(textNode(el.GetText()))
		return h
	case *model.Paragraph:
		p := elementNode(atom.P)
		for _, t := range el.Texts() {
			appendLines(p, t.GetText())
		}
		return p
	case *model.Text:
		p := elementNode(atom.P)
		appendLines(p, el.GetText())
		return p
	case *model.Table:
		return tableNode(el)
	case *model.Image:
		if c.omitImages {
			return nil
		}
		c.log.Trace().Str("format", el.Format()).Int("bytes", len(el.Data())).Msg("embedding image")
		return imageNode(el)
	}
	return nil
}

func tableNode(t *model.Table) *html.Node {
	table := elementNode(atom.Table)
	tbody := elementNode(atom.Tbody)
	table.AppendChild(tbody)
	for _, row := range t.Rows() {
		tr := elementNode(atom.Tr)
		for _, cell := range row.Cells() {
			td := elementNode(atom.Td)
			appendLines(td, cell.Text())
			tr.AppendChild(td)
		}
		tbody.AppendChild(tr)
	}
	return table
}

func imageNode(img *model.Image) *html.Node {
	src := "data:" + media.MIMEType(img.Format()) + ";base64," + base64.StdEncoding.EncodeToString(img.Data())
	attrs := []html.Attribute{
		{Key: "src", Val: src},
		{Key: "alt", Val: "image"},
	}
	if img.Width() > 0 && img.Height() > 0 {
		attrs = append(attrs,
			html.Attribute{Key: "width", Val: strconv.Itoa(img.Width())},
			html.Attribute{Key: "height", Val: strconv.Itoa(img.Height())})
	}
	return elementNode(atom.Img, attrs...)
}

// appendLines adds text to n, turning newlines into <br> elements.
func appendLines(n *html.Node, s string) {
	for i, line := range strings.Split(s, "\n") {
		if i > 0 {
			n.AppendChild(elementNode(atom.Br))
		}
		if line != "" {
			n.AppendChild(textNode(line))
		}
	}
}

func elementNode(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}

func textNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}
