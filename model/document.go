package model

import "strings"

// Document is the aggregate of an extracted file: a title and its elements
// in reading order.
type Document struct {
	Title    string
	elements []Element
}

// NewDocument creates a new empty document
func NewDocument() *Document {
	return &Document{elements: make([]Element, 0)}
}

// Add appends an element. Nil elements are ignored.
func (d *Document) Add(e Element) {
	if e == nil {
		return
	}
	d.elements = append(d.elements, e)
}

// Elements returns the elements in reading order.
func (d *Document) Elements() []Element {
	return d.elements
}

// Len returns the number of elements.
func (d *Document) Len() int {
	return len(d.elements)
}

// Reset drops the title and all elements.
func (d *Document) Reset() {
	d.Title = ""
	d.elements = d.elements[:0:0]
}

// Headings returns all headings in order.
func (d *Document) Headings() []*Heading {
	var out []*Heading
	for _, e := range d.elements {
		if h, ok := e.(*Heading); ok {
			out = append(out, h)
		}
	}
	return out
}

// Paragraphs returns all paragraphs in order.
func (d *Document) Paragraphs() []*Paragraph {
	var out []*Paragraph
	for _, e := range d.elements {
		if p, ok := e.(*Paragraph); ok {
			out = append(out, p)
		}
	}
	return out
}

// Tables returns all tables in order.
func (d *Document) Tables() []*Table {
	var out []*Table
	for _, e := range d.elements {
		if t, ok := e.(*Table); ok {
			out = append(out, t)
		}
	}
	return out
}

// Images returns all images in order.
func (d *Document) Images() []*Image {
	var out []*Image
	for _, e := range d.elements {
		if i, ok := e.(*Image); ok {
			out = append(out, i)
		}
	}
	return out
}

// ExtractText returns the text of every text-bearing element, one block per
// element, separated by blank lines.
func (d *Document) ExtractText() string {
	var parts []string
	for _, e := range d.elements {
		if te, ok := e.(TextElement); ok {
			if s := strings.TrimRight(te.GetText(), "\n"); s != "" {
				parts = append(parts, s)
			}
		}
	}
	return strings.Join(parts, "\n\n")
}
