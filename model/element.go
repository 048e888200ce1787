package model

import "strings"

// ElementType represents the type of a document element
type ElementType int

const (
	ElementTypeUnknown ElementType = iota
	ElementTypeText
	ElementTypeParagraph
	ElementTypeHeading
	ElementTypeTable
	ElementTypeImage
	// ElementTypeList is reserved. No loader emits it.
	ElementTypeList
)

func (et ElementType) String() string {
	switch et {
	case ElementTypeText:
		return "Text"
	case ElementTypeParagraph:
		return "Paragraph"
	case ElementTypeHeading:
		return "Heading"
	case ElementTypeTable:
		return "Table"
	case ElementTypeImage:
		return "Image"
	case ElementTypeList:
		return "List"
	default:
		return "Unknown"
	}
}

// Element is the interface for all document elements.
// It is implemented only by the types in this package.
type Element interface {
	Type() ElementType
	element()
}

// TextElement is an interface for elements containing text
type TextElement interface {
	Element
	GetText() string
}

// Text is an immutable run of text.
type Text struct {
	text string
}

// NewText creates a text run.
func NewText(s string) *Text {
	return &Text{text: s}
}

func (t *Text) Type() ElementType { return ElementTypeText }
func (t *Text) GetText() string   { return t.text }
func (t *Text) element()          {}

// Paragraph is an ordered sequence of text runs.
type Paragraph struct {
	texts []*Text
}

// NewParagraph creates a paragraph holding the given runs in order.
func NewParagraph(runs ...string) *Paragraph {
	p := &Paragraph{}
	for _, r := range runs {
		p.AddText(r)
	}
	return p
}

func (p *Paragraph) Type() ElementType { return ElementTypeParagraph }
func (p *Paragraph) element()          {}

// AddText appends a run.
func (p *Paragraph) AddText(s string) {
	p.texts = append(p.texts, NewText(s))
}

// Texts returns the runs in reading order.
func (p *Paragraph) Texts() []*Text {
	return p.texts
}

// IsEmpty reports whether the paragraph has no runs.
func (p *Paragraph) IsEmpty() bool {
	return len(p.texts) == 0
}

// GetText returns the runs concatenated without separators.
func (p *Paragraph) GetText() string {
	var sb strings.Builder
	for _, t := range p.texts {
		sb.WriteString(t.text)
	}
	return sb.String()
}

// Heading level bounds.
const (
	MinHeadingLevel = 1
	MaxHeadingLevel = 6
)

// Heading represents a heading
type Heading struct {
	text  string
	level int // always 1-6
}

// NewHeading creates a heading. The level is clamped to [1, 6].
func NewHeading(text string, level int) *Heading {
	return &Heading{text: text, level: ClampHeadingLevel(level)}
}

// ClampHeadingLevel forces level into [MinHeadingLevel, MaxHeadingLevel].
func ClampHeadingLevel(level int) int {
	if level < MinHeadingLevel {
		return MinHeadingLevel
	}
	if level > MaxHeadingLevel {
		return MaxHeadingLevel
	}
	return level
}

func (h *Heading) Type() ElementType { return ElementTypeHeading }
func (h *Heading) GetText() string   { return h.text }
func (h *Heading) element()          {}

// Level returns the heading level. A zero Heading reports MinHeadingLevel.
func (h *Heading) Level() int { return ClampHeadingLevel(h.level) }

// Image represents an embedded raster image. The bytes are never decoded.
type Image struct {
	data   []byte
	format string
	width  int
	height int
}

// NewImage creates an image element. Width and height are in pixels,
// 0 when unknown.
func NewImage(data []byte, format string, width, height int) *Image {
	return &Image{data: data, format: format, width: width, height: height}
}

func (i *Image) Type() ElementType { return ElementTypeImage }
func (i *Image) element()          {}

// Data returns the raw media bytes.
func (i *Image) Data() []byte { return i.data }

// Format returns the format tag, e.g. "png" or "jpg".
func (i *Image) Format() string { return i.format }

func (i *Image) Width() int  { return i.width }
func (i *Image) Height() int { return i.height }
