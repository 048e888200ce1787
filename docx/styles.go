package docx

import (
	"encoding/xml"
	"errors"
	"strings"
)

// HeadingLevelFunc decides whether a paragraph style denotes a heading.
// isHeading false means an ordinary paragraph. A non-nil err means the style
// is a heading whose level could not be read; level is then 0 and the
// heading constructor clamps it to 1.
type HeadingLevelFunc func(style string) (level int, isHeading bool, err error)

var (
	errNoLevelSeparator = errors.New("no space after \"Heading\" in style")
	errNoLevelDigits    = errors.New("no level number after \"Heading \" in style")
)

// StyleTextLevel is the default heading detector. A style containing the
// substring "Heading" is a heading; the level is the integer that follows
// the first space after "Heading", so "Heading 2" yields 2. "Heading2" has
// no space and reports an error with level 0.
func StyleTextLevel(style string) (int, bool, error) {
	idx := strings.Index(style, "Heading")
	if idx < 0 {
		return 0, false, nil
	}
	rest := style[idx+len("Heading"):]
	sp := strings.IndexByte(rest, ' ')
	if sp < 0 {
		return 0, true, errNoLevelSeparator
	}
	level, ok := atoiPrefix(rest[sp+1:])
	if !ok {
		return 0, true, errNoLevelDigits
	}
	return level, true, nil
}

// StyleIDLevel recognises Word's built-in heading style IDs
// ("Heading1".."Heading9", "Title", "Subtitle"), case-insensitively, with or
// without a space before the digit.
func StyleIDLevel(style string) (int, bool, error) {
	id := strings.ToLower(strings.ReplaceAll(style, " ", ""))

	headingMap := map[string]int{
		"heading1": 1, "heading2": 2, "heading3": 3,
		"heading4": 4, "heading5": 5, "heading6": 6,
		"heading7": 7, "heading8": 8, "heading9": 9,
		"title": 1, "subtitle": 2,
	}

	if level, ok := headingMap[id]; ok {
		return level, true, nil
	}
	return 0, false, nil
}

// atoiPrefix parses a leading, optionally signed, decimal integer after
// optional whitespace. ok is false when no digits are present.
func atoiPrefix(s string) (int, bool) {
	s = strings.TrimLeft(s, " \t\n\r")
	neg := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}
	n, digits := 0, 0
	for _, c := range s {
		if c < '0' || c > '9' {
			break
		}
		if n < 1<<20 {
			n = n*10 + int(c-'0')
		}
		digits++
	}
	if digits == 0 {
		return 0, false
	}
	if neg {
		n = -n
	}
	return n, true
}

// paragraphStyle returns the style of a w:p node: a plain "style" attribute
// when present, otherwise w:pPr/w:pStyle/@w:val.
func paragraphStyle(p *Node) string {
	if s, ok := p.Attr("style"); ok {
		return s
	}
	if ppr := p.Child("pPr"); ppr != nil {
		if ps := ppr.Child("pStyle"); ps != nil {
			v, _ := ps.Attr("val")
			return v
		}
	}
	return ""
}

// relationshipsXML represents _rels/*.rels files
type relationshipsXML struct {
	XMLName       xml.Name          `xml:"Relationships"`
	Relationships []relationshipXML `xml:"Relationship"`
}

// relationshipXML represents a single relationship.
type relationshipXML struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr"` // External or empty (internal)
}

// corePropertiesXML represents docProps/core.xml (Dublin Core metadata)
type corePropertiesXML struct {
	XMLName xml.Name `xml:"coreProperties"`
	Title   string   `xml:"title"`
	Subject string   `xml:"subject"`
	Creator string   `xml:"creator"`
}

// Relationship type constants
const (
	relTypeOfficeDocument = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	relTypeImage          = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"
)

// Drawing extension URIs used to pick the image format tag.
const (
	uriWordprocessingDrawing = "http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"
	uriJPEG                  = "http://schemas.openxmlformats.org/drawingml/2006/jpeg"
)
