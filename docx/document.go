package docx

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// Node is one node of a generic XML tree. Element nodes have a Name;
// character data nodes have IsText set and carry Text.
type Node struct {
	Name     xml.Name
	Attrs    []xml.Attr
	Children []*Node
	Text     string
	IsText   bool
	Parent   *Node
}

// ParseXML reads a complete XML document into a tree and returns its root
// element.
func ParseXML(r io.Reader) (*Node, error) {
	decoder := xml.NewDecoder(r)

	var root, current *Node
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			n := &Node{Name: t.Name, Attrs: t.Copy().Attr, Parent: current}
			if current == nil {
				if root != nil {
					return nil, fmt.Errorf("multiple root elements")
				}
				root = n
			} else {
				current.Children = append(current.Children, n)
			}
			current = n

		case xml.EndElement:
			if current != nil {
				current = current.Parent
			}

		case xml.CharData:
			if current != nil {
				current.Children = append(current.Children, &Node{
					Text:   string(t),
					IsText: true,
					Parent: current,
				})
			}
		}
	}

	if root == nil {
		return nil, fmt.Errorf("no root element")
	}
	return root, nil
}

// Local returns the element's local name (namespace prefix stripped).
func (n *Node) Local() string {
	return n.Name.Local
}

// Attr returns the value of the attribute with the given local name.
func (n *Node) Attr(local string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

// Child returns the first child element with the given local name.
func (n *Node) Child(local string) *Node {
	for _, c := range n.Children {
		if !c.IsText && c.Name.Local == local {
			return c
		}
	}
	return nil
}

// ChildrenNamed returns all child elements with the given local name.
func (n *Node) ChildrenNamed(local string) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if !c.IsText && c.Name.Local == local {
			out = append(out, c)
		}
	}
	return out
}

// Find returns the first descendant element (depth-first, document order)
// with the given local name.
func (n *Node) Find(local string) *Node {
	for _, c := range n.Children {
		if c.IsText {
			continue
		}
		if c.Name.Local == local {
			return c
		}
		if found := c.Find(local); found != nil {
			return found
		}
	}
	return nil
}

// FindAll returns every descendant element with the given local name in
// document order.
func (n *Node) FindAll(local string) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.IsText {
			continue
		}
		if c.Name.Local == local {
			out = append(out, c)
		}
		out = append(out, c.FindAll(local)...)
	}
	return out
}

// TextContent returns the visible text below n: the content of w:t elements,
// tabs and breaks, plus any non-blank character data found elsewhere.
// Deleted or moved-from text and field instructions are skipped.
func (n *Node) TextContent() string {
	var sb strings.Builder
	n.writeText(&sb)
	return sb.String()
}

func (n *Node) writeText(sb *strings.Builder) {
	for _, c := range n.Children {
		if c.IsText {
			if n.Name.Local == "t" || strings.TrimSpace(c.Text) != "" {
				sb.WriteString(c.Text)
			}
			continue
		}
		switch c.Name.Local {
		case "tab":
			sb.WriteString("\t")
		case "br", "cr":
			sb.WriteString("\n")
		case "delText", "instrText", "pPr", "rPr", "drawing", "pict", "del", "moveFrom":
			// not visible text
		default:
			c.writeText(sb)
		}
	}
}
