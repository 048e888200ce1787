package docx

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tsawler/docextract/media"
	"github.com/tsawler/docextract/model"
)

var errNoImageID = errors.New("drawing has no blip embed id")

// Options configures a Parser.
type Options struct {
	// Images loads media for drawing anchors. Nil means no image resolves.
	Images ImageResolver

	// HeadingLevel classifies paragraph styles. Nil means StyleTextLevel.
	HeadingLevel HeadingLevelFunc

	// SniffImageFormat replaces the default "png" tag with the format read
	// from the media header when neither the drawing nor the resolver's
	// FormatHint names a known format.
	SniffImageFormat bool

	// Logger receives diagnostics. Nil disables logging.
	Logger *zerolog.Logger
}

// Result is the output of one Parse call.
type Result struct {
	Elements []model.Element
	Warnings []model.Warning
	// Title is the text of the first heading, or "".
	Title string
}

// Parser walks the body of a WordprocessingML document tree.
type Parser struct {
	opts Options
	log  zerolog.Logger
}

// NewParser creates a parser.
func NewParser(opts Options) *Parser {
	if opts.HeadingLevel == nil {
		opts.HeadingLevel = StyleTextLevel
	}
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = opts.Logger.With().Str("component", "docx").Logger()
	}
	return &Parser{opts: opts, log: log}
}

// Parse emits elements for the body-level nodes of root in document order.
// A nil root is malformed input; every other problem is confined to the node
// it occurs in and reported as a warning.
func (p *Parser) Parse(root *Node) (*Result, error) {
	if root == nil {
		p.log.Error().Msg("document has no root element")
		return nil, fmt.Errorf("no document root: %w", model.ErrMalformedInput)
	}

	p.log.Debug().Msg("parsing document body")

	s := &parseState{Parser: p, result: &Result{}}
	body := root.Child("body")
	if body == nil {
		// Bare trees without w:body keep their body nodes under the root.
		body = root
	}
	s.walkBody(body)

	p.log.Debug().
		Int("elements", len(s.result.Elements)).
		Int("warnings", len(s.result.Warnings)).
		Msg("document body parsed")
	return s.result, nil
}

// parseState holds per-Parse mutable state.
type parseState struct {
	*Parser
	result *Result
}

func (s *parseState) add(e model.Element) {
	s.result.Elements = append(s.result.Elements, e)
}

func (s *parseState) warn(kind model.WarningKind, node string, err error) {
	s.result.Warnings = append(s.result.Warnings, model.Warning{Kind: kind, Node: node, Err: err})
}

// walkBody dispatches the structural children of a body-like node.
func (s *parseState) walkBody(parent *Node) {
	for _, n := range parent.Children {
		if n.IsText {
			continue
		}
		switch n.Local() {
		case "p":
			s.paragraph(n)
		case "tbl":
			s.table(n)
		case "drawing":
			s.drawing(n)
		case "sdt":
			// content controls wrap ordinary body content
			if content := n.Child("sdtContent"); content != nil {
				s.walkBody(content)
			}
		}
	}
}

// paragraph emits a heading or a paragraph for a w:p node, followed by any
// images anchored inside it.
func (s *parseState) paragraph(n *Node) {
	style := paragraphStyle(n)
	level, isHeading, err := s.opts.HeadingLevel(style)

	if isHeading {
		if err != nil {
			s.log.Warn().Err(err).Str("style", style).Msg("heading level not readable, using 1")
			s.warn(model.WarnHeadingLevel, "p", fmt.Errorf("style %q: %w", style, err))
		}
		text := n.TextContent()
		if strings.TrimSpace(text) != "" {
			h := model.NewHeading(text, level)
			s.add(h)
			if s.result.Title == "" {
				s.result.Title = strings.TrimSpace(text)
			}
			s.log.Debug().Str("text", text).Int("level", h.Level()).Msg("heading added")
		} else {
			s.log.Debug().Str("style", style).Msg("empty heading dropped")
		}
	} else {
		para := model.NewParagraph()
		for _, run := range paragraphRuns(n) {
			para.AddText(run)
		}
		if !para.IsEmpty() {
			s.add(para)
			s.log.Debug().Int("runs", len(para.Texts())).Msg("paragraph added")
		}
	}

	for _, d := range n.FindAll("drawing") {
		s.drawing(d)
	}
}

// paragraphRuns returns one string per non-empty text run of p, in order.
// Runs nested in any wrapper (hyperlinks, insertions, content controls,
// bidi and moved-to ranges) are included; deleted and moved-from runs are not.
func paragraphRuns(p *Node) []string {
	var runs []string
	for _, c := range p.Children {
		if c.IsText {
			if strings.TrimSpace(c.Text) != "" {
				runs = append(runs, c.Text)
			}
			continue
		}
		switch c.Local() {
		case "r":
			if t := c.TextContent(); t != "" {
				runs = append(runs, t)
			}
		case "pPr", "del", "moveFrom":
		default:
			runs = append(runs, paragraphRuns(c)...)
		}
	}
	return runs
}

// drawing emits an image for a w:drawing anchor. Anchors without a blip
// embed ID, or whose media cannot be loaded, are skipped with a warning.
func (s *parseState) drawing(n *Node) {
	var relID string
	if blip := n.Find("blip"); blip != nil {
		relID, _ = blip.Attr("embed")
	}
	if relID == "" {
		s.log.Error().Msg("image anchor has no relationship id, skipped")
		s.warn(model.WarnImageMissingID, "drawing", errNoImageID)
		return
	}

	format, known := drawingFormat(n)
	if h, ok := s.opts.Images.(FormatHinter); ok && !known {
		if hint, ok := h.FormatHint(relID); ok {
			format, known = hint, true
		}
	}
	width, height := drawingExtent(n)

	var data []byte
	if s.opts.Images != nil {
		data = s.opts.Images.ResolveImage(relID, format)
	}
	if len(data) == 0 {
		s.log.Warn().Str("id", relID).Str("format", format).Msg("image data not found, skipped")
		s.warn(model.WarnImageUnresolved, "drawing", fmt.Errorf("no media for %s", relID))
		return
	}

	if s.opts.SniffImageFormat && !known {
		if info, ok := media.Sniff(data); ok {
			format = info.Format
		}
	}

	s.add(model.NewImage(data, format, width, height))
	s.log.Debug().
		Str("id", relID).
		Str("format", format).
		Int("width", width).
		Int("height", height).
		Msg("image added")
}

// drawingFormat picks the format tag from the first recognised extension
// URI below the anchor. known is false when the "png" default was used.
func drawingFormat(n *Node) (format string, known bool) {
	for _, ext := range n.FindAll("ext") {
		uri, _ := ext.Attr("uri")
		switch uri {
		case uriWordprocessingDrawing:
			return "png", true
		case uriJPEG:
			return "jpg", true
		}
	}
	return "png", false
}

// drawingExtent reads wp:extent in EMUs and converts to pixels. Both
// attributes must be present; otherwise the size is 0x0.
func drawingExtent(n *Node) (width, height int) {
	extent := n.Find("extent")
	if extent == nil {
		return 0, 0
	}
	cx, okX := extent.Attr("cx")
	cy, okY := extent.Attr("cy")
	if !okX || !okY {
		return 0, 0
	}
	return media.EMUToPixels(parseEMU(cx)), media.EMUToPixels(parseEMU(cy))
}

// parseEMU parses an EMU attribute value; unreadable values count as 0.
func parseEMU(s string) int64 {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0
	}
	return v
}

// Document parses the package's main part into a model document. The title
// is the core-properties title, falling back to the first heading.
func (r *Reader) Document(opts Options) (*model.Document, []model.Warning, error) {
	if opts.Images == nil {
		opts.Images = NewPackageResolver(r)
	}

	root, err := r.Root()
	if err != nil {
		return nil, nil, err
	}

	res, err := NewParser(opts).Parse(root)
	if err != nil {
		return nil, nil, err
	}

	doc := model.NewDocument()
	for _, e := range res.Elements {
		doc.Add(e)
	}
	doc.Title = r.Title()
	if doc.Title == "" {
		doc.Title = res.Title
	}
	return doc, res.Warnings, nil
}
