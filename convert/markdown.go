package convert

import (
	"io"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"gopkg.in/yaml.v3"
)

// Markdown writes CommonMark with pipe tables. The document is rendered to
// HTML first and then converted. The first table row becomes the header row,
// and line breaks inside cells are kept as <br />.
type Markdown struct {
	html *HTML
	md   *converter.Converter
}

// NewMarkdown creates a Markdown converter.
func NewMarkdown(opts Options) *Markdown {
	return &Markdown{
		html: NewHTML(opts),
		md: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(
					table.WithNewlineBehavior(table.NewlineBehaviorPreserve),
					table.WithHeaderPromotion(true),
				),
			),
		),
	}
}

func (c *Markdown) Name() string         { return "markdown" }
func (c *Markdown) Extensions() []string { return []string{"md", "markdown"} }

// Convert implements Converter.
func (c *Markdown) Convert(w io.Writer, doc Source) error {
	body, err := c.html.Body(doc)
	if err != nil {
		return err
	}

	md, err := c.md.ConvertString(body)
	if err != nil {
		return err
	}

	var sb strings.Builder
	if title := strings.TrimSpace(doc.Title()); title != "" {
		front, err := yaml.Marshal(frontMatter{Title: title})
		if err != nil {
			return err
		}
		sb.WriteString("---\n")
		sb.Write(front)
		sb.WriteString("---\n\n")
	}
	sb.WriteString(strings.TrimSpace(md))
	sb.WriteString("\n")

	_, err = io.WriteString(w, sb.String())
	return err
}

type frontMatter struct {
	Title string `yaml:"title"`
}
