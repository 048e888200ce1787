// Package convert renders extracted documents into output formats.
//
// Converters are looked up by name or output extension in a [Registry]
// value owned by the caller:
//
//	reg := convert.NewDefaultRegistry(convert.Options{})
//	c, ok := reg.ForExtension(".md")
//	if ok {
//	    err = convert.ConvertFile(c, doc, "out.md")
//	}
package convert

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tsawler/docextract/model"
)

// Source is a loaded document: a title and its elements in reading order.
type Source interface {
	Title() string
	Elements() []model.Element
}

// Converter writes a document in one output format.
type Converter interface {
	// Name identifies the converter in a registry.
	Name() string
	// Extensions lists the output file extensions, without dots.
	Extensions() []string
	// Convert writes doc to w.
	Convert(w io.Writer, doc Source) error
}

// Recognizer extracts text from an image. *ocr.Client implements it.
type Recognizer interface {
	Recognize(img *model.Image) (string, error)
}

// Options configures the built-in converters.
type Options struct {
	// Recognizer, when set, lets the text converter replace images with
	// their recognized text.
	Recognizer Recognizer

	// Sanitize runs HTML output through an allow-list policy.
	Sanitize bool

	// OmitImages leaves images out of HTML and Markdown output.
	OmitImages bool

	// Logger receives diagnostics. Nil disables logging.
	Logger *zerolog.Logger
}

func (o Options) logger() zerolog.Logger {
	if o.Logger == nil {
		return zerolog.Nop()
	}
	return o.Logger.With().Str("component", "convert").Logger()
}

// Factory creates a converter.
type Factory func() Converter

// Registry maps converter names to factories.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// NewDefaultRegistry returns a registry holding the text, html, markdown
// and pdf converters.
func NewDefaultRegistry(opts Options) *Registry {
	r := NewRegistry()
	r.Register("text", func() Converter { return NewText(opts) })
	r.Register("html", func() Converter { return NewHTML(opts) })
	r.Register("markdown", func() Converter { return NewMarkdown(opts) })
	r.Register("pdf", func() Converter { return NewPDF(opts) })
	return r
}

// Register adds or replaces the factory for name.
func (r *Registry) Register(name string, f Factory) {
	r.factories[name] = f
}

// Create builds the converter registered under name.
func (r *Registry) Create(name string) (Converter, bool) {
	f, ok := r.factories[name]
	if !ok {
		return nil, false
	}
	return f(), true
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ForExtension returns the first converter, in name order, that writes
// files with the given extension. The leading dot is optional.
func (r *Registry) ForExtension(ext string) (Converter, bool) {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	for _, name := range r.Names() {
		c := r.factories[name]()
		for _, e := range c.Extensions() {
			if e == ext {
				return c, true
			}
		}
	}
	return nil, false
}

// ConvertFile writes doc to path. A partly written file is removed on
// failure.
func ConvertFile(c Converter, doc Source, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
		if err != nil {
			os.Remove(path)
		}
	}()

	if err := c.Convert(f, doc); err != nil {
		return fmt.Errorf("%s conversion: %w", c.Name(), err)
	}
	return nil
}

// modelSource adapts a model.Document to Source.
type modelSource struct {
	doc *model.Document
}

func (m modelSource) Title() string             { return m.doc.Title }
func (m modelSource) Elements() []model.Element { return m.doc.Elements() }

// FromModel wraps a model document as a Source.
func FromModel(doc *model.Document) Source {
	return modelSource{doc: doc}
}
