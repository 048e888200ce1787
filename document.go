package docextract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/tsawler/docextract/docx"
	"github.com/tsawler/docextract/format"
	"github.com/tsawler/docextract/legacy"
	"github.com/tsawler/docextract/model"
	"github.com/tsawler/docextract/plain"
)

// ErrFileTooLarge is returned when the input exceeds Config.MaxFileSize.
var ErrFileTooLarge = errors.New("file exceeds maximum size")

// Document is a loaded Word document. A Document is not safe for
// concurrent use.
type Document struct {
	cfg Config
	log zerolog.Logger

	path     string
	format   format.Format
	doc      *model.Document
	warnings []model.Warning
}

// New creates an empty document.
func New(cfg Config) *Document {
	cfg.defaults()
	log := zerolog.Nop()
	if cfg.Logger != nil {
		log = *cfg.Logger
	}
	return &Document{cfg: cfg, log: log, doc: model.NewDocument()}
}

// Load replaces the document's content with the content of path. The
// format is chosen by extension: .docx, .doc, and .txt when
// Config.AllowPlainText is set. Previous content is discarded on entry; if
// Load fails the document is left empty.
func (d *Document) Load(ctx context.Context, path string) error {
	d.reset()

	log := d.log.With().Str("path", path).Logger()
	if err := d.load(ctx, path, log); err != nil {
		d.reset()
		log.Error().Err(err).Msg("load failed")
		return err
	}

	for _, w := range d.warnings {
		log.Warn().Str("kind", w.Kind.String()).Err(w.Err).Msg("partial extraction")
	}
	log.Info().
		Str("format", d.format.String()).
		Int("elements", d.doc.Len()).
		Int("warnings", len(d.warnings)).
		Msg("document loaded")
	return nil
}

func (d *Document) load(ctx context.Context, path string, log zerolog.Logger) error {
	if err := d.cfg.Validate(); err != nil {
		return err
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%s: %w", path, model.ErrNotFound)
		}
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory: %w", path, model.ErrUnsupportedFormat)
	}
	if info.Size() > d.cfg.MaxFileSize {
		return fmt.Errorf("%s is %d bytes, limit %d: %w", path, info.Size(), d.cfg.MaxFileSize, ErrFileTooLarge)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	f := format.Detect(path)
	log.Debug().Str("format", f.String()).Msg("dispatching by extension")

	var doc *model.Document
	var warnings []model.Warning
	switch {
	case f == format.DOCX:
		doc, warnings, err = d.loadDOCX(path)
	case f == format.DOC:
		doc, err = d.loadDOC(ctx, path)
	case f == format.Text && d.cfg.AllowPlainText:
		doc, err = plain.Load(path)
	default:
		return fmt.Errorf("%s: %w", path, model.ErrUnsupportedFormat)
	}
	if err != nil {
		return err
	}

	d.path = path
	d.format = f
	d.doc = doc
	d.warnings = warnings
	return nil
}

func (d *Document) loadDOCX(path string) (*model.Document, []model.Warning, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", path, err)
	}

	if !d.cfg.SkipContainerCheck {
		detected, err := format.DetectFromReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %v: %w", path, err, model.ErrMalformedInput)
		}
		if detected != format.DOCX {
			return nil, nil, fmt.Errorf("%s: content is %s, not DOCX: %w", path, detected, model.ErrMalformedInput)
		}
	}

	r, err := docx.NewReader(data, path)
	if err != nil {
		return nil, nil, err
	}

	opts := docx.Options{
		SniffImageFormat: d.cfg.SniffImageFormat,
		Logger:           d.cfg.Logger,
	}
	if d.cfg.ImageSource == ImageSourceDirectory {
		opts.Images = docx.NewDirResolver(path)
	}
	if d.cfg.HeadingDetection == HeadingStyleID {
		opts.HeadingLevel = docx.StyleIDLevel
	}
	return r.Document(opts)
}

func (d *Document) loadDOC(ctx context.Context, path string) (*model.Document, error) {
	paras, err := legacy.Load(ctx, path, legacy.Options{
		Extractor:          d.cfg.extractor(),
		Encoding:           d.cfg.LegacyEncoding,
		SkipContainerCheck: d.cfg.SkipContainerCheck,
		Logger:             d.cfg.Logger,
	})
	if err != nil {
		return nil, err
	}

	doc := model.NewDocument()
	for _, p := range paras {
		doc.Add(p)
	}
	return doc, nil
}

func (d *Document) reset() {
	d.path = ""
	d.format = format.Unknown
	d.doc = model.NewDocument()
	d.warnings = nil
}

// Title returns the document title, or "" when none was found.
func (d *Document) Title() string {
	return d.doc.Title
}

// Elements returns the elements in reading order.
func (d *Document) Elements() []model.Element {
	return d.doc.Elements()
}

// Warnings returns the partial-extraction warnings of the last load.
func (d *Document) Warnings() []model.Warning {
	return d.warnings
}

// Model returns the underlying element model.
func (d *Document) Model() *model.Document {
	return d.doc
}

// Path returns the path of the last successful load.
func (d *Document) Path() string {
	return d.path
}

// Format returns the format of the last successful load.
func (d *Document) Format() format.Format {
	return d.format
}
