package legacy

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/tsawler/docextract/model"
)

// Options configures Load.
type Options struct {
	// Extractor produces the plain text. Nil means Antiword{}.
	Extractor Extractor

	// Encoding names the character encoding of the extractor output.
	Encoding string

	// SkipContainerCheck disables the OLE2 WordDocument check.
	SkipContainerCheck bool

	// Logger receives diagnostics. Nil disables logging.
	Logger *zerolog.Logger
}

// Load extracts the paragraphs of the legacy document at path. Either all
// paragraphs are returned or an error is; nothing partial is kept.
func Load(ctx context.Context, path string, opts Options) ([]*model.Paragraph, error) {
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = opts.Logger.With().Str("component", "legacy").Logger()
	}
	extractor := opts.Extractor
	if extractor == nil {
		extractor = Antiword{}
	}

	if !opts.SkipContainerCheck {
		f, err := os.Open(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("%s: %w", path, model.ErrNotFound)
			}
			return nil, fmt.Errorf("opening %s: %w", path, err)
		}
		err = checkContainer(f)
		f.Close()
		if err != nil {
			log.Error().Err(err).Str("path", path).Msg("not a Word compound file")
			return nil, err
		}
	}

	log.Debug().Str("path", path).Msg("running legacy text extractor")
	out, err := extractor.Extract(ctx, path)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("legacy text extraction failed")
		return nil, err
	}

	text, err := Decode(out, opts.Encoding)
	if err != nil {
		return nil, err
	}

	paras := ReconstructString(text)
	logParagraphs(log, paras)
	return paras, nil
}
