// Package legacy loads binary Word (.doc) documents by running an external
// text extractor and rebuilding paragraph boundaries from its line output.
package legacy

import (
	"bufio"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tsawler/docextract/model"
)

// reconstructor accumulates lines into paragraphs.
type reconstructor struct {
	paras   []*model.Paragraph
	current strings.Builder
}

func (rc *reconstructor) flush() {
	if rc.current.Len() > 0 {
		rc.paras = append(rc.paras, model.NewParagraph(rc.current.String()))
		rc.current.Reset()
	}
}

func (rc *reconstructor) line(line string) {
	if line == "" {
		rc.flush()
		return
	}

	if line[0] == ' ' || line[0] == '\t' {
		rc.flush()
		line = strings.TrimLeft(line, " \t")
		if line == "" {
			return
		}
	}

	if rc.current.Len() > 0 {
		rc.current.WriteByte(' ')
	}
	rc.current.WriteString(line)
}

// Reconstruct rebuilds paragraphs from line-oriented text. A blank line ends
// the current paragraph. A line starting with a space or tab also ends it
// and starts a new one with the indentation removed. Other lines are joined
// to the current paragraph with a single space. Each paragraph holds one
// text run.
func Reconstruct(r io.Reader) ([]*model.Paragraph, error) {
	var rc reconstructor

	br := bufio.NewReader(r)
	for {
		raw, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, err
		}
		if raw != "" {
			rc.line(strings.TrimSuffix(strings.TrimSuffix(raw, "\n"), "\r"))
		}
		if err == io.EOF {
			break
		}
	}
	rc.flush()

	return rc.paras, nil
}

// ReconstructString is Reconstruct over an in-memory string.
func ReconstructString(s string) []*model.Paragraph {
	// a strings.Reader never fails
	paras, _ := Reconstruct(strings.NewReader(s))
	return paras
}

func logParagraphs(log zerolog.Logger, paras []*model.Paragraph) {
	log.Debug().Int("paragraphs", len(paras)).Msg("paragraphs reconstructed from extractor output")
	for i, p := range paras {
		log.Trace().Int("index", i).Int("length", len(p.GetText())).Msg("paragraph")
	}
}
