// Package plain loads plain text files line by line. The first line is the
// document title and a level 1 heading; every other non-empty line is a
// paragraph with a single run.
package plain

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tsawler/docextract/model"
)

// Read builds a document from r.
func Read(r io.Reader) (*model.Document, error) {
	doc := model.NewDocument()

	br := bufio.NewReader(r)
	first := true
	for {
		raw, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("reading text: %w", err)
		}
		if raw == "" && err == io.EOF {
			break
		}
		line := strings.TrimSuffix(strings.TrimSuffix(raw, "\n"), "\r")

		if first {
			doc.Title = line
			doc.Add(model.NewHeading(line, 1))
			first = false
		} else if line != "" {
			doc.Add(model.NewParagraph(line))
		}

		if err == io.EOF {
			break
		}
	}
	return doc, nil
}

// Load reads the text file at path.
func Load(path string) (*model.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", path, model.ErrNotFound)
		}
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}
