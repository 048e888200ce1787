// Package docextract extracts structure from Word documents.
//
// A [Document] loads a .docx package or a legacy .doc file and exposes its
// title and an ordered list of elements (headings, paragraphs, tables and
// images) from the model package.
//
// Basic usage:
//
//	doc := docextract.New(docextract.Config{})
//	if err := doc.Load(ctx, "report.docx"); err != nil {
//	    // handle error
//	}
//	for _, e := range doc.Elements() {
//	    fmt.Println(e.Type())
//	}
//	if w := doc.Warnings(); len(w) > 0 {
//	    log.Println("Warnings:", docextract.FormatWarnings(w))
//	}
//
// Legacy .doc files are flattened to text by antiword, which must be
// installed.
package docextract

import (
	"context"
	"strings"

	"github.com/tsawler/docextract/model"
)

// Open loads path with the default configuration.
func Open(ctx context.Context, path string) (*Document, error) {
	d := New(Config{})
	if err := d.Load(ctx, path); err != nil {
		return nil, err
	}
	return d, nil
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for scripts and tests.
//
// Example:
//
//	doc := docextract.Must(docextract.Open(ctx, "report.docx"))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// FormatWarnings renders warnings one per line.
func FormatWarnings(warnings []model.Warning) string {
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.Error()
	}
	return strings.Join(lines, "\n")
}
