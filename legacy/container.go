package legacy

import (
	"bytes"
	"fmt"
	"io"

	"github.com/richardlehane/mscfb"

	"github.com/tsawler/docextract/model"
)

const wordDocumentStream = "WordDocument"

// CheckContainer verifies that data is an OLE2 compound file holding a
// WordDocument stream. Other OLE2 files, such as legacy spreadsheets,
// are rejected as malformed.
func CheckContainer(data []byte) error {
	return checkContainer(bytes.NewReader(data))
}

func checkContainer(r io.ReaderAt) (err error) {
	// mscfb can panic on truncated sector tables.
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("reading compound file: %v: %w", rec, model.ErrMalformedInput)
		}
	}()

	doc, err := mscfb.New(r)
	if err != nil {
		return fmt.Errorf("reading compound file: %v: %w", err, model.ErrMalformedInput)
	}
	for {
		entry, nextErr := doc.Next()
		if nextErr != nil {
			break
		}
		if entry.Name == wordDocumentStream {
			return nil
		}
	}
	return fmt.Errorf("no %s stream: %w", wordDocumentStream, model.ErrMalformedInput)
}
