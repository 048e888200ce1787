package ocr

import (
	"errors"

	"github.com/tsawler/docextract/media"
)

var (
	// ErrOCRNotEnabled is returned when OCR functions are called but OCR
	// support was not compiled in. Rebuild with -tags ocr to enable it.
	ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

	// ErrUnsupportedImage is returned for image formats the OCR engine
	// cannot decode, such as Windows metafiles.
	ErrUnsupportedImage = errors.New("image format not supported by OCR")
)

// PageSegMode controls how Tesseract analyzes the page layout. Values
// match Tesseract's own numbering.
type PageSegMode int

// Page segmentation modes.
const (
	PSMAuto        PageSegMode = 3  // fully automatic (default)
	PSMSingleBlock PageSegMode = 6  // single uniform block of text
	PSMSingleLine  PageSegMode = 7  // single text line
	PSMSparseText  PageSegMode = 11 // as much text as possible, no order
)

// Supported reports whether images tagged with format can be passed to
// the OCR engine.
func Supported(format string) bool {
	switch media.Normalize(format) {
	case "png", "jpg", "gif", "bmp", "tiff", "webp":
		return true
	default:
		return false
	}
}
