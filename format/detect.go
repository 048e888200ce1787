// Package format detects the document formats docextract can load.
package format

import (
	"archive/zip"
	"bytes"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Format represents a supported document format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// DOCX indicates an Office Open XML word processing package (.docx).
	DOCX
	// DOC indicates a legacy binary Word document (.doc).
	DOC
	// Text indicates a plain text file loaded line by line.
	Text
)

var (
	zipMagic = []byte{0x50, 0x4B, 0x03, 0x04}
	oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case DOCX:
		return "DOCX"
	case DOC:
		return "DOC"
	case Text:
		return "Text"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case DOCX:
		return ".docx"
	case DOC:
		return ".doc"
	case Text:
		return ".txt"
	default:
		return ""
	}
}

// Detect determines file format from filename extension.
func Detect(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".docx":
		return DOCX
	case ".doc":
		return DOC
	case ".txt", ".text":
		return Text
	default:
		return Unknown
	}
}

// IsOLE reports whether data starts with the OLE2 compound file signature
// used by legacy Word documents.
func IsOLE(data []byte) bool {
	return bytes.HasPrefix(data, oleMagic)
}

// IsZIP reports whether data starts with a ZIP local file header.
func IsZIP(data []byte) bool {
	return bytes.HasPrefix(data, zipMagic)
}

// DetectFromMagic checks leading bytes to determine format. ZIP archives
// report Unknown because their contents must be inspected; use
// DetectFromReader for those.
func DetectFromMagic(data []byte) Format {
	switch {
	case IsOLE(data):
		return DOC
	case IsZIP(data):
		return Unknown
	case looksLikeText(data):
		return Text
	default:
		return Unknown
	}
}

// looksLikeText accepts non-empty valid UTF-8 without NUL bytes.
func looksLikeText(data []byte) bool {
	if len(data) == 0 || bytes.IndexByte(data, 0) >= 0 {
		return false
	}
	// A multi-byte sequence may be cut at the end of the sample.
	for i := 0; i < utf8.UTFMax && len(data) > 0; i++ {
		if utf8.Valid(data) {
			return true
		}
		data = data[:len(data)-1]
	}
	return false
}

// DetectFromReader inspects content to determine format. ZIP archives are
// opened to check for a word processing main part.
func DetectFromReader(r io.ReaderAt, size int64) (Format, error) {
	magic := make([]byte, 512)
	n, err := r.ReadAt(magic, 0)
	if err != nil && err != io.EOF {
		return Unknown, err
	}
	magic = magic[:n]

	if IsZIP(magic) {
		return detectZIPFormat(r, size)
	}
	return DetectFromMagic(magic), nil
}

// detectZIPFormat reports DOCX when the archive holds word/ parts.
func detectZIPFormat(r io.ReaderAt, size int64) (Format, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return Unknown, err
	}

	for _, f := range zr.File {
		if strings.HasPrefix(f.Name, "word/") {
			return DOCX, nil
		}
	}
	return Unknown, nil
}
