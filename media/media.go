// Package media inspects embedded image bytes without decoding pixels.
//
// Only image headers are read (image.DecodeConfig), so sniffing a large
// picture is cheap. Formats registered: PNG, JPEG, GIF, BMP, TIFF and WebP.
// EMF and WMF metafiles are recognised by signature only.
package media

import (
	"bytes"
	"image"
	_ "image/gif"  // register GIF
	_ "image/jpeg" // register JPEG
	_ "image/png"  // register PNG
	"path"
	"strings"

	_ "golang.org/x/image/bmp"  // register BMP
	_ "golang.org/x/image/tiff" // register TIFF
	_ "golang.org/x/image/webp" // register WebP
)

// EMUPerPixel is the number of English Metric Units per pixel at 96 DPI.
const EMUPerPixel = 9525

// EMUToPixels converts English Metric Units to pixels, truncating toward zero.
func EMUToPixels(emu int64) int {
	return int(emu / EMUPerPixel)
}

// Info describes an image header.
type Info struct {
	Format string // "png", "jpg", "gif", "bmp", "tiff", "webp", "emf", "wmf"
	Width  int    // pixels, 0 if unknown
	Height int    // pixels, 0 if unknown
}

// Sniff identifies the image format and, where the header carries it, the
// pixel size. It reports false when the bytes are not a known image.
func Sniff(data []byte) (Info, bool) {
	if len(data) == 0 {
		return Info{}, false
	}

	cfg, name, err := image.DecodeConfig(bytes.NewReader(data))
	if err == nil {
		return Info{Format: Normalize(name), Width: cfg.Width, Height: cfg.Height}, true
	}

	if f := metafileFormat(data); f != "" {
		return Info{Format: f}, true
	}
	return Info{}, false
}

// metafileFormat detects Windows metafiles, which have no Go decoder.
func metafileFormat(data []byte) string {
	if len(data) < 4 {
		return ""
	}
	// WMF placeable header
	if data[0] == 0xD7 && data[1] == 0xCD && data[2] == 0xC6 && data[3] == 0x9A {
		return "wmf"
	}
	// EMF: EMR_HEADER record type 1, " EMF" signature at offset 40
	if len(data) >= 44 && data[0] == 0x01 && data[1] == 0x00 && data[2] == 0x00 && data[3] == 0x00 &&
		string(data[40:44]) == " EMF" {
		return "emf"
	}
	return ""
}

// Normalize maps format names and extensions to the tags used in the
// element model ("jpeg" becomes "jpg", "tif" becomes "tiff").
func Normalize(format string) string {
	f := strings.ToLower(strings.TrimPrefix(format, "."))
	switch f {
	case "jpeg", "jpe":
		return "jpg"
	case "tif":
		return "tiff"
	default:
		return f
	}
}

// FromName returns the format tag for a file name's extension. It reports
// false when the extension is not a known image format.
func FromName(name string) (string, bool) {
	ext := path.Ext(name)
	if ext == "" {
		return "", false
	}
	f := Normalize(ext)
	if MIMEType(f) == "application/octet-stream" {
		return "", false
	}
	return f, true
}

// MIMEType returns the MIME type for a format tag.
func MIMEType(format string) string {
	switch Normalize(format) {
	case "png":
		return "image/png"
	case "jpg":
		return "image/jpeg"
	case "gif":
		return "image/gif"
	case "bmp":
		return "image/bmp"
	case "tiff":
		return "image/tiff"
	case "webp":
		return "image/webp"
	case "emf":
		return "image/emf"
	case "wmf":
		return "image/wmf"
	default:
		return "application/octet-stream"
	}
}
