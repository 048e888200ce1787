package legacy

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
)

// Decode converts extractor output in the named character encoding to
// UTF-8. Names follow the WHATWG encoding labels ("windows-1252",
// "iso-8859-1", "shift_jis", ...). An empty name or "utf-8" returns the
// data unchanged.
func Decode(data []byte, charset string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(charset)) {
	case "", "utf-8", "utf8":
		return string(data), nil
	}

	enc, err := htmlindex.Get(charset)
	if err != nil {
		return "", fmt.Errorf("unknown encoding %q: %w", charset, err)
	}
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("decoding %s output: %w", charset, err)
	}
	return string(out), nil
}
