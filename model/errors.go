package model

import (
	"errors"
	"fmt"
)

// Load failures. Loaders wrap these with context; match with errors.Is.
var (
	ErrNotFound          = errors.New("docextract: not found")
	ErrUnsupportedFormat = errors.New("docextract: unsupported format")
	ErrMalformedInput    = errors.New("docextract: malformed input")
	ErrExternalTool      = errors.New("docextract: external tool failed")
)

// WarningKind classifies a partial-extraction problem.
type WarningKind int

const (
	WarnImageMissingID WarningKind = iota + 1
	WarnImageUnresolved
	WarnHeadingLevel
)

func (k WarningKind) String() string {
	switch k {
	case WarnImageMissingID:
		return "image-missing-id"
	case WarnImageUnresolved:
		return "image-unresolved"
	case WarnHeadingLevel:
		return "heading-level"
	default:
		return "unknown"
	}
}

// Warning records a node that was skipped or only partly extracted.
// Warnings never abort a load.
type Warning struct {
	Kind WarningKind
	Node string // local name of the XML node, e.g. "drawing"
	Err  error
}

func (w Warning) Error() string {
	if w.Err == nil {
		return fmt.Sprintf("%s: %s", w.Kind, w.Node)
	}
	return fmt.Sprintf("%s: %s: %v", w.Kind, w.Node, w.Err)
}

func (w Warning) Unwrap() error { return w.Err }
