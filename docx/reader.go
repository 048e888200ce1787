// Package docx extracts structure from Office Open XML (.docx) packages.
//
// A [Reader] loads the whole package into memory, indexes the zip entries
// and the main part's relationships, and parses the main document part into
// a generic [Node] tree. A [Parser] then walks the body of that tree and
// emits model elements in document order.
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/tsawler/docextract/model"
)

const defaultMainPart = "word/document.xml"

// Reader provides access to DOCX package content.
type Reader struct {
	filename  string
	zipReader *zip.Reader
	files     map[string]*zip.File
	mainPart  string
	rels      map[string]relationshipXML
	coreProps *corePropertiesXML
}

// Open reads a DOCX file into memory and indexes it.
func Open(filename string) (*Reader, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", filename, model.ErrNotFound)
		}
		return nil, fmt.Errorf("reading file: %w", err)
	}
	return NewReader(data, filename)
}

// NewReader indexes an in-memory DOCX package. filename is informational and
// used by resolvers that need the package location.
func NewReader(data []byte, filename string) (*Reader, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %v: %w", err, model.ErrMalformedInput)
	}

	r := &Reader{
		filename:  filename,
		zipReader: zr,
		files:     make(map[string]*zip.File, len(zr.File)),
		mainPart:  defaultMainPart,
		rels:      make(map[string]relationshipXML),
	}
	for _, f := range zr.File {
		r.files[f.Name] = f
	}

	// The package relationships may point the main part somewhere else.
	r.resolveMainPart()

	if _, ok := r.files[r.mainPart]; !ok {
		return nil, fmt.Errorf("missing required file %s: %w", r.mainPart, model.ErrMalformedInput)
	}

	// Part relationships are optional; without them no image resolves.
	r.parseRelationships()
	r.parseCoreProperties()

	return r, nil
}

// Filename returns the path the package was opened from.
func (r *Reader) Filename() string {
	return r.filename
}

// MainPart returns the zip entry name of the main document part.
func (r *Reader) MainPart() string {
	return r.mainPart
}

// ReadFile returns the content of a zip entry.
func (r *Reader) ReadFile(name string) ([]byte, error) {
	f, ok := r.files[name]
	if !ok {
		return nil, fmt.Errorf("file not found: %s", name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// HasFile reports whether the package contains the named entry.
func (r *Reader) HasFile(name string) bool {
	_, ok := r.files[name]
	return ok
}

// Title returns the Dublin Core title, or "" when absent.
func (r *Reader) Title() string {
	if r.coreProps == nil {
		return ""
	}
	return strings.TrimSpace(r.coreProps.Title)
}

// Root parses the main document part and returns its root element.
func (r *Reader) Root() (*Node, error) {
	f := r.files[r.mainPart]
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("opening %s: %v: %w", r.mainPart, err, model.ErrMalformedInput)
	}
	defer rc.Close()

	root, err := ParseXML(rc)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %v: %w", r.mainPart, err, model.ErrMalformedInput)
	}
	return root, nil
}

// MediaPath resolves a relationship ID of the main part to a zip entry name.
// It reports false for unknown IDs and external targets.
func (r *Reader) MediaPath(relID string) (string, bool) {
	rel, ok := r.rels[relID]
	if !ok || rel.TargetMode == "External" || rel.Target == "" {
		return "", false
	}
	if rel.Type != "" && !isRelType(rel.Type, relTypeImage) {
		return "", false
	}
	return resolvePartName(r.mainPart, rel.Target), true
}

// resolveMainPart follows the officeDocument relationship in _rels/.rels.
func (r *Reader) resolveMainPart() {
	data, err := r.ReadFile("_rels/.rels")
	if err != nil {
		return
	}
	var rels relationshipsXML
	if err := xml.Unmarshal(data, &rels); err != nil {
		return
	}
	for _, rel := range rels.Relationships {
		if isRelType(rel.Type, relTypeOfficeDocument) && rel.Target != "" {
			r.mainPart = resolvePartName("", rel.Target)
			return
		}
	}
}

// parseRelationships reads the main part's relationships file.
func (r *Reader) parseRelationships() {
	dir, file := path.Split(r.mainPart)
	data, err := r.ReadFile(dir + "_rels/" + file + ".rels")
	if err != nil {
		return
	}
	var rels relationshipsXML
	if err := xml.Unmarshal(data, &rels); err != nil {
		return
	}
	for _, rel := range rels.Relationships {
		r.rels[rel.ID] = rel
	}
}

// parseCoreProperties parses Dublin Core metadata.
func (r *Reader) parseCoreProperties() {
	data, err := r.ReadFile("docProps/core.xml")
	if err != nil {
		return
	}
	props := &corePropertiesXML{}
	if err := xml.Unmarshal(data, props); err == nil {
		r.coreProps = props
	}
}

// resolvePartName resolves a relationship target relative to the part that
// owns the relationship. Absolute targets start at the package root.
func resolvePartName(source, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(path.Clean(target), "/")
	}
	return strings.TrimPrefix(path.Clean(path.Join(path.Dir(source), target)), "/")
}

// isRelType compares relationship types by their final segment so that both
// transitional and strict namespaces match.
func isRelType(got, want string) bool {
	return got == want || path.Base(got) == path.Base(want)
}
