package docx

import (
	"os"
	"path/filepath"

	"github.com/tsawler/docextract/media"
)

// ImageResolver returns the bytes of the image referenced by a relationship
// ID. An empty result means no image is available; it is not an error.
type ImageResolver interface {
	ResolveImage(relID, format string) []byte
}

// FormatHinter is implemented by resolvers that can tell an image's format
// from where the image is stored.
type FormatHinter interface {
	FormatHint(relID string) (string, bool)
}

// PackageResolver reads media entries from the DOCX zip archive, following
// the main part's relationship map.
type PackageResolver struct {
	reader *Reader
}

// NewPackageResolver creates a resolver backed by an opened package.
func NewPackageResolver(r *Reader) *PackageResolver {
	return &PackageResolver{reader: r}
}

// ResolveImage implements ImageResolver. The format hint is not needed
// because the relationship target names the entry.
func (pr *PackageResolver) ResolveImage(relID, _ string) []byte {
	if pr.reader == nil {
		return nil
	}
	name, ok := pr.reader.MediaPath(relID)
	if !ok {
		return nil
	}
	data, err := pr.reader.ReadFile(name)
	if err != nil {
		return nil
	}
	return data
}

// FormatHint implements FormatHinter using the extension of the
// relationship target, e.g. "media/image1.jpeg" gives "jpg".
func (pr *PackageResolver) FormatHint(relID string) (string, bool) {
	if pr.reader == nil {
		return "", false
	}
	name, ok := pr.reader.MediaPath(relID)
	if !ok {
		return "", false
	}
	return media.FromName(name)
}

// DirResolver reads images from an extracted package layout on disk:
// <BaseDir>/word/media/image<relID>.<format>.
type DirResolver struct {
	BaseDir string
}

// NewDirResolver creates a resolver rooted at the directory containing the
// package file.
func NewDirResolver(packagePath string) *DirResolver {
	return &DirResolver{BaseDir: filepath.Dir(packagePath)}
}

// Path returns the file the resolver reads for relID and format.
func (dr *DirResolver) Path(relID, format string) string {
	return filepath.Join(dr.BaseDir, "word", "media", "image"+relID+"."+format)
}

// ResolveImage implements ImageResolver.
func (dr *DirResolver) ResolveImage(relID, format string) []byte {
	data, err := os.ReadFile(dr.Path(relID, format))
	if err != nil {
		return nil
	}
	return data
}
