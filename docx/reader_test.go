package docx

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/tsawler/docextract/model"
)

const testNamespaces = `xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" ` +
	`xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" ` +
	`xmlns:wp="http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing" ` +
	`xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" ` +
	`xmlns:pic="http://schemas.openxmlformats.org/drawingml/2006/picture"`

// testPackage describes the parts of a DOCX fixture.
type testPackage struct {
	body      string            // inner XML of w:body
	rels      string            // <Relationship> elements for word/_rels/document.xml.rels
	coreTitle string            // docProps/core.xml title, omitted when empty
	extra     map[string][]byte // additional zip entries
}

// createTestDOCX writes a DOCX file built from pkg and returns its path.
func createTestDOCX(t *testing.T, pkg testPackage) string {
	t.Helper()

	tmpDir := t.TempDir()
	docxPath := filepath.Join(tmpDir, "test.docx")

	f, err := os.Create(docxPath)
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	write := func(name, content string) {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("zip create %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("zip write %s: %v", name, err)
		}
	}

	write("[Content_Types].xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`)

	write("_rels/.rels", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`)

	write("word/document.xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document `+testNamespaces+`>
  <w:body>`+pkg.body+`</w:body>
</w:document>`)

	if pkg.rels != "" {
		write("word/_rels/document.xml.rels", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`+pkg.rels+`</Relationships>`)
	}

	if pkg.coreTitle != "" {
		write("docProps/core.xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" xmlns:dc="http://purl.org/dc/elements/1.1/">
  <dc:title>`+pkg.coreTitle+`</dc:title>
</cp:coreProperties>`)
	}

	for name, data := range pkg.extra {
		write(name, string(data))
	}

	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	return docxPath
}

func openTestDOCX(t *testing.T, pkg testPackage) *Reader {
	t.Helper()
	r, err := Open(createTestDOCX(t, pkg))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	return r
}

func TestOpen(t *testing.T) {
	r := openTestDOCX(t, testPackage{body: `<w:p><w:r><w:t>Hello World</w:t></w:r></w:p>`})

	if r.MainPart() != "word/document.xml" {
		t.Errorf("MainPart() = %q", r.MainPart())
	}
	if !r.HasFile("[Content_Types].xml") {
		t.Error("HasFile([Content_Types].xml) = false")
	}
	if filepath.Base(r.Filename()) != "test.docx" {
		t.Errorf("Filename() = %q", r.Filename())
	}
}

func TestOpen_NotFound(t *testing.T) {
	_, err := Open("/nonexistent/file.docx")
	if !errors.Is(err, model.ErrNotFound) {
		t.Errorf("Open() error = %v, want ErrNotFound", err)
	}
}

func TestOpen_InvalidZip(t *testing.T) {
	tmpDir := t.TempDir()
	invalidPath := filepath.Join(tmpDir, "invalid.docx")
	if err := os.WriteFile(invalidPath, []byte("not a zip file"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Open(invalidPath)
	if !errors.Is(err, model.ErrMalformedInput) {
		t.Errorf("Open() error = %v, want ErrMalformedInput", err)
	}
}

func TestOpen_MissingDocumentXML(t *testing.T) {
	tmpDir := t.TempDir()
	docxPath := filepath.Join(tmpDir, "missing.docx")

	f, err := os.Create(docxPath)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)
	w, _ := zw.Create("[Content_Types].xml")
	w.Write([]byte(`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"></Types>`))
	zw.Close()
	f.Close()

	_, err = Open(docxPath)
	if !errors.Is(err, model.ErrMalformedInput) {
		t.Errorf("Open() error = %v, want ErrMalformedInput", err)
	}
}

func TestReader_RootMalformedXML(t *testing.T) {
	r := openTestDOCX(t, testPackage{body: `<w:p><w:r><w:t>unclosed</w:r></w:p>`})

	if _, err := r.Root(); !errors.Is(err, model.ErrMalformedInput) {
		t.Errorf("Root() error = %v, want ErrMalformedInput", err)
	}
	if _, _, err := r.Document(Options{}); !errors.Is(err, model.ErrMalformedInput) {
		t.Errorf("Document() error = %v, want ErrMalformedInput", err)
	}
}

func TestReader_Title(t *testing.T) {
	tests := []struct {
		name string
		pkg  testPackage
		want string
	}{
		{
			name: "core properties title wins",
			pkg: testPackage{
				coreTitle: "Annual Report",
				body:      `<w:p><w:pPr><w:pStyle w:val="Heading 1"/></w:pPr><w:r><w:t>Overview</w:t></w:r></w:p>`,
			},
			want: "Annual Report",
		},
		{
			name: "first heading",
			pkg: testPackage{body: `<w:p><w:r><w:t>intro</w:t></w:r></w:p>
<w:p><w:pPr><w:pStyle w:val="Heading 1"/></w:pPr><w:r><w:t>Overview</w:t></w:r></w:p>
<w:p><w:pPr><w:pStyle w:val="Heading 2"/></w:pPr><w:r><w:t>Details</w:t></w:r></w:p>`},
			want: "Overview",
		},
		{
			name: "no title",
			pkg:  testPackage{body: `<w:p><w:r><w:t>plain</w:t></w:r></w:p>`},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, _, err := openTestDOCX(t, tt.pkg).Document(Options{})
			if err != nil {
				t.Fatalf("Document() error = %v", err)
			}
			if doc.Title != tt.want {
				t.Errorf("Title = %q, want %q", doc.Title, tt.want)
			}
		})
	}
}

func TestReader_MediaPath(t *testing.T) {
	r := openTestDOCX(t, testPackage{
		body: `<w:p/>`,
		rels: `<Relationship Id="rId4" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="media/image1.png"/>
<Relationship Id="rId5" Type="http://purl.oclc.org/ooxml/officeDocument/relationships/image" Target="/word/media/image2.jpeg"/>
<Relationship Id="rId6" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink" Target="https://example.com" TargetMode="External"/>
<Relationship Id="rId7" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>`,
	})

	tests := []struct {
		id     string
		want   string
		wantOK bool
	}{
		{"rId4", "word/media/image1.png", true},
		{"rId5", "word/media/image2.jpeg", true},
		{"rId6", "", false},
		{"rId7", "", false},
		{"rId99", "", false},
	}
	for _, tt := range tests {
		got, ok := r.MediaPath(tt.id)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("MediaPath(%q) = %q, %v; want %q, %v", tt.id, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestResolvePartName(t *testing.T) {
	tests := []struct {
		source, target, want string
	}{
		{"", "word/document.xml", "word/document.xml"},
		{"", "/word/document2.xml", "word/document2.xml"},
		{"word/document.xml", "media/image1.png", "word/media/image1.png"},
		{"word/document.xml", "../media/image1.png", "media/image1.png"},
		{"word/document.xml", "/word/media/x.gif", "word/media/x.gif"},
	}
	for _, tt := range tests {
		if got := resolvePartName(tt.source, tt.target); got != tt.want {
			t.Errorf("resolvePartName(%q, %q) = %q, want %q", tt.source, tt.target, got, tt.want)
		}
	}
}
