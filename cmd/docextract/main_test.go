package main

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTestDOCX(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "in.docx")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatal(err)
	}
	w.Write([]byte(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
		`<w:p><w:pPr><w:pStyle w:val="Heading 1"/></w:pPr><w:r><w:t>Title</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>Hello</w:t></w:r></w:p>` +
		`<w:tbl><w:tr><w:tc><w:p><w:r><w:t>a</w:t></w:r></w:p></w:tc><w:tc><w:p><w:r><w:t>b</w:t></w:r></w:p></w:tc></w:tr></w:tbl>` +
		`</w:body></w:document>`))
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestDump(t *testing.T) {
	in := writeTestDOCX(t, t.TempDir())

	stdout, _, err := run(t, "dump", in)
	if err != nil {
		t.Fatalf("dump error = %v", err)
	}

	var out outline
	if err := json.Unmarshal([]byte(stdout), &out); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, stdout)
	}
	if out.Title != "Title" || out.Format != "DOCX" {
		t.Errorf("title %q format %q", out.Title, out.Format)
	}
	if len(out.Elements) != 3 {
		t.Fatalf("got %d elements, want 3", len(out.Elements))
	}
	if e := out.Elements[0]; e.Type != "Heading" || e.Level != 1 || e.Text != "Title" {
		t.Errorf("elements[0] = %+v", e)
	}
	if e := out.Elements[1]; e.Type != "Paragraph" || len(e.Runs) != 1 || e.Runs[0] != "Hello" {
		t.Errorf("elements[1] = %+v", e)
	}
	if e := out.Elements[2]; e.Type != "Table" || len(e.Rows) != 1 || e.Rows[0][1] != "b" {
		t.Errorf("elements[2] = %+v", e)
	}
}

func TestConvert(t *testing.T) {
	dir := t.TempDir()
	in := writeTestDOCX(t, dir)

	tests := []struct {
		name string
		args []string
		out  string
		want string
	}{
		{"by extension", nil, "out.md", "# Title"},
		{"explicit converter", []string{"--to", "text"}, "out.dat", "Title\n\n# Title\n\nHello \n\n"},
		{"html", nil, "out.html", "<h1>Title</h1>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := filepath.Join(dir, tt.out)
			args := append([]string{"convert", in, "-o", out}, tt.args...)
			stdout, _, err := run(t, args...)
			if err != nil {
				t.Fatalf("convert error = %v", err)
			}
			if !strings.Contains(stdout, "Wrote "+out) {
				t.Errorf("stdout = %q", stdout)
			}
			data, err := os.ReadFile(out)
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(string(data), tt.want) {
				t.Errorf("output missing %q:\n%s", tt.want, data)
			}
		})
	}
}

func TestConvert_Errors(t *testing.T) {
	dir := t.TempDir()
	in := writeTestDOCX(t, dir)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown converter", []string{"convert", in, "-o", filepath.Join(dir, "x"), "--to", "rtf"}, "unknown converter"},
		{"unknown extension", []string{"convert", in, "-o", filepath.Join(dir, "x.rtf")}, "no converter"},
		{"missing input", []string{"convert", filepath.Join(dir, "none.docx"), "-o", filepath.Join(dir, "x.txt")}, "not found"},
		{"missing output flag", []string{"convert", in}, "output"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := run(t, tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestConfigFlag(t *testing.T) {
	dir := t.TempDir()
	txt := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(txt, []byte("Notes\nline one\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, _, err := run(t, "dump", txt); err == nil {
		t.Error("plain text should be unsupported by default")
	}

	cfg := filepath.Join(dir, "cfg.yaml")
	if err := os.WriteFile(cfg, []byte("allow_plain_text: true\n"), 0644); err != nil {
		t.Fatal(err)
	}
	stdout, _, err := run(t, "--config", cfg, "dump", txt)
	if err != nil {
		t.Fatalf("dump error = %v", err)
	}
	if !strings.Contains(stdout, `"title": "Notes"`) {
		t.Errorf("stdout = %s", stdout)
	}

	bad := filepath.Join(dir, "bad.yaml")
	os.WriteFile(bad, []byte("image_source: ftp\n"), 0644)
	if _, _, err := run(t, "--config", bad, "formats"); err == nil {
		t.Error("expected config validation error")
	}
}

func TestVerboseLogging(t *testing.T) {
	in := writeTestDOCX(t, t.TempDir())

	_, stderr, err := run(t, "--verbose", "dump", in)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stderr, "heading added") {
		t.Errorf("debug log missing from stderr:\n%s", stderr)
	}

	_, stderr, err = run(t, "dump", in)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(stderr, "heading added") {
		t.Error("debug messages logged without --verbose")
	}
}

func TestFormats(t *testing.T) {
	stdout, _, err := run(t, "formats")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"DOCX", ".doc", "markdown", "pdf", "OCR:"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("formats output missing %q:\n%s", want, stdout)
		}
	}
}
