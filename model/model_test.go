package model

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// ============================================================================
// Heading Tests
// ============================================================================

func TestNewHeadingClampsLevel(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{-100, 1}, {-1, 1}, {0, 1}, {1, 1}, {2, 2}, {3, 3},
		{4, 4}, {5, 5}, {6, 6}, {7, 6}, {9, 6}, {1 << 30, 6},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("level_%d", tt.in), func(t *testing.T) {
			h := NewHeading("Title", tt.in)
			if h.Level() != tt.want {
				t.Errorf("Level() = %d, want %d", h.Level(), tt.want)
			}
			if h.GetText() != "Title" {
				t.Errorf("GetText() = %q, want %q", h.GetText(), "Title")
			}
		})
	}
}

func TestClampHeadingLevelIdempotent(t *testing.T) {
	for in := -20; in <= 20; in++ {
		once := ClampHeadingLevel(in)
		if once < MinHeadingLevel || once > MaxHeadingLevel {
			t.Fatalf("ClampHeadingLevel(%d) = %d, out of range", in, once)
		}
		if twice := ClampHeadingLevel(once); twice != once {
			t.Errorf("ClampHeadingLevel not idempotent for %d: %d then %d", in, once, twice)
		}
	}
}

func TestHeadingZeroValueLevel(t *testing.T) {
	var h Heading
	if got := h.Level(); got != MinHeadingLevel {
		t.Errorf("zero Heading Level() = %d, want %d", got, MinHeadingLevel)
	}
	if got := new(Heading).Level(); got != MinHeadingLevel {
		t.Errorf("new(Heading).Level() = %d, want %d", got, MinHeadingLevel)
	}
}

// ============================================================================
// Element Tests
// ============================================================================

func TestElementTypes(t *testing.T) {
	tests := []struct {
		name string
		elem Element
		want ElementType
	}{
		{"text", NewText("x"), ElementTypeText},
		{"paragraph", NewParagraph("x"), ElementTypeParagraph},
		{"heading", NewHeading("x", 2), ElementTypeHeading},
		{"table", NewTable(), ElementTypeTable},
		{"image", NewImage(nil, "png", 0, 0), ElementTypeImage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.elem.Type(); got != tt.want {
				t.Errorf("Type() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestElementTypeString(t *testing.T) {
	tests := map[ElementType]string{
		ElementTypeText:      "Text",
		ElementTypeParagraph: "Paragraph",
		ElementTypeHeading:   "Heading",
		ElementTypeTable:     "Table",
		ElementTypeImage:     "Image",
		ElementTypeList:      "List",
		ElementTypeUnknown:   "Unknown",
		ElementType(99):      "Unknown",
	}
	for et, want := range tests {
		if got := et.String(); got != want {
			t.Errorf("ElementType(%d).String() = %q, want %q", int(et), got, want)
		}
	}
}

func TestParagraphRunsKeepOrder(t *testing.T) {
	p := NewParagraph()
	if !p.IsEmpty() {
		t.Error("new paragraph should be empty")
	}
	p.AddText("Hello ")
	p.AddText("brave ")
	p.AddText("world")

	runs := p.Texts()
	if len(runs) != 3 {
		t.Fatalf("len(Texts()) = %d, want 3", len(runs))
	}
	if runs[1].GetText() != "brave " {
		t.Errorf("runs[1] = %q, want %q", runs[1].GetText(), "brave ")
	}
	if p.GetText() != "Hello brave world" {
		t.Errorf("GetText() = %q", p.GetText())
	}
}

func TestImageAccessors(t *testing.T) {
	data := []byte{0x89, 'P', 'N', 'G'}
	img := NewImage(data, "jpg", 100, 50)
	if img.Format() != "jpg" || img.Width() != 100 || img.Height() != 50 {
		t.Errorf("got %s %dx%d, want jpg 100x50", img.Format(), img.Width(), img.Height())
	}
	if len(img.Data()) != 4 {
		t.Errorf("len(Data()) = %d, want 4", len(img.Data()))
	}
}

// ============================================================================
// Table Tests
// ============================================================================

func TestTableStructure(t *testing.T) {
	table := NewTable()
	if table.RowCount() != 0 || table.ColCount() != 0 {
		t.Fatal("new table should have no rows")
	}

	for r := 0; r < 2; r++ {
		var row TableRow
		for c := 0; c < 3; c++ {
			row.AddCell(NewTableCell(fmt.Sprintf("Cell %d,%d", r, c)))
		}
		table.AddRow(row)
	}

	if table.RowCount() != 2 || table.ColCount() != 3 {
		t.Fatalf("got %dx%d, want 2x3", table.RowCount(), table.ColCount())
	}
	for r, row := range table.Rows() {
		for c, cell := range row.Cells() {
			want := fmt.Sprintf("Cell %d,%d", r, c)
			if cell.Text() != want {
				t.Errorf("cell[%d][%d] = %q, want %q", r, c, cell.Text(), want)
			}
		}
	}

	if table.GetCell(5, 0) != nil || table.GetCell(0, -1) != nil {
		t.Error("GetCell out of range should return nil")
	}
	table.GetCell(1, 2).SetText("changed")
	if table.Rows()[1].Cells()[2].Text() != "changed" {
		t.Error("SetText through GetCell did not update the table")
	}
}

func TestTableToCSV(t *testing.T) {
	table := NewTable()
	table.AddRow(NewTableRow("a", "b,c"))
	table.AddRow(NewTableRow(`say "hi"`, "line1\nline2"))

	want := "a,\"b,c\"\n\"say \"\"hi\"\"\",\"line1\nline2\"\n"
	if got := table.ToCSV(); got != want {
		t.Errorf("ToCSV() = %q, want %q", got, want)
	}
	if got := table.GetText(); !strings.HasPrefix(got, "a\tb,c\n") {
		t.Errorf("GetText() = %q", got)
	}
}

// ============================================================================
// Document Tests
// ============================================================================

func TestDocumentAddAndReset(t *testing.T) {
	doc := NewDocument()
	doc.Title = "Report"
	doc.Add(NewHeading("Report", 1))
	doc.Add(NewParagraph("Body"))
	doc.Add(nil)
	doc.Add(NewTable())
	doc.Add(NewImage([]byte{1}, "png", 1, 1))

	if doc.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", doc.Len())
	}
	if len(doc.Headings()) != 1 || len(doc.Paragraphs()) != 1 ||
		len(doc.Tables()) != 1 || len(doc.Images()) != 1 {
		t.Error("typed accessors returned wrong counts")
	}
	if got := doc.ExtractText(); got != "Report\n\nBody" {
		t.Errorf("ExtractText() = %q", got)
	}

	doc.Reset()
	if doc.Title != "" || doc.Len() != 0 {
		t.Errorf("after Reset: title=%q len=%d", doc.Title, doc.Len())
	}
}

func TestWarningWrapsCause(t *testing.T) {
	cause := errors.New("boom")
	w := Warning{Kind: WarnImageUnresolved, Node: "drawing", Err: cause}
	if !errors.Is(w, cause) {
		t.Error("Warning should unwrap to its cause")
	}
	if got := w.Error(); got != "image-unresolved: drawing: boom" {
		t.Errorf("Error() = %q", got)
	}
	if got := (Warning{Kind: WarnImageMissingID, Node: "drawing"}).Error(); got != "image-missing-id: drawing" {
		t.Errorf("Error() = %q", got)
	}
}
