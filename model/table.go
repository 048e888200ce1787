package model

import "strings"

// TableCell holds the text of one cell. Multiple paragraphs inside the
// source cell are joined with "\n".
type TableCell struct {
	text string
}

// NewTableCell creates a cell.
func NewTableCell(text string) TableCell {
	return TableCell{text: text}
}

// Text returns the cell text.
func (c TableCell) Text() string { return c.text }

// SetText replaces the cell text.
func (c *TableCell) SetText(text string) { c.text = text }

// TableRow is an ordered list of cells; cell order is column order.
type TableRow struct {
	cells []TableCell
}

// NewTableRow creates a row from cell texts.
func NewTableRow(texts ...string) TableRow {
	var r TableRow
	for _, t := range texts {
		r.AddCell(NewTableCell(t))
	}
	return r
}

// AddCell appends a cell.
func (r *TableRow) AddCell(c TableCell) {
	r.cells = append(r.cells, c)
}

// Cells returns the cells in column order.
func (r TableRow) Cells() []TableCell {
	return r.cells
}

// Table represents a table with rows in source order. A table may have
// zero rows.
type Table struct {
	rows []TableRow
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{}
}

func (t *Table) Type() ElementType { return ElementTypeTable }
func (t *Table) element()          {}

// AddRow appends a row.
func (t *Table) AddRow(r TableRow) {
	t.rows = append(t.rows, r)
}

// Rows returns the rows in source order.
func (t *Table) Rows() []TableRow {
	return t.rows
}

// RowCount returns the number of rows
func (t *Table) RowCount() int {
	return len(t.rows)
}

// ColCount returns the widest row's cell count.
func (t *Table) ColCount() int {
	n := 0
	for _, r := range t.rows {
		if len(r.cells) > n {
			n = len(r.cells)
		}
	}
	return n
}

// GetCell returns the cell at the given row and column (0-indexed)
func (t *Table) GetCell(row, col int) *TableCell {
	if row < 0 || row >= len(t.rows) {
		return nil
	}
	if col < 0 || col >= len(t.rows[row].cells) {
		return nil
	}
	return &t.rows[row].cells[col]
}

// GetText returns the table as tab-separated lines.
func (t *Table) GetText() string {
	var sb strings.Builder
	for _, row := range t.rows {
		for j, cell := range row.cells {
			sb.WriteString(cell.text)
			if j < len(row.cells)-1 {
				sb.WriteString("\t")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// ToCSV converts the table to CSV format
func (t *Table) ToCSV() string {
	var sb strings.Builder
	for _, row := range t.rows {
		for j, cell := range row.cells {
			text := cell.text
			if strings.ContainsAny(text, ",\"\n") {
				text = "\"" + strings.ReplaceAll(text, "\"", "\"\"") + "\""
			}
			sb.WriteString(text)
			if j < len(row.cells)-1 {
				sb.WriteString(",")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
