package docx

import (
	"strings"

	"github.com/tsawler/docextract/model"
)

// table emits a table for a w:tbl node. Tables are emitted even when they
// have no rows.
func (s *parseState) table(n *Node) {
	s.log.Debug().Msg("parsing table")

	t := model.NewTable()
	for _, tr := range n.ChildrenNamed("tr") {
		t.AddRow(s.tableRow(tr))
	}
	s.add(t)

	s.log.Debug().Int("rows", t.RowCount()).Int("cols", t.ColCount()).Msg("table added")
}

// tableRow collects the cells of a w:tr, including cells wrapped in
// row-level content controls.
func (s *parseState) tableRow(tr *Node) model.TableRow {
	var row model.TableRow
	for _, tc := range rowCells(tr) {
		text := cellText(tc)
		row.AddCell(model.NewTableCell(text))
		s.log.Trace().Str("text", text).Msg("table cell")
	}
	s.log.Trace().Int("cells", len(row.Cells())).Msg("table row")
	return row
}

func rowCells(tr *Node) []*Node {
	var cells []*Node
	for _, c := range tr.Children {
		if c.IsText {
			continue
		}
		switch c.Local() {
		case "tc":
			cells = append(cells, c)
		case "sdt":
			if content := c.Child("sdtContent"); content != nil {
				cells = append(cells, content.ChildrenNamed("tc")...)
			}
		}
	}
	return cells
}

// cellText joins the text of every paragraph child of a w:tc with "\n".
func cellText(tc *Node) string {
	paras := tc.ChildrenNamed("p")
	parts := make([]string, 0, len(paras))
	for _, p := range paras {
		parts = append(parts, p.TextContent())
	}
	return strings.Join(parts, "\n")
}
