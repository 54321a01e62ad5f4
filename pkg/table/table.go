// Package table locates HTML tables in raw markup and extracts their rows as
// cleaned cell text.
//
// Extraction is a best-effort scan over tag markers, not a DOM parse. It never
// fails: malformed or unclosed markup yields fewer tables, rows or cells.
//
//	tables := table.Extract(`<table><tr><td>a</td><td>b</td></tr></table>`)
//	// tables[0].Rows[0].Cells == []string{"a", "b"}
package table

// Table is one <table>...</table> region and the rows found inside it.
type Table struct {
	// Index is the 1-based position of the region among all closed table
	// regions in the document, including regions that yielded no rows.
	Index int   `json:"index" yaml:"index"`
	Rows  []Row `json:"rows" yaml:"rows"`
}

// Row is the ordered cell text of one <tr>...</tr> region.
type Row struct {
	// Header is true when every cell in the row came from a <th> element.
	Header bool     `json:"header" yaml:"header"`
	Cells  []string `json:"cells" yaml:"cells"`
}

// Len returns the number of cells in the row.
func (r Row) Len() int {
	return len(r.Cells)
}

// Cell returns the cell at the 1-based column position, or "" when the
// column is outside the row.
func (r Row) Cell(column int) string {
	if column < 1 || column > len(r.Cells) {
		return ""
	}
	return r.Cells[column-1]
}

// CountRows returns the total number of rows across tables.
func CountRows(tables []Table) int {
	n := 0
	for _, t := range tables {
		n += len(t.Rows)
	}
	return n
}

// Select keeps only the tables whose Index is listed, preserving document
// order. An empty list keeps every table.
func Select(tables []Table, indexes []int) []Table {
	if len(indexes) == 0 {
		return tables
	}
	want := make(map[int]bool, len(indexes))
	for _, i := range indexes {
		want[i] = true
	}
	var out []Table
	for _, t := range tables {
		if want[t.Index] {
			out = append(out, t)
		}
	}
	return out
}
