package delimited

import "github.com/jmylchreest/tablecsv/pkg/table"

// Project applies header suppression and field selection to tables without
// rendering them, for structured outputs. Quoting options are ignored.
// Tables left without rows are dropped.
func Project(tables []table.Table, cfg Config) []table.Table {
	out := make([]table.Table, 0, len(tables))
	for _, t := range tables {
		rows := t.Rows
		if cfg.NoHeader && len(rows) > 0 {
			rows = rows[1:]
		}
		if len(rows) == 0 {
			continue
		}

		projected := table.Table{Index: t.Index, Rows: make([]table.Row, 0, len(rows))}
		for _, r := range rows {
			projected.Rows = append(projected.Rows, projectRow(r, cfg.ShowFields))
		}
		out = append(out, projected)
	}
	return out
}

func projectRow(r table.Row, fields []int) table.Row {
	if len(fields) == 0 {
		return table.Row{Header: r.Header, Cells: append([]string(nil), r.Cells...)}
	}
	cells := make([]string, len(fields))
	for i, col := range fields {
		cells[i] = r.Cell(col)
	}
	return table.Row{Header: r.Header, Cells: cells}
}
