package table

// Extractor scans documents for tables. The zero value is not usable; create
// one with New. An Extractor holds no per-call state and is safe for
// concurrent use.
type Extractor struct {
	tracer         Tracer
	decodeEntities bool
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithTracer reports table, row and cell boundaries to t.
func WithTracer(t Tracer) Option {
	return func(e *Extractor) {
		if t != nil {
			e.tracer = t
		}
	}
}

// WithEntityDecoding unescapes HTML character references (&amp;, &nbsp;, ...)
// in cell text after cleaning.
func WithEntityDecoding(enabled bool) Option {
	return func(e *Extractor) {
		e.decodeEntities = enabled
	}
}

// New creates an Extractor.
func New(opts ...Option) *Extractor {
	e := &Extractor{tracer: nopTracer{}}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract is shorthand for New(opts...).Extract(doc).
func Extract(doc string, opts ...Option) []Table {
	return New(opts...).Extract(doc)
}

// Extract returns the tables of doc that contain at least one row, in
// document order. A table region opened without a closing </table> ends the
// scan and is discarded.
func (e *Extractor) Extract(doc string) []Table {
	lower := asciiLower(doc)

	var tables []Table
	index := 0
	pos := 0
	for {
		region, status := nextRegion(lower, pos, markTableOpen, markTableClose)
		if status == regionNone {
			break
		}
		if status == regionUnclosed {
			e.tracer.Trace(Event{Kind: EventTableUnclosed, Offset: region.start, Table: index + 1})
			break
		}
		index++
		e.tracer.Trace(Event{Kind: EventTable, Offset: region.start, Table: index})

		rows := e.extractRows(doc[region.start:region.end], lower[region.start:region.end], region.start, index)
		if len(rows) > 0 {
			tables = append(tables, Table{Index: index, Rows: rows})
		} else {
			e.tracer.Trace(Event{Kind: EventTableEmpty, Offset: region.start, Table: index})
		}
		pos = region.end
	}
	return tables
}

func (e *Extractor) extractRows(src, lower string, base, tableIndex int) []Row {
	var rows []Row
	pos := 0
	for {
		region, status := nextRegion(lower, pos, markRowOpen, markRowClose)
		if status == regionNone {
			break
		}
		if status == regionUnclosed {
			e.tracer.Trace(Event{Kind: EventRowUnclosed, Offset: base + region.start, Table: tableIndex, Row: len(rows) + 1})
			break
		}

		row := e.extractCells(src[region.start:region.end], lower[region.start:region.end], base+region.start, tableIndex, len(rows)+1)
		if row.Len() > 0 {
			rows = append(rows, row)
			e.tracer.Trace(Event{Kind: EventRow, Offset: base + region.start, Table: tableIndex, Row: len(rows), Column: row.Len()})
		} else {
			e.tracer.Trace(Event{Kind: EventRowEmpty, Offset: base + region.start, Table: tableIndex})
		}
		pos = region.end
	}
	return rows
}

func (e *Extractor) extractCells(src, lower string, base, tableIndex, rowIndex int) Row {
	row := Row{Header: true}
	pos := 0
	for {
		start, kind, ok := nextCellStart(lower, pos)
		if !ok {
			break
		}
		closeMarker := kind.closeMarker()
		closeAt := indexFrom(lower, start+len(markDataOpen), closeMarker)
		if closeAt < 0 {
			e.tracer.Trace(Event{Kind: EventCellUnclosed, Offset: base + start, Table: tableIndex, Row: rowIndex, Column: len(row.Cells) + 1, Tag: kind.tag()})
			break
		}
		pos = closeAt + len(closeMarker)

		gt := indexFrom(lower[:closeAt], start, ">")
		if gt < 0 {
			e.tracer.Trace(Event{Kind: EventCellMalformed, Offset: base + start, Table: tableIndex, Row: rowIndex, Tag: kind.tag()})
			continue
		}

		text := Clean(src[gt+1 : closeAt])
		if e.decodeEntities {
			text = DecodeEntities(text)
		}
		row.Cells = append(row.Cells, text)
		if kind != cellHead {
			row.Header = false
		}
		e.tracer.Trace(Event{Kind: EventCell, Offset: base + start, Table: tableIndex, Row: rowIndex, Column: len(row.Cells), Tag: kind.tag(), Text: text})
	}
	if len(row.Cells) == 0 {
		row.Header = false
	}
	return row
}
