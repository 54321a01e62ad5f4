package table

// EventKind identifies a boundary reported to a Tracer.
type EventKind string

const (
	EventTable         EventKind = "table"
	EventTableUnclosed EventKind = "table_unclosed"
	EventTableEmpty    EventKind = "table_empty"
	EventRow           EventKind = "row"
	EventRowUnclosed   EventKind = "row_unclosed"
	EventRowEmpty      EventKind = "row_empty"
	EventCell          EventKind = "cell"
	EventCellMalformed EventKind = "cell_malformed"
	EventCellUnclosed  EventKind = "cell_unclosed"
)

// Event describes one region or cell boundary found while scanning.
// Offset is the byte offset of the opening marker in the document.
// Table, Row and Column are 1-based and zero when not applicable.
type Event struct {
	Kind   EventKind
	Offset int
	Table  int
	Row    int
	Column int
	Tag    string
	Text   string
}

// Tracer receives scan events. Implementations must not retain the Event
// beyond the call.
type Tracer interface {
	Trace(Event)
}

// TracerFunc adapts a function to the Tracer interface.
type TracerFunc func(Event)

// Trace calls f(e).
func (f TracerFunc) Trace(e Event) {
	f(e)
}

type nopTracer struct{}

func (nopTracer) Trace(Event) {}
