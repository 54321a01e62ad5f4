package output

import (
	"bufio"
	"encoding/json"
	"io"

	"github.com/jmylchreest/tablecsv/pkg/table"
)

// JSONWriter writes all tables as one JSON array.
type JSONWriter struct {
	w      *bufio.Writer
	pretty bool
	indent string
	tables []table.Table
	done   bool
}

// NewJSONWriter creates a JSON writer.
func NewJSONWriter(w io.Writer, pretty bool, indent string) *JSONWriter {
	return &JSONWriter{
		w:      bufio.NewWriter(w),
		pretty: pretty,
		indent: indent,
		tables: make([]table.Table, 0),
	}
}

// WriteTable buffers a table for the JSON array.
func (w *JSONWriter) WriteTable(t table.Table) error {
	w.tables = append(w.tables, t)
	return nil
}

// Flush writes the buffered tables as a JSON array. An empty result is "[]".
func (w *JSONWriter) Flush() error {
	if w.done {
		return w.w.Flush()
	}
	w.done = true

	var output []byte
	var err error
	if w.pretty {
		output, err = json.MarshalIndent(w.tables, "", w.indent)
	} else {
		output, err = json.Marshal(w.tables)
	}
	if err != nil {
		return err
	}

	if _, err := w.w.Write(output); err != nil {
		return err
	}
	if err := w.w.WriteByte('\n'); err != nil {
		return err
	}
	return w.w.Flush()
}

// Close flushes and closes the writer.
func (w *JSONWriter) Close() error {
	return w.Flush()
}

// JSONLWriter writes one table per line (JSON Lines).
type JSONLWriter struct {
	w *bufio.Writer
}

// NewJSONLWriter creates a JSONL writer.
func NewJSONLWriter(w io.Writer) *JSONLWriter {
	return &JSONLWriter{
		w: bufio.NewWriter(w),
	}
}

// WriteTable writes a single table as a JSON line.
func (w *JSONLWriter) WriteTable(t table.Table) error {
	output, err := json.Marshal(t)
	if err != nil {
		return err
	}

	if _, err := w.w.Write(output); err != nil {
		return err
	}
	if err := w.w.WriteByte('\n'); err != nil {
		return err
	}

	return w.w.Flush()
}

// Flush flushes the buffer.
func (w *JSONLWriter) Flush() error {
	return w.w.Flush()
}

// Close flushes the writer.
func (w *JSONLWriter) Close() error {
	return w.Flush()
}
