package output

import (
	"bufio"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/tablecsv/pkg/table"
)

// YAMLWriter writes all tables as one YAML sequence.
type YAMLWriter struct {
	w      *bufio.Writer
	tables []table.Table
	done   bool
}

// NewYAMLWriter creates a YAML writer.
func NewYAMLWriter(w io.Writer) *YAMLWriter {
	return &YAMLWriter{
		w:      bufio.NewWriter(w),
		tables: make([]table.Table, 0),
	}
}

// WriteTable buffers a table.
func (w *YAMLWriter) WriteTable(t table.Table) error {
	w.tables = append(w.tables, t)
	return nil
}

// Flush writes the buffered tables as YAML. An empty result is "[]".
func (w *YAMLWriter) Flush() error {
	if w.done {
		return w.w.Flush()
	}
	w.done = true

	encoder := yaml.NewEncoder(w.w)
	encoder.SetIndent(2)
	if err := encoder.Encode(w.tables); err != nil {
		return err
	}
	if err := encoder.Close(); err != nil {
		return err
	}

	return w.w.Flush()
}

// Close flushes and closes the writer.
func (w *YAMLWriter) Close() error {
	return w.Flush()
}
