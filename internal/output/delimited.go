package output

import (
	"bufio"
	"io"

	"github.com/jmylchreest/tablecsv/pkg/delimited"
	"github.com/jmylchreest/tablecsv/pkg/table"
)

// DelimitedWriter writes tables as delimiter-separated rows. Tables are
// buffered until Flush because the empty-result message depends on all of
// them.
type DelimitedWriter struct {
	w      *bufio.Writer
	cfg    delimited.Config
	tables []table.Table
	result delimited.Result
	done   bool
}

// NewDelimitedWriter creates a delimited writer.
func NewDelimitedWriter(w io.Writer, cfg delimited.Config) *DelimitedWriter {
	return &DelimitedWriter{
		w:   bufio.NewWriter(w),
		cfg: cfg,
	}
}

// WriteTable buffers a table.
func (w *DelimitedWriter) WriteTable(t table.Table) error {
	w.tables = append(w.tables, t)
	return nil
}

// Flush formats the buffered tables. When no rows remain the informational
// message is written on its own line.
func (w *DelimitedWriter) Flush() error {
	if w.done {
		return w.w.Flush()
	}
	w.done = true

	w.result = delimited.Format(w.tables, w.cfg)
	w.tables = nil
	if _, err := w.w.WriteString(w.result.Text); err != nil {
		return err
	}
	if w.result.Empty != delimited.NotEmpty {
		if err := w.w.WriteByte('\n'); err != nil {
			return err
		}
	}
	return w.w.Flush()
}

// Result returns the outcome of the last Flush.
func (w *DelimitedWriter) Result() delimited.Result {
	return w.result
}

// Close flushes the writer.
func (w *DelimitedWriter) Close() error {
	return w.Flush()
}
