package delimited

import (
	"strings"

	"github.com/jmylchreest/tablecsv/pkg/table"
)

// NoTablesMessage is the whole output when no rows remain to be written.
const NoTablesMessage = "No tables found in the HTML"

// EmptyReason explains why a Result has no rows.
type EmptyReason int

const (
	// NotEmpty means at least one row was written.
	NotEmpty EmptyReason = iota
	// EmptyNoTables means the input held no table with rows.
	EmptyNoTables
	// EmptyAllSuppressed means every row was a suppressed header row.
	EmptyAllSuppressed
)

func (r EmptyReason) String() string {
	switch r {
	case EmptyNoTables:
		return "no tables"
	case EmptyAllSuppressed:
		return "all rows suppressed"
	default:
		return "not empty"
	}
}

// Result is formatted output plus what it was built from.
type Result struct {
	// Text is the newline-terminated rows, or NoTablesMessage when Empty is
	// not NotEmpty.
	Text  string
	Rows  int
	Empty EmptyReason
}

// Format renders tables as delimited text. Tables are formatted
// independently and concatenated in order.
func Format(tables []table.Table, cfg Config) Result {
	f := NewFormatter(cfg)

	var sb strings.Builder
	rows := 0
	for _, t := range tables {
		body := t.Rows
		if cfg.NoHeader && len(body) > 0 {
			body = body[1:]
		}
		for _, r := range body {
			f.writeRow(&sb, r)
			rows++
		}
	}

	if rows == 0 {
		reason := EmptyNoTables
		if table.CountRows(tables) > 0 {
			reason = EmptyAllSuppressed
		}
		return Result{Text: NoTablesMessage, Empty: reason}
	}
	return Result{Text: sb.String(), Rows: rows}
}

// Formatter formats single rows under a fixed Config.
type Formatter struct {
	cfg       Config
	delimiter string
	quoteCols map[int]bool
}

// NewFormatter creates a Formatter. Zero Delimiter and QuoteMode fall back
// to the DefaultConfig values.
func NewFormatter(cfg Config) *Formatter {
	def := DefaultConfig()
	if cfg.Delimiter == 0 {
		cfg.Delimiter = def.Delimiter
	}
	if cfg.QuoteMode == "" {
		cfg.QuoteMode = def.QuoteMode
	}

	f := &Formatter{
		cfg:       cfg,
		delimiter: string(cfg.Delimiter),
	}
	if len(cfg.QuoteColumns) > 0 {
		f.quoteCols = make(map[int]bool, len(cfg.QuoteColumns))
		for _, c := range cfg.QuoteColumns {
			f.quoteCols[c] = true
		}
	}
	return f
}

// FormatRow returns one output line for r, without the trailing newline.
func (f *Formatter) FormatRow(r table.Row) string {
	var sb strings.Builder
	f.writeFields(&sb, r)
	return sb.String()
}

func (f *Formatter) writeRow(sb *strings.Builder, r table.Row) {
	f.writeFields(sb, r)
	sb.WriteByte('\n')
}

func (f *Formatter) writeFields(sb *strings.Builder, r table.Row) {
	if len(f.cfg.ShowFields) == 0 {
		for i, cell := range r.Cells {
			if i > 0 {
				sb.WriteString(f.delimiter)
			}
			f.writeField(sb, cell, i+1)
		}
		return
	}
	for i, col := range f.cfg.ShowFields {
		if i > 0 {
			sb.WriteString(f.delimiter)
		}
		f.writeField(sb, r.Cell(col), col)
	}
}

// writeField writes value, quoting it according to its 1-based source
// column.
func (f *Formatter) writeField(sb *strings.Builder, value string, column int) {
	if !f.shouldQuote(value, column) {
		sb.WriteString(value)
		return
	}
	sb.WriteByte('"')
	sb.WriteString(strings.ReplaceAll(value, `"`, `""`))
	sb.WriteByte('"')
}

func (f *Formatter) shouldQuote(value string, column int) bool {
	if f.quoteCols != nil {
		return f.quoteCols[column]
	}
	switch f.cfg.QuoteMode {
	case QuoteAlways:
		return true
	case QuoteNever:
		return false
	default:
		return strings.ContainsRune(value, f.cfg.Delimiter) ||
			strings.ContainsAny(value, "\"\n")
	}
}
