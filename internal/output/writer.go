// Package output handles serialization of extracted tables.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/jmylchreest/tablecsv/pkg/delimited"
	"github.com/jmylchreest/tablecsv/pkg/table"
)

// Format represents output format types.
type Format string

const (
	FormatCSV   Format = "csv"
	FormatJSON  Format = "json"
	FormatJSONL Format = "jsonl"
	FormatYAML  Format = "yaml"
)

// ParseFormat parses an output format name. "yml" is accepted for YAML and
// an empty string selects CSV.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatCSV, nil
	case "yml":
		return FormatYAML, nil
	case FormatCSV, FormatJSON, FormatJSONL, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s (use csv, json, jsonl or yaml)", s)
	}
}

// Structured reports whether the format carries tables as data rather than
// delimited text.
func (f Format) Structured() bool {
	return f != FormatCSV
}

// Writer handles output serialization.
type Writer interface {
	// WriteTable outputs a single table.
	WriteTable(t table.Table) error

	// Flush ensures all data is written. Buffered formats emit their
	// document on the first Flush only.
	Flush() error

	// Close flushes and releases resources.
	Close() error
}

// WriterOption configures a writer.
type WriterOption func(*writerConfig)

type writerConfig struct {
	pretty    bool
	delimited delimited.Config
}

// WithPretty enables pretty-printing of JSON output. It is on by default.
func WithPretty(enabled bool) WriterOption {
	return func(c *writerConfig) {
		c.pretty = enabled
	}
}

// WithDelimited sets the formatting used by the CSV writer.
func WithDelimited(cfg delimited.Config) WriterOption {
	return func(c *writerConfig) {
		c.delimited = cfg
	}
}

// NewWriter creates a writer for the specified format.
func NewWriter(w io.Writer, format Format, opts ...WriterOption) (Writer, error) {
	cfg := &writerConfig{
		pretty:    true,
		delimited: delimited.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	switch format {
	case FormatCSV:
		return NewDelimitedWriter(w, cfg.delimited), nil
	case FormatJSON:
		return NewJSONWriter(w, cfg.pretty, "  "), nil
	case FormatJSONL:
		return NewJSONLWriter(w), nil
	case FormatYAML:
		return NewYAMLWriter(w), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}
