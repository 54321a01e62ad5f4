package tablecsv

import (
	"io"
	"time"

	"github.com/jmylchreest/tablecsv/pkg/delimited"
	"github.com/jmylchreest/tablecsv/pkg/fetcher"
	"github.com/jmylchreest/tablecsv/pkg/table"
)

// FetchMode selects how URLs are retrieved.
type FetchMode string

const (
	// FetchModeStatic performs a plain HTTP GET.
	FetchModeStatic FetchMode = "static"
	// FetchModeDynamic renders the page in headless Chrome first.
	FetchModeDynamic FetchMode = "dynamic"
	// FetchModeAuto fetches statically and falls back to the browser for
	// pages without tables that appear to need JavaScript.
	FetchModeAuto FetchMode = "auto"
)

// Config holds all converter configuration.
type Config struct {
	// Fetcher, when set, retrieves every source (URLs and paths alike) and
	// FetchMode is ignored.
	Fetcher fetcher.Fetcher `validate:"-"`

	// Fetch settings
	FetchMode   FetchMode     `validate:"oneof=static dynamic auto"`
	UserAgent   string        `validate:"-"`
	Timeout     time.Duration `validate:"gte=0"`
	MaxBodySize int           `validate:"gte=0"`
	WaitFor     string        `validate:"-"` // CSS selector (dynamic only)
	Wait        time.Duration `validate:"gte=0"`
	Stdin       io.Reader     `validate:"-"`

	// Extraction settings
	Selector       string `validate:"-"`
	Tables         []int  `validate:"dive,gt=0"`
	DecodeEntities bool
	Tracer         table.Tracer `validate:"-"`

	// Format is validated separately by delimited.Config.Validate.
	Format delimited.Config `validate:"-"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		FetchMode: FetchModeStatic,
		Timeout:   30 * time.Second,
		Format:    delimited.DefaultConfig(),
	}
}

// Option configures a Converter.
type Option func(*Config)

// WithFetcher injects a custom fetcher for all sources.
func WithFetcher(f fetcher.Fetcher) Option {
	return func(c *Config) {
		c.Fetcher = f
	}
}

// WithFetchMode sets the fetch mode for URLs (static, dynamic, auto).
func WithFetchMode(mode FetchMode) Option {
	return func(c *Config) {
		c.FetchMode = mode
	}
}

// WithUserAgent sets the HTTP user agent.
func WithUserAgent(ua string) Option {
	return func(c *Config) {
		c.UserAgent = ua
	}
}

// WithTimeout sets the request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.Timeout = d
	}
}

// WithMaxBodySize limits fetched documents to n bytes. Zero is unlimited.
func WithMaxBodySize(n int) Option {
	return func(c *Config) {
		c.MaxBodySize = n
	}
}

// WithWaitFor sets a CSS selector the dynamic fetcher waits for.
func WithWaitFor(selector string) Option {
	return func(c *Config) {
		c.WaitFor = selector
	}
}

// WithWait adds a delay after page load in dynamic mode.
func WithWait(d time.Duration) Option {
	return func(c *Config) {
		c.Wait = d
	}
}

// WithStdin sets the reader used for the "-" source.
func WithStdin(r io.Reader) Option {
	return func(c *Config) {
		c.Stdin = r
	}
}

// WithSelector restricts extraction to elements matching a CSS selector.
func WithSelector(selector string) Option {
	return func(c *Config) {
		c.Selector = selector
	}
}

// WithTables keeps only the tables with the given 1-based indexes.
func WithTables(indexes ...int) Option {
	return func(c *Config) {
		c.Tables = indexes
	}
}

// WithDecodeEntities unescapes HTML character references in cell text.
func WithDecodeEntities(enabled bool) Option {
	return func(c *Config) {
		c.DecodeEntities = enabled
	}
}

// WithTracer receives extraction events.
func WithTracer(t table.Tracer) Option {
	return func(c *Config) {
		c.Tracer = t
	}
}

// WithFormat sets the delimited output formatting.
func WithFormat(cfg delimited.Config) Option {
	return func(c *Config) {
		c.Format = cfg
	}
}
