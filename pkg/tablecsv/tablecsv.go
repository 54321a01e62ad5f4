// Package tablecsv provides the public API for converting HTML tables into
// delimited text.
//
//	conv, err := tablecsv.New(tablecsv.WithFormat(delimited.Config{Delimiter: '|'}))
//	if err != nil { ... }
//	defer conv.Close()
//	res, err := conv.Convert(ctx, "https://example.com/hosts.html")
//	fmt.Print(res.Output.Text)
package tablecsv

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jmylchreest/tablecsv/internal/logger"
	"github.com/jmylchreest/tablecsv/pkg/delimited"
	"github.com/jmylchreest/tablecsv/pkg/fetcher"
	"github.com/jmylchreest/tablecsv/pkg/table"
)

// Result is the outcome of converting one source.
type Result struct {
	Source        string
	Title         string
	FetchedAt     time.Time
	Tables        []table.Table // extracted and selected, before formatting
	Output        delimited.Result
	FetchDuration time.Duration
}

// Converter fetches documents and converts their tables.
type Converter struct {
	urls      fetcher.Fetcher
	files     fetcher.Fetcher
	extractor *table.Extractor
	config    Config
}

var validate = validator.New()

// New creates a Converter. Configuration errors are reported here rather
// than on the first conversion.
func New(opts ...Option) (*Converter, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return nil, fmt.Errorf("invalid config: %s failed %q (value %v)", fe.Field(), fe.Tag(), fe.Value())
		}
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.Format.Validate(); err != nil {
		return nil, err
	}

	c := &Converter{config: cfg}
	if cfg.Fetcher != nil {
		c.urls, c.files = cfg.Fetcher, cfg.Fetcher
	} else {
		c.urls = newURLFetcher(cfg)
	}
	if c.files == nil {
		c.files = fetcher.NewFile(fetcher.FileConfig{
			Stdin:       cfg.Stdin,
			MaxBodySize: cfg.MaxBodySize,
		})
	}

	extractOpts := []table.Option{table.WithEntityDecoding(cfg.DecodeEntities)}
	if cfg.Tracer != nil {
		extractOpts = append(extractOpts, table.WithTracer(cfg.Tracer))
	}
	c.extractor = table.New(extractOpts...)

	return c, nil
}

func newURLFetcher(cfg Config) fetcher.Fetcher {
	static := func() fetcher.Fetcher {
		return fetcher.NewStatic(fetcher.StaticConfig{
			UserAgent:   cfg.UserAgent,
			Timeout:     cfg.Timeout,
			MaxBodySize: cfg.MaxBodySize,
		})
	}
	dynamic := func() fetcher.Fetcher {
		return fetcher.NewDynamic(fetcher.DynamicConfig{
			UserAgent: cfg.UserAgent,
			Timeout:   cfg.Timeout,
		})
	}

	switch cfg.FetchMode {
	case FetchModeDynamic:
		return dynamic()
	case FetchModeAuto:
		return fetcher.NewAuto(static(), dynamic())
	default:
		return static()
	}
}

// Config returns the effective configuration.
func (c *Converter) Config() Config {
	return c.config
}

// Convert fetches source (an http(s) URL, a file path or "-" for stdin),
// extracts its tables and formats them.
func (c *Converter) Convert(ctx context.Context, source string) (*Result, error) {
	res, err := c.fetchTables(ctx, source)
	if err != nil {
		return nil, err
	}
	res.Output = delimited.Format(res.Tables, c.config.Format)
	logger.DebugContext(ctx, "conversion complete",
		"source", res.Source,
		"tables", len(res.Tables),
		"rows", res.Output.Rows,
		"empty", res.Output.Empty.String())
	return res, nil
}

// Tables fetches source and returns its extracted tables without formatting.
func (c *Converter) Tables(ctx context.Context, source string) ([]table.Table, error) {
	res, err := c.fetchTables(ctx, source)
	if err != nil {
		return nil, err
	}
	return res.Tables, nil
}

// ConvertHTML converts an HTML document already in memory.
func (c *Converter) ConvertHTML(html string) (*Result, error) {
	tables, err := c.extract(html)
	if err != nil {
		return nil, err
	}
	return &Result{
		Tables: tables,
		Output: delimited.Format(tables, c.config.Format),
	}, nil
}

// Close releases fetcher resources.
func (c *Converter) Close() error {
	var errs []error
	if err := c.urls.Close(); err != nil {
		errs = append(errs, err)
	}
	if c.files != c.urls {
		if err := c.files.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (c *Converter) fetcherFor(source string) fetcher.Fetcher {
	if fetcher.IsURL(source) {
		return c.urls
	}
	return c.files
}

func (c *Converter) fetchTables(ctx context.Context, source string) (*Result, error) {
	source = strings.TrimSpace(source)
	f := c.fetcherFor(source)

	fetchOpts := fetcher.Options{
		UserAgent:       c.config.UserAgent,
		Timeout:         c.config.Timeout,
		WaitForSelector: c.config.WaitFor,
		WaitDuration:    c.config.Wait,
	}

	logger.DebugContext(ctx, "fetching", "source", source, "fetcher", f.Type())
	start := time.Now()
	content, err := f.Fetch(ctx, source, fetchOpts)
	fetchDuration := time.Since(start)
	if err != nil {
		return nil, fmt.Errorf("fetch failed: %w", err)
	}

	tables, err := c.extract(content.HTML)
	if err != nil {
		return nil, err
	}

	return &Result{
		Source:        source,
		Title:         content.Title,
		FetchedAt:     content.FetchedAt,
		Tables:        tables,
		FetchDuration: fetchDuration,
	}, nil
}

func (c *Converter) extract(html string) ([]table.Table, error) {
	scoped, err := table.Scope(html, c.config.Selector)
	if err != nil {
		return nil, err
	}
	if c.config.Selector != "" {
		logger.Debug("document scoped", "selector", c.config.Selector,
			"input_size", len(html), "output_size", len(scoped))
	}

	tables := c.extractor.Extract(scoped)
	selected := table.Select(tables, c.config.Tables)
	logger.Debug("tables extracted",
		"found", len(tables),
		"selected", len(selected),
		"rows", table.CountRows(selected))
	return selected, nil
}
