package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/tablecsv/internal/logger"
	"github.com/jmylchreest/tablecsv/internal/output"
	"github.com/jmylchreest/tablecsv/pkg/delimited"
	"github.com/jmylchreest/tablecsv/pkg/tablecsv"
)

func init() {
	flags := rootCmd.Flags()

	// Formatting
	flags.StringP("delimiter", "d", ",", `field delimiter (a single character, or "tab")`)
	flags.StringP("quote-fields", "q", "asneeded", "quote mode: never, always, asneeded")
	flags.Bool("no-header", false, "drop the first row of every table")
	flags.String("quote-columns", "", "quote only these columns, overriding --quote-fields (e.g. 1,3)")
	flags.String("show-fields", "", "output only these columns, in this order (e.g. 3,1)")

	// Fetch settings
	flags.String("fetch-mode", "static", "fetch mode for URLs: static, dynamic, auto")
	flags.Duration("timeout", 30*time.Second, "request timeout")
	flags.String("user-agent", "", "HTTP user agent")
	flags.String("max-size", "0", "max document size (e.g. 10MB, 0=unlimited)")
	flags.String("wait-for", "", "CSS selector to wait for in dynamic mode")
	flags.Duration("wait", 0, "extra wait after page load in dynamic mode")

	// Extraction settings
	flags.String("selector", "", "only extract tables inside elements matching this CSS selector")
	flags.String("tables", "", "only output these tables by 1-based position (e.g. 1,3)")
	flags.Bool("decode-entities", false, "decode HTML entities such as &amp; in cell text")

	// Output settings
	flags.StringP("output", "o", "", "output file (default: stdout)")
	flags.String("format", "csv", "output format: csv, json, jsonl, yaml")
	flags.Bool("compact", false, "write JSON on a single line instead of indented")

	// Bind to viper
	for key, flag := range map[string]string{
		"delimiter":       "delimiter",
		"quote_mode":      "quote-fields",
		"no_header":       "no-header",
		"quote_columns":   "quote-columns",
		"show_fields":     "show-fields",
		"fetch_mode":      "fetch-mode",
		"timeout":         "timeout",
		"user_agent":      "user-agent",
		"max_size":        "max-size",
		"wait_for":        "wait-for",
		"wait":            "wait",
		"selector":        "selector",
		"tables":          "tables",
		"decode_entities": "decode-entities",
		"format":          "format",
		"compact":         "compact",
	} {
		_ = viper.BindPFlag(key, flags.Lookup(flag))
	}
}

// formatConfig builds the row formatting options from flags, environment
// and config file.
func formatConfig() (delimited.Config, error) {
	var cfg delimited.Config
	var err error

	if cfg.Delimiter, err = delimited.ParseDelimiter(viper.GetString("delimiter")); err != nil {
		return cfg, err
	}
	if cfg.QuoteMode, err = delimited.ParseQuoteMode(viper.GetString("quote_mode")); err != nil {
		return cfg, err
	}
	cfg.NoHeader = viper.GetBool("no_header")
	if cfg.QuoteColumns, err = columnList(viper.Get("quote_columns")); err != nil {
		return cfg, fmt.Errorf("--quote-columns: %w", err)
	}
	if cfg.ShowFields, err = columnList(viper.Get("show_fields")); err != nil {
		return cfg, fmt.Errorf("--show-fields: %w", err)
	}

	return cfg, cfg.Validate()
}

// columnList reads a 1-based column setting. Flags and environment
// variables give a comma-separated string; a config file may also give a
// single number or a YAML list.
func columnList(v any) ([]int, error) {
	switch v := v.(type) {
	case nil:
		return nil, nil
	case string:
		return delimited.ParseColumns(v)
	case int:
		return columnList([]int{v})
	case []any, []int, []string:
		cols, err := cast.ToIntSliceE(v)
		if err != nil {
			return nil, fmt.Errorf("invalid column list %v: %w", v, err)
		}
		for _, n := range cols {
			if n < 1 {
				return nil, fmt.Errorf("invalid column number %d: must be a positive integer", n)
			}
		}
		return cols, nil
	default:
		return nil, fmt.Errorf("unsupported column list %v (%T): use a list or a comma-separated string", v, v)
	}
}

// converterOptions builds the fetch and extraction options.
func converterOptions(cmd *cobra.Command, format delimited.Config) ([]tablecsv.Option, error) {
	opts := []tablecsv.Option{
		tablecsv.WithFormat(format),
		tablecsv.WithFetchMode(tablecsv.FetchMode(strings.ToLower(viper.GetString("fetch_mode")))),
		tablecsv.WithTimeout(viper.GetDuration("timeout")),
		tablecsv.WithUserAgent(viper.GetString("user_agent")),
		tablecsv.WithWaitFor(viper.GetString("wait_for")),
		tablecsv.WithWait(viper.GetDuration("wait")),
		tablecsv.WithSelector(viper.GetString("selector")),
		tablecsv.WithDecodeEntities(viper.GetBool("decode_entities")),
		tablecsv.WithStdin(cmd.InOrStdin()),
		tablecsv.WithTracer(logger.Tracer()),
	}

	// Get max size (0 or empty means unlimited)
	maxSizeStr := strings.TrimSpace(viper.GetString("max_size"))
	if maxSizeStr != "" && maxSizeStr != "0" {
		size, err := humanize.ParseBytes(maxSizeStr)
		if err != nil {
			return nil, fmt.Errorf("invalid --max-size %q: %w", maxSizeStr, err)
		}
		opts = append(opts, tablecsv.WithMaxBodySize(int(size)))
		logger.Debug("max document size", "bytes", size, "human", humanize.Bytes(size))
	}

	tables, err := columnList(viper.Get("tables"))
	if err != nil {
		return nil, fmt.Errorf("--tables: %w", err)
	}
	if len(tables) > 0 {
		opts = append(opts, tablecsv.WithTables(tables...))
	}

	return opts, nil
}

func runConvert(cmd *cobra.Command, args []string) error {
	// Initialize logger based on flags
	logger.Init(logger.Options{
		Debug:  viper.GetBool("debug"),
		Quiet:  viper.GetBool("quiet"),
		JSON:   viper.GetBool("log_json"),
		Output: cmd.ErrOrStderr(),
	})

	if err := convert(cmd, args[0]); err != nil {
		logError(cmd, "%v", err)
		return err
	}
	return nil
}

func convert(cmd *cobra.Command, source string) error {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if configErr != nil {
		logger.ErrorContext(ctx, "configuration unusable", "error", configErr)
		return configErr
	}

	formatCfg, err := formatConfig()
	if err != nil {
		return err
	}
	outFormat, err := output.ParseFormat(viper.GetString("format"))
	if err != nil {
		return err
	}
	opts, err := converterOptions(cmd, formatCfg)
	if err != nil {
		return err
	}

	conv, err := tablecsv.New(opts...)
	if err != nil {
		return err
	}
	defer func() { _ = conv.Close() }()

	logger.DebugContext(ctx, "convert command starting",
		"source", source,
		"fetch_mode", conv.Config().FetchMode,
		"format", outFormat)

	result, err := conv.Convert(ctx, source)
	if err != nil {
		return err
	}

	return writeResult(ctx, cmd, result, outFormat, formatCfg)
}

// writeResult writes the converted tables to --output or stdout. Nothing is
// written when the conversion failed.
func writeResult(ctx context.Context, cmd *cobra.Command, result *tablecsv.Result, format output.Format, cfg delimited.Config) error {
	var out io.Writer = cmd.OutOrStdout()
	if outPath, _ := cmd.Flags().GetString("output"); outPath != "" {
		f, err := os.Create(outPath) //#nosec G304 -- CLI tool writes to user-specified output file
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() {
			if err := f.Close(); err != nil {
				logger.Error("failed to close output file", "path", outPath, "error", err)
			}
		}()
		out = f
	}

	writer, err := output.NewWriter(out, format,
		output.WithDelimited(cfg),
		output.WithPretty(!viper.GetBool("compact")))
	if err != nil {
		return err
	}

	tables := result.Tables
	if format.Structured() {
		tables = delimited.Project(tables, cfg)
	}
	for _, t := range tables {
		if err := writer.WriteTable(t); err != nil {
			return fmt.Errorf("failed to write table %d: %w", t.Index, err)
		}
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	logger.InfoContext(ctx, "conversion complete",
		"source", result.Source,
		"title", result.Title,
		"tables", len(result.Tables),
		"rows", result.Output.Rows,
		"fetch_duration", result.FetchDuration.Round(time.Millisecond))
	if result.Output.Empty == delimited.EmptyAllSuppressed {
		logger.Warn("every row was a suppressed header row", "source", result.Source)
	}
	return nil
}
