// Package delimited renders extracted table rows as delimiter-separated text.
package delimited

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// QuoteMode controls when a field is wrapped in double quotes.
type QuoteMode string

const (
	QuoteNever    QuoteMode = "never"
	QuoteAlways   QuoteMode = "always"
	QuoteAsNeeded QuoteMode = "asneeded"
)

// ParseQuoteMode parses a quote mode name, ignoring case, "-" and "_"
// ("as-needed", "AsNeeded" and "asneeded" are equivalent). An empty string
// yields the default QuoteAsNeeded.
func ParseQuoteMode(s string) (QuoteMode, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("-", "", "_", "").Replace(norm)
	switch QuoteMode(norm) {
	case "":
		return QuoteAsNeeded, nil
	case QuoteNever, QuoteAlways, QuoteAsNeeded:
		return QuoteMode(norm), nil
	default:
		return "", fmt.Errorf("unknown quote mode: %s (use never, always or asneeded)", s)
	}
}

// Config holds the formatting options applied to every row.
type Config struct {
	// Delimiter separates fields. Default ','.
	Delimiter rune `validate:"required"`

	// QuoteMode applies when QuoteColumns is empty. Default QuoteAsNeeded.
	QuoteMode QuoteMode `validate:"oneof=never always asneeded"`

	// NoHeader drops the first row of every table.
	NoHeader bool

	// QuoteColumns lists 1-based source columns that are quoted; all other
	// columns are left bare. When non-empty it overrides QuoteMode.
	QuoteColumns []int `validate:"dive,gt=0"`

	// ShowFields selects and orders output columns by 1-based source column.
	// Empty means every column in source order.
	ShowFields []int `validate:"dive,gt=0"`
}

// DefaultConfig returns comma-delimited, quote-as-needed formatting.
func DefaultConfig() Config {
	return Config{
		Delimiter: ',',
		QuoteMode: QuoteAsNeeded,
	}
}

var validate = validator.New()

// Validate reports configuration errors.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fieldMessage(fe))
			}
			return fmt.Errorf("invalid format config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid format config: %w", err)
	}
	if c.Delimiter == '"' || c.Delimiter == '\n' || c.Delimiter == '\r' || c.Delimiter == utf8.RuneError {
		return fmt.Errorf("invalid format config: delimiter %q is not allowed", c.Delimiter)
	}
	return nil
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", strings.ToLower(fe.Field()))
	case "oneof":
		return fmt.Sprintf("quote mode %q must be one of never, always, asneeded", fe.Value())
	case "gt":
		return fmt.Sprintf("%s entries must be positive column numbers, got %v", fe.Field(), fe.Value())
	default:
		return fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag())
	}
}

// ParseDelimiter converts a user supplied delimiter string to a rune.
// The escape "\t" and the word "tab" both mean a tab character.
func ParseDelimiter(s string) (rune, error) {
	switch s {
	case `\t`, "tab":
		return '\t', nil
	case "":
		return 0, errors.New("delimiter must not be empty")
	}
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || size != len(s) {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", s)
	}
	return r, nil
}

// ParseColumns parses a comma-separated list of 1-based column numbers such
// as "1,3,5". Blank entries are ignored. Entries that are not positive
// integers are an error.
func ParseColumns(s string) ([]int, error) {
	var cols []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid column number %q: must be a positive integer", part)
		}
		cols = append(cols, n)
	}
	return cols, nil
}
