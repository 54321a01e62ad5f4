package delimited

import (
	"reflect"
	"strings"
	"testing"
)

// --- ParseQuoteMode Tests ---

func TestParseQuoteMode(t *testing.T) {
	tests := []struct {
		input   string
		want    QuoteMode
		wantErr bool
	}{
		{"never", QuoteNever, false},
		{"ALWAYS", QuoteAlways, false},
		{"asneeded", QuoteAsNeeded, false},
		{"AsNeeded", QuoteAsNeeded, false},
		{"as-needed", QuoteAsNeeded, false},
		{"as_needed", QuoteAsNeeded, false},
		{"", QuoteAsNeeded, false},
		{"sometimes", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseQuoteMode(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseQuoteMode(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseQuoteMode(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// --- ParseDelimiter Tests ---

func TestParseDelimiter(t *testing.T) {
	tests := []struct {
		input   string
		want    rune
		wantErr bool
	}{
		{",", ',', false},
		{"|", '|', false},
		{";", ';', false},
		{`\t`, '\t', false},
		{"tab", '\t', false},
		{"§", '§', false},
		{"", 0, true},
		{",,", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseDelimiter(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDelimiter(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDelimiter(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

// --- ParseColumns Tests ---

func TestParseColumns(t *testing.T) {
	tests := []struct {
		input   string
		want    []int
		wantErr bool
	}{
		{"", nil, false},
		{"1", []int{1}, false},
		{"1,3,5", []int{1, 3, 5}, false},
		{" 3 , 1 ", []int{3, 1}, false},
		{"1,,2,", []int{1, 2}, false},
		{"0", nil, true},
		{"-2", nil, true},
		{"a,1", nil, true},
	}

	for _, tt := range tests {
		got, err := ParseColumns(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseColumns(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseColumns(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

// --- Validate Tests ---

func TestConfig_Validate(t *testing.T) {
	valid := DefaultConfig()
	valid.QuoteColumns = []int{1, 2}
	valid.ShowFields = []int{3}

	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"default", DefaultConfig(), ""},
		{"with_columns", valid, ""},
		{"missing_delimiter", Config{QuoteMode: QuoteNever}, "delimiter is required"},
		{"bad_mode", Config{Delimiter: ',', QuoteMode: "maybe"}, "quote mode"},
		{"zero_show_field", Config{Delimiter: ',', QuoteMode: QuoteNever, ShowFields: []int{0}}, "ShowFields"},
		{"negative_quote_column", Config{Delimiter: ',', QuoteMode: QuoteNever, QuoteColumns: []int{-1}}, "QuoteColumns"},
		{"quote_delimiter", Config{Delimiter: '"', QuoteMode: QuoteNever}, "not allowed"},
		{"newline_delimiter", Config{Delimiter: '\n', QuoteMode: QuoteNever}, "not allowed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() = nil, want error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}
