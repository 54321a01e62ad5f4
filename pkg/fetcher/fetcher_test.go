package fetcher

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const page = `<html><head><title> Hosts
 list </title></head><body><table><tr><td>a</td></tr></table></body></html>`

func newServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

// --- IsURL Tests ---

func TestIsURL(t *testing.T) {
	tests := []struct {
		source string
		want   bool
	}{
		{"http://example.com", true},
		{"HTTPS://example.com/x", true},
		{"  https://example.com", true},
		{"page.html", false},
		{"-", false},
		{"ftp://example.com", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsURL(tt.source); got != tt.want {
			t.Errorf("IsURL(%q) = %v, want %v", tt.source, got, tt.want)
		}
	}
}

// --- StaticFetcher Tests ---

func TestStaticFetcher_Success(t *testing.T) {
	var gotUA, gotHeader string
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.UserAgent()
		gotHeader = r.Header.Get("X-Test")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = fmt.Fprint(w, page)
	})

	f := NewStatic(StaticConfig{UserAgent: "tablecsv-test"})
	content, err := f.Fetch(context.Background(), srv.URL, Options{
		Headers: map[string]string{"X-Test": "yes"},
	})
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if content.StatusCode != http.StatusOK {
		t.Errorf("StatusCode = %d, want 200", content.StatusCode)
	}
	if !strings.Contains(content.HTML, "<table>") {
		t.Errorf("HTML missing table: %q", content.HTML)
	}
	if content.Title != "Hosts list" {
		t.Errorf("Title = %q, want %q", content.Title, "Hosts list")
	}
	if gotUA != "tablecsv-test" {
		t.Errorf("User-Agent = %q, want %q", gotUA, "tablecsv-test")
	}
	if gotHeader != "yes" {
		t.Errorf("X-Test header = %q, want %q", gotHeader, "yes")
	}
	if content.Source != srv.URL {
		t.Errorf("Source = %q, want %q", content.Source, srv.URL)
	}
}

func TestStaticFetcher_OptionsUserAgentWins(t *testing.T) {
	var gotUA string
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.UserAgent()
		_, _ = fmt.Fprint(w, page)
	})

	f := NewStatic(StaticConfig{UserAgent: "config-agent"})
	if _, err := f.Fetch(context.Background(), srv.URL, Options{UserAgent: "option-agent"}); err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if gotUA != "option-agent" {
		t.Errorf("User-Agent = %q, want %q", gotUA, "option-agent")
	}
}

func TestStaticFetcher_NonOKStatus(t *testing.T) {
	for _, status := range []int{http.StatusCreated, http.StatusNotFound, http.StatusInternalServerError} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(status)
				_, _ = fmt.Fprint(w, page)
			})

			content, err := NewStatic(StaticConfig{}).Fetch(context.Background(), srv.URL, Options{})
			if err == nil {
				t.Fatal("expected error for non-200 status")
			}
			if !errors.Is(err, ErrUnexpectedStatus) {
				t.Errorf("expected ErrUnexpectedStatus, got %v", err)
			}
			if !strings.Contains(err.Error(), srv.URL) {
				t.Errorf("error should name the URL: %v", err)
			}
			if content.StatusCode != status {
				t.Errorf("StatusCode = %d, want %d", content.StatusCode, status)
			}
		})
	}
}

func TestStaticFetcher_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewStatic(StaticConfig{Timeout: 2 * time.Second}).Fetch(context.Background(), url, Options{})
	if err == nil {
		t.Fatal("expected transport error")
	}
	if !strings.Contains(err.Error(), url) {
		t.Errorf("error should name the URL: %v", err)
	}
}

func TestStaticFetcher_MaxBodySize(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, strings.Repeat("x", 100))
	})

	_, err := NewStatic(StaticConfig{MaxBodySize: 10}).Fetch(context.Background(), srv.URL, Options{})
	if !errors.Is(err, ErrBodyTooLarge) {
		t.Fatalf("expected ErrBodyTooLarge, got %v", err)
	}

	content, err := NewStatic(StaticConfig{MaxBodySize: 100}).Fetch(context.Background(), srv.URL, Options{})
	if err != nil {
		t.Fatalf("body exactly at the limit should pass, got %v", err)
	}
	if len(content.HTML) != 100 {
		t.Errorf("HTML size = %d, want 100", len(content.HTML))
	}
}

func TestStaticFetcher_EmptySource(t *testing.T) {
	_, err := NewStatic(StaticConfig{}).Fetch(context.Background(), "", Options{})
	if !errors.Is(err, ErrEmptySource) {
		t.Errorf("expected ErrEmptySource, got %v", err)
	}
}

func TestNewStatic_Defaults(t *testing.T) {
	f := NewStatic(StaticConfig{})
	if f.config.UserAgent != defaultUserAgent {
		t.Errorf("UserAgent = %q, want default", f.config.UserAgent)
	}
	if f.config.Timeout != defaultTimeout {
		t.Errorf("Timeout = %v, want %v", f.config.Timeout, defaultTimeout)
	}
	if f.Type() != "static" {
		t.Errorf("Type() = %q, want static", f.Type())
	}
	if err := f.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

// --- FileFetcher Tests ---

func TestFileFetcher_ReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.html")
	if err := os.WriteFile(path, []byte(page), 0o600); err != nil {
		t.Fatal(err)
	}

	content, err := NewFile(FileConfig{}).Fetch(context.Background(), path, Options{})
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if content.HTML != page {
		t.Errorf("HTML = %q, want file contents", content.HTML)
	}
	if content.Title != "Hosts list" {
		t.Errorf("Title = %q", content.Title)
	}
}

func TestFileFetcher_ReadsStdin(t *testing.T) {
	f := NewFile(FileConfig{Stdin: strings.NewReader(page)})

	content, err := f.Fetch(context.Background(), StdinSource, Options{})
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if content.HTML != page {
		t.Errorf("HTML = %q, want stdin contents", content.HTML)
	}
}

func TestFileFetcher_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.html")

	_, err := NewFile(FileConfig{}).Fetch(context.Background(), path, Options{})
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist, got %v", err)
	}
}

func TestFileFetcher_MaxBodySize(t *testing.T) {
	f := NewFile(FileConfig{Stdin: strings.NewReader("0123456789"), MaxBodySize: 5})

	_, err := f.Fetch(context.Background(), StdinSource, Options{})
	if !errors.Is(err, ErrBodyTooLarge) {
		t.Errorf("expected ErrBodyTooLarge, got %v", err)
	}
}

func TestFileFetcher_EmptySource(t *testing.T) {
	_, err := NewFile(FileConfig{}).Fetch(context.Background(), "", Options{})
	if !errors.Is(err, ErrEmptySource) {
		t.Errorf("expected ErrEmptySource, got %v", err)
	}
}

// --- DynamicFetcher Tests ---

func TestNewDynamic_Defaults(t *testing.T) {
	f := NewDynamic(DynamicConfig{})
	defer func() { _ = f.Close() }()

	if f.config.UserAgent != defaultUserAgent {
		t.Errorf("UserAgent = %q, want default", f.config.UserAgent)
	}
	if f.config.Timeout != defaultTimeout {
		t.Errorf("Timeout = %v, want %v", f.config.Timeout, defaultTimeout)
	}
	if f.Type() != "dynamic" {
		t.Errorf("Type() = %q, want dynamic", f.Type())
	}
}

func TestDynamicFetcher_EmptySource(t *testing.T) {
	f := NewDynamic(DynamicConfig{})
	defer func() { _ = f.Close() }()

	_, err := f.Fetch(context.Background(), "", Options{})
	if !errors.Is(err, ErrEmptySource) {
		t.Errorf("expected ErrEmptySource, got %v", err)
	}
}
