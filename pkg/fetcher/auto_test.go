package fetcher

import (
	"context"
	"errors"
	"testing"
)

type stubFetcher struct {
	name   string
	html   string
	err    error
	calls  int
	closed bool
}

func (s *stubFetcher) Fetch(_ context.Context, source string, _ Options) (Content, error) {
	s.calls++
	return Content{Source: source, HTML: s.html}, s.err
}

func (s *stubFetcher) Close() error {
	s.closed = true
	return nil
}

func (s *stubFetcher) Type() string { return s.name }

// --- AutoFetcher Tests ---

func TestAutoFetcher(t *testing.T) {
	tests := []struct {
		name        string
		staticHTML  string
		wantDynamic bool
	}{
		{"table present", `<div id="root"></div><table><tr><td>a</td></tr></table>`, false},
		{"plain page", `<html><body><p>` + longText + `</p></body></html>`, false},
		{"react mount", `<html><body><div id="root"></div></body></html>`, true},
		{"vue cloak", `<div v-cloak>{{ rows }}</div>`, true},
		{"loading notice", `<html><body><p>Loading...</p></body></html>`, true},
		{"noscript warning", `<html><body><noscript>Please enable JavaScript</noscript><p>` + longText + `</p></body></html>`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			static := &stubFetcher{name: "static", html: tt.staticHTML}
			dynamic := &stubFetcher{name: "dynamic", html: "<table></table>"}
			f := NewAuto(static, dynamic)

			content, err := f.Fetch(context.Background(), "https://example.com", Options{})
			if err != nil {
				t.Fatalf("Fetch() error = %v", err)
			}
			if got := dynamic.calls == 1; got != tt.wantDynamic {
				t.Errorf("dynamic used = %v, want %v", got, tt.wantDynamic)
			}
			if tt.wantDynamic && content.HTML != "<table></table>" {
				t.Errorf("expected dynamic content, got %q", content.HTML)
			}
		})
	}
}

func TestAutoFetcher_StaticErrorNotRetried(t *testing.T) {
	static := &stubFetcher{name: "static", err: ErrUnexpectedStatus}
	dynamic := &stubFetcher{name: "dynamic"}
	f := NewAuto(static, dynamic)

	_, err := f.Fetch(context.Background(), "https://example.com", Options{})
	if !errors.Is(err, ErrUnexpectedStatus) {
		t.Errorf("error = %v, want ErrUnexpectedStatus", err)
	}
	if dynamic.calls != 0 {
		t.Error("dynamic fetcher should not run after a static failure")
	}
}

func TestAutoFetcher_CloseAndType(t *testing.T) {
	static := &stubFetcher{name: "static"}
	dynamic := &stubFetcher{name: "dynamic"}
	f := NewAuto(static, dynamic)

	if f.Type() != "auto" {
		t.Errorf("Type() = %q, want auto", f.Type())
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !static.closed || !dynamic.closed {
		t.Error("Close() should close both fetchers")
	}
}

const longText = "This page lists every host on the network together with its address and the team that owns it, updated nightly."
