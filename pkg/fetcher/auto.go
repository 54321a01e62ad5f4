package fetcher

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jmylchreest/tablecsv/internal/logger"
)

// AutoFetcher fetches statically and re-renders in a browser only when the
// static page has no tables and looks like it is built by JavaScript.
type AutoFetcher struct {
	static  Fetcher
	dynamic Fetcher
}

// NewAuto creates an auto-detecting fetcher from a static and a dynamic
// fetcher. Close closes both.
func NewAuto(static, dynamic Fetcher) *AutoFetcher {
	return &AutoFetcher{static: static, dynamic: dynamic}
}

// Fetch tries static first. Static failures are returned as is; a browser
// does not fix a 404.
func (f *AutoFetcher) Fetch(ctx context.Context, url string, opts Options) (Content, error) {
	content, err := f.static.Fetch(ctx, url, opts)
	if err != nil {
		return content, err
	}

	if !needsJavaScript(content.HTML) {
		return content, nil
	}

	logger.Debug("page appears to need JavaScript, retrying with browser", "url", url)
	return f.dynamic.Fetch(ctx, url, opts)
}

// SPA mount points and framework attributes.
var spaMarkers = []string{
	`<div id="root"></div>`,   // React
	`<div id="app"></div>`,    // Vue
	`<app-root></app-root>`,   // Angular
	`<div id="__next"></div>`, // Next.js
	`<div id="__nuxt"></div>`, // Nuxt.js
	`<div data-reactroot`,     // React
	`ng-app`,                  // Angular
	`v-cloak`,                 // Vue
}

// needsJavaScript reports whether a statically fetched page without tables
// appears to require JS rendering.
func needsJavaScript(html string) bool {
	lower := strings.ToLower(html)
	if strings.Contains(lower, "<table") {
		return false
	}

	for _, marker := range spaMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}

	// Very little text plus a loading notice
	if text := strings.ToLower(bodyText(html)); len(text) < 100 {
		for _, indicator := range []string{"loading", "please wait", "javascript required", "enable javascript"} {
			if strings.Contains(text, indicator) {
				return true
			}
		}
	}

	// <noscript> warnings
	if noscript := extractBetween(lower, "<noscript>", "</noscript>"); noscript != "" {
		for _, indicator := range []string{"javascript", "enable", "required", "browser"} {
			if strings.Contains(noscript, indicator) {
				return true
			}
		}
	}

	return false
}

// bodyText returns the whitespace-collapsed text of the <body>, without
// script, style and noscript content.
func bodyText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	body := doc.Find("body")
	body.Find("script, style, noscript").Remove()
	return strings.Join(strings.Fields(body.Text()), " ")
}

// extractBetween extracts content between two markers.
func extractBetween(s, start, end string) string {
	startIdx := strings.Index(s, start)
	if startIdx == -1 {
		return ""
	}
	startIdx += len(start)

	endIdx := strings.Index(s[startIdx:], end)
	if endIdx == -1 {
		return ""
	}

	return s[startIdx : startIdx+endIdx]
}

// Close releases all fetcher resources.
func (f *AutoFetcher) Close() error {
	err := f.static.Close()
	if dErr := f.dynamic.Close(); err == nil {
		err = dErr
	}
	return err
}

// Type returns the fetcher type.
func (f *AutoFetcher) Type() string {
	return "auto"
}
