// Package fetcher retrieves HTML documents from URLs, files or stdin.
// Implement the Fetcher interface to plug in other retrieval strategies.
package fetcher

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Fetcher abstracts document retrieval.
type Fetcher interface {
	// Fetch retrieves the document identified by source.
	Fetch(ctx context.Context, source string, opts Options) (Content, error)

	// Close releases any resources (browser instances, etc.).
	Close() error

	// Type returns a string identifying the fetcher type (e.g., "static", "dynamic").
	Type() string
}

// Options controls a single fetch.
type Options struct {
	UserAgent       string
	Timeout         time.Duration
	WaitForSelector string        // CSS selector to wait for (dynamic fetchers)
	WaitDuration    time.Duration // Additional wait after load (dynamic fetchers)
	Headers         map[string]string
}

// Content is a fetched document.
type Content struct {
	Source      string
	HTML        string
	Title       string
	StatusCode  int
	ContentType string
	FetchedAt   time.Time
}

// Error types for distinguishing failure reasons.
// Check with errors.Is(err, fetcher.ErrUnexpectedStatus).
var (
	// ErrUnexpectedStatus indicates the server answered with a status other than 200.
	ErrUnexpectedStatus = errors.New("unexpected HTTP status")
	// ErrBodyTooLarge indicates the document exceeded the configured size limit.
	ErrBodyTooLarge = errors.New("document exceeds size limit")
	// ErrEmptySource indicates no URL or path was given.
	ErrEmptySource = errors.New("empty source")
)

// Chrome user agent for better compatibility
const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

const defaultTimeout = 30 * time.Second

// IsURL reports whether source is an http or https URL.
func IsURL(source string) bool {
	s := strings.ToLower(strings.TrimSpace(source))
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// pageTitle returns the document <title>, or "" if the document has none
// or cannot be parsed.
func pageTitle(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	return strings.Join(strings.Fields(doc.Find("title").First().Text()), " ")
}

// coalesce returns the first non-empty string.
func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
