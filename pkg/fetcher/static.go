package fetcher

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gocolly/colly/v2"

	"github.com/jmylchreest/tablecsv/internal/logger"
)

// StaticConfig holds configuration for the static fetcher.
type StaticConfig struct {
	UserAgent string
	Timeout   time.Duration
	// MaxBodySize limits the response body in bytes. Zero means unlimited.
	MaxBodySize int
}

// DefaultStaticConfig returns sensible defaults.
func DefaultStaticConfig() StaticConfig {
	return StaticConfig{
		UserAgent: defaultUserAgent,
		Timeout:   defaultTimeout,
	}
}

// StaticFetcher performs a single HTTP GET per document using Colly.
// Only a 200 response counts as success.
type StaticFetcher struct {
	config StaticConfig
}

// NewStatic creates a new static fetcher.
func NewStatic(cfg StaticConfig) *StaticFetcher {
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultStaticConfig().UserAgent
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultStaticConfig().Timeout
	}
	return &StaticFetcher{config: cfg}
}

// Fetch retrieves a URL. Transport errors, non-200 responses and bodies
// over the size limit are returned as errors naming the URL.
func (f *StaticFetcher) Fetch(ctx context.Context, targetURL string, opts Options) (Content, error) {
	logger.Debug("static fetch starting", "url", targetURL)

	result := Content{
		Source:    targetURL,
		FetchedAt: time.Now(),
	}
	if targetURL == "" {
		return result, ErrEmptySource
	}

	userAgent := coalesce(opts.UserAgent, f.config.UserAgent)
	c := colly.NewCollector(
		colly.UserAgent(userAgent),
		colly.AllowURLRevisit(),
		colly.StdlibContext(ctx),
	)
	// Non-2xx bodies are delivered to OnResponse so the status check below
	// sees every response.
	c.ParseHTTPErrorResponse = true
	if f.config.MaxBodySize > 0 {
		// One byte over the limit tells a full body from a truncated one.
		c.MaxBodySize = f.config.MaxBodySize + 1
	} else {
		c.MaxBodySize = 0
	}

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = f.config.Timeout
	}
	c.SetRequestTimeout(timeout)
	logger.Debug("static fetch configured", "user_agent", userAgent, "timeout", timeout)

	if len(opts.Headers) > 0 {
		c.OnRequest(func(r *colly.Request) {
			for k, v := range opts.Headers {
				r.Headers.Set(k, v)
			}
		})
	}

	var body []byte
	c.OnResponse(func(r *colly.Response) {
		result.StatusCode = r.StatusCode
		result.ContentType = r.Headers.Get("Content-Type")
		body = r.Body
		logger.Debug("static fetch response received",
			"status", r.StatusCode,
			"content_type", result.ContentType,
			"body_size", len(r.Body))
	})

	var fetchErr error
	c.OnError(func(r *colly.Response, err error) {
		if r != nil {
			result.StatusCode = r.StatusCode
		}
		fetchErr = err
		logger.Debug("static fetch error", "status", result.StatusCode, "error", err)
	})

	if err := c.Visit(targetURL); err != nil {
		return result, fmt.Errorf("failed to make HTTP request to %s: %w", targetURL, err)
	}
	if fetchErr != nil {
		return result, fmt.Errorf("failed to make HTTP request to %s: %w", targetURL, fetchErr)
	}

	if result.StatusCode != http.StatusOK {
		return result, fmt.Errorf("%w: %s returned %d %s", ErrUnexpectedStatus,
			targetURL, result.StatusCode, http.StatusText(result.StatusCode))
	}
	if f.config.MaxBodySize > 0 && len(body) > f.config.MaxBodySize {
		return result, fmt.Errorf("%w: %s is larger than %d bytes", ErrBodyTooLarge, targetURL, f.config.MaxBodySize)
	}

	result.HTML = string(body)
	result.Title = pageTitle(result.HTML)

	logger.Debug("static fetch complete", "url", targetURL, "html_size", len(result.HTML), "title", result.Title)
	return result, nil
}

// Close releases resources.
func (f *StaticFetcher) Close() error {
	return nil
}

// Type returns the fetcher type.
func (f *StaticFetcher) Type() string {
	return "static"
}
