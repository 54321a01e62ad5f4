package table

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
)

// Scope narrows doc to the outer HTML of the elements matching a CSS
// selector, concatenated in document order. Matches nested inside another
// match are skipped so each table appears once. An empty selector returns doc
// unchanged. The selector should match tables or their containers; matching
// rows or cells drops the enclosing <table> markers.
func Scope(doc, selector string) (string, error) {
	selector = strings.TrimSpace(selector)
	if selector == "" {
		return doc, nil
	}

	matcher, err := cascadia.Compile(selector)
	if err != nil {
		return "", fmt.Errorf("invalid selector %q: %w", selector, err)
	}

	d, err := goquery.NewDocumentFromReader(strings.NewReader(doc))
	if err != nil {
		return "", fmt.Errorf("failed to parse document: %w", err)
	}

	var sb strings.Builder
	var renderErr error
	d.FindMatcher(matcher).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if s.ParentsMatcher(matcher).Length() > 0 {
			return true
		}
		h, err := goquery.OuterHtml(s)
		if err != nil {
			renderErr = err
			return false
		}
		sb.WriteString(h)
		sb.WriteByte('\n')
		return true
	})
	if renderErr != nil {
		return "", fmt.Errorf("failed to render selection: %w", renderErr)
	}
	return sb.String(), nil
}
