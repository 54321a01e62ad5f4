package table

import (
	"strings"

	"golang.org/x/net/html"
)

// Clean converts raw cell markup to a single line of text: nested tags are
// dropped with their angle brackets, newlines, carriage returns and tabs
// become spaces, whitespace runs collapse to one space and the result is
// trimmed. Bytes are copied as-is, so invalid UTF-8 survives unchanged.
// Clean(Clean(s)) == Clean(s).
func Clean(raw string) string {
	var sb strings.Builder
	sb.Grow(len(raw))

	inTag := false
	for i := 0; i < len(raw); i++ {
		switch b := raw[i]; {
		case b == '<':
			inTag = true
		case b == '>':
			inTag = false
		case inTag:
		case b == '\n', b == '\r', b == '\t':
			sb.WriteByte(' ')
		default:
			sb.WriteByte(b)
		}
	}
	return collapseSpace(sb.String())
}

// DecodeEntities unescapes HTML character references in already cleaned
// text and normalises the whitespace they may introduce (&nbsp;, &#10;).
func DecodeEntities(text string) string {
	if !strings.ContainsRune(text, '&') {
		return text
	}
	return collapseSpace(html.UnescapeString(text))
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
