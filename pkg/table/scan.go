package table

import "strings"

// span is a half-open byte range [start, end) of the scanned text.
type span struct {
	start int
	end   int
}

type regionStatus int

const (
	regionFound regionStatus = iota
	regionNone
	regionUnclosed
)

const (
	markTableOpen  = "<table"
	markTableClose = "</table>"
	markRowOpen    = "<tr"
	markRowClose   = "</tr>"
	markDataOpen   = "<td"
	markDataClose  = "</td>"
	markHeadOpen   = "<th"
	markHeadClose  = "</th>"
)

// asciiLower lowercases A-Z only, so byte offsets in the result line up with
// the input even for multi-byte text.
func asciiLower(s string) string {
	b := []byte(s)
	changed := false
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
			changed = true
		}
	}
	if !changed {
		return s
	}
	return string(b)
}

// indexMarker returns the offset of the next opening marker at or after from,
// or -1. The marker must end the tag name: "<th" does not match "<thead>".
func indexMarker(lower string, from int, marker string) int {
	for from <= len(lower) {
		i := strings.Index(lower[from:], marker)
		if i < 0 {
			return -1
		}
		at := from + i
		if endsTagName(lower, at+len(marker)) {
			return at
		}
		from = at + 1
	}
	return -1
}

func endsTagName(s string, i int) bool {
	if i >= len(s) {
		return true
	}
	switch s[i] {
	case '>', '/', ' ', '\t', '\n', '\r', '\f':
		return true
	}
	return false
}

// indexFrom is strings.Index starting at from, returning an absolute offset.
func indexFrom(s string, from int, sub string) int {
	if from > len(s) {
		return -1
	}
	i := strings.Index(s[from:], sub)
	if i < 0 {
		return -1
	}
	return from + i
}

// nextRegion finds the next open...close region at or after from. The
// returned span includes both markers. For regionUnclosed the span start is
// the dangling opening marker and end is len(lower).
func nextRegion(lower string, from int, open, close string) (span, regionStatus) {
	start := indexMarker(lower, from, open)
	if start < 0 {
		return span{}, regionNone
	}
	end := indexFrom(lower, start+len(open), close)
	if end < 0 {
		return span{start: start, end: len(lower)}, regionUnclosed
	}
	return span{start: start, end: end + len(close)}, regionFound
}

type cellKind int

const (
	cellData cellKind = iota
	cellHead
)

func (k cellKind) tag() string {
	if k == cellHead {
		return "th"
	}
	return "td"
}

func (k cellKind) closeMarker() string {
	if k == cellHead {
		return markHeadClose
	}
	return markDataClose
}

// nextCellStart returns the nearer of the next <td or <th marker.
func nextCellStart(lower string, from int) (int, cellKind, bool) {
	td := indexMarker(lower, from, markDataOpen)
	th := indexMarker(lower, from, markHeadOpen)
	switch {
	case td < 0 && th < 0:
		return 0, cellData, false
	case th < 0 || (td >= 0 && td < th):
		return td, cellData, true
	default:
		return th, cellHead, true
	}
}
