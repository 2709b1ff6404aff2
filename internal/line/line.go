package line

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// TitleKeywordSeparator follows a title keyword such as "Feature".
const TitleKeywordSeparator = ": "

// Line is one physical line of source text without its terminator.
type Line struct {
	raw     string
	trimmed string
	indent  int
}

// New computes the trimmed text and indentation of text.
func New(text string) *Line {
	trimmed := strings.TrimLeftFunc(text, unicode.IsSpace)
	return &Line{
		raw:     text,
		trimmed: trimmed,
		// отступ в символах, а не в байтах
		indent: utf8.RuneCountInString(text[:len(text)-len(trimmed)]),
	}
}

// Raw returns the line exactly as it was given to New.
func (l *Line) Raw() string { return l.raw }

// Trimmed returns the line with leading whitespace removed.
func (l *Line) Trimmed() string { return l.trimmed }

// Indent returns the number of leading whitespace code points.
func (l *Line) Indent() int { return l.indent }

// LineText removes indentToRemove leading code points from the raw line and
// keeps any whitespace beyond that. A negative value, or one larger than the
// indentation, yields the fully trimmed text.
func (l *Line) LineText(indentToRemove int) string {
	if indentToRemove < 0 || indentToRemove > l.indent {
		return l.trimmed
	}
	return l.raw[runeOffset(l.raw, indentToRemove):]
}

// IsEmpty reports whether the line holds only whitespace.
func (l *Line) IsEmpty() bool { return len(l.trimmed) == 0 }

// StartsWith reports whether the trimmed text begins with prefix.
func (l *Line) StartsWith(prefix string) bool {
	return strings.HasPrefix(l.trimmed, prefix)
}

// RestTrimmed returns the trimmed text after the first length bytes, with
// surrounding whitespace removed. Callers normally pass len(keyword).
func (l *Line) RestTrimmed(length int) string {
	switch {
	case length <= 0:
		return strings.TrimSpace(l.trimmed)
	case length >= len(l.trimmed):
		return ""
	}
	return strings.TrimSpace(l.trimmed[length:])
}

// StartsWithTitleKeyword reports whether the trimmed text is keyword followed
// immediately by TitleKeywordSeparator.
func (l *Line) StartsWithTitleKeyword(keyword string) bool {
	return len(l.trimmed) > len(keyword) &&
		strings.HasPrefix(l.trimmed, keyword) &&
		strings.HasPrefix(l.trimmed[len(keyword):], TitleKeywordSeparator)
}

// Tags splits the trimmed text on runs of whitespace.
func (l *Line) Tags() []Span {
	spans := make([]Span, 0)
	if l.IsEmpty() {
		return spans
	}

	start := -1 // байтовое начало текущего токена, -1 вне токена
	startCol := 0
	col := 0
	for i, r := range l.trimmed {
		switch {
		case unicode.IsSpace(r):
			if start >= 0 {
				spans = append(spans, Span{Column: l.indent + startCol + 1, Text: l.trimmed[start:i]})
				start = -1
			}
		case start < 0:
			start = i
			startCol = col
		}
		col++
	}
	if start >= 0 {
		spans = append(spans, Span{Column: l.indent + startCol + 1, Text: l.trimmed[start:]})
	}
	return spans
}

// runeOffset returns the byte offset of the n-th code point of s.
func runeOffset(s string, n int) int {
	off := 0
	for n > 0 && off < len(s) {
		_, sz := utf8.DecodeRuneInString(s[off:])
		off += sz
		n--
	}
	return off
}
