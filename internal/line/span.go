package line

import "fmt"

// Span is a piece of a line together with the column where its content begins.
type Span struct {
	Column int    // 1-based, in code points
	Text   string // tag text or decoded table cell
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%q", s.Column, s.Text)
}
