package testkit

import (
	"fmt"
	"strings"
	"unicode"

	"gherkin/internal/driver"
	"gherkin/internal/line"
)

// CheckTokenInvariants runs the structural checks every tokenize result must
// pass, whatever the input:
// 1) one token per physical line, numbered from 1
// 2) tag and cell spans are trimmed, non-overlapping and ordered by column
// 3) every diagnostic points into the file
func CheckTokenInvariants(res *driver.TokenizeResult) error {
	if res == nil || res.File == nil || res.Bag == nil {
		return fmt.Errorf("incomplete result")
	}
	f := res.File

	// 1) one token per line
	if got, want := len(res.Tokens), f.LineCount(); got != want {
		return fmt.Errorf("token count %d, file has %d lines", got, want)
	}
	for i, tok := range res.Tokens {
		if tok.Line != i+1 {
			return fmt.Errorf("token %d has line %d", i, tok.Line)
		}
		if tok.Kind.String() == "unknown" {
			return fmt.Errorf("line %d: invalid kind %d", tok.Line, tok.Kind)
		}
		// 2) spans
		if err := checkSpans(tok.Tags, tok.Indent, true); err != nil {
			return fmt.Errorf("line %d tags: %w", tok.Line, err)
		}
		if err := checkSpans(tok.Cells, tok.Indent, false); err != nil {
			return fmt.Errorf("line %d cells: %w", tok.Line, err)
		}
		if tok.Kind != driver.KindTag && len(tok.Tags) > 0 {
			return fmt.Errorf("line %d: %s line carries tags", tok.Line, tok.Kind)
		}
		if tok.Kind != driver.KindTableRow && len(tok.Cells) > 0 {
			return fmt.Errorf("line %d: %s line carries cells", tok.Line, tok.Kind)
		}
	}

	// 3) diagnostics
	maxLine := max(f.LineCount(), 1)
	for _, d := range res.Bag.Items() {
		if d.Primary.IsZero() {
			continue
		}
		if d.Primary.File != f.ID {
			return fmt.Errorf("%s points to file %d, want %d", d.Code.ID(), d.Primary.File, f.ID)
		}
		if d.Primary.Line == 0 || int(d.Primary.Line) > maxLine || d.Primary.Col == 0 {
			return fmt.Errorf("%s at %s is outside the file", d.Code.ID(), d.Primary.LineCol)
		}
	}
	return nil
}

func checkSpans(spans []line.Span, indent int, tags bool) error {
	prev := indent
	for _, sp := range spans {
		if sp.Column <= prev {
			return fmt.Errorf("span %s does not follow column %d", sp, prev)
		}
		if sp.Text != strings.TrimSpace(sp.Text) {
			return fmt.Errorf("span %s is not trimmed", sp)
		}
		if tags && (sp.Text == "" || strings.IndexFunc(sp.Text, unicode.IsSpace) >= 0) {
			return fmt.Errorf("tag %s is empty or has whitespace", sp)
		}
		prev = sp.Column
	}
	return nil
}
