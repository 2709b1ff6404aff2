package fuzztests

import (
	"strings"
	"testing"
	"unicode/utf8"

	"gherkin/internal/line"
)

const maxFuzzInput = 1 << 16 // 64 KiB

func FuzzTableRow(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		if len(input) > maxFuzzInput {
			input = input[:maxFuzzInput]
		}
		text, _, _ := strings.Cut(string(input), "\n")
		l := line.New(text)

		cells, _ := l.TableRow()
		prev := l.Indent()
		for _, c := range cells {
			if c.Column <= prev {
				t.Fatalf("cell %s does not follow column %d in %q", c, prev, text)
			}
			prev = c.Column
		}
		for _, tag := range l.Tags() {
			if tag.Text == "" {
				t.Fatalf("empty tag in %q", text)
			}
		}
	})
}

// FuzzEscapeCell checks that any valid cell text survives EscapeCell and
// TableCells.
func FuzzEscapeCell(f *testing.F) {
	for _, s := range []string{"", "a", "a|b", `back\slash`, "multi\nline", " padded ", `\`, "Zoë"} {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, text string) {
		if !utf8.ValidString(text) {
			t.Skip()
		}
		cells := line.New("| " + line.EscapeCell(text) + " |").TableCells()
		if len(cells) != 1 {
			t.Fatalf("%q: %d cells", text, len(cells))
		}
		if want := strings.TrimSpace(text); cells[0].Text != want {
			t.Fatalf("round trip of %q = %q, want %q", text, cells[0].Text, want)
		}
	})
}
