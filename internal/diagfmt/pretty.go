package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"gherkin/internal/diag"
	"gherkin/internal/source"
)

type palette struct {
	err, warn, info, note, path, gutter *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		note:   color.New(color.FgGreen),
		path:   color.New(color.Bold),
		gutter: color.New(color.FgBlue),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.path, p.gutter} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
//
//	<path>:<line>:<col>: <SEV> <CODE>: <Message>
//
// затем строку исходника с кареткой под колонкой, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) error {
	if bag == nil {
		return nil
	}
	pal := newPalette(opts.Color)
	for _, d := range bag.Items() {
		f := fs.Get(d.Primary.File)
		if _, err := fmt.Fprintf(w, "%s: %s %s: %s\n",
			pal.path.Sprint(location(f, fs, d.Primary, opts.PathMode)),
			pal.severity(d.Severity).Sprint(d.Severity),
			d.Code.ID(),
			d.Message,
		); err != nil {
			return err
		}
		if opts.ShowSource {
			if err := writeSnippet(w, f, d.Primary, pal); err != nil {
				return err
			}
		}
		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			nf := fs.Get(n.Pos.File)
			if _, err := fmt.Fprintf(w, "  %s %s: %s\n",
				pal.note.Sprint("note:"),
				location(nf, fs, n.Pos, opts.PathMode),
				n.Msg,
			); err != nil {
				return err
			}
		}
	}
	return nil
}

func location(f *source.File, fs *source.FileSet, pos source.Position, mode PathMode) string {
	path := formatPath(f, fs, mode)
	if pos.IsZero() {
		return path
	}
	return fmt.Sprintf("%s:%s", path, pos.LineCol)
}

// writeSnippet prints the source line and a caret under pos.Col. Tabs before
// the column are kept so that the caret lines up.
func writeSnippet(w io.Writer, f *source.File, pos source.Position, pal palette) error {
	if f == nil || pos.IsZero() {
		return nil
	}
	text := f.GetLine(pos.Line)
	num := fmt.Sprintf("%d", pos.Line)
	pad := strings.Repeat(" ", len(num))

	var caret strings.Builder
	col := 1
	for _, r := range text {
		if col >= int(pos.Col) {
			break
		}
		if r == '\t' {
			caret.WriteByte('\t')
		} else {
			caret.WriteByte(' ')
		}
		col++
	}
	caret.WriteByte('^')

	_, err := fmt.Fprintf(w, " %s %s %s\n %s %s %s\n",
		pal.gutter.Sprint(num), pal.gutter.Sprint("|"), text,
		pad, pal.gutter.Sprint("|"), pal.severity(diag.SevError).Sprint(caret.String()),
	)
	return err
}
