// Package tablefmt aligns the data tables of feature files.
package tablefmt

import (
	"errors"
	"strings"

	"github.com/mattn/go-runewidth"

	"gherkin/internal/driver"
	"gherkin/internal/line"
	"gherkin/internal/source"
)

// ErrNormalizedText is returned by CheckRewritable for files whose text was
// changed beyond line endings on load.
var ErrNormalizedText = errors.New("file was NFC-normalized on load; rewriting it would change text outside tables")

// CheckRewritable reports whether FormatFile output can replace f on disk
// without touching anything but table rows. BOM and CRLF are restored by
// FormatFile; NFC normalization cannot be undone.
func CheckRewritable(f *source.File) error {
	if f.Flags&source.FileNormalizedNFC != 0 {
		return ErrNormalizedText
	}
	return nil
}

// ambiguous-width runes count as narrow regardless of the locale
var width = func() *runewidth.Condition {
	c := runewidth.NewCondition()
	c.EastAsianWidth = false
	return c
}()

// Format renders rows with every column padded to its widest cell. Width is
// measured in terminal cells, so wide CJK characters count double. Cell text
// is escaped back with line.EscapeCell. Rows shorter than the table keep
// their own cell count.
func Format(rows [][]line.Span) []string {
	escaped := make([][]string, len(rows))
	var widths []int
	for i, row := range rows {
		escaped[i] = make([]string, len(row))
		for j, cell := range row {
			text := line.EscapeCell(cell.Text)
			escaped[i][j] = text
			w := width.StringWidth(text)
			if j == len(widths) {
				widths = append(widths, w)
			} else if w > widths[j] {
				widths[j] = w
			}
		}
	}

	out := make([]string, len(rows))
	var sb strings.Builder
	for i, row := range escaped {
		sb.Reset()
		sb.WriteByte('|')
		for j, text := range row {
			sb.WriteByte(' ')
			sb.WriteString(width.FillRight(text, widths[j]))
			sb.WriteString(" |")
		}
		out[i] = sb.String()
	}
	return out
}

// FormatFile rewrites every table of a tokenized file and reports whether
// anything changed. Each table keeps the leading whitespace of its first row.
// Doc strings are left alone. The output gets back the BOM and CRLF line
// endings the file had on disk.
func FormatFile(res *driver.TokenizeResult) ([]byte, bool) {
	content := res.File.Content
	lines := res.File.Lines()

	var (
		block  []int // номера строк (0-based) текущей таблицы
		rows   [][]line.Span
		indent string
	)
	flush := func() {
		if len(block) == 0 {
			return
		}
		for k, text := range Format(rows) {
			lines[block[k]] = indent + text
		}
		block, rows = block[:0], rows[:0]
	}

	for _, tok := range res.Tokens {
		switch tok.Kind {
		case driver.KindTableRow:
			idx := tok.Line - 1
			if len(block) == 0 {
				raw := lines[idx]
				indent = raw[:len(raw)-len(line.New(raw).Trimmed())]
			}
			block = append(block, idx)
			rows = append(rows, tok.Cells)
		case driver.KindEmpty, driver.KindComment, driver.KindLanguage:
			// не разрывают таблицу
		default:
			flush()
		}
	}
	flush()

	out := strings.Join(lines, "\n")
	if len(content) > 0 && content[len(content)-1] == '\n' {
		out += "\n"
	}
	return restoreEncoding(out, res.File.Flags), out != string(content)
}

const bom = "\xEF\xBB\xBF"

// restoreEncoding undoes the BOM and CRLF normalization done by source on load.
func restoreEncoding(out string, flags source.FileFlags) []byte {
	if flags&source.FileNormalizedCRLF != 0 {
		out = strings.ReplaceAll(out, "\n", "\r\n")
	}
	if flags&source.FileHadBOM != 0 {
		out = bom + out
	}
	return []byte(out)
}
