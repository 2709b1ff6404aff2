package line

import (
	"strings"
	"unicode"
)

const (
	CellSeparator = '|'
	EscapeChar    = '\\'
)

// scanState is the state of the table row scanner.
type scanState uint8

const (
	stateNormal scanState = iota
	stateEscape
)

// TableCells parses the trimmed text as a pipe delimited table row.
//
// The text before the first '|' is discarded. Every following '|' ends a
// cell. Content after the last '|' is reported as a final cell only when it
// holds something other than whitespace, so "| a |" yields one cell and
// "| a | b" yields two. A line without any '|' is a single cell.
//
// Escapes: "\n" is a newline, "\|" a literal pipe, "\\" a backslash, and any
// other "\x" decodes to x. A backslash at the very end of the line has nothing
// to escape and is kept literally.
func (l *Line) TableCells() []Span {
	cells, _ := l.TableRow()
	return cells
}

// TableRow is TableCells that also reports whether the row ended with an
// unfinished escape.
func (l *Line) TableRow() (cells []Span, danglingEscape bool) {
	cells = make([]Span, 0)

	var (
		buf       strings.Builder
		state     = stateNormal
		leading   = true // ещё не встретили первый разделитель
		cellStart = 0    // индекс (в символах) первого символа текущей ячейки
		pos       = 0
	)
	for _, r := range l.trimmed {
		switch state {
		case stateEscape:
			buf.WriteRune(decodeEscape(r))
			state = stateNormal
		default:
			switch r {
			case EscapeChar:
				state = stateEscape
			case CellSeparator:
				if leading {
					leading = false
				} else {
					cells = append(cells, l.cell(buf.String(), cellStart))
				}
				buf.Reset()
				cellStart = pos + 1
			default:
				buf.WriteRune(r)
			}
		}
		pos++
	}

	// конец строки тоже завершает ячейку
	if state == stateEscape {
		danglingEscape = true
		buf.WriteRune(EscapeChar)
	}
	if rest := buf.String(); strings.TrimSpace(rest) != "" {
		cells = append(cells, l.cell(rest, cellStart))
	}
	return cells, danglingEscape
}

func decodeEscape(r rune) rune {
	if r == 'n' {
		return '\n'
	}
	// "\|" и "\\" дают сам символ, прочие экранирования просто теряют '\'
	return r
}

// cell builds the span for a raw, still untrimmed cell buffer that starts at
// code point cellStart of the trimmed text.
func (l *Line) cell(raw string, cellStart int) Span {
	offset := 0
	allSpace := true
	for _, r := range raw {
		if !unicode.IsSpace(r) {
			allSpace = false
			break
		}
		offset++
	}
	if allSpace {
		offset = 0
	}
	return Span{
		Column: l.indent + cellStart + offset + 1,
		Text:   strings.TrimSpace(raw),
	}
}

var cellEscaper = strings.NewReplacer(
	`\`, `\\`,
	`|`, `\|`,
	"\n", `\n`,
)

// EscapeCell encodes text so that TableCells decodes it back unchanged.
func EscapeCell(text string) string {
	return cellEscaper.Replace(text)
}
