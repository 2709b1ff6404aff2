package driver

import (
	"context"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"gherkin/internal/diag"
	"gherkin/internal/dialect"
	"gherkin/internal/line"
	"gherkin/internal/source"
	"gherkin/internal/trace"
)

const (
	commentPrefix   = "#"
	tagPrefix       = "@"
	tableRowPrefix  = "|"
	docStringQuotes = `"""`
	docStringTicks  = "```"
	languageKeyword = "language"
)

// scanner classifies the lines of one file.
type scanner struct {
	file     *source.File
	reg      *dialect.Registry
	dialect  *dialect.Dialect
	reporter diag.Reporter
	tokens   []Token

	// события уровня строки пишутся в span файла
	tr     trace.Tracer
	spanID uint64

	fence       string // открытый doc string, "" снаружи
	fenceIndent int

	// текущая таблица
	tableFirst int // индекс первой строки в tokens, -1 если таблицы нет
	tableCells int
}

func newScanner(file *source.File, reg *dialect.Registry, start *dialect.Dialect, r diag.Reporter, tr trace.Tracer, spanID uint64) *scanner {
	if tr == nil {
		tr = trace.Nop
	}
	return &scanner{
		file:       file,
		reg:        reg,
		dialect:    start,
		reporter:   r,
		tr:         tr,
		spanID:     spanID,
		tokens:     make([]Token, 0, file.LineCount()),
		tableFirst: -1,
	}
}

func (s *scanner) run(ctx context.Context) error {
	for i, raw := range s.file.Lines() {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		s.scanLine(i+1, raw)
	}
	return nil
}

func (s *scanner) scanLine(num int, raw string) {
	l := line.New(raw)
	tok := Token{Line: num, Indent: l.Indent(), Text: l.Trimmed()}

	if s.fence != "" {
		if l.StartsWith(s.fence) {
			tok.Kind = KindDocStringFence
			s.fence = ""
		} else {
			tok.Kind = KindDocString
			tok.Text = l.LineText(s.fenceIndent)
		}
		s.tokens = append(s.tokens, tok)
		return
	}

	switch {
	case l.IsEmpty():
		tok.Kind = KindEmpty
	case l.StartsWith(commentPrefix):
		tok.Kind = KindComment
		if code, ok := languageMarker(l.Trimmed()); ok {
			tok.Kind = KindLanguage
			tok.Language = code
			s.switchLanguage(num, l, code)
		}
	case l.StartsWith(tagPrefix):
		tok.Kind = KindTag
		tok.Tags = l.Tags()
		s.endTable()
	case l.StartsWith(tableRowPrefix):
		tok.Kind = KindTableRow
		cells, dangling := l.TableRow()
		tok.Cells = cells
		if dangling {
			s.danglingEscape(num, l)
		}
		s.checkRow(num, l, len(cells))
	case l.StartsWith(docStringQuotes), l.StartsWith(docStringTicks):
		tok.Kind = KindDocStringFence
		s.fence = l.Trimmed()[:3]
		s.fenceIndent = l.Indent()
		s.endTable()
	default:
		tok.Kind = KindOther
		s.endTable()
	}
	s.tokens = append(s.tokens, tok)
}

// languageMarker matches "# language: xx" with free whitespace around every
// part. The code is returned as written.
func languageMarker(trimmed string) (string, bool) {
	rest := strings.TrimLeftFunc(strings.TrimPrefix(trimmed, commentPrefix), unicode.IsSpace)
	rest, ok := strings.CutPrefix(rest, languageKeyword)
	if !ok {
		return "", false
	}
	rest, ok = strings.CutPrefix(strings.TrimLeftFunc(rest, unicode.IsSpace), ":")
	if !ok {
		return "", false
	}
	code := strings.TrimSpace(rest)
	if code == "" || strings.IndexFunc(code, unicode.IsSpace) >= 0 {
		return "", false
	}
	return code, true
}

func (s *scanner) switchLanguage(num int, l *line.Line, code string) {
	pos := s.file.Pos(num, l.Indent()+1)
	d, err := s.reg.Dialect(code, &pos.LineCol)
	if err != nil {
		s.point(num, "unknown_language", code)
		diag.ReportError(s.reporter, diag.DialectUnknownLanguage, pos, err.Error()).
			WithNote(pos, "keeping language "+s.dialect.Code()).
			Emit()
		return
	}
	s.point(num, "language", s.dialect.Code()+" -> "+d.Code())
	s.dialect = d
}

func (s *scanner) danglingEscape(num int, l *line.Line) {
	col := l.Indent() + utf8.RuneCountInString(l.Trimmed())
	s.point(num, "dangling_escape", fmt.Sprintf("col %d", col))
	diag.ReportWarning(s.reporter, diag.LineDanglingEscape, s.file.Pos(num, col),
		"table row ends with an unfinished escape; the backslash is kept as is").Emit()
}

// checkRow compares the row with the first row of its table. Empty and
// comment lines do not end a table.
func (s *scanner) checkRow(num int, l *line.Line, cells int) {
	if s.tableFirst < 0 {
		s.tableFirst = len(s.tokens)
		s.tableCells = cells
		return
	}
	if cells == s.tableCells {
		return
	}
	first := s.tokens[s.tableFirst]
	s.point(num, "cell_mismatch", fmt.Sprintf("%d cells, first row %d", cells, s.tableCells))
	diag.ReportError(s.reporter, diag.TableCellCountMismatch, s.file.Pos(num, l.Indent()+1),
		fmt.Sprintf("inconsistent cell count within the table: got %d, want %d", cells, s.tableCells)).
		WithNote(s.file.Pos(first.Line, first.Indent+1), fmt.Sprintf("first row has %d cells", s.tableCells)).
		Emit()
}

// point emits a line scoped trace event; detail is prefixed with the line.
func (s *scanner) point(num int, name, detail string) {
	trace.Point(s.tr, trace.ScopeLine, name, fmt.Sprintf("line %d: %s", num, detail), s.spanID)
}

func (s *scanner) endTable() {
	s.tableFirst = -1
	s.tableCells = 0
}
