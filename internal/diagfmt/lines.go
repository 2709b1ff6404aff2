package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gherkin/internal/driver"
	"gherkin/internal/line"
)

// LineJSON is one classified line.
type LineJSON struct {
	Line     int         `json:"line"`
	Kind     string      `json:"kind"`
	Indent   int         `json:"indent"`
	Text     string      `json:"text"`
	Language string      `json:"language,omitempty"`
	Tags     []line.Span `json:"tags,omitempty"`
	Cells    []line.Span `json:"cells,omitempty"`
}

type FileJSON struct {
	Path        string           `json:"path"`
	Language    string           `json:"language,omitempty"`
	Cached      bool             `json:"cached,omitempty"`
	Lines       []LineJSON       `json:"lines"`
	Diagnostics []DiagnosticJSON `json:"diagnostics,omitempty"`
}

type LinesOutput struct {
	Files []FileJSON `json:"files"`
}

// FormatLinesPretty prints one row per classified line:
//
//	  6: row       indent=6  [9:"a" 13:"b"]
func FormatLinesPretty(w io.Writer, res *driver.TokenizeResult, mode PathMode) error {
	if _, err := fmt.Fprintf(w, "%s (language %s)\n", formatPath(res.File, res.FileSet, mode), res.Language); err != nil {
		return err
	}
	for _, tok := range res.Tokens {
		var sb strings.Builder
		fmt.Fprintf(&sb, "%4d: %-9s indent=%-3d", tok.Line, tok.Kind, tok.Indent)
		switch tok.Kind {
		case driver.KindTag:
			writeSpans(&sb, tok.Tags)
		case driver.KindTableRow:
			writeSpans(&sb, tok.Cells)
		case driver.KindLanguage:
			fmt.Fprintf(&sb, " %s", tok.Language)
		case driver.KindEmpty:
		default:
			fmt.Fprintf(&sb, " %q", tok.Text)
		}
		sb.WriteByte('\n')
		if _, err := io.WriteString(w, sb.String()); err != nil {
			return err
		}
	}
	return nil
}

func writeSpans(sb *strings.Builder, spans []line.Span) {
	sb.WriteString(" [")
	for i, s := range spans {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(s.String())
	}
	sb.WriteByte(']')
}

// BuildLinesOutput converts results for JSON output.
func BuildLinesOutput(results []*driver.TokenizeResult, opts JSONOpts) LinesOutput {
	out := LinesOutput{Files: make([]FileJSON, 0, len(results))}
	for _, res := range results {
		if res == nil {
			continue
		}
		fj := FileJSON{
			Path:        formatPath(res.File, res.FileSet, opts.PathMode),
			Language:    res.Language,
			Cached:      res.Cached,
			Lines:       make([]LineJSON, len(res.Tokens)),
			Diagnostics: BuildDiagnostics(res.Bag, res.FileSet, opts),
		}
		for i, tok := range res.Tokens {
			fj.Lines[i] = LineJSON{
				Line:     tok.Line,
				Kind:     tok.Kind.String(),
				Indent:   tok.Indent,
				Text:     tok.Text,
				Language: tok.Language,
				Tags:     tok.Tags,
				Cells:    tok.Cells,
			}
		}
		out.Files = append(out.Files, fj)
	}
	return out
}

// FormatLinesJSON writes results as one indented LinesOutput document.
func FormatLinesJSON(w io.Writer, results []*driver.TokenizeResult, opts JSONOpts) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildLinesOutput(results, opts))
}
