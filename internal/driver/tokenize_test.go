package driver

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"gherkin/internal/diag"
	"gherkin/internal/line"
	"gherkin/internal/source"
)

const sample = "# language: fr\n" +
	"@smoke @fast\n" +
	"Fonctionnalité: connexion\n" +
	"  Scénario: ok\n" +
	"    Soit des comptes\n" +
	"      | a | b |\n" +
	"      | c | d\\|e |\n" +
	"      # commentaire\n" +
	"      | f |\n" +
	"    \"\"\"\n" +
	"    | not a table\n" +
	"    @notatag\n" +
	"    \"\"\"\n" +
	"  | x \\\n" +
	"# language: zz\n"

func tokenizeString(t *testing.T, content string, opts Options) *TokenizeResult {
	t.Helper()
	fs := source.NewFileSetWithBase("/work")
	id := fs.AddVirtual("/work/sample.feature", []byte(content))
	res, err := TokenizeFile(context.Background(), fs, id, opts)
	if err != nil {
		t.Fatalf("TokenizeFile: %v", err)
	}
	return res
}

func TestTokenize_Kinds(t *testing.T) {
	res := tokenizeString(t, sample, Options{})

	want := []Kind{
		KindLanguage, KindTag, KindOther, KindOther, KindOther,
		KindTableRow, KindTableRow, KindComment, KindTableRow,
		KindDocStringFence, KindDocString, KindDocString, KindDocStringFence,
		KindTableRow, KindLanguage,
	}
	if len(res.Tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(res.Tokens), len(want))
	}
	for i, tok := range res.Tokens {
		if tok.Kind != want[i] {
			t.Errorf("line %d: kind %s, want %s", tok.Line, tok.Kind, want[i])
		}
		if tok.Line != i+1 {
			t.Errorf("token %d has line %d", i, tok.Line)
		}
	}
	if res.Language != "fr" {
		t.Fatalf("Language = %q, want fr", res.Language)
	}
}

func TestTokenize_Spans(t *testing.T) {
	res := tokenizeString(t, sample, Options{})

	if got := res.Tokens[1].Tags; !slices.Equal(got, []line.Span{{Column: 1, Text: "@smoke"}, {Column: 8, Text: "@fast"}}) {
		t.Fatalf("tags = %v", got)
	}
	if got := res.Tokens[5].Cells; !slices.Equal(got, []line.Span{{Column: 9, Text: "a"}, {Column: 13, Text: "b"}}) {
		t.Fatalf("row 6 cells = %v", got)
	}
	if got := res.Tokens[6].Cells; len(got) != 2 || got[1].Text != "d|e" {
		t.Fatalf("row 7 cells = %v", got)
	}
	if res.Tokens[10].Text != "| not a table" || res.Tokens[10].Cells != nil {
		t.Fatalf("doc string line was interpreted: %+v", res.Tokens[10])
	}
	if res.Tokens[11].Tags != nil {
		t.Fatal("doc string line must not carry tags")
	}
	if got := res.Tokens[13].Cells; !slices.Equal(got, []line.Span{{Column: 5, Text: `x \`}}) {
		t.Fatalf("dangling row cells = %v", got)
	}
}

func TestTokenize_Diagnostics(t *testing.T) {
	res := tokenizeString(t, sample, Options{})

	got := diag.FormatShortDiagnostics(res.Bag.Items(), res.FileSet, true)
	want := strings.Join([]string{
		"note LIN1002 sample.feature:6:7 first row has 2 cells",
		"error LIN1002 sample.feature:9:7 inconsistent cell count within the table: got 1, want 2",
		"warning LIN1001 sample.feature:14:7 table row ends with an unfinished escape; the backslash is kept as is",
		"error DLC2001 sample.feature:15:1 (15:1): language not supported: zz",
		"note DLC2001 sample.feature:15:1 keeping language fr",
	}, "\n")
	if got != want {
		t.Fatalf("diagnostics:\nwant:\n%s\n\ngot:\n%s", want, got)
	}
}

func TestTokenize_TableBlocks(t *testing.T) {
	content := "| a | b |\n\n| c | d |\nGiven x\n| e |\n"
	res := tokenizeString(t, content, Options{})
	if res.Bag.Len() != 0 {
		t.Fatalf("separate tables must not be compared: %v", res.Bag.Items())
	}

	res = tokenizeString(t, "| a | b |\n| c |\n| d | e | f |\n", Options{})
	if res.Bag.Len() != 2 {
		t.Fatalf("want one mismatch per bad row, got %d", res.Bag.Len())
	}
}

func TestTokenize_LanguageMarker(t *testing.T) {
	tests := []struct {
		text string
		code string
		ok   bool
	}{
		{"# language: de", "de", true},
		{"#language:zh-CN", "zh-CN", true},
		{"#   language :  es  ", "es", true},
		{"# language:", "", false},
		{"# language: en gb", "", false},
		{"# languages: en", "", false},
		{"# just a comment", "", false},
	}
	for _, tt := range tests {
		code, ok := languageMarker(tt.text)
		if code != tt.code || ok != tt.ok {
			t.Errorf("languageMarker(%q) = %q, %v; want %q, %v", tt.text, code, ok, tt.code, tt.ok)
		}
	}

	res := tokenizeString(t, "# language: zh-CN\n", Options{})
	if res.Language != "zh-cn" || res.Tokens[0].Language != "zh-CN" {
		t.Fatalf("language = %q, marker = %q", res.Language, res.Tokens[0].Language)
	}

	for _, code := range []string{"it", "pt", "pl", "sv", "sr-Cyrl"} {
		res := tokenizeString(t, "# language: "+code+"\n", Options{})
		if res.Bag.Len() != 0 || res.Language != strings.ToLower(code) {
			t.Errorf("%s: language %q, %d diagnostics", code, res.Language, res.Bag.Len())
		}
	}
}

func TestTokenize_Options(t *testing.T) {
	res := tokenizeString(t, "Feature: x\n", Options{Language: "de"})
	if res.Language != "de" {
		t.Fatalf("Language = %q, want de", res.Language)
	}

	fs := source.NewFileSet()
	id := fs.AddVirtual("x.feature", nil)
	if _, err := TokenizeFile(context.Background(), fs, id, Options{Language: "zz"}); err == nil {
		t.Fatal("unknown default language must fail")
	}

	res = tokenizeString(t, "| a |\n| a | b |\n| a | b | c |\n", Options{MaxDiagnostics: 1, Timings: true})
	items := res.Bag.Items()
	if len(items) != 2 || items[1].Code != diag.ObsTimings || len(items[1].Notes) != 1 {
		t.Fatalf("limit or timings not applied: %+v", items)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := TokenizeFile(ctx, fs, id, Options{}); err == nil {
		t.Fatal("cancelled context must fail")
	}
}

func TestTokenize_FromDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "crlf.feature")
	if err := os.WriteFile(path, []byte("\xEF\xBB\xBFFeature: x\r\n  | a |\r\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	res, err := Tokenize(context.Background(), path, Options{})
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if len(res.Tokens) != 2 || res.Tokens[0].Text != "Feature: x" || res.Tokens[1].Cells[0].Text != "a" {
		t.Fatalf("unexpected tokens %+v", res.Tokens)
	}
	if res.File.Flags&source.FileHadBOM == 0 || res.File.Flags&source.FileNormalizedCRLF == 0 {
		t.Fatalf("flags = %b", res.File.Flags)
	}

	if _, err := Tokenize(context.Background(), filepath.Join(dir, "missing.feature"), Options{}); err == nil {
		t.Fatal("missing file must fail")
	}
}
