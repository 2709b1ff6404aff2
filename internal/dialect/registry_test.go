package dialect_test

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"

	"gherkin/internal/dialect"
	"gherkin/internal/source"
)

func TestBuiltin_Languages(t *testing.T) {
	reg, err := dialect.Builtin()
	if err != nil {
		t.Fatalf("Builtin: %v", err)
	}
	langs := reg.Languages()
	if !slices.IsSorted(langs) {
		t.Fatalf("languages not sorted: %v", langs)
	}
	if len(slices.Compact(slices.Clone(langs))) != len(langs) {
		t.Fatalf("languages contain duplicates: %v", langs)
	}
	for _, want := range []string{"en", "fr", "zh-cn"} {
		if !slices.Contains(langs, want) {
			t.Fatalf("languages %v lack %q", langs, want)
		}
	}
	for _, code := range langs {
		if code != strings.ToLower(code) {
			t.Fatalf("code %q is not lowercase", code)
		}
	}

	// копия не должна влиять на реестр
	langs[0] = "mutated"
	if reg.Languages()[0] == "mutated" {
		t.Fatal("Languages must return a copy")
	}
	if reg.Len() != len(langs) {
		t.Fatalf("Len = %d, want %d", reg.Len(), len(langs))
	}
}

func TestBuiltin_FullLanguageSet(t *testing.T) {
	reg := dialect.MustBuiltin()
	if reg.Len() < 79 {
		t.Fatalf("builtin registry has %d languages, want at least 79", reg.Len())
	}
	tests := []struct {
		code    string
		feature string
		given   string
	}{
		{"it", "Funzionalità", "Dato "},
		{"pt", "Funcionalidade", "Dado "},
		{"pl", "Właściwość", "Zakładając "},
		{"sv", "Egenskap", "Givet "},
		{"tlh", "Qap", "ghu' noblu' "},
		{"en-Scouse", "Feature", "Givun "},
		{"sr-Latn", "Funkcionalnost", "Za dato "},
	}
	for _, tt := range tests {
		d, err := reg.Dialect(tt.code, nil)
		if err != nil {
			t.Errorf("Dialect(%s): %v", tt.code, err)
			continue
		}
		if !slices.Contains(d.FeatureKeywords(), tt.feature) || !slices.Contains(d.GivenKeywords(), tt.given) {
			t.Errorf("%s: feature %q given %q", tt.code, d.FeatureKeywords(), d.GivenKeywords())
		}
	}
}

func TestRegistry_Dialect(t *testing.T) {
	reg := dialect.MustBuiltin()

	en, err := reg.Dialect("en", nil)
	if err != nil {
		t.Fatalf("Dialect(en): %v", err)
	}
	if en.Code() != "en" || en.Name() != "English" || en.Native() != "English" {
		t.Fatalf("unexpected dialect metadata: %q %q %q", en.Code(), en.Name(), en.Native())
	}
	if got := en.FeatureKeywords(); !slices.Equal(got, []string{"Feature", "Business Need", "Ability"}) {
		t.Fatalf("feature keywords = %q", got)
	}

	zh, err := reg.Dialect("zh-CN", nil)
	if err != nil {
		t.Fatalf("Dialect(zh-CN): %v", err)
	}
	if zh.Code() != "zh-cn" {
		t.Fatalf("code = %q, want zh-cn", zh.Code())
	}
}

func TestRegistry_NoSuchLanguage(t *testing.T) {
	reg := dialect.MustBuiltin()

	_, err := reg.Dialect("zz", nil)
	if !errors.Is(err, dialect.ErrNoSuchLanguage) {
		t.Fatalf("err = %v, want ErrNoSuchLanguage", err)
	}
	var nsl *dialect.NoSuchLanguageError
	if !errors.As(err, &nsl) {
		t.Fatalf("err = %T, want *NoSuchLanguageError", err)
	}
	if nsl.Code != "zz" || nsl.Location != nil {
		t.Fatalf("unexpected error fields: %+v", nsl)
	}

	loc := &source.LineCol{Line: 1, Col: 13}
	_, err = reg.Dialect("Klingon", loc)
	if !errors.As(err, &nsl) || nsl.Location != loc || nsl.Code != "Klingon" {
		t.Fatalf("location not threaded through: %v", err)
	}
	if err.Error() != "(1:13): language not supported: Klingon" {
		t.Fatalf("message = %q", err.Error())
	}
}

func TestRegistry_DefaultDialect(t *testing.T) {
	d, err := dialect.MustBuiltin().DefaultDialect()
	if err != nil || d.Code() != "en" {
		t.Fatalf("DefaultDialect = %v, %v", d, err)
	}

	reg, err := dialect.Builtin(dialect.WithDefault("FR"))
	if err != nil {
		t.Fatalf("Builtin: %v", err)
	}
	if d, err = reg.DefaultDialect(); err != nil || d.Code() != "fr" {
		t.Fatalf("DefaultDialect with FR = %v, %v", d, err)
	}

	reg, err = dialect.Builtin(dialect.WithDefault("xx"))
	if err != nil {
		t.Fatalf("Builtin: %v", err)
	}
	if _, err = reg.DefaultDialect(); !errors.Is(err, dialect.ErrNoSuchLanguage) {
		t.Fatalf("missing default must fail lookup, got %v", err)
	}
}

func TestDialect_StepKeywords(t *testing.T) {
	en, _ := dialect.MustBuiltin().Dialect("en", nil)
	want := []string{"* ", "Given ", "When ", "Then ", "And ", "But "}
	if got := en.StepKeywords(); !slices.Equal(got, want) {
		t.Fatalf("StepKeywords = %q, want %q", got, want)
	}

	kws := en.Keywords(dialect.Given)
	kws[0] = "mutated"
	if en.Keywords(dialect.Given)[0] != "* " {
		t.Fatal("Keywords must return a copy")
	}
	if en.Keywords("unknown") != nil || en.Has("unknown") {
		t.Fatal("unknown category must be absent")
	}
	if !slices.IsSorted(en.Categories()) {
		t.Fatal("categories must be sorted")
	}
}

func TestLoad_Errors(t *testing.T) {
	cases := []struct {
		name   string
		data   string
		format dialect.Format
	}{
		{"empty", "", dialect.FormatJSON},
		{"malformed json", `{"en": {"feature": [`, dialect.FormatJSON},
		{"not a table", `["en"]`, dialect.FormatJSON},
		{"category not a list", `{"en": {"feature": "Feature"}}`, dialect.FormatJSON},
		{"keyword not a string", `{"en": {"feature": ["Feature", 1]}}`, dialect.FormatJSON},
		{"duplicate after lowercase", `{"en": {}, "EN": {}}`, dialect.FormatJSON},
		{"no languages", `{}`, dialect.FormatJSON},
		{"broken toml", "[en\nfeature = 1", dialect.FormatTOML},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := dialect.Load(strings.NewReader(tc.data), tc.name, tc.format)
			var le *dialect.LoadError
			if !errors.As(err, &le) {
				t.Fatalf("err = %v, want *LoadError", err)
			}
			if le.Source != tc.name {
				t.Fatalf("Source = %q, want %q", le.Source, tc.name)
			}
		})
	}

	if _, err := dialect.Load(nil, "nil", dialect.FormatJSON); err == nil {
		t.Fatal("nil reader must fail")
	}
}

const yamlDialects = `
xx:
  name: Test
  native: Tëst
  feature: ["Thing"]
  given: ["* ", "Given "]
`

const tomlDialects = `
[xx]
name = "Test"
native = "Tëst"
feature = ["Thing"]
given = ["* ", "Given "]
`

const jsonDialects = `{"xx": {"name": "Test", "native": "Tëst", "feature": ["Thing"], "given": ["* ", "Given "]}}`

func TestLoad_FormatsAgree(t *testing.T) {
	inputs := map[dialect.Format]string{
		dialect.FormatJSON: jsonDialects,
		dialect.FormatYAML: yamlDialects,
		dialect.FormatTOML: tomlDialects,
	}
	var want [32]byte
	first := true
	for format, data := range inputs {
		reg, err := dialect.Load(strings.NewReader(data), format.String(), format, dialect.WithDefault("xx"))
		if err != nil {
			t.Fatalf("%s: %v", format, err)
		}
		d, err := reg.DefaultDialect()
		if err != nil {
			t.Fatalf("%s: %v", format, err)
		}
		if d.Native() != "Tëst" || !slices.Equal(d.GivenKeywords(), []string{"* ", "Given "}) {
			t.Fatalf("%s: unexpected dialect %+v", format, d)
		}
		if first {
			want, first = reg.Fingerprint(), false
		} else if reg.Fingerprint() != want {
			t.Fatalf("%s: fingerprint differs", format)
		}
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "langs.yaml")
	if err := os.WriteFile(path, []byte(yamlDialects), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	reg, err := dialect.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if reg.Source() != path || !slices.Equal(reg.Languages(), []string{"xx"}) {
		t.Fatalf("unexpected registry %s %v", reg.Source(), reg.Languages())
	}

	var le *dialect.LoadError
	if _, err = dialect.LoadFile(filepath.Join(dir, "langs.ini")); !errors.As(err, &le) {
		t.Fatalf("unknown extension: %v", err)
	}
	if _, err = dialect.LoadFile(filepath.Join(dir, "missing.json")); !errors.As(err, &le) {
		t.Fatalf("missing file: %v", err)
	}
}

func TestRegistry_ConcurrentReads(t *testing.T) {
	reg := dialect.MustBuiltin()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, code := range reg.Languages() {
				d, err := reg.Dialect(code, nil)
				if err != nil || len(d.StepKeywords()) == 0 {
					t.Errorf("lookup %s: %v", code, err)
				}
			}
		}()
	}
	wg.Wait()
}
