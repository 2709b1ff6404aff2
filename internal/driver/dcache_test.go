package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"gherkin/internal/diag"
	"gherkin/internal/source"
)

func TestDiskCache_RoundTrip(t *testing.T) {
	cache, err := NewDiskCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewDiskCache: %v", err)
	}
	opts := Options{Cache: cache}

	first := tokenizeString(t, sample, opts)
	if first.Cached {
		t.Fatal("first run cannot be a cache hit")
	}
	second := tokenizeString(t, sample, opts)
	if !second.Cached {
		t.Fatal("second run must hit the cache")
	}

	if len(second.Tokens) != len(first.Tokens) || second.Language != first.Language {
		t.Fatalf("cached result differs: %d vs %d tokens", len(second.Tokens), len(first.Tokens))
	}
	for i := range first.Tokens {
		a, b := first.Tokens[i], second.Tokens[i]
		if a.Kind != b.Kind || a.Text != b.Text || len(a.Cells) != len(b.Cells) || len(a.Tags) != len(b.Tags) {
			t.Fatalf("token %d differs: %+v vs %+v", i, a, b)
		}
	}
	want := diag.FormatShortDiagnostics(first.Bag.Items(), first.FileSet, true)
	got := diag.FormatShortDiagnostics(second.Bag.Items(), second.FileSet, true)
	if got != want {
		t.Fatalf("cached diagnostics differ:\nwant:\n%s\n\ngot:\n%s", want, got)
	}

	// другой язык по умолчанию даёт другой ключ
	if tokenizeString(t, sample, Options{Cache: cache, Language: "de"}).Cached {
		t.Fatal("language must be part of the cache key")
	}
}

func TestDiskCache_CorruptEntry(t *testing.T) {
	cache, err := NewDiskCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewDiskCache: %v", err)
	}
	res := tokenizeString(t, "Feature: x\n", Options{Cache: cache})

	reg, start, err := Options{}.resolveDialect()
	if err != nil {
		t.Fatalf("resolveDialect: %v", err)
	}
	p := cache.pathFor(cacheKey(res.File.Hash, reg.Fingerprint(), start.Code(), 0))
	if err := os.WriteFile(p, []byte{0xc1, 0xff}, 0o600); err != nil {
		t.Fatalf("corrupt: %v", err)
	}

	again := tokenizeString(t, "Feature: x\n", Options{Cache: cache})
	if again.Cached || len(again.Tokens) != 1 {
		t.Fatalf("corrupt entry must be recomputed: cached=%v", again.Cached)
	}
}

func TestDiskCache_MismatchedEntry(t *testing.T) {
	src := "Feature: x\n  | a |\n"
	reg, start, err := Options{}.resolveDialect()
	if err != nil {
		t.Fatalf("resolveDialect: %v", err)
	}

	tests := []struct {
		name    string
		payload DiskPayload
	}{
		{"line count", DiskPayload{Tokens: []Token{{Line: 1, Kind: KindOther}}}},
		{"diagnostic past end", DiskPayload{
			Tokens: []Token{{Line: 1, Kind: KindOther}, {Line: 2, Kind: KindTableRow}},
			Diags:  []cachedDiagnostic{{Severity: diag.SevError, Line: 7, Col: 1, Message: "stale"}},
		}},
		{"note past end", DiskPayload{
			Tokens: []Token{{Line: 1, Kind: KindOther}, {Line: 2, Kind: KindTableRow}},
			Diags: []cachedDiagnostic{{Severity: diag.SevError, Line: 1, Col: 1, Message: "stale",
				Notes: []cachedNote{{Line: 1 << 31, Col: 1, Msg: "far"}}}},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cache, err := NewDiskCache(t.TempDir())
			if err != nil {
				t.Fatalf("NewDiskCache: %v", err)
			}
			res := tokenizeString(t, src, Options{})
			p := tt.payload
			p.Schema = diskCacheSchemaVersion
			p.Language = "en"
			if err := cache.Put(cacheKey(res.File.Hash, reg.Fingerprint(), start.Code(), 0), &p); err != nil {
				t.Fatalf("Put: %v", err)
			}

			got := tokenizeString(t, src, Options{Cache: cache})
			if got.Cached {
				t.Fatal("entry that does not fit the file must be recomputed")
			}
			if len(got.Tokens) != 2 || got.Bag.Len() != 0 {
				t.Fatalf("recomputed result: %d tokens, %d diags", len(got.Tokens), got.Bag.Len())
			}
		})
	}
}

func TestDiskCache_DropAll(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	cache, err := NewDiskCache(dir)
	if err != nil {
		t.Fatalf("NewDiskCache: %v", err)
	}
	key := cacheKey(source.File{}.Hash, [32]byte{}, "en", 0)
	if err := cache.Put(key, &DiskPayload{Schema: diskCacheSchemaVersion, Language: "en"}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	var out DiskPayload
	if ok, err := cache.Get(key, &out); !ok || err != nil || out.Language != "en" {
		t.Fatalf("Get = %v, %v, %+v", ok, err, out)
	}
	if err := cache.DropAll(); err != nil {
		t.Fatalf("DropAll: %v", err)
	}
	if ok, err := cache.Get(key, &out); ok || err != nil {
		t.Fatalf("entry survived DropAll: %v, %v", ok, err)
	}
	if _, err := os.Stat(cache.Dir()); err != nil {
		t.Fatalf("cache dir must exist after DropAll: %v", err)
	}

	var nilCache *DiskCache
	if ok, err := nilCache.Get(key, &out); ok || err != nil {
		t.Fatal("nil cache must miss")
	}
}

func TestTokenizeDir(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"b.feature":         "Feature: b\n| a |\n| a | b |\n",
		"a.feature":         "# language: de\nFunktionalität: a\n",
		"nested/c.FEATURE":  "@wip\nFeature: c\n",
		"notes.txt":         "| ignored |\n",
		"nested/d.feature~": "ignored\n",
	}
	for name, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	fs, results, err := TokenizeDir(context.Background(), dir, Options{MaxDiagnostics: 10}, 2)
	if err != nil {
		t.Fatalf("TokenizeDir: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	wantPaths := []string{"a.feature", "b.feature", "nested/c.FEATURE"}
	for i, res := range results {
		if got := filepath.ToSlash(res.File.FormatPath("relative", fs.BaseDir())); got != wantPaths[i] {
			t.Errorf("result %d path = %q, want %q", i, got, wantPaths[i])
		}
	}
	if results[0].Language != "de" || results[1].Bag.Len() != 1 || results[2].Tokens[0].Kind != KindTag {
		t.Fatalf("unexpected results: %s %d %s", results[0].Language, results[1].Bag.Len(), results[2].Tokens[0].Kind)
	}
}

func TestTokenizeFiles_LoadError(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "gone.feature")
	fs, results, err := TokenizeFiles(context.Background(), dir, []string{missing}, Options{}, 1)
	if err != nil {
		t.Fatalf("TokenizeFiles: %v", err)
	}
	if len(results) != 1 || results[0].Tokens != nil {
		t.Fatalf("unexpected results %+v", results)
	}
	items := results[0].Bag.Items()
	if len(items) != 1 || items[0].Code != diag.IOLoadFileError || !items[0].Primary.IsZero() {
		t.Fatalf("unexpected diagnostics %+v", items)
	}
	if f := fs.Get(items[0].Primary.File); f == nil || f.Flags&source.FileVirtual == 0 {
		t.Fatal("load failure must be anchored to a placeholder file")
	}
}
