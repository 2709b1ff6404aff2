package source

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	// Добавляем файл первый раз
	id1 := fs.Add("a.feature", []byte("Feature: one"), 0)
	if id1 != 0 {
		t.Errorf("Expected first FileID to be 0, got %d", id1)
	}

	// Добавляем тот же файл с новым содержимым
	id2 := fs.Add("a.feature", []byte("Feature: two"), 0)
	if id2 != 1 {
		t.Errorf("Expected second FileID to be 1, got %d", id2)
	}

	latestID, exists := fs.GetLatest("a.feature")
	if !exists || latestID != id2 {
		t.Errorf("Expected latest ID %d, got %d (exists=%v)", id2, latestID, exists)
	}

	// Старый файл всё ещё доступен
	if got := string(fs.Get(id1).Content); got != "Feature: one" {
		t.Errorf("unexpected first content %q", got)
	}
	if fs.Get(99) != nil {
		t.Error("Get with unknown id must return nil")
	}
	if fs.Len() != 2 {
		t.Errorf("Len = %d, want 2", fs.Len())
	}
}

func TestAddVirtualLineIdx(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.feature", []byte("a\nb\n"))
	file := fs.Get(id)

	if !slices.Equal(file.LineIdx, []uint32{1, 3}) {
		t.Errorf("LineIdx = %v, want [1 3]", file.LineIdx)
	}
	if file.Flags&FileVirtual == 0 {
		t.Error("Expected FileVirtual flag to be set")
	}
}

func TestLoadNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "crlf.feature")
	content := []byte("\xEF\xBB\xBFFeature: x\r\n  Scenario: y\r\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	file := fs.Get(id)
	if string(file.Content) != "Feature: x\n  Scenario: y\n" {
		t.Fatalf("content = %q", file.Content)
	}
	if file.Flags&FileHadBOM == 0 || file.Flags&FileNormalizedCRLF == 0 {
		t.Fatalf("flags = %b, want BOM and CRLF", file.Flags)
	}
	if _, ok := fs.GetByPath(path); !ok {
		t.Fatal("GetByPath did not find loaded file")
	}
}

func TestLoadWithOptions_NFC(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nfc.feature")
	// "e" + combining acute accent → "é"
	if err := os.WriteFile(path, []byte("| cafe\u0301 |"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	fs := NewFileSet()
	id, err := fs.LoadWithOptions(path, LoadOptions{NFC: true})
	if err != nil {
		t.Fatalf("LoadWithOptions: %v", err)
	}
	file := fs.Get(id)
	if string(file.Content) != "| caf\u00e9 |" {
		t.Fatalf("content = %q, want NFC form", file.Content)
	}
	if file.Flags&FileNormalizedNFC == 0 {
		t.Fatal("expected FileNormalizedNFC flag")
	}

	id, err = fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if fs.Get(id).Flags&FileNormalizedNFC != 0 {
		t.Fatal("plain Load must not normalise to NFC")
	}
}

func TestLoadMissingFile(t *testing.T) {
	fs := NewFileSet()
	if _, err := fs.Load(filepath.Join(t.TempDir(), "missing.feature")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestFileLines(t *testing.T) {
	cases := []struct {
		content string
		want    []string
	}{
		{"", []string{}},
		{"one", []string{"one"}},
		{"one\n", []string{"one"}},
		{"one\n\nthree", []string{"one", "", "three"}},
		{"\n", []string{""}},
	}
	for _, tc := range cases {
		fs := NewFileSet()
		f := fs.Get(fs.AddVirtual("x.feature", []byte(tc.content)))
		got := f.Lines()
		if !slices.Equal(got, tc.want) {
			t.Errorf("Lines(%q) = %q, want %q", tc.content, got, tc.want)
		}
		if f.LineCount() != len(tc.want) {
			t.Errorf("LineCount(%q) = %d, want %d", tc.content, f.LineCount(), len(tc.want))
		}
		for i, want := range tc.want {
			if got := f.GetLine(uint32(i + 1)); got != want {
				t.Errorf("GetLine(%d) of %q = %q, want %q", i+1, tc.content, got, want)
			}
		}
	}
}

func TestFilePos(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("x.feature", []byte("x")))
	p := f.Pos(3, 7)
	if p.File != f.ID || p.Line != 3 || p.Col != 7 {
		t.Fatalf("Pos = %+v", p)
	}
	if p.String() != "3:7" {
		t.Fatalf("String = %q", p.String())
	}
	if !(Position{}).IsZero() {
		t.Fatal("zero Position must report IsZero")
	}
}
