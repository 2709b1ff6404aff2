package main

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestExpandInputs(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.feature", "a.feature", "sub/c.feature", "readme.md"} {
		p := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(p, []byte("Feature: x\n"), 0o600); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	got, err := expandInputs([]string{dir, filepath.Join(dir, "a.feature"), filepath.Join(dir, "readme.md")})
	if err != nil {
		t.Fatalf("expandInputs: %v", err)
	}
	want := []string{
		filepath.Join(dir, "a.feature"),
		filepath.Join(dir, "b.feature"),
		filepath.Join(dir, "readme.md"),
		filepath.Join(dir, "sub", "c.feature"),
	}
	if !slices.Equal(got, want) {
		t.Fatalf("expandInputs = %v, want %v", got, want)
	}

	if _, err := expandInputs([]string{filepath.Join(dir, "missing")}); err == nil {
		t.Fatal("missing input must fail")
	}
}
