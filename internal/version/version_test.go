package version

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestColored(t *testing.T) {
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	orig := Version
	t.Cleanup(func() { Version = orig })

	tests := []struct {
		version string
		want    string
	}{
		{"0.1.0-dev", "0.1.0-dev"},
		{"1.22.333", "1.22.333"},
		{"custom-build", "custom-build"},
	}
	for _, tt := range tests {
		Version = tt.version
		if got := Colored(); got != tt.want {
			t.Errorf("Colored() with %q = %q, want %q", tt.version, got, tt.want)
		}
	}
}

func TestBanner(t *testing.T) {
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	t.Cleanup(func() { Version, GitCommit, BuildDate = origVersion, origCommit, origDate })

	Version, GitCommit, BuildDate = "1.2.3", "abc123", ""
	var buf bytes.Buffer
	if err := Banner(&buf); err != nil {
		t.Fatalf("Banner: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "gherkin 1.2.3\ncommit: abc123\n") || strings.Contains(out, "built:") {
		t.Fatalf("unexpected banner:\n%s", out)
	}
	if info := Current(); info.Version != "1.2.3" || info.GoVersion == "" {
		t.Fatalf("unexpected info %+v", info)
	}
}
