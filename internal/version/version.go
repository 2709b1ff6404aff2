package version

import (
	"fmt"
	"io"
	"runtime"

	"github.com/fatih/color"
)

// Version information for the gherkin CLI.
// These variables can be overridden at build time via -ldflags.
var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)
)

// Info is the machine-readable build description.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
	GoVersion string `json:"go_version"`
}

// Current returns the build description.
func Current() Info {
	return Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
	}
}

// Colored renders Version with each of major, minor and patch in its own
// colour. Anything after the patch number is printed as is.
func Colored() string {
	var major, minor, patch, rest string
	if n, _ := fmt.Sscanf(Version, "%d.%d.%d", new(int), new(int), new(int)); n != 3 {
		return Version
	}
	major, tail := cut(Version)
	minor, tail = cut(tail)
	patch, rest = splitDigits(tail)
	return versionMajorColor.Sprint(major) + "." + versionMinorColor.Sprint(minor) + "." + versionPatchColor.Sprint(patch) + rest
}

// Banner writes the version block printed by "gherkin version".
func Banner(w io.Writer) error {
	info := Current()
	if _, err := fmt.Fprintf(w, "gherkin %s\n", Colored()); err != nil {
		return err
	}
	if info.GitCommit != "" {
		if _, err := fmt.Fprintf(w, "commit: %s\n", info.GitCommit); err != nil {
			return err
		}
	}
	if info.BuildDate != "" {
		if _, err := fmt.Fprintf(w, "built:  %s\n", info.BuildDate); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "go:     %s\n", info.GoVersion)
	return err
}

func cut(s string) (head, tail string) {
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			return s[:i], s[i+1:]
		}
	}
	return s, ""
}

func splitDigits(s string) (digits, rest string) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return s[:i], s[i:]
}
