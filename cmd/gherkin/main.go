package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"gherkin/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "gherkin",
	Short: "Gherkin line tokenizer and dialect tools",
	Long: `gherkin classifies the lines of .feature files, extracts tags and table
cells with their columns, and inspects the localized keyword dialects.`,
	SilenceUsage:       true,
	PersistentPreRunE:  setupRun,
	PersistentPostRunE: finishRun,
}

func init() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(languagesCmd)
	rootCmd.AddCommand(dialectCmd)
	rootCmd.AddCommand(fmtCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	pf := rootCmd.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("quiet", false, "suppress non-essential output")
	pf.Bool("timings", false, "show timing information")
	pf.Int("max-diagnostics", 100, "maximum number of diagnostics per file (0 = no limit)")
	pf.String("dialects", "", "dialect data file (.json, .yaml or .toml) instead of the builtin one")
	pf.String("language", "", "language of documents without a '# language:' marker")
	pf.Bool("nfc", false, "normalize sources to Unicode NFC before tokenizing")
	pf.String("path-mode", "relative", "how to print file paths (auto|absolute|relative|basename)")
	pf.String("trace", "", "trace output file ('-' for stderr)")
	pf.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	pf.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	pf.String("cpu-profile", "", "write a CPU profile to this file")
	pf.String("mem-profile", "", "write a heap profile to this file on exit")
	pf.String("runtime-trace", "", "write a Go runtime trace to this file")
}

func main() {
	err := rootCmd.Execute()
	// PersistentPostRunE не вызывается, если команда упала
	_ = stopProfiling()
	if err != nil {
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves --color for output going to f.
func useColor(cmd *cobra.Command, f *os.File) bool {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false
	}
	switch colorFlag {
	case "on", "always":
		return true
	case "off", "never":
		return false
	default:
		return isTerminal(f)
	}
}
