package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gherkin/internal/diag"
	"gherkin/internal/diagfmt"
	"gherkin/internal/driver"
	"gherkin/internal/observ"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] [file.feature|dir]...",
	Short: "Classify the lines of feature files",
	Long: `Tokenize prints every line of the given feature files with its kind, indent,
tags and table cells. Directories are searched for *.feature files.
Diagnostics go to stderr; the command fails if any of them is an error.`,
	RunE: runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	tokenizeCmd.Flags().Int("jobs", 0, "max parallel files (0 = GOMAXPROCS)")
	tokenizeCmd.Flags().String("ui", "auto", "progress view on stderr (auto|on|off)")
	tokenizeCmd.Flags().Bool("no-cache", false, "disable the on-disk token cache")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	uiValue, _ := cmd.Flags().GetString("ui")
	display, err := readUIMode(uiValue)
	if err != nil {
		return err
	}
	if quiet {
		display = uiModeOff
	}
	showTimings, _ := cmd.Root().PersistentFlags().GetBool("timings")
	mode, err := pathMode(cmd)
	if err != nil {
		return err
	}

	timer := observ.NewTimer()
	done := timer.Track("settings")
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	reg, err := loadRegistry(cmd, settings)
	if err != nil {
		return err
	}
	done(fmt.Sprintf("%d languages", reg.Len()))

	opts := driver.Options{
		Registry:       reg,
		Language:       settings.Language,
		MaxDiagnostics: settings.MaxDiagnostics,
		NFC:            settings.NFC,
		Timings:        showTimings,
	}
	if settings.Cache {
		if opts.Cache, err = driver.OpenDiskCache("gherkin"); err != nil {
			// без кэша тоже работаем
			fmt.Fprintf(os.Stderr, "warning: token cache disabled: %v\n", err)
		}
	}

	files, err := expandInputs(args)
	if err != nil {
		return err
	}
	wd, err := os.Getwd()
	if err != nil {
		return err
	}

	done = timer.Track("tokenize")
	_, results, err := runTokenizeFiles(cmd.Context(), display, "gherkin tokenize", wd, files, opts, settings.Jobs)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}
	done(fmt.Sprintf("%d files", len(results)))

	errorsCount := reportDiagnostics(cmd, results, quiet, mode)

	if !quiet {
		switch format {
		case "json":
			if err := diagfmt.FormatLinesJSON(cmd.OutOrStdout(), results, diagfmt.JSONOpts{PathMode: mode, IncludeNotes: true}); err != nil {
				return err
			}
		default:
			for _, res := range results {
				if err := diagfmt.FormatLinesPretty(cmd.OutOrStdout(), res, mode); err != nil {
					return err
				}
			}
		}
	}

	if showTimings {
		fmt.Fprint(os.Stderr, timer.Summary())
	}
	if errorsCount > 0 {
		return fmt.Errorf("%d file(s) with errors", errorsCount)
	}
	return nil
}

// reportDiagnostics prints every result's diagnostics to stderr and returns
// the number of files with errors.
func reportDiagnostics(cmd *cobra.Command, results []*driver.TokenizeResult, quiet bool, mode diagfmt.PathMode) int {
	opts := diagfmt.PrettyOpts{
		Color:      useColor(cmd, os.Stderr),
		PathMode:   mode,
		ShowNotes:  true,
		ShowSource: true,
	}
	failed := 0
	for _, res := range results {
		if res.Bag.HasErrors() {
			failed++
		}
		if res.Bag.Len() == 0 {
			continue
		}
		res.Bag.Dedup()
		res.Bag.Sort()
		if quiet {
			if s := diag.FormatShortDiagnostics(res.Bag.Items(), res.FileSet, false); s != "" {
				fmt.Fprintln(os.Stderr, s)
			}
			continue
		}
		if err := diagfmt.Pretty(os.Stderr, res.Bag, res.FileSet, opts); err != nil {
			fmt.Fprintf(os.Stderr, "failed to print diagnostics: %v\n", err)
		}
	}
	return failed
}
