package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gherkin/internal/driver"
	"gherkin/internal/tablefmt"
)

var errUnformatted = errors.New("some files are not formatted")

var fmtCmd = &cobra.Command{
	Use:   "fmt [flags] [file.feature|dir]...",
	Short: "Align the data tables of feature files",
	Long: `Fmt pads every table cell to the width of its column. Without --write the
result of a single file is printed to stdout; --check only lists the files
that would change.`,
	RunE: runFmt,
}

func init() {
	fmtCmd.Flags().BoolP("write", "w", false, "rewrite files in place")
	fmtCmd.Flags().Bool("check", false, "list unformatted files and fail if there are any")
	fmtCmd.Flags().Int("jobs", 0, "max parallel files (0 = GOMAXPROCS)")
	fmtCmd.Flags().String("ui", "auto", "progress view on stderr (auto|on|off)")
}

func runFmt(cmd *cobra.Command, args []string) error {
	write, _ := cmd.Flags().GetBool("write")
	check, _ := cmd.Flags().GetBool("check")
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	uiValue, _ := cmd.Flags().GetString("ui")
	display, err := readUIMode(uiValue)
	if err != nil {
		return err
	}
	if quiet {
		display = uiModeOff
	}
	mode, err := pathMode(cmd)
	if err != nil {
		return err
	}

	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	reg, err := loadRegistry(cmd, settings)
	if err != nil {
		return err
	}
	files, err := expandInputs(args)
	if err != nil {
		return err
	}
	if !write && !check && len(files) != 1 {
		return errors.New("fmt prints a single file; use --write or --check for several")
	}
	wd, err := os.Getwd()
	if err != nil {
		return err
	}

	opts := driver.Options{
		Registry:       reg,
		Language:       settings.Language,
		MaxDiagnostics: settings.MaxDiagnostics,
		NFC:            settings.NFC,
	}
	_, results, err := runTokenizeFiles(cmd.Context(), display, "gherkin fmt", wd, files, opts, settings.Jobs)
	if err != nil {
		return err
	}
	if failed := reportDiagnostics(cmd, results, quiet, mode); failed > 0 {
		return fmt.Errorf("%d file(s) with errors, nothing formatted", failed)
	}

	if write {
		// проверяем всё до первой записи
		for _, res := range results {
			if err := tablefmt.CheckRewritable(res.File); err != nil {
				return fmt.Errorf("%s: %w", res.File.Path, err)
			}
		}
	}

	unformatted := 0
	for _, res := range results {
		out, changed := tablefmt.FormatFile(res)
		switch {
		case check:
			if changed {
				unformatted++
				fmt.Fprintln(cmd.OutOrStdout(), res.File.Path)
			}
		case write:
			if !changed {
				continue
			}
			info, err := os.Stat(res.File.Path)
			if err != nil {
				return err
			}
			if err := os.WriteFile(res.File.Path, out, info.Mode().Perm()); err != nil {
				return fmt.Errorf("failed to write %s: %w", res.File.Path, err)
			}
			if !quiet {
				fmt.Fprintf(os.Stderr, "formatted %s\n", res.File.Path)
			}
		default:
			if _, err := cmd.OutOrStdout().Write(out); err != nil {
				return err
			}
		}
	}
	if unformatted > 0 {
		return errUnformatted
	}
	return nil
}
