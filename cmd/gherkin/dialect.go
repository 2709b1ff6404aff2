package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"gherkin/internal/diagfmt"
)

var dialectCmd = &cobra.Command{
	Use:   "dialect [flags] [code]",
	Short: "Show the keyword table of a language",
	Long:  `Dialect prints every keyword category of a language. Without a code the default language is shown.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDialect,
}

func init() {
	dialectCmd.Flags().String("format", "pretty", "output format (pretty|json|yaml)")
}

func runDialect(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	reg, err := loadRegistry(cmd, settings)
	if err != nil {
		return err
	}

	code := reg.DefaultCode()
	if len(args) == 1 {
		code = args[0]
	}
	d, err := reg.Dialect(code, nil)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch format {
	case "pretty":
		return diagfmt.FormatDialectPretty(out, d)
	case "json":
		return diagfmt.FormatDialectJSON(out, d)
	case "yaml":
		return diagfmt.FormatDialectYAML(out, d)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
