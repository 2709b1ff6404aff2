package main

import (
	"github.com/spf13/cobra"

	"gherkin/internal/diagfmt"
)

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List the supported language codes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		verbose, err := cmd.Flags().GetBool("verbose")
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
		return diagfmt.FormatLanguages(cmd.OutOrStdout(), reg, verbose)
	},
}

func init() {
	languagesCmd.Flags().BoolP("verbose", "v", false, "show language names")
}
