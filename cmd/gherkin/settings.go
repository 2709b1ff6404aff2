package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gherkin/internal/diagfmt"
	"gherkin/internal/dialect"
	"gherkin/internal/project"
	"gherkin/internal/trace"
)

// loadSettings merges gherkin.toml (if any) with the flags the user set.
func loadSettings(cmd *cobra.Command) (project.Settings, error) {
	wd, err := os.Getwd()
	if err != nil {
		return project.Settings{}, err
	}
	manifest, _, err := project.LoadManifest(wd)
	if err != nil {
		return project.Settings{}, err
	}

	pf := cmd.Root().PersistentFlags()
	var o project.Overrides
	if pf.Changed("language") {
		v, _ := pf.GetString("language")
		o.Language = &v
	}
	if pf.Changed("dialects") {
		v, _ := pf.GetString("dialects")
		o.DialectFile = &v
	}
	if pf.Changed("max-diagnostics") {
		v, _ := pf.GetInt("max-diagnostics")
		o.MaxDiagnostics = &v
	}
	if pf.Changed("nfc") {
		v, _ := pf.GetBool("nfc")
		o.NFC = &v
	}
	if f := cmd.Flags().Lookup("jobs"); f != nil && f.Changed {
		v, _ := cmd.Flags().GetInt("jobs")
		o.Jobs = &v
	}
	if f := cmd.Flags().Lookup("no-cache"); f != nil {
		o.NoCache, _ = cmd.Flags().GetBool("no-cache")
	}
	return project.Resolve(manifest, o), nil
}

// loadRegistry loads the configured dialect file or the builtin dialects.
func loadRegistry(cmd *cobra.Command, s project.Settings) (*dialect.Registry, error) {
	opts := []dialect.Option{dialect.WithDefault(s.Language)}
	var (
		reg *dialect.Registry
		err error
	)
	if s.DialectFile != "" {
		reg, err = dialect.LoadFile(s.DialectFile, opts...)
	} else {
		reg, err = dialect.Builtin(opts...)
	}
	if err != nil {
		trace.Error(trace.FromContext(cmd.Context()), "load_dialects", err)
		return nil, err
	}
	if _, err := reg.DefaultDialect(); err != nil {
		return nil, fmt.Errorf("default language: %w", err)
	}
	return reg, nil
}

func pathMode(cmd *cobra.Command) (diagfmt.PathMode, error) {
	s, err := cmd.Root().PersistentFlags().GetString("path-mode")
	if err != nil {
		return 0, err
	}
	mode, ok := diagfmt.ParsePathMode(s)
	if !ok {
		return 0, fmt.Errorf("unknown path mode %q (expected auto|absolute|relative|basename)", s)
	}
	return mode, nil
}
