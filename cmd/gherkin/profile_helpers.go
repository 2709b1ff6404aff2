package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"gherkin/internal/prof"
	"gherkin/internal/trace"
)

var (
	profSession *prof.Session
	commandSpan *trace.Span
)

// setupProfiling reads the profiling flags and starts the profilers they name.
func setupProfiling(cmd *cobra.Command) error {
	root := cmd.Root()

	cpuProfile, err := root.PersistentFlags().GetString("cpu-profile")
	if err != nil {
		return fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	memProfile, err := root.PersistentFlags().GetString("mem-profile")
	if err != nil {
		return fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	tracePath, err := root.PersistentFlags().GetString("runtime-trace")
	if err != nil {
		return fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}

	cfg := prof.Config{CPU: cpuProfile, Mem: memProfile, Trace: tracePath}
	if !cfg.Enabled() {
		return nil
	}
	profSession, err = prof.Start(cfg)
	return err
}

func stopProfiling() error {
	err := profSession.Stop()
	profSession = nil
	return err
}

// setupRun starts tracing and profiling and opens the command span that every
// later trace event hangs off.
func setupRun(cmd *cobra.Command, args []string) error {
	if err := setupTracing(cmd, args); err != nil {
		return err
	}
	if err := setupProfiling(cmd); err != nil {
		_ = closeTracing(cmd, args)
		return err
	}
	ctx := cmd.Context()
	commandSpan = trace.Begin(trace.FromContext(ctx), trace.ScopeDriver, cmd.CommandPath(), 0)
	cmd.SetContext(trace.WithSpanContext(ctx, trace.SpanContext{SpanID: commandSpan.ID()}))
	return nil
}

func finishRun(cmd *cobra.Command, args []string) error {
	commandSpan.End(cmd.Name())
	commandSpan = nil
	return errors.Join(stopProfiling(), closeTracing(cmd, args))
}
