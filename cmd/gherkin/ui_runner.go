package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"gherkin/internal/driver"
	"gherkin/internal/source"
	"gherkin/internal/ui"
)

type tokenizeOutcome struct {
	fs      *source.FileSet
	results []*driver.TokenizeResult
	err     error
}

// tokenizeWithUI runs TokenizeFiles while a progress view draws on stderr,
// leaving stdout to the command output.
func tokenizeWithUI(ctx context.Context, title, baseDir string, files []string, opts driver.Options, jobs int) (*source.FileSet, []*driver.TokenizeResult, error) {
	events := make(chan driver.ProgressEvent, 256)
	outcomeCh := make(chan tokenizeOutcome, 1)

	go func() {
		opts.Progress = driver.ChannelSink{Ch: events}
		fs, results, err := driver.TokenizeFiles(ctx, baseDir, files, opts, jobs)
		outcomeCh <- tokenizeOutcome{fs: fs, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr), tea.WithInput(nil))
	_, uiErr := program.Run()
	if uiErr != nil {
		// модель больше не читает канал
		go func() {
			for range events {
			}
		}()
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fs, outcome.results, uiErr
	}
	return outcome.fs, outcome.results, outcome.err
}

// runTokenizeFiles picks between the progress view and a plain run.
func runTokenizeFiles(ctx context.Context, mode uiMode, title, baseDir string, files []string, opts driver.Options, jobs int) (*source.FileSet, []*driver.TokenizeResult, error) {
	if shouldUseTUI(mode, len(files)) {
		return tokenizeWithUI(ctx, title, baseDir, files, opts, jobs)
	}
	return driver.TokenizeFiles(ctx, baseDir, files, opts, jobs)
}
