package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"sift/internal/driver"
	"sift/internal/ui"
)

type lintOutcome struct {
	results []*driver.Result
	err     error
}

func runLintWithUI(ctx context.Context, title string, files []string, linter *driver.Linter, jobs int) ([]*driver.Result, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan lintOutcome, 1)

	go func() {
		l := *linter
		l.Progress = driver.ChannelSink{Ch: events}
		res, err := l.LintFiles(ctx, files, jobs)
		outcomeCh <- lintOutcome{results: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
