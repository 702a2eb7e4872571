package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"plcst/internal/driver"
	"plcst/internal/ui"
)

type walkOutcome struct {
	results []driver.UnitResult
	err     error
}

// runWithUI runs walk in the background and shows its events until it ends.
// Quitting the view cancels the walk.
func runWithUI(ctx context.Context, title string, walk func(ctx context.Context, sink driver.EventSink) ([]driver.UnitResult, error)) ([]driver.UnitResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan walkOutcome, 1)

	go func() {
		res, err := walk(ctx, driver.ChannelSink(events))
		outcomeCh <- walkOutcome{results: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	cancel()
	// после Ctrl+C события больше никто не читает
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
