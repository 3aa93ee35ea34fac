package ui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"convlint/internal/driver"
)

// RunWithProgress runs work while showing the progress view on out. The
// view closes before RunWithProgress returns, so callers can print the
// diagnostics afterwards.
func RunWithProgress(ctx context.Context, title string, out io.Writer, work func(driver.ProgressFunc) error) error {
	events := make(chan driver.ProgressEvent, 256)
	errCh := make(chan error, 1)
	go func() {
		defer close(events)
		errCh <- work(func(ev driver.ProgressEvent) { events <- ev })
	}()

	program := tea.NewProgram(NewProgressModel(title, events),
		tea.WithContext(ctx), tea.WithOutput(out), tea.WithInput(nil))
	_, uiErr := program.Run()
	if uiErr != nil {
		// drain so the worker can finish
		go func() {
			for range events {
			}
		}()
	}
	workErr := <-errCh
	if workErr != nil {
		return workErr
	}
	return uiErr
}
