package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/safeng/decaf-sema/internal/driver"
	"github.com/safeng/decaf-sema/internal/ui"
)

// runBatchWithUI runs units through driver.RunBatch while a bubbletea
// progress model renders each file's queued/checking/done lifecycle,
// mirroring surge/cmd/surge/ui_runner.go's runBuildWithUI: RunBatch feeds
// an Events channel from a goroutine, the model drains it on the main
// goroutine, and the batch's own result/error comes back over a one-shot
// channel once RunBatch returns.
func runBatchWithUI(ctx context.Context, title string, files []string, units []driver.Unit, opts driver.Options) ([]driver.Result, error) {
	events := make(chan driver.Event, 256)
	type outcome struct {
		results []driver.Result
		err     error
	}
	outcomeCh := make(chan outcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Events = events
		results, err := driver.RunBatch(ctx, units, optsCopy)
		outcomeCh <- outcome{results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	out := <-outcomeCh
	if uiErr != nil {
		return out.results, uiErr
	}
	return out.results, out.err
}
