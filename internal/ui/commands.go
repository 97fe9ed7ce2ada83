package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/shhac/prdash/internal/aggregate"
)

// Loader runs one load cycle. *aggregate.Orchestrator satisfies this.
type Loader interface {
	Load(ctx context.Context, sink aggregate.Sink) error
}

// startLoadCmd kicks off a load cycle in a goroutine. Sink events arrive
// through the event channel; only an identity failure comes back directly.
func startLoadCmd(loader Loader, events chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		if err := loader.Load(context.Background(), newChanSink(events)); err != nil {
			return LoadFailedMsg{Err: err}
		}
		return nil
	}
}

// listenCmd reads the next load-cycle event from the channel. The Update
// loop re-arms it after every received event.
func listenCmd(events chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-events
	}
}
