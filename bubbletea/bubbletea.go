// Package bubbletea provides a Bubble Tea TUI for the wander travel
// assistant.
package bubbletea

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/wanderapp/wander"
)

// Run creates and runs the Bubble Tea TUI program. It blocks until the
// program exits. The context is used for graceful shutdown — when cancelled,
// the program quits.
func Run(ctx context.Context, m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	go func() {
		<-ctx.Done()
		p.Quit()
	}()
	_, err := p.Run()
	return err
}

// ExchangeMsg delivers the outcome of a send's network phase back to the
// model, where Finish applies it.
type ExchangeMsg struct {
	Result wander.ExchangeResult
}

// HistoryMsg delivers a fetched session history back to the model, where
// ApplyHistory installs it.
type HistoryMsg struct {
	Tag   wander.HistoryTag
	Turns []wander.Turn
	Err   error
}

// TranscriptMsg delivers a full-transcript speech update to the model.
type TranscriptMsg struct {
	Text string
}
