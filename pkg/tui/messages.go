package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// StatusMsg shows a transient message in the status bar
type StatusMsg string

// stateChangedMsg signals that the controller published a new state
type stateChangedMsg struct{}

// opDoneMsg carries the result of a controller operation
type opDoneMsg struct {
	op  string
	err error
}

// editorClosedMsg is sent when the external editor exits
type editorClosedMsg struct {
	err error
}

// runOp wraps a blocking controller call in a command
func runOp(op string, fn func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return opDoneMsg{op: op, err: fn(context.Background())}
	}
}

// waitForChange blocks until the controller publishes again
func waitForChange(changes <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return stateChangedMsg{}
	}
}
