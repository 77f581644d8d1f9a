package tui

import (
	"os"
	"os/exec"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// editorCommand builds the external editor invocation for path. The editor
// string may carry arguments, e.g. "code --wait".
func editorCommand(editor, path string) *exec.Cmd {
	if editor == "" {
		editor = os.Getenv("EDITOR")
	}
	if editor == "" {
		editor = "vi"
	}

	parts := strings.Fields(editor)
	return exec.Command(parts[0], append(parts[1:], path)...)
}

// openInEditor suspends the program while the editor runs
func openInEditor(editor, path string) tea.Cmd {
	return tea.ExecProcess(editorCommand(editor, path), func(err error) tea.Msg {
		return editorClosedMsg{err: err}
	})
}
