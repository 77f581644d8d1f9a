package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pluqqy/docpick/pkg/files"
	"github.com/pluqqy/docpick/pkg/models"
)

// RenameState manages the inline rename dialog for one document
type RenameState struct {
	Active   bool
	Entry    models.FileEntry
	Existing []string // names of every listed document
	Errors   files.ValidationErrors

	input textinput.Model
}

// NewRenameState creates a new rename state instance
func NewRenameState() *RenameState {
	input := textinput.New()
	input.Prompt = "> "
	input.CharLimit = 255
	return &RenameState{input: input}
}

// Start opens the dialog for entry, pre-filled with its current name
func (rs *RenameState) Start(entry models.FileEntry, existing []string) tea.Cmd {
	rs.Active = true
	rs.Entry = entry
	rs.Existing = existing
	rs.Errors = nil

	rs.input.SetValue(entry.Name)
	rs.input.CursorEnd()
	return rs.input.Focus()
}

// HandleInput processes keyboard input while the dialog is open. submit is
// true when the user pressed enter on a committable name.
func (rs *RenameState) HandleInput(msg tea.KeyMsg) (handled, submit, cancel bool, cmd tea.Cmd) {
	if !rs.Active {
		return false, false, false, nil
	}

	switch msg.String() {
	case "esc":
		return true, false, true, nil

	case "enter":
		return true, rs.IsValid(), false, nil

	case "tab":
		return true, false, false, nil
	}

	rs.input, cmd = rs.input.Update(msg)
	rs.validate()
	return true, false, false, cmd
}

func (rs *RenameState) validate() {
	rs.Errors = files.ValidateName(rs.NewName(), rs.Existing, rs.Entry.Name)
}

// SetErrors replaces the live validation result, e.g. with errors returned
// by the controller after the listing changed
func (rs *RenameState) SetErrors(errs files.ValidationErrors) {
	rs.Errors = errs
}

// NewName returns the text entered so far
func (rs *RenameState) NewName() string {
	return rs.input.Value()
}

// IsValid reports whether enter would commit the rename
func (rs *RenameState) IsValid() bool {
	return files.CanCommitRename(rs.NewName(), rs.Entry.Name, rs.Errors)
}

// Reset clears the rename state
func (rs *RenameState) Reset() {
	rs.Active = false
	rs.Entry = models.FileEntry{}
	rs.Existing = nil
	rs.Errors = nil
	rs.input.SetValue("")
	rs.input.Blur()
}

// View renders the rename dialog
func (rs *RenameState) View(width int) string {
	if !rs.Active {
		return ""
	}

	var b strings.Builder
	b.WriteString(HeaderStyle.Render("Rename " + rs.Entry.Name))
	b.WriteString("\n\n")
	b.WriteString(rs.input.View())
	b.WriteString("\n\n")

	switch {
	case len(rs.Errors) > 0:
		for _, err := range rs.Errors {
			b.WriteString(ErrorStyle.Render("✗ " + err.Error()))
			b.WriteString("\n")
		}
	case strings.TrimSpace(rs.NewName()) == "":
		b.WriteString(DimStyle.Render("Enter a name"))
		b.WriteString("\n")
	case rs.IsValid():
		b.WriteString(DimStyle.Render("enter rename • esc cancel"))
		b.WriteString("\n")
	default:
		b.WriteString(DimStyle.Render("esc cancel"))
		b.WriteString("\n")
	}

	dialogWidth := 50
	if width > 0 && width-4 < dialogWidth {
		dialogWidth = width - 4
	}
	return ActiveBorderStyle.Width(dialogWidth).Padding(0, 1).Render(b.String())
}
