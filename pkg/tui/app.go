package tui

import (
	"errors"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pluqqy/docpick/pkg/document"
	"github.com/pluqqy/docpick/pkg/files"
	"github.com/pluqqy/docpick/pkg/picker"
)

// Options configures the App
type Options struct {
	Controller    *picker.Controller
	Documents     *document.Markdown
	ShowPreview   bool
	ConfirmDelete bool
	Editor        string // falls back to $EDITOR, then vi
}

// App switches between the open document and the picker shown over it
type App struct {
	ctrl   *picker.Controller
	picker *PickerModel
	doc    *DocumentModel
	editor string

	changes     chan struct{}
	unsubscribe func()

	state     picker.State
	statusMsg string
	width     int
	height    int
}

// NewApp creates the program model. The controller must already be
// activated; the picker starts visible.
func NewApp(opts Options) *App {
	a := &App{
		ctrl:    opts.Controller,
		picker:  NewPickerModel(opts.Controller, opts.Documents, opts.ShowPreview, opts.ConfirmDelete),
		doc:     NewDocumentModel(opts.Documents),
		editor:  opts.Editor,
		changes: make(chan struct{}, 1),
	}

	a.unsubscribe = a.ctrl.Subscribe(func(picker.State) {
		select {
		case a.changes <- struct{}{}:
		default:
		}
	})

	a.ctrl.Show()
	a.sync()
	return a
}

// Close stops listening to the controller
func (a *App) Close() {
	if a.unsubscribe != nil {
		a.unsubscribe()
		a.unsubscribe = nil
	}
}

// Init starts listening for controller changes and brings the listing up
// to date
func (a *App) Init() tea.Cmd {
	return tea.Batch(waitForChange(a.changes), runOp("present", a.ctrl.Present))
}

// State returns the last state the view rendered
func (a *App) State() picker.State {
	return a.state
}

func (a *App) sync() {
	a.state = a.ctrl.Snapshot()
	a.picker.Sync(a.state)
	if entry, ok := a.state.OpenEntry(); ok {
		a.doc.Load(entry)
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.picker.SetSize(msg.Width, msg.Height-1)
		a.doc.SetSize(msg.Width, msg.Height-1)
		return a, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}

	case stateChangedMsg:
		a.sync()
		return a, tea.Batch(waitForChange(a.changes), a.picker.StartSpinner())

	case spinner.TickMsg:
		return a, a.picker.Update(msg)

	case opDoneMsg:
		a.sync()
		a.picker.HandleResult(msg)
		a.statusMsg = statusFor(msg, a.state)
		return a, nil

	case editorClosedMsg:
		if msg.err != nil {
			a.statusMsg = "Editor failed: " + msg.err.Error()
		}
		return a, runOp("refresh", a.ctrl.Refresh)

	case StatusMsg:
		a.statusMsg = string(msg)
		return a, nil
	}

	if a.state.Visible {
		if _, ok := msg.(tea.KeyMsg); ok {
			a.statusMsg = ""
		}
		cmd := a.picker.Update(msg)
		a.sync()
		return a, cmd
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		a.statusMsg = ""
		switch {
		case key.Matches(msg, a.doc.keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, a.doc.keys.Picker):
			a.ctrl.Show()
			a.sync()
			return a, runOp("present", a.ctrl.Present)
		case key.Matches(msg, a.doc.keys.Edit):
			if a.doc.Path() == "" {
				return a, nil
			}
			return a, openInEditor(a.editor, a.doc.Path())
		}
	}

	return a, a.doc.Update(msg)
}

// statusFor turns an operation result into a status bar message
func statusFor(msg opDoneMsg, state picker.State) string {
	if msg.err != nil {
		var validation files.ValidationErrors
		if picker.IsSilent(msg.err) || errors.As(msg.err, &validation) {
			return ""
		}
		return msg.err.Error()
	}

	open := files.DisplayName(state.OpenPath)
	switch msg.op {
	case "create":
		return "Created " + open
	case "duplicate":
		return "Duplicated as " + open
	case "delete":
		return "Deleted"
	case "rename":
		return "Renamed"
	}
	return ""
}

func (a *App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Loading..."
	}

	var content string
	if a.state.Visible {
		content = a.picker.View()
	} else {
		content = a.doc.View()
	}

	if a.statusMsg != "" {
		content = lipgloss.JoinVertical(lipgloss.Top, content, StatusBarStyle.Render(a.statusMsg))
	}

	return content
}
