package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/muesli/reflow/wordwrap"

	"github.com/pluqqy/docpick/pkg/document"
	"github.com/pluqqy/docpick/pkg/files"
	"github.com/pluqqy/docpick/pkg/models"
	"github.com/pluqqy/docpick/pkg/picker"
)

const (
	minPreviewWidth = 80
	chromeHeight    = 5 // header, footer and status lines
)

// entryItem adapts a catalog entry to the bubbles list
type entryItem struct {
	entry models.FileEntry
	open  bool
}

func (i entryItem) FilterValue() string { return i.entry.Name }

func (i entryItem) Title() string {
	if i.open {
		return "● " + i.entry.Name
	}
	return "  " + i.entry.Name
}

func (i entryItem) Description() string {
	modified := "never saved"
	if i.entry.Modified != nil {
		modified = humanize.Time(*i.entry.Modified)
	}
	if i.entry.IsEmpty {
		return "  " + modified + " • empty"
	}
	return "  " + modified
}

type previewCache struct {
	path     string
	modified time.Time
	width    int
	text     string
}

// PickerModel is the document picker view
type PickerModel struct {
	ctrl *picker.Controller
	docs *document.Markdown

	list    list.Model
	spinner spinner.Model
	help    help.Model
	keys    pickerKeyMap
	rename  *RenameState
	confirm *ConfirmationModel

	state         picker.State
	showPreview   bool
	confirmDelete bool
	spinning      bool
	preview       previewCache
	status        string

	width  int
	height int
}

// NewPickerModel creates the picker view over ctrl
func NewPickerModel(ctrl *picker.Controller, docs *document.Markdown, showPreview, confirmDelete bool) *PickerModel {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(lipgloss.Color(ColorActive)).
		BorderForeground(lipgloss.Color(ColorActive))
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(lipgloss.Color(ColorNormal)).
		BorderForeground(lipgloss.Color(ColorActive))

	l := list.New(nil, delegate, 0, 0)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	return &PickerModel{
		ctrl:          ctrl,
		docs:          docs,
		list:          l,
		spinner:       spinner.New(spinner.WithSpinner(spinner.Dot)),
		help:          help.New(),
		keys:          newPickerKeyMap(),
		rename:        NewRenameState(),
		confirm:       NewConfirmation(),
		showPreview:   showPreview,
		confirmDelete: confirmDelete,
	}
}

// SetSize updates the view dimensions
func (m *PickerModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width

	listWidth := width
	if m.previewVisible() {
		listWidth = width / 2
	}
	listHeight := height - chromeHeight
	if listHeight < 1 {
		listHeight = 1
	}
	m.list.SetSize(listWidth, listHeight)
}

func (m *PickerModel) previewVisible() bool {
	return m.showPreview && m.width >= minPreviewWidth
}

// Sync rebuilds the list from state, keeping the selection on the same
// document when it is still listed and on the open document otherwise
func (m *PickerModel) Sync(state picker.State) {
	selected := ""
	if entry, ok := m.Selected(); ok {
		selected = entry.Path
	}
	m.state = state

	items := make([]list.Item, len(state.Catalog))
	for i, entry := range state.Catalog {
		items[i] = entryItem{entry: entry, open: files.SamePath(entry.Path, state.OpenPath)}
	}
	m.list.SetItems(items)

	idx := state.Catalog.Index(selected)
	if idx < 0 {
		idx = state.Catalog.Index(state.OpenPath)
	}
	if idx < 0 {
		idx = 0
	}
	m.list.Select(idx)
}

// Selected returns the highlighted entry
func (m *PickerModel) Selected() (models.FileEntry, bool) {
	item, ok := m.list.SelectedItem().(entryItem)
	if !ok {
		return models.FileEntry{}, false
	}
	return item.entry, true
}

// Select highlights the entry at idx
func (m *PickerModel) Select(idx int) {
	m.list.Select(idx)
}

// Renaming reports whether the rename dialog is open
func (m *PickerModel) Renaming() bool {
	return m.rename.Active
}

// Confirming reports whether a confirmation is pending
func (m *PickerModel) Confirming() bool {
	return m.confirm.Active()
}

// StartSpinner starts ticking while the controller is busy
func (m *PickerModel) StartSpinner() tea.Cmd {
	if m.spinning || !m.state.Busy {
		return nil
	}
	m.spinning = true
	return m.spinner.Tick
}

// HandleResult reacts to a finished controller operation
func (m *PickerModel) HandleResult(msg opDoneMsg) {
	if msg.op != "rename" {
		return
	}

	var validation files.ValidationErrors
	switch {
	case msg.err == nil:
		m.rename.Reset()
	case errors.As(msg.err, &validation):
		m.rename.SetErrors(validation)
	}
}

// Update handles messages while the picker is visible
func (m *PickerModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !m.state.Busy {
			m.spinning = false
			return nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return cmd
}

func (m *PickerModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.rename.Active {
		_, submit, cancel, cmd := m.rename.HandleInput(msg)
		switch {
		case cancel:
			m.rename.Reset()
			m.ctrl.CancelRename()
			return nil
		case submit:
			entry, name := m.rename.Entry, m.rename.NewName()
			return runOp("rename", func(ctx context.Context) error {
				return m.ctrl.Rename(ctx, entry, name)
			})
		}
		return cmd
	}

	if m.confirm.Active() {
		return m.confirm.Update(msg)
	}

	m.status = ""
	entry, hasEntry := m.Selected()

	switch {
	case key.Matches(msg, m.keys.Open):
		if !hasEntry {
			return nil
		}
		return runOp("open", func(ctx context.Context) error {
			return m.ctrl.Open(ctx, entry)
		})

	case key.Matches(msg, m.keys.New):
		return runOp("create", m.ctrl.Create)

	case key.Matches(msg, m.keys.Rename):
		if !hasEntry {
			return nil
		}
		m.ctrl.BeginRename(entry)
		return m.rename.Start(entry, m.state.Catalog.Names())

	case key.Matches(msg, m.keys.Duplicate):
		if !hasEntry {
			return nil
		}
		return runOp("duplicate", func(ctx context.Context) error {
			return m.ctrl.Duplicate(ctx, entry)
		})

	case key.Matches(msg, m.keys.Delete):
		if !hasEntry {
			return nil
		}
		return m.requestDelete(entry)

	case key.Matches(msg, m.keys.Refresh):
		return runOp("refresh", m.ctrl.Refresh)

	case key.Matches(msg, m.keys.Dismiss):
		m.ctrl.Dismiss()
		return nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return cmd
}

func (m *PickerModel) requestDelete(entry models.FileEntry) tea.Cmd {
	if !m.ctrl.CanDelete(entry) {
		m.status = picker.ErrLastDocument.Error()
		return nil
	}

	deleteCmd := func() tea.Cmd {
		return runOp("delete", func(ctx context.Context) error {
			return m.ctrl.Delete(ctx, entry)
		})
	}

	if entry.IsEmpty || !m.confirmDelete {
		return deleteCmd()
	}

	m.confirm.ShowDialog(
		"Delete document?",
		fmt.Sprintf("Delete '%s'?", entry.Name),
		"This cannot be undone.",
		deleteCmd,
		nil,
	)
	return nil
}

// View renders the picker
func (m *PickerModel) View() string {
	header := HeaderStyle.Render("Documents") + "  " + DimStyle.Render(m.ctrl.Dir())

	var body string
	switch {
	case len(m.state.Catalog) == 0:
		body = DimStyle.Render("No documents")
	case m.previewVisible():
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.list.View(), m.previewView())
	default:
		body = m.list.View()
	}

	if m.rename.Active {
		body = lipgloss.JoinVertical(lipgloss.Left, body, m.rename.View(m.width))
	} else if m.confirm.Active() {
		body = lipgloss.JoinVertical(lipgloss.Left, body, m.confirm.View())
	}

	footer := m.help.View(m.keys)
	if m.state.Busy {
		footer = m.spinner.View() + " working…  " + footer
	}

	parts := []string{header, body, footer}
	if m.status != "" {
		parts = append(parts, ErrorStyle.Render(m.status))
	}
	return ContentPaddingStyle.Render(strings.Join(parts, "\n"))
}

func (m *PickerModel) previewView() string {
	width := m.width - m.width/2 - 4
	height := m.height - chromeHeight
	if width < 10 || height < 3 {
		return ""
	}

	entry, ok := m.Selected()
	text := DimStyle.Render("(empty)")
	if ok && entry.HasPreview() {
		text = m.previewText(entry, width-2)
	}

	return InactiveBorderStyle.
		Width(width).
		Height(height - 2).
		MaxHeight(height).
		Render(text)
}

func (m *PickerModel) previewText(entry models.FileEntry, width int) string {
	var modified time.Time
	if entry.Modified != nil {
		modified = *entry.Modified
	}
	if m.preview.path == entry.PreviewPath && m.preview.modified.Equal(modified) && m.preview.width == width {
		return m.preview.text
	}

	text := ""
	if note, err := m.docs.ReadNote(entry.PreviewPath); err != nil {
		text = ErrorStyle.Render(err.Error())
	} else {
		text = wordwrap.String(strings.TrimSpace(note.Body), width)
	}

	m.preview = previewCache{path: entry.PreviewPath, modified: modified, width: width, text: text}
	return text
}
