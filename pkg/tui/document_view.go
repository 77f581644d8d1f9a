package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wordwrap"

	"github.com/pluqqy/docpick/pkg/document"
	"github.com/pluqqy/docpick/pkg/files"
	"github.com/pluqqy/docpick/pkg/models"
	"github.com/pluqqy/docpick/pkg/utils"
)

// DocumentModel shows the open document read-only
type DocumentModel struct {
	docs     *document.Markdown
	viewport viewport.Model
	help     help.Model
	keys     documentKeyMap

	path     string
	modified time.Time
	title    string
	body     string
	stats    utils.TextStats
	err      error

	width  int
	height int
}

// NewDocumentModel creates the document view
func NewDocumentModel(docs *document.Markdown) *DocumentModel {
	return &DocumentModel{
		docs:     docs,
		viewport: viewport.New(0, 0),
		help:     help.New(),
		keys:     newDocumentKeyMap(),
	}
}

// SetSize updates the view dimensions
func (m *DocumentModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width
	m.viewport.Width = width - 2
	m.viewport.Height = height - 4
	m.render()
}

// Load shows entry, reloading only when it changed on disk
func (m *DocumentModel) Load(entry models.FileEntry) {
	var modified time.Time
	if entry.Modified != nil {
		modified = *entry.Modified
	}
	if entry.Path == m.path && modified.Equal(m.modified) && m.err == nil {
		return
	}

	m.path = entry.Path
	m.modified = modified
	m.title = entry.Name
	m.body = ""
	m.stats = utils.TextStats{}
	m.err = nil

	note, err := m.docs.ReadNote(entry.Path)
	if err != nil {
		m.err = err
	} else {
		if note.Meta.Title != "" {
			m.title = note.Meta.Title
		}
		m.body = note.Body
	}
	m.stats = utils.Measure(m.body)

	m.render()
	m.viewport.GotoTop()
}

// Path returns the document on display
func (m *DocumentModel) Path() string {
	return m.path
}

func (m *DocumentModel) render() {
	switch {
	case m.err != nil:
		m.viewport.SetContent(ErrorStyle.Render(m.err.Error()))
	case strings.TrimSpace(m.body) == "":
		m.viewport.SetContent(DimStyle.Render("(empty document)"))
	default:
		width := m.viewport.Width
		if width < 1 {
			width = 80
		}
		m.viewport.SetContent(wordwrap.String(m.body, width))
	}
}

// Update handles scrolling; app-level keys are matched by the caller
func (m *DocumentModel) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return cmd
}

// View renders the document view
func (m *DocumentModel) View() string {
	name := files.DisplayName(m.path)
	header := HeaderStyle.Render(m.title)
	if name != m.title && name != "" {
		header += "  " + DimStyle.Render(name)
	}
	header += "  " + DimStyle.Render(m.stats.String())

	return ContentPaddingStyle.Render(strings.Join([]string{
		header,
		m.viewport.View(),
		m.help.View(m.keys),
	}, "\n"))
}
