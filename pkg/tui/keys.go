package tui

import "github.com/charmbracelet/bubbles/key"

// pickerKeyMap holds the picker bindings
type pickerKeyMap struct {
	Open      key.Binding
	New       key.Binding
	Rename    key.Binding
	Duplicate key.Binding
	Delete    key.Binding
	Refresh   key.Binding
	Dismiss   key.Binding
	Quit      key.Binding
}

func newPickerKeyMap() pickerKeyMap {
	return pickerKeyMap{
		Open:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		New:       key.NewBinding(key.WithKeys("n", "ctrl+n"), key.WithHelp("n", "new")),
		Rename:    key.NewBinding(key.WithKeys("r", "f2"), key.WithHelp("r", "rename")),
		Duplicate: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "duplicate")),
		Delete:    key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		Refresh:   key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "rescan")),
		Dismiss:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Quit:      key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k pickerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.New, k.Rename, k.Duplicate, k.Delete, k.Dismiss}
}

func (k pickerKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Open, k.New, k.Rename, k.Duplicate},
		{k.Delete, k.Refresh, k.Dismiss, k.Quit},
	}
}

// documentKeyMap holds the bindings of the open-document view
type documentKeyMap struct {
	Picker key.Binding
	Edit   key.Binding
	Quit   key.Binding
}

func newDocumentKeyMap() documentKeyMap {
	return documentKeyMap{
		Picker: key.NewBinding(key.WithKeys("p", "ctrl+o"), key.WithHelp("p", "documents")),
		Edit:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k documentKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Picker, k.Edit, k.Quit}
}

func (k documentKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
