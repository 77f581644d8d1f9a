package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"

	"github.com/pluqqy/docpick/pkg/document"
	"github.com/pluqqy/docpick/pkg/picker"
)

const testDir = "/docs"

type testEnv struct {
	fs   afero.Fs
	ctrl *picker.Controller
	app  *App
}

// newTestEnv writes the named notes, newest first, and starts an App over
// them. A note with empty content is an empty document.
func newTestEnv(t *testing.T, confirmDelete bool, notes ...[2]string) *testEnv {
	t.Helper()
	fs := afero.NewMemMapFs()
	base := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	for i, note := range notes {
		path := testDir + "/" + note[0] + ".md"
		if err := afero.WriteFile(fs, path, []byte(note[1]), 0o644); err != nil {
			t.Fatal(err)
		}
		mtime := base.Add(-time.Duration(i) * time.Hour)
		if err := fs.Chtimes(path, mtime, mtime); err != nil {
			t.Fatal(err)
		}
	}

	docs := document.NewMarkdown(fs)
	ctrl := picker.New(picker.Options{Dir: testDir, Type: docs, FS: fs})
	if err := ctrl.Activate(context.Background(), ""); err != nil {
		t.Fatalf("Activate() error = %v", err)
	}

	app := NewApp(Options{Controller: ctrl, Documents: docs, ShowPreview: true, ConfirmDelete: confirmDelete})
	t.Cleanup(func() {
		app.Close()
		_ = ctrl.Close(context.Background())
	})
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	return &testEnv{fs: fs, ctrl: ctrl, app: app}
}

// press sends a key and runs the resulting operation, if any. Plain typing
// goes through app.Update directly since the text input returns blink
// commands that wait on a timer.
func (e *testEnv) press(t *testing.T, msg tea.KeyMsg) {
	t.Helper()
	_, cmd := e.app.Update(msg)
	if cmd == nil {
		return
	}
	if result, ok := cmd().(opDoneMsg); ok {
		e.app.Update(result)
	}
}

func (e *testEnv) names() []string {
	return e.app.State().Catalog.Names()
}

func (e *testEnv) selectName(t *testing.T, name string) {
	t.Helper()
	for i, n := range e.names() {
		if n == name {
			e.app.picker.Select(i)
			return
		}
	}
	t.Fatalf("%q not listed in %v", name, e.names())
}

func threeNotes() [][2]string {
	return [][2]string{
		{"Alpha", "# Alpha\n\nfirst"},
		{"Beta", "# Beta\n"},
		{"Gamma", ""},
	}
}

func TestApp_StartsWithPickerOverNewestDocument(t *testing.T) {
	env := newTestEnv(t, true, threeNotes()...)

	state := env.app.State()
	if !state.Visible {
		t.Error("picker should start visible")
	}
	if got := strings.Join(env.names(), ","); got != "Alpha,Beta,Gamma" {
		t.Errorf("catalog = %s, want Alpha,Beta,Gamma", got)
	}
	if state.OpenPath != testDir+"/Alpha.md" {
		t.Errorf("OpenPath = %q, want Alpha", state.OpenPath)
	}

	view := env.app.View()
	for _, want := range []string{"Documents", "Alpha", "Beta", "first"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestApp_OpenDismissesPicker(t *testing.T) {
	env := newTestEnv(t, true, threeNotes()...)

	env.selectName(t, "Beta")
	env.press(t, tea.KeyMsg{Type: tea.KeyEnter})

	state := env.app.State()
	if state.Visible {
		t.Error("opening a document should dismiss the picker")
	}
	if state.OpenPath != testDir+"/Beta.md" {
		t.Errorf("OpenPath = %q, want Beta", state.OpenPath)
	}
	if !strings.Contains(env.app.View(), "Beta") {
		t.Error("document view should show the opened note")
	}

	env.press(t, keyRunes("p"))
	if !env.app.State().Visible {
		t.Error("p should bring the picker back")
	}

	env.press(t, tea.KeyMsg{Type: tea.KeyEsc})
	if env.app.State().Visible {
		t.Error("esc should dismiss the picker")
	}
}

func TestApp_ShowingPickerRescansDirectory(t *testing.T) {
	env := newTestEnv(t, true, threeNotes()...)
	env.press(t, tea.KeyMsg{Type: tea.KeyEsc})

	if err := afero.WriteFile(env.fs, testDir+"/Delta.md", []byte("new"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := afero.WriteFile(env.fs, testDir+"/Alpha.md", []byte("# Alpha\n\nedited"), 0o644); err != nil {
		t.Fatal(err)
	}
	env.press(t, keyRunes("p"))

	if !env.app.State().Visible {
		t.Fatal("p should show the picker")
	}
	if got := len(env.names()); got != 4 {
		t.Errorf("catalog = %v, want the new note listed", env.names())
	}
	content, err := afero.ReadFile(env.fs, testDir+"/Alpha.md")
	if err != nil || string(content) != "# Alpha\n\nedited" {
		t.Errorf("open note content = %q, err = %v, want the outside edit kept", content, err)
	}
}

func TestApp_CreateOpensNumberedDocument(t *testing.T) {
	env := newTestEnv(t, true, threeNotes()...)

	env.press(t, keyRunes("n"))

	state := env.app.State()
	if state.OpenPath != testDir+"/Untitled 1.md" {
		t.Errorf("OpenPath = %q, want Untitled 1", state.OpenPath)
	}
	if len(state.Catalog) != 4 {
		t.Errorf("catalog has %d entries, want 4", len(state.Catalog))
	}
	if env.app.statusMsg != "Created Untitled 1" {
		t.Errorf("status = %q", env.app.statusMsg)
	}
}

func TestApp_DuplicateOpensCopy(t *testing.T) {
	env := newTestEnv(t, true, threeNotes()...)

	env.selectName(t, "Beta")
	env.press(t, keyRunes("c"))

	if got := env.app.State().OpenPath; got != testDir+"/Beta 2.md" {
		t.Errorf("OpenPath = %q, want Beta 2", got)
	}
	content, err := afero.ReadFile(env.fs, testDir+"/Beta 2.md")
	if err != nil || string(content) != "# Beta\n" {
		t.Errorf("copy content = %q, err = %v", content, err)
	}
}

func TestApp_DeleteAsksForConfirmation(t *testing.T) {
	env := newTestEnv(t, true, threeNotes()...)

	env.selectName(t, "Beta")
	env.press(t, keyRunes("d"))
	if !env.app.picker.Confirming() {
		t.Fatal("deleting a non-empty document should ask first")
	}

	env.press(t, keyRunes("n"))
	if len(env.names()) != 3 {
		t.Fatalf("declining should keep the document, catalog = %v", env.names())
	}

	env.press(t, keyRunes("d"))
	env.press(t, keyRunes("y"))
	if got := strings.Join(env.names(), ","); got != "Alpha,Gamma" {
		t.Errorf("catalog = %s, want Alpha,Gamma", got)
	}
	if exists, _ := afero.Exists(env.fs, testDir+"/Beta.md"); exists {
		t.Error("Beta.md should be removed")
	}
}

func TestApp_DeleteEmptyDocumentSkipsConfirmation(t *testing.T) {
	env := newTestEnv(t, true, threeNotes()...)

	env.selectName(t, "Gamma")
	env.press(t, keyRunes("d"))

	if env.app.picker.Confirming() {
		t.Error("empty documents should be deleted without asking")
	}
	if got := strings.Join(env.names(), ","); got != "Alpha,Beta" {
		t.Errorf("catalog = %s, want Alpha,Beta", got)
	}
}

func TestApp_DeleteOpenDocumentOpensSuccessor(t *testing.T) {
	env := newTestEnv(t, false, threeNotes()...)

	env.selectName(t, "Alpha")
	env.press(t, keyRunes("d"))

	if got := env.app.State().OpenPath; got != testDir+"/Beta.md" {
		t.Errorf("OpenPath = %q, want Beta", got)
	}
}

func TestApp_DeleteLastDocumentIsRejected(t *testing.T) {
	env := newTestEnv(t, false, [2]string{"Only", "text"})

	env.press(t, keyRunes("d"))

	if len(env.names()) != 1 {
		t.Errorf("catalog = %v, want the single document kept", env.names())
	}
	if !strings.Contains(env.app.View(), picker.ErrLastDocument.Error()) {
		t.Error("view should explain why the delete was refused")
	}
}

func TestApp_Rename(t *testing.T) {
	env := newTestEnv(t, true, threeNotes()...)

	env.selectName(t, "Alpha")
	env.app.Update(keyRunes("r"))
	if !env.app.picker.Renaming() {
		t.Fatal("r should open the rename dialog")
	}
	if pending := env.app.State().PendingRename; pending == nil || pending.Name != "Alpha" {
		t.Fatalf("PendingRename = %v, want Alpha", pending)
	}

	for range "Alpha" {
		env.app.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	}
	for _, r := range "beta" {
		env.app.Update(keyRunes(string(r)))
	}
	env.press(t, tea.KeyMsg{Type: tea.KeyEnter})
	if !env.app.picker.Renaming() {
		t.Fatal("a colliding name must not be committed")
	}

	for _, r := range " 2" {
		env.app.Update(keyRunes(string(r)))
	}
	env.press(t, tea.KeyMsg{Type: tea.KeyEnter})

	if env.app.picker.Renaming() {
		t.Error("rename dialog should close after a successful rename")
	}
	state := env.app.State()
	if state.PendingRename != nil {
		t.Error("PendingRename should be cleared")
	}
	if state.OpenPath != testDir+"/beta 2.md" {
		t.Errorf("open document should follow the rename, got %q", state.OpenPath)
	}
}

func TestApp_RenameCancel(t *testing.T) {
	env := newTestEnv(t, true, threeNotes()...)

	env.app.Update(keyRunes("r"))
	env.press(t, tea.KeyMsg{Type: tea.KeyEsc})

	if env.app.picker.Renaming() {
		t.Error("esc should close the rename dialog")
	}
	if env.app.State().PendingRename != nil {
		t.Error("PendingRename should be cleared on cancel")
	}
	if !env.app.State().Visible {
		t.Error("cancelling a rename should not dismiss the picker")
	}
}

func TestApp_BusyResultIsSilent(t *testing.T) {
	env := newTestEnv(t, true, threeNotes()...)

	env.app.Update(opDoneMsg{op: "create", err: picker.ErrBusy})
	if env.app.statusMsg != "" {
		t.Errorf("busy rejection should not show a status, got %q", env.app.statusMsg)
	}
}
