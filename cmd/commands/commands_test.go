package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pluqqy/docpick/internal/cli"
)

type testEnv struct {
	dir    string
	stdout *bytes.Buffer
	stdin  string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	t.Setenv(cli.ConfigDirEnv, t.TempDir())
	env := &testEnv{dir: t.TempDir(), stdout: &bytes.Buffer{}}
	t.Cleanup(func() {
		cli.SetIO(os.Stdin, os.Stdout, os.Stderr)
		cli.SetGlobalFlags(false, false, false)
	})
	return env
}

// writeNote creates a note whose modification time is age in the past
func (e *testEnv) writeNote(t *testing.T, name, content string, age time.Duration) {
	t.Helper()
	path := filepath.Join(e.dir, name+".md")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	mtime := time.Now().Add(-age)
	require.NoError(t, os.Chtimes(path, mtime, mtime))
}

func (e *testEnv) exists(name string) bool {
	_, err := os.Stat(filepath.Join(e.dir, name+".md"))
	return err == nil
}

// run executes docpick with args against the env directory
func (e *testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	e.stdout.Reset()
	cli.SetIO(strings.NewReader(e.stdin), e.stdout, &bytes.Buffer{})

	root := NewRootCommand("1.2.3", nil)
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--dir", e.dir, "--no-color"}, args...))

	err := root.Execute()
	return out.String() + e.stdout.String(), err
}

func TestVersionCommand(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "docpick version 1.2.3\n", out)
}

func TestRootCommand_InvalidOutputFormat(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run(t, "list", "-o", "xml")
	assert.Error(t, err)
}

func TestRootCommand_DirMustBeDirectory(t *testing.T) {
	env := newTestEnv(t)
	env.writeNote(t, "Plain", "text", time.Minute)

	_, err := env.run(t, "--dir", filepath.Join(env.dir, "Plain.md"), "list")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a directory")
}

func TestRootCommand_MissingDirIsCreated(t *testing.T) {
	env := newTestEnv(t)
	dir := filepath.Join(env.dir, "fresh")

	_, err := env.run(t, "--dir", dir, "new")

	require.NoError(t, err)
	_, statErr := os.Stat(filepath.Join(dir, "Untitled 1.md"))
	assert.NoError(t, statErr)
}

func TestCreateCommand(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "new")
	require.NoError(t, err)
	assert.Contains(t, out, "Untitled 1")
	assert.True(t, env.exists("Untitled 1"))
	assert.False(t, env.exists("Untitled 2"), "the first document comes from activation alone")

	out, err = env.run(t, "new")
	require.NoError(t, err)
	assert.Contains(t, out, "Untitled 2")
	assert.True(t, env.exists("Untitled 2"))
}

func TestListCommand(t *testing.T) {
	env := newTestEnv(t)
	env.writeNote(t, "Older", "old text", 2*time.Hour)
	env.writeNote(t, "Newer", "", time.Hour)

	out, err := env.run(t, "list", "-o", "json")
	require.NoError(t, err)

	var result ListResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 2, result.Count)
	require.Len(t, result.Items, 2)
	assert.Equal(t, "Newer", result.Items[0].Name)
	assert.True(t, result.Items[0].IsEmpty)
	assert.Equal(t, "Older", result.Items[1].Name)
	assert.Empty(t, result.Items[1].Path, "paths are only shown with --paths")

	out, err = env.run(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Newer (empty)")
	assert.Contains(t, out, "2 hours ago")
	assert.Contains(t, out, "2 document(s)")
}

func TestListCommand_DoesNotCreateDocuments(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No documents found")

	entries, err := os.ReadDir(env.dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestListCommand_Match(t *testing.T) {
	env := newTestEnv(t)
	env.writeNote(t, "Meeting Monday", "a", time.Hour)
	env.writeNote(t, "Meeting Friday", "b", 2*time.Hour)
	env.writeNote(t, "Groceries", "c", 3*time.Hour)

	out, err := env.run(t, "list", "--match", "meeting*", "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "count: 2")
	assert.NotContains(t, out, "Groceries")

	out, err = env.run(t, "list", "--match", "nothing*")
	require.NoError(t, err)
	assert.Contains(t, out, "No documents match")
}

func TestOpenAndCurrentCommands(t *testing.T) {
	env := newTestEnv(t)
	env.writeNote(t, "Older", "old text", 2*time.Hour)
	env.writeNote(t, "Newer", "new text", time.Hour)

	out, err := env.run(t, "current", "-o", "json")
	require.NoError(t, err)
	var current CurrentResult
	require.NoError(t, json.Unmarshal([]byte(out), &current))
	assert.Equal(t, "Newer", current.Name)
	assert.Equal(t, 2, current.Stats.Words)

	_, err = env.run(t, "open", "older")
	require.NoError(t, err)

	out, err = env.run(t, "current")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Older\n"), out)

	out, err = env.run(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "*  Older")

	_, err = env.run(t, "open", "Missing")
	assert.Error(t, err)
}

func TestRenameCommand(t *testing.T) {
	env := newTestEnv(t)
	env.writeNote(t, "Draft", "text", time.Hour)
	env.writeNote(t, "Plan", "text", 2*time.Hour)

	_, err := env.run(t, "rename", "Draft", "Final")
	require.NoError(t, err)
	assert.True(t, env.exists("Final"))
	assert.False(t, env.exists("Draft"))

	_, err = env.run(t, "rename", "Final", "plan")
	assert.Error(t, err, "names collide ignoring case")

	_, err = env.run(t, "rename", "Final", "a/b")
	assert.Error(t, err)
	assert.True(t, env.exists("Final"))
}

func TestDuplicateCommand(t *testing.T) {
	env := newTestEnv(t)
	env.writeNote(t, "Draft", "text", time.Hour)

	out, err := env.run(t, "duplicate", "Draft")
	require.NoError(t, err)
	assert.Contains(t, out, "Draft 2")

	content, err := os.ReadFile(filepath.Join(env.dir, "Draft 2.md"))
	require.NoError(t, err)
	assert.Equal(t, "text", string(content))
}

func TestDeleteCommand(t *testing.T) {
	env := newTestEnv(t)
	env.writeNote(t, "Keep", "text", time.Hour)
	env.writeNote(t, "Drop", "text", 2*time.Hour)

	env.stdin = "n\n"
	out, err := env.run(t, "delete", "Drop")
	require.NoError(t, err)
	assert.Contains(t, out, "Deletion cancelled")
	assert.True(t, env.exists("Drop"))

	env.stdin = "y\n"
	_, err = env.run(t, "delete", "Drop")
	require.NoError(t, err)
	assert.False(t, env.exists("Drop"))

	_, err = env.run(t, "delete", "Keep", "--force")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "last remaining document")
	assert.True(t, env.exists("Keep"))
}

func TestDeleteCommand_EmptyAndOpenDocuments(t *testing.T) {
	env := newTestEnv(t)
	env.writeNote(t, "First", "text", time.Hour)
	env.writeNote(t, "Second", "text", 2*time.Hour)
	env.writeNote(t, "Blank", "", 3*time.Hour)

	_, err := env.run(t, "delete", "Blank")
	require.NoError(t, err)
	assert.False(t, env.exists("Blank"), "empty documents need no confirmation")

	out, err := env.run(t, "delete", "First", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Now open: Second")
	assert.False(t, env.exists("First"))
}

func TestClipboardCommand(t *testing.T) {
	env := newTestEnv(t)
	env.writeNote(t, "Note", "---\ntitle: Note\n---\n\nbody text\n", time.Hour)

	var copied string
	clipboardWrite = func(s string) error {
		copied = s
		return nil
	}
	t.Cleanup(func() { clipboardWrite = defaultClipboardWrite })

	_, err := env.run(t, "copy")
	require.NoError(t, err)
	assert.Equal(t, "body text\n", copied)

	_, err = env.run(t, "copy", "Note", "--raw")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(copied, "---\ntitle: Note"))
}
