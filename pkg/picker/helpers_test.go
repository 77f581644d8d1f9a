package picker

import (
	"context"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/pluqqy/docpick/pkg/document"
	"github.com/pluqqy/docpick/pkg/models"
)

const testDir = "/docs"

var baseTime = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

// countingType wraps the Markdown type and records handle activity
type countingType struct {
	*document.Markdown
	opens  atomic.Int32
	closes atomic.Int32

	mu       sync.Mutex
	gate     chan struct{}
	entered  chan struct{}
	failOpen map[string]error
}

func newCountingType(fs afero.Fs) *countingType {
	return &countingType{Markdown: document.NewMarkdown(fs)}
}

func (t *countingType) NewHandle(path string) document.Handle {
	return &countingHandle{Handle: t.Markdown.NewHandle(path), t: t}
}

// failOpens makes Open fail with err for path
func (t *countingType) failOpens(path string, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.failOpen == nil {
		t.failOpen = map[string]error{}
	}
	t.failOpen[path] = err
}

// blockOpens makes the next Open calls wait until the returned func is called
func (t *countingType) blockOpens() (entered <-chan struct{}, release func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.gate = make(chan struct{})
	t.entered = make(chan struct{}, 8)
	gate := t.gate
	return t.entered, func() {
		t.mu.Lock()
		t.gate = nil
		t.mu.Unlock()
		close(gate)
	}
}

type countingHandle struct {
	document.Handle
	t *countingType
}

func (h *countingHandle) Open(ctx context.Context) error {
	h.t.opens.Add(1)
	h.t.mu.Lock()
	gate, entered := h.t.gate, h.t.entered
	failErr := h.t.failOpen[h.Path()]
	h.t.mu.Unlock()
	if gate != nil {
		entered <- struct{}{}
		<-gate
	}
	if failErr != nil {
		return failErr
	}
	return h.Handle.Open(ctx)
}

func (h *countingHandle) Close(ctx context.Context) error {
	h.t.closes.Add(1)
	return h.Handle.Close(ctx)
}

// writeDoc creates name.md in the test directory with the given age rank:
// higher offsets are newer.
func writeDoc(t *testing.T, fs afero.Fs, name, body string, offset time.Duration) string {
	t.Helper()
	path := filepath.Join(testDir, name+".md")
	require.NoError(t, afero.WriteFile(fs, path, []byte(body), 0o644))
	mod := baseTime.Add(offset)
	require.NoError(t, fs.Chtimes(path, mod, mod))
	return path
}

type fixture struct {
	fs   afero.Fs
	typ  *countingType
	ctrl *Controller
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll(testDir, 0o755))
	typ := newCountingType(fs)
	ctrl := New(Options{Dir: testDir, Type: typ, FS: fs})
	t.Cleanup(func() { ctrl.Close(context.Background()) })
	return &fixture{fs: fs, typ: typ, ctrl: ctrl}
}

// withABC creates A, B and C so that the catalog is [A, B, C]
func (f *fixture) withABC(t *testing.T) {
	t.Helper()
	writeDoc(t, f.fs, "A", "alpha", 3*time.Hour)
	writeDoc(t, f.fs, "B", "bravo", 2*time.Hour)
	writeDoc(t, f.fs, "C", "charlie", time.Hour)
}

func (f *fixture) activate(t *testing.T, preferred string) {
	t.Helper()
	require.NoError(t, f.ctrl.Activate(context.Background(), preferred))
}

func (f *fixture) entry(t *testing.T, name string) models.FileEntry {
	t.Helper()
	e, ok := f.ctrl.Snapshot().Catalog.Find(name)
	require.True(t, ok, "entry %q not in catalog", name)
	return e
}

func names(c models.Catalog) []string {
	return c.Names()
}
