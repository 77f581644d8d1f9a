// Package picker coordinates the document catalog and the open-document
// session. Every intent that touches the disk or switches documents goes
// through a single-flight guard, and the catalog is refreshed before the
// guard is released so the published listing always reflects the last
// mutation.
package picker

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"

	"github.com/pluqqy/docpick/pkg/document"
	"github.com/pluqqy/docpick/pkg/files"
	"github.com/pluqqy/docpick/pkg/guard"
	"github.com/pluqqy/docpick/pkg/models"
	"github.com/pluqqy/docpick/pkg/session"
)

// Options configures a Controller
type Options struct {
	Dir    string
	Type   document.Type
	FS     afero.Fs
	Logger *slog.Logger
}

// Controller is the document picker state machine
type Controller struct {
	dir     string
	fs      afero.Fs
	docType document.Type
	logger  *slog.Logger
	guard   *guard.Guard
	session *session.Session

	mu     sync.Mutex
	state  State
	subs   []subscription
	nextID int
}

// New creates a controller with an empty catalog. Call Activate to scan the
// directory and open a document.
func New(opts Options) *Controller {
	fs := opts.FS
	if fs == nil {
		fs = afero.NewOsFs()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	c := &Controller{
		dir:     files.NormalizePath(opts.Dir),
		fs:      fs,
		docType: opts.Type,
		logger:  logger.With("component", "picker"),
		state:   State{Catalog: models.Catalog{}},
	}
	c.session = session.New(fs, opts.Type, c.logger)
	c.guard = guard.New(func(busy bool) {
		c.update(func(s *State) { s.Busy = busy })
	})
	return c
}

// Dir returns the managed directory
func (c *Controller) Dir() string {
	return c.dir
}

// OpenPath returns the path of the open document
func (c *Controller) OpenPath() string {
	return c.session.OpenPath()
}

// Snapshot returns a copy of the current state
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// Subscribe registers fn to receive every state change and returns a
// function that removes it
func (c *Controller) Subscribe(fn Observer) func() {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.subs = append(c.subs, subscription{id: id, fn: fn})
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		for i, sub := range c.subs {
			if sub.id == id {
				c.subs = append(c.subs[:i], c.subs[i+1:]...)
				return
			}
		}
	}
}

// update mutates the state under the lock and notifies observers outside it
func (c *Controller) update(mutate func(*State)) {
	c.mu.Lock()
	mutate(&c.state)
	snapshot := c.state.clone()
	subs := make([]subscription, len(c.subs))
	copy(subs, c.subs)
	c.mu.Unlock()

	for _, sub := range subs {
		sub.fn(snapshot)
	}
}

// run admits op through the guard. A rejected request is dropped and
// reported as ErrBusy. The open path is published again after every admitted
// operation, failed ones included, since a failed switch may leave nothing
// open.
func (c *Controller) run(ctx context.Context, name string, op func(ctx context.Context) error) error {
	admitted, err := c.guard.TryRun(ctx, op)
	if !admitted {
		c.logger.Debug("operation dropped while busy", "op", name)
		return ErrBusy
	}

	openPath := c.session.OpenPath()
	if err != nil {
		c.logger.Warn("operation failed", "op", name, "error", err)
		c.update(func(s *State) {
			s.LastError = err
			s.OpenPath = openPath
		})
		return err
	}

	c.logger.Debug("operation finished", "op", name, "open", openPath)
	c.update(func(s *State) {
		s.LastError = nil
		s.OpenPath = openPath
	})
	return nil
}

// refresh rescans the directory and publishes the new listing together with
// the open path
func (c *Controller) refresh() {
	catalog := files.RefreshCatalog(c.fs, c.dir, c.docType)
	openPath := c.session.OpenPath()
	c.update(func(s *State) {
		s.Catalog = catalog
		s.OpenPath = openPath
	})
}

func (c *Controller) catalog() models.Catalog {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Catalog.Clone()
}

// Activate scans the directory and makes sure a document is open. The
// preferred path is tried first when it is still listed, then the listing
// from newest to oldest, so one unreadable file does not block the rest. An
// empty directory gets a new document.
func (c *Controller) Activate(ctx context.Context, preferred string) error {
	return c.run(ctx, "activate", func(ctx context.Context) error {
		if err := c.fs.MkdirAll(c.dir, 0o755); err != nil {
			return &OperationError{Op: "activate", Path: c.dir, Err: err}
		}

		c.refresh()
		if c.session.OpenPath() != "" {
			return nil
		}

		catalog := c.catalog()
		if len(catalog) == 0 {
			if _, err := c.session.CreateAndSwitch(ctx, c.dir, c.docType.NewDocumentBaseName(), c.docType.Extension()); err != nil {
				c.refresh()
				return &OperationError{Op: "create", Err: err}
			}
			c.refresh()
			return nil
		}

		var firstErr error
		for _, target := range activationOrder(catalog, preferred) {
			err := c.session.SwitchTo(ctx, target)
			if err == nil {
				c.refresh()
				return nil
			}
			c.logger.Warn("skipping document that failed to open", "path", target, "error", err)
			if firstErr == nil {
				firstErr = &OperationError{Op: "open", Path: files.DisplayName(target), Err: err}
			}
		}
		return firstErr
	})
}

// activationOrder lists the paths Activate tries: the preferred one when it
// is listed, then every entry in listing order
func activationOrder(catalog models.Catalog, preferred string) []string {
	order := make([]string, 0, len(catalog)+1)
	if preferred != "" {
		if idx := catalog.Index(files.NormalizePath(preferred)); idx >= 0 {
			order = append(order, catalog[idx].Path)
		}
	}
	for _, entry := range catalog {
		if len(order) > 0 && files.SamePath(order[0], entry.Path) {
			continue
		}
		order = append(order, entry.Path)
	}
	return order
}

// Refresh rescans the directory
func (c *Controller) Refresh(ctx context.Context) error {
	return c.run(ctx, "refresh", func(ctx context.Context) error {
		c.refresh()
		return nil
	})
}

// Create makes a new numbered document and opens it
func (c *Controller) Create(ctx context.Context) error {
	return c.run(ctx, "create", func(ctx context.Context) error {
		if _, err := c.session.CreateAndSwitch(ctx, c.dir, c.docType.NewDocumentBaseName(), c.docType.Extension()); err != nil {
			return &OperationError{Op: "create", Err: err}
		}
		c.refresh()
		return nil
	})
}

// Open switches to entry and dismisses the picker. Opening the document
// that is already open only dismisses.
func (c *Controller) Open(ctx context.Context, entry models.FileEntry) error {
	return c.run(ctx, "open", func(ctx context.Context) error {
		if c.session.IsOpen(entry.Path) {
			c.update(func(s *State) { s.Visible = false })
			return nil
		}

		if err := c.session.SwitchTo(ctx, entry.Path); err != nil {
			return &OperationError{Op: "open", Path: entry.Name, Err: err}
		}
		c.refresh()
		c.update(func(s *State) { s.Visible = false })
		return nil
	})
}

// Rename moves entry to a sibling file called newName. Renaming to the
// current name does nothing. Validation failures are returned as
// files.ValidationErrors before anything on disk changes.
func (c *Controller) Rename(ctx context.Context, entry models.FileEntry, newName string) error {
	return c.run(ctx, "rename", func(ctx context.Context) error {
		if newName == entry.Name {
			c.update(func(s *State) { s.PendingRename = nil })
			return nil
		}
		if newName == "" {
			return ErrEmptyName
		}

		catalog := c.catalog()
		if errs := files.ValidateName(newName, catalog.Names(), entry.Name); len(errs) > 0 {
			return errs
		}

		target := filepath.Join(filepath.Dir(entry.Path), newName+filepath.Ext(entry.Path))
		if err := files.MoveFile(c.fs, entry.Path, target); err != nil {
			return &OperationError{Op: "rename", Path: entry.Name, Err: err}
		}
		c.session.Relocate(entry.Path, target)

		c.update(func(s *State) { s.PendingRename = nil })
		c.refresh()
		return nil
	})
}

// Duplicate copies entry to "<name> 2" (or the next free number) and opens
// the copy
func (c *Controller) Duplicate(ctx context.Context, entry models.FileEntry) error {
	return c.run(ctx, "duplicate", func(ctx context.Context) error {
		catalog := c.catalog()
		ext := filepath.Ext(entry.Path)
		target, err := files.DuplicatePath(c.fs, filepath.Dir(entry.Path), entry.Name, ext, catalog.Names())
		if err != nil {
			return &OperationError{Op: "duplicate", Path: entry.Name, Err: err}
		}

		if err := files.CopyFile(c.fs, entry.Path, target); err != nil {
			return &OperationError{Op: "duplicate", Path: entry.Name, Err: err}
		}

		if err := c.session.SwitchTo(ctx, target); err != nil {
			if rmErr := c.fs.Remove(target); rmErr != nil {
				err = errors.Join(err, rmErr)
			}
			return &OperationError{Op: "duplicate", Path: entry.Name, Err: err}
		}

		c.refresh()
		return nil
	})
}

// Delete removes entry from disk. The last remaining document cannot be
// deleted. Deleting the open document first switches to its successor: the
// entry after it, or the one before it when it is last in the listing.
func (c *Controller) Delete(ctx context.Context, entry models.FileEntry) error {
	return c.run(ctx, "delete", func(ctx context.Context) error {
		catalog := c.catalog()
		if len(catalog) < 2 {
			return ErrLastDocument
		}

		idx := catalog.Index(files.NormalizePath(entry.Path))
		if idx < 0 {
			return ErrNotInCatalog
		}

		if c.session.IsOpen(entry.Path) {
			successor := catalog[Successor(len(catalog), idx)]
			if err := c.session.SwitchTo(ctx, successor.Path); err != nil {
				return &OperationError{Op: "delete", Path: entry.Name, Err: err}
			}
		}

		if err := files.RemoveFile(c.fs, entry.Path); err != nil {
			c.refresh()
			return &OperationError{Op: "delete", Path: entry.Name, Err: err}
		}

		c.refresh()
		return nil
	})
}

// Successor returns the index of the entry that replaces the one at idx in
// a listing of n entries: the next one, or the previous one for the last.
func Successor(n, idx int) int {
	if idx == n-1 {
		return idx - 1
	}
	return idx + 1
}

// CanDelete reports whether entry may be deleted right now
func (c *Controller) CanDelete(entry models.FileEntry) bool {
	catalog := c.catalog()
	return len(catalog) >= 2 && catalog.Index(files.NormalizePath(entry.Path)) >= 0
}

// BeginRename marks entry as the target of a rename dialog
func (c *Controller) BeginRename(entry models.FileEntry) {
	c.update(func(s *State) { s.PendingRename = &entry })
}

// CancelRename clears the pending rename target
func (c *Controller) CancelRename() {
	c.update(func(s *State) { s.PendingRename = nil })
}

// Show marks the picker as visible
func (c *Controller) Show() {
	c.update(func(s *State) { s.Visible = true })
}

// Present shows the picker and, under the guard, saves the open document and
// rescans the directory so the listing is current. The picker stays visible
// when the guard rejects the request.
func (c *Controller) Present(ctx context.Context) error {
	c.Show()
	return c.run(ctx, "present", func(ctx context.Context) error {
		defer c.refresh()
		if c.session.OpenPath() == "" {
			return nil
		}
		if err := c.session.Save(ctx); err != nil {
			return &OperationError{Op: "save", Path: files.DisplayName(c.session.OpenPath()), Err: err}
		}
		return nil
	})
}

// CanDismiss reports whether the picker may be closed
func (c *Controller) CanDismiss() bool {
	return !c.guard.Busy()
}

// Dismiss hides the picker unless an operation is running
func (c *Controller) Dismiss() bool {
	if !c.CanDismiss() {
		return false
	}
	c.update(func(s *State) { s.Visible = false })
	return true
}

// Close closes the open document and drops all observers
func (c *Controller) Close(ctx context.Context) error {
	err := c.session.Close(ctx)
	c.mu.Lock()
	c.subs = nil
	c.mu.Unlock()
	return err
}
