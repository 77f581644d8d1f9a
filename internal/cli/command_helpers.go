package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/afero"

	"github.com/pluqqy/docpick/pkg/document"
	"github.com/pluqqy/docpick/pkg/files"
	"github.com/pluqqy/docpick/pkg/models"
	"github.com/pluqqy/docpick/pkg/picker"
)

// CommandContext wires settings, the filesystem and the picker controller
// for a single command invocation
type CommandContext struct {
	Settings  *models.Settings
	FS        afero.Fs
	Logger    *slog.Logger
	StatePath string

	controller  *picker.Controller
	markdown    *document.Markdown
	unsubscribe func()

	mu        sync.Mutex
	persisted string
}

// NewCommandContext creates a new command context on the real filesystem
func NewCommandContext(settings *models.Settings, logger *slog.Logger) (*CommandContext, error) {
	statePath, err := StatePath()
	if err != nil {
		return nil, err
	}
	return NewCommandContextWithFs(afero.NewOsFs(), settings, logger, statePath), nil
}

// NewCommandContextWithFs creates a command context on fs
func NewCommandContextWithFs(fs afero.Fs, settings *models.Settings, logger *slog.Logger, statePath string) *CommandContext {
	if settings == nil {
		settings = models.DefaultSettings()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CommandContext{
		Settings:  settings,
		FS:        fs,
		Logger:    logger,
		StatePath: statePath,
	}
}

// Dir returns the normalized document directory
func (c *CommandContext) Dir() string {
	return files.NormalizePath(c.Settings.Documents.Dir)
}

// Markdown returns the note type backing the controller
func (c *CommandContext) Markdown() *document.Markdown {
	if c.markdown == nil {
		c.markdown = document.NewMarkdown(c.FS)
	}
	return c.markdown
}

// Controller builds and activates the picker controller on first use. The
// document that was open last time is preferred, and every change of the
// open document is written back to the state file.
func (c *CommandContext) Controller(ctx context.Context) (*picker.Controller, error) {
	if c.controller != nil {
		return c.controller, nil
	}

	dir := c.Dir()
	controller := picker.New(picker.Options{
		Dir:    dir,
		Type:   c.Markdown(),
		FS:     c.FS,
		Logger: c.Logger,
	})

	preferred := ""
	if pointer, err := files.ReadOpenPointer(c.FS, c.StatePath); err != nil {
		c.Logger.Warn("ignoring unreadable state", "path", c.StatePath, "error", err)
	} else if files.SamePath(pointer.Dir, dir) {
		preferred = pointer.Path
	}
	c.persisted = preferred

	c.unsubscribe = controller.Subscribe(func(s picker.State) {
		c.persist(dir, s.OpenPath)
	})

	if err := controller.Activate(ctx, preferred); err != nil {
		c.unsubscribe()
		return nil, err
	}

	c.controller = controller
	return controller, nil
}

func (c *CommandContext) persist(dir, openPath string) {
	if openPath == "" {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if openPath == c.persisted {
		return
	}

	if err := files.WriteOpenPointer(c.FS, c.StatePath, models.OpenPointer{Dir: dir, Path: openPath}); err != nil {
		c.Logger.Warn("failed to persist open document", "path", c.StatePath, "error", err)
		return
	}
	c.persisted = openPath
}

// ResolveEntry finds a document by name, case-insensitively. A trailing
// extension is accepted.
func (c *CommandContext) ResolveEntry(ctx context.Context, name string) (models.FileEntry, error) {
	controller, err := c.Controller(ctx)
	if err != nil {
		return models.FileEntry{}, err
	}

	ext := "." + c.Markdown().Extension()
	if strings.HasSuffix(strings.ToLower(name), ext) {
		name = name[:len(name)-len(ext)]
	}

	entry, ok := controller.Snapshot().Catalog.Find(name)
	if !ok {
		return models.FileEntry{}, fmt.Errorf("document '%s' not found", name)
	}
	return entry, nil
}

// Close releases the controller and the open document
func (c *CommandContext) Close(ctx context.Context) error {
	if c.controller == nil {
		return nil
	}
	if c.unsubscribe != nil {
		c.unsubscribe()
	}
	err := c.controller.Close(ctx)
	c.controller = nil
	return err
}

// Listing scans the directory without activating the controller, so it
// never creates or opens a document. The open path is the last-open pointer.
func (c *CommandContext) Listing() (models.Catalog, string) {
	dir := c.Dir()
	catalog := files.RefreshCatalog(c.FS, dir, c.Markdown())

	openPath := ""
	if pointer, err := files.ReadOpenPointer(c.FS, c.StatePath); err == nil && files.SamePath(pointer.Dir, dir) {
		openPath = pointer.Path
	}
	return catalog, openPath
}
