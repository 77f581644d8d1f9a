// Package session owns the single open document and sequences the
// close-then-open transitions between documents.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/spf13/afero"

	"github.com/pluqqy/docpick/pkg/document"
	"github.com/pluqqy/docpick/pkg/files"
)

// State is the lifecycle state of the session's handle
type State int

const (
	Closed State = iota
	Opening
	Open
	Saving
	Closing
)

func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case Opening:
		return "opening"
	case Open:
		return "open"
	case Saving:
		return "saving"
	case Closing:
		return "closing"
	default:
		return "unknown"
	}
}

// Session holds the one open document handle. Transitions are expected to
// be serialized by the caller; the mutex only protects readers.
type Session struct {
	fs      afero.Fs
	docType document.Type
	logger  *slog.Logger

	mu     sync.RWMutex
	handle document.Handle
	state  State
}

// New creates a session with no open document
func New(fs afero.Fs, docType document.Type, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		fs:      fs,
		docType: docType,
		logger:  logger,
	}
}

// OpenPath returns the path of the open document, or "" when none is open
func (s *Session) OpenPath() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.handle == nil || s.state == Closed {
		return ""
	}
	return s.handle.Path()
}

// State reports the current handle state
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// IsOpen reports whether path is the open document
func (s *Session) IsOpen(path string) bool {
	return files.SamePath(s.OpenPath(), path)
}

func (s *Session) setState(state State) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

func (s *Session) publish(handle document.Handle, state State) {
	s.mu.Lock()
	s.handle = handle
	s.state = state
	s.mu.Unlock()
}

// SwitchTo makes the document at path the open one. Switching to the path
// that is already open does nothing. The previous handle is closed before
// the new one is opened, and the new handle is only published once it has
// opened successfully.
func (s *Session) SwitchTo(ctx context.Context, path string) error {
	path = files.NormalizePath(path)
	if s.IsOpen(path) {
		return nil
	}

	s.mu.RLock()
	prev := s.handle
	prevState := s.state
	s.mu.RUnlock()

	prevPath := ""
	if prev != nil && prevState != Closed {
		prevPath = prev.Path()
		s.setState(Closing)
		if err := prev.Close(ctx); err != nil {
			s.setState(prevState)
			return fmt.Errorf("failed to close %s: %w", files.DisplayName(prevPath), err)
		}
		s.setState(Closed)
	}

	next := s.docType.NewHandle(path)
	s.setState(Opening)
	if err := next.Open(ctx); err != nil {
		s.setState(Closed)
		s.restore(ctx, prevPath)
		return fmt.Errorf("failed to open %s: %w", files.DisplayName(path), err)
	}

	s.publish(next, Open)
	s.logger.Debug("switched document", "from", prevPath, "to", path)
	return nil
}

// restore reopens the previous document after a failed switch so the
// session is not left without an open document.
func (s *Session) restore(ctx context.Context, path string) {
	if path == "" {
		s.publish(nil, Closed)
		return
	}

	h := s.docType.NewHandle(path)
	if err := h.Open(ctx); err != nil {
		s.logger.Warn("failed to reopen previous document", "path", path, "error", err)
		s.publish(nil, Closed)
		return
	}
	s.publish(h, Open)
}

// CreateAndSwitch creates the first free "<base> N.<ext>" document in dir,
// saves it empty and switches to it. It returns the new path. The new file
// is removed again when it cannot be opened.
func (s *Session) CreateAndSwitch(ctx context.Context, dir, base, ext string) (string, error) {
	path, err := files.NewDocumentPath(s.fs, dir, base, ext)
	if err != nil {
		return "", err
	}
	path = files.NormalizePath(path)

	fresh := s.docType.NewHandle(path)
	if err := fresh.Save(ctx, path, document.SaveCreating); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", files.DisplayName(path), err)
	}

	if err := s.SwitchTo(ctx, path); err != nil {
		if rmErr := s.fs.Remove(path); rmErr != nil {
			err = errors.Join(err, rmErr)
		}
		return "", err
	}
	return path, nil
}

// Relocate rebinds the open handle after its file moved from oldPath to
// newPath. It reports whether the open document was affected.
func (s *Session) Relocate(oldPath, newPath string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.handle == nil || !files.SamePath(s.handle.Path(), oldPath) {
		return false
	}
	s.handle.Relocate(files.NormalizePath(newPath))
	return true
}

// Save writes the open document back to its own path
func (s *Session) Save(ctx context.Context) error {
	s.mu.RLock()
	h, state := s.handle, s.state
	s.mu.RUnlock()
	if h == nil || state != Open {
		return document.ErrNotOpen
	}

	s.setState(Saving)
	defer s.setState(Open)
	if err := h.Save(ctx, h.Path(), document.SaveOverwrite); err != nil {
		return fmt.Errorf("failed to save %s: %w", files.DisplayName(h.Path()), err)
	}
	return nil
}

// Close closes the open document, if any
func (s *Session) Close(ctx context.Context) error {
	s.mu.RLock()
	h, state := s.handle, s.state
	s.mu.RUnlock()
	if h == nil || state == Closed {
		return nil
	}

	s.setState(Closing)
	if err := h.Close(ctx); err != nil {
		s.setState(state)
		return fmt.Errorf("failed to close %s: %w", files.DisplayName(h.Path()), err)
	}
	s.publish(nil, Closed)
	return nil
}
