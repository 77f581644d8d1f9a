// Package document defines the capability a document type must provide to
// be managed by the picker, and the Markdown note type docpick ships with.
package document

import "context"

// Purpose tells a handle why it is being saved
type Purpose int

const (
	// SaveCreating writes a brand new file and fails if one already exists
	SaveCreating Purpose = iota
	// SaveOverwrite replaces the file at the target path
	SaveOverwrite
)

func (p Purpose) String() string {
	switch p {
	case SaveCreating:
		return "creating"
	case SaveOverwrite:
		return "overwrite"
	default:
		return "unknown"
	}
}

// Type describes one kind of document: its file extension, how new files are
// named, and how to inspect a file without opening it.
type Type interface {
	// Extension is the file extension without the leading dot
	Extension() string
	// NewDocumentBaseName is the name new documents are numbered from
	NewDocumentBaseName() string
	// NewHandle binds a closed handle to path
	NewHandle(path string) Handle
	// IsEmptyDocument reports whether the file holds no user content
	IsEmptyDocument(path string) bool
	// PreviewPath returns a file that can be shown as a preview, or ""
	PreviewPath(path string) string
}

// Handle is the live binding to one document instance
type Handle interface {
	Path() string
	Open(ctx context.Context) error
	Close(ctx context.Context) error
	Save(ctx context.Context, path string, purpose Purpose) error
	// Relocate rebinds the handle after its file was moved on disk.
	// Content is not reloaded.
	Relocate(path string)
}
