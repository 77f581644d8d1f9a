package document

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/pluqqy/docpick/pkg/files"
)

const (
	MarkdownExtension = "md"
	MarkdownBaseName  = "Untitled"
)

var (
	ErrNotOpen       = errors.New("document is not open")
	ErrAlreadyExists = errors.New("document already exists")
)

// Frontmatter is the optional YAML block at the top of a note
type Frontmatter struct {
	Title   string    `yaml:"title,omitempty"`
	Created time.Time `yaml:"created,omitempty"`
}

// Note is a parsed Markdown document
type Note struct {
	Meta Frontmatter
	Body string
}

// ParseNote splits content into frontmatter and body. Content without a
// leading "---" line has no frontmatter, and a leading block that is not a
// YAML mapping of known fields is a horizontal rule, so the whole content
// stays in the body.
func ParseNote(content []byte) Note {
	text := string(content)
	if !strings.HasPrefix(text, "---\n") && !strings.HasPrefix(text, "---\r\n") {
		return Note{Body: text}
	}

	lines := strings.SplitAfter(text, "\n")
	for i := 1; i < len(lines); i++ {
		if strings.TrimRight(lines[i], "\r\n") != "---" {
			continue
		}

		var meta Frontmatter
		header := strings.Join(lines[1:i], "")
		if err := yaml.Unmarshal([]byte(header), &meta); err != nil {
			return Note{Body: text}
		}
		body := strings.Join(lines[i+1:], "")
		return Note{Meta: meta, Body: strings.TrimPrefix(body, "\n")}
	}

	// Unterminated frontmatter is treated as plain text
	return Note{Body: text}
}

// Bytes renders the note back to its on-disk form
func (n Note) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if n.Meta != (Frontmatter{}) {
		header, err := yaml.Marshal(n.Meta)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal frontmatter: %w", err)
		}
		buf.WriteString("---\n")
		buf.Write(header)
		buf.WriteString("---\n\n")
	}
	buf.WriteString(n.Body)
	return buf.Bytes(), nil
}

// Equal reports whether both notes hold the same header and body
func (n Note) Equal(other Note) bool {
	return n.Meta.Title == other.Meta.Title &&
		n.Meta.Created.Equal(other.Meta.Created) &&
		n.Body == other.Body
}

// IsBlank reports whether the note body has no visible content
func (n Note) IsBlank() bool {
	return strings.TrimSpace(n.Body) == ""
}

// Markdown is the note document type
type Markdown struct {
	fs  afero.Fs
	now func() time.Time
}

// NewMarkdown creates the Markdown document type over fs
func NewMarkdown(fs afero.Fs) *Markdown {
	return &Markdown{fs: fs, now: time.Now}
}

func (m *Markdown) Extension() string           { return MarkdownExtension }
func (m *Markdown) NewDocumentBaseName() string { return MarkdownBaseName }

func (m *Markdown) NewHandle(path string) Handle {
	return &markdownHandle{fs: m.fs, now: m.now, path: path}
}

// IsEmptyDocument treats missing, unreadable and blank-bodied files as empty
func (m *Markdown) IsEmptyDocument(path string) bool {
	content, err := afero.ReadFile(m.fs, path)
	if err != nil || len(content) == 0 {
		return true
	}
	return ParseNote(content).IsBlank()
}

// PreviewPath returns the note itself when it has content to show
func (m *Markdown) PreviewPath(path string) string {
	if m.IsEmptyDocument(path) {
		return ""
	}
	return path
}

// ReadNote loads and parses the note at path without opening a handle
func (m *Markdown) ReadNote(path string) (Note, error) {
	content, err := afero.ReadFile(m.fs, path)
	if err != nil {
		return Note{}, fmt.Errorf("failed to read note %s: %w", path, err)
	}
	return ParseNote(content), nil
}

type markdownHandle struct {
	fs   afero.Fs
	now  func() time.Time
	path string
	note *Note

	// loaded is the file content as last read or written by this handle
	loaded []byte
}

func (h *markdownHandle) Path() string { return h.path }

func (h *markdownHandle) Open(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	content, err := afero.ReadFile(h.fs, h.path)
	if err != nil {
		return fmt.Errorf("failed to open note %s: %w", h.path, err)
	}
	h.load(content)
	return nil
}

func (h *markdownHandle) load(content []byte) {
	note := ParseNote(content)
	h.note = &note
	h.loaded = content
}

func (h *markdownHandle) Close(ctx context.Context) error {
	if h.note == nil {
		return ErrNotOpen
	}
	h.note = nil
	h.loaded = nil
	return nil
}

// Save writes the note to path. A handle that was never opened saves a new
// blank note, which is how fresh documents get their first file.
//
// Overwriting its own file only writes unsaved changes. When the file was
// changed by another program since the handle read it, the newer content is
// loaded instead of being overwritten.
func (h *markdownHandle) Save(ctx context.Context, path string, purpose Purpose) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if purpose == SaveOverwrite && h.note != nil && files.SamePath(path, h.path) {
		current, err := afero.ReadFile(h.fs, path)
		switch {
		case err == nil && !bytes.Equal(current, h.loaded):
			h.load(current)
			return nil
		case err == nil && h.note.Equal(ParseNote(h.loaded)):
			return nil
		case err != nil && !os.IsNotExist(err):
			return fmt.Errorf("failed to save note %s: %w", path, err)
		}
	}

	note := h.note
	if note == nil {
		note = &Note{Meta: Frontmatter{Created: h.now().UTC().Truncate(time.Second)}}
	}

	content, err := note.Bytes()
	if err != nil {
		return err
	}

	switch purpose {
	case SaveCreating:
		f, err := h.fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err != nil {
			if os.IsExist(err) {
				return fmt.Errorf("failed to create note %s: %w", path, ErrAlreadyExists)
			}
			return fmt.Errorf("failed to create note %s: %w", path, err)
		}
		if _, err := f.Write(content); err != nil {
			f.Close()
			h.fs.Remove(path)
			return fmt.Errorf("failed to write note %s: %w", path, err)
		}
		if err := f.Close(); err != nil {
			h.fs.Remove(path)
			return fmt.Errorf("failed to write note %s: %w", path, err)
		}
	default:
		if err := files.WriteFileAtomic(h.fs, path, content, 0o644); err != nil {
			return fmt.Errorf("failed to save note %s: %w", path, err)
		}
	}

	if h.note != nil && files.SamePath(path, h.path) {
		h.loaded = content
	}
	return nil
}

func (h *markdownHandle) Relocate(path string) {
	h.path = path
}
