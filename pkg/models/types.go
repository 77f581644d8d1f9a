package models

import (
	"strings"
	"time"
)

// FileEntry is one document in a catalog snapshot. Entries are rebuilt on
// every refresh and never modified in place.
type FileEntry struct {
	Name        string     `json:"name" yaml:"name"`
	Path        string     `json:"path" yaml:"path"`
	Modified    *time.Time `json:"modified,omitempty" yaml:"modified,omitempty"`
	IsEmpty     bool       `json:"is_empty" yaml:"is_empty"`
	PreviewPath string     `json:"preview_path,omitempty" yaml:"preview_path,omitempty"`
}

// HasPreview reports whether the document type supplied a preview for the entry
func (e FileEntry) HasPreview() bool {
	return e.PreviewPath != ""
}

// Catalog is the sorted listing of documents in one directory, newest first.
type Catalog []FileEntry

// Names returns the entry names in catalog order
func (c Catalog) Names() []string {
	names := make([]string, 0, len(c))
	for _, e := range c {
		names = append(names, e.Name)
	}
	return names
}

// Index returns the position of the entry with the given path, or -1.
// Paths are compared as given; callers normalize before calling.
func (c Catalog) Index(path string) int {
	for i, e := range c {
		if e.Path == path {
			return i
		}
	}
	return -1
}

// Find looks an entry up by name, case-insensitively
func (c Catalog) Find(name string) (FileEntry, bool) {
	for _, e := range c {
		if strings.EqualFold(e.Name, name) {
			return e, true
		}
	}
	return FileEntry{}, false
}

// Clone returns a copy that shares no backing array with c
func (c Catalog) Clone() Catalog {
	if c == nil {
		return nil
	}
	out := make(Catalog, len(c))
	copy(out, c)
	return out
}
