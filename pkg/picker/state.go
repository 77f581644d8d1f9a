package picker

import (
	"github.com/pluqqy/docpick/pkg/models"
)

// State is the observable picker state handed to presentation layers
type State struct {
	Catalog       models.Catalog
	Busy          bool
	PendingRename *models.FileEntry
	OpenPath      string
	Visible       bool
	LastError     error
}

func (s State) clone() State {
	out := s
	out.Catalog = s.Catalog.Clone()
	if s.PendingRename != nil {
		entry := *s.PendingRename
		out.PendingRename = &entry
	}
	return out
}

// OpenEntry returns the catalog entry for the open document
func (s State) OpenEntry() (models.FileEntry, bool) {
	if i := s.Catalog.Index(s.OpenPath); i >= 0 {
		return s.Catalog[i], true
	}
	return models.FileEntry{}, false
}

// Observer receives a copy of the state after every change
type Observer func(State)

type subscription struct {
	id int
	fn Observer
}
