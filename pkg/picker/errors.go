package picker

import (
	"errors"
	"fmt"
)

var (
	// ErrBusy means another document operation was running and the request
	// was dropped. Presentation layers ignore it.
	ErrBusy = errors.New("another document operation is in progress")
	// ErrLastDocument rejects deleting the only remaining document
	ErrLastDocument = errors.New("cannot delete the last remaining document")
	// ErrEmptyName rejects renaming to an empty name
	ErrEmptyName = errors.New("name cannot be empty")
	// ErrNotInCatalog means the entry is no longer part of the listing
	ErrNotInCatalog = errors.New("document is no longer in the listing")
)

// OperationError reports a failed filesystem or document step. The catalog
// keeps its last successfully refreshed contents.
type OperationError struct {
	Op   string
	Path string
	Err  error
}

func (e *OperationError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s failed: %v", e.Op, e.Path, e.Err)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

// IsSilent reports whether err should be hidden from the user
func IsSilent(err error) bool {
	return errors.Is(err, ErrBusy)
}
