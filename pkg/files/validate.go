package files

import (
	"fmt"
	"strings"
)

// ValidationKind identifies which naming rule a candidate broke
type ValidationKind int

const (
	UnsupportedCharacter ValidationKind = iota
	NameCollision
)

// pathSeparators are rejected on every platform so a name stays portable
var pathSeparators = []string{"/", "\\"}

// ValidationError describes one broken naming rule. Value holds the offending
// separator for UnsupportedCharacter and the clashing name for NameCollision.
type ValidationError struct {
	Kind  ValidationKind
	Value string
}

func (e ValidationError) Error() string {
	switch e.Kind {
	case UnsupportedCharacter:
		return fmt.Sprintf("name cannot contain %q", e.Value)
	case NameCollision:
		return fmt.Sprintf("a document named '%s' already exists", e.Value)
	default:
		return "invalid name"
	}
}

// ValidationErrors is the full result of validating a rename
type ValidationErrors []ValidationError

func (errs ValidationErrors) Error() string {
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "; ")
}

// Has reports whether any error of the given kind is present
func (errs ValidationErrors) Has(kind ValidationKind) bool {
	for _, e := range errs {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

// ValidateName checks a rename candidate against the structural rules and the
// names already in the directory. Both rules are evaluated independently.
func ValidateName(candidate string, existing []string, current string) ValidationErrors {
	if candidate == current {
		return nil
	}

	var errs ValidationErrors
	for _, sep := range pathSeparators {
		if strings.Contains(candidate, sep) {
			errs = append(errs, ValidationError{Kind: UnsupportedCharacter, Value: sep})
		}
	}

	for _, name := range existing {
		if name == current {
			continue
		}
		if strings.EqualFold(candidate, name) {
			errs = append(errs, ValidationError{Kind: NameCollision, Value: name})
			break
		}
	}

	return errs
}

// CanCommitRename reports whether a rename dialog may be confirmed
func CanCommitRename(candidate, current string, errs ValidationErrors) bool {
	return candidate != "" && candidate != current && len(errs) == 0
}
