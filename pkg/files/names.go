package files

import (
	"fmt"
	"strings"

	"github.com/spf13/afero"
)

// NextNumberedPath returns the first path of the form "<base> N.<ext>" in dir,
// counting up from first, that is neither on disk nor in taken. Names in
// taken are compared case-insensitively.
func NextNumberedPath(fs afero.Fs, dir, base, ext string, first int, taken []string) (string, error) {
	used := make(map[string]struct{}, len(taken))
	for _, name := range taken {
		used[strings.ToLower(name)] = struct{}{}
	}

	for n := first; ; n++ {
		name := fmt.Sprintf("%s %d", base, n)
		if _, ok := used[strings.ToLower(name)]; ok {
			continue
		}

		path := DocumentPath(dir, name, ext)
		exists, err := afero.Exists(fs, path)
		if err != nil {
			return "", fmt.Errorf("failed to check %s: %w", path, err)
		}
		if !exists {
			return path, nil
		}
	}
}

// DuplicatePath returns the path for a copy of the named document. The
// original holds the implicit first slot, so copies start at " 2".
func DuplicatePath(fs afero.Fs, dir, name, ext string, taken []string) (string, error) {
	return NextNumberedPath(fs, dir, name, ext, 2, taken)
}

// NewDocumentPath returns the path for a freshly created document, starting
// at "<base> 1".
func NewDocumentPath(fs afero.Fs, dir, base, ext string) (string, error) {
	return NextNumberedPath(fs, dir, base, ext, 1, nil)
}
