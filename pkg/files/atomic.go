package files

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// WriteFileAtomic writes data to a temp file next to path and renames it into
// place, so readers never observe a half-written document.
func WriteFileAtomic(fs afero.Fs, path string, data []byte, perm os.FileMode) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("atomic write: path is required")
	}
	if perm == 0 {
		perm = 0o644
	}

	dir := filepath.Dir(path)
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("atomic write: create dir: %w", err)
	}

	tmp, err := afero.TempFile(fs, dir, ".docpick-*.tmp")
	if err != nil {
		return fmt.Errorf("atomic write: create temp: %w", err)
	}
	name := tmp.Name()
	success := false
	defer func() {
		if !success {
			_ = fs.Remove(name)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("atomic write: write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("atomic write: sync temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("atomic write: close temp: %w", err)
	}
	if err := fs.Rename(name, path); err != nil {
		return fmt.Errorf("atomic write: replace file: %w", err)
	}

	success = true
	_ = fs.Chmod(path, perm)
	return nil
}
