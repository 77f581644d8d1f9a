package files

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// ErrTargetExists is returned when a move or copy would overwrite a file
var ErrTargetExists = errors.New("target already exists")

// NormalizePath returns the cleaned absolute form of path, used whenever two
// document paths are compared.
func NormalizePath(path string) string {
	if path == "" {
		return ""
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}

// SamePath reports whether a and b name the same file after normalization
func SamePath(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return NormalizePath(a) == NormalizePath(b)
}

// DocumentPath joins a display name and extension into a path inside dir
func DocumentPath(dir, name, ext string) string {
	return filepath.Join(dir, name+"."+strings.TrimPrefix(ext, "."))
}

// DisplayName extracts a display name from a filename
// Examples:
//
//	"Untitled 2.md" → "Untitled 2"
//	"/notes/todo.MD" → "todo"
func DisplayName(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// HasExtension reports whether filename ends in .ext, ignoring case
func HasExtension(filename, ext string) bool {
	got := strings.TrimPrefix(filepath.Ext(filename), ".")
	return got != "" && strings.EqualFold(got, strings.TrimPrefix(ext, "."))
}

// MoveFile renames src to dst, refusing to replace an existing file
func MoveFile(fs afero.Fs, src, dst string) error {
	exists, err := afero.Exists(fs, dst)
	if err != nil {
		return fmt.Errorf("failed to check %s: %w", dst, err)
	}
	// Case-only renames on a case-insensitive filesystem report dst as existing
	if exists && !strings.EqualFold(filepath.Clean(src), filepath.Clean(dst)) {
		return fmt.Errorf("failed to move %s: %w", filepath.Base(dst), ErrTargetExists)
	}

	if err := fs.Rename(src, dst); err != nil {
		return fmt.Errorf("failed to move %s to %s: %w", src, dst, err)
	}
	return nil
}

// CopyFile copies src to a new file at dst. A partially written dst is removed.
func CopyFile(fs afero.Fs, src, dst string) error {
	in, err := fs.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", src, err)
	}

	out, err := fs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		if os.IsExist(err) {
			return fmt.Errorf("failed to copy to %s: %w", filepath.Base(dst), ErrTargetExists)
		}
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		fs.Remove(dst)
		return fmt.Errorf("failed to copy %s: %w", src, err)
	}
	if err := out.Close(); err != nil {
		fs.Remove(dst)
		return fmt.Errorf("failed to finish copy of %s: %w", src, err)
	}

	return nil
}

// RemoveFile deletes the document at path
func RemoveFile(fs afero.Fs, path string) error {
	if err := fs.Remove(path); err != nil {
		return fmt.Errorf("failed to delete %s: %w", path, err)
	}
	return nil
}
