package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/afero"

	"github.com/pluqqy/docpick/pkg/files"
)

// ValidateDirectoryPath checks that the document directory can be used. A
// missing directory is fine since it is created on first use; anything else
// at that path must be a directory.
func ValidateDirectoryPath(fs afero.Fs, path string) error {
	info, err := fs.Stat(path)
	switch {
	case os.IsNotExist(err):
		return nil
	case err != nil:
		return fmt.Errorf("error accessing directory %s: %w", path, err)
	case !info.IsDir():
		return fmt.Errorf("path is not a directory: %s", path)
	}
	return nil
}

// ValidateOutputFormat validates the output format flag
func ValidateOutputFormat(format string) error {
	validFormats := []string{"text", "json", "yaml"}
	for _, valid := range validFormats {
		if format == valid {
			return nil
		}
	}
	return fmt.Errorf("invalid output format: %s (must be: text, json, or yaml)", format)
}

// ValidateDocumentName checks the structural rules for a new document name.
// Collisions are checked later against the live catalog.
func ValidateDocumentName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("document name cannot be empty")
	}

	if errs := files.ValidateName(name, nil, ""); len(errs) > 0 {
		return errs
	}

	return nil
}
