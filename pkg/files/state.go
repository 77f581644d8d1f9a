package files

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/pluqqy/docpick/pkg/models"
)

// ReadOpenPointer loads the last-open pointer. A missing file is not an error.
func ReadOpenPointer(fs afero.Fs, path string) (*models.OpenPointer, error) {
	content, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return &models.OpenPointer{}, nil
		}
		return nil, fmt.Errorf("failed to read state %s: %w", path, err)
	}

	var pointer models.OpenPointer
	if err := yaml.Unmarshal(content, &pointer); err != nil {
		return nil, fmt.Errorf("failed to parse state YAML %s: %w", path, err)
	}

	return &pointer, nil
}

// WriteOpenPointer stores the last-open pointer
func WriteOpenPointer(fs afero.Fs, path string, pointer models.OpenPointer) error {
	content, err := yaml.Marshal(pointer)
	if err != nil {
		return fmt.Errorf("failed to marshal state to YAML: %w", err)
	}

	if err := WriteFileAtomic(fs, path, content, 0o600); err != nil {
		return fmt.Errorf("failed to write state %s: %w", path, err)
	}

	return nil
}
