package picker

import (
	"os"

	"github.com/spf13/afero"
)

// failingFs injects errors into selected afero operations
type failingFs struct {
	afero.Fs
	removeErr error
	createErr error
}

func (f *failingFs) Remove(name string) error {
	if f.removeErr != nil {
		return f.removeErr
	}
	return f.Fs.Remove(name)
}

func (f *failingFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	if f.createErr != nil && flag&os.O_CREATE != 0 {
		return nil, &os.PathError{Op: "open", Path: name, Err: f.createErr}
	}
	return f.Fs.OpenFile(name, flag, perm)
}
