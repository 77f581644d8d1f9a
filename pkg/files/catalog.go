package files

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gobwas/glob"
	"github.com/spf13/afero"

	"github.com/pluqqy/docpick/pkg/models"
)

// Inspector supplies per-document metadata for catalog entries
type Inspector interface {
	Extension() string
	IsEmptyDocument(path string) bool
	PreviewPath(path string) string
}

// RefreshCatalog lists dir and returns every document with the inspector's
// extension, newest first. Any I/O error yields an empty catalog rather than
// a partial one.
func RefreshCatalog(fs afero.Fs, dir string, inspector Inspector) models.Catalog {
	infos, err := afero.ReadDir(fs, dir)
	if err != nil {
		return models.Catalog{}
	}

	catalog := make(models.Catalog, 0, len(infos))
	for _, info := range infos {
		if info.IsDir() || !info.Mode().IsRegular() {
			continue
		}
		if !HasExtension(info.Name(), inspector.Extension()) {
			continue
		}

		path := NormalizePath(filepath.Join(dir, info.Name()))
		entry := models.FileEntry{
			Name:        DisplayName(info.Name()),
			Path:        path,
			IsEmpty:     inspector.IsEmptyDocument(path),
			PreviewPath: inspector.PreviewPath(path),
		}
		if mod := info.ModTime(); !mod.IsZero() {
			entry.Modified = &mod
		}
		catalog = append(catalog, entry)
	}

	SortCatalog(catalog)
	return catalog
}

// SortCatalog orders entries by modification time, newest first. Entries
// without a timestamp sort last; ties fall back to the name so repeated
// refreshes of an unchanged directory agree.
func SortCatalog(catalog models.Catalog) {
	sort.SliceStable(catalog, func(i, j int) bool {
		ti, tj := modTime(catalog[i]), modTime(catalog[j])
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		li, lj := strings.ToLower(catalog[i].Name), strings.ToLower(catalog[j].Name)
		if li != lj {
			return li < lj
		}
		return catalog[i].Name < catalog[j].Name
	})
}

func modTime(e models.FileEntry) time.Time {
	if e.Modified == nil {
		return time.Time{}
	}
	return *e.Modified
}

// FilterCatalog keeps the entries whose name matches a glob pattern such as
// "Meeting*". Matching ignores case. An empty pattern keeps everything.
func FilterCatalog(catalog models.Catalog, pattern string) (models.Catalog, error) {
	if pattern == "" {
		return catalog, nil
	}

	g, err := glob.Compile(strings.ToLower(pattern))
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}

	filtered := models.Catalog{}
	for _, e := range catalog {
		if g.Match(strings.ToLower(e.Name)) {
			filtered = append(filtered, e)
		}
	}
	return filtered, nil
}
