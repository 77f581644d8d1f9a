package files

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pluqqy/docpick/pkg/models"
)

type stubInspector struct {
	fs afero.Fs
}

func (s stubInspector) Extension() string { return "md" }

func (s stubInspector) IsEmptyDocument(path string) bool {
	content, _ := afero.ReadFile(s.fs, path)
	return strings.TrimSpace(string(content)) == ""
}

func (s stubInspector) PreviewPath(path string) string {
	if s.IsEmptyDocument(path) {
		return ""
	}
	return path
}

func writeAt(t *testing.T, fs afero.Fs, path, content string, mod time.Time) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
	require.NoError(t, fs.Chtimes(path, mod, mod))
}

func TestRefreshCatalog(t *testing.T) {
	fs := afero.NewMemMapFs()
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	writeAt(t, fs, "/docs/Doc 1.md", "ten", base.Add(time.Hour))
	writeAt(t, fs, "/docs/Doc 2.md", "nine", base)
	writeAt(t, fs, "/docs/Loud.MD", "", base.Add(30*time.Minute))
	writeAt(t, fs, "/docs/notes.txt", "ignored", base.Add(2*time.Hour))
	require.NoError(t, fs.MkdirAll("/docs/folder.md", 0o755))

	catalog := RefreshCatalog(fs, "/docs", stubInspector{fs: fs})

	require.Equal(t, []string{"Doc 1", "Loud", "Doc 2"}, catalog.Names())
	assert.Equal(t, "/docs/Doc 1.md", catalog[0].Path)
	require.NotNil(t, catalog[0].Modified)
	assert.True(t, catalog[0].Modified.Equal(base.Add(time.Hour)))
	assert.False(t, catalog[0].IsEmpty)
	assert.Equal(t, "/docs/Doc 1.md", catalog[0].PreviewPath)
	assert.True(t, catalog[1].IsEmpty)
	assert.False(t, catalog[1].HasPreview())
}

func TestRefreshCatalog_MissingDirectoryIsEmpty(t *testing.T) {
	fs := afero.NewMemMapFs()

	catalog := RefreshCatalog(fs, "/nowhere", stubInspector{fs: fs})

	assert.NotNil(t, catalog)
	assert.Empty(t, catalog)
}

func TestRefreshCatalog_Repeatable(t *testing.T) {
	fs := afero.NewMemMapFs()
	same := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	writeAt(t, fs, "/docs/b.md", "b", same)
	writeAt(t, fs, "/docs/A.md", "a", same)
	writeAt(t, fs, "/docs/c.md", "c", same)

	first := RefreshCatalog(fs, "/docs", stubInspector{fs: fs})
	second := RefreshCatalog(fs, "/docs", stubInspector{fs: fs})

	assert.Equal(t, first, second)
	assert.Equal(t, []string{"A", "b", "c"}, first.Names())
}

func TestSortCatalog_MissingTimesSortLast(t *testing.T) {
	early := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	late := early.Add(time.Hour)
	catalog := models.Catalog{
		{Name: "none"},
		{Name: "early", Modified: &early},
		{Name: "late", Modified: &late},
	}

	SortCatalog(catalog)

	assert.Equal(t, []string{"late", "early", "none"}, catalog.Names())
}

func TestFilterCatalog(t *testing.T) {
	catalog := models.Catalog{{Name: "Meeting 1"}, {Name: "meeting notes"}, {Name: "Todo"}}

	filtered, err := FilterCatalog(catalog, "Meeting*")
	require.NoError(t, err)
	assert.Equal(t, []string{"Meeting 1", "meeting notes"}, filtered.Names())

	all, err := FilterCatalog(catalog, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	_, err = FilterCatalog(catalog, "[")
	assert.Error(t, err)
}
