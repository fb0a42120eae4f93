package scan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsGenerated(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected bool
	}{
		{name: "minified", path: "dist/theme.min.css", expected: true},
		{name: "editor backup", path: "theme.css~", expected: true},
		{name: "emacs lock file", path: "styles/.#theme.css", expected: true},
		{name: "regular stylesheet", path: "styles/theme.css", expected: false},
		{name: "min in directory name", path: "min.css/theme.css", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := isGenerated(tt.path)
			require.Equal(t, tt.expected, got, "isGenerated(%q)", tt.path)
		})
	}
}

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
}

// chdir switches to dir for the rest of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestExpand(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		".gitignore":              "build/\n",
		"theme.css":               "",
		"styles/dark.css":         "",
		"styles/vendor.min.css":   "",
		"build/theme.css":         "",
		"styles/notes.txt":        "",
		"styles/nested/panel.css": "",
	})
	chdir(t, dir)

	scanner := New(".gitignore")

	files, stats, err := scanner.Expand(nil)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{
		"theme.css",
		filepath.Join("styles", "dark.css"),
		filepath.Join("styles", "nested", "panel.css"),
	}, files)
	require.Equal(t, Stats{FilesDiscovered: 5, FilesScanned: 3, FilesSkipped: 2}, stats)

	// Overlapping patterns are deduplicated.
	files, _, err = scanner.Expand([]string{"styles/*.css", "styles/**/*.css"})
	require.NoError(t, err)
	require.ElementsMatch(t, []string{
		filepath.Join("styles", "dark.css"),
		filepath.Join("styles", "nested", "panel.css"),
	}, files)

	_, _, err = scanner.Expand([]string{"styles/[.css"})
	require.Error(t, err)
}

func TestShouldSkipWithoutGitignore(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	scanner := New(".gitignore")
	require.False(t, scanner.ShouldSkip("build/theme.css"))
	require.True(t, scanner.ShouldSkip("build/theme.min.css"))
}

func TestShouldSkipAbsolutePath(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{".gitignore": "*.css\n"})
	chdir(t, dir)

	scanner := New(".gitignore")
	require.True(t, scanner.ShouldSkip("theme.css"))
	require.False(t, scanner.ShouldSkip(filepath.Join(dir, "theme.css")))
}
