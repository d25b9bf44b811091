package discover_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taradepan/reaper/internal/discover"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestDiscoverFindsExtensionMatchingFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.py"), "x = 1\n")
	writeFile(t, filepath.Join(root, "b.txt"), "not python\n")
	writeFile(t, filepath.Join(root, "pkg", "c.py"), "y = 2\n")

	d := discover.New(nil, nil)
	got, err := d.Discover([]string{root})
	require.NoError(t, err)

	assert.Len(t, got.Files, 2)
	assert.False(t, got.Truncated)
}

func TestDiscoverSkipsAutoExcludedDirectories(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.py"), "x = 1\n")
	writeFile(t, filepath.Join(root, ".venv", "lib", "b.py"), "y = 2\n")
	writeFile(t, filepath.Join(root, "node_modules", "c.py"), "z = 3\n")
	writeFile(t, filepath.Join(root, "__pycache__", "d.py"), "w = 4\n")

	d := discover.New(nil, nil)
	got, err := d.Discover([]string{root})
	require.NoError(t, err)

	assert.Len(t, got.Files, 1)
}

func TestDiscoverHonorsExtraExcludeNames(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.py"), "x = 1\n")
	writeFile(t, filepath.Join(root, "vendor", "b.py"), "y = 2\n")

	d := discover.New(nil, []string{"vendor"})
	got, err := d.Discover([]string{root})
	require.NoError(t, err)

	assert.Len(t, got.Files, 1)
}

func TestDiscoverHonorsGitignore(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".gitignore"), "generated/\nscratch.py\n")
	writeFile(t, filepath.Join(root, "a.py"), "x = 1\n")
	writeFile(t, filepath.Join(root, "scratch.py"), "y = 2\n")
	writeFile(t, filepath.Join(root, "generated", "c.py"), "z = 3\n")

	d := discover.New(nil, nil)
	got, err := d.Discover([]string{root})
	require.NoError(t, err)

	assert.Len(t, got.Files, 1)
	assert.Equal(t, filepath.Join(root, "a.py"), got.Files[0])
}

func TestDiscoverAcceptsSingleFilePath(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "only.py")
	writeFile(t, path, "x = 1\n")

	d := discover.New(nil, nil)
	got, err := d.Discover([]string{path})
	require.NoError(t, err)

	assert.Equal(t, []string{path}, got.Files)
}
