package orchestrate_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"

	"github.com/taradepan/reaper/internal/config"
	"github.com/taradepan/reaper/internal/discover"
	"github.com/taradepan/reaper/internal/orchestrate"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestRunFindsUnusedImportAcrossOneFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.py"), "import os\nimport json\nprint(json.loads('{}'))\n")

	d := discover.New(afs.New(), nil)
	diags, err := orchestrate.Run(context.Background(), d, []string{root}, config.DefaultConfig())
	require.NoError(t, err)

	require.Len(t, diags, 1)
	assert.Equal(t, "RP001", diags[0].Code)
	assert.Contains(t, diags[0].Message, "os")
}

func TestRunFindsUnusedFunctionAcrossTwoFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.py"), "def helper(): return 1\ndef orphan(): return 2\n")
	writeFile(t, filepath.Join(root, "b.py"), "from a import helper\nprint(helper())\n")

	d := discover.New(afs.New(), nil)
	diags, err := orchestrate.Run(context.Background(), d, []string{root}, config.DefaultConfig())
	require.NoError(t, err)

	var codes []string
	for _, diag := range diags {
		codes = append(codes, diag.Code)
	}
	assert.Contains(t, codes, "RP003")
}

func TestRunRespectsSelect(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.py"), "import os\nimport json\nprint(json.loads('{}'))\n")

	d := discover.New(afs.New(), nil)
	cfg := &config.Config{Select: []string{"RP005"}}
	diags, err := orchestrate.Run(context.Background(), d, []string{root}, cfg)
	require.NoError(t, err)

	assert.Empty(t, diags)
}
