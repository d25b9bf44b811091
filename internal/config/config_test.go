package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taradepan/reaper/internal/config"
)

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	root := t.TempDir()
	cfg, err := config.Load(root)
	require.NoError(t, err)
	assert.Empty(t, cfg.Select)
	assert.Empty(t, cfg.Exclude)
}

func TestLoadParsesProjectFile(t *testing.T) {
	root := t.TempDir()
	content := "select:\n  - RP001\n  - RP003\nexclude:\n  - vendor\nentrypointDecorators:\n  - app.route\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, config.ProjectFile), []byte(content), 0o644))

	cfg, err := config.Load(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"RP001", "RP003"}, cfg.Select)
	assert.Equal(t, []string{"vendor"}, cfg.Exclude)
	assert.True(t, cfg.IsEntrypointDecorator("app.route"))
	assert.False(t, cfg.IsEntrypointDecorator("abstractmethod"))
}

func TestMergeCombinesFileAndCLI(t *testing.T) {
	fileCfg := &config.Config{Select: []string{"RP001"}, Exclude: []string{"vendor"}}
	merged := config.Merge(fileCfg, []string{"RP002"}, []string{"build"}, true, true)

	assert.Equal(t, []string{"RP001", "RP002"}, merged.Select)
	assert.Equal(t, []string{"vendor", "build"}, merged.Exclude)
	assert.True(t, merged.JSON)
	assert.True(t, merged.NoExitCode)
}

func TestSelectedWithNoFilterAllowsEverything(t *testing.T) {
	cfg := config.DefaultConfig()
	assert.True(t, cfg.Selected("RP001"))
	assert.True(t, cfg.Selected("RP009"))
}

func TestSelectedRestrictsToListedCodes(t *testing.T) {
	cfg := &config.Config{Select: []string{"RP001", "RP005"}}
	assert.True(t, cfg.Selected("RP001"))
	assert.False(t, cfg.Selected("RP002"))
}
