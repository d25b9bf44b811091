// Package config holds run configuration: the rule selection, exclude
// list, output mode and project-level defaults loaded from .reaper.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ProjectFile is the name of the project-level configuration file that
// supplies default select/exclude lists and the decorator allow-list.
const ProjectFile = ".reaper.yaml"

// Config holds a single run's settings. JSON and NoExitCode come from the
// CLI only; Select and Exclude combine the project file's lists with the
// CLI's (see Merge).
type Config struct {
	Select     []string `yaml:"select,omitempty"`
	Exclude    []string `yaml:"exclude,omitempty"`
	JSON       bool     `yaml:"-"`
	NoExitCode bool     `yaml:"-"`

	// EntrypointDecorators names decorators that do NOT exempt a function
	// or class from RP003/RP004. Any decorator not in this list keeps the
	// conservative "any decorator exempts" default.
	EntrypointDecorators []string `yaml:"entrypointDecorators,omitempty"`
}

// DefaultConfig returns the zero-value run configuration: no rule filter,
// no extra excludes, human-readable output, non-zero exit on diagnostics.
func DefaultConfig() *Config {
	return &Config{}
}

// Load reads .reaper.yaml from root, if present, and returns its contents
// as a Config. A missing file is not an error; it yields DefaultConfig().
func Load(root string) (*Config, error) {
	path := filepath.Join(root, ProjectFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// Merge overlays CLI-supplied settings onto the project file's defaults.
// Select/Exclude from the CLI are appended, never dropped, so both sources
// contribute; JSON/NoExitCode are CLI-only switches.
func Merge(fileCfg *Config, cliSelect, cliExclude []string, jsonOutput, noExitCode bool) *Config {
	merged := &Config{
		Select:               append(append([]string{}, fileCfg.Select...), cliSelect...),
		Exclude:              append(append([]string{}, fileCfg.Exclude...), cliExclude...),
		EntrypointDecorators: fileCfg.EntrypointDecorators,
		JSON:                 jsonOutput,
		NoExitCode:           noExitCode,
	}
	return merged
}

// SelectsAll reports whether no rule filter was specified, meaning every
// rule runs.
func (c *Config) SelectsAll() bool {
	return len(c.Select) == 0
}

// Selected reports whether the given rule code should run under this
// configuration.
func (c *Config) Selected(code string) bool {
	if c.SelectsAll() {
		return true
	}
	for _, s := range c.Select {
		if s == code {
			return true
		}
	}
	return false
}

// IsEntrypointDecorator reports whether name is listed in
// EntrypointDecorators, i.e. it is a known-safe decorator that does NOT
// exempt its target from RP003/RP004.
func (c *Config) IsEntrypointDecorator(name string) bool {
	for _, d := range c.EntrypointDecorators {
		if d == name {
			return true
		}
	}
	return false
}
