// Package discover walks project directories looking for source files,
// filtering out version-control, virtual-environment, cache and build
// output directories along the way.
package discover

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/viant/afs"
)

// Extension is the file extension discovery targets.
const Extension = ".py"

// DefaultFileCountCap is the maximum number of source files a single run
// will analyze. Projects exceeding it are truncated with a warning rather
// than exhausting memory.
const DefaultFileCountCap = 10_000

// autoExclude lists directory names that are always skipped, regardless of
// --exclude. It covers VCS metadata, virtual environments, caches and
// build/package-manager output.
var autoExclude = map[string]bool{
	".git":          true,
	".hg":           true,
	".svn":          true,
	"venv":          true,
	".venv":         true,
	"virtualenv":    true,
	"__pycache__":   true,
	".mypy_cache":   true,
	".pytest_cache": true,
	".tox":          true,
	".ruff_cache":   true,
	"node_modules":  true,
	"dist":          true,
	"build":         true,
	".eggs":         true,
	".cache":        true,
	"site-packages": true,
}

// ignoreFileName is the standard project-ignore file discovery honors.
const ignoreFileName = ".gitignore"

// Result is the outcome of a discovery run.
type Result struct {
	Files []string
	// Truncated is true if more than DefaultFileCountCap files were found
	// and the result was cut off at the cap.
	Truncated bool
	Found     int
}

// Discoverer walks directories, collecting source files via the given
// afs.Service for byte-level reads (so a future run can target archives or
// remote filesystems without changing this package's shape).
type Discoverer struct {
	fs      afs.Service
	exclude map[string]bool
}

// New creates a Discoverer. Fs is typically afs.New(); extra is an
// additional set of path-component names to exclude, from --exclude or
// Config.Exclude.
func New(fs afs.Service, extra []string) *Discoverer {
	exclude := map[string]bool{}
	for name := range autoExclude {
		exclude[name] = true
	}
	for _, name := range extra {
		name = strings.TrimSpace(name)
		if name != "" {
			exclude[name] = true
		}
	}
	return &Discoverer{fs: fs, exclude: exclude}
}

// Discover walks each of paths (files or directories) and returns every
// matching source file found, deduplicated and sorted by the order
// directories were visited.
func (d *Discoverer) Discover(paths []string) (*Result, error) {
	res := &Result{}
	seen := map[string]bool{}
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("failed to stat path %s: %w", p, err)
		}
		if !info.IsDir() {
			if d.matchesExtension(p) {
				d.collect(res, seen, p)
			}
			continue
		}
		ig := loadIgnore(p)
		err = filepath.Walk(p, func(path string, fi os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if fi.IsDir() {
				if path != p && (d.excluded(fi.Name()) || ig.matches(path, true)) {
					return filepath.SkipDir
				}
				return nil
			}
			if !d.matchesExtension(path) {
				return nil
			}
			if d.excluded(filepath.Base(path)) || ig.matches(path, false) {
				return nil
			}
			if res.Found >= DefaultFileCountCap {
				res.Truncated = true
				return nil
			}
			d.collect(res, seen, path)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("error walking project directory %s: %w", p, err)
		}
	}
	return res, nil
}

func (d *Discoverer) collect(res *Result, seen map[string]bool, path string) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	if seen[abs] {
		return
	}
	seen[abs] = true
	res.Found++
	if res.Found > DefaultFileCountCap {
		res.Truncated = true
		return
	}
	res.Files = append(res.Files, path)
}

func (d *Discoverer) matchesExtension(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == Extension
}

func (d *Discoverer) excluded(component string) bool {
	return d.exclude[component]
}

// Read loads a file's contents through the discoverer's afs.Service, the
// same DownloadWithURL call used for config files elsewhere in this stack.
func (d *Discoverer) Read(ctx context.Context, path string) ([]byte, error) {
	data, err := d.fs.DownloadWithURL(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return data, nil
}
