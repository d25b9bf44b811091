package discover

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// ignoreSet holds the glob patterns read from a directory's standard
// project-ignore file. It only supports the common subset of gitignore
// syntax: blank/`#` lines are skipped, a trailing `/` restricts a pattern
// to directories, and patterns are matched against the path's base name as
// well as the path relative to the ignore file's directory.
type ignoreSet struct {
	root     string
	patterns []ignorePattern
}

type ignorePattern struct {
	glob    string
	dirOnly bool
}

func loadIgnore(root string) *ignoreSet {
	set := &ignoreSet{root: root}
	f, err := os.Open(filepath.Join(root, ignoreFileName))
	if err != nil {
		return set
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		dirOnly := strings.HasSuffix(line, "/")
		line = strings.TrimSuffix(line, "/")
		line = strings.TrimPrefix(line, "/")
		set.patterns = append(set.patterns, ignorePattern{glob: line, dirOnly: dirOnly})
	}
	return set
}

func (s *ignoreSet) matches(path string, isDir bool) bool {
	if s == nil || len(s.patterns) == 0 {
		return false
	}
	rel, err := filepath.Rel(s.root, path)
	if err != nil {
		rel = path
	}
	base := filepath.Base(path)
	for _, p := range s.patterns {
		if p.dirOnly && !isDir {
			continue
		}
		if ok, _ := filepath.Match(p.glob, base); ok {
			return true
		}
		if ok, _ := filepath.Match(p.glob, rel); ok {
			return true
		}
	}
	return false
}
