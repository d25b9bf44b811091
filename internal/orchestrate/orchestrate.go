// Package orchestrate runs the two-pass pipeline: every file is read,
// lexed, parsed and name-collected in parallel (bounded by GOMAXPROCS),
// then the per-file rule checks run, and finally the cross-file checks run
// single-threaded once every file's table is available (spec §5).
package orchestrate

import (
	"context"
	"fmt"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/taradepan/reaper/internal/config"
	"github.com/taradepan/reaper/internal/diag"
	"github.com/taradepan/reaper/internal/discover"
	"github.com/taradepan/reaper/internal/names"
	"github.com/taradepan/reaper/internal/rules"
	"github.com/taradepan/reaper/internal/syntax"
	"github.com/taradepan/reaper/internal/token"
)

// fileTask is one file's task-local contribution: its parsed rules.File
// plus whatever the run discovered reading/parsing it. A panic or error in
// one file's task never aborts the others (spec §7).
type fileTask struct {
	path string
	file *rules.File
	sup  *diag.Suppressions
	errs []diag.Diagnostic
}

// Run discovers, parses and checks every file under paths and returns the
// deduplicated, sorted diagnostic set.
func Run(ctx context.Context, d *discover.Discoverer, paths []string, cfg *config.Config) ([]diag.Diagnostic, error) {
	result, err := d.Discover(paths)
	if err != nil {
		return nil, err
	}

	sink := diag.NewSink()
	if result.Truncated {
		sink.Add(diag.Diagnostic{
			File:    "",
			Line:    0,
			Col:     0,
			Code:    "RP000",
			Message: fmt.Sprintf("project exceeds the %d file cap; results are truncated", discover.DefaultFileCountCap),
		}, nil)
	}

	tasks := make([]*fileTask, len(result.Files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range result.Files {
		i, path := i, path
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					tasks[i] = &fileTask{path: path, errs: []diag.Diagnostic{{
						File: path, Code: "RP000", Message: fmt.Sprintf("internal error analyzing file: %v", r),
					}}}
				}
			}()
			tasks[i] = analyzeFile(gctx, d, path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var files []*rules.File
	for _, t := range tasks {
		if t == nil {
			continue
		}
		sink.AddAll(t.errs, nil)
		if t.file == nil {
			continue
		}
		files = append(files, t.file)
		for code, check := range rules.PerFile {
			if !cfg.Selected(code) {
				continue
			}
			sink.AddAll(check(t.file), t.sup)
		}
	}

	// Cross-file checks run single-threaded once every per-file task has
	// completed, against the project-global tables (spec §5 "no locking
	// during analysis" — the merge step reads, never writes, task state).
	sort.Slice(files, func(i, j int) bool { return files[i].Buf.Path < files[j].Buf.Path })
	suppressionsByFile := map[string]*diag.Suppressions{}
	for _, t := range tasks {
		if t != nil {
			suppressionsByFile[t.path] = t.sup
		}
	}
	for code, check := range rules.CrossFile {
		if !cfg.Selected(code) {
			continue
		}
		for _, finding := range check(files, cfg.EntrypointDecorators) {
			sink.Add(finding, suppressionsByFile[finding.File])
		}
	}

	return sink.Diagnostics(), nil
}

// analyzeFile performs one file's task: read, lex, parse, collect. Lex and
// parse errors are recorded as diagnostics rather than aborting the file
// (spec §7); the checkers still run on whatever partial tree resulted.
func analyzeFile(ctx context.Context, d *discover.Discoverer, path string) *fileTask {
	t := &fileTask{path: path}

	src, err := d.Read(ctx, path)
	if err != nil {
		t.errs = append(t.errs, diag.Diagnostic{File: path, Code: "RP000", Message: err.Error()})
		return t
	}

	buf := token.NewBuffer(path, src)
	toks, lexErrs := token.NewLexer(buf).Tokenize()
	for _, le := range lexErrs {
		line, col := buf.Position(le.Offset)
		t.errs = append(t.errs, diag.Diagnostic{File: path, Line: line, Col: col, Code: "RP000", Message: le.Message})
	}

	mod, parseErrs := syntax.Parse(path, src)
	for _, pe := range parseErrs {
		line, col := buf.Position(pe.Span.Start)
		t.errs = append(t.errs, diag.Diagnostic{File: path, Line: line, Col: col, Code: "RP000", Message: pe.Message})
	}

	table := names.Collect(path, mod)
	t.file = &rules.File{Buf: buf, Mod: mod, Table: table}
	t.sup = diag.BuildSuppressions(buf, toks)
	return t
}
