// Package rules implements the nine RP0NN checkers. Each per-file checker
// is a pure function over one file's tree and name table; RP003/RP004 are
// cross-file and run once, after every file's per-file pass, against the
// project-global tables the merger assembles (see merge.go).
package rules

import (
	"github.com/taradepan/reaper/internal/diag"
	"github.com/taradepan/reaper/internal/names"
	"github.com/taradepan/reaper/internal/syntax"
	"github.com/taradepan/reaper/internal/token"
)

// File bundles the per-file inputs every checker needs: the buffer for
// line/col translation, the parsed tree, and its name table.
type File struct {
	Buf   *token.Buffer
	Mod   *syntax.Module
	Table *names.Table
}

// Check is one rule's implementation: a pure function from a file's
// tree/table to zero or more diagnostics.
type Check func(f *File) []diag.Diagnostic

// PerFile is the flat dispatch table the orchestrator selects against via
// --select; keys are rule codes, matching spec §4.4's "flat table of
// function values keyed by rule code" (§9).
var PerFile = map[string]Check{
	"RP001": CheckUnusedImport,
	"RP002": CheckUnusedLocal,
	"RP005": CheckUnreachable,
	"RP006": CheckDeadBranch,
	"RP007": CheckImportRedefined,
	"RP008": CheckUnusedArgument,
	"RP009": CheckUnusedLoopVar,
}

// MergeCheck is a cross-file rule's implementation: a pure function over
// every file's tree/table together plus the project's decorator
// allow-list, run once after all per-file passes complete (spec §4.6, §5).
type MergeCheck func(files []*File, allowedDecorators []string) []diag.Diagnostic

// CrossFile is the dispatch table for the rule codes the merger decides;
// they have no PerFile entry because they need the project-global tables.
var CrossFile = map[string]MergeCheck{
	"RP003": CheckUnusedFunctions,
	"RP004": CheckUnusedClasses,
}

// AllCodes returns every rule code this analyzer knows, per-file and
// cross-file, in a stable order matching the spec's RP0NN numbering.
func AllCodes() []string {
	return []string{"RP001", "RP002", "RP003", "RP004", "RP005", "RP006", "RP007", "RP008", "RP009"}
}

func newDiag(f *File, code string, sp token.Span, message string) diag.Diagnostic {
	line, col := f.Buf.Position(sp.Start)
	return diag.Diagnostic{File: f.Buf.Path, Line: line, Col: col, Code: code, Message: message}
}

// underscored reports whether name is blank or starts with `_`, the
// intentionally-unused convention spec §3 exempts from RP002/RP008/RP009.
func underscored(name string) bool {
	return name == "" || name[0] == '_'
}
