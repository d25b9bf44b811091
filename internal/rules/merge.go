package rules

import (
	"fmt"
	"strings"

	"github.com/taradepan/reaper/internal/diag"
	"github.com/taradepan/reaper/internal/names"
	"github.com/taradepan/reaper/internal/scope"
	"github.com/taradepan/reaper/internal/syntax"
)

// usageRef is one project-wide occurrence of a name, tagged with the file
// it came from so the merger can tell a function's own recursive calls
// apart from a genuine external reference (spec §4.6).
type usageRef struct {
	file  string
	start int // byte offset of the usage, or -1 for an __all__-derived usage
}

// buildUsageIndex concatenates every file's Usages plus its __all__-exported
// names (which count as usages per spec §3/§4.3) into one project-global
// index. This is the merge step's only shared structure, assembled
// single-threaded after all per-file tasks complete (spec §5).
func buildUsageIndex(files []*File) map[string][]usageRef {
	idx := map[string][]usageRef{}
	for _, f := range files {
		path := f.Buf.Path
		for _, u := range f.Table.Usages {
			idx[u.Name] = append(idx[u.Name], usageRef{file: path, start: u.Span.Start})
		}
		for name := range f.Table.Exports {
			idx[name] = append(idx[name], usageRef{file: path, start: -1})
		}
	}
	return idx
}

// isUsedExternally reports whether name has a project-wide usage that is
// not itself a read from inside [lo, hi) of the same file — i.e. not the
// defining function/class calling or referencing itself. A recursive-only
// call therefore never counts as a use (spec §4.6's worked example).
func isUsedExternally(idx map[string][]usageRef, name, file string, lo, hi int) bool {
	for _, ref := range idx[name] {
		if ref.file == file && ref.start >= lo && ref.start < hi {
			continue
		}
		return true
	}
	return false
}

// skipNames are symbol names that should never be flagged as dead code,
// regardless of usage, because the host runtime or framework calls them
// implicitly (an entry point, a constructor hook, a dunder protocol
// method).
var skipNames = map[string]bool{
	"main": true, "__init__": true, "__new__": true, "__str__": true,
	"__repr__": true, "__enter__": true, "__exit__": true, "__call__": true,
	"__len__": true, "__getitem__": true, "__setitem__": true,
	"__delitem__": true, "__iter__": true, "__next__": true,
	"__eq__": true, "__hash__": true, "__lt__": true, "__le__": true,
	"__gt__": true, "__ge__": true, "__add__": true, "__sub__": true,
	"__mul__": true, "__contains__": true, "__bool__": true,
}

// skipPrefixes marks test/benchmark/example function names, which test
// runners discover and call by convention rather than by direct reference.
var skipPrefixes = []string{"test_", "Test", "Benchmark", "Example"}

func shouldSkipName(name string) bool {
	if skipNames[name] {
		return true
	}
	for _, p := range skipPrefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}

// decorated reports whether any of decorators is NOT in allowedDecorators
// — an unlisted decorator is treated conservatively as marking an external
// entry point and exempts the definition (spec §9's open question). When
// allowedDecorators is empty, any decorator at all exempts, matching the
// spec's literal default.
func decorated(decorators []*syntax.Decorator, allowedDecorators []string) bool {
	for _, d := range decorators {
		if !containsString(allowedDecorators, d.Name()) {
			return true
		}
	}
	return false
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// CheckUnusedFunctions implements RP003: a top-level or class-level
// function definition whose name is never referenced from anywhere in the
// project (its own recursive calls aside), unless it is exported,
// underscore-prefixed, decorated with a decorator not on the project's
// entrypoint allow-list, or a conventionally-implicit name (main, dunder
// methods, test functions).
func CheckUnusedFunctions(files []*File, allowedDecorators []string) []diag.Diagnostic {
	idx := buildUsageIndex(files)
	var out []diag.Diagnostic
	for _, f := range files {
		for _, b := range f.Table.Bindings {
			if b.Kind != names.BindFunction || b.FuncDef == nil {
				continue
			}
			if !isTopLevelOrClassLevel(b.Scope) {
				continue
			}
			if underscored(b.Name) || shouldSkipName(b.Name) || f.Table.IsExported(b.Name) {
				continue
			}
			if decorated(b.FuncDef.Decorators, allowedDecorators) {
				continue
			}
			sp := b.FuncDef.Span()
			if isUsedExternally(idx, b.Name, f.Buf.Path, sp.Start, sp.End) {
				continue
			}
			out = append(out, newDiag(f, "RP003", b.Span, fmt.Sprintf("function %q is never referenced from any file", b.Name)))
		}
	}
	return out
}

// CheckUnusedClasses implements RP004, the same policy against class
// definitions.
func CheckUnusedClasses(files []*File, allowedDecorators []string) []diag.Diagnostic {
	idx := buildUsageIndex(files)
	var out []diag.Diagnostic
	for _, f := range files {
		for _, b := range f.Table.Bindings {
			if b.Kind != names.BindClass || b.ClassDef == nil {
				continue
			}
			if !isTopLevelOrClassLevel(b.Scope) {
				continue
			}
			if underscored(b.Name) || shouldSkipName(b.Name) || f.Table.IsExported(b.Name) {
				continue
			}
			if decorated(b.ClassDef.Decorators, allowedDecorators) {
				continue
			}
			sp := b.ClassDef.Span()
			if isUsedExternally(idx, b.Name, f.Buf.Path, sp.Start, sp.End) {
				continue
			}
			out = append(out, newDiag(f, "RP004", b.Span, fmt.Sprintf("class %q is never referenced from any file", b.Name)))
		}
	}
	return out
}

// isTopLevelOrClassLevel reports whether s is the module scope or a class
// body — RP003/RP004 never consider a definition nested inside a function.
func isTopLevelOrClassLevel(s *scope.Scope) bool {
	return s != nil && (s.Kind == scope.Module || s.Kind == scope.Class)
}
