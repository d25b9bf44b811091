// Package names collects, per file, the tables of bound names and name
// usages that the rule checkers consume: a binding pass enumerating every
// new name introduction with its scope, and a reference pass enumerating
// every name read (spec §4.3).
package names

import (
	"github.com/taradepan/reaper/internal/scope"
	"github.com/taradepan/reaper/internal/syntax"
	"github.com/taradepan/reaper/internal/token"
)

// BindKind classifies how a name came to be bound.
type BindKind string

const (
	BindImport        BindKind = "import"
	BindFunction      BindKind = "function"
	BindClass         BindKind = "class"
	BindAssignment    BindKind = "assignment"
	BindParameter     BindKind = "parameter"
	BindLoopTarget    BindKind = "loop-target"
	BindCompTarget    BindKind = "comprehension-target"
	BindWalrus        BindKind = "walrus"
	BindWithTarget    BindKind = "with-target"
	BindExceptTarget  BindKind = "except-target"
)

// Binding is one new-name introduction recorded during the binding pass.
type Binding struct {
	Name  string
	Kind  BindKind
	Span  token.Span
	Scope *scope.Scope

	// GroupID is nonzero for names bound as siblings of the same
	// tuple/list unpacking target; RP002 treats such a group as
	// all-or-unused unless the unused member is `_`-prefixed.
	GroupID int

	// Import-specific.
	Alias        *syntax.Alias
	ImportFrom   *syntax.ImportFrom // non-nil when this came from a `from m import ...`
	Reexport     bool               // `from m import x as x`
	FromFuture   bool               // `from __future__ import ...`
	TypeChecking bool               // directly guarded by `if TYPE_CHECKING:`

	// Function/class specific.
	FuncDef    *syntax.FunctionDef
	ClassDef   *syntax.ClassDef
	Decorated  bool
	NameOnly   string // bare identifier, for convenience on Function/Class bindings

	// Parameter specific.
	Param        *syntax.Parameter
	IsSelfOrCls  bool
	FuncScope    *scope.Scope // the function scope this parameter belongs to
}

// Usage is one name read recorded during the reference pass.
type Usage struct {
	Name  string
	Span  token.Span
	Scope *scope.Scope
}

// EventKind classifies one entry of a scope's sequential write/read log,
// used only by RP007 to decide whether an import is read before it is
// reassigned.
type EventKind int

const (
	EventImport EventKind = iota
	EventAssign
	EventRead
)

// Event is one (name, kind) occurrence in program order within a scope.
type Event struct {
	Name string
	Kind EventKind
	Span token.Span
}

// Table holds the complete per-file name information the checkers need.
type Table struct {
	File string
	Tree *scope.Tree

	Bindings []*Binding
	Usages   []*Usage

	// Events is keyed by scope ID so RP007 can scan one scope's ordered
	// log without filtering the flat slice repeatedly.
	Events map[string][]Event

	// Exports holds the string members of a module-level `__all__` that
	// was syntactically a literal list/tuple; ExportsDynamic is true when a
	// module-level `__all__ = ...` assignment has some other value (computed,
	// a name reference), in which case Exports is left empty per spec §9.
	// Augmented `__all__ += ...` statements are ignored and do not set it.
	Exports        map[string]bool
	ExportsDynamic bool
}

// IsExported reports whether name is listed in this file's __all__.
func (t *Table) IsExported(name string) bool {
	return t.Exports != nil && t.Exports[name]
}

// UsedAnywhere reports whether name has at least one Usage recorded
// anywhere in the file, regardless of scope. RP003/RP004 match names
// nominally across the whole project, so file-level granularity here is
// sufficient; RP001/RP002/RP007/RP008/RP009 use scope-aware helpers below.
func (t *Table) UsedAnywhere(name string) bool {
	for _, u := range t.Usages {
		if u.Name == name {
			return true
		}
	}
	return false
}

// UsagesIn returns every Usage, of any name, whose Scope is s or a
// descendant of s that does not itself rebind that name in an intervening
// scope boundary that would shadow it. Callers that need to know whether
// one specific binding is live (RP001/RP002) must filter the result — or
// call UsagesOf — rather than treat a non-empty slice as "this name is
// used"; RP008/RP009 want every name's usages at once (to check several
// parameters/targets against one scope) and filter by name themselves.
func (t *Table) UsagesIn(s *scope.Scope) []*Usage {
	var out []*Usage
	shadowed := shadowSet(t, s)
	for _, u := range t.Usages {
		if !isSameOrDescendant(u.Scope, s) {
			continue
		}
		if u.Scope != s && shadowed[scopeNamePair{u.Scope, u.Name}] {
			continue
		}
		out = append(out, u)
	}
	return out
}

// UsagesOf returns every Usage of name whose Scope is s or a descendant of
// s that does not itself rebind name in an intervening scope boundary that
// would shadow it. "Live" is approximated as: same scope, or any nested
// scope that does not declare name as one of its own Bindings (a
// conservative, single forward-pass approximation consistent with the
// rest of the analyzer). This is the helper RP001/RP002 need: whether
// *this* binding specifically has a use, not whether the scope has any
// usage at all.
func (t *Table) UsagesOf(name string, s *scope.Scope) []*Usage {
	var out []*Usage
	for _, u := range t.UsagesIn(s) {
		if u.Name == name {
			out = append(out, u)
		}
	}
	return out
}

type scopeNamePair struct {
	s    *scope.Scope
	name string
}

// shadowSet finds, for every descendant scope of s (exclusive), the set of
// names bound directly in that scope, so UsagesIn can exclude a read whose
// own scope rebinds the name from counting as a use of the outer binding.
// Bindings in scopes between s and the read's scope are not consulted.
func shadowSet(t *Table, s *scope.Scope) map[scopeNamePair]bool {
	out := map[scopeNamePair]bool{}
	for _, b := range t.Bindings {
		if b.Scope == s {
			continue
		}
		if isSameOrDescendant(b.Scope, s) {
			out[scopeNamePair{b.Scope, b.Name}] = true
		}
	}
	return out
}

func isSameOrDescendant(child, ancestor *scope.Scope) bool {
	for cur := child; cur != nil; cur = cur.Parent {
		if cur == ancestor {
			return true
		}
	}
	return false
}
