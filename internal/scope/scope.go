// Package scope builds the scope tree for a parsed file: module, function,
// lambda, class, and comprehension scopes, each tracking its parent, its
// locally bound names, and whether it reaches a reflective name-capture call.
package scope

import "github.com/taradepan/reaper/internal/syntax"

// Kind identifies the syntactic construct that opened a Scope.
type Kind string

const (
	Module        Kind = "module"
	Function      Kind = "function"
	Lambda        Kind = "lambda"
	Class         Kind = "class"
	Comprehension Kind = "comprehension"
)

// Scope mirrors the teacher's linage.Scope shape (ID/Kind/Name/ParentID plus
// a source span) but additionally carries the live binding-resolution state
// the collector needs: the parent pointer itself, declared global/nonlocal
// names, and a reflective-capture flag used by RP002's locals()/vars() exemption.
type Scope struct {
	ID       string `yaml:"id"`
	Kind     Kind   `yaml:"kind"`
	Name     string `yaml:"name,omitempty"`
	ParentID string `yaml:"parentId,omitempty"`
	Start    int    `yaml:"start"`
	End      int    `yaml:"end"`

	Parent *Scope `yaml:"-"`

	// Globals/Nonlocals are names declared via `global`/`nonlocal` inside this
	// scope; reads/writes of these names resolve to an outer scope instead.
	Globals   map[string]bool `yaml:"-"`
	Nonlocals map[string]bool `yaml:"-"`

	// ReflectiveCapture is true when this scope (or a nested non-function
	// scope within it, i.e. not crossing into a child function) contains a
	// direct call to locals() or vars().
	ReflectiveCapture bool `yaml:"-"`

	Node syntax.Node `yaml:"-"`

	children []*Scope
}

// Declares reports whether name is declared global or nonlocal in this scope.
func (s *Scope) Declares(name string) bool {
	if s.Globals != nil && s.Globals[name] {
		return true
	}
	if s.Nonlocals != nil && s.Nonlocals[name] {
		return true
	}
	return false
}

// IsFunctionLike reports whether this scope kind introduces a new local
// variable namespace the way `def`/`lambda` do (as opposed to class bodies,
// whose bindings are not visible to nested function bodies).
func (k Kind) IsFunctionLike() bool {
	return k == Function || k == Lambda
}

// Tree is the full scope forest for one file, rooted at Root (the module
// scope). Scopes are also indexed by ID for O(1) lookup during the reference
// pass.
type Tree struct {
	Root *Scope
	byID map[string]*Scope

	// nodeScope maps every statement/expression node visited by Build to
	// the scope active at that point in the tree, so the name collector
	// can resolve a reference's scope without re-walking itself.
	nodeScope map[syntax.Node]*Scope

	// introduced maps a scope-opening node (FunctionDef, ClassDef, Lambda,
	// Comprehension) to the child scope it opened, since nodeScope for
	// that same node records the *enclosing* scope it textually sits in.
	introduced map[syntax.Node]*Scope
}

// NewTree creates an empty tree with a fresh module-level root scope.
func NewTree(moduleID string, modSpan syntax.Node) *Tree {
	root := &Scope{
		ID:        moduleID,
		Kind:      Module,
		Start:     modSpan.Span().Start,
		End:       modSpan.Span().End,
		Globals:   map[string]bool{},
		Nonlocals: map[string]bool{},
		Node:      modSpan,
	}
	t := &Tree{
		Root:       root,
		byID:       map[string]*Scope{moduleID: root},
		nodeScope:  map[syntax.Node]*Scope{},
		introduced: map[syntax.Node]*Scope{},
	}
	return t
}

// ScopeOf returns the scope that was active when n was visited during Build,
// or nil if n was never visited (e.g. a node from a different tree).
func (t *Tree) ScopeOf(n syntax.Node) *Scope { return t.nodeScope[n] }

// IntroducedScope returns the child scope that n (a FunctionDef, ClassDef,
// Lambda, or Comprehension) opened, or nil if n does not open a scope.
func (t *Tree) IntroducedScope(n syntax.Node) *Scope { return t.introduced[n] }

func (t *Tree) mark(n syntax.Node, s *Scope) { t.nodeScope[n] = s }

func (t *Tree) noteIntroduced(n syntax.Node, s *Scope) { t.introduced[n] = s }

// New allocates and registers a child scope of parent.
func (t *Tree) New(parent *Scope, kind Kind, name string, node syntax.Node) *Scope {
	id := parent.ID + "." + string(kind)
	if name != "" {
		id = parent.ID + "." + name
	}
	if _, exists := t.byID[id]; exists {
		// Disambiguate repeated names (e.g. two comprehensions in one
		// function) by appending a running counter.
		for i := 2; ; i++ {
			candidate := id + "#" + itoa(i)
			if _, taken := t.byID[candidate]; !taken {
				id = candidate
				break
			}
		}
	}
	sp := node.Span()
	s := &Scope{
		ID:        id,
		Kind:      kind,
		Name:      name,
		ParentID:  parent.ID,
		Start:     sp.Start,
		End:       sp.End,
		Parent:    parent,
		Globals:   map[string]bool{},
		Nonlocals: map[string]bool{},
		Node:      node,
	}
	parent.children = append(parent.children, s)
	t.byID[id] = s
	return s
}

// ByID looks up a scope by its hierarchical ID.
func (t *Tree) ByID(id string) *Scope { return t.byID[id] }

// Children returns the direct child scopes of s, in construction order.
func (s *Scope) Children() []*Scope { return s.children }

// EnclosingFunction walks up from s to the nearest function/lambda scope,
// or returns the module root if s is nested only inside class/comprehension
// scopes without an intervening function (e.g. a class body at module level).
func (s *Scope) EnclosingFunction() *Scope {
	for cur := s; cur != nil; cur = cur.Parent {
		if cur.Kind.IsFunctionLike() || cur.Parent == nil {
			return cur
		}
	}
	return s
}

// BindingScope returns the scope a new binding introduced textually within s
// should attach to, honoring global/nonlocal redirection: walrus targets and
// ordinary assignments bind in s unless s (or its enclosing function) has
// declared the name global/nonlocal, in which case the binding redirects to
// the module root or the nearest enclosing function scope above, respectively.
func (s *Scope) BindingScope(name string) *Scope {
	fn := s.EnclosingFunction()
	if fn.Globals[name] {
		return fn.moduleRoot()
	}
	if fn.Nonlocals[name] {
		for cur := fn.Parent; cur != nil; cur = cur.Parent {
			if cur.Kind.IsFunctionLike() {
				return cur
			}
			if cur.Parent == nil {
				return cur
			}
		}
	}
	return s
}

func (s *Scope) moduleRoot() *Scope {
	cur := s
	for cur.Parent != nil {
		cur = cur.Parent
	}
	return cur
}

// WalrusScope returns the scope a named-expression (walrus) target binds
// into: the nearest enclosing function or module scope, skipping any
// comprehension scopes the walrus textually lives inside (§4.3).
func (s *Scope) WalrusScope() *Scope {
	cur := s
	for cur.Kind == Comprehension {
		cur = cur.Parent
	}
	return cur
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
