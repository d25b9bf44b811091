package names

import (
	"regexp"

	"github.com/taradepan/reaper/internal/scope"
	"github.com/taradepan/reaper/internal/syntax"
	"github.com/taradepan/reaper/internal/token"
)

type refCollector struct {
	tree  *scope.Tree
	table *Table
}

// collectUsages is the reference pass: it walks mod a second time and
// records every name read, plus the sequential write/read log each scope
// needs for RP007's import-redefined-before-use check.
func collectUsages(table *Table, mod *syntax.Module, tree *scope.Tree) {
	r := &refCollector{tree: tree, table: table}
	r.walkStmts(mod.Body)
}

func (r *refCollector) event(s *scope.Scope, kind EventKind, name string, sp token.Span) {
	if s == nil {
		return
	}
	if r.table.Events == nil {
		r.table.Events = map[string][]Event{}
	}
	r.table.Events[s.ID] = append(r.table.Events[s.ID], Event{Name: name, Kind: kind, Span: sp})
}

func (r *refCollector) use(name string, sp token.Span, s *scope.Scope) {
	r.table.Usages = append(r.table.Usages, &Usage{Name: name, Span: sp, Scope: s})
	r.event(s, EventRead, name, sp)
}

func (r *refCollector) scopeOf(n syntax.Node) *scope.Scope { return r.tree.ScopeOf(n) }

func (r *refCollector) walkStmts(stmts []syntax.Stmt) {
	for _, stmt := range stmts {
		r.walkStmt(stmt)
	}
}

func (r *refCollector) walkStmt(stmt syntax.Stmt) {
	s := r.scopeOf(stmt)
	switch n := stmt.(type) {
	case *syntax.Import:
		for _, alias := range n.Names {
			r.event(s, EventImport, alias.LocalName(), aliasSpan(alias))
		}
	case *syntax.ImportFrom:
		if n.IsStar() {
			return
		}
		for _, alias := range n.Names {
			r.event(s, EventImport, alias.LocalName(), aliasSpan(alias))
		}
	case *syntax.Assign:
		r.loadExpr(n.Value, s)
		for _, target := range n.Targets {
			r.storeTarget(target, s)
			if name, sp, ok := simpleTargetName(target); ok {
				r.event(s, EventAssign, name, sp)
			}
		}
	case *syntax.AugAssign:
		// both read and write of Target (spec §4.3)
		r.readTargetBase(n.Target, s)
		r.loadExpr(n.Value, s)
	case *syntax.AnnAssign:
		r.loadExpr(n.Annotation, s)
		if n.Value != nil {
			r.readTargetBase(n.Target, s)
			r.loadExpr(n.Value, s)
		}
	case *syntax.FunctionDef:
		for _, d := range n.Decorators {
			r.loadExpr(d.Expr, s)
		}
		for _, p := range n.Params {
			if p.Annotation != nil {
				r.loadExpr(p.Annotation, s)
			}
			if p.Default != nil {
				r.loadExpr(p.Default, s)
			}
		}
		if n.Returns != nil {
			r.loadExpr(n.Returns, s)
		}
		r.walkStmts(n.Body)
	case *syntax.ClassDef:
		for _, d := range n.Decorators {
			r.loadExpr(d.Expr, s)
		}
		for _, b := range n.Bases {
			r.loadExpr(b, s)
		}
		r.walkStmts(n.Body)
	case *syntax.If:
		r.loadExpr(n.Cond, s)
		r.walkStmts(n.Body)
		r.walkStmts(n.Orelse)
	case *syntax.For:
		r.loadExpr(n.Iter, s)
		r.storeTarget(n.Target, s)
		r.walkStmts(n.Body)
		r.walkStmts(n.Orelse)
	case *syntax.While:
		r.loadExpr(n.Cond, s)
		r.walkStmts(n.Body)
		r.walkStmts(n.Orelse)
	case *syntax.With:
		for _, item := range n.Items {
			r.loadExpr(item.Context, s)
			if item.Target != nil {
				r.storeTarget(item.Target, s)
			}
		}
		r.walkStmts(n.Body)
	case *syntax.Try:
		r.walkStmts(n.Body)
		for _, h := range n.Handlers {
			if h.Type != nil {
				r.loadExpr(h.Type, s)
			}
			r.walkStmts(h.Body)
		}
		r.walkStmts(n.Orelse)
		r.walkStmts(n.Finally)
	case *syntax.Match:
		r.loadExpr(n.Subject, s)
		for _, c := range n.Cases {
			r.storePattern(c.Pattern, s)
			if c.Guard != nil {
				r.loadExpr(c.Guard, s)
			}
			r.walkStmts(c.Body)
		}
	case *syntax.Return:
		if n.Value != nil {
			r.loadExpr(n.Value, s)
		}
	case *syntax.Raise:
		if n.Exc != nil {
			r.loadExpr(n.Exc, s)
		}
		if n.Cause != nil {
			r.loadExpr(n.Cause, s)
		}
	case *syntax.Delete:
		for _, target := range n.Targets {
			r.loadExpr(target, s)
		}
	case *syntax.Break, *syntax.Continue, *syntax.Pass, *syntax.Global, *syntax.Nonlocal:
		// nothing to read
	}
}

// readTargetBase records the read half of an AugAssign/AnnAssign target: a
// plain name reads itself, an attribute/subscript target reads its base
// (the attribute/subscript tail never contributes a usage).
func (r *refCollector) readTargetBase(target syntax.Expr, s *scope.Scope) {
	r.loadExpr(target, s)
}

// storeTarget records usages for the non-binding parts of an assignment
// target (attribute/subscript bases) while leaving plain names alone, since
// those are store-context and were already recorded as Bindings.
func (r *refCollector) storeTarget(target syntax.Expr, s *scope.Scope) {
	switch t := target.(type) {
	case *syntax.Name:
		// store context; no usage
	case *syntax.TupleExpr:
		for _, elt := range t.Elts {
			r.storeTarget(elt, s)
		}
	case *syntax.ListExpr:
		for _, elt := range t.Elts {
			r.storeTarget(elt, s)
		}
	case *syntax.Starred:
		r.storeTarget(t.Value, s)
	case *syntax.Attribute:
		r.loadExpr(t.Value, s)
	case *syntax.Subscript:
		r.loadExpr(t.Value, s)
		r.loadExpr(t.Index, s)
	default:
		r.loadExpr(target, s)
	}
}

func (r *refCollector) storePattern(p syntax.Pattern, s *scope.Scope) {
	switch n := p.(type) {
	case *syntax.PatternValue:
		r.loadExpr(n.Value, s)
	case *syntax.PatternLiteral, *syntax.PatternCapture, *syntax.PatternWildcard:
		// no usage
	case *syntax.PatternSequence:
		for _, elt := range n.Elts {
			r.storePattern(elt, s)
		}
	case *syntax.PatternMapping:
		for _, k := range n.Keys {
			r.loadExpr(k, s)
		}
		for _, v := range n.Values {
			r.storePattern(v, s)
		}
	case *syntax.PatternClass:
		r.loadExpr(n.Class, s)
		for _, elt := range n.Positional {
			r.storePattern(elt, s)
		}
		for _, elt := range n.Keywords {
			r.storePattern(elt, s)
		}
	case *syntax.PatternOr:
		for _, alt := range n.Patterns {
			r.storePattern(alt, s)
		}
	case *syntax.PatternAs:
		r.storePattern(n.Pattern, s)
	}
}

func (r *refCollector) loadExpr(e syntax.Expr, s *scope.Scope) {
	if e == nil {
		return
	}
	switch n := e.(type) {
	case *syntax.Name:
		r.use(n.Id, n.Sp, s)
	case *syntax.Literal:
		// no usage
	case *syntax.BinOp:
		r.loadExpr(n.Left, s)
		r.loadExpr(n.Right, s)
	case *syntax.UnaryOp:
		r.loadExpr(n.Operand, s)
	case *syntax.BoolOp:
		for _, v := range n.Values {
			r.loadExpr(v, s)
		}
	case *syntax.Compare:
		r.loadExpr(n.Left, s)
		for _, c := range n.Comparators {
			r.loadExpr(c, s)
		}
	case *syntax.Call:
		r.loadExpr(n.Func, s)
		for _, a := range n.Args {
			r.loadExpr(a, s)
		}
		for _, kw := range n.Keywords {
			r.loadExpr(kw.Value, s)
		}
	case *syntax.Attribute:
		// only the base contributes a usage (spec §4.3)
		r.loadExpr(n.Value, s)
	case *syntax.Subscript:
		r.loadExpr(n.Value, s)
		r.loadExpr(n.Index, s)
	case *syntax.TupleExpr:
		for _, elt := range n.Elts {
			r.loadExpr(elt, s)
		}
	case *syntax.ListExpr:
		for _, elt := range n.Elts {
			r.loadExpr(elt, s)
		}
	case *syntax.DictExpr:
		for i, k := range n.Keys {
			if k != nil {
				r.loadExpr(k, s)
			}
			r.loadExpr(n.Values[i], s)
		}
	case *syntax.SetExpr:
		for _, elt := range n.Elts {
			r.loadExpr(elt, s)
		}
	case *syntax.Comprehension:
		r.loadComprehension(n, s)
	case *syntax.IfExp:
		r.loadExpr(n.Test, s)
		r.loadExpr(n.Body, s)
		r.loadExpr(n.Orelse, s)
	case *syntax.Lambda:
		childScope := r.tree.IntroducedScope(n)
		for _, p := range n.Params {
			if p.Default != nil {
				r.loadExpr(p.Default, s)
			}
		}
		r.loadExpr(n.Body, childScope)
	case *syntax.Named:
		r.loadExpr(n.Value, s)
		// the target itself is a binding, not a usage, at the point of
		// the walrus; later reads of it are ordinary Name usages.
	case *syntax.Starred:
		r.loadExpr(n.Value, s)
	case *syntax.Yield:
		if n.Value != nil {
			r.loadExpr(n.Value, s)
		}
	case *syntax.Await:
		r.loadExpr(n.Value, s)
	case *syntax.FString:
		r.scrapeFString(n, s)
	}
}

func (r *refCollector) loadComprehension(n *syntax.Comprehension, outer *scope.Scope) {
	if len(n.Generators) == 0 {
		// malformed/partial tree from a parser recovering after a syntax
		// error; nothing to resolve without a generator to anchor the scope.
		return
	}
	r.loadExpr(n.Generators[0].Iter, outer)
	inner := r.scopeOf(n.Generators[0])
	if inner == nil {
		inner = outer
	}
	for i, gen := range n.Generators {
		r.storeTarget(gen.Target, inner)
		if i > 0 {
			r.loadExpr(gen.Iter, inner)
		}
		for _, cond := range gen.Ifs {
			r.loadExpr(cond, inner)
		}
	}
	if n.Key != nil {
		r.loadExpr(n.Key, inner)
	}
	r.loadExpr(n.Element, inner)
}

// identLike matches the f-string scraping heuristic's candidate
// substrings; it deliberately over-matches (spec §4.3's "never
// under-report" bias) rather than attempting a real expression parse.
var identLike = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*`)

func (r *refCollector) scrapeFString(n *syntax.FString, s *scope.Scope) {
	for _, match := range identLike.FindAllString(n.Raw, -1) {
		if k := token.Lookup(match); k.IsKeyword() && k != token.MATCH && k != token.CASE {
			continue
		}
		r.use(match, n.Sp, s)
	}
}

func simpleTargetName(target syntax.Expr) (string, token.Span, bool) {
	if name, ok := target.(*syntax.Name); ok {
		return name.Id, name.Sp, true
	}
	return "", token.Span{}, false
}
