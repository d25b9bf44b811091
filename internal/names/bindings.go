package names

import (
	"github.com/taradepan/reaper/internal/scope"
	"github.com/taradepan/reaper/internal/syntax"
	"github.com/taradepan/reaper/internal/token"
)

type binder struct {
	tree       *scope.Tree
	table      *Table
	nextGrp    int
	guardDepth int // >0 while binding statements directly inside an `if TYPE_CHECKING:` body
}

// collectBindings is the binding pass: it enumerates every new name
// introduction in mod and records it with its scope, without deciding
// anything about whether the binding is later read.
func collectBindings(table *Table, mod *syntax.Module, tree *scope.Tree) {
	b := &binder{tree: tree, table: table}
	b.bindStmts(mod.Body)
}

func (b *binder) add(bind *Binding) {
	b.table.Bindings = append(b.table.Bindings, bind)
}

func (b *binder) scopeOf(n syntax.Node) *scope.Scope {
	return b.tree.ScopeOf(n)
}

func (b *binder) bindStmts(stmts []syntax.Stmt) {
	for _, stmt := range stmts {
		b.bindStmt(stmt)
	}
}

func (b *binder) bindStmt(stmt syntax.Stmt) {
	s := b.scopeOf(stmt)
	switch n := stmt.(type) {
	case *syntax.Import:
		for _, alias := range n.Names {
			b.add(&Binding{
				Name:         alias.LocalName(),
				Kind:         BindImport,
				Span:         aliasSpan(alias),
				Scope:        s,
				Alias:        alias,
				TypeChecking: b.guardDepth > 0,
			})
		}
	case *syntax.ImportFrom:
		if n.IsStar() {
			break // no bindable name
		}
		isFuture := n.Module == "__future__"
		for _, alias := range n.Names {
			b.add(&Binding{
				Name:         alias.LocalName(),
				Kind:         BindImport,
				Span:         aliasSpan(alias),
				Scope:        s,
				Alias:        alias,
				ImportFrom:   n,
				Reexport:     alias.AsName != "" && alias.AsName == alias.Name,
				FromFuture:   isFuture,
				TypeChecking: b.guardDepth > 0,
			})
		}
	case *syntax.Assign:
		b.bindNamedExprs(n.Value)
		for _, target := range n.Targets {
			b.bindTarget(target, s, BindAssignment, 0)
		}
	case *syntax.AugAssign:
		// Per spec §4.3 this counts as both read and write of an existing
		// name; it does not introduce a fresh binding of its own.
		b.bindNamedExprs(n.Value)
	case *syntax.AnnAssign:
		b.bindNamedExprs(n.Annotation)
		if n.Value != nil {
			b.bindNamedExprs(n.Value)
		}
	case *syntax.FunctionDef:
		b.add(&Binding{
			Name:      n.Name,
			Kind:      BindFunction,
			Span:      n.NameSpan,
			Scope:     s,
			FuncDef:   n,
			Decorated: len(n.Decorators) > 0,
			NameOnly:  n.Name,
		})
		for _, d := range n.Decorators {
			b.bindNamedExprs(d.Expr)
		}
		for _, p := range n.Params {
			if p.Annotation != nil {
				b.bindNamedExprs(p.Annotation)
			}
			if p.Default != nil {
				b.bindNamedExprs(p.Default)
			}
		}
		if n.Returns != nil {
			b.bindNamedExprs(n.Returns)
		}
		child := b.tree.IntroducedScope(n)
		b.bindParams(n.Params, child, n.InClass)
		b.bindStmts(n.Body)
	case *syntax.ClassDef:
		b.add(&Binding{
			Name:      n.Name,
			Kind:      BindClass,
			Span:      n.NameSpan,
			Scope:     s,
			ClassDef:  n,
			Decorated: len(n.Decorators) > 0,
			NameOnly:  n.Name,
		})
		for _, d := range n.Decorators {
			b.bindNamedExprs(d.Expr)
		}
		for _, base := range n.Bases {
			b.bindNamedExprs(base)
		}
		b.bindStmts(n.Body)
	case *syntax.If:
		b.bindNamedExprs(n.Cond)
		if isTypeCheckingGuard(n.Cond) {
			b.guardDepth++
			b.bindStmts(n.Body)
			b.guardDepth--
		} else {
			b.bindStmts(n.Body)
		}
		b.bindStmts(n.Orelse)
	case *syntax.For:
		b.bindNamedExprs(n.Iter)
		b.bindTarget(n.Target, s, BindLoopTarget, 0)
		b.bindStmts(n.Body)
		b.bindStmts(n.Orelse)
	case *syntax.While:
		b.bindNamedExprs(n.Cond)
		b.bindStmts(n.Body)
		b.bindStmts(n.Orelse)
	case *syntax.With:
		for _, item := range n.Items {
			b.bindNamedExprs(item.Context)
			if item.Target != nil {
				b.bindTarget(item.Target, s, BindWithTarget, 0)
			}
		}
		b.bindStmts(n.Body)
	case *syntax.Try:
		b.bindStmts(n.Body)
		for _, h := range n.Handlers {
			if h.Type != nil {
				b.bindNamedExprs(h.Type)
			}
			if h.Name != "" {
				b.add(&Binding{Name: h.Name, Kind: BindExceptTarget, Span: h.Sp, Scope: s})
			}
			b.bindStmts(h.Body)
		}
		b.bindStmts(n.Orelse)
		b.bindStmts(n.Finally)
	case *syntax.Match:
		b.bindNamedExprs(n.Subject)
		for _, c := range n.Cases {
			b.bindPattern(c.Pattern, s)
			if c.Guard != nil {
				b.bindNamedExprs(c.Guard)
			}
			b.bindStmts(c.Body)
		}
	case *syntax.ExprStmt:
		b.bindNamedExprs(n.Value)
	case *syntax.Return:
		if n.Value != nil {
			b.bindNamedExprs(n.Value)
		}
	case *syntax.Raise:
		if n.Exc != nil {
			b.bindNamedExprs(n.Exc)
		}
		if n.Cause != nil {
			b.bindNamedExprs(n.Cause)
		}
	case *syntax.Delete:
		for _, target := range n.Targets {
			b.bindNamedExprs(target)
		}
	case *syntax.Break, *syntax.Continue, *syntax.Pass,
		*syntax.Global, *syntax.Nonlocal:
		// no new bindings
	}
}

// bindNamedExprs recurses into an arbitrary expression solely to find
// walrus (`:=`) targets and comprehension targets, which bind even when the
// enclosing statement (e.g. an Assign value, a call argument) is not itself
// a dedicated binding form.
func (b *binder) bindNamedExprs(e syntax.Expr) {
	if e == nil {
		return
	}
	switch n := e.(type) {
	case *syntax.Named:
		walrusScope := b.tree.ScopeOf(n.Target)
		b.add(&Binding{Name: n.Target.Id, Kind: BindWalrus, Span: n.Target.Sp, Scope: walrusScope})
		b.bindNamedExprs(n.Value)
	case *syntax.BinOp:
		b.bindNamedExprs(n.Left)
		b.bindNamedExprs(n.Right)
	case *syntax.BoolOp:
		for _, v := range n.Values {
			b.bindNamedExprs(v)
		}
	case *syntax.Compare:
		b.bindNamedExprs(n.Left)
		for _, c := range n.Comparators {
			b.bindNamedExprs(c)
		}
	case *syntax.UnaryOp:
		b.bindNamedExprs(n.Operand)
	case *syntax.Call:
		b.bindNamedExprs(n.Func)
		for _, a := range n.Args {
			b.bindNamedExprs(a)
		}
		for _, kw := range n.Keywords {
			b.bindNamedExprs(kw.Value)
		}
	case *syntax.Attribute:
		b.bindNamedExprs(n.Value)
	case *syntax.Subscript:
		b.bindNamedExprs(n.Value)
		b.bindNamedExprs(n.Index)
	case *syntax.TupleExpr:
		for _, elt := range n.Elts {
			b.bindNamedExprs(elt)
		}
	case *syntax.ListExpr:
		for _, elt := range n.Elts {
			b.bindNamedExprs(elt)
		}
	case *syntax.SetExpr:
		for _, elt := range n.Elts {
			b.bindNamedExprs(elt)
		}
	case *syntax.DictExpr:
		for i, k := range n.Keys {
			if k != nil {
				b.bindNamedExprs(k)
			}
			b.bindNamedExprs(n.Values[i])
		}
	case *syntax.IfExp:
		b.bindNamedExprs(n.Test)
		b.bindNamedExprs(n.Body)
		b.bindNamedExprs(n.Orelse)
	case *syntax.Lambda:
		for _, p := range n.Params {
			if p.Default != nil {
				b.bindNamedExprs(p.Default)
			}
		}
		lambdaScope := b.tree.IntroducedScope(n)
		b.bindParams(n.Params, lambdaScope, false)
		b.bindNamedExprs(n.Body)
	case *syntax.Starred:
		b.bindNamedExprs(n.Value)
	case *syntax.Yield:
		if n.Value != nil {
			b.bindNamedExprs(n.Value)
		}
	case *syntax.Await:
		b.bindNamedExprs(n.Value)
	case *syntax.Comprehension:
		if len(n.Generators) > 0 {
			b.bindNamedExprs(n.Generators[0].Iter)
		}
		for i, gen := range n.Generators {
			compScope := b.tree.ScopeOf(gen)
			b.bindTarget(gen.Target, compScope, BindCompTarget, 0)
			if i > 0 {
				b.bindNamedExprs(gen.Iter)
			}
			for _, cond := range gen.Ifs {
				b.bindNamedExprs(cond)
			}
		}
		if n.Key != nil {
			b.bindNamedExprs(n.Key)
		}
		b.bindNamedExprs(n.Element)
	}
}

func (b *binder) bindParams(params []*syntax.Parameter, funcScope *scope.Scope, inClass bool) {
	for i, p := range params {
		isSelf := inClass && i == 0 && p.Kind == syntax.ParamPositional
		b.add(&Binding{
			Name:        p.Name,
			Kind:        BindParameter,
			Span:        p.Sp,
			Scope:       funcScope,
			Param:       p,
			IsSelfOrCls: isSelf,
			FuncScope:   funcScope,
		})
	}
}

// bindTarget recursively records bindings for an assignment/for/with
// target, which may be a plain name, or a tuple/list unpacking of names,
// attributes, subscripts, and starred sub-targets. Attribute/Subscript
// targets do not introduce a name binding (the base is a usage instead,
// handled by the reference pass).
func (b *binder) bindTarget(target syntax.Expr, s *scope.Scope, kind BindKind, group int) {
	switch t := target.(type) {
	case *syntax.Name:
		b.add(&Binding{Name: t.Id, Kind: kind, Span: t.Sp, Scope: s, GroupID: group})
	case *syntax.TupleExpr:
		g := b.newGroup()
		for _, e := range t.Elts {
			b.bindTarget(e, s, kind, g)
		}
	case *syntax.ListExpr:
		g := b.newGroup()
		for _, e := range t.Elts {
			b.bindTarget(e, s, kind, g)
		}
	case *syntax.Starred:
		b.bindTarget(t.Value, s, kind, group)
	case *syntax.Attribute, *syntax.Subscript:
		// not a binding
	}
}

func (b *binder) newGroup() int {
	b.nextGrp++
	return b.nextGrp
}

func (b *binder) bindPattern(p syntax.Pattern, s *scope.Scope) {
	switch n := p.(type) {
	case *syntax.PatternCapture:
		b.add(&Binding{Name: n.Name, Kind: BindAssignment, Span: n.Sp, Scope: s})
	case *syntax.PatternSequence:
		for _, elt := range n.Elts {
			b.bindPattern(elt, s)
		}
	case *syntax.PatternMapping:
		for _, v := range n.Values {
			b.bindPattern(v, s)
		}
		if n.Rest != "" {
			b.add(&Binding{Name: n.Rest, Kind: BindAssignment, Span: n.Sp, Scope: s})
		}
	case *syntax.PatternClass:
		for _, elt := range n.Positional {
			b.bindPattern(elt, s)
		}
		for _, elt := range n.Keywords {
			b.bindPattern(elt, s)
		}
	case *syntax.PatternOr:
		for _, alt := range n.Patterns {
			b.bindPattern(alt, s)
		}
	case *syntax.PatternAs:
		b.bindPattern(n.Pattern, s)
		if n.Name != "" {
			b.add(&Binding{Name: n.Name, Kind: BindAssignment, Span: n.Sp, Scope: s})
		}
	}
}

// isTypeCheckingGuard reports whether cond is a bare reference to the
// conventional type-checking sentinel identifier, e.g. `if TYPE_CHECKING:`
// or `if typing.TYPE_CHECKING:` (spec §4.4 RP001 exemption).
func isTypeCheckingGuard(cond syntax.Expr) bool {
	switch c := cond.(type) {
	case *syntax.Name:
		return c.Id == "TYPE_CHECKING"
	case *syntax.Attribute:
		return c.Attr == "TYPE_CHECKING"
	}
	return false
}

func aliasSpan(a *syntax.Alias) token.Span {
	if a.AsName != "" {
		return a.AsNameSp
	}
	return a.NameSp
}
