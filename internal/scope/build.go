package scope

import "github.com/taradepan/reaper/internal/syntax"

// Build walks a parsed module once and constructs its full scope tree,
// opening a child scope at every function, lambda, class, and
// comprehension, and recording the active scope for every node so later
// passes can resolve references without re-walking the tree.
func Build(mod *syntax.Module) *Tree {
	t := NewTree("module", mod)
	t.mark(mod, t.Root)
	walkStmts(t, mod.Body, t.Root)
	return t
}

func walkStmts(t *Tree, stmts []syntax.Stmt, s *Scope) {
	for _, stmt := range stmts {
		walkStmt(t, stmt, s)
	}
}

func walkStmt(t *Tree, stmt syntax.Stmt, s *Scope) {
	if stmt == nil {
		return
	}
	t.mark(stmt, s)
	switch n := stmt.(type) {
	case *syntax.Import, *syntax.Break, *syntax.Continue, *syntax.Pass:
		// no child nodes to walk
	case *syntax.ImportFrom:
		// nothing further; aliases carry no sub-expressions
	case *syntax.Assign:
		walkExpr(t, n.Value, s)
		for _, target := range n.Targets {
			walkExpr(t, target, s)
		}
	case *syntax.AugAssign:
		walkExpr(t, n.Target, s)
		walkExpr(t, n.Value, s)
	case *syntax.AnnAssign:
		walkExpr(t, n.Target, s)
		walkExpr(t, n.Annotation, s)
		if n.Value != nil {
			walkExpr(t, n.Value, s)
		}
	case *syntax.FunctionDef:
		for _, d := range n.Decorators {
			walkExpr(t, d.Expr, s)
		}
		for _, p := range n.Params {
			if p.Annotation != nil {
				walkExpr(t, p.Annotation, s)
			}
			if p.Default != nil {
				walkExpr(t, p.Default, s)
			}
		}
		if n.Returns != nil {
			walkExpr(t, n.Returns, s)
		}
		child := t.New(s, Function, n.Name, n)
		t.noteIntroduced(n, child)
		t.mark(n, s)
		walkStmts(t, n.Body, child)
	case *syntax.ClassDef:
		for _, d := range n.Decorators {
			walkExpr(t, d.Expr, s)
		}
		for _, b := range n.Bases {
			walkExpr(t, b, s)
		}
		child := t.New(s, Class, n.Name, n)
		t.noteIntroduced(n, child)
		t.mark(n, s)
		walkStmts(t, n.Body, child)
	case *syntax.If:
		walkExpr(t, n.Cond, s)
		walkStmts(t, n.Body, s)
		walkStmts(t, n.Orelse, s)
	case *syntax.For:
		walkExpr(t, n.Target, s)
		walkExpr(t, n.Iter, s)
		walkStmts(t, n.Body, s)
		walkStmts(t, n.Orelse, s)
	case *syntax.While:
		walkExpr(t, n.Cond, s)
		walkStmts(t, n.Body, s)
		walkStmts(t, n.Orelse, s)
	case *syntax.With:
		for _, item := range n.Items {
			walkExpr(t, item.Context, s)
			if item.Target != nil {
				walkExpr(t, item.Target, s)
			}
		}
		walkStmts(t, n.Body, s)
	case *syntax.Try:
		walkStmts(t, n.Body, s)
		for _, h := range n.Handlers {
			if h.Type != nil {
				walkExpr(t, h.Type, s)
			}
			walkStmts(t, h.Body, s)
		}
		walkStmts(t, n.Orelse, s)
		walkStmts(t, n.Finally, s)
	case *syntax.Match:
		walkExpr(t, n.Subject, s)
		for _, c := range n.Cases {
			walkPattern(t, c.Pattern, s)
			if c.Guard != nil {
				walkExpr(t, c.Guard, s)
			}
			walkStmts(t, c.Body, s)
		}
	case *syntax.Return:
		if n.Value != nil {
			walkExpr(t, n.Value, s)
		}
	case *syntax.Raise:
		if n.Exc != nil {
			walkExpr(t, n.Exc, s)
		}
		if n.Cause != nil {
			walkExpr(t, n.Cause, s)
		}
	case *syntax.Global:
		for _, name := range n.Names {
			s.Globals[name] = true
		}
	case *syntax.Nonlocal:
		for _, name := range n.Names {
			s.Nonlocals[name] = true
		}
	case *syntax.Delete:
		for _, target := range n.Targets {
			walkExpr(t, target, s)
		}
	case *syntax.ExprStmt:
		walkExpr(t, n.Value, s)
	}
}

func walkPattern(t *Tree, p syntax.Pattern, s *Scope) {
	if p == nil {
		return
	}
	t.mark(p, s)
	switch n := p.(type) {
	case *syntax.PatternValue:
		walkExpr(t, n.Value, s)
	case *syntax.PatternSequence:
		for _, elt := range n.Elts {
			walkPattern(t, elt, s)
		}
	case *syntax.PatternMapping:
		for _, k := range n.Keys {
			walkExpr(t, k, s)
		}
		for _, v := range n.Values {
			walkPattern(t, v, s)
		}
	case *syntax.PatternClass:
		walkExpr(t, n.Class, s)
		for _, elt := range n.Positional {
			walkPattern(t, elt, s)
		}
		for _, elt := range n.Keywords {
			walkPattern(t, elt, s)
		}
	case *syntax.PatternOr:
		for _, alt := range n.Patterns {
			walkPattern(t, alt, s)
		}
	case *syntax.PatternAs:
		walkPattern(t, n.Pattern, s)
	}
}

func walkExpr(t *Tree, e syntax.Expr, s *Scope) {
	if e == nil {
		return
	}
	t.mark(e, s)
	switch n := e.(type) {
	case *syntax.Name, *syntax.Literal:
		// leaves
	case *syntax.BinOp:
		walkExpr(t, n.Left, s)
		walkExpr(t, n.Right, s)
	case *syntax.UnaryOp:
		walkExpr(t, n.Operand, s)
	case *syntax.BoolOp:
		for _, v := range n.Values {
			walkExpr(t, v, s)
		}
	case *syntax.Compare:
		walkExpr(t, n.Left, s)
		for _, c := range n.Comparators {
			walkExpr(t, c, s)
		}
	case *syntax.Call:
		walkExpr(t, n.Func, s)
		for _, a := range n.Args {
			walkExpr(t, a, s)
		}
		for _, kw := range n.Keywords {
			walkExpr(t, kw.Value, s)
		}
		if isReflectiveCapture(n) {
			s.EnclosingFunction().ReflectiveCapture = true
		}
	case *syntax.Attribute:
		walkExpr(t, n.Value, s)
	case *syntax.Subscript:
		walkExpr(t, n.Value, s)
		walkExpr(t, n.Index, s)
	case *syntax.TupleExpr:
		for _, elt := range n.Elts {
			walkExpr(t, elt, s)
		}
	case *syntax.ListExpr:
		for _, elt := range n.Elts {
			walkExpr(t, elt, s)
		}
	case *syntax.DictExpr:
		for i, k := range n.Keys {
			if k != nil {
				walkExpr(t, k, s)
			}
			walkExpr(t, n.Values[i], s)
		}
	case *syntax.SetExpr:
		for _, elt := range n.Elts {
			walkExpr(t, elt, s)
		}
	case *syntax.Comprehension:
		walkComprehension(t, n, s)
	case *syntax.IfExp:
		walkExpr(t, n.Test, s)
		walkExpr(t, n.Body, s)
		walkExpr(t, n.Orelse, s)
	case *syntax.Lambda:
		for _, p := range n.Params {
			if p.Default != nil {
				walkExpr(t, p.Default, s)
			}
		}
		child := t.New(s, Lambda, "", n)
		t.noteIntroduced(n, child)
		t.mark(n, s)
		walkExpr(t, n.Body, child)
	case *syntax.Named:
		walkExpr(t, n.Value, s)
		t.mark(n.Target, s.WalrusScope())
	case *syntax.Starred:
		walkExpr(t, n.Value, s)
	case *syntax.Yield:
		if n.Value != nil {
			walkExpr(t, n.Value, s)
		}
	case *syntax.Await:
		walkExpr(t, n.Value, s)
	case *syntax.FString:
		// opaque text; no sub-expressions to walk
	}
}

// walkComprehension opens the comprehension's own scope and, matching
// Python's actual binding semantics, evaluates only the first generator's
// Iter in the enclosing scope; everything else (targets, conditions, later
// generators' Iter, the element/key expressions) lives inside the new scope.
func walkComprehension(t *Tree, n *syntax.Comprehension, s *Scope) {
	if len(n.Generators) > 0 {
		walkExpr(t, n.Generators[0].Iter, s)
	}
	child := t.New(s, Comprehension, "", n)
	t.noteIntroduced(n, child)
	t.mark(n, s)
	for i, gen := range n.Generators {
		t.mark(gen, child)
		walkExpr(t, gen.Target, child)
		if i > 0 {
			walkExpr(t, gen.Iter, child)
		}
		for _, cond := range gen.Ifs {
			walkExpr(t, cond, child)
		}
	}
	if n.Key != nil {
		walkExpr(t, n.Key, child)
	}
	walkExpr(t, n.Element, child)
}

func isReflectiveCapture(call *syntax.Call) bool {
	name, ok := call.Func.(*syntax.Name)
	return ok && (name.Id == "locals" || name.Id == "vars")
}
