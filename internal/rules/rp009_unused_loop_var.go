package rules

import (
	"github.com/taradepan/reaper/internal/diag"
	"github.com/taradepan/reaper/internal/syntax"
)

// CheckUnusedLoopVar implements RP009: a for-loop whose target introduces
// only names that are never read anywhere in the loop body. Tuple targets
// are flagged only when every non-underscored component is unused (spec
// §4.4); `for` does not open its own scope, so liveness is scoped by byte
// range within the body rather than by a distinct Scope.
func CheckUnusedLoopVar(f *File) []diag.Diagnostic {
	c := &loopVarChecker{f: f}
	c.walkStmts(f.Mod.Body)
	return c.out
}

type loopVarChecker struct {
	f   *File
	out []diag.Diagnostic
}

func (c *loopVarChecker) walkStmts(stmts []syntax.Stmt) {
	for _, st := range stmts {
		c.walkStmt(st)
	}
}

func (c *loopVarChecker) walkStmt(st syntax.Stmt) {
	switch n := st.(type) {
	case *syntax.For:
		c.check(n)
		c.walkStmts(n.Body)
		c.walkStmts(n.Orelse)
	case *syntax.FunctionDef:
		c.walkStmts(n.Body)
	case *syntax.ClassDef:
		c.walkStmts(n.Body)
	case *syntax.If:
		c.walkStmts(n.Body)
		c.walkStmts(n.Orelse)
	case *syntax.While:
		c.walkStmts(n.Body)
		c.walkStmts(n.Orelse)
	case *syntax.With:
		c.walkStmts(n.Body)
	case *syntax.Try:
		c.walkStmts(n.Body)
		for _, h := range n.Handlers {
			c.walkStmts(h.Body)
		}
		c.walkStmts(n.Orelse)
		c.walkStmts(n.Finally)
	case *syntax.Match:
		for _, mc := range n.Cases {
			c.walkStmts(mc.Body)
		}
	}
}

func (c *loopVarChecker) check(n *syntax.For) {
	names := targetNames(n.Target)
	live := 0
	for _, name := range names {
		if underscored(name) {
			continue
		}
		live++
	}
	if live == 0 {
		return // every component is `_`-prefixed, or there's nothing to name
	}

	scope := c.f.Table.Tree.ScopeOf(n)
	lo, hi := bodyBounds(n.Body)
	anyUsed := false
	for _, u := range c.f.Table.UsagesIn(scope) {
		if u.Span.Start < lo || u.Span.Start >= hi {
			continue
		}
		for _, name := range names {
			if u.Name == name && !underscored(name) {
				anyUsed = true
			}
		}
	}
	if anyUsed {
		return
	}
	c.out = append(c.out, newDiag(c.f, "RP009", n.Target.Span(), "loop variable is never used in the loop body"))
}

// targetNames flattens a for-loop target into its bound leaf names,
// ignoring attribute/subscript sub-targets (they don't introduce a name).
func targetNames(target syntax.Expr) []string {
	switch t := target.(type) {
	case *syntax.Name:
		return []string{t.Id}
	case *syntax.TupleExpr:
		var out []string
		for _, e := range t.Elts {
			out = append(out, targetNames(e)...)
		}
		return out
	case *syntax.ListExpr:
		var out []string
		for _, e := range t.Elts {
			out = append(out, targetNames(e)...)
		}
		return out
	case *syntax.Starred:
		return targetNames(t.Value)
	default:
		return nil
	}
}

func bodyBounds(body []syntax.Stmt) (int, int) {
	if len(body) == 0 {
		return 0, 0
	}
	lo := body[0].Span().Start
	hi := body[len(body)-1].Span().End
	for _, st := range body {
		sp := st.Span()
		if sp.Start < lo {
			lo = sp.Start
		}
		if sp.End > hi {
			hi = sp.End
		}
	}
	return lo, hi
}
