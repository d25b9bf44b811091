package rules

import (
	"github.com/taradepan/reaper/internal/diag"
	"github.com/taradepan/reaper/internal/syntax"
)

// CheckDeadBranch implements RP006: an if/elif whose condition is a
// syntactic literal that is statically falsy, or the conventional
// TYPE_CHECKING sentinel (dead at runtime though RP001 exempts its
// imports). Truthy constants are left alone since they're often
// intentional assertion-style guards (spec §4.4).
func CheckDeadBranch(f *File) []diag.Diagnostic {
	c := &deadBranchChecker{f: f}
	c.walkStmts(f.Mod.Body)
	return c.out
}

type deadBranchChecker struct {
	f   *File
	out []diag.Diagnostic
}

func (c *deadBranchChecker) walkStmts(stmts []syntax.Stmt) {
	for _, st := range stmts {
		c.walkStmt(st)
	}
}

func (c *deadBranchChecker) walkStmt(st syntax.Stmt) {
	switch n := st.(type) {
	case *syntax.If:
		if isTypeCheckingCond(n.Cond) {
			c.out = append(c.out, newDiag(c.f, "RP006", n.Sp, "TYPE_CHECKING block is never executed at runtime"))
		} else if isStaticallyFalsy(n.Cond) {
			c.out = append(c.out, newDiag(c.f, "RP006", n.Sp, "condition is statically falsy; branch is dead code"))
		}
		c.walkStmts(n.Body)
		c.walkStmts(n.Orelse)
	case *syntax.FunctionDef:
		c.walkStmts(n.Body)
	case *syntax.ClassDef:
		c.walkStmts(n.Body)
	case *syntax.For:
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

// isTypeCheckingCond mirrors names.isTypeCheckingGuard's recognition of the
// conventional sentinel, duplicated here since that helper is unexported.
func isTypeCheckingCond(cond syntax.Expr) bool {
	switch c := cond.(type) {
	case *syntax.Name:
		return c.Id == "TYPE_CHECKING"
	case *syntax.Attribute:
		return c.Attr == "TYPE_CHECKING"
	}
	return false
}

// isStaticallyFalsy reports whether cond is a syntactic literal (or empty
// collection display) that always evaluates falsy.
func isStaticallyFalsy(cond syntax.Expr) bool {
	switch c := cond.(type) {
	case *syntax.Literal:
		return c.IsFalsy()
	case *syntax.ListExpr:
		return len(c.Elts) == 0
	case *syntax.SetExpr:
		return len(c.Elts) == 0
	case *syntax.TupleExpr:
		return len(c.Elts) == 0
	case *syntax.DictExpr:
		return len(c.Keys) == 0
	}
	return false
}
