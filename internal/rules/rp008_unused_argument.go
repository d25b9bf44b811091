package rules

import (
	"fmt"
	"strings"

	"github.com/taradepan/reaper/internal/diag"
	"github.com/taradepan/reaper/internal/syntax"
)

// CheckUnusedArgument implements RP008: a parameter never read in its
// function's body. self/cls, underscored names, varargs/kwargs, stub
// bodies, and abstractmethod-decorated functions are exempt (spec §4.4).
func CheckUnusedArgument(f *File) []diag.Diagnostic {
	c := &argChecker{f: f}
	c.walkStmts(f.Mod.Body)
	return c.out
}

type argChecker struct {
	f   *File
	out []diag.Diagnostic
}

func (c *argChecker) walkStmts(stmts []syntax.Stmt) {
	for _, st := range stmts {
		c.walkStmt(st)
	}
}

func (c *argChecker) walkStmt(st syntax.Stmt) {
	switch n := st.(type) {
	case *syntax.FunctionDef:
		c.check(n)
		c.walkStmts(n.Body)
	case *syntax.ClassDef:
		c.walkStmts(n.Body)
	case *syntax.If:
		c.walkStmts(n.Body)
		c.walkStmts(n.Orelse)
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

func (c *argChecker) check(fn *syntax.FunctionDef) {
	if isStubBody(fn.Body) || hasAbstractDecorator(fn.Decorators) {
		return
	}
	scope := c.f.Table.Tree.IntroducedScope(fn)
	usages := c.f.Table.UsagesIn(scope)
	used := map[string]bool{}
	for _, u := range usages {
		used[u.Name] = true
	}
	for i, p := range fn.Params {
		if p.Kind == syntax.ParamVararg || p.Kind == syntax.ParamKwarg {
			continue
		}
		if underscored(p.Name) {
			continue
		}
		if fn.InClass && i == 0 && p.Kind == syntax.ParamPositional {
			continue
		}
		if used[p.Name] {
			continue
		}
		c.out = append(c.out, newDiag(c.f, "RP008", p.Sp, fmt.Sprintf("parameter %q is never used", p.Name)))
	}
}

// isStubBody reports whether body is exactly `pass`, `...`, or a single
// `raise NotImplementedError` — the conventional placeholder forms.
func isStubBody(body []syntax.Stmt) bool {
	if len(body) != 1 {
		return false
	}
	switch st := body[0].(type) {
	case *syntax.Pass:
		return true
	case *syntax.ExprStmt:
		lit, ok := st.Value.(*syntax.Literal)
		return ok && lit.Raw == "..."
	case *syntax.Raise:
		return isNotImplementedError(st.Exc)
	}
	return false
}

func isNotImplementedError(e syntax.Expr) bool {
	switch n := e.(type) {
	case *syntax.Name:
		return n.Id == "NotImplementedError"
	case *syntax.Call:
		return isNotImplementedError(n.Func)
	}
	return false
}

func hasAbstractDecorator(decorators []*syntax.Decorator) bool {
	for _, d := range decorators {
		name := d.Name()
		if name == "abstractmethod" || strings.HasSuffix(name, ".abstractmethod") {
			return true
		}
	}
	return false
}
