package rules

import (
	"github.com/taradepan/reaper/internal/diag"
	"github.com/taradepan/reaper/internal/syntax"
)

// CheckUnreachable implements RP005. Every block is analyzed independently:
// once a statement unconditionally terminates the block, every later
// statement in that same block is unreachable. Compound statements only
// propagate termination to their own following sibling when every arm
// terminates and the compound is exhaustive (spec §4.4).
func CheckUnreachable(f *File) []diag.Diagnostic {
	c := &unreachableChecker{f: f}
	c.block(f.Mod.Body)
	return c.out
}

type unreachableChecker struct {
	f   *File
	out []diag.Diagnostic
}

// block analyzes one statement list in isolation and reports whether it
// unconditionally terminates. Statements after the first terminator are
// flagged and skipped (not recursed into) since they are themselves dead.
func (c *unreachableChecker) block(stmts []syntax.Stmt) bool {
	terminated := false
	for _, st := range stmts {
		if terminated {
			c.out = append(c.out, newDiag(c.f, "RP005", st.Span(), "unreachable code"))
			continue
		}
		if c.terminates(st) {
			terminated = true
		}
	}
	return terminated
}

func (c *unreachableChecker) terminates(st syntax.Stmt) bool {
	switch n := st.(type) {
	case *syntax.Return, *syntax.Raise, *syntax.Break, *syntax.Continue:
		return true
	case *syntax.If:
		bodyTerm := c.block(n.Body)
		orelseTerm := c.block(n.Orelse)
		return n.HasElse() && bodyTerm && orelseTerm
	case *syntax.For:
		c.block(n.Body)
		c.block(n.Orelse)
		return false
	case *syntax.While:
		c.block(n.Body)
		c.block(n.Orelse)
		return false
	case *syntax.With:
		return c.block(n.Body)
	case *syntax.Try:
		bodyTerm := c.block(n.Body)
		handlersTerm := true
		for _, h := range n.Handlers {
			if !c.block(h.Body) {
				handlersTerm = false
			}
		}
		orelseTerm := bodyTerm
		if len(n.Orelse) > 0 {
			orelseTerm = c.block(n.Orelse)
		}
		finallyTerm := c.block(n.Finally)
		return finallyTerm || (bodyTerm && handlersTerm && orelseTerm)
	case *syntax.Match:
		allTerm := true
		for _, mc := range n.Cases {
			if !c.block(mc.Body) {
				allTerm = false
			}
		}
		return n.HasWildcard() && allTerm
	case *syntax.FunctionDef:
		c.block(n.Body)
		return false
	case *syntax.ClassDef:
		c.block(n.Body)
		return false
	default:
		return false
	}
}
