package names

import "github.com/taradepan/reaper/internal/syntax"

// extractExports scans a module's top-level statements for `__all__ = ...`
// and, when the right-hand side is syntactically a literal list/tuple of
// string literals, returns the named symbols. An `__all__ = ...` whose value
// has any other form (a computed expression, a name reference) is left
// unresolved per spec §9: no exports are returned and dynamic is true, so
// callers can tell the difference from "no __all__ at all". Augmented
// `__all__ += [...]` statements are not examined: they add no exports and
// do not set dynamic.
func extractExports(mod *syntax.Module) (exports map[string]bool, dynamic bool) {
	for _, stmt := range mod.Body {
		assign, ok := stmt.(*syntax.Assign)
		if !ok || len(assign.Targets) != 1 {
			continue
		}
		name, ok := assign.Targets[0].(*syntax.Name)
		if !ok || name.Id != "__all__" {
			continue
		}
		members, ok := literalStringElements(assign.Value)
		if !ok {
			return nil, true
		}
		if exports == nil {
			exports = map[string]bool{}
		}
		for _, m := range members {
			exports[m] = true
		}
	}
	return exports, false
}

// literalStringElements returns the members of e when e is a list or tuple
// expression whose every element is a string literal; ok is false for any
// other shape (computed expressions, names, non-string elements).
func literalStringElements(e syntax.Expr) ([]string, bool) {
	var elts []syntax.Expr
	switch v := e.(type) {
	case *syntax.ListExpr:
		elts = v.Elts
	case *syntax.TupleExpr:
		elts = v.Elts
	default:
		return nil, false
	}
	out := make([]string, 0, len(elts))
	for _, elt := range elts {
		lit, ok := elt.(*syntax.Literal)
		if !ok || lit.Kind != syntax.LitString {
			return nil, false
		}
		out = append(out, unquoteStringLiteral(lit.Raw))
	}
	return out, true
}

// unquoteStringLiteral strips the outermost matching quote pair (and a
// leading string-prefix letter, if any) from a raw string literal's source
// text; it does not process escape sequences, which is sufficient for the
// plain identifiers __all__ members are in practice.
func unquoteStringLiteral(raw string) string {
	i := 0
	for i < len(raw) && raw[i] != '\'' && raw[i] != '"' {
		i++
	}
	if i >= len(raw) {
		return raw
	}
	quote := raw[i]
	rest := raw[i:]
	if len(rest) >= 6 && rest[0] == quote && rest[1] == quote && rest[2] == quote {
		return rest[3 : len(rest)-3]
	}
	if len(rest) >= 2 {
		return rest[1 : len(rest)-1]
	}
	return ""
}
