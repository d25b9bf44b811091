package rules

import (
	"fmt"

	"github.com/taradepan/reaper/internal/diag"
	"github.com/taradepan/reaper/internal/names"
)

// CheckUnusedLocal implements RP002: a simple assignment to a plain name
// inside a function scope whose name is never read in that scope. Read
// order is not considered: a read anywhere in the scope, including one that
// comes before the assignment, counts as a use. Augmented and
// annotated assignments never produce a Binding (they're a read of the
// existing name, per bindings.go), and walrus targets are exempt outright,
// so only BindAssignment bindings are in scope here.
func CheckUnusedLocal(f *File) []diag.Diagnostic {
	groups := map[int][]*names.Binding{}
	var plain []*names.Binding
	for _, b := range f.Table.Bindings {
		if b.Kind != names.BindAssignment || b.Scope == nil || !b.Scope.Kind.IsFunctionLike() {
			continue
		}
		if b.Scope.EnclosingFunction().ReflectiveCapture {
			continue
		}
		if b.GroupID != 0 {
			groups[b.GroupID] = append(groups[b.GroupID], b)
			continue
		}
		plain = append(plain, b)
	}

	var out []diag.Diagnostic
	for _, b := range plain {
		if underscored(b.Name) {
			continue
		}
		if len(f.Table.UsagesOf(b.Name, b.Scope)) > 0 {
			continue
		}
		out = append(out, newDiag(f, "RP002", b.Span, fmt.Sprintf("local variable %q is assigned but never used", b.Name)))
	}

	for _, members := range groups {
		anyUsed := false
		for _, m := range members {
			if underscored(m.Name) {
				continue
			}
			if len(f.Table.UsagesOf(m.Name, m.Scope)) > 0 {
				anyUsed = true
				break
			}
		}
		if anyUsed {
			continue // all-or-nothing: one live sibling exempts the whole unpacking
		}
		for _, m := range members {
			if underscored(m.Name) {
				continue
			}
			out = append(out, newDiag(f, "RP002", m.Span, fmt.Sprintf("local variable %q is assigned but never used", m.Name)))
		}
	}
	return out
}
