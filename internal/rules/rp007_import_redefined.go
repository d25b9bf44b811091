package rules

import (
	"fmt"

	"github.com/taradepan/reaper/internal/diag"
	"github.com/taradepan/reaper/internal/names"
)

// CheckImportRedefined implements RP007: an import is flagged if, before
// any read of its binding, the same name is reassigned by a simple
// assignment in the same scope. It shares the event log the reference pass
// records per scope (spec §4.5) rather than re-deriving write/read order.
func CheckImportRedefined(f *File) []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, b := range f.Table.Bindings {
		if b.Kind != names.BindImport || b.Scope == nil {
			continue
		}
		events := f.Table.Events[b.Scope.ID]
		start := indexOfImportEvent(events, b)
		if start < 0 {
			continue
		}
		for _, ev := range events[start+1:] {
			if ev.Name != b.Name {
				continue
			}
			if ev.Kind == names.EventAssign {
				out = append(out, newDiag(f, "RP007", b.Span, fmt.Sprintf("import %q is reassigned before it is ever read", b.Name)))
			}
			// first read or reassignment of this name settles the question
			// either way; stop scanning the rest of the scope's log.
			break
		}
	}
	return out
}

func indexOfImportEvent(events []names.Event, b *names.Binding) int {
	for i, ev := range events {
		if ev.Kind == names.EventImport && ev.Name == b.Name && ev.Span == b.Span {
			return i
		}
	}
	return -1
}
