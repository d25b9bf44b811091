package rules

import (
	"fmt"

	"github.com/taradepan/reaper/internal/diag"
	"github.com/taradepan/reaper/internal/names"
)

// CheckUnusedImport implements RP001: an imported alias that is never read
// and not exported, unless it is guarded by a TYPE_CHECKING block, pulled
// from the forward-compatibility module, or a `from m import x as x`
// re-export (spec §4.4).
func CheckUnusedImport(f *File) []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, b := range f.Table.Bindings {
		if b.Kind != names.BindImport {
			continue
		}
		if b.TypeChecking || b.FromFuture || b.Reexport {
			continue
		}
		if f.Table.IsExported(b.Name) {
			continue
		}
		if len(f.Table.UsagesOf(b.Name, b.Scope)) > 0 {
			continue
		}
		out = append(out, newDiag(f, "RP001", b.Span, fmt.Sprintf("imported name %q is never used", b.Name)))
	}
	return out
}
