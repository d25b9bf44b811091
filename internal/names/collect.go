package names

import (
	"github.com/taradepan/reaper/internal/scope"
	"github.com/taradepan/reaper/internal/syntax"
)

// Collect builds the scope tree for mod and runs the binding and reference
// passes over it, producing the per-file name table the checkers consume.
func Collect(file string, mod *syntax.Module) *Table {
	tree := scope.Build(mod)
	exports, dynamic := extractExports(mod)
	table := &Table{
		File:           file,
		Tree:           tree,
		Events:         map[string][]Event{},
		Exports:        exports,
		ExportsDynamic: dynamic,
	}
	collectBindings(table, mod, tree)
	collectUsages(table, mod, tree)
	return table
}
