package rules_test

import (
	"testing"

	"github.com/taradepan/reaper/internal/diag"
	"github.com/taradepan/reaper/internal/names"
	"github.com/taradepan/reaper/internal/rules"
	"github.com/taradepan/reaper/internal/syntax"
	"github.com/taradepan/reaper/internal/token"
)

func parseFile(t *testing.T, path, src string) *rules.File {
	t.Helper()
	buf := token.NewBuffer(path, []byte(src))
	mod, _ := syntax.Parse(path, []byte(src))
	table := names.Collect(path, mod)
	return &rules.File{Buf: buf, Mod: mod, Table: table}
}

func diagMessages(diags []diag.Diagnostic) []string {
	msgs := make([]string, len(diags))
	for i, d := range diags {
		msgs[i] = d.Message
	}
	return msgs
}
