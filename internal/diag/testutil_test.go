package diag_test

import (
	"testing"

	"github.com/taradepan/reaper/internal/token"
)

func lexSource(t *testing.T, path, src string) (*token.Buffer, []token.Token) {
	t.Helper()
	buf := token.NewBuffer(path, []byte(src))
	toks, _ := token.NewLexer(buf).Tokenize()
	return buf, toks
}
