package diag_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/taradepan/reaper/internal/diag"
)

func TestSinkDeduplicatesEqualDiagnostics(t *testing.T) {
	sink := diag.NewSink()
	d := diag.Diagnostic{File: "a.py", Line: 1, Col: 8, Code: "RP001", Message: "imported name \"os\" is never used"}
	sink.Add(d, nil)
	sink.Add(d, nil)

	assert.Equal(t, 1, sink.Len())
}

func TestSinkSortsByFileLineColCode(t *testing.T) {
	sink := diag.NewSink()
	sink.Add(diag.Diagnostic{File: "b.py", Line: 1, Col: 1, Code: "RP001", Message: "x"}, nil)
	sink.Add(diag.Diagnostic{File: "a.py", Line: 5, Col: 1, Code: "RP002", Message: "y"}, nil)
	sink.Add(diag.Diagnostic{File: "a.py", Line: 2, Col: 3, Code: "RP001", Message: "z"}, nil)
	sink.Add(diag.Diagnostic{File: "a.py", Line: 2, Col: 1, Code: "RP005", Message: "w"}, nil)

	got := sink.Diagnostics()

	want := []string{
		"a.py:2:1: RP005 w",
		"a.py:2:3: RP001 z",
		"a.py:5:1: RP002 y",
		"b.py:1:1: RP001 x",
	}
	var renders []string
	for _, d := range got {
		renders = append(renders, d.String())
	}
	assert.Equal(t, want, renders)
}

func TestSinkAppliesSuppressions(t *testing.T) {
	buf, toks := lexSource(t, "a.py", "x = 1  # noqa: RP002\ny = 2  # noqa\nz = 3\n")
	sup := diag.BuildSuppressions(buf, toks)

	sink := diag.NewSink()
	sink.Add(diag.Diagnostic{File: "a.py", Line: 1, Col: 1, Code: "RP002", Message: "unused x"}, sup)
	sink.Add(diag.Diagnostic{File: "a.py", Line: 1, Col: 1, Code: "RP005", Message: "other rule on line 1"}, sup)
	sink.Add(diag.Diagnostic{File: "a.py", Line: 2, Col: 1, Code: "RP002", Message: "unused y"}, sup)
	sink.Add(diag.Diagnostic{File: "a.py", Line: 3, Col: 1, Code: "RP002", Message: "unused z"}, sup)

	got := sink.Diagnostics()
	assert.Len(t, got, 2)
	assert.Equal(t, "other rule on line 1", got[0].Message)
	assert.Equal(t, "unused z", got[1].Message)
}
