package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/taradepan/reaper/internal/rules"
)

func TestCheckUnreachable(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		wantLine []int
	}{
		{
			name:     "statement after return is unreachable",
			src:      "def f():\n    return 1\n    x = 2\n",
			wantLine: []int{3},
		},
		{
			name:     "match arms are analyzed independently",
			src:      "def f(x):\n    match x:\n        case 1: return 1\n        case _: return 0\n",
			wantLine: nil,
		},
		{
			name:     "if without else does not make the following statement unreachable",
			src:      "def f(x):\n    if x:\n        return 1\n    y = 2\n    return y\n",
			wantLine: nil,
		},
		{
			name:     "if/else where both arms terminate marks the tail unreachable",
			src:      "def f(x):\n    if x:\n        return 1\n    else:\n        return 0\n    y = 2\n",
			wantLine: []int{6},
		},
		{
			name:     "loop body is its own block independent of the statement after the loop",
			src:      "def f(items):\n    for i in items:\n        return i\n        y = 1\n    z = 2\n",
			wantLine: []int{4},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := parseFile(t, "mod.py", tc.src)
			got := rules.CheckUnreachable(f)
			var lines []int
			for _, d := range got {
				lines = append(lines, d.Line)
			}
			assert.Equal(t, tc.wantLine, lines)
		})
	}
}
