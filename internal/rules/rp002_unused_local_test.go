package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/taradepan/reaper/internal/rules"
)

func TestCheckUnusedLocal(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		wantLine []int
	}{
		{
			name:     "unused local flagged",
			src:      "def f():\n    x = 1\n    return 2\n",
			wantLine: []int{2},
		},
		{
			name:     "used local not flagged",
			src:      "def f():\n    x = 1\n    return x\n",
			wantLine: nil,
		},
		{
			name:     "underscore-prefixed exempt",
			src:      "def f():\n    _unused = 1\n    return 2\n",
			wantLine: nil,
		},
		{
			name:     "module-level assignment not checked (RP002 is function-scoped)",
			src:      "x = 1\n",
			wantLine: nil,
		},
		{
			name:     "locals() capture exempts the whole function",
			src:      "def f():\n    x = 1\n    return locals()\n",
			wantLine: nil,
		},
		{
			name:     "tuple unpacking with one live sibling exempts all",
			src:      "def f():\n    a, b = pair()\n    return a\n",
			wantLine: nil,
		},
		{
			name:     "tuple unpacking with no live sibling flags both",
			src:      "def f():\n    a, b = pair()\n    return 1\n",
			wantLine: []int{2, 2},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := parseFile(t, "mod.py", tc.src)
			got := rules.CheckUnusedLocal(f)
			var lines []int
			for _, d := range got {
				lines = append(lines, d.Line)
			}
			assert.Equal(t, tc.wantLine, lines)
		})
	}
}
