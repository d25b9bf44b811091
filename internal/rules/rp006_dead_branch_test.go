package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/taradepan/reaper/internal/rules"
)

func TestCheckDeadBranch(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		wantLine []int
	}{
		{
			name:     "statically falsy condition flagged",
			src:      "if False:\n    x = 1\n",
			wantLine: []int{1},
		},
		{
			name:     "TYPE_CHECKING guard flagged under RP006",
			src:      "from typing import TYPE_CHECKING\nif TYPE_CHECKING:\n    import heavy\n",
			wantLine: []int{2},
		},
		{
			name:     "truthy constant is not reported",
			src:      "if True:\n    x = 1\n",
			wantLine: nil,
		},
		{
			name:     "empty list literal is falsy",
			src:      "if []:\n    x = 1\n",
			wantLine: []int{1},
		},
		{
			name:     "non-literal condition is not reported",
			src:      "def f(x):\n    if x:\n        return 1\n",
			wantLine: nil,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := parseFile(t, "mod.py", tc.src)
			got := rules.CheckDeadBranch(f)
			var lines []int
			for _, d := range got {
				lines = append(lines, d.Line)
			}
			assert.Equal(t, tc.wantLine, lines)
		})
	}
}
