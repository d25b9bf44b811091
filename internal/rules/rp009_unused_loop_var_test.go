package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/taradepan/reaper/internal/rules"
)

func TestCheckUnusedLoopVar(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		wantLine []int
	}{
		{
			name:     "unused loop variable flagged",
			src:      "def f(items):\n    for i in items:\n        print('x')\n",
			wantLine: []int{2},
		},
		{
			name:     "used loop variable not flagged",
			src:      "def f(items):\n    for i in items:\n        print(i)\n",
			wantLine: nil,
		},
		{
			name:     "underscore target never flagged",
			src:      "def f(items):\n    for _ in items:\n        print('x')\n",
			wantLine: nil,
		},
		{
			name:     "tuple target flagged only when every component is unused",
			src:      "def f(pairs):\n    for k, v in pairs:\n        print(k)\n",
			wantLine: nil,
		},
		{
			name:     "tuple target flagged when no component is used",
			src:      "def f(pairs):\n    for k, v in pairs:\n        print('x')\n",
			wantLine: []int{2},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := parseFile(t, "mod.py", tc.src)
			got := rules.CheckUnusedLoopVar(f)
			var lines []int
			for _, d := range got {
				lines = append(lines, d.Line)
			}
			assert.Equal(t, tc.wantLine, lines)
		})
	}
}
