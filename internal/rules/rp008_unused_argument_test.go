package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/taradepan/reaper/internal/rules"
)

func TestCheckUnusedArgument(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		wantLine []int
	}{
		{
			name:     "unused parameter flagged",
			src:      "def f(x, timeout):\n    return x\n",
			wantLine: []int{1},
		},
		{
			name:     "self is never flagged",
			src:      "class C:\n    def m(self, x):\n        return x\n",
			wantLine: nil,
		},
		{
			name:     "underscore-prefixed exempt",
			src:      "def f(_unused):\n    return 1\n",
			wantLine: nil,
		},
		{
			name:     "varargs/kwargs exempt",
			src:      "def f(*args, **kwargs):\n    return 1\n",
			wantLine: nil,
		},
		{
			name:     "stub body with pass is exempt",
			src:      "def f(x):\n    pass\n",
			wantLine: nil,
		},
		{
			name:     "NotImplementedError stub is exempt",
			src:      "def f(x):\n    raise NotImplementedError\n",
			wantLine: nil,
		},
		{
			name:     "abstractmethod decorator is exempt",
			src:      "class C:\n    @abstractmethod\n    def m(self, x):\n        return 1\n",
			wantLine: nil,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := parseFile(t, "mod.py", tc.src)
			got := rules.CheckUnusedArgument(f)
			var lines []int
			for _, d := range got {
				lines = append(lines, d.Line)
			}
			assert.Equal(t, tc.wantLine, lines)
		})
	}
}
