package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/taradepan/reaper/internal/rules"
)

func TestCheckImportRedefined(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		wantLine []int
	}{
		{
			name:     "import reassigned before any read is flagged",
			src:      "import config\nconfig = load()\nprint(config)\n",
			wantLine: []int{1},
		},
		{
			name:     "import read before reassignment is not flagged",
			src:      "import config\nprint(config)\nconfig = load()\n",
			wantLine: nil,
		},
		{
			name:     "import never reassigned is not flagged",
			src:      "import config\nprint(config)\n",
			wantLine: nil,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := parseFile(t, "mod.py", tc.src)
			got := rules.CheckImportRedefined(f)
			var lines []int
			for _, d := range got {
				lines = append(lines, d.Line)
			}
			assert.Equal(t, tc.wantLine, lines)
		})
	}
}
