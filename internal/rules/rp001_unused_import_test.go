package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/taradepan/reaper/internal/rules"
)

func TestCheckUnusedImport(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		wantLine []int
	}{
		{
			name:     "unused import flagged, used import is not",
			src:      "import os\nimport json\nprint(json.loads('{}'))\n",
			wantLine: []int{1},
		},
		{
			name:     "star import never flagged",
			src:      "from os import *\n",
			wantLine: nil,
		},
		{
			name:     "re-export via import-as-itself is used",
			src:      "from pkg import helper as helper\n",
			wantLine: nil,
		},
		{
			name:     "future import exempt",
			src:      "from __future__ import annotations\n",
			wantLine: nil,
		},
		{
			name:     "TYPE_CHECKING-guarded import exempt",
			src:      "from typing import TYPE_CHECKING\nif TYPE_CHECKING:\n    import heavy\n",
			wantLine: nil,
		},
		{
			name:     "exported import via __all__ exempt",
			src:      "import helper\n__all__ = ['helper']\n",
			wantLine: nil,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := parseFile(t, "mod.py", tc.src)
			got := rules.CheckUnusedImport(f)
			var lines []int
			for _, d := range got {
				lines = append(lines, d.Line)
			}
			assert.Equal(t, tc.wantLine, lines)
		})
	}
}
