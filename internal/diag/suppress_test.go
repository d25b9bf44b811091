package diag_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/taradepan/reaper/internal/diag"
)

func TestBuildSuppressions(t *testing.T) {
	tests := []struct {
		name       string
		src        string
		line       int
		code       string
		suppressed bool
	}{
		{
			name:       "bare noqa suppresses every code on its line",
			src:        "import os  # noqa\n",
			line:       1,
			code:       "RP001",
			suppressed: true,
		},
		{
			name:       "noqa with matching code suppresses that code",
			src:        "import os  # noqa: RP001\n",
			line:       1,
			code:       "RP001",
			suppressed: true,
		},
		{
			name:       "noqa with non-matching code does not suppress",
			src:        "import os  # noqa: RP002\n",
			line:       1,
			code:       "RP001",
			suppressed: false,
		},
		{
			name:       "noqa with multiple codes suppresses any listed",
			src:        "import os  # noqa: RP002, RP001\n",
			line:       1,
			code:       "RP001",
			suppressed: true,
		},
		{
			name:       "no directive does not suppress",
			src:        "import os\n",
			line:       1,
			code:       "RP001",
			suppressed: false,
		},
		{
			name:       "directive on a different line has no effect here",
			src:        "import os  # noqa\nimport json\n",
			line:       2,
			code:       "RP001",
			suppressed: false,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			buf, toks := lexSource(t, "a.py", tc.src)
			sup := diag.BuildSuppressions(buf, toks)
			assert.Equal(t, tc.suppressed, sup.Suppresses(tc.line, tc.code))
		})
	}
}

func TestSuppressionsNilReceiverNeverSuppresses(t *testing.T) {
	var sup *diag.Suppressions
	assert.False(t, sup.Suppresses(1, "RP001"))
}
