package report_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taradepan/reaper/internal/diag"
	"github.com/taradepan/reaper/internal/report"
)

func TestWriteHumanFormatsOneLinePerDiagnosticPlusSummary(t *testing.T) {
	var buf bytes.Buffer
	diags := []diag.Diagnostic{
		{File: "a.py", Line: 1, Col: 8, Code: "RP001", Message: "imported name \"os\" is never used"},
	}
	require.NoError(t, report.WriteHuman(&buf, diags))

	assert.Equal(t, "a.py:1:8: RP001 imported name \"os\" is never used\nFound 1 issue(s)\n", buf.String())
}

func TestWriteHumanEmptySetStillPrintsSummary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WriteHuman(&buf, nil))

	assert.Equal(t, "Found 0 issue(s)\n", buf.String())
}

func TestWriteJSONProducesCountAndDiagnostics(t *testing.T) {
	var buf bytes.Buffer
	diags := []diag.Diagnostic{
		{File: "a.py", Line: 1, Col: 8, Code: "RP001", Message: "unused"},
	}
	require.NoError(t, report.WriteJSON(&buf, diags))

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, float64(1), got["count"])
	diagsOut := got["diagnostics"].([]interface{})
	require.Len(t, diagsOut, 1)
	first := diagsOut[0].(map[string]interface{})
	assert.Equal(t, "a.py", first["file"])
	assert.Equal(t, "RP001", first["code"])
}
