// Package report renders a diagnostic set as the human-readable line
// format or the structured JSON document (spec §6 output formats).
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/taradepan/reaper/internal/diag"
)

// jsonDocument is the --json output shape.
type jsonDocument struct {
	Count       int              `json:"count"`
	Diagnostics []jsonDiagnostic `json:"diagnostics"`
}

type jsonDiagnostic struct {
	File    string `json:"file"`
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WriteHuman writes one line per diagnostic, `<file>:<line>:<col>: <CODE>
// <message>`, followed by a summary line.
func WriteHuman(w io.Writer, diags []diag.Diagnostic) error {
	for _, d := range diags {
		if _, err := fmt.Fprintln(w, d.String()); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "Found %d issue(s)\n", len(diags))
	return err
}

// WriteJSON writes the {count, diagnostics} structured document.
func WriteJSON(w io.Writer, diags []diag.Diagnostic) error {
	doc := jsonDocument{Count: len(diags)}
	for _, d := range diags {
		doc.Diagnostics = append(doc.Diagnostics, jsonDiagnostic{
			File: d.File, Line: d.Line, Col: d.Col, Code: d.Code, Message: d.Message,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
