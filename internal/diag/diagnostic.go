// Package diag holds the Diagnostic type and the sink that deduplicates,
// suppresses, and sorts findings before they reach the reporting layer.
package diag

import "fmt"

// Diagnostic is one finding: a rule fired at a specific location in a file.
type Diagnostic struct {
	File    string
	Line    int
	Col     int
	Code    string
	Message string
}

// String renders the one-line human format: "<file>:<line>:<col>: <CODE> <message>".
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s:%d:%d: %s %s", d.File, d.Line, d.Col, d.Code, d.Message)
}
