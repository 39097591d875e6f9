package driver

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"lexenv/interpreter-go/pkg/parser"
	"lexenv/interpreter-go/pkg/runtime"
)

// DiagnosticLocation references a source position for diagnostics.
type DiagnosticLocation struct {
	Path   string
	Line   int
	Column int
}

// Diagnostic is a user-facing report of a failed load or run.
type Diagnostic struct {
	Message  string
	Location DiagnosticLocation
}

// DiagnosticFor extracts the location of parse errors; thrown values are
// reported as the exception they carry.
func DiagnosticFor(path string, err error) Diagnostic {
	diag := Diagnostic{Message: err.Error(), Location: DiagnosticLocation{Path: path}}
	var parseErr *parser.ParseError
	if errors.As(err, &parseErr) {
		diag.Message = parseErr.Message
		diag.Location.Line = parseErr.Location.Line
		diag.Location.Column = parseErr.Location.Column
		return diag
	}
	if tc, ok := runtime.AsThrow(err); ok {
		diag.Message = tc.Error()
	}
	return diag
}

// DescribeDiagnostic formats a diagnostic for CLI output.
func DescribeDiagnostic(diag Diagnostic) string {
	message := strings.TrimSpace(diag.Message)
	location := formatDiagnosticLocation(diag.Location)
	if location != "" {
		return fmt.Sprintf("%s: %s", location, message)
	}
	return message
}

func formatDiagnosticLocation(loc DiagnosticLocation) string {
	path := strings.TrimSpace(loc.Path)
	line := loc.Line
	column := loc.Column
	switch {
	case path != "" && line > 0 && column > 0:
		return fmt.Sprintf("%s:%d:%d", path, line, column)
	case path != "" && line > 0:
		return fmt.Sprintf("%s:%d", path, line)
	case path != "":
		return path
	case line > 0 && column > 0:
		return fmt.Sprintf("line %d, column %d", line, column)
	case line > 0:
		return fmt.Sprintf("line %d", line)
	default:
		return ""
	}
}
