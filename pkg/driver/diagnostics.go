package driver

import (
	"errors"
	"fmt"
	"strings"

	"snail/interpreter-go/pkg/interpreter"
	"snail/interpreter-go/pkg/lexer"
	"snail/interpreter-go/pkg/parser"
)

// DiagnosticPhase names the pipeline stage that produced an error.
type DiagnosticPhase string

const (
	PhaseLex     DiagnosticPhase = "lex"
	PhaseParse   DiagnosticPhase = "parse"
	PhaseRuntime DiagnosticPhase = "runtime"
)

// DiagnosticLocation references a source position for diagnostics.
type DiagnosticLocation struct {
	Path   string
	Line   int
	Column int
}

// Diagnostic is a pipeline error reduced to phase, message and location.
type Diagnostic struct {
	Phase    DiagnosticPhase
	Message  string
	Location DiagnosticLocation
}

// DiagnosticFromError classifies err. The boolean is false for errors that
// did not come from the lexer, parser or interpreter.
func DiagnosticFromError(err error) (Diagnostic, bool) {
	var (
		lexErr     *lexer.LexError
		parseErr   *parser.ParseError
		runtimeErr *interpreter.RuntimeError
	)
	switch {
	case errors.As(err, &lexErr):
		return Diagnostic{
			Phase:    PhaseLex,
			Message:  lexErr.Message,
			Location: DiagnosticLocation{Line: lexErr.Line, Column: lexErr.Column},
		}, true
	case errors.As(err, &parseErr):
		return Diagnostic{
			Phase:    PhaseParse,
			Message:  parseErr.Detail(),
			Location: DiagnosticLocation{Line: parseErr.Location.Line, Column: parseErr.Location.Column},
		}, true
	case errors.As(err, &runtimeErr):
		return Diagnostic{
			Phase:    PhaseRuntime,
			Message:  runtimeErr.Message,
			Location: DiagnosticLocation{Line: runtimeErr.Line, Column: runtimeErr.Column},
		}, true
	default:
		return Diagnostic{}, false
	}
}

// Describe formats err for CLI output, e.g. "parse: line 2, column 1: expected STOP, got end of input".
func Describe(err error) string {
	return DescribeAt("", err)
}

// DescribeAt is Describe with a source path folded into the location.
func DescribeAt(path string, err error) string {
	if err == nil {
		return ""
	}
	diag, ok := DiagnosticFromError(err)
	if !ok {
		return err.Error()
	}
	diag.Location.Path = path
	return DescribeDiagnostic(diag)
}

// DescribeDiagnostic renders a diagnostic as "phase: location: message".
func DescribeDiagnostic(diag Diagnostic) string {
	message := strings.TrimSpace(diag.Message)
	location := formatDiagnosticLocation(diag.Location)
	if location != "" {
		return fmt.Sprintf("%s: %s: %s", diag.Phase, location, message)
	}
	return fmt.Sprintf("%s: %s", diag.Phase, message)
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
