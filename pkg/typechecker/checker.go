package typechecker

import (
	"fmt"

	"snail/interpreter-go/pkg/ast"
)

// DiagnosticSeverity conveys the diagnostic level.
type DiagnosticSeverity string

const (
	// SeverityError marks code that fails whenever it runs.
	SeverityError DiagnosticSeverity = "error"
	// SeverityWarning marks code that may fail or misbehave depending on
	// which branches run.
	SeverityWarning DiagnosticSeverity = "warning"
)

// Diagnostic represents a checking error or warning.
type Diagnostic struct {
	Severity DiagnosticSeverity
	Message  string
	Node     ast.Node
}

// Position is the source position of the offending node.
func (d Diagnostic) Position() ast.Position {
	if d.Node == nil {
		return ast.Position{}
	}
	return d.Node.Position()
}

// Checker walks a program in source order and records diagnostics.
type Checker struct {
	declared    map[string]ast.TypeTag
	everywhere  map[string]struct{}
	reported    map[string]struct{}
	diagnostics []Diagnostic
}

// New returns a checker instance.
func New() *Checker {
	return &Checker{}
}

// Check is shorthand for New().Check(program).
func Check(program *ast.Program) ([]Diagnostic, error) {
	return New().Check(program)
}

// Check returns the diagnostics for program in source order.
func (c *Checker) Check(program *ast.Program) ([]Diagnostic, error) {
	if program == nil {
		return nil, fmt.Errorf("typechecker: program is nil")
	}
	c.declared = make(map[string]ast.TypeTag)
	c.everywhere = make(map[string]struct{})
	c.reported = make(map[string]struct{})
	c.diagnostics = nil
	for _, name := range ast.DeclaredNames(program) {
		c.everywhere[name] = struct{}{}
	}
	c.checkStatements(program.Statements)
	return c.diagnostics, nil
}

// HasErrors reports whether any diagnostic is an error.
func HasErrors(diags []Diagnostic) bool {
	for _, diag := range diags {
		if diag.Severity == SeverityError {
			return true
		}
	}
	return false
}

func (c *Checker) addError(node ast.Node, format string, args ...any) {
	c.diagnostics = append(c.diagnostics, Diagnostic{
		Severity: SeverityError,
		Message:  fmt.Sprintf(format, args...),
		Node:     node,
	})
}

func (c *Checker) addWarning(node ast.Node, format string, args ...any) {
	c.diagnostics = append(c.diagnostics, Diagnostic{
		Severity: SeverityWarning,
		Message:  fmt.Sprintf(format, args...),
		Node:     node,
	})
}

// lookup returns the type of name as declared so far. Each missing name is
// reported once, at its first use.
func (c *Checker) lookup(name string, node ast.Node) (ast.TypeTag, bool) {
	if tag, ok := c.declared[name]; ok {
		return tag, true
	}
	if _, seen := c.reported[name]; seen {
		return "", false
	}
	c.reported[name] = struct{}{}
	if _, later := c.everywhere[name]; later {
		c.addWarning(node, "'%s' is used before its declaration", name)
	} else {
		c.addWarning(node, "'%s' is never declared", name)
	}
	return "", false
}
