package interpreter

import (
	"errors"
	"fmt"

	"snail/interpreter-go/pkg/ast"
)

// ErrNoInput is returned by IO implementations that have no answer to give.
var ErrNoInput = errors.New("no input available")

// ErrDivisionByZero is wrapped by the RuntimeError raised under DivisionError.
var ErrDivisionByZero = errors.New("division by zero")

// RuntimeError aborts a run. Err holds the underlying cause, such as a
// coercion failure or the host's input error.
type RuntimeError struct {
	Message string
	Line    int
	Column  int
	Err     error
}

func (e *RuntimeError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("runtime error at line %d: %s", e.Line, e.Message)
	}
	return fmt.Sprintf("runtime error: %s", e.Message)
}

func (e *RuntimeError) Unwrap() error {
	return e.Err
}

func runtimeErrorAt(node ast.Node, cause error) *RuntimeError {
	return runtimeErrorfAt(node, cause, "%s", cause.Error())
}

func runtimeErrorfAt(node ast.Node, cause error, format string, args ...any) *RuntimeError {
	err := &RuntimeError{Message: fmt.Sprintf(format, args...), Err: cause}
	if node != nil {
		pos := node.Position()
		err.Line = pos.Line
		err.Column = pos.Column
	}
	return err
}
