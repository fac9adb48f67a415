package interpreter

import (
	"fmt"
	"strings"

	"snail/interpreter-go/pkg/ast"
	"snail/interpreter-go/pkg/runtime"
)

// DivisionMode selects what happens when a division has a zero divisor.
type DivisionMode int

const (
	// DivisionIEEE yields Infinity, -Infinity or NaN.
	DivisionIEEE DivisionMode = iota
	// DivisionError aborts the run with a RuntimeError.
	DivisionError
)

func (m DivisionMode) String() string {
	switch m {
	case DivisionIEEE:
		return "ieee"
	case DivisionError:
		return "error"
	default:
		return fmt.Sprintf("DivisionMode(%d)", int(m))
	}
}

// ParseDivisionMode accepts "ieee" or "error" (case-insensitive). An empty
// string selects DivisionIEEE.
func ParseDivisionMode(text string) (DivisionMode, error) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "", "ieee":
		return DivisionIEEE, nil
	case "error":
		return DivisionError, nil
	default:
		return DivisionIEEE, fmt.Errorf("unknown division mode %q (expected ieee or error)", text)
	}
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithDivisionMode sets the division-by-zero behaviour.
func WithDivisionMode(mode DivisionMode) Option {
	return func(i *Interpreter) {
		i.division = mode
	}
}

// Interpreter evaluates programs against one flat environment. It is not
// safe for concurrent use; hosts serialize runs.
type Interpreter struct {
	io       IO
	division DivisionMode
	env      *runtime.Environment
}

// New returns an interpreter wired to io. A nil io discards output and fails
// every input request.
func New(io IO, opts ...Option) *Interpreter {
	if io == nil {
		io = DiscardIO{}
	}
	i := &Interpreter{io: io, env: runtime.NewEnvironment()}
	for _, opt := range opts {
		if opt != nil {
			opt(i)
		}
	}
	return i
}

// Reset installs a fresh, empty environment.
func (i *Interpreter) Reset() {
	i.env = runtime.NewEnvironment()
}

// Environment exposes the bindings of the current or most recent run.
func (i *Interpreter) Environment() *runtime.Environment {
	return i.env
}

// DivisionMode reports the configured division-by-zero behaviour.
func (i *Interpreter) DivisionMode() DivisionMode {
	return i.division
}

// Execute runs the program's statements in order, stopping at the first
// error. Bindings accumulate in the current environment; call Reset first for
// a clean run.
func (i *Interpreter) Execute(program *ast.Program) error {
	if program == nil {
		return &RuntimeError{Message: "no program to execute"}
	}
	return i.execBlock(program.Statements, i.env)
}
