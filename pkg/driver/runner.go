package driver

import (
	"sync"

	"snail/interpreter-go/pkg/ast"
	"snail/interpreter-go/pkg/interpreter"
	"snail/interpreter-go/pkg/lexer"
	"snail/interpreter-go/pkg/parser"
	"snail/interpreter-go/pkg/runtime"
)

// Runner is the host entry point: it lexes, parses and executes a source
// text and remembers the outcome. Concurrent Run calls are serialized.
type Runner struct {
	mu          sync.Mutex
	interp      *interpreter.Interpreter
	err         error
	errorOutput func(string)
}

// NewRunner builds a runner whose programs talk to io.
func NewRunner(io interpreter.IO, opts ...interpreter.Option) *Runner {
	return &Runner{interp: interpreter.New(io, opts...)}
}

// SetErrorOutput installs a callback that receives "Error: <message>" when a
// run fails.
func (r *Runner) SetErrorOutput(fn func(string)) {
	r.mu.Lock()
	r.errorOutput = fn
	r.mu.Unlock()
}

// Run executes source from a clean environment. It reports false on the
// first lex, parse or runtime error; LastError then holds its message.
func (r *Runner) Run(source string) bool {
	r.mu.Lock()
	r.err = nil
	r.interp.Reset()
	program, err := Check(source)
	if err == nil {
		err = r.interp.Execute(program)
	}
	r.err = err
	report := r.errorOutput
	r.mu.Unlock()

	if err != nil {
		if report != nil {
			report("Error: " + err.Error())
		}
		return false
	}
	return true
}

// LastError is the message of the most recent failed run, or "".
func (r *Runner) LastError() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err == nil {
		return ""
	}
	return r.err.Error()
}

// Err is the typed error of the most recent failed run.
func (r *Runner) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// Variables returns the printable value of every variable bound by the most
// recent run.
func (r *Runner) Variables() map[string]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	snapshot := r.interp.Environment().Snapshot()
	out := make(map[string]string, len(snapshot))
	for name, value := range snapshot {
		out[name] = runtime.FormatValue(value)
	}
	return out
}

// VariableNames lists the variables of the most recent run in sorted order.
func (r *Runner) VariableNames() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.interp.Environment().Names()
}

// Check lexes and parses source without executing it.
func Check(source string) (*ast.Program, error) {
	tokens, err := lexer.Tokenize(source)
	if err != nil {
		return nil, err
	}
	return parser.Parse(tokens)
}
