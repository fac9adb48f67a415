package runtime

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/btree"

	"snail/interpreter-go/pkg/ast"
)

// ErrUndeclared is returned when a name is read or written before any
// declaration bound it.
var ErrUndeclared = errors.New("undeclared variable")

func undeclared(name string) error {
	return fmt.Errorf("%w '%s'", ErrUndeclared, name)
}

// Environment is the flat namespace of one run: a value and a declared type
// per name. Names are kept in a B-tree so listings come out sorted.
type Environment struct {
	mu     sync.RWMutex
	values map[string]Value
	types  map[string]ast.TypeTag
	names  *btree.BTreeG[string]
}

// NewEnvironment creates an empty environment.
func NewEnvironment() *Environment {
	return &Environment{
		values: make(map[string]Value),
		types:  make(map[string]ast.TypeTag),
		names:  btree.NewOrderedG[string](8),
	}
}

// Declare binds name to the zero value of tag, replacing any earlier binding.
func (e *Environment) Declare(name string, tag ast.TypeTag) error {
	zero, err := ZeroValue(tag)
	if err != nil {
		return err
	}
	e.mu.Lock()
	e.values[name] = zero
	e.types[name] = tag
	e.names.ReplaceOrInsert(name)
	e.mu.Unlock()
	return nil
}

// Assign coerces value to the declared type of name and stores it.
func (e *Environment) Assign(name string, value Value) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	tag, ok := e.types[name]
	if !ok {
		return undeclared(name)
	}
	coerced, err := Coerce(tag, value)
	if err != nil {
		return fmt.Errorf("assign %s (%s): %w", name, TypeName(tag), err)
	}
	e.values[name] = coerced
	return nil
}

// AssignInput stores host-provided text under name, parsed per its type.
func (e *Environment) AssignInput(name string, text string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	tag, ok := e.types[name]
	if !ok {
		return undeclared(name)
	}
	coerced, err := CoerceInput(tag, text)
	if err != nil {
		return fmt.Errorf("input for %s (%s): %w", name, TypeName(tag), err)
	}
	e.values[name] = coerced
	return nil
}

// Lookup returns the current value bound to name.
func (e *Environment) Lookup(name string) (Value, error) {
	e.mu.RLock()
	v, ok := e.values[name]
	e.mu.RUnlock()
	if !ok {
		return nil, undeclared(name)
	}
	return v, nil
}

// TypeOf returns the declared type of name.
func (e *Environment) TypeOf(name string) (ast.TypeTag, bool) {
	e.mu.RLock()
	tag, ok := e.types[name]
	e.mu.RUnlock()
	return tag, ok
}

// Has reports whether name has been declared.
func (e *Environment) Has(name string) bool {
	_, ok := e.TypeOf(name)
	return ok
}

// Len returns the number of declared names.
func (e *Environment) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.names.Len()
}

// Reset clears both the value and type bindings.
func (e *Environment) Reset() {
	e.mu.Lock()
	e.values = make(map[string]Value)
	e.types = make(map[string]ast.TypeTag)
	e.names.Clear(false)
	e.mu.Unlock()
}

// Names returns the declared names in sorted order.
func (e *Environment) Names() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]string, 0, e.names.Len())
	e.names.Ascend(func(name string) bool {
		out = append(out, name)
		return true
	})
	return out
}

// Snapshot returns a copy of the current bindings.
func (e *Environment) Snapshot() map[string]Value {
	e.mu.RLock()
	out := make(map[string]Value, len(e.values))
	for k, v := range e.values {
		out[k] = v
	}
	e.mu.RUnlock()
	return out
}
