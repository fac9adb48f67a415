package interpreter

import (
	"fmt"

	"snail/interpreter-go/pkg/ast"
	"snail/interpreter-go/pkg/runtime"
)

func (i *Interpreter) execBlock(statements []ast.Statement, env *runtime.Environment) error {
	for _, stmt := range statements {
		if err := i.execStatement(stmt, env); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interpreter) execStatement(node ast.Statement, env *runtime.Environment) error {
	switch n := node.(type) {
	case *ast.VarDeclaration:
		if err := env.Declare(n.Name, n.DeclaredType); err != nil {
			return runtimeErrorAt(n, err)
		}
		return nil
	case *ast.Assignment:
		return i.execAssignment(n, env)
	case *ast.InputStatement:
		return i.execInput(n, env)
	case *ast.PrintStatement:
		value, err := i.evaluateExpression(n.Expression, env)
		if err != nil {
			return err
		}
		i.io.Print(runtime.FormatValue(value))
		return nil
	case *ast.IfStatement:
		return i.execIf(n, env)
	case nil:
		return &RuntimeError{Message: "nil statement"}
	default:
		return runtimeErrorfAt(node, nil, "unsupported statement %T", node)
	}
}

func (i *Interpreter) execAssignment(n *ast.Assignment, env *runtime.Environment) error {
	if !env.Has(n.Name) {
		return runtimeErrorAt(n, fmt.Errorf("%w '%s'", runtime.ErrUndeclared, n.Name))
	}
	value, err := i.evaluateExpression(n.Expression, env)
	if err != nil {
		return err
	}
	if err := env.Assign(n.Name, value); err != nil {
		return runtimeErrorAt(n, err)
	}
	return nil
}

func (i *Interpreter) execInput(n *ast.InputStatement, env *runtime.Environment) error {
	if !env.Has(n.TargetName) {
		return runtimeErrorAt(n, fmt.Errorf("%w '%s'", runtime.ErrUndeclared, n.TargetName))
	}
	text, err := i.io.Input(n.Prompt)
	if err != nil {
		return runtimeErrorfAt(n, err, "input for '%s' failed: %v", n.TargetName, err)
	}
	if err := env.AssignInput(n.TargetName, text); err != nil {
		return runtimeErrorAt(n, err)
	}
	return nil
}

func (i *Interpreter) execIf(n *ast.IfStatement, env *runtime.Environment) error {
	for _, branch := range n.Branches {
		ok, err := i.evaluateCondition(branch.Condition, env)
		if err != nil {
			return err
		}
		if ok {
			return i.execBlock(branch.Body, env)
		}
	}
	if n.Else != nil {
		return i.execBlock(n.Else, env)
	}
	return nil
}
