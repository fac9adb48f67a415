package interpreter

import (
	"snail/interpreter-go/pkg/ast"
	"snail/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateExpression(node ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.NumberLiteral:
		if n.IsFloat {
			return runtime.FloatValue{Val: n.Float}, nil
		}
		return runtime.IntegerValue{Val: n.Int}, nil
	case *ast.StringLiteral:
		return runtime.StringValue{Val: n.Value}, nil
	case *ast.Identifier:
		value, err := env.Lookup(n.Name)
		if err != nil {
			return nil, runtimeErrorAt(n, err)
		}
		return value, nil
	case *ast.BinaryOp:
		return i.evaluateBinaryOp(n, env)
	case nil:
		return nil, &RuntimeError{Message: "nil expression"}
	default:
		return nil, runtimeErrorfAt(node, nil, "unsupported expression %T", node)
	}
}
