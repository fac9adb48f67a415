package interpreter

import (
	"snail/interpreter-go/pkg/ast"
	"snail/interpreter-go/pkg/runtime"
)

// evaluateBinaryOp computes in float64 and narrows whole results back to
// integers, so 10 / 5 is 2 while 10 / 4 is 2.5.
func (i *Interpreter) evaluateBinaryOp(n *ast.BinaryOp, env *runtime.Environment) (runtime.Value, error) {
	left, err := i.evaluateExpression(n.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluateExpression(n.Right, env)
	if err != nil {
		return nil, err
	}
	l, err := runtime.ToNumber(left)
	if err != nil {
		return nil, runtimeErrorAt(n.Left, err)
	}
	r, err := runtime.ToNumber(right)
	if err != nil {
		return nil, runtimeErrorAt(n.Right, err)
	}

	var result float64
	switch n.Operator {
	case "+":
		result = l + r
	case "-":
		result = l - r
	case "*":
		result = l * r
	case "/":
		if r == 0 && i.division == DivisionError {
			return nil, runtimeErrorAt(n, ErrDivisionByZero)
		}
		result = l / r
	default:
		return nil, runtimeErrorfAt(n, nil, "unknown operator %q", n.Operator)
	}
	return runtime.NormalizeNumber(result), nil
}
