package interpreter

import (
	"math"
	"strings"

	"snail/interpreter-go/pkg/ast"
	"snail/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateCondition(n *ast.Condition, env *runtime.Environment) (bool, error) {
	if n == nil {
		return false, &RuntimeError{Message: "nil condition"}
	}
	left, err := i.evaluateExpression(n.Left, env)
	if err != nil {
		return false, err
	}
	right, err := i.evaluateExpression(n.Right, env)
	if err != nil {
		return false, err
	}
	result, ok := compareValues(n.Operator, left, right)
	if !ok {
		return false, runtimeErrorfAt(n, nil, "unknown relational operator %q", n.Operator)
	}
	return result, nil
}

// compareValues compares numerically when both sides are numbers and by
// printable form otherwise. The second result is false for an unknown operator.
func compareValues(op string, left, right runtime.Value) (bool, bool) {
	if runtime.IsNumeric(left) && runtime.IsNumeric(right) {
		li, lInt := left.(runtime.IntegerValue)
		ri, rInt := right.(runtime.IntegerValue)
		if lInt && rInt {
			return applyRelational(op, compareInts(li.Val, ri.Val), false)
		}
		l, _ := runtime.ToNumber(left)
		r, _ := runtime.ToNumber(right)
		return applyFloatRelational(op, l, r)
	}
	cmp := strings.Compare(runtime.FormatValue(left), runtime.FormatValue(right))
	return applyRelational(op, cmp, false)
}

func compareInts(l, r int64) int {
	switch {
	case l < r:
		return -1
	case l > r:
		return 1
	default:
		return 0
	}
}

func applyRelational(op string, cmp int, unordered bool) (bool, bool) {
	switch op {
	case "==":
		return !unordered && cmp == 0, true
	case "!=":
		return unordered || cmp != 0, true
	case ">":
		return !unordered && cmp > 0, true
	case "<":
		return !unordered && cmp < 0, true
	case ">=":
		return !unordered && cmp >= 0, true
	case "<=":
		return !unordered && cmp <= 0, true
	default:
		return false, false
	}
}

// applyFloatRelational follows IEEE ordering: any comparison with NaN is
// false except !=.
func applyFloatRelational(op string, l, r float64) (bool, bool) {
	switch {
	case math.IsNaN(l) || math.IsNaN(r):
		return applyRelational(op, 0, true)
	case l < r:
		return applyRelational(op, -1, false)
	case l > r:
		return applyRelational(op, 1, false)
	default:
		return applyRelational(op, 0, false)
	}
}
