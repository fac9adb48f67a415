package typechecker

import (
	"snail/interpreter-go/pkg/ast"
)

func (c *Checker) inferExpression(expr ast.Expression) Type {
	switch e := expr.(type) {
	case *ast.NumberLiteral:
		if e.IsFloat {
			return TypeFloat
		}
		return TypeInteger
	case *ast.StringLiteral:
		return TypeString
	case *ast.Identifier:
		tag, ok := c.lookup(e.Name, e)
		if !ok {
			return TypeUnknown
		}
		return typeForTag(tag)
	case *ast.BinaryOp:
		return c.inferBinary(e)
	default:
		return TypeUnknown
	}
}

func (c *Checker) inferBinary(e *ast.BinaryOp) Type {
	c.inferOperand(e.Left)
	c.inferOperand(e.Right)
	if e.Operator == "/" && isZeroLiteral(e.Right) {
		c.addWarning(e, "division by zero")
	}
	return TypeNumber
}

// inferOperand flags string literals that can never convert to a number.
func (c *Checker) inferOperand(expr ast.Expression) {
	if lit, ok := expr.(*ast.StringLiteral); ok && !numericText(lit.Value) {
		c.addError(lit, "string %q is not a number", lit.Value)
		return
	}
	c.inferExpression(expr)
}

func isZeroLiteral(expr ast.Expression) bool {
	switch e := expr.(type) {
	case *ast.NumberLiteral:
		if e.IsFloat {
			return e.Float == 0
		}
		return e.Int == 0
	case *ast.StringLiteral:
		f, ok := numericValue(e.Value)
		return ok && f == 0
	default:
		return false
	}
}
