package typechecker

import (
	"snail/interpreter-go/pkg/ast"
)

func (c *Checker) checkStatements(stmts []ast.Statement) {
	for _, stmt := range stmts {
		c.checkStatement(stmt)
	}
}

func (c *Checker) checkStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.VarDeclaration:
		if prev, ok := c.declared[s.Name]; ok && prev != s.DeclaredType {
			c.addWarning(s, "'%s' redeclared as %s (previously %s)", s.Name, s.DeclaredType, prev)
		}
		c.declared[s.Name] = s.DeclaredType
	case *ast.Assignment:
		tag, ok := c.lookup(s.Name, s)
		valueType := c.inferExpression(s.Expression)
		if !ok || !numericTag(tag) {
			return
		}
		if lit, isLit := s.Expression.(*ast.StringLiteral); isLit {
			if !numericText(lit.Value) {
				c.addError(lit, "cannot assign string %q to %s variable '%s'", lit.Value, tag, s.Name)
			}
			return
		}
		if valueType == TypeString {
			c.addWarning(s, "'%s' is %s but is assigned a string; it must hold a number when this runs", s.Name, tag)
		}
	case *ast.InputStatement:
		c.lookup(s.TargetName, s)
	case *ast.PrintStatement:
		c.inferExpression(s.Expression)
	case *ast.IfStatement:
		for _, branch := range s.Branches {
			if branch == nil {
				continue
			}
			c.checkCondition(branch.Condition)
			c.checkStatements(branch.Body)
		}
		c.checkStatements(s.Else)
	}
}

func (c *Checker) checkCondition(cond *ast.Condition) {
	if cond == nil {
		return
	}
	c.inferExpression(cond.Left)
	c.inferExpression(cond.Right)
}
