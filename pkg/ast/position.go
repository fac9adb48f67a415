package ast

import "fmt"

// Position is the 1-based line/column of a node's first token.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// IsZero reports whether the position was never set.
func (p Position) IsZero() bool {
	return p == Position{}
}

// SetPosition annotates the node with the provided position.
func SetPosition(node Node, pos Position) {
	if node == nil {
		return
	}
	if setter, ok := node.(interface{ setPosition(Position) }); ok {
		setter.setPosition(pos)
	}
}

// StripPositions clears every position under root so trees built by the DSL
// compare equal to parsed ones.
func StripPositions(root Node) {
	Walk(root, func(node Node) bool {
		SetPosition(node, Position{})
		return true
	})
}

// Walk visits root and its descendants depth-first in source order. Returning
// false from visit skips the children of that node.
func Walk(root Node, visit func(Node) bool) {
	if root == nil || !visit(root) {
		return
	}
	switch n := root.(type) {
	case *Program:
		walkStatements(n.Statements, visit)
	case *VarDeclaration, *InputStatement, *NumberLiteral, *StringLiteral, *Identifier:
	case *Assignment:
		walkExpression(n.Expression, visit)
	case *PrintStatement:
		walkExpression(n.Expression, visit)
	case *IfStatement:
		for _, branch := range n.Branches {
			if branch != nil {
				Walk(branch, visit)
			}
		}
		walkStatements(n.Else, visit)
	case *ConditionalBranch:
		if n.Condition != nil {
			Walk(n.Condition, visit)
		}
		walkStatements(n.Body, visit)
	case *Condition:
		walkExpression(n.Left, visit)
		walkExpression(n.Right, visit)
	case *BinaryOp:
		walkExpression(n.Left, visit)
		walkExpression(n.Right, visit)
	}
}

func walkStatements(stmts []Statement, visit func(Node) bool) {
	for _, stmt := range stmts {
		if stmt != nil {
			Walk(stmt, visit)
		}
	}
}

func walkExpression(expr Expression, visit func(Node) bool) {
	if expr != nil {
		Walk(expr, visit)
	}
}

// DeclaredNames returns the variable names declared anywhere in the program,
// in first-declaration order.
func DeclaredNames(program *Program) []string {
	var names []string
	seen := make(map[string]struct{})
	Walk(program, func(node Node) bool {
		if decl, ok := node.(*VarDeclaration); ok {
			if _, dup := seen[decl.Name]; !dup {
				seen[decl.Name] = struct{}{}
				names = append(names, decl.Name)
			}
		}
		return true
	})
	return names
}
