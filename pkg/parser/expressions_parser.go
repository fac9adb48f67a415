package parser

import (
	"errors"
	"fmt"
	"strconv"

	"snail/interpreter-go/pkg/ast"
	"snail/interpreter-go/pkg/token"
)

// Expression := Term (('+'|'-') Term)*
func (p *Parser) parseExpression() (ast.Expression, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.check(token.PLUS, token.MINUS) {
		op := p.advance()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = binary(left, op, right)
	}
	return left, nil
}

// Term := Factor (('*'|'/') Factor)*
func (p *Parser) parseTerm() (ast.Expression, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for p.check(token.MULTIPLY, token.DIVIDE) {
		op := p.advance()
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		left = binary(left, op, right)
	}
	return left, nil
}

// Factor := NUMBER | IDENT | STRING | '(' Expression ')'
func (p *Parser) parseFactor() (ast.Expression, error) {
	tok := p.current()
	switch tok.Kind {
	case token.NUMBER:
		p.advance()
		return numberLiteral(tok)
	case token.IDENT:
		p.advance()
		id := ast.NewIdentifier(tok.Literal)
		ast.SetPosition(id, positionOf(tok))
		return id, nil
	case token.STRING:
		p.advance()
		str := ast.NewStringLiteral(tok.Literal)
		ast.SetPosition(str, positionOf(tok))
		return str, nil
	case token.LPAREN:
		p.advance()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		return expr, nil
	default:
		return nil, unexpected("expression", tok)
	}
}

func binary(left ast.Expression, op token.Token, right ast.Expression) ast.Expression {
	node := ast.NewBinaryOp(left, op.Literal, right)
	ast.SetPosition(node, left.Position())
	return node
}

// numberLiteral converts a NUMBER token. Integral literals must fit in int64
// and float literals in float64.
func numberLiteral(tok token.Token) (ast.Expression, error) {
	var lit *ast.NumberLiteral
	if tok.IsFloat() {
		v, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			return nil, numberError(tok, err)
		}
		lit = ast.NewFloatLiteral(v)
	} else {
		v, err := strconv.ParseInt(tok.Literal, 10, 64)
		if err != nil {
			return nil, numberError(tok, err)
		}
		lit = ast.NewIntegerLiteral(v)
	}
	ast.SetPosition(lit, positionOf(tok))
	return lit, nil
}

func numberError(tok token.Token, err error) *ParseError {
	if errors.Is(err, strconv.ErrRange) {
		err = fmt.Errorf("number %s out of range", tok.Literal)
	}
	return &ParseError{
		Expected: "number",
		Actual:   tok.Kind,
		Literal:  tok.Literal,
		Message:  err.Error(),
		Location: locationForToken(tok),
	}
}
