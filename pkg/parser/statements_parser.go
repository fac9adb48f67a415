package parser

import (
	"snail/interpreter-go/pkg/ast"
	"snail/interpreter-go/pkg/token"
)

// parseStatements collects statements until one of the terminator kinds is
// the current token. The terminator is left unconsumed.
func (p *Parser) parseStatements(terminators ...token.Kind) ([]ast.Statement, error) {
	statements := make([]ast.Statement, 0)
	for !p.check(terminators...) {
		if p.check(token.EOF) {
			return nil, unexpected(formatExpectedKind(token.STOP), p.current())
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
	}
	return statements, nil
}

func (p *Parser) parseStatement() (ast.Statement, error) {
	switch p.current().Kind {
	case token.THIS:
		return p.parseVarDeclaration()
	case token.IDENT:
		return p.parseAssignment()
	case token.GIVE:
		return p.parseInput()
	case token.PRESENT:
		return p.parsePrint()
	case token.IF:
		return p.parseIf()
	default:
		return nil, unexpected("statement", p.current())
	}
}

// THIS IDENT AS TypeTag
func (p *Parser) parseVarDeclaration() (ast.Statement, error) {
	start := p.advance()
	name, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.AS); err != nil {
		return nil, err
	}
	tag := p.current()
	if !tag.Kind.IsTypeTag() {
		return nil, unexpected("type tag (NT, FT, CH, ST)", tag)
	}
	p.advance()
	decl := ast.NewVarDeclaration(name.Literal, ast.TypeTag(tag.Literal))
	ast.SetPosition(decl, positionOf(start))
	return decl, nil
}

// IDENT >> Expression
func (p *Parser) parseAssignment() (ast.Statement, error) {
	name := p.advance()
	if _, err := p.expect(token.ASSIGN); err != nil {
		return nil, err
	}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	assign := ast.NewAssignment(name.Literal, expr)
	ast.SetPosition(assign, positionOf(name))
	return assign, nil
}

// GIVE STRING GET IDENT
func (p *Parser) parseInput() (ast.Statement, error) {
	start := p.advance()
	prompt, err := p.expect(token.STRING)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.GET); err != nil {
		return nil, err
	}
	target, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	input := ast.NewInputStatement(prompt.Literal, target.Literal)
	ast.SetPosition(input, positionOf(start))
	return input, nil
}

// PRESENT Expression. String literals and identifiers are factors, so the
// expression grammar covers all three printable forms.
func (p *Parser) parsePrint() (ast.Statement, error) {
	start := p.advance()
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	stmt := ast.NewPrintStatement(expr)
	ast.SetPosition(stmt, positionOf(start))
	return stmt, nil
}

// IF (cond) THEN block {OR ELSE (cond) THEN block} [OR block] STOP
func (p *Parser) parseIf() (ast.Statement, error) {
	start := p.advance()
	first, err := p.parseBranch(start)
	if err != nil {
		return nil, err
	}
	branches := []*ast.ConditionalBranch{first}

	for p.check(token.OR_ELSE) {
		branch, err := p.parseBranch(p.advance())
		if err != nil {
			return nil, err
		}
		branches = append(branches, branch)
	}

	var elseBlock []ast.Statement
	if p.check(token.OR) {
		p.advance()
		elseBlock, err = p.parseStatements(token.OR_ELSE, token.OR, token.STOP)
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.STOP); err != nil {
		return nil, err
	}

	stmt := ast.NewIfStatement(branches, elseBlock)
	ast.SetPosition(stmt, positionOf(start))
	return stmt, nil
}

// parseBranch parses "(cond) THEN block" after IF or OR ELSE has been consumed.
func (p *Parser) parseBranch(keyword token.Token) (*ast.ConditionalBranch, error) {
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.THEN); err != nil {
		return nil, err
	}
	body, err := p.parseStatements(token.OR_ELSE, token.OR, token.STOP)
	if err != nil {
		return nil, err
	}
	branch := ast.NewConditionalBranch(cond, body)
	ast.SetPosition(branch, positionOf(keyword))
	return branch, nil
}

// Expression RelOp Expression
func (p *Parser) parseCondition() (*ast.Condition, error) {
	start := p.current()
	left, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	op := p.current()
	if !op.Kind.IsRelational() {
		return nil, unexpected("relational operator", op)
	}
	p.advance()
	right, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	cond := ast.NewCondition(left, op.Literal, right)
	ast.SetPosition(cond, positionOf(start))
	return cond, nil
}
