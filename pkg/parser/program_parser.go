package parser

import (
	"snail/interpreter-go/pkg/ast"
	"snail/interpreter-go/pkg/lexer"
	"snail/interpreter-go/pkg/token"
)

// Parser is a recursive-descent parser with one token of lookahead. It stops
// at the first error.
type Parser struct {
	tokens []token.Token
	pos    int
}

// New returns a parser over a token stream produced by lexer.Tokenize.
func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse builds a Program from tokens.
func Parse(tokens []token.Token) (*ast.Program, error) {
	return New(tokens).ParseProgram()
}

// ParseSource tokenizes and parses source text.
func ParseSource(source string) (*ast.Program, error) {
	tokens, err := lexer.Tokenize(source)
	if err != nil {
		return nil, err
	}
	return Parse(tokens)
}

// ParseProgram parses BEGIN Statement* STOP followed by end of input.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	begin, err := p.expect(token.BEGIN)
	if err != nil {
		return nil, err
	}
	statements, err := p.parseStatements(token.STOP)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.STOP); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.EOF); err != nil {
		return nil, err
	}
	program := ast.NewProgram(statements)
	ast.SetPosition(program, positionOf(begin))
	return program, nil
}

func (p *Parser) current() token.Token {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}
	if n := len(p.tokens); n > 0 {
		last := p.tokens[n-1]
		return token.Token{Kind: token.EOF, Line: last.Line, Column: last.Column}
	}
	return token.Token{Kind: token.EOF, Line: 1, Column: 1}
}

func (p *Parser) check(kinds ...token.Kind) bool {
	cur := p.current().Kind
	for _, kind := range kinds {
		if cur == kind {
			return true
		}
	}
	return false
}

func (p *Parser) advance() token.Token {
	tok := p.current()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *Parser) expect(kind token.Kind) (token.Token, error) {
	tok := p.current()
	if tok.Kind != kind {
		return tok, unexpected(formatExpectedKind(kind), tok)
	}
	return p.advance(), nil
}

func positionOf(tok token.Token) ast.Position {
	return ast.Position{Line: tok.Line, Column: tok.Column}
}
