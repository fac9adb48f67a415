package parser

import (
	"fmt"

	"snail/interpreter-go/pkg/token"
)

// SourceLocation captures the position of the offending token.
type SourceLocation struct {
	Line   int
	Column int
}

// ParseError reports the first grammar violation: what the parser expected
// and the token it found instead.
type ParseError struct {
	Expected string
	Actual   token.Kind
	Literal  string
	Message  string
	Location SourceLocation
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d: %s", e.Location.Line, e.Detail())
}

// Detail is the error text without the location prefix.
func (e *ParseError) Detail() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("expected %s, got %s", e.Expected, describeToken(e.Actual, e.Literal))
}

func locationForToken(tok token.Token) SourceLocation {
	return SourceLocation{Line: tok.Line, Column: tok.Column}
}

func unexpected(expected string, tok token.Token) *ParseError {
	return &ParseError{
		Expected: expected,
		Actual:   tok.Kind,
		Literal:  tok.Literal,
		Location: locationForToken(tok),
	}
}

func describeToken(kind token.Kind, literal string) string {
	switch kind {
	case token.EOF:
		return "end of input"
	case token.IDENT, token.NUMBER:
		return fmt.Sprintf("%s %s", kind, literal)
	case token.STRING:
		return fmt.Sprintf("%s %q", kind, literal)
	default:
		return kind.String()
	}
}

// formatExpectedKind renders a token kind the way it reads in error text.
func formatExpectedKind(kind token.Kind) string {
	if kind == token.EOF {
		return "end of input"
	}
	return kind.String()
}
