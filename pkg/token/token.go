package token

import (
	"fmt"
	"strings"
)

// Kind identifies a lexical token category.
type Kind int

const (
	ILLEGAL Kind = iota
	EOF

	// Program structure
	BEGIN
	STOP
	THIS
	AS
	GIVE
	GET
	PRESENT
	IF
	THEN
	OR_ELSE
	OR

	// Type tags
	NT
	FT
	CH
	ST

	// Operators
	ASSIGN // >>
	PLUS
	MINUS
	MULTIPLY
	DIVIDE

	// Relational operators
	EQ  // ==
	NEQ // !=
	GT
	LT
	GTE
	LTE

	// Delimiters
	LPAREN
	RPAREN

	// Literals
	NUMBER
	STRING
	IDENT
)

var kindNames = map[Kind]string{
	ILLEGAL:  "ILLEGAL",
	EOF:      "EOF",
	BEGIN:    "BEGIN",
	STOP:     "STOP",
	THIS:     "THIS",
	AS:       "AS",
	GIVE:     "GIVE",
	GET:      "GET",
	PRESENT:  "PRESENT",
	IF:       "IF",
	THEN:     "THEN",
	OR_ELSE:  "OR_ELSE",
	OR:       "OR",
	NT:       "NT",
	FT:       "FT",
	CH:       "CH",
	ST:       "ST",
	ASSIGN:   "ASSIGN",
	PLUS:     "PLUS",
	MINUS:    "MINUS",
	MULTIPLY: "MULTIPLY",
	DIVIDE:   "DIVIDE",
	EQ:       "EQ",
	NEQ:      "NEQ",
	GT:       "GT",
	LT:       "LT",
	GTE:      "GTE",
	LTE:      "LTE",
	LPAREN:   "LPAREN",
	RPAREN:   "RPAREN",
	NUMBER:   "NUMBER",
	STRING:   "STRING",
	IDENT:    "IDENTIFIER",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsTypeTag reports whether the kind names a declarable type.
func (k Kind) IsTypeTag() bool {
	switch k {
	case NT, FT, CH, ST:
		return true
	default:
		return false
	}
}

// IsRelational reports whether the kind is a comparison operator.
func (k Kind) IsRelational() bool {
	switch k {
	case EQ, NEQ, GT, LT, GTE, LTE:
		return true
	default:
		return false
	}
}

// Token is a lexical token with its 1-based source position.
type Token struct {
	Kind    Kind   `json:"kind"`
	Literal string `json:"literal"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
}

// IsFloat reports whether a NUMBER token was written with a decimal point.
func (t Token) IsFloat() bool {
	return t.Kind == NUMBER && strings.Contains(t.Literal, ".")
}

func (t Token) String() string {
	return fmt.Sprintf("%d:%d %s %q", t.Line, t.Column, t.Kind, t.Literal)
}

// The chained-elif keyword is spelled as two words in source.
const (
	OrWord   = "OR"
	ElseWord = "ELSE"
)

var keywords = map[string]Kind{
	"BEGIN":   BEGIN,
	"STOP":    STOP,
	"THIS":    THIS,
	"AS":      AS,
	"GIVE":    GIVE,
	"GET":     GET,
	"PRESENT": PRESENT,
	"IF":      IF,
	"THEN":    THEN,
	OrWord:    OR,
	"NT":      NT,
	"FT":      FT,
	"CH":      CH,
	"ST":      ST,
}

// LookupIdent maps a word to its keyword kind, or IDENT.
func LookupIdent(word string) Kind {
	if kind, ok := keywords[word]; ok {
		return kind
	}
	return IDENT
}
