package parser

import (
	"reflect"
	"strings"
	"testing"

	"snail/interpreter-go/pkg/ast"
	"snail/interpreter-go/pkg/lexer"
	"snail/interpreter-go/pkg/token"
)

func TestParseStatements(t *testing.T) {
	runGrammarCases(t, []grammarCase{
		{
			name:   "empty program",
			source: "BEGIN STOP",
			want:   ast.Prog(),
		},
		{
			name:   "declaration and assignment",
			source: "BEGIN THIS x AS NT x >> 2 + 3 STOP",
			want: ast.Prog(
				ast.Decl("x", ast.TypeInteger),
				ast.Assign("x", ast.Bin(ast.Int(2), "+", ast.Int(3))),
			),
		},
		{
			name:   "all type tags",
			source: "BEGIN THIS a AS NT THIS b AS FT THIS c AS CH THIS d AS ST STOP",
			want: ast.Prog(
				ast.Decl("a", ast.TypeInteger),
				ast.Decl("b", ast.TypeFloat),
				ast.Decl("c", ast.TypeCharacter),
				ast.Decl("d", ast.TypeString),
			),
		},
		{
			name:   "input",
			source: `BEGIN THIS n AS ST GIVE "Name?" GET n STOP`,
			want: ast.Prog(
				ast.Decl("n", ast.TypeString),
				ast.Give("Name?", "n"),
			),
		},
		{
			name:   "print forms",
			source: `BEGIN PRESENT "hi" PRESENT x PRESENT x * 2 STOP`,
			want: ast.Prog(
				ast.Present(ast.Str("hi")),
				ast.Present(ast.ID("x")),
				ast.Present(ast.Bin(ast.ID("x"), "*", ast.Int(2))),
			),
		},
		{
			name:   "float literal",
			source: "BEGIN PRESENT 2.5 STOP",
			want:   ast.Prog(ast.Present(ast.Flt(2.5))),
		},
		{
			name:   "largest integer literal",
			source: "BEGIN PRESENT 9223372036854775807 STOP",
			want:   ast.Prog(ast.Present(ast.Int(9223372036854775807))),
		},
	})
}

func TestParseExpressionPrecedence(t *testing.T) {
	runGrammarCases(t, []grammarCase{
		{
			name:   "multiplication binds tighter",
			source: "BEGIN PRESENT 1 + 2 * 3 STOP",
			want: ast.Prog(ast.Present(
				ast.Bin(ast.Int(1), "+", ast.Bin(ast.Int(2), "*", ast.Int(3))),
			)),
		},
		{
			name:   "subtraction is left associative",
			source: "BEGIN PRESENT 10 - 4 - 3 STOP",
			want: ast.Prog(ast.Present(
				ast.Bin(ast.Bin(ast.Int(10), "-", ast.Int(4)), "-", ast.Int(3)),
			)),
		},
		{
			name:   "division is left associative",
			source: "BEGIN PRESENT 8 / 4 / 2 STOP",
			want: ast.Prog(ast.Present(
				ast.Bin(ast.Bin(ast.Int(8), "/", ast.Int(4)), "/", ast.Int(2)),
			)),
		},
		{
			name:   "parentheses override precedence",
			source: "BEGIN PRESENT (1 + 2) * 3 STOP",
			want: ast.Prog(ast.Present(
				ast.Bin(ast.Bin(ast.Int(1), "+", ast.Int(2)), "*", ast.Int(3)),
			)),
		},
	})
}

func TestParseIfChains(t *testing.T) {
	runGrammarCases(t, []grammarCase{
		{
			name:   "if without else",
			source: `BEGIN IF (x > 1) THEN PRESENT "big" STOP STOP`,
			want: ast.Prog(ast.If(
				ast.Branch(ast.Cond(ast.ID("x"), ">", ast.Int(1)), ast.Present(ast.Str("big"))),
			)),
		},
		{
			name: "chained branches with else",
			source: `BEGIN
IF (x > 1) THEN PRESENT "a"
OR ELSE (x == 1) THEN PRESENT "b"
OR
ELSE (x <= 0) THEN PRESENT "c"
OR PRESENT "d"
STOP
STOP`,
			want: ast.Prog(ast.IfElse(
				ast.Block(ast.Present(ast.Str("d"))),
				ast.Branch(ast.Cond(ast.ID("x"), ">", ast.Int(1)), ast.Present(ast.Str("a"))),
				ast.Branch(ast.Cond(ast.ID("x"), "==", ast.Int(1)), ast.Present(ast.Str("b"))),
				ast.Branch(ast.Cond(ast.ID("x"), "<=", ast.Int(0)), ast.Present(ast.Str("c"))),
			)),
		},
		{
			name:   "empty blocks",
			source: `BEGIN IF (1 != 2) THEN OR STOP STOP`,
			want: ast.Prog(ast.IfElse(
				ast.Block(),
				ast.Branch(ast.Cond(ast.Int(1), "!=", ast.Int(2))),
			)),
		},
		{
			name:   "nested if",
			source: `BEGIN IF (a < b) THEN IF (b >= c) THEN x >> 1 STOP STOP STOP`,
			want: ast.Prog(ast.If(
				ast.Branch(ast.Cond(ast.ID("a"), "<", ast.ID("b")),
					ast.If(ast.Branch(ast.Cond(ast.ID("b"), ">=", ast.ID("c")),
						ast.Assign("x", ast.Int(1)),
					)),
				),
			)),
		},
		{
			name:   "condition operands are expressions",
			source: `BEGIN IF (x + 1 == y * 2) THEN STOP STOP`,
			want: ast.Prog(ast.If(
				ast.Branch(ast.Cond(
					ast.Bin(ast.ID("x"), "+", ast.Int(1)),
					"==",
					ast.Bin(ast.ID("y"), "*", ast.Int(2)),
				)),
			)),
		},
	})
}

func TestParseIfHasElse(t *testing.T) {
	prog := parseStripped(t, `BEGIN IF (1 == 1) THEN STOP IF (1 == 1) THEN OR STOP STOP`)
	first := prog.Statements[0].(*ast.IfStatement)
	second := prog.Statements[1].(*ast.IfStatement)
	if first.HasElse() {
		t.Fatalf("expected first if to have no else block")
	}
	if !second.HasElse() {
		t.Fatalf("expected second if to have an else block")
	}
}

func TestParsePositions(t *testing.T) {
	prog, err := ParseSource("BEGIN\n  THIS x AS NT\n  x >> 1 + 2\nSTOP")
	if err != nil {
		t.Fatalf("ParseSource error: %v", err)
	}
	if got := prog.Position(); got != (ast.Position{Line: 1, Column: 1}) {
		t.Fatalf("program position = %v", got)
	}
	decl := prog.Statements[0].(*ast.VarDeclaration)
	if got := decl.Position(); got != (ast.Position{Line: 2, Column: 3}) {
		t.Fatalf("declaration position = %v", got)
	}
	assign := prog.Statements[1].(*ast.Assignment)
	if got := assign.Position(); got != (ast.Position{Line: 3, Column: 3}) {
		t.Fatalf("assignment position = %v", got)
	}
	bin := assign.Expression.(*ast.BinaryOp)
	if got := bin.Position(); got != (ast.Position{Line: 3, Column: 8}) {
		t.Fatalf("binary position = %v", got)
	}
	if got := bin.Right.Position(); got != (ast.Position{Line: 3, Column: 12}) {
		t.Fatalf("right operand position = %v", got)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name     string
		source   string
		expected string
		actual   token.Kind
		line     int
	}{
		{"missing begin", "THIS x AS NT STOP", "BEGIN", token.THIS, 1},
		{"missing stop", "BEGIN x >> 1", "STOP", token.EOF, 1},
		{"trailing tokens", "BEGIN STOP PRESENT 1", "end of input", token.PRESENT, 1},
		{"bad type tag", "BEGIN THIS x AS INT STOP", "type tag (NT, FT, CH, ST)", token.IDENT, 1},
		{"missing AS", "BEGIN THIS x NT STOP", "AS", token.NT, 1},
		{"missing assign", "BEGIN x 1 STOP", "ASSIGN", token.NUMBER, 1},
		{"input needs string prompt", "BEGIN GIVE x GET y STOP", "STRING", token.IDENT, 1},
		{"input needs GET", `BEGIN GIVE "p" y STOP`, "GET", token.IDENT, 1},
		{"print needs expression", "BEGIN PRESENT STOP", "expression", token.STOP, 1},
		{"unknown statement", "BEGIN 42 STOP", "statement", token.NUMBER, 1},
		{"condition needs relational operator", "BEGIN IF (x) THEN STOP STOP", "relational operator", token.RPAREN, 1},
		{"condition needs parentheses", "BEGIN IF x > 1 THEN STOP STOP", "LPAREN", token.IDENT, 1},
		{"missing THEN", "BEGIN IF (x > 1) PRESENT x STOP STOP", "THEN", token.PRESENT, 1},
		{"unclosed paren", "BEGIN PRESENT (1 + 2 STOP", "RPAREN", token.STOP, 1},
		{"second else block", "BEGIN IF (x > 1) THEN OR PRESENT 1 OR PRESENT 2 STOP STOP", "STOP", token.OR, 1},
		{"elif after else", "BEGIN IF (x > 1) THEN OR OR ELSE (x < 1) THEN STOP STOP", "STOP", token.OR_ELSE, 1},
		{"unterminated if", "BEGIN IF (x > 1) THEN PRESENT x", "STOP", token.EOF, 1},
		{"error on later line", "BEGIN\nTHIS x AS NT\nPRESENT\nSTOP", "expression", token.STOP, 4},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			perr := expectParseError(t, tc.source)
			if perr.Expected != tc.expected {
				t.Fatalf("expected %q, got %q (%v)", tc.expected, perr.Expected, perr)
			}
			if perr.Actual != tc.actual {
				t.Fatalf("actual kind = %s, want %s", perr.Actual, tc.actual)
			}
			if perr.Location.Line != tc.line {
				t.Fatalf("line = %d, want %d", perr.Location.Line, tc.line)
			}
		})
	}
}

func TestParseErrorMessage(t *testing.T) {
	perr := expectParseError(t, "BEGIN\nTHIS 1 AS NT\nSTOP")
	want := "parse error at line 2: expected IDENTIFIER, got NUMBER 1"
	if perr.Error() != want {
		t.Fatalf("got %q, want %q", perr.Error(), want)
	}
	perr = expectParseError(t, "BEGIN")
	if want := "parse error at line 1: expected STOP, got end of input"; perr.Error() != want {
		t.Fatalf("got %q, want %q", perr.Error(), want)
	}
}

func TestParseNumberOutOfRange(t *testing.T) {
	cases := []struct {
		name    string
		literal string
	}{
		{"integer past int64", "99999999999999999999"},
		{"integer one past int64", "9223372036854775808"},
		{"float past float64", strings.Repeat("9", 400) + ".5"},
	}
	for _, tc := range cases {
		perr := expectParseError(t, "BEGIN\nPRESENT "+tc.literal+" STOP")
		if want := "number " + tc.literal + " out of range"; perr.Message != want {
			t.Fatalf("%s: message %q, want %q", tc.name, perr.Message, want)
		}
		if perr.Location.Line != 2 || perr.Location.Column != 9 {
			t.Fatalf("%s: reported at %+v", tc.name, perr.Location)
		}
	}
}

func TestParseSourceSurfacesLexErrors(t *testing.T) {
	_, err := ParseSource(`BEGIN PRESENT "open STOP`)
	if _, ok := err.(*lexer.LexError); !ok {
		t.Fatalf("expected *lexer.LexError, got %T: %v", err, err)
	}
}

func TestParseEmptyTokenStream(t *testing.T) {
	_, err := Parse(nil)
	perr, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if perr.Actual != token.EOF || perr.Location.Line != 1 {
		t.Fatalf("unexpected error %+v", perr)
	}
}

func TestParseIsDeterministic(t *testing.T) {
	source := `BEGIN
THIS x AS NT
GIVE "x?" GET x
IF (x > 10) THEN PRESENT "big" OR ELSE (x > 5) THEN PRESENT "mid" OR PRESENT "small" STOP
STOP`
	firstTokens, err := lexer.Tokenize(source)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	secondTokens, err := lexer.Tokenize(source)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if !reflect.DeepEqual(firstTokens, secondTokens) {
		t.Fatalf("token streams differ")
	}
	first, err := Parse(firstTokens)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	second, err := Parse(secondTokens)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("ASTs differ")
	}
}
