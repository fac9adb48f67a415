package lexer

import (
	"fmt"
	"strings"
	"unicode"

	"snail/interpreter-go/pkg/token"
)

// LexError reports a malformed token together with its source position.
type LexError struct {
	Message string
	Line    int
	Column  int
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lex error at line %d, column %d: %s", e.Line, e.Column, e.Message)
}

type cursor struct {
	pos  int
	line int
	col  int
}

type lexer struct {
	src    []rune
	cur    cursor
	tokens []token.Token
}

// Tokenize converts source text into tokens terminated by an EOF token.
func Tokenize(source string) ([]token.Token, error) {
	l := &lexer{
		src: []rune(source),
		cur: cursor{line: 1, col: 1},
	}
	if err := l.run(); err != nil {
		return nil, err
	}
	return l.tokens, nil
}

func (l *lexer) run() error {
	for !l.atEnd() {
		ch := l.peek()
		switch {
		case isSpace(ch):
			l.advance()
		case ch == '"':
			if err := l.readString(); err != nil {
				return err
			}
		case isDigit(ch):
			l.readNumber()
		case unicode.IsLetter(ch):
			l.readWord()
		default:
			if err := l.readOperator(); err != nil {
				return err
			}
		}
	}
	l.tokens = append(l.tokens, token.Token{Kind: token.EOF, Line: l.cur.line, Column: l.cur.col})
	return nil
}

func (l *lexer) atEnd() bool { return l.cur.pos >= len(l.src) }

func (l *lexer) peek() rune {
	if l.atEnd() {
		return 0
	}
	return l.src[l.cur.pos]
}

func (l *lexer) peekAt(offset int) rune {
	idx := l.cur.pos + offset
	if idx >= len(l.src) {
		return 0
	}
	return l.src[idx]
}

func (l *lexer) advance() rune {
	ch := l.src[l.cur.pos]
	l.cur.pos++
	if ch == '\n' {
		l.cur.line++
		l.cur.col = 1
	} else {
		l.cur.col++
	}
	return ch
}

func (l *lexer) emit(kind token.Kind, literal string, start cursor) {
	l.tokens = append(l.tokens, token.Token{Kind: kind, Literal: literal, Line: start.line, Column: start.col})
}

func (l *lexer) errorAt(at cursor, format string, args ...any) error {
	return &LexError{Message: fmt.Sprintf(format, args...), Line: at.line, Column: at.col}
}

func (l *lexer) readString() error {
	start := l.cur
	l.advance() // opening quote
	var b strings.Builder
	for {
		if l.atEnd() {
			return l.errorAt(start, "unterminated string literal")
		}
		ch := l.advance()
		switch ch {
		case '"':
			l.emit(token.STRING, b.String(), start)
			return nil
		case '\\':
			if l.atEnd() {
				return l.errorAt(start, "unterminated string literal")
			}
			b.WriteRune(l.advance())
		default:
			b.WriteRune(ch)
		}
	}
}

func (l *lexer) readNumber() {
	start := l.cur
	var b strings.Builder
	seenDot := false
	for !l.atEnd() {
		ch := l.peek()
		if isDigit(ch) {
			b.WriteRune(l.advance())
			continue
		}
		if ch == '.' && !seenDot {
			seenDot = true
			b.WriteRune(l.advance())
			continue
		}
		break
	}
	l.emit(token.NUMBER, b.String(), start)
}

func (l *lexer) scanWord() string {
	var b strings.Builder
	for !l.atEnd() && isWordRune(l.peek()) {
		b.WriteRune(l.advance())
	}
	return b.String()
}

func (l *lexer) readWord() {
	start := l.cur
	word := l.scanWord()
	if word == token.OrWord && l.consumeElse() {
		l.emit(token.OR_ELSE, token.OrWord+" "+token.ElseWord, start)
		return
	}
	l.emit(token.LookupIdent(word), word, start)
}

// consumeElse looks past whitespace for the word ELSE. It consumes both on a
// match and restores the cursor otherwise.
func (l *lexer) consumeElse() bool {
	saved := l.cur
	skipped := false
	for !l.atEnd() && isSpace(l.peek()) {
		l.advance()
		skipped = true
	}
	if skipped && !l.atEnd() && unicode.IsLetter(l.peek()) {
		if l.scanWord() == token.ElseWord {
			return true
		}
	}
	l.cur = saved
	return false
}

var twoCharOperators = map[string]token.Kind{
	">>": token.ASSIGN,
	"==": token.EQ,
	"!=": token.NEQ,
	">=": token.GTE,
	"<=": token.LTE,
}

var singleCharOperators = map[rune]token.Kind{
	'+': token.PLUS,
	'-': token.MINUS,
	'*': token.MULTIPLY,
	'/': token.DIVIDE,
	'>': token.GT,
	'<': token.LT,
	'(': token.LPAREN,
	')': token.RPAREN,
}

func (l *lexer) readOperator() error {
	start := l.cur
	ch := l.peek()
	if next := l.peekAt(1); next != 0 {
		pair := string([]rune{ch, next})
		if kind, ok := twoCharOperators[pair]; ok {
			l.advance()
			l.advance()
			l.emit(kind, pair, start)
			return nil
		}
	}
	if kind, ok := singleCharOperators[ch]; ok {
		l.advance()
		l.emit(kind, string(ch), start)
		return nil
	}
	switch ch {
	case '=':
		return l.errorAt(start, "unexpected '=' (expected '==')")
	case '!':
		return l.errorAt(start, "unexpected '!' (expected '!=')")
	default:
		return l.errorAt(start, "unexpected character %q", ch)
	}
}

func isSpace(ch rune) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isWordRune(ch rune) bool {
	return unicode.IsLetter(ch) || unicode.IsDigit(ch) || ch == '_'
}
