package parser

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"snail/interpreter-go/pkg/ast"
)

type grammarCase struct {
	name   string
	source string
	want   *ast.Program
}

func parseStripped(t testing.TB, source string) *ast.Program {
	t.Helper()
	prog, err := ParseSource(source)
	if err != nil {
		t.Fatalf("ParseSource error: %v", err)
	}
	ast.StripPositions(prog)
	return prog
}

func assertProgramsEqual(t testing.TB, expected, actual *ast.Program) {
	t.Helper()
	if reflect.DeepEqual(expected, actual) {
		return
	}
	wantJSON, _ := json.Marshal(expected)
	gotJSON, _ := json.Marshal(actual)
	var wantAny interface{}
	var gotAny interface{}
	_ = json.Unmarshal(wantJSON, &wantAny)
	_ = json.Unmarshal(gotJSON, &gotAny)
	if reflect.DeepEqual(wantAny, gotAny) {
		return
	}
	wantPretty, _ := json.MarshalIndent(wantAny, "", "  ")
	gotPretty, _ := json.MarshalIndent(gotAny, "", "  ")
	t.Fatalf("program mismatch\nexpected: %s\n   actual: %s", wantPretty, gotPretty)
}

func runGrammarCases(t *testing.T, cases []grammarCase) {
	t.Helper()
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			assertProgramsEqual(t, tc.want, parseStripped(t, tc.source))
		})
	}
}

func expectParseError(t testing.TB, source string) *ParseError {
	t.Helper()
	_, err := ParseSource(source)
	if err == nil {
		t.Fatalf("expected parse error for %q", source)
	}
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %T: %v", err, err)
	}
	return perr
}
