package typechecker

import (
	"snail/interpreter-go/pkg/ast"
	"snail/interpreter-go/pkg/runtime"
)

// Type is the static shape of an expression.
type Type int

const (
	TypeUnknown Type = iota
	TypeInteger
	TypeFloat
	// TypeNumber is an arithmetic result; whole results come back as
	// integers, so the exact kind is only known at run time.
	TypeNumber
	TypeString
)

func (t Type) String() string {
	switch t {
	case TypeInteger:
		return "NT"
	case TypeFloat:
		return "FT"
	case TypeNumber:
		return "number"
	case TypeString:
		return "ST"
	default:
		return "unknown"
	}
}

// IsNumeric reports whether values of t always convert to numbers.
func (t Type) IsNumeric() bool {
	return t == TypeInteger || t == TypeFloat || t == TypeNumber
}

func typeForTag(tag ast.TypeTag) Type {
	switch tag {
	case ast.TypeInteger:
		return TypeInteger
	case ast.TypeFloat:
		return TypeFloat
	case ast.TypeCharacter, ast.TypeString:
		return TypeString
	default:
		return TypeUnknown
	}
}

func numericTag(tag ast.TypeTag) bool {
	return tag == ast.TypeInteger || tag == ast.TypeFloat
}

// numericText reports whether a string converts to a number the way the
// interpreter converts operands.
func numericText(text string) bool {
	_, ok := numericValue(text)
	return ok
}

func numericValue(text string) (float64, bool) {
	f, err := runtime.ToNumber(runtime.StringValue{Val: text})
	return f, err == nil
}
