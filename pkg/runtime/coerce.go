package runtime

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"snail/interpreter-go/pkg/ast"
)

// ErrNotNumeric marks a value or input text that has no numeric reading.
var ErrNotNumeric = errors.New("not a number")

// TypeName is the human-readable name of a declared type tag.
func TypeName(tag ast.TypeTag) string {
	switch tag {
	case ast.TypeInteger:
		return "integer"
	case ast.TypeFloat:
		return "float"
	case ast.TypeCharacter:
		return "character"
	case ast.TypeString:
		return "string"
	default:
		return string(tag)
	}
}

// ZeroValue is the value a declaration binds: 0, 0.0 or the empty string.
func ZeroValue(tag ast.TypeTag) (Value, error) {
	switch tag {
	case ast.TypeInteger:
		return IntegerValue{Val: 0}, nil
	case ast.TypeFloat:
		return FloatValue{Val: 0}, nil
	case ast.TypeCharacter, ast.TypeString:
		return StringValue{Val: ""}, nil
	default:
		return nil, fmt.Errorf("unknown type tag %q", string(tag))
	}
}

// ToNumber reads v as a float. Strings are parsed after trimming spaces.
func ToNumber(v Value) (float64, error) {
	switch val := v.(type) {
	case IntegerValue:
		return float64(val.Val), nil
	case FloatValue:
		return val.Val, nil
	case StringValue:
		return parseNumber(val.Val)
	default:
		return 0, fmt.Errorf("cannot convert %s to number: %w", FormatValue(v), ErrNotNumeric)
	}
}

func parseNumber(text string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return f, nil
		}
		return 0, fmt.Errorf("cannot convert %q to number: %w", text, ErrNotNumeric)
	}
	return f, nil
}

// Coerce converts v to the representation of a declared type. NT truncates
// toward zero, FT widens, CH and ST take the printable form.
func Coerce(tag ast.TypeTag, v Value) (Value, error) {
	switch tag {
	case ast.TypeInteger:
		if iv, ok := v.(IntegerValue); ok {
			return iv, nil
		}
		f, err := ToNumber(v)
		if err != nil {
			return nil, err
		}
		return truncate(f)
	case ast.TypeFloat:
		f, err := ToNumber(v)
		if err != nil {
			return nil, err
		}
		return FloatValue{Val: f}, nil
	case ast.TypeCharacter, ast.TypeString:
		return StringValue{Val: FormatValue(v)}, nil
	default:
		return nil, fmt.Errorf("unknown type tag %q", string(tag))
	}
}

// CoerceInput converts text read from the host for a variable of the given
// type. Numeric types parse the trimmed text; string types keep it verbatim.
func CoerceInput(tag ast.TypeTag, text string) (Value, error) {
	return Coerce(tag, StringValue{Val: text})
}

func truncate(f float64) (Value, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("cannot convert %s to integer: %w", formatFloat(f), ErrNotNumeric)
	}
	i, ok := exactInt(math.Trunc(f))
	if !ok {
		return nil, fmt.Errorf("%s is out of integer range", formatFloat(f))
	}
	return IntegerValue{Val: i}, nil
}
