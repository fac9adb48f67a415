package runtime

import (
	"fmt"
	"math"
	"strconv"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindInteger Kind = iota
	KindFloat
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values. The set of
// implementations is closed: IntegerValue, FloatValue and StringValue.
type Value interface {
	Kind() Kind
	isValue()
}

type IntegerValue struct {
	Val int64
}

func (v IntegerValue) Kind() Kind { return KindInteger }
func (IntegerValue) isValue()     {}

type FloatValue struct {
	Val float64
}

func (v FloatValue) Kind() Kind { return KindFloat }
func (FloatValue) isValue()     {}

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind { return KindString }
func (StringValue) isValue()     {}

// IsNumeric reports whether v is an integer or float value.
func IsNumeric(v Value) bool {
	switch v.(type) {
	case IntegerValue, FloatValue:
		return true
	default:
		return false
	}
}

// FormatValue renders the printable form of a value.
func FormatValue(v Value) string {
	switch val := v.(type) {
	case IntegerValue:
		return strconv.FormatInt(val.Val, 10)
	case FloatValue:
		return formatFloat(val.Val)
	case StringValue:
		return val.Val
	case nil:
		return ""
	default:
		return fmt.Sprintf("<%T>", v)
	}
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64) + ".0"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// NormalizeNumber returns an IntegerValue when f is a whole number that fits
// in int64, and a FloatValue otherwise.
func NormalizeNumber(f float64) Value {
	if i, ok := exactInt(f); ok {
		return IntegerValue{Val: i}
	}
	return FloatValue{Val: f}
}

func exactInt(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}
