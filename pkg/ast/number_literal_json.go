package ast

import (
	"encoding/json"
	"strconv"
	"strings"
)

// MarshalJSON emits the literal's value as a bare JSON number.
func (lit *NumberLiteral) MarshalJSON() ([]byte, error) {
	if lit == nil {
		return []byte("null"), nil
	}
	value := strconv.FormatInt(lit.Int, 10)
	if lit.IsFloat {
		value = strconv.FormatFloat(lit.Float, 'g', -1, 64)
		if !strings.ContainsAny(value, ".eE") {
			value += ".0"
		}
	}
	payload := struct {
		Type    NodeType        `json:"type"`
		Pos     Position        `json:"pos"`
		Value   json.RawMessage `json:"value"`
		IsFloat bool            `json:"isFloat"`
	}{
		Type:    lit.Type,
		Pos:     lit.Pos,
		Value:   json.RawMessage(value),
		IsFloat: lit.IsFloat,
	}
	return json.Marshal(payload)
}
