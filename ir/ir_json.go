package ir

import (
	"encoding/json"
	"fmt"
)

type irBase struct {
	Type    Type        `json:"type"`
	Fields  []*Node     `json:"fields,omitempty"`
	Values  []*Node     `json:"values,omitempty"`
	Number  string      `json:"number,omitempty"`
	Float64 *float64    `json:"float,omitempty"`
	Int64   *int64      `json:"int,omitempty"`
	NumKind *NumberKind `json:"kind,omitempty"`
	Bytes   []byte      `json:"bytes,omitempty"`
	Opaque  any         `json:"opaque,omitempty"`
}

// MarshalJSON encodes the IR itself, not the document it represents.
func (y *Node) MarshalJSON() ([]byte, error) {
	base := &irBase{
		Type:    y.Type,
		Fields:  y.Fields,
		Values:  y.Values,
		Number:  y.Number,
		Float64: y.Float64,
		Int64:   y.Int64,
		Bytes:   y.Bytes,
		Opaque:  y.Opaque,
	}
	switch y.Type {
	case NumberType:
		k := y.NumKind
		base.NumKind = &k
		return json.Marshal(base)
	case StringType:
		type C struct {
			irBase
			String string `json:"string"`
		}
		return json.Marshal(C{irBase: *base, String: y.String})
	case BoolType:
		type C struct {
			irBase
			Bool bool `json:"bool"`
		}
		return json.Marshal(C{irBase: *base, Bool: y.Bool})
	default:
		return json.Marshal(base)
	}
}

// UnmarshalJSON decodes the IR. Opaque values come back as whatever
// encoding/json produces for them.
func (y *Node) UnmarshalJSON(d []byte) error {
	type C struct {
		irBase
		String string `json:"string"`
		Bool   bool   `json:"bool"`
	}
	tmp := &C{irBase: irBase{}}
	if err := json.Unmarshal(d, tmp); err != nil {
		return err
	}
	y.Type = tmp.Type
	y.Values = tmp.Values
	y.Fields = tmp.Fields
	y.Bool = tmp.Bool
	y.String = tmp.String
	y.Number = tmp.Number
	y.Int64 = tmp.Int64
	y.Float64 = tmp.Float64
	y.Bytes = tmp.Bytes
	y.Opaque = tmp.Opaque
	if tmp.NumKind != nil {
		y.NumKind = *tmp.NumKind
	}

	switch y.Type {
	case ObjectType:
		if len(y.Fields) != len(y.Values) {
			return fmt.Errorf("object with %d fields and %d values", len(y.Fields), len(y.Values))
		}
		for _, f := range y.Fields {
			if f.Type != StringType {
				return fmt.Errorf("invalid field type %s", f.Type)
			}
		}
	case NumberType:
		if tmp.NumKind == nil {
			return fmt.Errorf("number without kind")
		}
	}
	return nil
}
