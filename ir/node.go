package ir

import (
	"fmt"
	"math/big"
	"slices"

	"github.com/shopspring/decimal"
)

type Node struct {
	Type   Type
	Fields []*Node
	Values []*Node

	String  string
	Bool    bool
	Number  string
	Float64 *float64
	Int64   *int64
	NumKind NumberKind
	Bytes   []byte
	Opaque  any
}

func (y *Node) Clone() *Node {
	res := &Node{}
	return y.CloneTo(res)
}

// CloneTo deep copies y into dst. Binary content is copied, opaque values
// are shared.
func (y *Node) CloneTo(dst *Node) *Node {
	dst.Type = y.Type
	dst.Values = make([]*Node, len(y.Values))
	dst.Fields = make([]*Node, len(y.Fields))
	for i, yv := range y.Values {
		dst.Values[i] = yv.CloneTo(&Node{})
	}
	for i, yf := range y.Fields {
		dst.Fields[i] = yf.CloneTo(&Node{})
	}
	dst.String = y.String
	dst.Number = y.Number
	dst.NumKind = y.NumKind
	if y.Float64 != nil {
		f := *y.Float64
		dst.Float64 = &f
	}
	if y.Int64 != nil {
		i := *y.Int64
		dst.Int64 = &i
	}
	dst.Bool = y.Bool
	if y.Bytes != nil {
		dst.Bytes = slices.Clone(y.Bytes)
	}
	dst.Opaque = y.Opaque
	return dst
}

func FromString(v string) *Node {
	return FromStringAt(&Node{}, v)
}

func FromStringAt(p *Node, v string) *Node {
	p.Type = StringType
	p.String = v
	return p
}

func FromInt32(v int32) *Node {
	i := int64(v)
	return &Node{
		Type:    NumberType,
		NumKind: Int32Kind,
		Int64:   &i,
	}
}

func FromInt64(v int64) *Node {
	return &Node{
		Type:    NumberType,
		NumKind: Int64Kind,
		Int64:   &v,
	}
}

// FromBigInt returns a BigIntKind number holding the decimal text of v.
// A nil v yields a null node.
func FromBigInt(v *big.Int) *Node {
	if v == nil {
		return Null()
	}
	return &Node{
		Type:    NumberType,
		NumKind: BigIntKind,
		Number:  v.String(),
	}
}

func FromFloat32(v float32) *Node {
	f := float64(v)
	return &Node{
		Type:    NumberType,
		NumKind: Float32Kind,
		Float64: &f,
	}
}

func FromFloat64(f float64) *Node {
	return &Node{
		Type:    NumberType,
		NumKind: Float64Kind,
		Float64: &f,
	}
}

func FromDecimal(d decimal.Decimal) *Node {
	return &Node{
		Type:    NumberType,
		NumKind: DecimalKind,
		Number:  d.String(),
	}
}

func FromBool(v bool) *Node {
	return &Node{
		Type: BoolType,
		Bool: v,
	}
}

// FromBytes wraps data without copying it.
func FromBytes(data []byte) *Node {
	return &Node{
		Type:  BinaryType,
		Bytes: data,
	}
}

// FromOpaque wraps an already materialized value which the document model
// does not interpret.
func FromOpaque(v any) *Node {
	return &Node{
		Type:   OpaqueType,
		Opaque: v,
	}
}

func Null() *Node {
	return &Node{Type: NullType}
}

func NewObject() *Node {
	return &Node{Type: ObjectType}
}

func NewArray() *Node {
	return &Node{Type: ArrayType}
}

// Int returns the integer value of an Int32Kind or Int64Kind number.
func (y *Node) Int() (int64, bool) {
	if y.Type != NumberType || y.Int64 == nil {
		return 0, false
	}
	return *y.Int64, true
}

// Float returns the value of a Float32Kind or Float64Kind number.
func (y *Node) Float() (float64, bool) {
	if y.Type != NumberType || y.Float64 == nil {
		return 0, false
	}
	return *y.Float64, true
}

// Float32 returns the value of a Float32Kind number.
func (y *Node) Float32() (float32, bool) {
	if y.NumKind != Float32Kind {
		return 0, false
	}
	f, ok := y.Float()
	return float32(f), ok
}

// BigInt returns the value of any integer kind as a big.Int.
func (y *Node) BigInt() (*big.Int, bool) {
	if y.Type != NumberType || !y.NumKind.IsInteger() {
		return nil, false
	}
	if y.Int64 != nil {
		return big.NewInt(*y.Int64), true
	}
	return new(big.Int).SetString(y.Number, 10)
}

// Decimal returns the value of a DecimalKind number.
func (y *Node) Decimal() (decimal.Decimal, error) {
	if y.Type != NumberType || y.NumKind != DecimalKind {
		return decimal.Decimal{}, fmt.Errorf("%s node of kind %s is not a decimal", y.Type, y.NumKind)
	}
	return decimal.NewFromString(y.Number)
}

type KeyVal struct {
	Key string
	Val *Node
}

func FromKeyVals(kvs []KeyVal) *Node {
	res := NewObject()
	return FromKeyValsAt(res, kvs)
}

// FromKeyValsAt populates res with kvs in order. Repeated keys keep
// the position of their first occurrence and the value of the last.
func FromKeyValsAt(res *Node, kvs []KeyVal) *Node {
	res.Type = ObjectType
	res.Fields = make([]*Node, 0, len(kvs))
	res.Values = make([]*Node, 0, len(kvs))
	for i := range kvs {
		res.Set(kvs[i].Key, kvs[i].Val)
	}
	return res
}

func FromSlice(ySlice []*Node) *Node {
	res := &Node{
		Type: ArrayType,
	}
	res.Values = make([]*Node, len(ySlice))
	copy(res.Values, ySlice)
	return res
}

// Set binds field to v in an object node. An existing binding for field
// is replaced in place.
func (y *Node) Set(field string, v *Node) {
	if i := y.fieldIndex(field); i != -1 {
		y.Values[i] = v
		return
	}
	y.Fields = append(y.Fields, FromString(field))
	y.Values = append(y.Values, v)
}

// Append adds v to the end of an array node.
func (y *Node) Append(v *Node) {
	y.Values = append(y.Values, v)
}

func (y *Node) fieldIndex(field string) int {
	for i, f := range y.Fields {
		if f.String == field {
			return i
		}
	}
	return -1
}

func Get(y *Node, field string) *Node {
	if i := y.fieldIndex(field); i != -1 {
		return y.Values[i]
	}
	return nil
}

// Keys returns the object keys of y in order.
func (y *Node) Keys() []string {
	res := make([]string, len(y.Fields))
	for i, f := range y.Fields {
		res[i] = f.String
	}
	return res
}
