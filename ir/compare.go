package ir

import (
	"bytes"
	"cmp"
	"fmt"
	"math/big"
	"reflect"
	"strings"

	"github.com/shopspring/decimal"
)

// Compare returns an integer comparing two nodes.
// The result will be 0 if a==b, -1 if a < b, and +1 if a > b.
//
// Numbers of different kinds never compare equal.
func Compare(a, b *Node) int {
	if a == b {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}

	rankA := rank(a.Type)
	rankB := rank(b.Type)
	if rankA != rankB {
		return cmp.Compare(rankA, rankB)
	}

	switch a.Type {
	case NumberType:
		return compareNumbers(a, b)
	case StringType:
		return strings.Compare(a.String, b.String)
	case BoolType:
		if a.Bool == b.Bool {
			return 0
		}
		if !a.Bool {
			return -1
		}
		return 1
	case BinaryType:
		return bytes.Compare(a.Bytes, b.Bytes)
	case OpaqueType:
		if reflect.DeepEqual(a.Opaque, b.Opaque) {
			return 0
		}
		return strings.Compare(fmt.Sprintf("%T%v", a.Opaque, a.Opaque), fmt.Sprintf("%T%v", b.Opaque, b.Opaque))
	case ArrayType:
		return compareArrays(a, b)
	case ObjectType:
		return compareObjects(a, b)
	case NullType:
		return 0
	}
	return 0
}

// rank returns the sorting rank of a type.
// Order: Null < Bool < Number < String < Binary < Array < Object < Opaque
func rank(t Type) int {
	switch t {
	case NullType:
		return 1
	case BoolType:
		return 2
	case NumberType:
		return 3
	case StringType:
		return 4
	case BinaryType:
		return 5
	case ArrayType:
		return 6
	case ObjectType:
		return 7
	case OpaqueType:
		return 8
	}
	return 100
}

func compareNumbers(a, b *Node) int {
	if a.NumKind != b.NumKind {
		return cmp.Compare(a.NumKind, b.NumKind)
	}
	switch a.NumKind {
	case Int32Kind, Int64Kind:
		if a.Int64 != nil && b.Int64 != nil {
			return cmp.Compare(*a.Int64, *b.Int64)
		}
	case Float32Kind, Float64Kind:
		if a.Float64 != nil && b.Float64 != nil {
			return cmp.Compare(*a.Float64, *b.Float64)
		}
	case BigIntKind:
		x, okX := new(big.Int).SetString(a.Number, 10)
		y, okY := new(big.Int).SetString(b.Number, 10)
		if okX && okY {
			return x.Cmp(y)
		}
	case DecimalKind:
		x, errX := decimal.NewFromString(a.Number)
		y, errY := decimal.NewFromString(b.Number)
		if errX == nil && errY == nil {
			return x.Cmp(y)
		}
	}
	return strings.Compare(a.Number, b.Number)
}

func compareArrays(a, b *Node) int {
	lenA := len(a.Values)
	lenB := len(b.Values)
	minLen := min(lenA, lenB)

	for i := 0; i < minLen; i++ {
		if c := Compare(a.Values[i], b.Values[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(lenA, lenB)
}

// compareObjects compares fields in order, so objects holding the same
// bindings in a different order are not equal. Use Equal for an
// order-insensitive comparison.
func compareObjects(a, b *Node) int {
	lenA := len(a.Fields)
	lenB := len(b.Fields)
	minLen := min(lenA, lenB)

	for i := 0; i < minLen; i++ {
		if c := Compare(a.Fields[i], b.Fields[i]); c != 0 {
			return c
		}
		if c := Compare(a.Values[i], b.Values[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(lenA, lenB)
}

// Equal reports whether a and b hold the same document, ignoring the order
// of object keys.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Type != b.Type {
		return false
	}
	switch a.Type {
	case ObjectType:
		if len(a.Fields) != len(b.Fields) {
			return false
		}
		for i, f := range a.Fields {
			bv := Get(b, f.String)
			if bv == nil || !Equal(a.Values[i], bv) {
				return false
			}
		}
		return true
	case ArrayType:
		if len(a.Values) != len(b.Values) {
			return false
		}
		for i := range a.Values {
			if !Equal(a.Values[i], b.Values[i]) {
				return false
			}
		}
		return true
	default:
		return Compare(a, b) == 0
	}
}
