package ir

import (
	"math/big"
	"testing"

	"github.com/shopspring/decimal"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b *Node
		want int
	}{
		{"null null", Null(), Null(), 0},
		{"null bool", Null(), FromBool(false), -1},
		{"bool number", FromBool(true), FromInt32(0), -1},
		{"number string", FromInt32(9), FromString("0"), -1},
		{"string binary", FromString("z"), FromBytes(nil), -1},
		{"array object", NewArray(), NewObject(), -1},
		{"int32", FromInt32(1), FromInt32(2), -1},
		{"kinds differ", FromInt32(1), FromInt64(1), -1},
		{"big", FromBigInt(big.NewInt(100)), FromBigInt(big.NewInt(99)), 1},
		{"decimal scale", FromDecimal(decimal.RequireFromString("1.0")), FromDecimal(decimal.RequireFromString("1")), 0},
		{"float", FromFloat64(0.5), FromFloat64(0.25), 1},
		{"binary", FromBytes([]byte{1}), FromBytes([]byte{1, 0}), -1},
		{"array prefix", FromSlice([]*Node{FromInt32(1)}), FromSlice([]*Node{FromInt32(1), Null()}), -1},
		{"object order", FromKeyVals([]KeyVal{{Key: "a", Val: Null()}, {Key: "b", Val: Null()}}),
			FromKeyVals([]KeyVal{{Key: "b", Val: Null()}, {Key: "a", Val: Null()}}), -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compare(tt.a, tt.b); got != tt.want {
				t.Errorf("Compare = %d, want %d", got, tt.want)
			}
			if got := Compare(tt.b, tt.a); got != -tt.want {
				t.Errorf("reverse Compare = %d, want %d", got, -tt.want)
			}
		})
	}
}

func TestEqualIgnoresKeyOrder(t *testing.T) {
	a := FromKeyVals([]KeyVal{{Key: "a", Val: FromInt32(1)}, {Key: "b", Val: FromString("x")}})
	b := FromKeyVals([]KeyVal{{Key: "b", Val: FromString("x")}, {Key: "a", Val: FromInt32(1)}})
	if !Equal(a, b) {
		t.Error("expected equal")
	}
	if Compare(a, b) == 0 {
		t.Error("expected ordered compare to differ")
	}
	c := FromKeyVals([]KeyVal{{Key: "a", Val: FromInt64(1)}, {Key: "b", Val: FromString("x")}})
	if Equal(a, c) {
		t.Error("numbers of different kinds should not be equal")
	}
}
