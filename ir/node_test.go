package ir

import (
	"math/big"
	"reflect"
	"testing"

	"github.com/shopspring/decimal"
)

func TestSetReplacesInPlace(t *testing.T) {
	obj := FromKeyVals([]KeyVal{
		{Key: "a", Val: FromInt32(1)},
		{Key: "b", Val: FromInt32(2)},
		{Key: "a", Val: FromInt32(3)},
	})
	if got := obj.Keys(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("got keys %v", got)
	}
	if i, _ := Get(obj, "a").Int(); i != 3 {
		t.Errorf("expected last value, got %d", i)
	}
	if Get(obj, "c") != nil {
		t.Error("expected nil for missing field")
	}
}

func TestCloneIsDeep(t *testing.T) {
	data := []byte{1, 2, 3}
	orig := FromKeyVals([]KeyVal{
		{Key: "bin", Val: FromBytes(data)},
		{Key: "n", Val: FromInt64(5)},
		{Key: "xs", Val: FromSlice([]*Node{FromString("x")})},
	})
	c := orig.Clone()
	if Compare(orig, c) != 0 {
		t.Fatal("clone differs")
	}
	data[0] = 9
	*Get(orig, "n").Int64 = 6
	Get(orig, "xs").Values[0].String = "y"
	if Get(c, "bin").Bytes[0] != 1 {
		t.Error("binary content shared with clone")
	}
	if i, _ := Get(c, "n").Int(); i != 5 {
		t.Error("number shared with clone")
	}
	if Get(c, "xs").Values[0].String != "x" {
		t.Error("array shared with clone")
	}
}

func TestNumberAccessors(t *testing.T) {
	if _, ok := FromString("1").Int(); ok {
		t.Error("string is not an int")
	}
	if f, ok := FromFloat32(0.25).Float32(); !ok || f != 0.25 {
		t.Errorf("got %v %v", f, ok)
	}
	if _, ok := FromFloat64(0.25).Float32(); ok {
		t.Error("float64 is not a float32")
	}
	b, ok := FromInt32(12).BigInt()
	if !ok || b.Int64() != 12 {
		t.Errorf("got %v %v", b, ok)
	}
	huge, _ := new(big.Int).SetString("99999999999999999999999", 10)
	b, ok = FromBigInt(huge).BigInt()
	if !ok || b.Cmp(huge) != 0 {
		t.Errorf("got %v %v", b, ok)
	}
	if _, ok := FromFloat64(1).BigInt(); ok {
		t.Error("float is not an integer")
	}
	d, err := FromDecimal(decimal.RequireFromString("2.50")).Decimal()
	if err != nil || d.String() != "2.5" {
		t.Errorf("got %v %v", d, err)
	}
	if _, err := FromInt64(1).Decimal(); err == nil {
		t.Error("expected error for non decimal")
	}
}
