package ir

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestIRJSONRoundTrip(t *testing.T) {
	node := FromKeyVals([]KeyVal{
		{Key: "s", Val: FromString("x")},
		{Key: "b", Val: FromBool(true)},
		{Key: "i", Val: FromInt32(3)},
		{Key: "d", Val: FromDecimal(decimal.RequireFromString("0.1"))},
		{Key: "x", Val: FromBytes([]byte{0, 1})},
		{Key: "a", Val: FromSlice([]*Node{Null(), FromFloat32(1.5)})},
	})
	d, err := json.Marshal(node)
	if err != nil {
		t.Fatal(err)
	}
	got := &Node{}
	if err := json.Unmarshal(d, got); err != nil {
		t.Fatal(err)
	}
	if Compare(node, got) != 0 {
		t.Errorf("round trip differs: %s", d)
	}
}

func TestIRJSONInvalid(t *testing.T) {
	for _, in := range []string{
		`{"type":"Object","values":[{"type":"Null"}]}`,
		`{"type":"Number","int":1}`,
		`{"type":"Object","fields":[{"type":"Null"}],"values":[{"type":"Null"}]}`,
	} {
		if err := json.Unmarshal([]byte(in), &Node{}); err == nil {
			t.Errorf("expected error for %s", in)
		}
	}
}
