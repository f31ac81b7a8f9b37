package encode

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/signadot/docsink/format"
	"github.com/signadot/docsink/ir"
)

func sample() *ir.Node {
	return ir.FromKeyVals([]ir.KeyVal{
		{Key: "a", Val: ir.FromInt32(1)},
		{Key: "b", Val: ir.FromSlice([]*ir.Node{ir.FromString("x"), ir.FromString("y")})},
		{Key: "c", Val: ir.NewObject()},
	})
}

func TestEncodeJSON(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	if err := Encode(sample(), buf); err != nil {
		t.Fatal(err)
	}
	want := `{
  "a": 1,
  "b": [
    "x",
    "y"
  ],
  "c": {}
}
`
	if buf.String() != want {
		t.Errorf("got\n%s", buf.String())
	}
}

func TestEncodeWire(t *testing.T) {
	got := MustString(sample(), EncodeWire(true))
	if got != `{"a":1,"b":["x","y"],"c":{}}`+"\n" {
		t.Errorf("got %q", got)
	}
}

func TestEncodeScalars(t *testing.T) {
	tests := []struct {
		name string
		node *ir.Node
		want string
	}{
		{"null", ir.Null(), `null`},
		{"bool", ir.FromBool(true), `true`},
		{"html", ir.FromString("<a&b>"), `"<a&b>"`},
		{"float32", ir.FromFloat32(0.1), `0.1`},
		{"float64", ir.FromFloat64(0.1), `0.1`},
		{"nan", ir.FromFloat64(math.NaN()), `"NaN"`},
		{"binary", ir.FromBytes([]byte("hi")), `"aGk="`},
		{"opaque", ir.FromOpaque(map[string]int{"n": 1}), `{"n":1}`},
		{"big", ir.FromBigInt(nil), `null`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := strings.TrimSpace(MustString(tt.node, EncodeWire(true)))
			if got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestEncodeYAML(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	if err := Encode(sample(), buf, EncodeFormat(format.YAMLFormat)); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	ia := strings.Index(out, "a: 1")
	ib := strings.Index(out, "b:")
	if ia == -1 || ib == -1 || ia > ib {
		t.Errorf("unexpected yaml\n%s", out)
	}
	if !strings.Contains(out, "- x") {
		t.Errorf("unexpected yaml\n%s", out)
	}
}

func TestEncodeUnsupportedFormat(t *testing.T) {
	err := Encode(sample(), bytes.NewBuffer(nil), EncodeFormat(format.BSONFormat))
	if !errors.Is(err, ErrEncoding) {
		t.Errorf("expected encoding error, got %v", err)
	}
	if FormatFromOpts(EncodeFormat(format.YAMLFormat)) != format.YAMLFormat {
		t.Error("unexpected format")
	}
}

func TestEncodeColors(t *testing.T) {
	noColor := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = noColor }()

	plain := MustString(sample(), EncodeWire(true))
	colored := MustString(sample(), EncodeWire(true), EncodeColors(NewColors()))
	if colored == plain || !strings.Contains(colored, "\x1b[") {
		t.Errorf("expected colored output to carry escapes, got %q", colored)
	}
}
