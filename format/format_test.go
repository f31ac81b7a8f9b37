package format

import (
	"errors"
	"testing"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"j", JSONFormat},
		{"json", JSONFormat},
		{"y", YAMLFormat},
		{"yaml", YAMLFormat},
		{"x", ExtJSONFormat},
		{"extjson", ExtJSONFormat},
		{"b", BSONFormat},
		{"bson", BSONFormat},
		{"ir", IRFormat},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if err != nil {
			t.Errorf("%s: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%s: got %s, want %s", tt.in, got, tt.want)
		}
	}
	if _, err := ParseFormat("toml"); !errors.Is(err, ErrBadFormat) {
		t.Errorf("expected bad format, got %v", err)
	}
}

func TestFormatText(t *testing.T) {
	for _, f := range []Format{JSONFormat, YAMLFormat, ExtJSONFormat, BSONFormat, IRFormat} {
		d, err := f.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var g Format
		if err := g.UnmarshalText(d); err != nil {
			t.Fatal(err)
		}
		if g != f {
			t.Errorf("got %s, want %s", g, f)
		}
	}
	if !BSONFormat.IsBinary() || JSONFormat.IsBinary() {
		t.Error("unexpected IsBinary")
	}
	if ExtJSONFormat.Suffix() != ".json" || YAMLFormat.Suffix() != ".yaml" {
		t.Error("unexpected suffix")
	}
}
