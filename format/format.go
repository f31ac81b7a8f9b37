package format

import (
	"errors"
	"fmt"
)

type Format int

const (
	JSONFormat Format = iota
	YAMLFormat
	// ExtJSONFormat is MongoDB extended JSON, produced from driver values.
	ExtJSONFormat
	// BSONFormat is binary BSON.
	BSONFormat
	// IRFormat is the JSON form of the ir.Node itself, keeping number kinds.
	IRFormat
)

var ErrBadFormat = errors.New("bad format")

func ParseFormat(v string) (Format, error) {
	f, ok := map[string]Format{
		"j":       JSONFormat,
		"json":    JSONFormat,
		"y":       YAMLFormat,
		"yaml":    YAMLFormat,
		"x":       ExtJSONFormat,
		"extjson": ExtJSONFormat,
		"b":       BSONFormat,
		"bson":    BSONFormat,
		"ir":      IRFormat,
	}[v]
	if ok {
		return f, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBadFormat, v)
}

func (f Format) String() string {
	d, err := f.MarshalText()
	if err != nil {
		return err.Error()
	}
	return string(d)
}

func (f Format) MarshalText() ([]byte, error) {
	switch f {
	case JSONFormat:
		return []byte("json"), nil
	case YAMLFormat:
		return []byte("yaml"), nil
	case ExtJSONFormat:
		return []byte("extjson"), nil
	case BSONFormat:
		return []byte("bson"), nil
	case IRFormat:
		return []byte("ir"), nil
	default:
		return nil, fmt.Errorf("<err: %d is not a format>", f)
	}
}

func (f *Format) UnmarshalText(d []byte) error {
	pf, err := ParseFormat(string(d))
	if err != nil {
		return err
	}
	*f = pf
	return nil
}

func (f Format) IsJSON() bool    { return f == JSONFormat }
func (f Format) IsYAML() bool    { return f == YAMLFormat }
func (f Format) IsExtJSON() bool { return f == ExtJSONFormat }
func (f Format) IsBSON() bool    { return f == BSONFormat }
func (f Format) IsIR() bool      { return f == IRFormat }

// IsBinary reports whether the format is not text.
func (f Format) IsBinary() bool { return f == BSONFormat }

// Suffix returns the file extension for this format (including the dot).
func (f Format) Suffix() string {
	switch f {
	case JSONFormat, ExtJSONFormat, IRFormat:
		return ".json"
	case YAMLFormat:
		return ".yaml"
	case BSONFormat:
		return ".bson"
	default:
		return ""
	}
}
