package encode

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/signadot/docsink/format"
	"github.com/signadot/docsink/ir"
)

var ErrEncoding = errors.New("encoding error")

type EncState struct {
	depth, indent int

	format format.Format
	wire   bool

	Color func(ir.Type, ColorAttr, string) string
}

// Encode writes the document node to w as JSON or YAML.
func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{
		indent: 2,
	}
	for _, opt := range opts {
		opt(es)
	}
	switch es.format {
	case format.JSONFormat:
	case format.YAMLFormat:
		return encodeYAML(node, w)
	default:
		return fmt.Errorf("%w: cannot encode %s", ErrEncoding, es.format)
	}
	if err := encode(node, w, es); err != nil {
		return err
	}
	return writeString(w, "\n")
}

// Helper functions for writing
func writeNL(w io.Writer, es *EncState) error {
	if es.wire {
		return nil
	}
	indentString := strings.Repeat(strings.Repeat(" ", es.indent), es.depth)
	return writeString(w, "\n"+indentString)
}

func writeString(w io.Writer, s string) error {
	_, err := w.Write([]byte(s))
	return err
}

func (es *EncState) paint(t ir.Type, a ColorAttr, s string) string {
	if es.Color == nil {
		return s
	}
	return es.Color(t, a, s)
}

func encode(node *ir.Node, w io.Writer, es *EncState) error {
	switch node.Type {
	case ir.ObjectType:
		return encodeObject(node, w, es)
	case ir.ArrayType:
		return encodeArray(node, w, es)
	}
	s, err := scalarText(node)
	if err != nil {
		return err
	}
	return writeString(w, es.paint(node.Type, ValueColor, s))
}

func encodeObject(node *ir.Node, w io.Writer, es *EncState) error {
	if err := writeString(w, es.paint(ir.ObjectType, SepColor, "{")); err != nil {
		return err
	}
	if len(node.Fields) == 0 {
		return writeString(w, es.paint(ir.ObjectType, SepColor, "}"))
	}
	es.depth++
	for i, f := range node.Fields {
		if i > 0 {
			if err := writeString(w, es.paint(ir.ObjectType, SepColor, ",")); err != nil {
				return err
			}
		}
		if err := writeNL(w, es); err != nil {
			return err
		}
		key, err := quote(f.String)
		if err != nil {
			return err
		}
		sep := ": "
		if es.wire {
			sep = ":"
		}
		if err := writeString(w, es.paint(ir.ObjectType, FieldColor, key)+es.paint(ir.ObjectType, SepColor, sep)); err != nil {
			return err
		}
		if err := encode(node.Values[i], w, es); err != nil {
			return err
		}
	}
	es.depth--
	if err := writeNL(w, es); err != nil {
		return err
	}
	return writeString(w, es.paint(ir.ObjectType, SepColor, "}"))
}

func encodeArray(node *ir.Node, w io.Writer, es *EncState) error {
	if err := writeString(w, es.paint(ir.ArrayType, SepColor, "[")); err != nil {
		return err
	}
	if len(node.Values) == 0 {
		return writeString(w, es.paint(ir.ArrayType, SepColor, "]"))
	}
	es.depth++
	for i, v := range node.Values {
		if i > 0 {
			if err := writeString(w, es.paint(ir.ArrayType, SepColor, ",")); err != nil {
				return err
			}
		}
		if err := writeNL(w, es); err != nil {
			return err
		}
		if err := encode(v, w, es); err != nil {
			return err
		}
	}
	es.depth--
	if err := writeNL(w, es); err != nil {
		return err
	}
	return writeString(w, es.paint(ir.ArrayType, SepColor, "]"))
}

func quote(s string) (string, error) {
	buf := bytes.NewBuffer(nil)
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

func scalarText(node *ir.Node) (string, error) {
	switch node.Type {
	case ir.NullType:
		return "null", nil
	case ir.BoolType:
		return strconv.FormatBool(node.Bool), nil
	case ir.StringType:
		return quote(node.String)
	case ir.BinaryType:
		return quote(base64.StdEncoding.EncodeToString(node.Bytes))
	case ir.NumberType:
		return numberText(node)
	case ir.OpaqueType:
		d, err := json.Marshal(node.Opaque)
		if err != nil {
			return quote(fmt.Sprintf("%v", node.Opaque))
		}
		return string(d), nil
	}
	return "", fmt.Errorf("%w: unexpected %s node", ErrEncoding, node.Type)
}

func numberText(node *ir.Node) (string, error) {
	switch {
	case node.Int64 != nil:
		return strconv.FormatInt(*node.Int64, 10), nil
	case node.Float64 != nil:
		f := *node.Float64
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return quote(strconv.FormatFloat(f, 'g', -1, 64))
		}
		bits := 64
		if node.NumKind == ir.Float32Kind {
			bits = 32
		}
		return strconv.FormatFloat(f, 'g', -1, bits), nil
	case node.Number != "":
		return node.Number, nil
	}
	return "", fmt.Errorf("%w: %s number without value", ErrEncoding, node.NumKind)
}

// MustString encodes node as JSON and panics on error.
func MustString(node *ir.Node, opts ...EncodeOption) string {
	buf := bytes.NewBuffer(nil)
	if err := Encode(node, buf, opts...); err != nil {
		panic(err)
	}
	return buf.String()
}
