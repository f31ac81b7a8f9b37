package encode

import (
	"encoding/base64"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"

	"github.com/signadot/docsink/ir"
)

func encodeYAML(node *ir.Node, w io.Writer) error {
	v, err := yamlValue(node)
	if err != nil {
		return err
	}
	d, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	_, err = w.Write(d)
	return err
}

// yamlValue maps node to values go-yaml encodes in document order.
// Big integers and decimals become strings to keep their digits.
func yamlValue(node *ir.Node) (any, error) {
	switch node.Type {
	case ir.ObjectType:
		res := make(yaml.MapSlice, len(node.Fields))
		for i, f := range node.Fields {
			v, err := yamlValue(node.Values[i])
			if err != nil {
				return nil, err
			}
			res[i] = yaml.MapItem{Key: f.String, Value: v}
		}
		return res, nil
	case ir.ArrayType:
		res := make([]any, len(node.Values))
		for i, y := range node.Values {
			v, err := yamlValue(y)
			if err != nil {
				return nil, err
			}
			res[i] = v
		}
		return res, nil
	case ir.NullType:
		return nil, nil
	case ir.BoolType:
		return node.Bool, nil
	case ir.StringType:
		return node.String, nil
	case ir.BinaryType:
		return base64.StdEncoding.EncodeToString(node.Bytes), nil
	case ir.OpaqueType:
		return node.Opaque, nil
	case ir.NumberType:
		switch {
		case node.Int64 != nil:
			return *node.Int64, nil
		case node.Float64 != nil:
			return *node.Float64, nil
		default:
			return node.Number, nil
		}
	}
	return nil, fmt.Errorf("%w: unexpected %s node", ErrEncoding, node.Type)
}
