package bsondoc

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/signadot/docsink/ir"
)

// binaryGeneric is the BSON generic binary subtype.
const binaryGeneric byte = 0x00

var ErrNotDocument = errors.New("not a document")

// ToBSON converts a document node into the values the driver encodes:
// objects become bson.D in key order, arrays bson.A, big integers and
// decimals primitive.Decimal128, binary content primitive.Binary. Opaque
// values are passed through unchanged.
//
// BSON has no single precision type, so Float32Kind numbers are encoded
// as doubles by the driver.
func ToBSON(n *ir.Node) (any, error) {
	switch n.Type {
	case ir.ObjectType:
		d := make(bson.D, len(n.Fields))
		for i, f := range n.Fields {
			v, err := ToBSON(n.Values[i])
			if err != nil {
				return nil, fmt.Errorf("%s: %w", f.String, err)
			}
			d[i] = bson.E{Key: f.String, Value: v}
		}
		return d, nil
	case ir.ArrayType:
		a := make(bson.A, len(n.Values))
		for i, y := range n.Values {
			v, err := ToBSON(y)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			a[i] = v
		}
		return a, nil
	case ir.NullType:
		return nil, nil
	case ir.BoolType:
		return n.Bool, nil
	case ir.StringType:
		return n.String, nil
	case ir.BinaryType:
		return primitive.Binary{Subtype: binaryGeneric, Data: n.Bytes}, nil
	case ir.OpaqueType:
		return n.Opaque, nil
	case ir.NumberType:
		return number(n)
	}
	return nil, fmt.Errorf("unexpected %s node", n.Type)
}

func number(n *ir.Node) (any, error) {
	switch n.NumKind {
	case ir.Int32Kind:
		i, ok := n.Int()
		if !ok {
			return nil, fmt.Errorf("%s number without value", n.NumKind)
		}
		return int32(i), nil
	case ir.Int64Kind:
		i, ok := n.Int()
		if !ok {
			return nil, fmt.Errorf("%s number without value", n.NumKind)
		}
		return i, nil
	case ir.Float32Kind:
		f, ok := n.Float32()
		if !ok {
			return nil, fmt.Errorf("%s number without value", n.NumKind)
		}
		return f, nil
	case ir.Float64Kind:
		f, ok := n.Float()
		if !ok {
			return nil, fmt.Errorf("%s number without value", n.NumKind)
		}
		return f, nil
	case ir.BigIntKind, ir.DecimalKind:
		d, err := primitive.ParseDecimal128(n.Number)
		if err != nil {
			return nil, fmt.Errorf("%s %s does not fit decimal128: %w", n.NumKind, n.Number, err)
		}
		return d, nil
	}
	return nil, fmt.Errorf("unknown number kind %s", n.NumKind)
}

// Document converts an object node to a bson.D.
func Document(n *ir.Node) (bson.D, error) {
	if n.Type != ir.ObjectType {
		return nil, fmt.Errorf("%w: root is %s", ErrNotDocument, n.Type)
	}
	v, err := ToBSON(n)
	if err != nil {
		return nil, err
	}
	return v.(bson.D), nil
}

// Marshal encodes an object node as BSON.
func Marshal(n *ir.Node) ([]byte, error) {
	d, err := Document(n)
	if err != nil {
		return nil, err
	}
	return bson.Marshal(d)
}

// MarshalExtJSON encodes an object node as MongoDB extended JSON.
func MarshalExtJSON(n *ir.Node, canonical bool) ([]byte, error) {
	d, err := Document(n)
	if err != nil {
		return nil, err
	}
	return bson.MarshalExtJSON(d, canonical, false)
}
