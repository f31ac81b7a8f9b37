// Package gomap maps Go values to documents and back.
//
// Go values are encoded with encoding/json and the resulting tokens are
// copied into a stream.Builder through a JSONCursor, so struct tags and
// json.Marshaler implementations decide the document's shape.
package gomap

import (
	"bytes"
	"encoding/json"

	"github.com/signadot/docsink/encode"
	"github.com/signadot/docsink/ir"
	"github.com/signadot/docsink/stream"
)

// ToNode converts v to a document.
func ToNode(v any, opts ...stream.BuilderOption) (*ir.Node, error) {
	d, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return ReadNode(NewJSONCursor(bytes.NewReader(d)), opts...)
}

// ReadNode builds the next JSON value of c. It returns io.EOF if there are
// no more values.
func ReadNode(c *JSONCursor, opts ...stream.BuilderOption) (*ir.Node, error) {
	if _, err := c.Next(); err != nil {
		return nil, err
	}
	b := stream.NewBuilder(opts...)
	if err := stream.CopyStructure(c, b); err != nil {
		return nil, err
	}
	return b.Value()
}

// Load decodes node into the value pointed to by p.
func Load(node *ir.Node, p any) error {
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(node, buf, encode.EncodeWire(true)); err != nil {
		return err
	}
	return json.Unmarshal(buf.Bytes(), p)
}
