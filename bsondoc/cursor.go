package bsondoc

import (
	"fmt"
	"io"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"

	"github.com/signadot/docsink/ir"
	"github.com/signadot/docsink/stream"
)

// Cursor walks an encoded BSON document as a sequence of stream events.
// It implements stream.Cursor, so a document read from the driver can be
// copied into a Builder with stream.CopyStructure.
//
// Int32, Int64, Double and Decimal128 values keep their subtype. Generic
// binary values become EventBinary; other BSON types (object ids, dates,
// binary subtypes, ...) are decoded by the driver and passed through as
// EventEmbedded.
type Cursor struct {
	root    bson.Raw
	stack   []rawFrame
	cur     *stream.Event
	started bool
}

type rawFrame struct {
	doc    bool
	elems  []bson.RawElement
	vals   []bson.RawValue
	i      int
	keyOut bool
}

func (f *rawFrame) len() int {
	if f.doc {
		return len(f.elems)
	}
	return len(f.vals)
}

// NewCursor validates raw and returns a cursor positioned on the
// BeginObject event of the document.
func NewCursor(raw bson.Raw) (*Cursor, error) {
	if err := raw.Validate(); err != nil {
		return nil, fmt.Errorf("invalid bson document: %w", err)
	}
	c := &Cursor{root: raw}
	if _, err := c.Next(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Cursor) Current() *stream.Event {
	return c.cur
}

// Next advances to the next event. It returns io.EOF after the EndObject of
// the document.
func (c *Cursor) Next() (*stream.Event, error) {
	ev, err := c.next()
	if err != nil {
		c.cur = nil
		return nil, err
	}
	c.cur = ev
	return ev, nil
}

func (c *Cursor) next() (*stream.Event, error) {
	if !c.started {
		c.started = true
		return c.open(bson.RawValue{Type: bsontype.EmbeddedDocument, Value: c.root})
	}
	if len(c.stack) == 0 {
		return nil, io.EOF
	}
	top := &c.stack[len(c.stack)-1]
	if top.i == top.len() {
		c.stack = c.stack[:len(c.stack)-1]
		if top.doc {
			return &stream.Event{Type: stream.EventEndObject}, nil
		}
		return &stream.Event{Type: stream.EventEndArray}, nil
	}
	if !top.doc {
		v := top.vals[top.i]
		top.i++
		return c.value(v)
	}
	el := top.elems[top.i]
	if !top.keyOut {
		top.keyOut = true
		return &stream.Event{Type: stream.EventKey, Key: el.Key()}, nil
	}
	top.keyOut = false
	top.i++
	return c.value(el.Value())
}

func (c *Cursor) open(v bson.RawValue) (*stream.Event, error) {
	if v.Type == bsontype.EmbeddedDocument {
		elems, err := v.Document().Elements()
		if err != nil {
			return nil, err
		}
		c.stack = append(c.stack, rawFrame{doc: true, elems: elems})
		return &stream.Event{Type: stream.EventBeginObject}, nil
	}
	vals, err := v.Array().Values()
	if err != nil {
		return nil, err
	}
	c.stack = append(c.stack, rawFrame{vals: vals})
	return &stream.Event{Type: stream.EventBeginArray}, nil
}

func (c *Cursor) value(v bson.RawValue) (*stream.Event, error) {
	switch v.Type {
	case bsontype.EmbeddedDocument, bsontype.Array:
		return c.open(v)
	case bsontype.String:
		return &stream.Event{Type: stream.EventString, String: v.StringValue()}, nil
	case bsontype.Int32:
		return &stream.Event{Type: stream.EventInt32, Int: int64(v.Int32())}, nil
	case bsontype.Int64:
		return &stream.Event{Type: stream.EventInt64, Int: v.Int64()}, nil
	case bsontype.Double:
		return &stream.Event{Type: stream.EventFloat64, Float: v.Double()}, nil
	case bsontype.Decimal128:
		return &stream.Event{Type: stream.EventDecimal, Number: v.Decimal128().String()}, nil
	case bsontype.Boolean:
		return &stream.Event{Type: stream.EventBool, Bool: v.Boolean()}, nil
	case bsontype.Null, bsontype.Undefined:
		return &stream.Event{Type: stream.EventNull}, nil
	case bsontype.Binary:
		sub, data := v.Binary()
		if sub == binaryGeneric {
			return &stream.Event{Type: stream.EventBinary, Bytes: data}, nil
		}
	}
	var x any
	if err := v.Unmarshal(&x); err != nil {
		return nil, fmt.Errorf("decoding bson %s: %w", v.Type, err)
	}
	return &stream.Event{Type: stream.EventEmbedded, Value: x}, nil
}

// Decode copies the BSON document raw into a new Builder and returns the
// resulting object.
func Decode(raw bson.Raw, opts ...stream.BuilderOption) (*ir.Node, error) {
	c, err := NewCursor(raw)
	if err != nil {
		return nil, err
	}
	b := stream.NewBuilder(opts...)
	if err := stream.CopyStructure(c, b); err != nil {
		return nil, err
	}
	return b.Object()
}
