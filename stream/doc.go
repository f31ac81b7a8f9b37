// Package stream builds documents from structural events.
//
// A Builder receives push-style calls (BeginObject, WriteKey, WriteInt32,
// EndObject, ...) and accumulates a single ir.Node. Every call has an Event
// counterpart, so recorded event sequences replay into a Builder through
// WriteEvent, and CopyStructure replicates a whole value from a pull-style
// Cursor without building an intermediate copy.
//
// # Example: Building
//
//	b := stream.NewBuilder()
//	b.BeginObject()
//	b.WriteKey("a")
//	b.WriteInt32(1)
//	b.WriteKey("b")
//	b.BeginArray()
//	b.WriteString("x")
//	b.WriteString("y")
//	b.EndArray()
//	b.EndObject()
//	doc, err := b.Object() // {a: 1, b: [x, y]}
//
// # Example: Copying
//
//	c, err := stream.NewCursor(stream.NewSliceReader(events))
//	if err != nil {
//	    return err
//	}
//	b := stream.NewBuilder()
//	if err := stream.CopyStructure(c, b); err != nil {
//	    return err
//	}
//	doc, err := b.Value()
//
// # Errors
//
// Errors are *Error values wrapping ErrInvalidState, ErrUnsupported,
// ErrEncoding or ErrInvalidArgument; test them with errors.Is. Grammar
// violations (mismatched ends, keys outside objects, values in objects
// without a key, a second root value, reads before the document is
// complete) fail with ErrInvalidState and leave the Builder unusable.
//
// # Concurrency
//
// Builders, cursors and the State they use are not safe for concurrent
// use. A Builder holds exactly one document; use a new Builder for the
// next one.
package stream
