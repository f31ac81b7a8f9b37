package stream

import (
	"errors"
	"fmt"
	"io"

	"github.com/signadot/docsink/ir"
)

// NodeToEvents converts an ir.Node to a sequence of events.
// Replaying the events into a Builder yields a node equal to node.
func NodeToEvents(node *ir.Node) ([]Event, error) {
	c := &collector{}
	if err := WriteNode(node, c); err != nil {
		return nil, err
	}
	return c.events, nil
}

type collector struct {
	events []Event
}

func (c *collector) WriteEvent(ev *Event) error {
	c.events = append(c.events, *ev)
	return nil
}

type walkFrame struct {
	node *ir.Node
	i    int
}

// WriteNode writes the events of node to sink.
func WriteNode(node *ir.Node, sink EventSink) error {
	if node == nil {
		return errors.New("nil node")
	}
	var stack []walkFrame
	visit := func(n *ir.Node) error {
		if n == nil {
			return errors.New("nil child node")
		}
		if n.Type.IsLeaf() {
			ev, err := scalarEvent(n)
			if err != nil {
				return err
			}
			return sink.WriteEvent(ev)
		}
		if n.Type == ir.ObjectType {
			if len(n.Fields) != len(n.Values) {
				return fmt.Errorf("object with %d fields and %d values", len(n.Fields), len(n.Values))
			}
			stack = append(stack, walkFrame{node: n})
			return sink.WriteEvent(&Event{Type: EventBeginObject})
		}
		stack = append(stack, walkFrame{node: n})
		return sink.WriteEvent(&Event{Type: EventBeginArray})
	}
	if err := visit(node); err != nil {
		return err
	}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		n := top.node
		if top.i == len(n.Values) {
			stack = stack[:len(stack)-1]
			end := EventEndArray
			if n.Type == ir.ObjectType {
				end = EventEndObject
			}
			if err := sink.WriteEvent(&Event{Type: end}); err != nil {
				return err
			}
			continue
		}
		i := top.i
		top.i++
		if n.Type == ir.ObjectType {
			if err := sink.WriteEvent(&Event{Type: EventKey, Key: n.Fields[i].String}); err != nil {
				return err
			}
		}
		if err := visit(n.Values[i]); err != nil {
			return err
		}
	}
	return nil
}

func scalarEvent(n *ir.Node) (*Event, error) {
	switch n.Type {
	case ir.NullType:
		return &Event{Type: EventNull}, nil
	case ir.BoolType:
		return &Event{Type: EventBool, Bool: n.Bool}, nil
	case ir.StringType:
		return &Event{Type: EventString, String: n.String}, nil
	case ir.BinaryType:
		return &Event{Type: EventBinary, Bytes: n.Bytes}, nil
	case ir.OpaqueType:
		return &Event{Type: EventEmbedded, Value: n.Opaque}, nil
	case ir.NumberType:
		switch n.NumKind {
		case ir.Int32Kind, ir.Int64Kind:
			i, ok := n.Int()
			if !ok {
				return nil, fmt.Errorf("%s number without integer value", n.NumKind)
			}
			t := EventInt64
			if n.NumKind == ir.Int32Kind {
				t = EventInt32
			}
			return &Event{Type: t, Int: i}, nil
		case ir.Float32Kind, ir.Float64Kind:
			f, ok := n.Float()
			if !ok {
				return nil, fmt.Errorf("%s number without float value", n.NumKind)
			}
			t := EventFloat64
			if n.NumKind == ir.Float32Kind {
				t = EventFloat32
			}
			return &Event{Type: t, Float: f}, nil
		case ir.BigIntKind:
			return &Event{Type: EventBigInt, Number: n.Number}, nil
		case ir.DecimalKind:
			return &Event{Type: EventDecimal, Number: n.Number}, nil
		}
		return nil, fmt.Errorf("unknown number kind %s", n.NumKind)
	}
	return nil, fmt.Errorf("no event for %s node", n.Type)
}

// EventsToNode converts a sequence of events to an ir.Node.
func EventsToNode(events []Event) (*ir.Node, error) {
	if len(events) == 0 {
		return nil, nil
	}
	b := NewBuilder()
	for i := range events {
		if err := b.WriteEvent(&events[i]); err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
	}
	return b.Value()
}

// ReadNode reads one document from r. It stops after the event completing
// the document, leaving any further events unread.
func ReadNode(r EventReader, opts ...BuilderOption) (*ir.Node, error) {
	b := NewBuilder(opts...)
	for !b.Done() {
		ev, err := r.ReadEvent()
		if err != nil {
			if errors.Is(err, io.EOF) && b.Depth() > 0 {
				return nil, fmt.Errorf("%w at %q", io.ErrUnexpectedEOF, b.CurrentPath())
			}
			return nil, err
		}
		if err := b.WriteEvent(ev); err != nil {
			return nil, err
		}
	}
	return b.Value()
}
