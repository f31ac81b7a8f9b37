package stream

import (
	"errors"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func cursorOf(t *testing.T, events []Event) *ReaderCursor {
	t.Helper()
	c, err := NewCursor(NewSliceReader(events))
	if err != nil {
		t.Fatal(err)
	}
	return c
}

var subtypeEvents = []Event{
	{Type: EventBeginObject},
	{Type: EventKey, Key: "i32"},
	{Type: EventInt32, Int: 7},
	{Type: EventKey, Key: "i64"},
	{Type: EventInt64, Int: 1 << 40},
	{Type: EventKey, Key: "big"},
	{Type: EventBigInt, Number: "123456789012345678901234567890"},
	{Type: EventKey, Key: "f32"},
	{Type: EventFloat32, Float: 0.5},
	{Type: EventKey, Key: "f64"},
	{Type: EventFloat64, Float: 0.1},
	{Type: EventKey, Key: "dec"},
	{Type: EventDecimal, Number: "1.25"},
	{Type: EventKey, Key: "list"},
	{Type: EventBeginArray},
	{Type: EventString, String: "x"},
	{Type: EventBeginObject},
	{Type: EventKey, Key: "ok"},
	{Type: EventBool, Bool: true},
	{Type: EventEndObject},
	{Type: EventNull},
	{Type: EventBinary, Bytes: []byte{1, 2}},
	{Type: EventEndArray},
	{Type: EventEndObject},
}

func TestCopyStructureRoundTrip(t *testing.T) {
	c := cursorOf(t, subtypeEvents)
	b := NewBuilder()
	if err := CopyStructure(c, b); err != nil {
		t.Fatal(err)
	}
	if ev := c.Current(); ev == nil || ev.Type != EventEndObject {
		t.Errorf("expected cursor on closing end, got %v", ev)
	}
	if _, err := c.Next(); !errors.Is(err, io.EOF) {
		t.Errorf("expected nothing after the value, got %v", err)
	}
	node, err := b.Object()
	if err != nil {
		t.Fatal(err)
	}
	got, err := NodeToEvents(node)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(subtypeEvents, got); diff != "" {
		t.Errorf("events differ (-want +got):\n%s", diff)
	}
}

func TestCopyStructureKey(t *testing.T) {
	events := []Event{
		{Type: EventKey, Key: "a"},
		{Type: EventBeginArray},
		{Type: EventInt64, Int: 1},
		{Type: EventEndArray},
		{Type: EventKey, Key: "b"},
	}
	c := cursorOf(t, events)
	b := NewBuilder()
	if err := b.BeginObject(); err != nil {
		t.Fatal(err)
	}
	if err := CopyStructure(c, b); err != nil {
		t.Fatal(err)
	}
	if ev := c.Current(); ev.Type != EventEndArray {
		t.Errorf("expected cursor on end array, got %s", ev.Type)
	}
	if err := b.EndObject(); err != nil {
		t.Fatal(err)
	}
	node, err := b.Object()
	if err != nil {
		t.Fatal(err)
	}
	if got := wire(node); got != `{"a":[1]}` {
		t.Errorf("got %s", got)
	}
}

func TestCopyStructureScalar(t *testing.T) {
	c := cursorOf(t, []Event{{Type: EventDecimal, Number: "10.5"}, {Type: EventNull}})
	b := NewBuilder()
	if err := CopyStructure(c, b); err != nil {
		t.Fatal(err)
	}
	if c.Current().Type != EventDecimal {
		t.Errorf("cursor moved past a scalar")
	}
	node, err := b.Value()
	if err != nil {
		t.Fatal(err)
	}
	if node.Number != "10.5" {
		t.Errorf("got %s", wire(node))
	}
}

func TestCopyStructureEmbedded(t *testing.T) {
	p := &point{X: 3}
	c := cursorOf(t, []Event{{Type: EventEmbedded, Value: p}})
	b := NewBuilder()
	if err := CopyStructure(c, b); err != nil {
		t.Fatal(err)
	}
	node, err := b.Value()
	if err != nil {
		t.Fatal(err)
	}
	if node.Opaque != p {
		t.Errorf("got %v", node.Opaque)
	}
}

func TestCopyStructureErrors(t *testing.T) {
	tests := []struct {
		name   string
		events []Event
		want   error
	}{
		{"starts on end", []Event{{Type: EventEndArray}}, ErrInvalidState},
		{"key then end", []Event{{Type: EventKey, Key: "a"}, {Type: EventEndObject}}, ErrInvalidState},
		{"mismatched end", []Event{{Type: EventBeginArray}, {Type: EventEndObject}}, ErrInvalidState},
		{"truncated", []Event{{Type: EventBeginArray}, {Type: EventNull}}, io.ErrUnexpectedEOF},
		{"key at end", []Event{{Type: EventKey, Key: "a"}}, io.ErrUnexpectedEOF},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := cursorOf(t, tt.events)
			b := NewBuilder()
			if tt.events[0].Type == EventKey {
				if err := b.BeginObject(); err != nil {
					t.Fatal(err)
				}
			}
			err := CopyStructure(c, b)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestCopyStructureUnpositioned(t *testing.T) {
	c := &ReaderCursor{r: NewEmptyEventReader()}
	if err := CopyStructure(c, NewBuilder()); !errors.Is(err, ErrInvalidState) {
		t.Errorf("expected invalid state, got %v", err)
	}
	if err := CopyEvent(c, NewBuilder()); !errors.Is(err, ErrInvalidState) {
		t.Errorf("expected invalid state, got %v", err)
	}
}

func TestCopyEvent(t *testing.T) {
	c := cursorOf(t, []Event{{Type: EventBeginArray}, {Type: EventInt32, Int: 4}, {Type: EventEndArray}})
	b := NewBuilder()
	for ev := c.Current(); ev != nil; {
		if err := CopyEvent(c, b); err != nil {
			t.Fatal(err)
		}
		var err error
		ev, err = c.Next()
		if err != nil && !errors.Is(err, io.EOF) {
			t.Fatal(err)
		}
	}
	node, err := b.Array()
	if err != nil {
		t.Fatal(err)
	}
	if got := wire(node); got != `[4]` {
		t.Errorf("got %s", got)
	}
}

func TestCopyStructureDeep(t *testing.T) {
	const depth = 10000
	events := make([]Event, 0, 2*depth+2)
	events = append(events, Event{Type: EventKey, Key: "deep"})
	for range depth {
		events = append(events, Event{Type: EventBeginArray})
	}
	for range depth {
		events = append(events, Event{Type: EventEndArray})
	}
	c := cursorOf(t, events)
	b := NewBuilder()
	if err := b.BeginObject(); err != nil {
		t.Fatal(err)
	}
	if err := CopyStructure(c, b); err != nil {
		t.Fatal(err)
	}
	if err := b.EndObject(); err != nil {
		t.Fatal(err)
	}
	node, err := b.Object()
	if err != nil {
		t.Fatal(err)
	}
	got, err := NodeToEvents(node)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2*depth+3 {
		t.Errorf("expected %d events, got %d", 2*depth+3, len(got))
	}
}
