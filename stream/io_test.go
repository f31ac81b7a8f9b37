package stream

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSliceReader(t *testing.T) {
	events := []Event{
		{Type: EventBeginObject},
		{Type: EventKey, Key: "key"},
		{Type: EventString, String: "value"},
		{Type: EventEndObject},
	}
	r := NewSliceReader(events)
	for i := range events {
		ev, err := r.ReadEvent()
		if err != nil {
			t.Fatalf("event %d: %v", i, err)
		}
		if ev.Type != events[i].Type {
			t.Errorf("event %d: expected %s, got %s", i, events[i].Type, ev.Type)
		}
	}
	if _, err := r.ReadEvent(); err != io.EOF {
		t.Errorf("expected io.EOF, got %v", err)
	}
}

func TestEmptyEventReader(t *testing.T) {
	if _, err := NewEmptyEventReader().ReadEvent(); err != io.EOF {
		t.Errorf("expected io.EOF, got %v", err)
	}
	if _, err := NewCursor(NewEmptyEventReader()); !errors.Is(err, io.EOF) {
		t.Errorf("expected io.EOF, got %v", err)
	}
}

func TestReaderCursor(t *testing.T) {
	c, err := NewCursor(NewSliceReader([]Event{{Type: EventNull}, {Type: EventBool, Bool: true}}))
	if err != nil {
		t.Fatal(err)
	}
	if c.Current().Type != EventNull {
		t.Errorf("expected first event, got %s", c.Current().Type)
	}
	ev, err := c.Next()
	if err != nil || ev.Type != EventBool || c.Current() != ev {
		t.Errorf("unexpected %v %v", ev, err)
	}
	if _, err := c.Next(); err != io.EOF {
		t.Errorf("expected io.EOF, got %v", err)
	}
	if c.Current() != nil {
		t.Error("expected no current event after the last")
	}
}

func TestJSONEvents(t *testing.T) {
	events := []Event{
		{Type: EventBeginObject},
		{Type: EventKey, Key: "n"},
		{Type: EventInt32, Int: 42},
		{Type: EventKey, Key: "d"},
		{Type: EventDecimal, Number: "0.5"},
		{Type: EventKey, Key: "x"},
		{Type: EventBinary, Bytes: []byte{0, 255}},
		{Type: EventEndObject},
	}
	buf := bytes.NewBuffer(nil)
	w := NewJSONEventWriter(buf)
	for i := range events {
		if err := w.WriteEvent(&events[i]); err != nil {
			t.Fatal(err)
		}
	}
	if !strings.HasPrefix(buf.String(), `{"t":"BeginObject"}`) {
		t.Errorf("unexpected encoding %q", buf.String())
	}
	r := NewJSONEventReader(buf)
	var got []Event
	for {
		ev, err := r.ReadEvent()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
		got = append(got, *ev)
	}
	if diff := cmp.Diff(events, got); diff != "" {
		t.Errorf("events differ (-want +got):\n%s", diff)
	}
}

func TestJSONEventReaderBadType(t *testing.T) {
	r := NewJSONEventReader(strings.NewReader(`{"t":"Nope"}`))
	if _, err := r.ReadEvent(); err == nil || err == io.EOF {
		t.Errorf("expected decode error, got %v", err)
	}
}

func TestReadNodeRejectsNarrowing(t *testing.T) {
	for _, in := range []string{
		`{"t":"Int32","i":4294967297}`,
		`{"t":"Float32","f":1e300}`,
	} {
		node, err := ReadNode(NewJSONEventReader(strings.NewReader(in)))
		if !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("%s: expected invalid argument, got %v, %v", in, node, err)
		}
	}
}
