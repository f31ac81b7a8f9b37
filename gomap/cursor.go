package gomap

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/signadot/docsink/stream"
)

// JSONCursor presents JSON text as stream events. It implements
// stream.Cursor and reads a sequence of JSON values from its input.
//
// Integers which fit in 32 bits become EventInt32, other integers
// EventInt64 or EventBigInt. Other numbers become EventFloat64, or
// EventDecimal when they do not fit a float64.
type JSONCursor struct {
	dec   *json.Decoder
	stack []jsonFrame
	cur   *stream.Event
}

type jsonFrame struct {
	object  bool
	wantKey bool
}

// NewJSONCursor returns a cursor over the JSON values of r. The cursor is
// not positioned on an event until the first call to Next.
func NewJSONCursor(r io.Reader) *JSONCursor {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return &JSONCursor{dec: dec}
}

func (c *JSONCursor) Current() *stream.Event {
	return c.cur
}

// Next advances to the next event. It returns io.EOF when the input ends
// between values.
func (c *JSONCursor) Next() (*stream.Event, error) {
	ev, err := c.next()
	if err != nil {
		c.cur = nil
		return nil, err
	}
	c.cur = ev
	return ev, nil
}

func (c *JSONCursor) next() (*stream.Event, error) {
	tok, err := c.dec.Token()
	if err != nil {
		if err == io.EOF && len(c.stack) > 0 {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	switch x := tok.(type) {
	case json.Delim:
		switch x {
		case '{':
			c.stack = append(c.stack, jsonFrame{object: true, wantKey: true})
			return &stream.Event{Type: stream.EventBeginObject}, nil
		case '[':
			c.stack = append(c.stack, jsonFrame{})
			return &stream.Event{Type: stream.EventBeginArray}, nil
		case '}':
			c.stack = c.stack[:len(c.stack)-1]
			c.valueDone()
			return &stream.Event{Type: stream.EventEndObject}, nil
		case ']':
			c.stack = c.stack[:len(c.stack)-1]
			c.valueDone()
			return &stream.Event{Type: stream.EventEndArray}, nil
		}
		return nil, fmt.Errorf("unexpected delimiter %s", x)
	case string:
		if n := len(c.stack); n > 0 && c.stack[n-1].wantKey {
			c.stack[n-1].wantKey = false
			return &stream.Event{Type: stream.EventKey, Key: x}, nil
		}
		c.valueDone()
		return &stream.Event{Type: stream.EventString, String: x}, nil
	case json.Number:
		c.valueDone()
		return numberEvent(x), nil
	case bool:
		c.valueDone()
		return &stream.Event{Type: stream.EventBool, Bool: x}, nil
	case nil:
		c.valueDone()
		return &stream.Event{Type: stream.EventNull}, nil
	}
	return nil, fmt.Errorf("unexpected json token %T", tok)
}

func (c *JSONCursor) valueDone() {
	if n := len(c.stack); n > 0 && c.stack[n-1].object {
		c.stack[n-1].wantKey = true
	}
}

func numberEvent(n json.Number) *stream.Event {
	s := string(n)
	if !strings.ContainsAny(s, ".eE") {
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return &stream.Event{Type: stream.EventBigInt, Number: s}
		}
		if i >= math.MinInt32 && i <= math.MaxInt32 {
			return &stream.Event{Type: stream.EventInt32, Int: i}
		}
		return &stream.Event{Type: stream.EventInt64, Int: i}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return &stream.Event{Type: stream.EventDecimal, Number: s}
	}
	return &stream.Event{Type: stream.EventFloat64, Float: f}
}
