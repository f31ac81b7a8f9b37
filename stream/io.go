package stream

import (
	"encoding/json"
	"errors"
	"io"
)

// EventReader provides events from a source (slice, file, driver cursor).
// ReadEvent returns io.EOF when the source is exhausted.
type EventReader interface {
	ReadEvent() (*Event, error)
}

// EventSink receives events (builder, writer, etc.).
type EventSink interface {
	WriteEvent(*Event) error
}

// Cursor is a pull-style event source positioned on one event at a time.
type Cursor interface {
	// Current returns the event the cursor is positioned on, or nil
	// before the first event and after the last.
	Current() *Event
	// Next advances the cursor and returns the new current event.
	Next() (*Event, error)
}

// EmptyEventReader provides an empty event stream.
type EmptyEventReader struct{}

// NewEmptyEventReader creates an empty event reader.
func NewEmptyEventReader() *EmptyEventReader {
	return &EmptyEventReader{}
}

// ReadEvent returns io.EOF immediately (empty stream).
func (r *EmptyEventReader) ReadEvent() (*Event, error) {
	return nil, io.EOF
}

// SliceReader reads events from a slice.
type SliceReader struct {
	events []Event
	i      int
}

func NewSliceReader(events []Event) *SliceReader {
	return &SliceReader{events: events}
}

func (r *SliceReader) ReadEvent() (*Event, error) {
	if r.i >= len(r.events) {
		return nil, io.EOF
	}
	ev := &r.events[r.i]
	r.i++
	return ev, nil
}

// ReaderCursor adapts an EventReader to a Cursor.
type ReaderCursor struct {
	r   EventReader
	cur *Event
}

// NewCursor creates a cursor positioned on the first event of r.
func NewCursor(r EventReader) (*ReaderCursor, error) {
	c := &ReaderCursor{r: r}
	if _, err := c.Next(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *ReaderCursor) Current() *Event {
	return c.cur
}

func (c *ReaderCursor) Next() (*Event, error) {
	ev, err := c.r.ReadEvent()
	if err != nil {
		c.cur = nil
		return nil, err
	}
	c.cur = ev
	return ev, nil
}

// JSONEventReader reads events encoded as a sequence of JSON values.
type JSONEventReader struct {
	dec *json.Decoder
}

// NewJSONEventReader creates an event reader from a reader positioned at
// JSON encoded events.
func NewJSONEventReader(r io.Reader) *JSONEventReader {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return &JSONEventReader{dec: dec}
}

// ReadEvent reads the next JSON encoded event.
func (r *JSONEventReader) ReadEvent() (*Event, error) {
	evt := &Event{}
	if err := r.dec.Decode(evt); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, err
	}
	return evt, nil
}

// JSONEventWriter writes events to an io.Writer, one JSON value per line.
type JSONEventWriter struct {
	enc *json.Encoder
}

// NewJSONEventWriter creates an event writer that writes to w.
func NewJSONEventWriter(w io.Writer) *JSONEventWriter {
	return &JSONEventWriter{enc: json.NewEncoder(w)}
}

// WriteEvent writes an event as a line of JSON.
func (w *JSONEventWriter) WriteEvent(ev *Event) error {
	return w.enc.Encode(ev)
}
