package stream

import (
	"errors"
	"fmt"
	"io"

	"github.com/signadot/docsink/debug"
)

// CopyEvent writes the event c is positioned on to b.
func CopyEvent(c Cursor, b *Builder) error {
	ev := c.Current()
	if ev == nil {
		return invalidState("cursor is not positioned on an event")
	}
	return b.WriteEvent(ev)
}

// CopyStructure copies the value c is positioned on to b.
//
// If c is positioned on a key, the key is written and the value following
// it is copied. Scalars are written by the single Builder call matching
// their event type. Containers are copied through their matching end; open
// containers are tracked on an explicit stack so nesting depth is bounded
// only by memory.
//
// On success c is positioned on the last event of the value.
func CopyStructure(c Cursor, b *Builder) error {
	ev := c.Current()
	if ev == nil {
		return invalidState("cursor is not positioned on an event")
	}
	if ev.Type.IsKey() {
		if err := b.WriteKey(ev.Key); err != nil {
			return err
		}
		next, err := c.Next()
		if err != nil {
			return copyErr(err, "value for key "+fmt.Sprintf("%q", ev.Key))
		}
		ev = next
	}
	if !ev.IsValueStart() {
		return invalidState(fmt.Sprintf("cannot copy structure starting at %s", ev.Type))
	}

	var open []EventType
	for {
		switch {
		case ev.Type.IsBegin():
			open = append(open, ev.Type)
		case ev.Type.IsEnd():
			n := len(open)
			if n == 0 {
				return invalidState(fmt.Sprintf("unexpected %s", ev.Type))
			}
			if !matches(open[n-1], ev.Type) {
				return invalidState(fmt.Sprintf("%s closes %s", ev.Type, open[n-1]))
			}
			open = open[:n-1]
		}
		if debug.Copy() {
			debug.Logf("copy %s depth %d\n", ev.Type, len(open))
		}
		if err := b.WriteEvent(ev); err != nil {
			return err
		}
		if len(open) == 0 {
			return nil
		}
		next, err := c.Next()
		if err != nil {
			return copyErr(err, fmt.Sprintf("end of %s at depth %d", open[len(open)-1], len(open)))
		}
		ev = next
	}
}

func matches(begin, end EventType) bool {
	switch begin {
	case EventBeginObject:
		return end == EventEndObject
	case EventBeginArray:
		return end == EventEndArray
	}
	return false
}

func copyErr(err error, want string) error {
	if errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: expected %s", io.ErrUnexpectedEOF, want)
	}
	return err
}
