package stream

import (
	"strconv"
	"strings"
)

// ContainerKind is the kind of the innermost open container.
type ContainerKind int

const (
	// RootKind means no container is open.
	RootKind ContainerKind = iota
	ObjectKind
	ArrayKind
)

func (k ContainerKind) String() string {
	switch k {
	case RootKind:
		return "root"
	case ObjectKind:
		return "object"
	case ArrayKind:
		return "array"
	default:
		return "unknown"
	}
}

// State provides minimal stack/state/path management.
// Just processes events and tracks state - it holds no values.
//
// State rejects event sequences which are not well formed: unbalanced or
// mismatched ends, keys outside objects, values in objects without a
// pending key and objects closed with a dangling key. A repeated key
// before a value replaces the pending key.
type State struct {
	stack []item
}

type item struct {
	kind   ContainerKind
	n      int
	key    string
	hasKey bool
}

// NewState creates a new State for tracking structure state.
func NewState() *State {
	return &State{}
}

func (s *State) pop() {
	n := len(s.stack)
	s.stack = s.stack[:n-1]
}

func (s *State) current() *item {
	n := len(s.stack)
	return &s.stack[n-1]
}

// value accounts for a value written into the current container.
func (s *State) value() error {
	if s.Depth() == 0 {
		return nil
	}
	cur := s.current()
	if cur.kind == ObjectKind && !cur.hasKey {
		return invalidState("value in object without key at " + s.CurrentPath())
	}
	cur.n++
	cur.hasKey = false
	return nil
}

// ProcessEvent processes an event and updates state/path tracking.
// Call this for each event in order.
func (s *State) ProcessEvent(event *Event) error {
	switch event.Type {
	case EventBeginObject:
		if err := s.value(); err != nil {
			return err
		}
		s.stack = append(s.stack, item{kind: ObjectKind})

	case EventBeginArray:
		if err := s.value(); err != nil {
			return err
		}
		s.stack = append(s.stack, item{kind: ArrayKind})

	case EventEndObject:
		if s.Depth() <= 0 {
			return invalidState("end object without begin")
		}
		cur := s.current()
		if cur.kind != ObjectKind {
			return invalidState("end object in array at " + s.CurrentPath())
		}
		if cur.hasKey {
			return invalidState("key without value at " + s.CurrentPath())
		}
		s.pop()

	case EventEndArray:
		if s.Depth() <= 0 {
			return invalidState("end array without begin")
		}
		if s.current().kind != ArrayKind {
			return invalidState("end array in object at " + s.CurrentPath())
		}
		s.pop()

	case EventKey:
		if s.Depth() == 0 || s.current().kind != ObjectKind {
			return invalidState("key not in object: " + strconv.Quote(event.Key))
		}
		cur := s.current()
		cur.hasKey = true
		cur.key = event.Key

	default:
		return s.value()
	}
	return nil
}

// Depth returns the current nesting depth (0 = top level).
func (s *State) Depth() int {
	return len(s.stack)
}

// Kind returns the kind of the innermost open container.
func (s *State) Kind() ContainerKind {
	if len(s.stack) == 0 {
		return RootKind
	}
	return s.current().kind
}

// CurrentPath returns the current path (e.g., "", "key", "key[0]").
//
// Object segments name the pending key, or the last key written. Array
// segments name the index of the last element written.
func (s *State) CurrentPath() string {
	b := &strings.Builder{}
	for i := range s.stack {
		item := &s.stack[i]
		switch item.kind {
		case ObjectKind:
			if item.key == "" && !item.hasKey {
				continue
			}
			if i > 0 {
				b.WriteByte('.')
			}
			writeField(b, item.key)
		case ArrayKind:
			if item.n == 0 {
				continue
			}
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(item.n - 1))
			b.WriteByte(']')
		}
	}
	return b.String()
}

func writeField(b *strings.Builder, f string) {
	if f != "" && strings.IndexAny(f, "'.[] ") == -1 {
		b.WriteString(f)
		return
	}
	b.WriteByte('\'')
	b.WriteString(strings.ReplaceAll(f, "'", "\\'"))
	b.WriteByte('\'')
}

// IsInObject returns true if currently inside an object.
func (s *State) IsInObject() bool {
	return s.Kind() == ObjectKind
}

// IsInArray returns true if currently inside an array.
func (s *State) IsInArray() bool {
	return s.Kind() == ArrayKind
}

// CurrentKey returns the pending object key (if in object and a key was
// written since the last value).
func (s *State) CurrentKey() (string, bool) {
	if len(s.stack) == 0 {
		return "", false
	}
	cur := s.current()
	if cur.kind != ObjectKind || !cur.hasKey {
		return "", false
	}
	return cur.key, true
}

// CurrentIndex returns the number of elements written to the current array.
func (s *State) CurrentIndex() (int, bool) {
	if len(s.stack) == 0 {
		return 0, false
	}
	cur := s.current()
	if cur.kind != ArrayKind {
		return 0, false
	}
	return cur.n, true
}
