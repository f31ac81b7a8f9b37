package stream

import "fmt"

// Event represents a structural event. Events correspond to the Builder's
// write methods, so any event sequence can be replayed into a Builder.
type Event struct {
	Type EventType `json:"t"`

	// Value fields (only one is set based on Type)
	Key    string  `json:"k,omitempty"`
	String string  `json:"s,omitempty"`
	Int    int64   `json:"i,omitempty"` // EventInt32, EventInt64
	Float  float64 `json:"f,omitempty"` // EventFloat32, EventFloat64
	Number string  `json:"n,omitempty"` // EventBigInt, EventDecimal
	Bool   bool    `json:"b,omitempty"`
	Bytes  []byte  `json:"x,omitempty"`
	Value  any     `json:"v,omitempty"` // EventEmbedded
}

// IsValueStart returns true if this event starts a value (as opposed to a
// key or end marker).
func (e *Event) IsValueStart() bool {
	return e.Type != EventKey && e.Type != EventEndObject && e.Type != EventEndArray
}

// EventType represents the type of a structural event.
//
// Numeric events keep the subtype of the producer: EventInt32, EventInt64
// and EventBigInt are distinct, as are EventFloat32, EventFloat64 and
// EventDecimal.
type EventType int

const (
	EventBeginObject EventType = iota
	EventEndObject
	EventBeginArray
	EventEndArray
	EventKey
	EventString
	EventInt32
	EventInt64
	EventBigInt
	EventFloat32
	EventFloat64
	EventDecimal
	EventBool
	EventNull
	EventBinary
	EventEmbedded
)

var eventTypeNames = map[EventType]string{
	EventBeginObject: "BeginObject",
	EventEndObject:   "EndObject",
	EventBeginArray:  "BeginArray",
	EventEndArray:    "EndArray",
	EventKey:         "Key",
	EventString:      "String",
	EventInt32:       "Int32",
	EventInt64:       "Int64",
	EventBigInt:      "BigInt",
	EventFloat32:     "Float32",
	EventFloat64:     "Float64",
	EventDecimal:     "Decimal",
	EventBool:        "Bool",
	EventNull:        "Null",
	EventBinary:      "Binary",
	EventEmbedded:    "Embedded",
}

func (t EventType) String() string {
	if s, ok := eventTypeNames[t]; ok {
		return s
	}
	return "Unknown"
}

func (t EventType) IsKey() bool {
	return t == EventKey
}

// IsBegin reports whether t opens a container.
func (t EventType) IsBegin() bool {
	return t == EventBeginObject || t == EventBeginArray
}

// IsEnd reports whether t closes a container.
func (t EventType) IsEnd() bool {
	return t == EventEndObject || t == EventEndArray
}

// IsScalar reports whether t carries a complete value by itself.
func (t EventType) IsScalar() bool {
	return !t.IsKey() && !t.IsBegin() && !t.IsEnd()
}

func (t EventType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *EventType) UnmarshalText(d []byte) error {
	k := string(d)
	for et, name := range eventTypeNames {
		if name == k {
			*t = et
			return nil
		}
	}
	return fmt.Errorf("unknown type %q", k)
}
