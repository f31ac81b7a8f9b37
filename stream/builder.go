package stream

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/big"
	"slices"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/signadot/docsink/debug"
	"github.com/signadot/docsink/ir"
)

// Builder accumulates a single document from push-style write calls.
//
// The first write fixes the kind of the root: BeginObject and BeginArray
// open a root container, any scalar write makes a root value. Once the root
// is complete every further top level write fails with ErrInvalidState.
//
// Writes which violate the document grammar fail with ErrInvalidState and
// leave the Builder unusable: every later call returns the same error.
// ErrUnsupported, ErrEncoding and ErrInvalidArgument do not change the
// Builder's state.
//
// A Builder is not safe for concurrent use.
type Builder struct {
	state  *State
	root   *frame
	stack  []*frame
	closed bool
	err    error
	log    *slog.Logger
	opts   *builderOpts
}

type frameKind int

const (
	objectFrame frameKind = iota
	arrayFrame
	rootValueFrame
)

// frame is a partial document. Object and array frames are owned by the
// builder's stack while open; a root value frame is never on the stack.
type frame struct {
	kind    frameKind
	node    *ir.Node
	name    string
	hasName bool
	// keys maps the keys of an object frame to their position.
	keys map[string]int
}

func (f *frame) set(v *ir.Node) error {
	switch f.kind {
	case objectFrame:
		if i, ok := f.keys[f.name]; ok {
			f.node.Values[i] = v
		} else {
			if f.keys == nil {
				f.keys = map[string]int{}
			}
			f.keys[f.name] = len(f.node.Values)
			f.node.Fields = append(f.node.Fields, ir.FromString(f.name))
			f.node.Values = append(f.node.Values, v)
		}
		f.name = ""
		f.hasName = false
		return nil
	case arrayFrame:
		f.node.Append(v)
		return nil
	case rootValueFrame:
		return invalidState("cannot write multiple values at root")
	}
	panic("impossible")
}

// NewBuilder creates a Builder for one document.
func NewBuilder(opts ...BuilderOption) *Builder {
	bOpts := &builderOpts{features: map[Feature]bool{}}
	for _, opt := range opts {
		opt(bOpts)
	}
	log := bOpts.logger
	if log == nil {
		log = slog.Default()
	}
	return &Builder{
		state: NewState(),
		log:   log,
		opts:  bOpts,
	}
}

// Enabled reports whether f was passed to WithFeatures. Features have no
// effect on the Builder.
func (b *Builder) Enabled(f Feature) bool {
	return b.opts.features[f]
}

// Close marks the Builder closed. Closing does not prevent further writes.
func (b *Builder) Close() error {
	b.closed = true
	return nil
}

// Closed reports whether Close has been called.
func (b *Builder) Closed() bool {
	return b.closed
}

// Done reports whether a complete root value has been written.
func (b *Builder) Done() bool {
	return b.err == nil && b.root != nil && len(b.stack) == 0
}

// Context describes the Builder's current nesting.
type Context struct {
	// Depth is the number of open containers.
	Depth int
	// Kind is the kind of the innermost open container.
	Kind ContainerKind
	// Key is the pending object key, valid if HasKey.
	Key    string
	HasKey bool
	// Index is the number of elements written to the innermost
	// array, valid if Kind is ArrayKind.
	Index int
	// Path is the path of the current position, e.g. "a.b[2]".
	Path string
}

// Context returns the current nesting. It does not modify the Builder.
func (b *Builder) Context() Context {
	ctx := Context{
		Depth: b.state.Depth(),
		Kind:  b.state.Kind(),
		Path:  b.state.CurrentPath(),
	}
	ctx.Key, ctx.HasKey = b.state.CurrentKey()
	ctx.Index, _ = b.state.CurrentIndex()
	return ctx
}

// Queryable State Methods

// Depth returns the current nesting depth (0 = top level).
func (b *Builder) Depth() int {
	return b.state.Depth()
}

// CurrentPath returns the current path (e.g., "", "key", "key[0]").
func (b *Builder) CurrentPath() string {
	return b.state.CurrentPath()
}

func (b *Builder) fail(err error) error {
	b.log.Debug("document builder rejected write", "path", b.state.CurrentPath(), "error", err)
	if errors.Is(err, ErrInvalidState) {
		b.err = err
	}
	return err
}

func (b *Builder) process(ev *Event) error {
	if b.err != nil {
		return b.err
	}
	if debug.Sink() {
		debug.Logf("sink %s at %q depth %d\n", ev.Type, b.state.CurrentPath(), b.state.Depth())
	}
	if len(b.stack) == 0 && b.root != nil && ev.Type != EventKey && !ev.Type.IsEnd() {
		if b.root.kind == rootValueFrame {
			return b.fail(b.root.set(nil))
		}
		return b.fail(invalidState("cannot write multiple values at root"))
	}
	if err := b.state.ProcessEvent(ev); err != nil {
		return b.fail(err)
	}
	return nil
}

// Structure Control Methods

func (b *Builder) begin(ev *Event, f *frame) error {
	if err := b.process(ev); err != nil {
		return err
	}
	if b.root == nil {
		b.root = f
	}
	b.stack = append(b.stack, f)
	return nil
}

// BeginObject begins an object, as the root or as a child of the current
// container.
func (b *Builder) BeginObject() error {
	return b.begin(&Event{Type: EventBeginObject}, &frame{kind: objectFrame, node: ir.NewObject()})
}

// BeginArray begins an array, as the root or as a child of the current
// container.
func (b *Builder) BeginArray() error {
	return b.begin(&Event{Type: EventBeginArray}, &frame{kind: arrayFrame, node: ir.NewArray()})
}

// end pops the current container and hands its value to the parent.
func (b *Builder) end(ev *Event) error {
	if err := b.process(ev); err != nil {
		return err
	}
	n := len(b.stack)
	child := b.stack[n-1]
	b.stack[n-1] = nil
	b.stack = b.stack[:n-1]
	if n == 1 {
		return nil
	}
	if err := b.stack[n-2].set(child.node); err != nil {
		return b.fail(err)
	}
	return nil
}

// EndObject ends the current object.
func (b *Builder) EndObject() error {
	return b.end(&Event{Type: EventEndObject})
}

// EndArray ends the current array.
func (b *Builder) EndArray() error {
	return b.end(&Event{Type: EventEndArray})
}

// WriteKey sets the key for the next value in the current object. A
// second call before a value replaces the pending key.
func (b *Builder) WriteKey(name string) error {
	if err := b.process(&Event{Type: EventKey, Key: name}); err != nil {
		return err
	}
	top := b.stack[len(b.stack)-1]
	top.name = name
	top.hasName = true
	return nil
}

// Value Writing Methods

func (b *Builder) value(ev *Event, v *ir.Node) error {
	if err := b.process(ev); err != nil {
		return err
	}
	if len(b.stack) == 0 {
		b.root = &frame{kind: rootValueFrame, node: v}
		return nil
	}
	if err := b.stack[len(b.stack)-1].set(v); err != nil {
		return b.fail(err)
	}
	return nil
}

func (b *Builder) WriteString(v string) error {
	return b.value(&Event{Type: EventString, String: v}, ir.FromString(v))
}

func (b *Builder) WriteInt32(v int32) error {
	return b.value(&Event{Type: EventInt32, Int: int64(v)}, ir.FromInt32(v))
}

func (b *Builder) WriteInt64(v int64) error {
	return b.value(&Event{Type: EventInt64, Int: v}, ir.FromInt64(v))
}

// WriteBigInt writes an arbitrary precision integer. A nil v writes null.
func (b *Builder) WriteBigInt(v *big.Int) error {
	if v == nil {
		return b.WriteNull()
	}
	n := ir.FromBigInt(v)
	return b.value(&Event{Type: EventBigInt, Number: n.Number}, n)
}

func (b *Builder) WriteFloat32(v float32) error {
	return b.value(&Event{Type: EventFloat32, Float: float64(v)}, ir.FromFloat32(v))
}

func (b *Builder) WriteFloat64(v float64) error {
	return b.value(&Event{Type: EventFloat64, Float: v}, ir.FromFloat64(v))
}

func (b *Builder) WriteDecimal(d decimal.Decimal) error {
	n := ir.FromDecimal(d)
	return b.value(&Event{Type: EventDecimal, Number: n.Number}, n)
}

// WriteNumberString writes a number given in its encoded text form. The
// text is kept verbatim as a string value.
func (b *Builder) WriteNumberString(encoded string) error {
	return b.WriteString(encoded)
}

func (b *Builder) WriteBool(v bool) error {
	return b.value(&Event{Type: EventBool, Bool: v}, ir.FromBool(v))
}

func (b *Builder) WriteNull() error {
	return b.value(&Event{Type: EventNull}, ir.Null())
}

func checkRange(size, off, n int) error {
	if off < 0 || n < 0 || off > size || n > size-off {
		return &Error{
			Kind: ErrInvalidArgument,
			Msg:  fmt.Sprintf("range [%d:%d] out of bounds for %d bytes", off, off+n, size),
		}
	}
	return nil
}

// WriteBinary writes data[off:off+n] as binary content. A strict sub-range
// is copied, so the caller may reuse data afterwards. When the range covers
// all of data, data itself is kept and must not be modified.
func (b *Builder) WriteBinary(data []byte, off, n int) error {
	if err := checkRange(len(data), off, n); err != nil {
		return b.fail(err)
	}
	if off != 0 || n != len(data) {
		data = slices.Clone(data[off : off+n])
	}
	return b.value(&Event{Type: EventBinary, Bytes: data}, ir.FromBytes(data))
}

// WriteBytes writes all of data as binary content without copying it.
func (b *Builder) WriteBytes(data []byte) error {
	return b.WriteBinary(data, 0, len(data))
}

// WriteBinaryFrom is not supported: binary content must be in memory.
func (b *Builder) WriteBinaryFrom(r io.Reader, n int) (int, error) {
	return 0, b.fail(&Error{Kind: ErrUnsupported, Msg: "writing binary from a reader is not supported"})
}

// WriteUTF8 writes data[off:off+n], which must be valid UTF-8, as a
// string.
func (b *Builder) WriteUTF8(data []byte, off, n int) error {
	if err := checkRange(len(data), off, n); err != nil {
		return b.fail(err)
	}
	text := data[off : off+n]
	if !utf8.Valid(text) {
		return b.fail(&Error{Kind: ErrEncoding, Msg: fmt.Sprintf("invalid UTF-8 in range [%d:%d]", off, off+n)})
	}
	return b.WriteString(string(text))
}

// WriteStringRange writes the bytes text[off:off+n] as a string. The range
// must not split a UTF-8 sequence.
func (b *Builder) WriteStringRange(text string, off, n int) error {
	if err := checkRange(len(text), off, n); err != nil {
		return b.fail(err)
	}
	part := text[off : off+n]
	if !utf8.ValidString(part) {
		return b.fail(&Error{Kind: ErrEncoding, Msg: fmt.Sprintf("range [%d:%d] is not valid UTF-8", off, off+n)})
	}
	return b.WriteString(part)
}

// WriteObject writes an already materialized value as is.
func (b *Builder) WriteObject(v any) error {
	return b.value(&Event{Type: EventEmbedded, Value: v}, ir.FromOpaque(v))
}

// WriteRaw is not supported: there is no text to splice raw content into.
func (b *Builder) WriteRaw(text string) error {
	return b.fail(&Error{Kind: ErrUnsupported, Msg: "writing raw content is not supported"})
}

// WriteRawValue writes text as a string value.
func (b *Builder) WriteRawValue(text string) error {
	return b.WriteString(text)
}

// WriteRawValueRange writes text[off:off+n] as a string value.
func (b *Builder) WriteRawValueRange(text string, off, n int) error {
	return b.WriteStringRange(text, off, n)
}

// WriteNode writes the value of node, which is copied event by event.
func (b *Builder) WriteNode(node *ir.Node) error {
	return WriteNode(node, b)
}

// WriteEvent writes ev, making Builder an EventSink.
//
// Events are borrowed: binary payloads are copied, since cursors may reuse
// the buffer an event points into. Int32 and Float32 events must hold a
// value representable in 32 bits.
func (b *Builder) WriteEvent(ev *Event) error {
	if ev == nil {
		return b.fail(&Error{Kind: ErrInvalidArgument, Msg: "nil event"})
	}
	switch ev.Type {
	case EventBeginObject:
		return b.BeginObject()
	case EventEndObject:
		return b.EndObject()
	case EventBeginArray:
		return b.BeginArray()
	case EventEndArray:
		return b.EndArray()
	case EventKey:
		return b.WriteKey(ev.Key)
	case EventString:
		return b.WriteString(ev.String)
	case EventInt32:
		if ev.Int < math.MinInt32 || ev.Int > math.MaxInt32 {
			return b.fail(&Error{Kind: ErrInvalidArgument, Msg: fmt.Sprintf("%d overflows int32", ev.Int)})
		}
		return b.WriteInt32(int32(ev.Int))
	case EventInt64:
		return b.WriteInt64(ev.Int)
	case EventBigInt:
		v, ok := new(big.Int).SetString(ev.Number, 10)
		if !ok {
			return b.fail(&Error{Kind: ErrInvalidArgument, Msg: fmt.Sprintf("invalid big integer %q", ev.Number)})
		}
		return b.WriteBigInt(v)
	case EventFloat32:
		if !math.IsInf(ev.Float, 0) && math.Abs(ev.Float) > math.MaxFloat32 {
			return b.fail(&Error{Kind: ErrInvalidArgument, Msg: fmt.Sprintf("%g overflows float32", ev.Float)})
		}
		return b.WriteFloat32(float32(ev.Float))
	case EventFloat64:
		return b.WriteFloat64(ev.Float)
	case EventDecimal:
		d, err := decimal.NewFromString(ev.Number)
		if err != nil {
			return b.fail(&Error{Kind: ErrInvalidArgument, Msg: fmt.Sprintf("invalid decimal %q: %v", ev.Number, err)})
		}
		return b.WriteDecimal(d)
	case EventBool:
		return b.WriteBool(ev.Bool)
	case EventNull:
		return b.WriteNull()
	case EventBinary:
		return b.WriteBytes(slices.Clone(ev.Bytes))
	case EventEmbedded:
		return b.WriteObject(ev.Value)
	default:
		return b.fail(&Error{Kind: ErrUnsupported, Msg: fmt.Sprintf("unknown event type %d", ev.Type)})
	}
}

// Result Methods

// Value returns the finished document.
func (b *Builder) Value() (*ir.Node, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.root == nil {
		return nil, invalidState("no value written")
	}
	if len(b.stack) != 0 {
		return nil, invalidState(fmt.Sprintf("document incomplete: %d open containers at %q", len(b.stack), b.state.CurrentPath()))
	}
	return b.root.node, nil
}

// Object returns the finished document, which must be an object.
func (b *Builder) Object() (*ir.Node, error) {
	return b.shaped(ir.ObjectType)
}

// Array returns the finished document, which must be an array.
func (b *Builder) Array() (*ir.Node, error) {
	return b.shaped(ir.ArrayType)
}

func (b *Builder) shaped(t ir.Type) (*ir.Node, error) {
	v, err := b.Value()
	if err != nil {
		return nil, err
	}
	if b.root.kind == rootValueFrame || v.Type != t {
		return nil, invalidState(fmt.Sprintf("%s node was not generated, root is %s", t, v.Type))
	}
	return v, nil
}
