package stream

import "errors"

var (
	// ErrInvalidState reports a write or read which the builder's current
	// state does not allow.
	ErrInvalidState = errors.New("invalid state")
	// ErrUnsupported reports an operation the builder has no
	// representation for.
	ErrUnsupported = errors.New("unsupported operation")
	// ErrEncoding reports byte content which does not decode to text.
	ErrEncoding = errors.New("encoding error")
	// ErrInvalidArgument reports an out of range buffer slice.
	ErrInvalidArgument = errors.New("invalid argument")
)

// Error represents a stream error.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string {
	if e.Kind == nil {
		return e.Msg
	}
	return e.Kind.Error() + ": " + e.Msg
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func invalidState(msg string) *Error {
	return &Error{Kind: ErrInvalidState, Msg: msg}
}
