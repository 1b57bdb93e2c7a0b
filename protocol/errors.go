package protocol

import "errors"

var (
	// ErrIncomplete reports that the buffer does not yet hold a complete
	// value. It is the steady state while bytes are still arriving: feed
	// more data and decode again.
	ErrIncomplete = errors.New("Value is incomplete, more bytes are required")

	// ErrMalformed reports bytes that violate the wire grammar. There is no
	// way to resynchronise the stream after it.
	ErrMalformed = errors.New("Value is malformed")

	ErrUnsafeText  = errors.New("Text contains CR or LF, it cannot be framed on a single line")
	ErrUnknownKind = errors.New("Value has an unknown kind, it cannot be encoded")
	ErrBufferLimit = errors.New("Decoder buffer limit would be exceeded")
)
