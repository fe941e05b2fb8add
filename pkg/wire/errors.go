package wire

import "errors"

var (
	// ErrUnexpectedDataType is returned when a type-checked read's tag
	// does not match the type the caller asked for.
	ErrUnexpectedDataType = errors.New("wire: unexpected data type")
	// ErrMode is returned when an operation is attempted in the wrong
	// Mode (e.g. reading a string while in BitMode).
	ErrMode = errors.New("wire: operation not valid in current mode")
	// ErrUnexpectedEndOfMessage is returned when a read runs past the
	// end of the underlying buffer.
	ErrUnexpectedEndOfMessage = errors.New("wire: unexpected end of message")
	// ErrInvalidDataType is returned when a tag byte does not decode to
	// a known DataType.
	ErrInvalidDataType = errors.New("wire: invalid data type tag")
)
