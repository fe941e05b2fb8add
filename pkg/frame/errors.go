package frame

import "errors"

var (
	// ErrMessageTooLarge is returned when a declared message length
	// exceeds MaxMessageSize.
	ErrMessageTooLarge = errors.New("frame: message exceeds maximum size")
	// ErrNoSessionKey is returned when an encrypted frame arrives but
	// the session has not established a session key yet.
	ErrNoSessionKey = errors.New("frame: encrypted frame on session without a key")
	// ErrMACMismatch is returned when a decrypted frame's MAC does not
	// match the one computed over its payload.
	ErrMACMismatch = errors.New("frame: mac verification failed")
	// ErrEmptyPayload is returned when a frame's decrypted payload is
	// too short to carry even a leading message-type byte.
	ErrEmptyPayload = errors.New("frame: payload too short")
)
