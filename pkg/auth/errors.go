package auth

import "errors"

var (
	// ErrUnknownMessageType is returned when a request's leading byte
	// does not decode to a known AuthMessageType.
	ErrUnknownMessageType = errors.New("auth: unknown message type")
	// ErrTicketDataTooLarge is returned when a Steam auth request's
	// data_len field exceeds the codec-enforced 128-byte maximum.
	ErrTicketDataTooLarge = errors.New("auth: ticket data exceeds maximum size")
	// ErrBadTicketSignature is returned when a Steam ticket's leading
	// signature does not match the expected sentinel.
	ErrBadTicketSignature = errors.New("auth: bad ticket signature")
	// ErrUsernameTooLong is returned when a ticket's username exceeds
	// the field's fixed capacity.
	ErrUsernameTooLong = errors.New("auth: username too long")
)
