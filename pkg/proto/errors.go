package proto

import "errors"

var (
	// ErrRecordTooShort is returned when a fixed-size record buffer is
	// smaller than expected.
	ErrRecordTooShort = errors.New("proto: record too short")
	// ErrBadMagic is returned when a fixed-size record's magic does not
	// match, meaning the candidate key or buffer is not this record
	// type at all.
	ErrBadMagic = errors.New("proto: magic mismatch")
	// ErrProofExpired is returned when a ClientOpaqueAuthProof's
	// time_expires has already passed.
	ErrProofExpired = errors.New("proto: opaque proof expired")
	// ErrTitleMismatch is returned when a proof's title does not match
	// the title presented alongside it.
	ErrTitleMismatch = errors.New("proto: title mismatch")
	// ErrUnknownTitle is returned when a request presents a title id
	// that is not one of the known TitleId values.
	ErrUnknownTitle = errors.New("proto: unknown title id")
)
