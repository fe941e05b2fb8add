package crypto

import "errors"

var (
	// ErrKeyLength is returned when a cipher key is not the expected size.
	ErrKeyLength = errors.New("crypto: invalid key length")
	// ErrIVLength is returned when an IV is not the expected size.
	ErrIVLength = errors.New("crypto: invalid iv length")
	// ErrBufferLength is returned when a buffer is not a multiple of the
	// cipher's block size after padding.
	ErrBufferLength = errors.New("crypto: buffer not block-aligned")
)
