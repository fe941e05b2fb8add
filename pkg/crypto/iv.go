package crypto

import (
	"encoding/binary"

	"golang.org/x/crypto/blake2b"
)

// IVSize is the length in bytes of the IV consumed by the session
// cipher.
const IVSize = 8

// DeriveIV expands a 32-bit seed, as carried in clear alongside every
// encrypted frame, into the 8-byte IV used by the session cipher. The
// seed is serialized little-endian and digested; the IV is the
// leading IVSize bytes of the digest.
//
// The pack carries no verified Tiger implementation and
// golang.org/x/crypto does not provide one either, so this uses
// blake2b as the underlying digest (see the design ledger for the
// tradeoff). The derivation is otherwise deterministic and collision
// resistant, which is all downstream code relies on.
func DeriveIV(seed uint32) [IVSize]byte {
	var seedBuf [4]byte
	binary.LittleEndian.PutUint32(seedBuf[:], seed)
	digest := blake2b.Sum512(seedBuf[:])
	var iv [IVSize]byte
	copy(iv[:], digest[:IVSize])
	return iv
}
