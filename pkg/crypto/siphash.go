package crypto

import "encoding/binary"

// MACSize is the length in bytes of the frame authentication tag.
const MACSize = 4

const (
	sipC = 2 // compression rounds
	sipD = 4 // finalization rounds
)

// MAC computes a 32-bit keyed digest over data using the session key.
// This is the SipHash-class construction the transport's frame
// authentication is built on: a 128-bit key is folded out of the
// 24-byte session key, the standard SipHash-2-4 permutation runs over
// data, and the 64-bit output is truncated to 32 bits. It is used
// symmetrically: the same function authenticates on send and verifies
// on receive.
func MAC(sessionKey, data []byte) uint32 {
	k0, k1 := foldKey(sessionKey)
	return uint32(sipHash24(k0, k1, data))
}

// foldKey derives a 128-bit SipHash key from an arbitrary-length
// session key by XOR-folding it down to 16 bytes.
func foldKey(sessionKey []byte) (k0, k1 uint64) {
	var buf [16]byte
	for i, b := range sessionKey {
		buf[i%16] ^= b
	}
	return binary.LittleEndian.Uint64(buf[0:8]), binary.LittleEndian.Uint64(buf[8:16])
}

func sipHash24(k0, k1 uint64, data []byte) uint64 {
	v0 := k0 ^ 0x736f6d6570736575
	v1 := k1 ^ 0x646f72616e646f6d
	v2 := k0 ^ 0x6c7967656e657261
	v3 := k1 ^ 0x7465646279746573

	n := len(data)
	end := n - (n % 8)

	for off := 0; off < end; off += 8 {
		m := binary.LittleEndian.Uint64(data[off : off+8])
		v3 ^= m
		for i := 0; i < sipC; i++ {
			v0, v1, v2, v3 = sipRound(v0, v1, v2, v3)
		}
		v0 ^= m
	}

	var last [8]byte
	copy(last[:], data[end:])
	last[7] = byte(n)
	m := binary.LittleEndian.Uint64(last[:])
	v3 ^= m
	for i := 0; i < sipC; i++ {
		v0, v1, v2, v3 = sipRound(v0, v1, v2, v3)
	}
	v0 ^= m

	v2 ^= 0xff
	for i := 0; i < sipD; i++ {
		v0, v1, v2, v3 = sipRound(v0, v1, v2, v3)
	}
	return v0 ^ v1 ^ v2 ^ v3
}

func sipRound(v0, v1, v2, v3 uint64) (uint64, uint64, uint64, uint64) {
	v0 += v1
	v1 = rotl64(v1, 13)
	v1 ^= v0
	v0 = rotl64(v0, 32)

	v2 += v3
	v3 = rotl64(v3, 16)
	v3 ^= v2

	v0 += v3
	v3 = rotl64(v3, 21)
	v3 ^= v0

	v2 += v1
	v1 = rotl64(v1, 17)
	v1 ^= v2
	v2 = rotl64(v2, 32)

	return v0, v1, v2, v3
}

func rotl64(x uint64, b uint) uint64 {
	return (x << b) | (x >> (64 - b))
}
