package proto

import (
	"encoding/binary"

	"github.com/outpost-net/lobbycore/pkg/crypto"
	"github.com/outpost-net/lobbycore/pkg/keystore"
)

// opaqueProofMagic is the fixed magic a ClientOpaqueAuthProof's
// plaintext starts with, used to recognize which key-store key (if
// any) a candidate proof decrypts under.
const opaqueProofMagic uint64 = 0xC0FFEEFFEEAA1337

// OpaqueProofSize is the fixed plaintext (and, since AES blocks need
// no padding at this size, ciphertext) size of a ClientOpaqueAuthProof.
const OpaqueProofSize = 128

const proofUsernameSize = 64

// ClientOpaqueAuthProof is the record Auth seals to the server's own
// key store and the client later re-submits verbatim to Lobby to
// establish a session. Its contents are never interpreted by the
// client.
type ClientOpaqueAuthProof struct {
	Title       uint32
	TimeExpires int64
	LicenseID   uint64
	UserID      uint64
	SessionKey  [24]byte
	Username    string
}

// marshalPlaintext serializes p into its fixed 128-byte little-endian
// plaintext layout: magic | title | time_expires | license_id |
// user_id | session_key (24B) | username (64B, null-padded) | 4
// trailing pad bytes.
func (p ClientOpaqueAuthProof) marshalPlaintext() [OpaqueProofSize]byte {
	var buf [OpaqueProofSize]byte
	off := 0
	binary.LittleEndian.PutUint64(buf[off:], opaqueProofMagic)
	off += 8
	binary.LittleEndian.PutUint32(buf[off:], p.Title)
	off += 4
	binary.LittleEndian.PutUint64(buf[off:], uint64(p.TimeExpires))
	off += 8
	binary.LittleEndian.PutUint64(buf[off:], p.LicenseID)
	off += 8
	binary.LittleEndian.PutUint64(buf[off:], p.UserID)
	off += 8
	copy(buf[off:off+24], p.SessionKey[:])
	off += 24
	copy(buf[off:off+proofUsernameSize], []byte(p.Username))
	// remaining 4 bytes are the trailing pad.
	return buf
}

func unmarshalOpaquePlaintext(buf []byte) (ClientOpaqueAuthProof, error) {
	if len(buf) < OpaqueProofSize {
		return ClientOpaqueAuthProof{}, ErrRecordTooShort
	}
	if binary.LittleEndian.Uint64(buf[0:8]) != opaqueProofMagic {
		return ClientOpaqueAuthProof{}, ErrBadMagic
	}
	off := 8
	title := binary.LittleEndian.Uint32(buf[off:])
	off += 4
	expires := int64(binary.LittleEndian.Uint64(buf[off:]))
	off += 8
	license := binary.LittleEndian.Uint64(buf[off:])
	off += 8
	user := binary.LittleEndian.Uint64(buf[off:])
	off += 8
	var sessionKey [24]byte
	copy(sessionKey[:], buf[off:off+24])
	off += 24
	username := trimNulls(buf[off : off+proofUsernameSize])

	return ClientOpaqueAuthProof{
		Title:       title,
		TimeExpires: expires,
		LicenseID:   license,
		UserID:      user,
		SessionKey:  sessionKey,
		Username:    username,
	}, nil
}

// Seal encrypts p's plaintext under key, the server key store's
// current key, producing the 128-byte record the client holds.
func (p ClientOpaqueAuthProof) Seal(key keystore.Key) ([OpaqueProofSize]byte, error) {
	plain := p.marshalPlaintext()
	sealed, err := crypto.SealBlocks(key.Material[:], plain[:])
	var out [OpaqueProofSize]byte
	if err != nil {
		return out, err
	}
	copy(out[:], sealed)
	return out, nil
}

// DeserializeWithAnyKey tries every candidate key store key against
// sealed until one decrypts to a plaintext with the correct magic,
// mirroring the invariant that an opaque proof must decrypt under
// some still-valid key-store entry.
func DeserializeWithAnyKey(sealed []byte, candidates []keystore.Key) (ClientOpaqueAuthProof, error) {
	for _, k := range candidates {
		opened, err := crypto.OpenBlocks(k.Material[:], sealed)
		if err != nil {
			continue
		}
		proof, err := unmarshalOpaquePlaintext(opened)
		if err != nil {
			continue
		}
		return proof, nil
	}
	return ClientOpaqueAuthProof{}, ErrBadMagic
}
