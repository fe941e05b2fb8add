package proto

import (
	"encoding/binary"
)

// TicketType distinguishes who an AuthTicket authenticates to whom.
type TicketType uint32

const (
	UserToService TicketType = 0
	HostToService TicketType = 1
	UserToHost    TicketType = 2
)

// authTicketMagic is the fixed magic every AuthTicket record starts with.
const authTicketMagic uint32 = 0xEFBDADDE

// AuthTicketSize is the fixed serialized size of an AuthTicket, before
// any cipher padding (it is already a multiple of the 3DES block size).
const AuthTicketSize = 128

const ticketUsernameSize = 64

// AuthTicket is the record Auth issues and Lobby later treats as an
// opaque, client-held blob. It is not interpreted by the client; it
// is only ever re-submitted and decrypted server-side.
type AuthTicket struct {
	Type          TicketType
	Title         uint32
	TimeIssued    uint32
	TimeExpires   uint32
	LicenseID     uint64
	UserID        uint64
	Username      string
	SessionKey    [24]byte
}

// Marshal serializes t into its fixed 128-byte little-endian record:
// magic | ticket_type | title | time_issued | time_expires |
// license_id | user_id | username (64B, null-padded) | session_key
// (24B) | 4 trailing zero bytes.
func (t AuthTicket) Marshal() [AuthTicketSize]byte {
	var buf [AuthTicketSize]byte
	off := 0
	binary.LittleEndian.PutUint32(buf[off:], authTicketMagic)
	off += 4
	binary.LittleEndian.PutUint32(buf[off:], uint32(t.Type))
	off += 4
	binary.LittleEndian.PutUint32(buf[off:], t.Title)
	off += 4
	binary.LittleEndian.PutUint32(buf[off:], t.TimeIssued)
	off += 4
	binary.LittleEndian.PutUint32(buf[off:], t.TimeExpires)
	off += 4
	binary.LittleEndian.PutUint64(buf[off:], t.LicenseID)
	off += 8
	binary.LittleEndian.PutUint64(buf[off:], t.UserID)
	off += 8
	copy(buf[off:off+ticketUsernameSize], []byte(t.Username))
	off += ticketUsernameSize
	copy(buf[off:off+24], t.SessionKey[:])
	off += 24
	// remaining 4 bytes are the trailing zero padding.
	return buf
}

// UnmarshalAuthTicket parses a 128-byte record produced by Marshal.
func UnmarshalAuthTicket(buf []byte) (AuthTicket, error) {
	if len(buf) < AuthTicketSize {
		return AuthTicket{}, ErrRecordTooShort
	}
	if binary.LittleEndian.Uint32(buf[0:4]) != authTicketMagic {
		return AuthTicket{}, ErrBadMagic
	}
	off := 4
	typ := TicketType(binary.LittleEndian.Uint32(buf[off:]))
	off += 4
	title := binary.LittleEndian.Uint32(buf[off:])
	off += 4
	issued := binary.LittleEndian.Uint32(buf[off:])
	off += 4
	expires := binary.LittleEndian.Uint32(buf[off:])
	off += 4
	license := binary.LittleEndian.Uint64(buf[off:])
	off += 8
	user := binary.LittleEndian.Uint64(buf[off:])
	off += 8
	username := trimNulls(buf[off : off+ticketUsernameSize])
	off += ticketUsernameSize
	var sessionKey [24]byte
	copy(sessionKey[:], buf[off:off+24])

	return AuthTicket{
		Type:        typ,
		Title:       title,
		TimeIssued:  issued,
		TimeExpires: expires,
		LicenseID:   license,
		UserID:      user,
		Username:    username,
		SessionKey:  sessionKey,
	}, nil
}

func trimNulls(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}
