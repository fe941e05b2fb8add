package auth

import (
	"crypto/rand"
	"encoding/binary"
	"time"

	oncrypto "github.com/outpost-net/lobbycore/pkg/crypto"
	"github.com/outpost-net/lobbycore/pkg/keystore"
	"github.com/outpost-net/lobbycore/pkg/proto"
	"github.com/outpost-net/lobbycore/pkg/session"
	"github.com/outpost-net/lobbycore/pkg/wire"
)

// steamTicketSignature is the sentinel a custom Steam-style ticket's
// data field starts with. It carries no integrity role; it only lets
// an observer recognize a well-formed ticket.
const steamTicketSignature uint32 = 0xDEADBABE

const steamTicketSecretSize = 88

// steamLicenseID is the license the Steam handler hard-codes onto
// every ticket it issues; there is no license subsystem backing it.
const steamLicenseID uint64 = 1234

const (
	ticketLifetime     = 5 * time.Minute
	maxTicketDataBytes = 128
)

// SteamAuthHandler ingests a client's custom Steam-style ticket and
// issues an AuthTicket (encrypted to the client under the ticket's
// session key) plus a ClientOpaqueAuthProof (sealed to the server's
// key store) for the client to later present to Lobby.
//
// This validates only the custom ticket format defined here; it never
// contacts, or attempts to emulate, a real Steam backend.
type SteamAuthHandler struct {
	keys *keystore.Store
}

// NewSteamAuthHandler returns a handler sealing opaque proofs with keys.
func NewSteamAuthHandler(keys *keystore.Store) *SteamAuthHandler {
	return &SteamAuthHandler{keys: keys}
}

// HandleMessage implements Handler.
func (h *SteamAuthHandler) HandleMessage(sess *session.Session, r *wire.Reader) (Response, error) {
	r.SetMode(wire.BitMode)
	if _, err := r.ReadTypeCheckBit(); err != nil {
		return Response{}, err
	}
	ivSeed, err := r.ReadU32()
	if err != nil {
		return Response{}, err
	}
	title, err := r.ReadU32()
	if err != nil {
		return Response{}, err
	}
	if !session.TitleId(title).IsValid() {
		return Response{}, proto.ErrUnknownTitle
	}
	dataLen, err := r.ReadU32()
	if err != nil {
		return Response{}, err
	}
	if dataLen > maxTicketDataBytes {
		return Response{}, ErrTicketDataTooLarge
	}
	r.SetMode(wire.ByteMode)
	data, err := r.ReadRawBytes(int(dataLen))
	if err != nil {
		return Response{}, err
	}

	dr := wire.NewReader(data, wire.ByteMode, false)
	signature, err := dr.ReadU32()
	if err != nil {
		return Response{}, err
	}
	if signature != steamTicketSignature {
		return Response{}, ErrBadTicketSignature
	}
	steamID, err := dr.ReadU64()
	if err != nil {
		return Response{}, err
	}
	if _, err := dr.ReadU32(); err != nil { // secret_size, expected steamTicketSecretSize
		return Response{}, err
	}
	sessionKeyBytes, err := dr.ReadRawBytes(session.SessionKeySize())
	if err != nil {
		return Response{}, err
	}
	var sessionKey [24]byte
	copy(sessionKey[:], sessionKeyBytes)
	username, err := readCString(dr, 64)
	if err != nil {
		return Response{}, err
	}

	now := uint32(time.Now().Unix())
	ticket := proto.AuthTicket{
		Type:        proto.UserToService,
		Title:       title,
		TimeIssued:  now,
		TimeExpires: now + uint32(ticketLifetime/time.Second),
		LicenseID:   steamLicenseID,
		UserID:      steamID,
		Username:    username,
		SessionKey:  sessionKey,
	}
	ticketBytes := ticket.Marshal()

	newSeed, err := randomU32()
	if err != nil {
		return Response{}, err
	}
	iv := oncrypto.DeriveIV(newSeed)
	ticketCiphertext, err := oncrypto.EncryptSessionCBC(sessionKey[:], iv[:], ticketBytes[:])
	if err != nil {
		return Response{}, err
	}

	key, err := h.keys.CurrentKey()
	if err != nil {
		return Response{}, err
	}
	proof := proto.ClientOpaqueAuthProof{
		Title:       title,
		TimeExpires: int64(now) + int64(ticketLifetime/time.Second),
		LicenseID:   steamLicenseID,
		UserID:      steamID,
		SessionKey:  sessionKey,
		Username:    username,
	}
	sealedProof, err := proof.Seal(key)
	if err != nil {
		return Response{}, err
	}

	writeBody := func(w *wire.Writer) error {
		if err := w.WriteU32(newSeed); err != nil {
			return err
		}
		w.SetMode(wire.ByteMode)
		if err := w.WriteRawBytes(ticketCiphertext); err != nil {
			return err
		}
		return w.WriteRawBytes(sealedProof[:])
	}

	_ = ivSeed // acknowledged but unused: the client's own seed never governs the server's reply encryption.
	return Response{ErrorCode: proto.AuthNoError, WriteBody: writeBody}, nil
}

func readCString(r *wire.Reader, maxLen int) (string, error) {
	buf := make([]byte, 0, maxLen)
	for i := 0; i < maxLen; i++ {
		b, err := r.ReadU8()
		if err != nil {
			return "", err
		}
		if b == 0 {
			return string(buf), nil
		}
		buf = append(buf, b)
	}
	return "", ErrUsernameTooLong
}

func randomU32() (uint32, error) {
	var b [4]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b[:]), nil
}
