package auth_test

import (
	"strings"
	"testing"

	"github.com/outpost-net/lobbycore/pkg/auth"
	oncrypto "github.com/outpost-net/lobbycore/pkg/crypto"
	"github.com/outpost-net/lobbycore/pkg/keystore"
	"github.com/outpost-net/lobbycore/pkg/proto"
	"github.com/outpost-net/lobbycore/pkg/session"
	"github.com/outpost-net/lobbycore/pkg/wire"
)

func buildSteamTicket(steamID uint64, secretSize uint32, sessionKey [24]byte, username string) []byte {
	w := wire.NewWriter(wire.ByteMode, false)
	w.WriteU32(0xDEADBABE)
	w.WriteU64(steamID)
	w.WriteU32(secretSize)
	w.WriteRawBytes(sessionKey[:])
	w.WriteRawBytes(append([]byte(username), 0))
	return w.Bytes()
}

func buildSteamRequest(title, ivSeed uint32, ticket []byte) []byte {
	w := wire.NewWriter(wire.ByteMode, false)
	w.WriteU8(uint8(proto.SteamForMmpRequest))
	w.SetMode(wire.BitMode)
	w.WriteTypeCheckBit(true)
	w.WriteU32(ivSeed)
	w.WriteU32(title)
	w.WriteU32(uint32(len(ticket)))
	w.SetMode(wire.ByteMode)
	w.WriteRawBytes(ticket)
	return w.Bytes()
}

func TestSteamAuthHappyPath(t *testing.T) {
	var sessionKey [24]byte
	copy(sessionKey[:], []byte("abcdefghijklmnopqrstuvwx"))

	ticket := buildSteamTicket(77, steamTicketSecretSizeForTest, sessionKey, "bob")
	request := buildSteamRequest(uint32(session.TitleOutpostAlpha), 0xC01E44BD, ticket)

	keys := keystore.New()
	dispatcher := auth.NewDispatcher(nil)
	dispatcher.AddHandler(proto.SteamForMmpRequest, auth.NewSteamAuthHandler(keys))

	mgr := session.NewManager()
	sess := mgr.Register(nil)

	reply, err := dispatcher.Dispatch(sess, request)
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}

	r := wire.NewReader(reply, wire.ByteMode, false)
	msgType, err := r.ReadU8()
	if err != nil {
		t.Fatal(err)
	}
	if proto.AuthMessageType(msgType) != proto.SteamForMmpReply {
		t.Fatalf("msg_type = %#x, want SteamForMmpReply", msgType)
	}
	r.SetMode(wire.BitMode)
	if _, err := r.ReadTypeCheckBit(); err != nil {
		t.Fatal(err)
	}
	errCode, err := r.ReadU32()
	if err != nil {
		t.Fatal(err)
	}
	if proto.ErrorCode(errCode) != proto.AuthNoError {
		t.Fatalf("error = %d, want AuthNoError", errCode)
	}
	newSeed, err := r.ReadU32()
	if err != nil {
		t.Fatal(err)
	}

	r.SetMode(wire.ByteMode)
	ticketCiphertext, err := r.ReadRawBytes(proto.AuthTicketSize)
	if err != nil {
		t.Fatal(err)
	}
	sealedProof, err := r.ReadRawBytes(proto.OpaqueProofSize)
	if err != nil {
		t.Fatal(err)
	}

	iv := oncrypto.DeriveIV(newSeed)
	plainTicket, err := oncrypto.DecryptSessionCBC(sessionKey[:], iv[:], ticketCiphertext)
	if err != nil {
		t.Fatal(err)
	}
	decodedTicket, err := proto.UnmarshalAuthTicket(plainTicket)
	if err != nil {
		t.Fatal(err)
	}
	if decodedTicket.UserID != 77 || decodedTicket.Username != "bob" {
		t.Fatalf("ticket = %+v", decodedTicket)
	}
	if decodedTicket.Title != uint32(session.TitleOutpostAlpha) {
		t.Fatalf("ticket title = %d, want %d", decodedTicket.Title, session.TitleOutpostAlpha)
	}

	key, err := keys.CurrentKey()
	if err != nil {
		t.Fatal(err)
	}
	proof, err := proto.DeserializeWithAnyKey(sealedProof, []keystore.Key{key})
	if err != nil {
		t.Fatal(err)
	}
	if proof.UserID != 77 || !strings.EqualFold(proof.Username, "bob") {
		t.Fatalf("proof = %+v", proof)
	}
	if proof.Title != uint32(session.TitleOutpostAlpha) {
		t.Fatalf("proof title = %d, want %d", proof.Title, session.TitleOutpostAlpha)
	}
}

const steamTicketSecretSizeForTest = 88

func TestSteamAuthRejectsBadSignature(t *testing.T) {
	var sessionKey [24]byte
	ticket := buildSteamTicket(1, steamTicketSecretSizeForTest, sessionKey, "x")
	ticket[0] = 0 // corrupt signature

	request := buildSteamRequest(uint32(session.TitleOutpostAlpha), 1, ticket)

	dispatcher := auth.NewDispatcher(nil)
	dispatcher.AddHandler(proto.SteamForMmpRequest, auth.NewSteamAuthHandler(keystore.New()))

	mgr := session.NewManager()
	sess := mgr.Register(nil)

	if _, err := dispatcher.Dispatch(sess, request); err != auth.ErrBadTicketSignature {
		t.Fatalf("err = %v, want ErrBadTicketSignature", err)
	}
}

// TestSteamAuthRejectsUnknownTitle reproduces the invariant that an
// unknown TitleId must be rejected before a ticket is ever issued.
func TestSteamAuthRejectsUnknownTitle(t *testing.T) {
	var sessionKey [24]byte
	copy(sessionKey[:], []byte("abcdefghijklmnopqrstuvwx"))

	ticket := buildSteamTicket(77, steamTicketSecretSizeForTest, sessionKey, "bob")
	const unknownTitle = 1
	request := buildSteamRequest(unknownTitle, 0xC01E44BD, ticket)

	dispatcher := auth.NewDispatcher(nil)
	dispatcher.AddHandler(proto.SteamForMmpRequest, auth.NewSteamAuthHandler(keystore.New()))

	mgr := session.NewManager()
	sess := mgr.Register(nil)

	if _, err := dispatcher.Dispatch(sess, request); err != proto.ErrUnknownTitle {
		t.Fatalf("err = %v, want ErrUnknownTitle", err)
	}
}
