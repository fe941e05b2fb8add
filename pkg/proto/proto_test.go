package proto_test

import (
	"testing"
	"time"

	"github.com/outpost-net/lobbycore/pkg/keystore"
	"github.com/outpost-net/lobbycore/pkg/proto"
)

func TestTaskReplyRoundtrip(t *testing.T) {
	buf, err := proto.EncodeTaskReply(7, proto.ServiceNotAvailable, 0, nil)
	if err != nil {
		t.Fatal(err)
	}
	reply, _, err := proto.DecodeTaskReply(buf)
	if err != nil {
		t.Fatal(err)
	}
	if reply.TransactionID != 7 {
		t.Fatalf("tx = %d, want 7", reply.TransactionID)
	}
	if reply.ErrorCode != proto.ServiceNotAvailable {
		t.Fatalf("error = %v, want ServiceNotAvailable", reply.ErrorCode)
	}
	if reply.NumResults != 0 || reply.TotalNumResults != 0 {
		t.Fatalf("counts = %d/%d, want 0/0", reply.NumResults, reply.TotalNumResults)
	}
}

func TestAuthTicketRoundtrip(t *testing.T) {
	ticket := proto.AuthTicket{
		Type:        proto.UserToService,
		Title:       18409,
		TimeIssued:  1000,
		TimeExpires: 1300,
		LicenseID:   1234,
		UserID:      77,
		Username:    "bob",
	}
	copy(ticket.SessionKey[:], []byte("0123456789abcdef01234567"))

	marshaled := ticket.Marshal()
	if len(marshaled) != proto.AuthTicketSize {
		t.Fatalf("len = %d, want %d", len(marshaled), proto.AuthTicketSize)
	}
	got, err := proto.UnmarshalAuthTicket(marshaled[:])
	if err != nil {
		t.Fatal(err)
	}
	if got.Title != 18409 || got.UserID != 77 || got.Username != "bob" {
		t.Fatalf("got %+v", got)
	}
	if got.SessionKey != ticket.SessionKey {
		t.Fatal("session key mismatch")
	}
}

func TestOpaqueProofSealAndRecover(t *testing.T) {
	store := keystore.New()
	key, err := store.CurrentKey()
	if err != nil {
		t.Fatal(err)
	}

	proof := proto.ClientOpaqueAuthProof{
		Title:       18409,
		TimeExpires: time.Now().Add(5 * time.Minute).Unix(),
		LicenseID:   1234,
		UserID:      77,
		Username:    "bob",
	}
	copy(proof.SessionKey[:], []byte("0123456789abcdef01234567"))

	sealed, err := proof.Seal(key)
	if err != nil {
		t.Fatal(err)
	}

	recovered, err := proto.DeserializeWithAnyKey(sealed[:], store.ValidKeys())
	if err != nil {
		t.Fatal(err)
	}
	if recovered.Title != 18409 || recovered.UserID != 77 || recovered.Username != "bob" {
		t.Fatalf("recovered %+v", recovered)
	}
}

func TestOpaqueProofRejectsUnrelatedKey(t *testing.T) {
	store := keystore.New()
	key, err := store.CurrentKey()
	if err != nil {
		t.Fatal(err)
	}
	proof := proto.ClientOpaqueAuthProof{Title: 1, UserID: 2}
	sealed, err := proof.Seal(key)
	if err != nil {
		t.Fatal(err)
	}

	other := keystore.New()
	otherKey, err := other.CurrentKey()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := proto.DeserializeWithAnyKey(sealed[:], []keystore.Key{otherKey}); err == nil {
		t.Fatal("expected deserialization to fail under an unrelated key")
	}
}

func TestAuthMessageTypeReplyCode(t *testing.T) {
	if got := proto.SteamForMmpRequest.ReplyCode(); got != proto.SteamForMmpReply {
		t.Fatalf("reply code = %v, want SteamForMmpReply", got)
	}
}
