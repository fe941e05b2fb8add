package session_test

import (
	"net"
	"testing"

	"github.com/outpost-net/lobbycore/pkg/session"
)

type fakeAddr string

func (a fakeAddr) Network() string { return "tcp" }
func (a fakeAddr) String() string  { return string(a) }

var _ net.Addr = fakeAddr("")

func TestRegisterAllocatesMonotonicIDs(t *testing.T) {
	m := session.NewManager()
	s1 := m.Register(fakeAddr("peer1"))
	s2 := m.Register(fakeAddr("peer2"))
	if s1.ID == s2.ID {
		t.Fatalf("expected distinct ids, got %d twice", s1.ID)
	}
	if s2.ID <= s1.ID {
		t.Fatalf("expected monotonic ids, got %d then %d", s1.ID, s2.ID)
	}
}

// TestRegisterFirstIDIsZero reproduces the literal property that
// registering N sessions yields ids 0..N-1, starting at 0.
func TestRegisterFirstIDIsZero(t *testing.T) {
	m := session.NewManager()
	s := m.Register(fakeAddr("peer1"))
	if s.ID != 0 {
		t.Fatalf("first id = %d, want 0", s.ID)
	}
	s2 := m.Register(fakeAddr("peer2"))
	if s2.ID != 1 {
		t.Fatalf("second id = %d, want 1", s2.ID)
	}
}

func TestRegisterFiresCallback(t *testing.T) {
	m := session.NewManager()
	var gotID session.ID
	var gotPeer net.Addr
	m.OnRegister(func(id session.ID, peer net.Addr) {
		gotID = id
		gotPeer = peer
	})
	s := m.Register(fakeAddr("peer"))
	if gotID != s.ID {
		t.Fatalf("callback id = %d, want %d", gotID, s.ID)
	}
	if gotPeer.String() != "peer" {
		t.Fatalf("callback peer = %v, want peer", gotPeer)
	}
}

func TestUnregisterFiresCallbackAndRemoves(t *testing.T) {
	m := session.NewManager()
	s := m.Register(fakeAddr("peer"))
	fired := false
	m.OnUnregister(func(id session.ID) {
		if id == s.ID {
			fired = true
		}
	})
	m.Unregister(s.ID)
	if !fired {
		t.Fatal("unregister callback did not fire")
	}
	if m.Lookup(s.ID) != nil {
		t.Fatal("session still present after unregister")
	}
	if m.Count() != 0 {
		t.Fatalf("count = %d, want 0", m.Count())
	}
}

func TestAuthenticateIsSetOnce(t *testing.T) {
	m := session.NewManager()
	s := m.Register(fakeAddr("peer"))
	first := session.Authentication{UserID: 1, Username: "alice", Title: session.TitleOutpostAlpha}
	second := session.Authentication{UserID: 2, Username: "mallory", Title: session.TitleOutpostAlpha}

	s.Authenticate(first)
	s.Authenticate(second)

	got := s.Authentication()
	if got == nil || got.UserID != 1 {
		t.Fatalf("authentication = %+v, want first write preserved", got)
	}
}

func TestTitleIdValidity(t *testing.T) {
	if !session.TitleOutpostAlpha.IsValid() {
		t.Fatal("expected TitleOutpostAlpha to be valid")
	}
	if session.TitleId(999999).IsValid() {
		t.Fatal("expected unknown title id to be invalid")
	}
}
