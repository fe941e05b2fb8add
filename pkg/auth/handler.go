// Package auth implements the Auth endpoint's dispatcher and the
// Steam-style ticket handler it routes to: parsing a client's custom
// ticket, issuing an AuthTicket back to the client, and sealing a
// ClientOpaqueAuthProof the client later presents to Lobby.
package auth

import (
	"github.com/outpost-net/lobbycore/pkg/proto"
	"github.com/outpost-net/lobbycore/pkg/session"
	"github.com/outpost-net/lobbycore/pkg/wire"
)

// Response is what a Handler returns: the error code to report and an
// optional writer for any handler-specific reply body.
type Response struct {
	ErrorCode proto.ErrorCode
	WriteBody func(w *wire.Writer) error
}

// Handler is the uniform contract an auth-side request handler
// satisfies. The core owns the registry and routing; each handler
// owns its own request parsing and response construction.
type Handler interface {
	HandleMessage(sess *session.Session, r *wire.Reader) (Response, error)
}
