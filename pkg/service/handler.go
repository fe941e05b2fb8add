// Package service defines the trait external Lobby services implement
// and the registry the Lobby dispatcher consults to route calls to
// them. The core owns routing and session/authentication bookkeeping;
// each service owns its own state and task-id dispatch.
package service

import (
	"github.com/outpost-net/lobbycore/pkg/proto"
	"github.com/outpost-net/lobbycore/pkg/session"
	"github.com/outpost-net/lobbycore/pkg/wire"
)

// Response is what a LobbyHandler returns: the reply's error code,
// the operation id to echo back, and its result list. Most handlers
// leave RawReply nil and let the dispatcher wrap ErrorCode/
// OperationID/Results in the standard TaskReply envelope. The one
// handler with a different reply shape (the Lobby auth handler's
// connection-id response) sets RawReply and the dispatcher sends it
// verbatim instead.
type Response struct {
	ErrorCode   proto.ErrorCode
	OperationID uint8
	Results     []proto.Result
	RawReply    []byte
}

// LobbyHandler is the uniform contract a Lobby service satisfies.
type LobbyHandler interface {
	// HandleMessage reads the service-specific fields from r (already
	// positioned just past the service_id byte) and produces a reply.
	HandleMessage(sess *session.Session, r *wire.Reader) (Response, error)
	// RequiresAuthentication reports whether the dispatcher must
	// reject calls on an unauthenticated session before ever reaching
	// this handler. Every service but the Lobby auth handler itself
	// requires authentication.
	RequiresAuthentication() bool
}

// RequireAuth is embedded by handlers that need prior authentication,
// the common case, so they don't each repeat the same method body.
type RequireAuth struct{}

// RequiresAuthentication implements LobbyHandler.
func (RequireAuth) RequiresAuthentication() bool { return true }

// NoAuthRequired is embedded by the one handler (Lobby auth) that must
// run before a session has authenticated.
type NoAuthRequired struct{}

// RequiresAuthentication implements LobbyHandler.
func (NoAuthRequired) RequiresAuthentication() bool { return false }
