// Package lobby implements the Lobby dispatcher: the service-id
// router, the authentication-gating check, and the one handler
// (AuthHandler) that establishes session.Authentication from a
// client-held opaque proof. Per-record decode errors reuse the
// sentinel errors already defined in pkg/proto and pkg/wire; this
// package adds none of its own.
package lobby
