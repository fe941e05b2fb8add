// Package proto holds the wire-level message types, error codes, and
// reply envelopes shared by the Auth and Lobby dispatchers: the
// vocabulary both routers speak, independent of how either one is
// wired up.
package proto

// BdMessageType tags the leading byte of every reply frame.
type BdMessageType uint8

const (
	LobbyServiceTaskReply   BdMessageType = 1
	LobbyServicePushMessage BdMessageType = 2
	LsgServiceError         BdMessageType = 3
	LsgServiceConnectionId  BdMessageType = 4
	LsgServiceTaskReply     BdMessageType = 5
)

// AuthMessageType tags the leading byte of an auth request or reply.
// Request/reply codes are consecutive pairs; ReplyCode derives a
// request's reply code.
type AuthMessageType uint8

const (
	SteamForMmpRequest AuthMessageType = 0x1C
	SteamForMmpReply   AuthMessageType = 0x1D
)

// ReplyCode returns the reply code paired with a request code: the
// request/reply pair always share the same even base, stored at
// consecutive codes.
func (t AuthMessageType) ReplyCode() AuthMessageType {
	return (t - t%2) + 1
}

// IsValid reports whether t is a known auth request message type.
// Reply codes are never valid inbound request types.
func (t AuthMessageType) IsValid() bool {
	switch t {
	case SteamForMmpRequest:
		return true
	default:
		return false
	}
}

// ServiceID tags the leading byte of a Lobby service call, selecting
// which registered handler a message routes to.
type ServiceID uint8

const (
	// LobbyAuthServiceID is the one service a session may call before
	// it has authenticated: it establishes session.Authentication from
	// a client-held opaque proof.
	LobbyAuthServiceID ServiceID = 7
	// EchoServiceID and CounterServiceID are illustrative example
	// services exercising the registry end-to-end. Counter uses id 23;
	// Echo's id is an arbitrary, stable small constant.
	EchoServiceID    ServiceID = 1
	CounterServiceID ServiceID = 23
)
