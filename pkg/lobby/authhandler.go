package lobby

import (
	"time"

	"github.com/outpost-net/lobbycore/pkg/keystore"
	"github.com/outpost-net/lobbycore/pkg/proto"
	"github.com/outpost-net/lobbycore/pkg/service"
	"github.com/outpost-net/lobbycore/pkg/session"
	"github.com/outpost-net/lobbycore/pkg/wire"
)

// AuthHandler is the one Lobby service a session may call before it
// has authenticated: it validates a client-held opaque proof against
// the key store and, on success, populates session.Authentication.
type AuthHandler struct {
	service.NoAuthRequired

	keys *keystore.Store
}

// NewAuthHandler returns a Lobby auth handler validating proofs
// against keys.
func NewAuthHandler(keys *keystore.Store) *AuthHandler {
	return &AuthHandler{keys: keys}
}

// HandleMessage implements service.LobbyHandler.
func (h *AuthHandler) HandleMessage(sess *session.Session, r *wire.Reader) (service.Response, error) {
	r.SetMode(wire.BitMode)
	if _, err := r.ReadTypeCheckBit(); err != nil {
		return service.Response{}, err
	}
	title, err := r.ReadU32()
	if err != nil {
		return service.Response{}, err
	}
	if !session.TitleId(title).IsValid() {
		return service.Response{}, proto.ErrUnknownTitle
	}
	if _, err := r.ReadU32(); err != nil { // iv_seed, unused: the proof is not itself encrypted
		return service.Response{}, err
	}
	r.SetMode(wire.ByteMode)
	opaque, err := r.ReadRawBytes(proto.OpaqueProofSize)
	if err != nil {
		return service.Response{}, err
	}

	candidates := h.keys.ValidKeys()
	proof, err := proto.DeserializeWithAnyKey(opaque, candidates)
	if err != nil {
		return service.Response{}, err
	}
	if proof.TimeExpires < time.Now().Unix() {
		return service.Response{}, proto.ErrProofExpired
	}
	if proof.Title != title {
		return service.Response{}, proto.ErrTitleMismatch
	}

	sess.Authenticate(session.Authentication{
		UserID:     proof.UserID,
		Username:   proof.Username,
		SessionKey: proof.SessionKey,
		Title:      session.TitleId(proof.Title),
	})

	reply, err := proto.EncodeConnectionIDResponse(uint64(sess.ID))
	if err != nil {
		return service.Response{}, err
	}
	return service.Response{RawReply: reply}, nil
}
