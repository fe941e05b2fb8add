// Package echo is a minimal illustrative Lobby service: it echoes
// back whatever blob it was sent. It exists to exercise pkg/service's
// registry end-to-end, not as a real service implementation.
package echo

import (
	"github.com/outpost-net/lobbycore/pkg/proto"
	"github.com/outpost-net/lobbycore/pkg/service"
	"github.com/outpost-net/lobbycore/pkg/session"
	"github.com/outpost-net/lobbycore/pkg/wire"
)

// taskEcho is the only task id this service answers.
const taskEcho uint8 = 0

// Handler implements service.LobbyHandler.
type Handler struct {
	service.RequireAuth
}

// New returns an echo Handler.
func New() *Handler { return &Handler{} }

// HandleMessage implements service.LobbyHandler.
func (h *Handler) HandleMessage(sess *session.Session, r *wire.Reader) (service.Response, error) {
	taskID, err := r.ReadU8()
	if err != nil {
		return service.Response{}, err
	}
	if taskID != taskEcho {
		return service.Response{ErrorCode: proto.ServiceNotAvailable, OperationID: taskID}, nil
	}
	r.SetMode(wire.ByteMode)
	data, err := r.ReadBlob()
	if err != nil {
		return service.Response{}, err
	}
	return service.Response{
		ErrorCode:   proto.NoError,
		OperationID: taskID,
		Results:     []proto.Result{blobResult{data: data}},
	}, nil
}

type blobResult struct {
	data []byte
}

func (r blobResult) WriteTo(w *wire.Writer) error {
	w.SetMode(wire.ByteMode)
	return w.WriteBlob(r.data)
}
