// Package counter is a minimal illustrative Lobby service: an
// in-memory, per-user set of named counters. It exists to exercise
// pkg/service's registry with authenticated, stateful task dispatch,
// not as a real service implementation.
package counter

import (
	"sync"

	"github.com/outpost-net/lobbycore/pkg/proto"
	"github.com/outpost-net/lobbycore/pkg/service"
	"github.com/outpost-net/lobbycore/pkg/session"
	"github.com/outpost-net/lobbycore/pkg/wire"
)

const (
	taskIncrement uint8 = 1
	taskRead      uint8 = 2
)

type counterKey struct {
	userID uint64
	name   string
}

// Handler implements service.LobbyHandler. Every attribute read and
// write is guarded by mu, mirroring how a real service would protect
// shared in-memory state across one goroutine per connection.
type Handler struct {
	service.RequireAuth

	mu       sync.Mutex
	counters map[counterKey]uint32
}

// New returns an empty counter Handler.
func New() *Handler {
	return &Handler{counters: make(map[counterKey]uint32)}
}

// HandleMessage implements service.LobbyHandler.
func (h *Handler) HandleMessage(sess *session.Session, r *wire.Reader) (service.Response, error) {
	taskID, err := r.ReadU8()
	if err != nil {
		return service.Response{}, err
	}
	r.SetMode(wire.ByteMode)
	name, err := r.ReadU8Str()
	if err != nil {
		return service.Response{}, err
	}

	auth := sess.Authentication()
	key := counterKey{userID: auth.UserID, name: name}

	switch taskID {
	case taskIncrement:
		h.mu.Lock()
		h.counters[key]++
		v := h.counters[key]
		h.mu.Unlock()
		return service.Response{
			ErrorCode:   proto.NoError,
			OperationID: taskID,
			Results:     []proto.Result{u32Result{value: v}},
		}, nil
	case taskRead:
		h.mu.Lock()
		v := h.counters[key]
		h.mu.Unlock()
		return service.Response{
			ErrorCode:   proto.NoError,
			OperationID: taskID,
			Results:     []proto.Result{u32Result{value: v}},
		}, nil
	default:
		return service.Response{ErrorCode: proto.ServiceNotAvailable, OperationID: taskID}, nil
	}
}

type u32Result struct {
	value uint32
}

func (r u32Result) WriteTo(w *wire.Writer) error {
	return w.WriteU32(r.value)
}
