package lobby

import (
	"github.com/pion/logging"

	"github.com/outpost-net/lobbycore/pkg/proto"
	"github.com/outpost-net/lobbycore/pkg/service"
	"github.com/outpost-net/lobbycore/pkg/session"
	"github.com/outpost-net/lobbycore/pkg/wire"
)

// Dispatcher routes inbound Lobby messages, keyed by their leading
// service-id byte, to registered service.LobbyHandlers, enforcing the
// authentication gate each handler declares.
type Dispatcher struct {
	registry *service.Registry
	log      logging.LeveledLogger
}

// NewDispatcher returns a Dispatcher routing through registry. If log
// is nil, a logger from pion's default logger factory is used.
func NewDispatcher(registry *service.Registry, log logging.LeveledLogger) *Dispatcher {
	if log == nil {
		log = logging.NewDefaultLoggerFactory().NewLogger("lobby-dispatcher")
	}
	return &Dispatcher{registry: registry, log: log}
}

// Dispatch parses payload's leading service id, enforces
// authentication, routes to the matching handler, and serializes the
// reply envelope.
func (d *Dispatcher) Dispatch(sess *session.Session, payload []byte) ([]byte, error) {
	r := wire.NewReader(payload, wire.ByteMode, false)
	rawID, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	id := proto.ServiceID(rawID)

	h, ok := d.registry.Lookup(id)
	if !ok {
		d.log.Warnf("lobby: no handler for service id %d", rawID)
		return proto.EncodeTaskReply(uint64(sess.NextTxID()), proto.ServiceNotAvailable, 0, nil)
	}
	if h.RequiresAuthentication() && !sess.IsAuthenticated() {
		return proto.EncodeTaskReply(uint64(sess.NextTxID()), proto.AccessDenied, 0, nil)
	}

	r.SetTypeChecked(true)
	resp, err := h.HandleMessage(sess, r)
	if err != nil {
		return nil, err
	}
	if resp.RawReply != nil {
		return resp.RawReply, nil
	}
	return proto.EncodeTaskReply(uint64(sess.NextTxID()), resp.ErrorCode, resp.OperationID, resp.Results)
}
