package auth

import (
	"sync"

	"github.com/pion/logging"

	"github.com/outpost-net/lobbycore/pkg/proto"
	"github.com/outpost-net/lobbycore/pkg/session"
	"github.com/outpost-net/lobbycore/pkg/wire"
)

// Dispatcher routes inbound auth requests, keyed by their leading
// message-type byte, to registered handlers. Mutation only happens at
// startup; lookups are read-mostly.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[proto.AuthMessageType]Handler
	log      logging.LeveledLogger
}

// NewDispatcher returns an empty Dispatcher. If log is nil, a logger
// from pion's default logger factory is used.
func NewDispatcher(log logging.LeveledLogger) *Dispatcher {
	if log == nil {
		log = logging.NewDefaultLoggerFactory().NewLogger("auth-dispatcher")
	}
	return &Dispatcher{handlers: make(map[proto.AuthMessageType]Handler), log: log}
}

// AddHandler registers h for msgType. Intended for startup wiring only.
func (d *Dispatcher) AddHandler(msgType proto.AuthMessageType, h Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[msgType] = h
}

// Dispatch parses payload's leading message type, routes to the
// matching handler, and serializes the auth reply envelope.
func (d *Dispatcher) Dispatch(sess *session.Session, payload []byte) ([]byte, error) {
	r := wire.NewReader(payload, wire.ByteMode, false)
	rawType, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	msgType := proto.AuthMessageType(rawType)
	if !msgType.IsValid() {
		d.log.Warnf("auth: unknown message type %#x", rawType)
		return nil, ErrUnknownMessageType
	}

	d.mu.RLock()
	h, ok := d.handlers[msgType]
	d.mu.RUnlock()
	if !ok {
		d.log.Warnf("auth: no handler for message type %#x", rawType)
		return proto.AuthResponseWithOnlyCode(msgType.ReplyCode(), proto.AuthIllegalOperation)
	}

	resp, err := h.HandleMessage(sess, r)
	if err != nil {
		return nil, err
	}
	return proto.EncodeAuthResponse(msgType.ReplyCode(), resp.ErrorCode, resp.WriteBody)
}
