package service

import (
	"sync"

	"github.com/outpost-net/lobbycore/pkg/proto"
)

// Registry maps ServiceID to the handler that serves it. Mutation is
// only expected at startup; lookups happen on every inbound message.
type Registry struct {
	mu       sync.RWMutex
	handlers map[proto.ServiceID]LobbyHandler
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[proto.ServiceID]LobbyHandler)}
}

// Add registers h for id. Intended for startup wiring only.
func (r *Registry) Add(id proto.ServiceID, h LobbyHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[id] = h
}

// Lookup returns the handler registered for id, if any.
func (r *Registry) Lookup(id proto.ServiceID) (LobbyHandler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[id]
	return h, ok
}
