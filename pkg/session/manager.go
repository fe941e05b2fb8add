package session

import (
	"net"
	"sync"
)

// RegisterCallback is invoked when a new session is registered. It
// receives the session's id and peer address rather than the Session
// itself, so callback subscribers never hold a reference back into
// the manager's table and cannot form a cyclic reference with it.
type RegisterCallback func(id ID, peer net.Addr)

// UnregisterCallback is invoked when a session is torn down.
type UnregisterCallback func(id ID)

// Manager allocates Session ids and owns the live session table. One
// Manager is shared across all connections accepted by a listener.
type Manager struct {
	mu       sync.RWMutex
	nextID   ID
	sessions map[ID]*Session

	callbackMu   sync.RWMutex
	onRegister   []RegisterCallback
	onUnregister []UnregisterCallback
}

// NewManager returns an empty Manager.
func NewManager() *Manager {
	return &Manager{sessions: make(map[ID]*Session)}
}

// OnRegister subscribes fn to future Register calls. It does not fire
// retroactively for already-registered sessions.
func (m *Manager) OnRegister(fn RegisterCallback) {
	m.callbackMu.Lock()
	defer m.callbackMu.Unlock()
	m.onRegister = append(m.onRegister, fn)
}

// OnUnregister subscribes fn to future Unregister calls.
func (m *Manager) OnUnregister(fn UnregisterCallback) {
	m.callbackMu.Lock()
	defer m.callbackMu.Unlock()
	m.onUnregister = append(m.onUnregister, fn)
}

// Register allocates a new monotonic session id, stores a Session for
// peer, fires every registered RegisterCallback inline, and returns
// the new Session. The caller owns the returned Session for the
// lifetime of the connection.
func (m *Manager) Register(peer net.Addr) *Session {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	s := &Session{ID: id, PeerAddr: peer}
	m.sessions[id] = s
	m.mu.Unlock()

	m.callbackMu.RLock()
	callbacks := append([]RegisterCallback(nil), m.onRegister...)
	m.callbackMu.RUnlock()
	for _, cb := range callbacks {
		cb(id, peer)
	}
	return s
}

// Unregister removes the session with id from the table and fires
// every registered UnregisterCallback inline. It is a no-op if id is
// unknown (e.g. called twice).
func (m *Manager) Unregister(id ID) {
	m.mu.Lock()
	_, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if !ok {
		return
	}

	m.callbackMu.RLock()
	callbacks := append([]UnregisterCallback(nil), m.onUnregister...)
	m.callbackMu.RUnlock()
	for _, cb := range callbacks {
		cb(id)
	}
}

// Lookup returns the session with id, or nil if it is not registered.
func (m *Manager) Lookup(id ID) *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[id]
}

// Count returns the number of currently registered sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
