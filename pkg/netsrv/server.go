// Package netsrv implements the one-goroutine-per-connection TCP
// accept loop shared by the Auth and Lobby listeners: accept, register
// a session, run the frame transport's read/dispatch/write loop until
// the peer disconnects, unregister.
package netsrv

import (
	"errors"
	"io"
	"net"
	"sync"

	"github.com/pion/logging"

	"github.com/outpost-net/lobbycore/pkg/frame"
	"github.com/outpost-net/lobbycore/pkg/session"
)

// Dispatcher routes one decoded message payload to its handler and
// returns the reply to send back (if any). pkg/auth.Dispatcher and
// pkg/lobby.Dispatcher both satisfy this.
type Dispatcher interface {
	Dispatch(sess *session.Session, payload []byte) ([]byte, error)
}

// Config configures a Server.
type Config struct {
	// Listener is a pre-existing listener to use. If nil, ListenAddr is
	// used to create one.
	Listener net.Listener
	// ListenAddr is used when Listener is nil (e.g. ":3074").
	ListenAddr string
	// Dispatcher handles every decoded message. Required.
	Dispatcher Dispatcher
	// Sessions tracks per-connection state. Required.
	Sessions *session.Manager
	// LoggerFactory builds this server's logger. If nil, pion's
	// default logger factory is used.
	LoggerFactory logging.LoggerFactory
}

// Server is a TCP accept loop pairing one frame.Transport and one
// session.Session to each accepted connection.
type Server struct {
	listener   net.Listener
	dispatcher Dispatcher
	sessions   *session.Manager
	logFactory logging.LoggerFactory
	log        logging.LeveledLogger

	closeCh chan struct{}
	wg      sync.WaitGroup

	mu      sync.Mutex
	started bool
	closed  bool
}

// NewServer builds a Server from cfg. It does not start accepting
// connections; call Start for that.
func NewServer(cfg Config) (*Server, error) {
	if cfg.Dispatcher == nil {
		return nil, ErrNoDispatcher
	}
	s := &Server{
		listener:   cfg.Listener,
		dispatcher: cfg.Dispatcher,
		sessions:   cfg.Sessions,
		logFactory: cfg.LoggerFactory,
		closeCh:    make(chan struct{}),
	}
	if s.logFactory != nil {
		s.log = s.logFactory.NewLogger("netsrv")
	} else {
		s.log = logging.NewDefaultLoggerFactory().NewLogger("netsrv")
	}
	if s.listener == nil {
		addr := cfg.ListenAddr
		if addr == "" {
			addr = ":0"
		}
		l, err := net.Listen("tcp", addr)
		if err != nil {
			return nil, err
		}
		s.listener = l
	}
	return s, nil
}

// Addr returns the address the server is listening on.
func (s *Server) Addr() net.Addr { return s.listener.Addr() }

// Start begins accepting connections in a background goroutine.
func (s *Server) Start() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if s.started {
		s.mu.Unlock()
		return ErrAlreadyStarted
	}
	s.started = true
	s.mu.Unlock()

	s.log.Infof("listening on %s", s.listener.Addr())
	s.wg.Add(1)
	go s.acceptLoop()
	return nil
}

// Stop closes the listener and waits for every connection goroutine to
// exit.
func (s *Server) Stop() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	s.closed = true
	s.mu.Unlock()

	close(s.closeCh)
	s.listener.Close()
	s.wg.Wait()
	return nil
}

func (s *Server) acceptLoop() {
	defer s.wg.Done()
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.closeCh:
				return
			default:
				continue
			}
		}
		s.wg.Add(1)
		go s.handleConn(conn)
	}
}

func (s *Server) handleConn(conn net.Conn) {
	defer s.wg.Done()
	defer conn.Close()

	sess := s.sessions.Register(conn.RemoteAddr())
	defer s.sessions.Unregister(sess.ID)

	var connLog logging.LeveledLogger
	if s.logFactory != nil {
		connLog = s.logFactory.NewLogger("netsrv")
	} else {
		connLog = s.log
	}
	tr := frame.New(conn, connLog)

	for {
		select {
		case <-s.closeCh:
			return
		default:
		}

		payload, err := tr.ReadMessage(sess)
		if err != nil {
			if errors.Is(err, io.EOF) || isConnClosed(err) {
				return
			}
			connLog.Errorf("session %d: %v", sess.ID, err)
			return
		}

		reply, err := s.dispatcher.Dispatch(sess, payload)
		if err != nil {
			connLog.Errorf("session %d: dispatch: %v", sess.ID, err)
			return
		}
		if reply == nil {
			continue
		}
		if err := tr.WriteMessage(sess, reply, sess.IsAuthenticated()); err != nil {
			connLog.Errorf("session %d: write: %v", sess.ID, err)
			return
		}
	}
}

func isConnClosed(err error) bool {
	return errors.Is(err, net.ErrClosed) || errors.Is(err, io.ErrClosedPipe)
}
