package netsrv

import "errors"

var (
	// ErrNoDispatcher is returned by NewServer when no Dispatcher is given.
	ErrNoDispatcher = errors.New("netsrv: no dispatcher configured")
	// ErrAlreadyStarted is returned by Start when called more than once.
	ErrAlreadyStarted = errors.New("netsrv: already started")
	// ErrClosed is returned by Start or Stop on an already-stopped server.
	ErrClosed = errors.New("netsrv: closed")
)
