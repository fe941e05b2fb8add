// Command lobbyd runs the Auth and Lobby TCP listeners described by
// SPEC_FULL.md: dispatch, session tracking, and the rotating key
// store, wired together and driven until SIGINT/SIGTERM.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pion/logging"

	"github.com/outpost-net/lobbycore/pkg/auth"
	"github.com/outpost-net/lobbycore/pkg/keystore"
	"github.com/outpost-net/lobbycore/pkg/lobby"
	"github.com/outpost-net/lobbycore/pkg/netsrv"
	"github.com/outpost-net/lobbycore/pkg/proto"
	"github.com/outpost-net/lobbycore/pkg/service"
	"github.com/outpost-net/lobbycore/pkg/service/counter"
	"github.com/outpost-net/lobbycore/pkg/service/echo"
	"github.com/outpost-net/lobbycore/pkg/session"
)

// Options holds the process's command-line configuration.
type Options struct {
	AuthAddr  string
	LobbyAddr string
	LogLevel  string
}

// ParseFlags parses os.Args into Options.
func ParseFlags() Options {
	var o Options
	flag.StringVar(&o.AuthAddr, "auth-addr", "0.0.0.0:3075", "Auth listener address")
	flag.StringVar(&o.LobbyAddr, "lobby-addr", "0.0.0.0:3074", "Lobby listener address")
	flag.StringVar(&o.LogLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")
	flag.Parse()
	return o
}

func main() {
	opts := ParseFlags()

	logFactory := logging.NewDefaultLoggerFactory()
	if lvl, ok := parseLogLevel(opts.LogLevel); ok {
		logFactory.DefaultLogLevel = lvl
	}
	log := logFactory.NewLogger("lobbyd")

	keys := keystore.New()

	authDispatcher := auth.NewDispatcher(logFactory.NewLogger("auth"))
	authDispatcher.AddHandler(proto.SteamForMmpRequest, auth.NewSteamAuthHandler(keys))

	registry := service.NewRegistry()
	registry.Add(proto.LobbyAuthServiceID, lobby.NewAuthHandler(keys))
	registry.Add(proto.EchoServiceID, echo.New())
	registry.Add(proto.CounterServiceID, counter.New())
	lobbyDispatcher := lobby.NewDispatcher(registry, logFactory.NewLogger("lobby"))

	authSessions := session.NewManager()
	lobbySessions := session.NewManager()

	authServer, err := netsrv.NewServer(netsrv.Config{
		ListenAddr:    opts.AuthAddr,
		Dispatcher:    authDispatcher,
		Sessions:      authSessions,
		LoggerFactory: logFactory,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "auth server:", err)
		os.Exit(1)
	}
	lobbyServer, err := netsrv.NewServer(netsrv.Config{
		ListenAddr:    opts.LobbyAddr,
		Dispatcher:    lobbyDispatcher,
		Sessions:      lobbySessions,
		LoggerFactory: logFactory,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "lobby server:", err)
		os.Exit(1)
	}

	if err := authServer.Start(); err != nil {
		fmt.Fprintln(os.Stderr, "auth server:", err)
		os.Exit(1)
	}
	if err := lobbyServer.Start(); err != nil {
		fmt.Fprintln(os.Stderr, "lobby server:", err)
		os.Exit(1)
	}

	log.Infof("auth listening on %s", authServer.Addr())
	log.Infof("lobby listening on %s", lobbyServer.Addr())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Info("shutting down")

	if err := authServer.Stop(); err != nil {
		log.Errorf("auth server stop: %v", err)
	}
	if err := lobbyServer.Stop(); err != nil {
		log.Errorf("lobby server stop: %v", err)
	}
}

func parseLogLevel(s string) (logging.LogLevel, bool) {
	switch s {
	case "trace":
		return logging.LogLevelTrace, true
	case "debug":
		return logging.LogLevelDebug, true
	case "info":
		return logging.LogLevelInfo, true
	case "warn":
		return logging.LogLevelWarn, true
	case "error":
		return logging.LogLevelError, true
	default:
		return 0, false
	}
}
