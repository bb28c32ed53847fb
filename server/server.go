// Package server exposes a regtree store over TCP as JSON-RPC 2.0.
// The store itself is single-threaded; the server serializes all
// access to it behind one mutex, so any number of sessions can share
// one store.
package server

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/regtree/regtree"
)

// Spec holds the runtime specification for the server.
type Spec struct {
	Store *regtree.Store
	Log   *slog.Logger
}

// Server dispatches RPC requests from TCP sessions to the store.
type Server struct {
	Spec Spec

	// storeMu serializes every store operation across sessions.
	storeMu sync.Mutex

	tcpListener *TCPListener
}

// New creates a Server instance. A nil Log gets a JSON handler on
// stdout whose level follows the DEBUG environment variable.
func New(spec *Spec) *Server {
	if spec.Log == nil {
		spec.Log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slogLevel(),
		}))
	}
	return &Server{Spec: *spec}
}

func slogLevel() slog.Level {
	if os.Getenv("DEBUG") != "" {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// StartTCP starts the TCP listener on the given address. The listener
// runs in a separate goroutine.
func (s *Server) StartTCP(addr string) error {
	if s.tcpListener != nil {
		return fmt.Errorf("TCP listener already running")
	}

	listener, err := NewTCPListener(addr, s)
	if err != nil {
		return err
	}

	s.tcpListener = listener

	go func() {
		if err := listener.Serve(); err != nil {
			s.Spec.Log.Error("TCP listener error", "error", err)
		}
	}()

	return nil
}

// StopTCP stops the TCP listener and drains its sessions.
func (s *Server) StopTCP() error {
	if s.tcpListener == nil {
		return nil
	}

	err := s.tcpListener.Close()
	s.tcpListener = nil
	return err
}

// TCPAddr returns the TCP listener's address, or "" if not running.
func (s *Server) TCPAddr() string {
	if s.tcpListener == nil {
		return ""
	}
	return s.tcpListener.Addr().String()
}
