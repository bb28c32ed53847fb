package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"sync"

	"go.lsp.dev/jsonrpc2"

	"github.com/regtree/regtree/api"
	"github.com/regtree/regtree/debug"
)

// Session is one client connection speaking newline-framed JSON-RPC.
// Requests dispatch to the shared store under the server's store
// mutex, one at a time.
type Session struct {
	ID     string
	server *Server
	log    *slog.Logger

	conn      net.Conn
	rpc       jsonrpc2.Conn
	closeOnce sync.Once
}

// NewSession creates a session for the given connection.
func NewSession(id string, conn net.Conn, server *Server) *Session {
	return &Session{
		ID:     id,
		server: server,
		log:    server.Spec.Log.With("session", id),
		conn:   conn,
	}
}

// Run serves the connection until the peer disconnects or the session
// is closed. The returned error is nil on a clean shutdown.
func (s *Session) Run() error {
	ctx := context.Background()
	stream := jsonrpc2.NewRawStream(s.conn)
	s.rpc = jsonrpc2.NewConn(stream)
	s.rpc.Go(ctx, s.handle)
	<-s.rpc.Done()
	if err := s.rpc.Err(); err != nil && !isClosed(err) {
		return err
	}
	return nil
}

// Close tears the connection down, unblocking Run.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		if s.rpc != nil {
			s.rpc.Close()
		}
		s.conn.Close()
	})
}

func isClosed(err error) bool {
	return strings.Contains(err.Error(), "use of closed network connection") ||
		strings.Contains(err.Error(), "EOF")
}

// handle dispatches one request. Store access happens under the
// server's mutex; the store itself stays lock-free.
func (s *Session) handle(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	if debug.RPC() {
		debug.Logf("rpc: %s <- %s %s\n", s.ID, req.Method(), req.Params())
	}

	s.server.storeMu.Lock()
	result, err := s.dispatch(req)
	s.server.storeMu.Unlock()

	if err != nil {
		if err == errUnknownMethod {
			return jsonrpc2.MethodNotFoundHandler(ctx, reply, req)
		}
		s.log.Debug("request failed", "method", req.Method(), "error", err)
		return reply(ctx, nil, err)
	}
	return reply(ctx, result, nil)
}

var errUnknownMethod = fmt.Errorf("unknown method")

func (s *Session) dispatch(req jsonrpc2.Request) (any, error) {
	store := s.server.Spec.Store
	switch req.Method() {
	case api.MethodGet:
		var p api.GetParams
		if err := json.Unmarshal(req.Params(), &p); err != nil {
			return nil, err
		}
		v, found := store.Get(p.Path)
		return &api.GetResult{Value: v, Found: found}, nil

	case api.MethodSet:
		var p api.SetParams
		if err := json.Unmarshal(req.Params(), &p); err != nil {
			return nil, err
		}
		store.Set(p.Path, p.Value)
		return &struct{}{}, nil

	case api.MethodExists:
		var p api.ExistsParams
		if err := json.Unmarshal(req.Params(), &p); err != nil {
			return nil, err
		}
		return &api.ExistsResult{Exists: store.Exists(p.Path)}, nil

	case api.MethodInsert:
		var p api.InsertParams
		if err := json.Unmarshal(req.Params(), &p); err != nil {
			return nil, err
		}
		if err := store.Insert(p.Path, p.Sibling); err != nil {
			return nil, err
		}
		return &struct{}{}, nil

	case api.MethodRm:
		var p api.RmParams
		if err := json.Unmarshal(req.Params(), &p); err != nil {
			return nil, err
		}
		return &api.RmResult{Removed: store.Rm(p.Path)}, nil

	case api.MethodLs:
		var p api.LsParams
		if err := json.Unmarshal(req.Params(), &p); err != nil {
			return nil, err
		}
		return &api.LsResult{Children: store.Ls(nil, p.Path)}, nil

	case api.MethodMatch:
		var p api.MatchParams
		if err := json.Unmarshal(req.Params(), &p); err != nil {
			return nil, err
		}
		matches, total := store.Match(nil, p.Pattern, p.Limit)
		return &api.MatchResult{Matches: matches, Total: total}, nil

	case api.MethodPrint:
		var p api.PrintParams
		if err := json.Unmarshal(req.Params(), &p); err != nil {
			return nil, err
		}
		var b strings.Builder
		store.Print(&b, p.Prefix)
		return &api.PrintResult{Text: b.String()}, nil

	case api.MethodSave:
		if err := store.Save(); err != nil {
			return nil, err
		}
		return &struct{}{}, nil

	case api.MethodCheck:
		// A failed check is a result, not an RPC failure.
		if err := store.Check(); err != nil {
			return &api.CheckResult{OK: false, Detail: err.Error()}, nil
		}
		return &api.CheckResult{OK: true}, nil

	case api.MethodStats:
		return &api.StatsResult{
			Nodes:     store.Len(),
			Providers: store.Registry().Names(),
		}, nil
	}
	return nil, errUnknownMethod
}
