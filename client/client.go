// Package client is a typed JSON-RPC client for the regtree daemon.
package client

import (
	"context"
	"fmt"
	"net"

	"go.lsp.dev/jsonrpc2"

	"github.com/regtree/regtree/api"
)

// Client wraps one connection to a daemon. Methods mirror the store
// API; each is one synchronous RPC round trip.
type Client struct {
	conn net.Conn
	rpc  jsonrpc2.Conn
}

// Dial connects to a daemon at addr.
func Dial(ctx context.Context, addr string) (*Client, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	rpc := jsonrpc2.NewConn(jsonrpc2.NewRawStream(conn))
	rpc.Go(ctx, jsonrpc2.MethodNotFoundHandler)
	return &Client{conn: conn, rpc: rpc}, nil
}

// Close tears the connection down.
func (c *Client) Close() error {
	c.rpc.Close()
	return c.conn.Close()
}

func (c *Client) Get(ctx context.Context, path string) (string, bool, error) {
	var res api.GetResult
	_, err := c.rpc.Call(ctx, api.MethodGet, &api.GetParams{Path: path}, &res)
	if err != nil {
		return "", false, err
	}
	return res.Value, res.Found, nil
}

func (c *Client) Set(ctx context.Context, path, value string) error {
	_, err := c.rpc.Call(ctx, api.MethodSet, &api.SetParams{Path: path, Value: value}, nil)
	return err
}

func (c *Client) Exists(ctx context.Context, path string) (bool, error) {
	var res api.ExistsResult
	_, err := c.rpc.Call(ctx, api.MethodExists, &api.ExistsParams{Path: path}, &res)
	if err != nil {
		return false, err
	}
	return res.Exists, nil
}

func (c *Client) Insert(ctx context.Context, path, sibling string) error {
	_, err := c.rpc.Call(ctx, api.MethodInsert,
		&api.InsertParams{Path: path, Sibling: sibling}, nil)
	return err
}

func (c *Client) Rm(ctx context.Context, path string) (int, error) {
	var res api.RmResult
	_, err := c.rpc.Call(ctx, api.MethodRm, &api.RmParams{Path: path}, &res)
	if err != nil {
		return 0, err
	}
	return res.Removed, nil
}

func (c *Client) Ls(ctx context.Context, path string) ([]string, error) {
	var res api.LsResult
	_, err := c.rpc.Call(ctx, api.MethodLs, &api.LsParams{Path: path}, &res)
	if err != nil {
		return nil, err
	}
	return res.Children, nil
}

// Match returns up to limit matching paths and the true total match
// count, which exceeds len(matches) when the result was truncated.
func (c *Client) Match(ctx context.Context, pattern string, limit int) ([]string, int, error) {
	var res api.MatchResult
	_, err := c.rpc.Call(ctx, api.MethodMatch,
		&api.MatchParams{Pattern: pattern, Limit: limit}, &res)
	if err != nil {
		return nil, 0, err
	}
	return res.Matches, res.Total, nil
}

func (c *Client) Print(ctx context.Context, prefix string) (string, error) {
	var res api.PrintResult
	_, err := c.rpc.Call(ctx, api.MethodPrint, &api.PrintParams{Prefix: prefix}, &res)
	if err != nil {
		return "", err
	}
	return res.Text, nil
}

func (c *Client) Save(ctx context.Context) error {
	_, err := c.rpc.Call(ctx, api.MethodSave, &struct{}{}, nil)
	return err
}

// Check runs the daemon's structural self-check. A non-nil error is a
// transport failure; a corrupt store comes back as (false, detail).
func (c *Client) Check(ctx context.Context) (bool, string, error) {
	var res api.CheckResult
	_, err := c.rpc.Call(ctx, api.MethodCheck, &struct{}{}, &res)
	if err != nil {
		return false, "", err
	}
	return res.OK, res.Detail, nil
}

func (c *Client) Stats(ctx context.Context) (*api.StatsResult, error) {
	var res api.StatsResult
	_, err := c.rpc.Call(ctx, api.MethodStats, &struct{}{}, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}
