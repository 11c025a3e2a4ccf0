// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package ledgertest provides an in-process ledger server for tests.
//
// The server speaks the real wire protocol on a loopback TCP port, applies
// transfers to a per-region balance table and records every byte and every
// decoded request per connection so tests can assert on the exact frames a
// client produced.
package ledgertest

import (
	"bytes"
	"io"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/go-ledger-desk/internal/protocol"
	"github.com/stretchr/testify/require"
)

// Options controls the server's behaviour.
type Options struct {
	// Password is the credential the server accepts.
	Password string

	// Balance is the starting balance of every region.
	Balance int32

	// AuthReply, when non-nil, is written instead of the handshake verdict.
	// An empty non-nil slice closes the connection without a reply.
	AuthReply []byte

	// BalanceReply, when non-nil, is written instead of the encoded balance
	// and the connection is closed afterwards.
	BalanceReply []byte

	// Stall makes the server read requests and never answer them.
	Stall bool
}

// Conn is the record of one accepted connection.
type Conn struct {
	mu       sync.Mutex
	raw      bytes.Buffer
	requests []protocol.Request
	region   uint8
	authed   bool
}

func (c *Conn) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.raw.Write(p)
}

// Raw returns every byte the client sent on this connection.
func (c *Conn) Raw() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return bytes.Clone(c.raw.Bytes())
}

// Requests returns the decoded requests in arrival order.
func (c *Conn) Requests() []protocol.Request {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]protocol.Request(nil), c.requests...)
}

func (c *Conn) add(req protocol.Request) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.requests = append(c.requests, req)
}

// Server is a fake ledger listening on 127.0.0.1.
type Server struct {
	ln   net.Listener
	opts Options

	mu       sync.Mutex
	balances map[int32]int32
	conns    []*Conn
	live     map[net.Conn]struct{}

	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// NewServer starts a server and registers its shutdown with t.Cleanup.
func NewServer(t testing.TB, opts Options) *Server {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	s := &Server{
		ln:       ln,
		opts:     opts,
		balances: make(map[int32]int32),
		live:     make(map[net.Conn]struct{}),
		done:     make(chan struct{}),
	}

	s.wg.Add(1)
	go s.accept()
	t.Cleanup(s.Close)

	return s
}

// Addr returns the host:port the server listens on.
func (s *Server) Addr() string {
	return s.ln.Addr().String()
}

// Close stops the listener, drops every connection and waits for the
// handlers to exit. It is safe to call more than once.
func (s *Server) Close() {
	s.closeOnce.Do(func() { close(s.done) })

	_ = s.ln.Close()
	s.mu.Lock()
	for c := range s.live {
		_ = c.Close()
	}
	s.mu.Unlock()
	s.wg.Wait()
}

// Balance returns the current balance of region.
func (s *Server) Balance(region int32) int32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.balanceLocked(region)
}

// SetBalance overrides the balance of region.
func (s *Server) SetBalance(region, amount int32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.balances[region] = amount
}

// Connections returns the records of every connection accepted so far.
func (s *Server) Connections() []*Conn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*Conn(nil), s.conns...)
}

// Requests returns all decoded requests, grouped by connection in accept
// order.
func (s *Server) Requests() []protocol.Request {
	var out []protocol.Request
	for _, c := range s.Connections() {
		out = append(out, c.Requests()...)
	}
	return out
}

// Transfers returns only the transfer requests.
func (s *Server) Transfers() []protocol.Request {
	var out []protocol.Request
	for _, req := range s.Requests() {
		if req.Op == protocol.OpTransfer {
			out = append(out, req)
		}
	}
	return out
}

// Raw returns the bytes of every connection concatenated in accept order.
func (s *Server) Raw() []byte {
	var out []byte
	for _, c := range s.Connections() {
		out = append(out, c.Raw()...)
	}
	return out
}

// WaitForRequests blocks until at least n requests with opcode op were
// received and returns them.
func (s *Server) WaitForRequests(t testing.TB, op protocol.Opcode, n int, timeout time.Duration) []protocol.Request {
	t.Helper()

	var got []protocol.Request
	require.Eventually(t, func() bool {
		got = got[:0]
		for _, req := range s.Requests() {
			if req.Op == op {
				got = append(got, req)
			}
		}
		return len(got) >= n
	}, timeout, 5*time.Millisecond, "waiting for %d %s requests", n, op)

	return got
}

func (s *Server) balanceLocked(region int32) int32 {
	if v, ok := s.balances[region]; ok {
		return v
	}
	return s.opts.Balance
}

func (s *Server) accept() {
	defer s.wg.Done()

	for {
		conn, err := s.ln.Accept()
		if err != nil {
			return
		}

		rec := &Conn{}
		s.mu.Lock()
		select {
		case <-s.done:
			s.mu.Unlock()
			_ = conn.Close()
			return
		default:
		}
		s.conns = append(s.conns, rec)
		s.live[conn] = struct{}{}
		s.mu.Unlock()

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			defer func() {
				s.mu.Lock()
				delete(s.live, conn)
				s.mu.Unlock()
				_ = conn.Close()
			}()
			s.serve(conn, rec)
		}()
	}
}

func (s *Server) serve(conn net.Conn, rec *Conn) {
	r := io.TeeReader(conn, rec)

	for {
		req, err := protocol.ReadRequest(r)
		if err != nil {
			// EOF, a closed listener or a malformed frame all end the
			// conversation
			return
		}
		rec.add(req)

		if s.opts.Stall {
			continue
		}

		if !s.handle(conn, rec, req) {
			return
		}
	}
}

// handle answers one request. It returns false when the connection must be
// dropped.
func (s *Server) handle(conn net.Conn, rec *Conn, req protocol.Request) bool {
	switch req.Op {
	case protocol.OpAuthenticate:
		if rec.authed {
			return false
		}
		if s.opts.AuthReply != nil {
			if len(s.opts.AuthReply) == 0 {
				return false
			}
			_, _ = conn.Write(s.opts.AuthReply)
			rec.authed = s.opts.AuthReply[0] == protocol.AuthAccepted
			return rec.authed
		}
		if req.Credential != s.opts.Password {
			_, _ = conn.Write([]byte{protocol.AuthDenied})
			return false
		}
		rec.authed = true
		rec.region = req.Region
		_, err := conn.Write([]byte{protocol.AuthAccepted})
		return err == nil

	case protocol.OpQueryBalance:
		if !rec.authed {
			return false
		}
		if s.opts.BalanceReply != nil {
			_, _ = conn.Write(s.opts.BalanceReply)
			return false
		}
		reply := protocol.EncodeBalance(s.Balance(int32(rec.region)))
		_, err := conn.Write(reply[:])
		return err == nil

	case protocol.OpTransfer:
		if !rec.authed {
			return false
		}
		s.mu.Lock()
		s.balances[req.Sender] = s.balanceLocked(req.Sender) - req.Amount
		s.balances[req.Recipient] = s.balanceLocked(req.Recipient) + req.Amount
		s.mu.Unlock()
		return true
	}

	return false
}
