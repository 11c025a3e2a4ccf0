// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"
	"io"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/go-ledger-desk/internal/logger"
	"github.com/MKhiriev/go-ledger-desk/internal/protocol"
	"github.com/MKhiriev/go-ledger-desk/models"
)

// State is the lifecycle state of a [Session].
type State int32

const (
	StateUnauthenticated State = iota
	StateAuthenticated
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticated:
		return "authenticated"
	case StateClosed:
		return "closed"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// AuthResult is the outcome of a well-formed handshake exchange.
type AuthResult int

const (
	// AuthFailed accompanies a non-nil error: the exchange did not complete.
	AuthFailed AuthResult = iota
	// AuthOK means the ledger answered 0x01.
	AuthOK
	// AuthRejected means the ledger answered with any other byte.
	AuthRejected
)

func (r AuthResult) String() string {
	switch r {
	case AuthOK:
		return "ok"
	case AuthRejected:
		return "rejected"
	default:
		return "failed"
	}
}

// Dialer opens the TCP stream for a session. *net.Dialer satisfies it.
type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

// SessionOptions configures a [Session].
type SessionOptions struct {
	Endpoint    string
	Region      uint8
	Credential  string
	DialTimeout time.Duration
	IOTimeout   time.Duration

	// Dialer defaults to a *net.Dialer.
	Dialer  Dialer
	Metrics *Metrics
	Logger  *logger.Logger
}

// Session is one authenticated conversation with the ledger over a single TCP
// stream. It moves Unauthenticated -> Authenticated -> Closed and never back;
// a new handshake needs a new Session.
//
// Frames are written in call order. Concurrent callers are serialised so that
// frames are never interleaved, and Close may be called from any goroutine to
// abort a blocked operation.
type Session struct {
	endpoint    string
	region      uint8
	credential  string
	dialTimeout time.Duration
	ioTimeout   time.Duration
	dialer      Dialer
	metrics     *Metrics
	logger      *logger.Logger

	// ioMu keeps one frame exchange on the wire at a time.
	ioMu sync.Mutex

	connMu sync.Mutex
	conn   net.Conn

	state atomic.Int32
}

// aLongTimeAgo is a deadline in the past that makes pending I/O return
// immediately.
var aLongTimeAgo = time.Unix(1, 0)

// NewSession builds an unauthenticated session. No connection is made until
// Authenticate.
func NewSession(opts SessionOptions) *Session {
	if opts.Dialer == nil {
		opts.Dialer = &net.Dialer{}
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}

	return &Session{
		endpoint:    opts.Endpoint,
		region:      opts.Region,
		credential:  opts.Credential,
		dialTimeout: opts.DialTimeout,
		ioTimeout:   opts.IOTimeout,
		dialer:      opts.Dialer,
		metrics:     opts.Metrics,
		logger:      opts.Logger,
	}
}

// State returns the current state. Safe for concurrent use.
func (s *Session) State() State {
	return State(s.state.Load())
}

// Region returns the region the session authenticates as.
func (s *Session) Region() uint8 {
	return s.region
}

// Endpoint returns the ledger address.
func (s *Session) Endpoint() string {
	return s.endpoint
}

// Authenticate dials the ledger, sends the handshake and reads the one-byte
// verdict. A rejected credential is reported as AuthRejected with a nil
// error; the session is closed in that case and on every error.
func (s *Session) Authenticate(ctx context.Context) (AuthResult, error) {
	s.ioMu.Lock()
	defer s.ioMu.Unlock()

	const op = "authenticate"

	if st := s.State(); st != StateUnauthenticated {
		return AuthFailed, fmt.Errorf("%w: %s in state %s", ErrInvalidState, op, st)
	}

	frame, err := protocol.AppendHandshake(make([]byte, 0, 6+len(s.credential)), s.region, s.credential)
	if err != nil {
		s.fail()
		return AuthFailed, fmt.Errorf("%w: %s: %w", ErrProtocol, op, err)
	}

	if err := ctx.Err(); err != nil {
		s.fail()
		return AuthFailed, fmt.Errorf("%w: %s: %w", ErrConnection, op, err)
	}

	dialCtx := ctx
	if s.dialTimeout > 0 {
		var cancel context.CancelFunc
		dialCtx, cancel = context.WithTimeout(ctx, s.dialTimeout)
		defer cancel()
	}

	conn, err := s.dialer.DialContext(dialCtx, "tcp", s.endpoint)
	if err != nil {
		s.fail()
		s.metrics.failure(op, "dial")
		return AuthFailed, mapNetError(ctx, op, "dial", err, false)
	}

	if !s.attach(conn) {
		_ = conn.Close()
		return AuthFailed, fmt.Errorf("%w: %s: session closed while dialing", ErrConnection, op)
	}

	var reply [protocol.AuthReplyLength]byte
	if err := s.exchange(ctx, op, protocol.OpAuthenticate, frame, reply[:], false); err != nil {
		return AuthFailed, err
	}

	if reply[0] != protocol.AuthAccepted {
		s.fail()
		s.metrics.auth(AuthRejected)
		s.logger.Debug().
			Str("func", "*Session.Authenticate").
			Str("endpoint", s.endpoint).
			Uint8("region", s.region).
			Uint8("reply", reply[0]).
			Msg("credential rejected")
		return AuthRejected, nil
	}

	// Close may have won the race while the reply was in flight.
	if !s.state.CompareAndSwap(int32(StateUnauthenticated), int32(StateAuthenticated)) {
		return AuthFailed, fmt.Errorf("%w: %s: session closed during handshake", ErrConnection, op)
	}
	s.metrics.auth(AuthOK)

	return AuthOK, nil
}

// QueryBalance requests the balance of the session's account. A reply shorter
// than four bytes yields ErrProtocol and closes the session.
func (s *Session) QueryBalance(ctx context.Context) (int32, error) {
	s.ioMu.Lock()
	defer s.ioMu.Unlock()

	const op = "query balance"

	if err := s.requireAuthenticated(ctx, op); err != nil {
		return 0, err
	}

	var reply [protocol.BalanceReplyLength]byte
	if err := s.exchange(ctx, op, protocol.OpQueryBalance, protocol.AppendBalanceQuery(nil), reply[:], true); err != nil {
		return 0, err
	}

	return protocol.DecodeBalance(reply), nil
}

// Transfer sends one transfer frame from the session's region. The ledger
// does not answer, so a nil error only means the frame was handed to the
// kernel.
func (s *Session) Transfer(ctx context.Context, req models.TransferRequest) error {
	s.ioMu.Lock()
	defer s.ioMu.Unlock()

	const op = "transfer"

	if err := s.requireAuthenticated(ctx, op); err != nil {
		return err
	}

	frame := protocol.AppendTransfer(make([]byte, 0, protocol.TransferFrameLength), int32(s.region), req.Recipient, req.Amount)
	return s.exchange(ctx, op, protocol.OpTransfer, frame, nil, false)
}

// Close releases the connection. It is idempotent and safe in every state.
func (s *Session) Close() error {
	s.connMu.Lock()
	defer s.connMu.Unlock()

	s.state.Store(int32(StateClosed))
	if s.conn == nil {
		return nil
	}

	err := s.conn.Close()
	s.conn = nil
	return err
}

func (s *Session) fail() {
	_ = s.Close()
}

// attach stores conn unless the session was closed while dialing.
func (s *Session) attach(conn net.Conn) bool {
	s.connMu.Lock()
	defer s.connMu.Unlock()

	if s.State() == StateClosed {
		return false
	}
	s.conn = conn
	return true
}

func (s *Session) currentConn() net.Conn {
	s.connMu.Lock()
	defer s.connMu.Unlock()
	return s.conn
}

func (s *Session) requireAuthenticated(ctx context.Context, op string) error {
	if st := s.State(); st != StateAuthenticated {
		return fmt.Errorf("%w: %s in state %s", ErrInvalidState, op, st)
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrConnection, op, err)
	}
	return nil
}

// exchange writes frame and, when reply is non-empty, fills it completely.
// The deadline is the earlier of the I/O timeout and the context deadline;
// cancelling ctx moves the deadline into the past. Any failure closes the
// session.
func (s *Session) exchange(ctx context.Context, op string, code protocol.Opcode, frame, reply []byte, shortReadIsProtocol bool) error {
	conn := s.currentConn()
	if conn == nil {
		return fmt.Errorf("%w: %s: session closed", ErrConnection, op)
	}

	var deadline time.Time
	if s.ioTimeout > 0 {
		deadline = time.Now().Add(s.ioTimeout)
	}
	if d, ok := ctx.Deadline(); ok && (deadline.IsZero() || d.Before(deadline)) {
		deadline = d
	}
	if err := conn.SetDeadline(deadline); err != nil {
		s.fail()
		return mapNetError(ctx, op, "deadline", err, false)
	}

	fired := make(chan struct{})
	stop := context.AfterFunc(ctx, func() {
		_ = conn.SetDeadline(aLongTimeAgo)
		close(fired)
	})
	defer func() {
		if !stop() {
			// the abort ran, or is running; let it finish before the next
			// exchange sets a fresh deadline
			<-fired
		}
	}()

	if _, err := conn.Write(frame); err != nil {
		s.fail()
		s.metrics.failure(op, "write")
		return mapNetError(ctx, op, "write", err, false)
	}
	s.metrics.frame(code)

	if len(reply) == 0 {
		return nil
	}

	if _, err := io.ReadFull(conn, reply); err != nil {
		s.fail()
		s.metrics.failure(op, "read")
		return mapNetError(ctx, op, "read", err, shortReadIsProtocol)
	}

	return nil
}
