// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the transport layer for talking to the ledger
// server.
//
// [Session] owns one TCP stream and implements the handshake, balance query
// and transfer exchanges together with the session state machine.
// [ServerAdapter] builds sessions from the client configuration and offers
// both usage modes as first-class entry points:
//
//   - isolated: CheckCredentials, QueryBalance and Transfer each open a fresh
//     session, authenticate, perform one operation and close;
//   - pipelined: OpenSession returns one authenticated session that the
//     caller drives directly for any number of operations.
//
// Errors are mapped from net and io errors by mapNetError so that callers can
// use [errors.Is] against [ErrConnection], [ErrProtocol] and
// [ErrInvalidState].
package adapter

import (
	"context"

	"github.com/MKhiriev/go-ledger-desk/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines communication with the ledger server.
type ServerAdapter interface {
	// NewSession returns an unauthenticated session for credential. The
	// caller owns it and must Close it.
	NewSession(credential string) *Session

	// OpenSession creates a session and authenticates it. On AuthOK the
	// returned session is ready for pipelined use. On AuthRejected or error
	// the session is nil.
	OpenSession(ctx context.Context, credential string) (*Session, AuthResult, error)

	// CheckCredentials performs an isolated handshake and closes the
	// connection.
	CheckCredentials(ctx context.Context, credential string) (AuthResult, error)

	// QueryBalance performs an isolated balance query. A rejected credential
	// yields [ErrAuthRejected].
	QueryBalance(ctx context.Context, credential string) (int32, error)

	// Transfer performs an isolated transfer. A rejected credential yields
	// [ErrAuthRejected].
	Transfer(ctx context.Context, credential string, req models.TransferRequest) error

	// Region returns the configured region id.
	Region() uint8

	// Endpoint returns the configured ledger address.
	Endpoint() string
}
