// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"
	"net"
	"strings"

	"github.com/MKhiriev/go-ledger-desk/internal/config"
	"github.com/MKhiriev/go-ledger-desk/internal/logger"
	"github.com/MKhiriev/go-ledger-desk/models"
)

type tcpServerAdapter struct {
	cfg     config.ClientAdapter
	dialer  Dialer
	metrics *Metrics

	logger *logger.Logger
}

// NewTCPServerAdapter constructs the TCP implementation of [ServerAdapter].
// metrics may be nil.
//
// Returns an error if adapterCfg.Address is not a valid host:port.
func NewTCPServerAdapter(adapterCfg config.ClientAdapter, metrics *Metrics, log *logger.Logger) (ServerAdapter, error) {
	if log == nil {
		log = logger.Nop()
	}

	adapterCfg.Address = strings.TrimSpace(adapterCfg.Address)
	if _, _, err := net.SplitHostPort(adapterCfg.Address); err != nil {
		return nil, fmt.Errorf("invalid adapter address %q: %w", adapterCfg.Address, err)
	}

	return &tcpServerAdapter{
		cfg:     adapterCfg,
		dialer:  &net.Dialer{},
		metrics: metrics,
		logger:  log,
	}, nil
}

func (t *tcpServerAdapter) Region() uint8 {
	return t.cfg.Region
}

func (t *tcpServerAdapter) Endpoint() string {
	return t.cfg.Address
}

func (t *tcpServerAdapter) NewSession(credential string) *Session {
	return NewSession(SessionOptions{
		Endpoint:    t.cfg.Address,
		Region:      t.cfg.Region,
		Credential:  credential,
		DialTimeout: t.cfg.DialTimeout,
		IOTimeout:   t.cfg.IOTimeout,
		Dialer:      t.dialer,
		Metrics:     t.metrics,
		Logger:      t.logger,
	})
}

func (t *tcpServerAdapter) OpenSession(ctx context.Context, credential string) (*Session, AuthResult, error) {
	session := t.NewSession(credential)

	result, err := session.Authenticate(ctx)
	if err != nil {
		t.logger.Err(err).
			Str("func", "*tcpServerAdapter.OpenSession").
			Str("endpoint", t.cfg.Address).
			Msg("handshake failed")
		return nil, result, err
	}
	if result != AuthOK {
		return nil, result, nil
	}

	return session, AuthOK, nil
}

func (t *tcpServerAdapter) CheckCredentials(ctx context.Context, credential string) (AuthResult, error) {
	session, result, err := t.OpenSession(ctx, credential)
	if session != nil {
		_ = session.Close()
	}
	return result, err
}

func (t *tcpServerAdapter) QueryBalance(ctx context.Context, credential string) (int32, error) {
	session, err := t.isolated(ctx, credential)
	if err != nil {
		return 0, err
	}
	defer session.Close()

	return session.QueryBalance(ctx)
}

func (t *tcpServerAdapter) Transfer(ctx context.Context, credential string, req models.TransferRequest) error {
	session, err := t.isolated(ctx, credential)
	if err != nil {
		return err
	}
	defer session.Close()

	return session.Transfer(ctx, req)
}

func (t *tcpServerAdapter) isolated(ctx context.Context, credential string) (*Session, error) {
	session, result, err := t.OpenSession(ctx, credential)
	if err != nil {
		return nil, err
	}
	if result == AuthRejected {
		return nil, ErrAuthRejected
	}
	return session, nil
}
