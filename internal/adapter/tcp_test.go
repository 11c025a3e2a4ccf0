// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"errors"
	"io"
	"os"
	"testing"
	"time"

	"github.com/MKhiriev/go-ledger-desk/internal/config"
	"github.com/MKhiriev/go-ledger-desk/internal/ledgertest"
	"github.com/MKhiriev/go-ledger-desk/internal/logger"
	"github.com/MKhiriev/go-ledger-desk/internal/protocol"
	"github.com/MKhiriev/go-ledger-desk/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestAdapter создаёт tcpServerAdapter, направленный на тестовый сервер
func newTestAdapter(t *testing.T, addr string, metrics *Metrics) ServerAdapter {
	t.Helper()
	a, err := NewTCPServerAdapter(config.ClientAdapter{
		Address:     addr,
		Region:      0,
		DialTimeout: time.Second,
		IOTimeout:   2 * time.Second,
	}, metrics, logger.Nop())
	require.NoError(t, err)
	return a
}

func TestNewTCPServerAdapter_InvalidAddress(t *testing.T) {
	for _, addr := range []string{"", "localhost", "no-port"} {
		_, err := NewTCPServerAdapter(config.ClientAdapter{Address: addr}, nil, nil)
		assert.Error(t, err, "address %q", addr)
	}
}

func TestTCPServerAdapter_Accessors(t *testing.T) {
	a, err := NewTCPServerAdapter(config.ClientAdapter{Address: " 10.0.0.1:3402 ", Region: 2}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.1:3402", a.Endpoint())
	assert.Equal(t, uint8(2), a.Region())

	s := a.NewSession("pw")
	assert.Equal(t, StateUnauthenticated, s.State())
	assert.Equal(t, uint8(2), s.Region())
	assert.Equal(t, "10.0.0.1:3402", s.Endpoint())
}

func TestTCPServerAdapter_CheckCredentials(t *testing.T) {
	srv := ledgertest.NewServer(t, ledgertest.Options{Password: testPassword})
	a := newTestAdapter(t, srv.Addr(), nil)

	result, err := a.CheckCredentials(context.Background(), testPassword)
	require.NoError(t, err)
	assert.Equal(t, AuthOK, result)

	result, err = a.CheckCredentials(context.Background(), "wrong")
	require.NoError(t, err)
	assert.Equal(t, AuthRejected, result)

	assert.Len(t, srv.Connections(), 2)
}

func TestTCPServerAdapter_OpenSession(t *testing.T) {
	srv := ledgertest.NewServer(t, ledgertest.Options{Password: testPassword, Balance: 42})
	a := newTestAdapter(t, srv.Addr(), nil)

	s, result, err := a.OpenSession(context.Background(), testPassword)
	require.NoError(t, err)
	require.Equal(t, AuthOK, result)
	require.NotNil(t, s)
	defer s.Close()

	balance, err := s.QueryBalance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(42), balance)

	s2, result, err := a.OpenSession(context.Background(), "wrong")
	require.NoError(t, err)
	assert.Equal(t, AuthRejected, result)
	assert.Nil(t, s2)
}

func TestTCPServerAdapter_IsolatedOpensFreshConnections(t *testing.T) {
	srv := ledgertest.NewServer(t, ledgertest.Options{Password: testPassword, Balance: 1000})
	a := newTestAdapter(t, srv.Addr(), nil)
	ctx := context.Background()

	balance, err := a.QueryBalance(ctx, testPassword)
	require.NoError(t, err)
	assert.Equal(t, int32(1000), balance)

	require.NoError(t, a.Transfer(ctx, testPassword, models.TransferRequest{Recipient: 1, Amount: 85}))
	require.NoError(t, a.Transfer(ctx, testPassword, models.TransferRequest{Recipient: 2, Amount: 15}))

	srv.WaitForRequests(t, protocol.OpTransfer, 2, 2*time.Second)

	conns := srv.Connections()
	require.Len(t, conns, 3)
	for _, c := range conns {
		reqs := c.Requests()
		require.Len(t, reqs, 2, "each isolated op re-authenticates")
		assert.Equal(t, protocol.OpAuthenticate, reqs[0].Op)
	}

	assert.Eventually(t, func() bool { return srv.Balance(0) == 900 }, time.Second, 5*time.Millisecond)
}

func TestTCPServerAdapter_IsolatedRejected(t *testing.T) {
	srv := ledgertest.NewServer(t, ledgertest.Options{Password: testPassword})
	a := newTestAdapter(t, srv.Addr(), nil)
	ctx := context.Background()

	_, err := a.QueryBalance(ctx, "wrong")
	assert.ErrorIs(t, err, ErrAuthRejected)

	err = a.Transfer(ctx, "wrong", models.TransferRequest{Recipient: 1, Amount: 1})
	assert.ErrorIs(t, err, ErrAuthRejected)

	assert.Empty(t, srv.Transfers())
}

func TestTCPServerAdapter_IsolatedProtocolError(t *testing.T) {
	srv := ledgertest.NewServer(t, ledgertest.Options{Password: testPassword, BalanceReply: []byte{1, 2}})
	a := newTestAdapter(t, srv.Addr(), nil)

	_, err := a.QueryBalance(context.Background(), testPassword)
	assert.ErrorIs(t, err, ErrProtocol)
}

func TestMetrics_Counts(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	srv := ledgertest.NewServer(t, ledgertest.Options{Password: testPassword})
	a := newTestAdapter(t, srv.Addr(), m)
	ctx := context.Background()

	s, _, err := a.OpenSession(ctx, testPassword)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		require.NoError(t, s.Transfer(ctx, models.TransferRequest{Recipient: 1, Amount: 1}))
	}
	_, err = s.QueryBalance(ctx)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, err = a.CheckCredentials(ctx, "wrong")
	require.NoError(t, err)

	assert.Equal(t, float64(3), testutil.ToFloat64(m.frames.WithLabelValues("transfer")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.frames.WithLabelValues("query_balance")))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.frames.WithLabelValues("authenticate")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.auths.WithLabelValues("ok")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.auths.WithLabelValues("rejected")))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.frame(protocol.OpTransfer)
		m.auth(AuthOK)
		m.failure("transfer", "write")
	})
}

func TestMapNetError(t *testing.T) {
	live := context.Background()
	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name      string
		ctx       context.Context
		err       error
		shortRead bool
		want      error
		also      error
	}{
		{"short balance reply", live, io.ErrUnexpectedEOF, true, ErrProtocol, nil},
		{"empty balance reply", live, io.EOF, true, ErrProtocol, nil},
		{"eof during handshake", live, io.EOF, false, ErrConnection, nil},
		{"deadline", live, os.ErrDeadlineExceeded, true, ErrConnection, nil},
		{"reset", live, errors.New("connection reset by peer"), false, ErrConnection, nil},
		{"cancelled wins", cancelled, io.ErrUnexpectedEOF, true, ErrConnection, context.Canceled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := mapNetError(tt.ctx, "op", "read", tt.err, tt.shortRead)
			assert.ErrorIs(t, err, tt.want)
			if tt.also != nil {
				assert.ErrorIs(t, err, tt.also)
			}
		})
	}
}
