// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package commands

import (
	"bytes"
	"context"
	"encoding/hex"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-ledger-desk/internal/ledgertest"
	"github.com/MKhiriev/go-ledger-desk/internal/protocol"
	"github.com/MKhiriev/go-ledger-desk/internal/service"
)

const testPassword = "bluecircle123"

// run выполняет ledgerctl с общими флагами подключения и возвращает stdout.
func run(t *testing.T, c *cli, srv *ledgertest.Server, journal string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	root := newRootCommand(c)
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(append(args,
		"--address", srv.Addr(),
		"--journal", journal,
		"--log-level", "error",
		"--io-timeout", "1s",
	))

	err := c.execute(context.Background(), root)
	return out.String(), err
}

func newCLI() *cli {
	return &cli{promptPassword: func(*cobra.Command) (string, error) { return "", ErrPasswordRequired }}
}

func TestTransfer_SendsExactFrame(t *testing.T) {
	srv := ledgertest.NewServer(t, ledgertest.Options{Password: testPassword, Balance: 1000})
	journal := filepath.Join(t.TempDir(), "journal.db")

	out, err := run(t, newCLI(), srv, journal, "transfer", "--password", testPassword, "--to", "1", "--amount", "85")
	require.NoError(t, err)
	assert.Contains(t, out, "85 -> New York (isolated)")

	transfers := srv.WaitForRequests(t, protocol.OpTransfer, 1, 2*time.Second)
	require.Len(t, transfers, 1)
	assert.Contains(t, hex.EncodeToString(srv.Raw()), "020000000001000000"+"55000000")

	out, err = run(t, newCLI(), srv, journal, "history", "--limit", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "Calgary")
	assert.Contains(t, out, "isolated")
}

func TestBalance(t *testing.T) {
	srv := ledgertest.NewServer(t, ledgertest.Options{Password: testPassword, Balance: -325})

	out, err := run(t, newCLI(), srv, filepath.Join(t.TempDir(), "j.db"), "balance", "--password", testPassword)
	require.NoError(t, err)
	assert.Equal(t, "Calgary (#0): -325\n", out)
}

func TestBurst(t *testing.T) {
	srv := ledgertest.NewServer(t, ledgertest.Options{Password: testPassword, Balance: 1000})

	out, err := run(t, newCLI(), srv, filepath.Join(t.TempDir(), "j.db"),
		"burst", "--password", testPassword, "--to", "2", "--amount", "100", "--count", "4", "--watch", "--interval", "20ms")
	require.NoError(t, err)
	assert.Contains(t, out, "sent 4/4 transfers of 100 -> Singapore")
	assert.Contains(t, out, "balance ")

	srv.WaitForRequests(t, protocol.OpTransfer, 4, 2*time.Second)
	assert.Eventually(t, func() bool { return srv.Balance(0) == 600 }, time.Second, 5*time.Millisecond)
}

func TestPasswordFromPrompt(t *testing.T) {
	srv := ledgertest.NewServer(t, ledgertest.Options{Password: testPassword, Balance: 1})

	prompted := 0
	c := &cli{promptPassword: func(*cobra.Command) (string, error) {
		prompted++
		return testPassword, nil
	}}

	out, err := run(t, c, srv, filepath.Join(t.TempDir(), "j.db"), "balance")
	require.NoError(t, err)
	assert.Equal(t, 1, prompted)
	assert.Contains(t, out, ": 1")
}

func TestPasswordFromEnv(t *testing.T) {
	srv := ledgertest.NewServer(t, ledgertest.Options{Password: testPassword, Balance: 7})
	t.Setenv("LEDGER_ADAPTER_PASSWORD", testPassword)

	out, err := run(t, newCLI(), srv, filepath.Join(t.TempDir(), "j.db"), "balance")
	require.NoError(t, err)
	assert.Contains(t, out, ": 7")
}

func TestPasswordMissing(t *testing.T) {
	srv := ledgertest.NewServer(t, ledgertest.Options{Password: testPassword})

	_, err := run(t, newCLI(), srv, filepath.Join(t.TempDir(), "j.db"), "balance")
	assert.ErrorIs(t, err, ErrPasswordRequired)
	assert.Empty(t, srv.Connections())
}

func TestWrongPassword(t *testing.T) {
	srv := ledgertest.NewServer(t, ledgertest.Options{Password: testPassword})

	_, err := run(t, newCLI(), srv, filepath.Join(t.TempDir(), "j.db"), "balance", "--password", "nope")
	assert.ErrorIs(t, err, service.ErrWrongPassword)
}

func TestFailedCommandReleasesResources(t *testing.T) {
	srv := ledgertest.NewServer(t, ledgertest.Options{Password: testPassword})
	journal := filepath.Join(t.TempDir(), "j.db")

	c := newCLI()
	_, err := run(t, c, srv, journal,
		"transfer", "--password", testPassword, "--to", "1", "--amount=-5", "--pipelined", "--reject-negative")
	require.ErrorIs(t, err, service.ErrNegativeAmount)

	// сессия и журнал закрыты, хотя RunE вернул ошибку
	assert.Nil(t, c.services)
	assert.Nil(t, c.storages)

	c = newCLI()
	_, err = run(t, c, srv, journal, "balance", "--password", "nope")
	require.ErrorIs(t, err, service.ErrWrongPassword)
	assert.Nil(t, c.storages)
}

func TestRejectNegative(t *testing.T) {
	srv := ledgertest.NewServer(t, ledgertest.Options{Password: testPassword})

	_, err := run(t, newCLI(), srv, filepath.Join(t.TempDir(), "j.db"),
		"transfer", "--password", testPassword, "--to", "1", "--amount=-5", "--reject-negative")
	assert.ErrorIs(t, err, service.ErrNegativeAmount)
	assert.Empty(t, srv.Transfers())
}

func TestVersion(t *testing.T) {
	SetBuildInfo("v0.3.0", "", "")

	var out bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&out)
	root.SetArgs([]string{"version"})
	require.NoError(t, root.Execute())

	assert.Contains(t, out.String(), "Build version: v0.3.0")
	assert.Contains(t, out.String(), "Build date: N/A")
}
