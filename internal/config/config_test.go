package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/MKhiriev/go-ledger-desk/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestGetClientConfig_Defaults(t *testing.T) {
	cfg, err := GetClientConfig("test", nil)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:3402", cfg.Adapter.Address)
	assert.Equal(t, uint8(0), cfg.Adapter.Region)
	assert.Equal(t, 3*time.Second, cfg.Adapter.DialTimeout)
	assert.Equal(t, 5*time.Second, cfg.Adapter.IOTimeout)
	assert.Equal(t, 100*time.Millisecond, cfg.Workers.BalanceInterval)
	assert.Equal(t, models.ObserverIsolated, cfg.Workers.ObserverMode)
	assert.Equal(t, "ledger-desk.db", cfg.Storage.JournalDSN)
	assert.Empty(t, cfg.Status.Address)
	assert.False(t, cfg.Policy.RejectNegative)
}

func TestGetClientConfig_Flags(t *testing.T) {
	cfg, err := GetClientConfig("test", []string{
		"-a", "10.0.0.5:4000",
		"-r", "2",
		"--password", "bluecircle123",
		"--io-timeout", "750ms",
		"-i", "250ms",
		"--observer-mode", "reuse",
		"-d", "/tmp/journal.db",
		"--status-address", "127.0.0.1:9100",
		"--log-level", "debug",
		"--reject-negative",
	})
	require.NoError(t, err)

	assert.Equal(t, "10.0.0.5:4000", cfg.Adapter.Address)
	assert.Equal(t, uint8(2), cfg.Adapter.Region)
	assert.Equal(t, "bluecircle123", cfg.Adapter.Password)
	assert.Equal(t, 750*time.Millisecond, cfg.Adapter.IOTimeout)
	assert.Equal(t, 3*time.Second, cfg.Adapter.DialTimeout)
	assert.Equal(t, 250*time.Millisecond, cfg.Workers.BalanceInterval)
	assert.Equal(t, models.ObserverReuse, cfg.Workers.ObserverMode)
	assert.Equal(t, "/tmp/journal.db", cfg.Storage.JournalDSN)
	assert.Equal(t, "127.0.0.1:9100", cfg.Status.Address)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Policy.RejectNegative)
}

func TestGetClientConfig_Priority(t *testing.T) {
	path := writeFile(t, "desk.yaml", `
adapter:
  address: "10.1.1.1:3402"
  region: 1
  io_timeout: 2s
workers:
  balance_interval: 400ms
storage:
  journal_dsn: file.db
`)

	t.Setenv("LEDGER_CONFIG", path)
	t.Setenv("LEDGER_ADAPTER_REGION", "2")
	t.Setenv("LEDGER_STORAGE_JOURNAL_DSN", "env.db")

	cfg, err := GetClientConfig("test", []string{"-d", "flag.db"})
	require.NoError(t, err)

	// file over defaults
	assert.Equal(t, "10.1.1.1:3402", cfg.Adapter.Address)
	assert.Equal(t, 2*time.Second, cfg.Adapter.IOTimeout)
	assert.Equal(t, 400*time.Millisecond, cfg.Workers.BalanceInterval)
	// env over file
	assert.Equal(t, uint8(2), cfg.Adapter.Region)
	// flags over env
	assert.Equal(t, "flag.db", cfg.Storage.JournalDSN)
}

func TestParseFile_JSON(t *testing.T) {
	path := writeFile(t, "desk.json", `{
		"adapter": {"address": "localhost:3402", "region": 1, "dial_timeout": "1s", "io_timeout": 2000000000},
		"workers": {"balance_interval": "50ms", "observer_mode": "reuse"},
		"status": {"address": ":9100"},
		"policy": {"reject_negative": true}
	}`)

	cfg, err := parseFile(path)
	require.NoError(t, err)

	assert.Equal(t, "localhost:3402", cfg.Adapter.Address)
	assert.Equal(t, uint8(1), cfg.Adapter.Region)
	assert.Equal(t, time.Second, cfg.Adapter.DialTimeout)
	assert.Equal(t, 2*time.Second, cfg.Adapter.IOTimeout)
	assert.Equal(t, 50*time.Millisecond, cfg.Workers.BalanceInterval)
	assert.Equal(t, "reuse", cfg.Workers.ObserverMode)
	assert.Equal(t, ":9100", cfg.Status.Address)
	assert.True(t, cfg.Policy.RejectNegative)
}

func TestParseFile_Errors(t *testing.T) {
	_, err := parseFile(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)

	_, err = parseFile(writeFile(t, "bad.json", `{"adapter": {"io_timeout": "soon"}}`))
	require.Error(t, err)

	_, err = parseFile(writeFile(t, "bad.yml", "workers:\n  balance_interval: [1, 2]\n"))
	require.Error(t, err)
}

func TestGetClientConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{"unknown observer mode", []string{"--observer-mode", "sometimes"}, ErrInvalidWorkerConfigs},
		{"unknown log level", []string{"--log-level", "loud"}, ErrInvalidLogConfigs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GetClientConfig("test", tt.args)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// mergo skips zero values, so a zero flag cannot clear a default.
func TestGetClientConfig_ZeroFlagKeepsDefault(t *testing.T) {
	cfg, err := GetClientConfig("test", []string{"--interval", "0s"})
	require.NoError(t, err)
	assert.Equal(t, 100*time.Millisecond, cfg.Workers.BalanceInterval)
}

func TestClientConfig_Validate(t *testing.T) {
	valid := func() *ClientConfig { return newClientConfig(Defaults()) }

	cfg := valid()
	require.NoError(t, cfg.validate())

	cfg = valid()
	cfg.Adapter.Address = "no-port"
	assert.ErrorIs(t, cfg.validate(), ErrInvalidAdapterConfigs)

	cfg = valid()
	cfg.Adapter.IOTimeout = 0
	assert.ErrorIs(t, cfg.validate(), ErrInvalidAdapterConfigs)

	cfg = valid()
	cfg.Storage.JournalDSN = ""
	assert.ErrorIs(t, cfg.validate(), ErrInvalidStorageConfigs)

	cfg = valid()
	cfg.Workers.BalanceInterval = -time.Second
	assert.ErrorIs(t, cfg.validate(), ErrInvalidWorkerConfigs)

	cfg = valid()
	cfg.Status.Address = "9100"
	assert.ErrorIs(t, cfg.validate(), ErrInvalidStatusConfigs)
}

func TestNetAddress(t *testing.T) {
	var a NetAddress
	assert.Equal(t, "", a.String())
	assert.Equal(t, "host:port", a.Type())

	require.NoError(t, a.Set("localhost:3402"))
	assert.Equal(t, "localhost:3402", a.String())

	require.NoError(t, a.Set("ledger.internal:80"))
	assert.Equal(t, "ledger.internal:80", a.String())

	require.NoError(t, a.Set("[::1]:3402"))
	assert.Equal(t, "[::1]:3402", a.String())

	assert.Error(t, a.Set("localhost"))
	assert.Error(t, a.Set("localhost:abc"))
	assert.Error(t, a.Set("localhost:0"))
	assert.Error(t, a.Set("localhost:70000"))
}
