// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// EnvPrefix is prepended to every environment variable the config reads.
const EnvPrefix = "LEDGER_"

// StructuredConfig is the top-level configuration container. It aggregates
// all sub-configurations and is populated by merging defaults, an optional
// config file, environment variables and command-line flags.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env:       direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Adapter holds the ledger endpoint and the session parameters.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds configuration for background worker processes.
	Workers Workers `envPrefix:"WORKERS_"`

	// Storage holds the local transfer journal settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Status holds the optional HTTP status server settings.
	Status Status `envPrefix:"STATUS_"`

	// Log holds log destination and level.
	Log Log `envPrefix:"LOG_"`

	// Policy holds opt-in client-side checks.
	Policy Policy `envPrefix:"POLICY_"`

	// ConfigPath is the optional path to a JSON or YAML configuration file.
	// Populated via LEDGER_CONFIG or the -c / --config flag.
	ConfigPath string `env:"CONFIG"`
}

// Adapter holds the ledger endpoint and session settings.
type Adapter struct {
	// Address is the ledger server in "host:port" format.
	// Env: LEDGER_ADAPTER_ADDRESS
	Address string `env:"ADDRESS"`

	// Region is the region id this client authenticates as and sends
	// transfers from.
	// Env: LEDGER_ADAPTER_REGION
	Region uint8 `env:"REGION"`

	// Password is the shared credential. Left empty, the binaries prompt for
	// it.
	// Env: LEDGER_ADAPTER_PASSWORD
	Password string `env:"PASSWORD"`

	// DialTimeout bounds establishing the TCP connection.
	// Env: LEDGER_ADAPTER_DIAL_TIMEOUT
	DialTimeout time.Duration `env:"DIAL_TIMEOUT"`

	// IOTimeout bounds every single read or write on a session.
	// Env: LEDGER_ADAPTER_IO_TIMEOUT
	IOTimeout time.Duration `env:"IO_TIMEOUT"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// BalanceInterval is the pause between the end of one balance poll and
	// the start of the next.
	// Env: LEDGER_WORKERS_BALANCE_INTERVAL
	BalanceInterval time.Duration `env:"BALANCE_INTERVAL"`

	// ObserverMode is "isolated" or "reuse".
	// Env: LEDGER_WORKERS_OBSERVER_MODE
	ObserverMode string `env:"OBSERVER_MODE"`
}

// Storage groups the local persistence settings.
type Storage struct {
	// JournalDSN is the SQLite file the transfer journal is kept in.
	// Env: LEDGER_STORAGE_JOURNAL_DSN
	JournalDSN string `env:"JOURNAL_DSN"`
}

// Status holds the status server settings. An empty Address disables it.
type Status struct {
	// Env: LEDGER_STATUS_ADDRESS
	Address string `env:"ADDRESS"`
}

// Log holds logging settings.
type Log struct {
	// File is the log file used by the interactive desk.
	// Env: LEDGER_LOG_FILE
	File string `env:"FILE"`

	// Level is a zerolog level name ("debug", "info", ...).
	// Env: LEDGER_LOG_LEVEL
	Level string `env:"LEVEL"`
}

// Policy holds opt-in client-side checks.
type Policy struct {
	// RejectNegative refuses transfers with a negative amount before any
	// network I/O.
	// Env: LEDGER_POLICY_REJECT_NEGATIVE
	RejectNegative bool `env:"REJECT_NEGATIVE"`
}

// Defaults returns the built-in configuration every other source is merged
// on top of.
func Defaults() *StructuredConfig {
	return &StructuredConfig{
		Adapter: Adapter{
			Address:     "127.0.0.1:3402",
			Region:      0,
			DialTimeout: 3 * time.Second,
			IOTimeout:   5 * time.Second,
		},
		Workers: Workers{
			BalanceInterval: 100 * time.Millisecond,
			ObserverMode:    "isolated",
		},
		Storage: Storage{
			JournalDSN: "ledger-desk.db",
		},
		Log: Log{
			File:  "ledger-desk.log",
			Level: "info",
		},
	}
}
