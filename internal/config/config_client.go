// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"

	"github.com/MKhiriev/go-ledger-desk/models"
	"github.com/spf13/pflag"
)

// ClientAdapter holds the settings a ledger session is built from.
type ClientAdapter struct {
	Address     string
	Region      uint8
	Password    string
	DialTimeout time.Duration
	IOTimeout   time.Duration
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// JournalDSN is the SQLite file for the transfer journal.
	JournalDSN string
}

// ClientWorkers contains client background worker settings.
type ClientWorkers struct {
	// BalanceInterval defines the pause between balance polls.
	BalanceInterval time.Duration
	// ObserverMode decides whether the observer keeps its session.
	ObserverMode    models.ObserverMode
}

// ClientStatus holds the optional status server address.
type ClientStatus struct {
	Address string
}

// ClientLog holds the log file and level.
type ClientLog struct {
	File  string
	Level string
}

// ClientPolicy holds opt-in transfer checks.
type ClientPolicy struct {
	RejectNegative bool
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// Adapter contains the ledger endpoint and session timeouts.
	Adapter ClientAdapter
	// Storage contains client storage settings.
	Storage ClientStorage
	// Workers contains background job settings.
	Workers ClientWorkers
	Status  ClientStatus
	Log     ClientLog
	Policy  ClientPolicy
}

// GetClientConfig parses args with a fresh flag set and builds a validated
// client configuration from defaults, file, environment and flags.
func GetClientConfig(name string, args []string) (*ClientConfig, error) {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	loader := NewLoader(fs)
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return loader.Load()
}

func newClientConfig(cfg *StructuredConfig) *ClientConfig {
	return &ClientConfig{
		Adapter: ClientAdapter{
			Address:     cfg.Adapter.Address,
			Region:      cfg.Adapter.Region,
			Password:    cfg.Adapter.Password,
			DialTimeout: cfg.Adapter.DialTimeout,
			IOTimeout:   cfg.Adapter.IOTimeout,
		},
		Storage: ClientStorage{
			JournalDSN: cfg.Storage.JournalDSN,
		},
		Workers: ClientWorkers{
			BalanceInterval: cfg.Workers.BalanceInterval,
			ObserverMode:    models.ObserverMode(cfg.Workers.ObserverMode),
		},
		Status: ClientStatus{Address: cfg.Status.Address},
		Log:    ClientLog{File: cfg.Log.File, Level: cfg.Log.Level},
		Policy: ClientPolicy{RejectNegative: cfg.Policy.RejectNegative},
	}
}
