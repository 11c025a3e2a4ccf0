// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"net"

	"github.com/rs/zerolog"
)

func (cfg *ClientConfig) validate() error {
	if _, _, err := net.SplitHostPort(cfg.Adapter.Address); err != nil {
		return fmt.Errorf("%w: address %q: %v", ErrInvalidAdapterConfigs, cfg.Adapter.Address, err)
	}

	if cfg.Adapter.DialTimeout <= 0 || cfg.Adapter.IOTimeout <= 0 {
		return fmt.Errorf("%w: timeouts must be positive", ErrInvalidAdapterConfigs)
	}

	if cfg.Storage.JournalDSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Workers.BalanceInterval <= 0 {
		return fmt.Errorf("%w: balance interval must be positive", ErrInvalidWorkerConfigs)
	}

	if !cfg.Workers.ObserverMode.Valid() {
		return fmt.Errorf("%w: observer mode %q", ErrInvalidWorkerConfigs, cfg.Workers.ObserverMode)
	}

	if cfg.Status.Address != "" {
		if _, _, err := net.SplitHostPort(cfg.Status.Address); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidStatusConfigs, err)
		}
	}

	if _, err := zerolog.ParseLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidLogConfigs, err)
	}

	return nil
}
