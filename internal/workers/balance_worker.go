// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-ledger-desk/internal/service"
)

// OpenerFunc yields the session opener for the current login. It is called
// on every Start so a relogin picks up the new credential.
type OpenerFunc func() (service.SessionOpener, error)

// BalanceWorker runs a balance observer as a Worker.
type BalanceWorker struct {
	observer service.BalanceObserver
	opener   OpenerFunc
	interval time.Duration
}

func NewBalanceWorker(observer service.BalanceObserver, opener OpenerFunc, interval time.Duration) *BalanceWorker {
	return &BalanceWorker{observer: observer, opener: opener, interval: interval}
}

func (w *BalanceWorker) Start(ctx context.Context) error {
	if w.opener == nil {
		return ErrNoOpener
	}
	opener, err := w.opener()
	if err != nil {
		return err
	}
	w.observer.Start(ctx, opener, w.interval)
	return nil
}

func (w *BalanceWorker) Stop() {
	w.observer.Stop()
}
