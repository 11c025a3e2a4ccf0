// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-ledger-desk/internal/adapter"
	"github.com/MKhiriev/go-ledger-desk/internal/logger"
	"github.com/MKhiriev/go-ledger-desk/models"
)

// DefaultBalanceInterval is used when Start is given a non-positive interval.
const DefaultBalanceInterval = 100 * time.Millisecond

type balanceObserver struct {
	board  *BalanceBoard
	mode   models.ObserverMode
	logger *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewBalanceObserver creates an observer publishing to board. The observer
// is idle until Start is called. An invalid mode falls back to
// [models.ObserverIsolated].
func NewBalanceObserver(board *BalanceBoard, mode models.ObserverMode, log *logger.Logger) BalanceObserver {
	if !mode.Valid() {
		mode = models.ObserverIsolated
	}
	if log == nil {
		log = logger.Nop()
	}
	return &balanceObserver{board: board, mode: mode, logger: log}
}

func (o *balanceObserver) Board() *BalanceBoard {
	return o.board
}

func (o *balanceObserver) Start(ctx context.Context, opener SessionOpener, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultBalanceInterval
	}

	o.Stop()

	o.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel
	o.wg.Add(1)
	o.mu.Unlock()

	go func() {
		defer o.wg.Done()
		o.run(jobCtx, opener, interval)
	}()
}

func (o *balanceObserver) Stop() {
	o.mu.Lock()
	cancel := o.cancel
	o.cancel = nil
	o.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	o.wg.Wait()
}

// run polls until ctx is done. The timer is re-armed only after a tick
// returns, so ticks never overlap and a slow tick delays the next one.
func (o *balanceObserver) run(ctx context.Context, opener SessionOpener, interval time.Duration) {
	var (
		session *adapter.Session
		failing bool
	)
	defer func() {
		if session != nil {
			_ = session.Close()
		}
	}()

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		var err error
		session, err = o.tick(ctx, opener, session)
		switch {
		case err != nil && ctx.Err() != nil:
			return
		case err != nil && !failing:
			failing = true
			o.logger.Warn().Err(err).Str("func", "*balanceObserver.run").Msg("balance poll failed")
		case err != nil:
			o.logger.Debug().Err(err).Str("func", "*balanceObserver.run").Msg("balance poll still failing")
		case failing:
			failing = false
			o.logger.Info().Str("func", "*balanceObserver.run").Msg("balance poll recovered")
		}

		timer.Reset(interval)
	}
}

// tick performs one poll. It returns the session to keep for the next tick,
// which is nil unless the observer reuses sessions and this one is healthy.
func (o *balanceObserver) tick(ctx context.Context, opener SessionOpener, session *adapter.Session) (*adapter.Session, error) {
	if session == nil || session.State() != adapter.StateAuthenticated {
		var err error
		session, err = opener.OpenSession(ctx)
		if err != nil {
			return nil, err
		}
	}

	amount, err := session.QueryBalance(ctx)
	if err != nil {
		_ = session.Close()
		return nil, err
	}

	snap := o.board.Publish(amount)
	o.logger.Trace().
		Str("func", "*balanceObserver.tick").
		Int32("balance", snap.Amount).
		Uint64("seq", snap.Seq).
		Msg("balance published")

	if o.mode == models.ObserverIsolated {
		_ = session.Close()
		return nil, nil
	}
	return session, nil
}
