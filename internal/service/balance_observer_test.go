// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/go-ledger-desk/internal/adapter"
	"github.com/MKhiriev/go-ledger-desk/internal/config"
	"github.com/MKhiriev/go-ledger-desk/internal/ledgertest"
	"github.com/MKhiriev/go-ledger-desk/internal/logger"
	"github.com/MKhiriev/go-ledger-desk/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPassword = "bluecircle123"

func newTestAdapter(t *testing.T, addr string, ioTimeout time.Duration) adapter.ServerAdapter {
	t.Helper()
	a, err := adapter.NewTCPServerAdapter(config.ClientAdapter{
		Address:     addr,
		DialTimeout: time.Second,
		IOTimeout:   ioTimeout,
	}, nil, logger.Nop())
	require.NoError(t, err)
	return a
}

// spyOpener считает вызовы OpenSession и может возвращать ошибку первые failFirst раз.
type spyOpener struct {
	next      SessionOpener
	failFirst int64
	delay     time.Duration

	calls  atomic.Int64
	active atomic.Int64
	peak   atomic.Int64

	mu     sync.Mutex
	starts []time.Time
	ends   []time.Time
}

func (s *spyOpener) OpenSession(ctx context.Context) (*adapter.Session, error) {
	n := s.calls.Add(1)

	if cur := s.active.Add(1); cur > s.peak.Load() {
		s.peak.Store(cur)
	}
	defer s.active.Add(-1)

	s.mu.Lock()
	s.starts = append(s.starts, time.Now())
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.ends = append(s.ends, time.Now())
		s.mu.Unlock()
	}()

	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	if n <= s.failFirst {
		return nil, errors.New("ledger unavailable")
	}
	return s.next.OpenSession(ctx)
}

// ── Start / Stop ─────────────────────────────────────────────────────────────

func TestBalanceObserver_PublishesBalance(t *testing.T) {
	srv := ledgertest.NewServer(t, ledgertest.Options{Password: testPassword, Balance: 1000})
	opener := NewSessionOpener(newTestAdapter(t, srv.Addr(), time.Second), testPassword)

	board := NewBalanceBoard()
	obs := NewBalanceObserver(board, models.ObserverIsolated, logger.Nop())
	assert.Same(t, board, obs.Board())
	assert.False(t, board.Load().Known())

	obs.Start(context.Background(), opener, 10*time.Millisecond)
	defer obs.Stop()

	require.Eventually(t, func() bool { return board.Load().Amount == 1000 }, time.Second, 5*time.Millisecond)
	first := board.Load()
	assert.True(t, first.Known())

	srv.SetBalance(0, -85)
	require.Eventually(t, func() bool { return board.Load().Amount == -85 }, time.Second, 5*time.Millisecond)
	assert.Greater(t, board.Load().Seq, first.Seq)
}

func TestBalanceObserver_IsolatedModeReconnectsEveryTick(t *testing.T) {
	srv := ledgertest.NewServer(t, ledgertest.Options{Password: testPassword, Balance: 1})
	opener := NewSessionOpener(newTestAdapter(t, srv.Addr(), time.Second), testPassword)

	board := NewBalanceBoard()
	obs := NewBalanceObserver(board, models.ObserverIsolated, logger.Nop())
	obs.Start(context.Background(), opener, 5*time.Millisecond)

	require.Eventually(t, func() bool { return board.Load().Seq >= 3 }, 2*time.Second, 5*time.Millisecond)
	obs.Stop()

	conns := srv.Connections()
	assert.GreaterOrEqual(t, len(conns), 3)
	for _, c := range conns {
		assert.LessOrEqual(t, len(c.Requests()), 2, "one handshake and at most one query per connection")
	}
}

func TestBalanceObserver_ReuseModeKeepsSession(t *testing.T) {
	srv := ledgertest.NewServer(t, ledgertest.Options{Password: testPassword, Balance: 1})
	opener := NewSessionOpener(newTestAdapter(t, srv.Addr(), time.Second), testPassword)

	board := NewBalanceBoard()
	obs := NewBalanceObserver(board, models.ObserverReuse, logger.Nop())
	obs.Start(context.Background(), opener, 5*time.Millisecond)

	require.Eventually(t, func() bool { return board.Load().Seq >= 5 }, 2*time.Second, 5*time.Millisecond)
	obs.Stop()

	assert.Len(t, srv.Connections(), 1)
}

func TestBalanceObserver_SwallowsTickErrors(t *testing.T) {
	srv := ledgertest.NewServer(t, ledgertest.Options{Password: testPassword, Balance: 77})
	spy := &spyOpener{
		next:      NewSessionOpener(newTestAdapter(t, srv.Addr(), time.Second), testPassword),
		failFirst: 3,
	}

	board := NewBalanceBoard()
	obs := NewBalanceObserver(board, models.ObserverReuse, logger.Nop())
	obs.Start(context.Background(), spy, 5*time.Millisecond)
	defer obs.Stop()

	require.Eventually(t, func() bool { return board.Load().Amount == 77 }, 2*time.Second, 5*time.Millisecond)
	assert.GreaterOrEqual(t, spy.calls.Load(), int64(4))
}

func TestBalanceObserver_SwallowsProtocolErrors(t *testing.T) {
	srv := ledgertest.NewServer(t, ledgertest.Options{Password: testPassword, BalanceReply: []byte{0x01, 0x02}})
	spy := &spyOpener{next: NewSessionOpener(newTestAdapter(t, srv.Addr(), time.Second), testPassword)}

	board := NewBalanceBoard()
	obs := NewBalanceObserver(board, models.ObserverReuse, logger.Nop())
	obs.Start(context.Background(), spy, 5*time.Millisecond)

	// every tick fails with a short reply; the observer keeps reopening
	require.Eventually(t, func() bool { return spy.calls.Load() >= 3 }, 2*time.Second, 5*time.Millisecond)
	obs.Stop()

	assert.False(t, board.Load().Known())
}

func TestBalanceObserver_TicksDoNotOverlap(t *testing.T) {
	srv := ledgertest.NewServer(t, ledgertest.Options{Password: testPassword})
	spy := &spyOpener{
		next:  NewSessionOpener(newTestAdapter(t, srv.Addr(), time.Second), testPassword),
		delay: 20 * time.Millisecond,
	}
	const interval = 15 * time.Millisecond

	obs := NewBalanceObserver(NewBalanceBoard(), models.ObserverIsolated, logger.Nop())
	obs.Start(context.Background(), spy, interval)
	require.Eventually(t, func() bool { return spy.calls.Load() >= 4 }, 2*time.Second, 5*time.Millisecond)
	obs.Stop()

	assert.Equal(t, int64(1), spy.peak.Load())

	spy.mu.Lock()
	defer spy.mu.Unlock()
	for i := 1; i < len(spy.starts) && i <= len(spy.ends); i++ {
		gap := spy.starts[i].Sub(spy.ends[i-1])
		assert.GreaterOrEqual(t, gap, interval, "tick %d started %v after the previous one ended", i, gap)
	}
}

func TestBalanceObserver_StopAbortsInFlightIO(t *testing.T) {
	srv := ledgertest.NewServer(t, ledgertest.Options{Stall: true})
	opener := NewSessionOpener(newTestAdapter(t, srv.Addr(), time.Minute), testPassword)
	const interval = 200 * time.Millisecond

	obs := NewBalanceObserver(NewBalanceBoard(), models.ObserverIsolated, logger.Nop())
	obs.Start(context.Background(), opener, interval)

	// the first tick is now blocked on the stalled handshake
	require.Eventually(t, func() bool { return len(srv.Requests()) == 1 }, time.Second, 5*time.Millisecond)

	start := time.Now()
	obs.Stop()
	assert.Less(t, time.Since(start), interval+100*time.Millisecond)
}

func TestBalanceObserver_StopWhileSleeping(t *testing.T) {
	for _, mode := range []models.ObserverMode{models.ObserverIsolated, models.ObserverReuse} {
		t.Run(string(mode), func(t *testing.T) {
			srv := ledgertest.NewServer(t, ledgertest.Options{Password: testPassword, Balance: 42})
			spy := &spyOpener{next: NewSessionOpener(newTestAdapter(t, srv.Addr(), time.Second), testPassword)}
			const interval = 2 * time.Second

			board := NewBalanceBoard()
			obs := NewBalanceObserver(board, mode, logger.Nop())
			obs.Start(context.Background(), spy, interval)

			// после первой публикации цикл спит до следующего тика
			require.Eventually(t, func() bool { return board.Load().Known() }, time.Second, time.Millisecond)

			start := time.Now()
			obs.Stop()
			assert.Less(t, time.Since(start), 200*time.Millisecond)
			assert.Equal(t, int64(1), spy.calls.Load())
		})
	}
}

func TestBalanceObserver_ParentCancel(t *testing.T) {
	srv := ledgertest.NewServer(t, ledgertest.Options{Password: testPassword, Balance: 5})
	spy := &spyOpener{next: NewSessionOpener(newTestAdapter(t, srv.Addr(), time.Second), testPassword)}

	ctx, cancel := context.WithCancel(context.Background())
	obs := NewBalanceObserver(NewBalanceBoard(), models.ObserverIsolated, logger.Nop())
	obs.Start(ctx, spy, 5*time.Millisecond)

	require.Eventually(t, func() bool { return spy.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()
	obs.Stop()

	callsAfterStop := spy.calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, callsAfterStop, spy.calls.Load(), "после Stop новых вызовов быть не должно")
}

func TestBalanceObserver_DefaultInterval(t *testing.T) {
	srv := ledgertest.NewServer(t, ledgertest.Options{Password: testPassword})
	spy := &spyOpener{next: NewSessionOpener(newTestAdapter(t, srv.Addr(), time.Second), testPassword)}

	obs := NewBalanceObserver(NewBalanceBoard(), models.ObserverIsolated, logger.Nop())
	// interval <= 0 → 100ms; the first tick is immediate, the second is not due yet
	obs.Start(context.Background(), spy, 0)
	require.Eventually(t, func() bool { return spy.calls.Load() == 1 }, time.Second, time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	obs.Stop()

	assert.Equal(t, int64(1), spy.calls.Load())
}

func TestBalanceObserver_RestartStopsPrevious(t *testing.T) {
	srv := ledgertest.NewServer(t, ledgertest.Options{Password: testPassword})
	first := &spyOpener{next: NewSessionOpener(newTestAdapter(t, srv.Addr(), time.Second), testPassword)}
	second := &spyOpener{next: first.next}

	obs := NewBalanceObserver(NewBalanceBoard(), models.ObserverIsolated, logger.Nop())
	obs.Start(context.Background(), first, 5*time.Millisecond)
	require.Eventually(t, func() bool { return first.calls.Load() >= 1 }, time.Second, time.Millisecond)

	obs.Start(context.Background(), second, 5*time.Millisecond)
	firstCalls := first.calls.Load()
	require.Eventually(t, func() bool { return second.calls.Load() >= 2 }, time.Second, time.Millisecond)
	obs.Stop()

	assert.Equal(t, firstCalls, first.calls.Load())
}

func TestBalanceObserver_Stop_BeforeStart_NoPanic(t *testing.T) {
	obs := NewBalanceObserver(NewBalanceBoard(), "", nil)

	// Stop без Start не должен паниковать
	assert.NotPanics(t, func() { obs.Stop() })
	assert.NotPanics(t, func() { obs.Stop() })
}

// ── BalanceBoard ─────────────────────────────────────────────────────────────

func TestBalanceBoard_PublishLoad(t *testing.T) {
	board := NewBalanceBoard()
	fixed := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	board.now = func() time.Time { return fixed }

	assert.Equal(t, models.BalanceSnapshot{}, board.Load())

	snap := board.Publish(-1)
	assert.Equal(t, models.BalanceSnapshot{Amount: -1, Seq: 1, UpdatedAt: fixed}, snap)
	assert.Equal(t, snap, board.Load())

	assert.Equal(t, uint64(2), board.Publish(3).Seq)

	board.Reset()
	assert.False(t, board.Load().Known())
	assert.Equal(t, uint64(3), board.Publish(4).Seq)
}

func TestBalanceBoard_NoTornReads(t *testing.T) {
	board := NewBalanceBoard()
	const writes = 5000

	var wg sync.WaitGroup
	stop := make(chan struct{})
	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				snap := board.Load()
				if snap.Known() && int64(snap.Amount) != int64(snap.Seq) {
					t.Errorf("torn snapshot: %+v", snap)
					return
				}
			}
		}()
	}

	for i := 1; i <= writes; i++ {
		board.Publish(int32(i))
	}
	close(stop)
	wg.Wait()

	assert.Equal(t, uint64(writes), board.Load().Seq)
}
