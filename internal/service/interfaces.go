package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-ledger-desk/internal/adapter"
	"github.com/MKhiriev/go-ledger-desk/models"
)

// LedgerService is the account desk: login, balance, transfers in both
// modes and the local transfer history.
type LedgerService interface {
	// Login checks password against the ledger with an isolated handshake
	// and remembers it for later operations. A rejected password yields
	// [ErrWrongPassword].
	Login(ctx context.Context, password string) error

	// Logout forgets the credential and closes the pipelined session, if
	// any.
	Logout()

	// LoggedIn reports whether a credential is held.
	LoggedIn() bool

	// Region returns the region this desk sends from.
	Region() int32

	// Opener returns a SessionOpener bound to the current credential, for
	// the balance observer. Returns [ErrNotLoggedIn] before Login.
	Opener() (SessionOpener, error)

	// Balance performs an isolated balance query.
	Balance(ctx context.Context) (int32, error)

	// Transfer sends req in mode and journals it. In pipelined mode the
	// service keeps one authenticated session open between calls.
	Transfer(ctx context.Context, req models.TransferRequest, mode models.TransferMode) (models.TransferRecord, error)

	// Burst opens one session and sends req count times back to back,
	// paced at rps transfers per second when rps > 0. It returns the
	// records of the frames that were sent, even on error.
	Burst(ctx context.Context, req models.TransferRequest, count int, rps float64) ([]models.TransferRecord, error)

	// History returns up to limit journaled transfers, newest first.
	History(ctx context.Context, limit int) ([]models.TransferRecord, error)

	// Close releases the pipelined session.
	Close() error
}

// SessionOpener produces authenticated sessions for the balance observer.
type SessionOpener interface {
	OpenSession(ctx context.Context) (*adapter.Session, error)
}

// BalanceObserver polls the balance in the background and publishes it to a
// [BalanceBoard].
type BalanceObserver interface {
	// Start launches the polling goroutine. The first poll happens
	// immediately; every later one starts interval after the previous one
	// finished. Any previously running observer is stopped first. A zero
	// or negative interval defaults to 100ms.
	Start(ctx context.Context, opener SessionOpener, interval time.Duration)

	// Stop cancels the goroutine, aborting in-flight I/O, and blocks until
	// it has exited.
	Stop()

	// Board returns the board the observer publishes to.
	Board() *BalanceBoard
}
