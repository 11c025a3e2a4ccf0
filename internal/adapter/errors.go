package adapter

import "errors"

var (
	// ErrConnection covers dial failures, resets, timeouts, cancellation and
	// EOF during the handshake.
	ErrConnection = errors.New("ledger connection error")

	// ErrProtocol is returned for a short or malformed reply. It is fatal to
	// the session.
	ErrProtocol = errors.New("ledger protocol error")

	// ErrInvalidState is returned when an operation is attempted in a state
	// that does not allow it. No network I/O is performed.
	ErrInvalidState = errors.New("invalid session state")

	// ErrAuthRejected is returned by the isolated entry points when the
	// ledger refuses the credential. Session.Authenticate reports rejection
	// through AuthRejected instead.
	ErrAuthRejected = errors.New("credential rejected")
)
