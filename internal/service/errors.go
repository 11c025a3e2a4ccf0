package service

import (
	"errors"

	"github.com/MKhiriev/go-ledger-desk/internal/validators"
)

var (
	ErrWrongPassword = errors.New("wrong password")
	ErrNotLoggedIn   = errors.New("not logged in")

	// ErrServerUnavailable wraps adapter connection errors.
	ErrServerUnavailable = errors.New("ledger server unavailable")
	// ErrUnexpectedReply wraps adapter protocol errors.
	ErrUnexpectedReply = errors.New("unexpected reply from ledger")

	// Request checks happen before any I/O.
	ErrNegativeAmount      = validators.ErrNegativeAmount
	ErrInvalidTransferMode = validators.ErrInvalidTransferMode
	ErrInvalidBurstCount   = validators.ErrInvalidBurstCount
	ErrInvalidBurstRate    = validators.ErrInvalidBurstRate
)
