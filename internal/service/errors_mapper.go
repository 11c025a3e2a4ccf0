// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-ledger-desk/internal/adapter"
)

// mapAdapterError translates the adapter's transport error into a service
// error. The original error stays in the chain.
func mapAdapterError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, adapter.ErrAuthRejected):
		return ErrWrongPassword
	case errors.Is(err, adapter.ErrConnection):
		return fmt.Errorf("%w: %w", ErrServerUnavailable, err)
	case errors.Is(err, adapter.ErrProtocol):
		return fmt.Errorf("%w: %w", ErrUnexpectedReply, err)
	}

	return err
}
