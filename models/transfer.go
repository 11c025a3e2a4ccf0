// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"time"

	"github.com/google/uuid"
)

// TransferRequest is a single money transfer to be sent to the ledger.
//
// Both fields are signed 32-bit values because that is what the wire format
// carries. A negative Amount is representable; whether it is allowed is a
// policy decision of the caller, not of the session that sends it.
type TransferRequest struct {
	// Recipient is the region id of the receiving account.
	Recipient int32 `json:"recipient" yaml:"recipient"`

	// Amount is the number of money units to move.
	Amount int32 `json:"amount" yaml:"amount"`
}

// TransferMode tells how a transfer reached the wire.
type TransferMode string

const (
	// TransferIsolated means the transfer used its own freshly authenticated
	// connection which was closed right after the frame was written.
	TransferIsolated TransferMode = "isolated"

	// TransferPipelined means the transfer was written on an already
	// authenticated connection that stays open for further frames.
	TransferPipelined TransferMode = "pipelined"
)

// Valid reports whether m is one of the known modes.
func (m TransferMode) Valid() bool {
	return m == TransferIsolated || m == TransferPipelined
}

// TransferRecord is the client-side journal entry for a transfer frame that
// was handed to the network. The ledger never acknowledges transfers, so a
// record means "sent", not "applied".
type TransferRecord struct {
	ID        uuid.UUID    `json:"id"`
	Sender    int32        `json:"sender"`
	Recipient int32        `json:"recipient"`
	Amount    int32        `json:"amount"`
	Mode      TransferMode `json:"mode"`
	SentAt    time.Time    `json:"sent_at"`
}

// NewTransferRecord builds a journal entry for req sent from sender at now.
// Ids are UUIDv7 so they sort by creation time.
func NewTransferRecord(sender int32, req TransferRequest, mode TransferMode, now time.Time) TransferRecord {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return TransferRecord{
		ID:        id,
		Sender:    sender,
		Recipient: req.Recipient,
		Amount:    req.Amount,
		Mode:      mode,
		SentAt:    now.UTC(),
	}
}

// BurstRequest asks for Count copies of Transfer written back to back on one
// session, at most RPS per second when RPS is positive.
type BurstRequest struct {
	Transfer TransferRequest
	Count    int
	RPS      float64
}
