// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// BalanceSnapshot is the last balance value observed by the background
// balance observer.
//
// Snapshots are immutable values. A newer snapshot always has a greater Seq;
// a zero Seq means no balance has been observed yet.
type BalanceSnapshot struct {
	// Amount is the balance reported by the ledger.
	Amount int32 `json:"amount"`

	// Seq increases by one with every published snapshot.
	Seq uint64 `json:"seq"`

	// UpdatedAt is when the snapshot was published.
	UpdatedAt time.Time `json:"updated_at"`
}

// Known reports whether at least one balance has been observed.
func (s BalanceSnapshot) Known() bool {
	return s.Seq > 0
}
