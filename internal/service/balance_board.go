package service

import (
	"sync/atomic"
	"time"

	"github.com/MKhiriev/go-ledger-desk/models"
)

// BalanceBoard holds the latest published balance. Publish is meant for a
// single writer; Load is safe for any number of readers and never observes a
// partially written snapshot.
type BalanceBoard struct {
	current atomic.Pointer[models.BalanceSnapshot]
	seq     atomic.Uint64
	now     func() time.Time
}

func NewBalanceBoard() *BalanceBoard {
	return &BalanceBoard{now: time.Now}
}

// Publish stores amount as the newest snapshot and returns it.
func (b *BalanceBoard) Publish(amount int32) models.BalanceSnapshot {
	snap := &models.BalanceSnapshot{
		Amount:    amount,
		Seq:       b.seq.Add(1),
		UpdatedAt: b.now(),
	}
	b.current.Store(snap)
	return *snap
}

// Load returns the newest snapshot, or the zero snapshot if nothing was
// published yet.
func (b *BalanceBoard) Load() models.BalanceSnapshot {
	if snap := b.current.Load(); snap != nil {
		return *snap
	}
	return models.BalanceSnapshot{}
}

// Reset forgets the current snapshot. Seq keeps growing across resets.
func (b *BalanceBoard) Reset() {
	b.current.Store(nil)
}
