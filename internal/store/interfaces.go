package store

import (
	"context"

	"github.com/MKhiriev/go-ledger-desk/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// TransferJournal is the local record of transfer frames this client sent.
type TransferJournal interface {
	// Save stores records in one transaction. Saving nothing is a no-op.
	Save(ctx context.Context, records ...models.TransferRecord) error
	// Recent returns up to limit records, newest first.
	Recent(ctx context.Context, limit int) ([]models.TransferRecord, error)
	// Count returns the number of stored records.
	Count(ctx context.Context) (int64, error)
}
