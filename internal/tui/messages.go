package tui

import (
	"time"

	"github.com/MKhiriev/go-ledger-desk/models"
)

// NavigateTo switches the root model to Page. Payload, if set, is delivered
// to the new page as the next message.
type NavigateTo struct {
	Page    string
	Payload any
}

type loginResultMsg struct {
	password string
	err      error
}

type retryLoginMsg struct{}

type balanceTickMsg time.Time

type transferDoneMsg struct {
	record models.TransferRecord
	err    error
}

type historyLoadedMsg struct {
	records []models.TransferRecord
	err     error
}
