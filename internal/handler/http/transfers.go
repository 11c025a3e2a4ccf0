package http

import (
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-ledger-desk/internal/logger"
	"github.com/MKhiriev/go-ledger-desk/models"
)

const (
	defaultTransfersLimit = 20
	maxTransfersLimit     = 500
)

func (h *Handler) transfers(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	limit, err := parseLimit(r.URL.Query().Get("limit"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if h.deps.History == nil {
		writeJSON(w, r, http.StatusOK, []models.TransferRecord{})
		return
	}

	records, err := h.deps.History.History(r.Context(), limit)
	if err != nil {
		log.Err(err).Str("func", "*Handler.transfers").Msg("error reading transfer journal")
		http.Error(w, "error reading transfer journal", http.StatusInternalServerError)
		return
	}
	if records == nil {
		records = []models.TransferRecord{}
	}

	writeJSON(w, r, http.StatusOK, records)
}

func parseLimit(raw string) (int, error) {
	if raw == "" {
		return defaultTransfersLimit, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return 0, ErrInvalidLimit
	}
	return min(limit, maxTransfersLimit), nil
}
