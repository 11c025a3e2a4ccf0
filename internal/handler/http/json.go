package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-ledger-desk/internal/logger"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "writeJSON").Msg("failed to encode response")
	}
}
