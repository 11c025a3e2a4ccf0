// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/go-ledger-desk/models"
)

type balanceResponse struct {
	Region     int32      `json:"region"`
	RegionName string     `json:"region_name"`
	Known      bool       `json:"known"`
	Amount     int32      `json:"amount"`
	Seq        uint64     `json:"seq"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
}

func (h *Handler) balance(w http.ResponseWriter, r *http.Request) {
	var snapshot models.BalanceSnapshot
	if h.deps.Balance != nil {
		snapshot = h.deps.Balance.Load()
	}

	resp := balanceResponse{
		Region:     h.deps.Region,
		RegionName: models.RegionName(h.deps.Region),
		Known:      snapshot.Known(),
		Amount:     snapshot.Amount,
		Seq:        snapshot.Seq,
	}
	if snapshot.Known() {
		resp.UpdatedAt = &snapshot.UpdatedAt
	}

	writeJSON(w, r, http.StatusOK, resp)
}
