package service

import (
	"github.com/MKhiriev/go-ledger-desk/internal/adapter"
	"github.com/MKhiriev/go-ledger-desk/internal/config"
	"github.com/MKhiriev/go-ledger-desk/internal/logger"
	"github.com/MKhiriev/go-ledger-desk/internal/store"
)

type ClientServices struct {
	Ledger   LedgerService
	Observer BalanceObserver
	Board    *BalanceBoard
}

func NewClientServices(storages *store.ClientStorages, serverAdapter adapter.ServerAdapter, cfg *config.ClientConfig, logger *logger.Logger) *ClientServices {
	board := NewBalanceBoard()

	return &ClientServices{
		Ledger:   NewLedgerService(serverAdapter, storages.Journal, cfg.Policy, logger),
		Observer: NewBalanceObserver(board, cfg.Workers.ObserverMode, logger),
		Board:    board,
	}
}
