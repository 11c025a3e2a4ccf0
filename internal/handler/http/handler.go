package http

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/MKhiriev/go-ledger-desk/internal/logger"
	"github.com/MKhiriev/go-ledger-desk/models"
)

// BalanceSource is the read side of the balance board.
type BalanceSource interface {
	Load() models.BalanceSnapshot
}

// TransferHistory lists journaled transfers, newest first.
type TransferHistory interface {
	History(ctx context.Context, limit int) ([]models.TransferRecord, error)
}

// Dependencies groups what the status handlers read from.
type Dependencies struct {
	Region    int32
	Balance   BalanceSource
	History   TransferHistory
	Gatherer  prometheus.Gatherer
	BuildInfo models.AppBuildInfo
}

type Handler struct {
	deps Dependencies

	logger *logger.Logger
}

func NewHandler(deps Dependencies, logger *logger.Logger) *Handler {
	if deps.Gatherer == nil {
		deps.Gatherer = prometheus.DefaultGatherer
	}
	logger.Info().Msg("http handler created")
	return &Handler{
		deps:   deps,
		logger: logger,
	}
}
