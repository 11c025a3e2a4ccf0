package handler

import (
	"github.com/MKhiriev/go-ledger-desk/internal/config"
	"github.com/MKhiriev/go-ledger-desk/internal/handler/http"
	"github.com/MKhiriev/go-ledger-desk/internal/logger"
)

type Handlers struct {
	HTTP *http.Handler
}

// NewHandlers builds the status handlers. It fails when no status address is
// configured, since nothing would serve them.
func NewHandlers(deps http.Dependencies, cfg config.ClientStatus, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if cfg.Address == "" {
		return nil, errNoHandlersAreCreated
	}

	return &Handlers{HTTP: http.NewHandler(deps, logger)}, nil
}
