package client

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-ledger-desk/internal/config"
	"github.com/MKhiriev/go-ledger-desk/internal/logger"
	"github.com/MKhiriev/go-ledger-desk/internal/service"
	"github.com/MKhiriev/go-ledger-desk/internal/tui"
	"github.com/MKhiriev/go-ledger-desk/internal/workers"
)

type App struct {
	services *service.ClientServices
	ui       UI
	status   workers.Worker
	cfg      config.ClientWorkers

	logger *logger.Logger
}

// NewApp assembles the desk. status may be nil when the status server is
// disabled.
func NewApp(services *service.ClientServices, ui UI, status workers.Worker, cfg config.ClientWorkers, logger *logger.Logger) (*App, error) {
	if services == nil || services.Ledger == nil || services.Observer == nil {
		return nil, ErrServicesNotConfigured
	}
	if ui == nil {
		return nil, ErrUINotConfigured
	}
	return &App{
		services: services,
		ui:       ui,
		status:   status,
		cfg:      cfg,
		logger:   logger,
	}, nil
}

// Run loops login → desk until the user quits. A logout drops the
// credential, stops the workers and goes back to the login screen.
func (a *App) Run(ctx context.Context) error {
	defer a.services.Ledger.Close()

	for {
		if err := a.ui.LoginFlow(ctx); err != nil {
			if errors.Is(err, tui.ErrUserQuit) {
				return nil
			}
			return err
		}

		logout, err := a.session(ctx)
		if err != nil {
			return err
		}
		if !logout {
			return nil
		}

		a.services.Ledger.Logout()
		a.logger.Info().Msg("logged out")
	}
}

// session runs one logged-in desk with its workers.
func (a *App) session(ctx context.Context) (bool, error) {
	balance := workers.NewBalanceWorker(a.services.Observer, a.services.Ledger.Opener, a.cfg.BalanceInterval)

	ws := workers.New(balance, a.status)
	if err := ws.Start(ctx); err != nil {
		return false, err
	}
	defer func() {
		ws.Stop()
		if a.services.Board != nil {
			a.services.Board.Reset()
		}
	}()

	return a.ui.MainLoop(ctx)
}
