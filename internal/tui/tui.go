package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-ledger-desk/internal/logger"
	"github.com/MKhiriev/go-ledger-desk/internal/service"
	"github.com/MKhiriev/go-ledger-desk/models"
)

const (
	pageLogin   = "login"
	pageWaiting = "waiting"
)

type TUI struct {
	ledger    service.LedgerService
	board     BalanceSource
	buildInfo models.AppBuildInfo
	options   []tea.ProgramOption

	logger *logger.Logger
}

func New(ledger service.LedgerService, board BalanceSource, buildInfo models.AppBuildInfo, logger *logger.Logger) *TUI {
	return &TUI{
		ledger:    ledger,
		board:     board,
		buildInfo: buildInfo,
		options:   []tea.ProgramOption{tea.WithAltScreen()},
		logger:    logger,
	}
}

// LoginFlow runs the login and waiting screens until the ledger accepts the
// password. It returns ErrUserQuit when the user leaves with ctrl+c.
func (t *TUI) LoginFlow(ctx context.Context) error {
	pages := map[string]tea.Model{
		pageLogin:   newLoginModel(ctx, t.ledger),
		pageWaiting: newWaitingModel(ctx, t.ledger),
	}

	root := NewRootModel(pages, pageLogin, t.buildInfo)
	finalModel, err := tea.NewProgram(root, append(t.options, tea.WithContext(ctx))...).Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(RootModel)
	if !ok {
		return tea.ErrProgramKilled
	}
	if result.quitByUser || !result.loggedIn {
		return ErrUserQuit
	}

	t.logger.Info().Msg("login flow finished")
	return nil
}

// MainLoop runs the desk screen. logout is true when the user asked to log
// out rather than quit.
func (t *TUI) MainLoop(ctx context.Context) (logout bool, err error) {
	model := newDeskModel(ctx, t.ledger, t.board)
	finalModel, err := tea.NewProgram(model, append(t.options, tea.WithContext(ctx))...).Run()
	if err != nil {
		return false, err
	}

	result, ok := finalModel.(deskModel)
	if !ok {
		return false, tea.ErrProgramKilled
	}
	return result.logout, nil
}
