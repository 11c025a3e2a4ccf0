package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-ledger-desk/internal/service"
)

const retryLoginInterval = 2 * time.Second

type waitingStartMsg struct {
	password string
	err      error
}

// waitingModel retries the login while the ledger is unreachable. Retries
// carry a generation so ticks scheduled before a restart are dropped.
type waitingModel struct {
	ctx    context.Context
	ledger service.LedgerService

	spinner  spinner.Model
	password string
	lastErr  error
	attempts int
	gen      int
	trying   bool
}

type retryTickMsg struct{ gen int }

func newWaitingModel(ctx context.Context, ledger service.LedgerService) *waitingModel {
	return &waitingModel{
		ctx:     ctx,
		ledger:  ledger,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

func (m *waitingModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m *waitingModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case waitingStartMsg:
		m.password = msg.password
		m.lastErr = msg.err
		m.attempts = 0
		m.trying = false
		m.gen++
		return m, m.scheduleRetry()
	case retryTickMsg:
		if msg.gen != m.gen || m.trying {
			return m, nil
		}
		return m, m.retryNow()
	case retryLoginMsg:
		if m.trying {
			return m, nil
		}
		return m, m.retryNow()
	case loginResultMsg:
		m.trying = false
		if errors.Is(msg.err, service.ErrServerUnavailable) {
			m.lastErr = msg.err
			return m, m.scheduleRetry()
		}
		// the ledger answered: the login page shows whatever it said
		m.gen++
		return m, func() tea.Msg { return NavigateTo{Page: pageLogin, Payload: msg} }
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			m.gen++
			return m, func() tea.Msg { return NavigateTo{Page: pageLogin} }
		case "r", "enter":
			return m, func() tea.Msg { return retryLoginMsg{} }
		}
	}
	return m, nil
}

func (m *waitingModel) View() string {
	var b strings.Builder
	b.WriteString(m.spinner.View())
	b.WriteString(" Ожидание сервера")
	if m.trying {
		b.WriteString(" (подключение...)")
	}
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Попыток: %d\n", m.attempts))
	if m.lastErr != nil {
		b.WriteString(errorStyle.Render("Ошибка: " + humanizeError(m.lastErr)))
		b.WriteString("\n")
		b.WriteString(helpStyle.Render(fitText(m.lastErr.Error(), 70)))
	}
	return renderPage("СЕРВЕР НЕДОСТУПЕН", strings.TrimRight(b.String(), "\n"), "r: повторить сейчас │ esc: назад")
}

func (m *waitingModel) retryNow() tea.Cmd {
	m.trying = true
	m.attempts++
	return loginCmd(m.ctx, m.ledger, m.password)
}

func (m *waitingModel) scheduleRetry() tea.Cmd {
	gen := m.gen
	return tea.Tick(retryLoginInterval, func(time.Time) tea.Msg { return retryTickMsg{gen: gen} })
}
