// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-ledger-desk/internal/service"
	"github.com/MKhiriev/go-ledger-desk/models"
)

// loginModel is the login screen. It renders one masked password input and
// dispatches an async login command on enter. An unreachable ledger hands the
// password over to the waiting screen.
type loginModel struct {
	ctx    context.Context
	ledger service.LedgerService

	password   textinput.Model
	submitting bool
	errMsg     string
}

func newLoginModel(ctx context.Context, ledger service.LedgerService) *loginModel {
	passwordInput := textinput.New()
	passwordInput.Placeholder = "password"
	passwordInput.CharLimit = 256
	passwordInput.Width = 40
	passwordInput.EchoMode = textinput.EchoPassword
	passwordInput.EchoCharacter = '*'
	passwordInput.Focus()

	return &loginModel{
		ctx:      ctx,
		ledger:   ledger,
		password: passwordInput,
	}
}

func (m *loginModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *loginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(loginResultMsg); ok {
		m.submitting = false
		if errors.Is(result.err, service.ErrServerUnavailable) {
			return m, func() tea.Msg {
				return NavigateTo{Page: pageWaiting, Payload: waitingStartMsg{password: result.password, err: result.err}}
			}
		}
		m.errMsg = humanizeError(result.err)
		m.password.SetValue("")
		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "enter" {
		if m.submitting {
			return m, nil
		}
		pass := m.password.Value()
		if pass == "" {
			m.errMsg = "Пароль обязателен"
			return m, nil
		}
		m.errMsg = ""
		m.submitting = true
		return m, loginCmd(m.ctx, m.ledger, pass)
	}

	var cmd tea.Cmd
	m.password, cmd = m.password.Update(msg)
	return m, cmd
}

func (m *loginModel) View() string {
	var b strings.Builder
	b.WriteString("Регион  │ ")
	b.WriteString(models.RegionName(m.ledger.Region()))
	b.WriteString("\n")
	b.WriteString("Пароль  │ [")
	b.WriteString(m.password.View())
	b.WriteString("]\n")

	if m.submitting {
		b.WriteString("\n[Войти...]\n")
	} else {
		b.WriteString("\n[Войти]\n")
	}

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Ошибка: " + m.errMsg))
		b.WriteString("\n")
	}

	return renderPage("ВХОД", strings.TrimRight(b.String(), "\n"), "enter: подтвердить │ f1: о программе")
}

func loginCmd(ctx context.Context, ledger service.LedgerService, password string) tea.Cmd {
	return func() tea.Msg {
		return loginResultMsg{password: password, err: ledger.Login(ctx, password)}
	}
}
