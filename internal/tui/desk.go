// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MKhiriev/go-ledger-desk/internal/service"
	"github.com/MKhiriev/go-ledger-desk/models"
)

const (
	balanceTickInterval = 100 * time.Millisecond
	historyLimit        = 8
)

type deskFocus int

const (
	focusRecipient deskFocus = iota
	focusAmount
)

// BalanceSource is the read side of the balance board.
type BalanceSource interface {
	Load() models.BalanceSnapshot
}

type deskModel struct {
	ctx    context.Context
	ledger service.LedgerService
	board  BalanceSource

	region     int32
	recipients []int32
	recipient  int
	amount     textinput.Model
	mode       models.TransferMode
	focus      deskFocus

	snapshot models.BalanceSnapshot
	history  []models.TransferRecord
	lastID   string
	sending  bool
	status   string
	errMsg   string

	copyToClipboard func(string) error

	logout bool
}

func newDeskModel(ctx context.Context, ledger service.LedgerService, board BalanceSource) deskModel {
	region := ledger.Region()

	var recipients []int32
	for _, r := range models.Regions() {
		if r != region {
			recipients = append(recipients, r)
		}
	}

	amount := textinput.New()
	amount.Placeholder = "85"
	amount.CharLimit = 11
	amount.Width = 12

	return deskModel{
		ctx:             ctx,
		ledger:          ledger,
		board:           board,
		region:          region,
		recipients:      recipients,
		amount:          amount,
		mode:            models.TransferIsolated,
		copyToClipboard: clipboard.WriteAll,
	}
}

func (m deskModel) Init() tea.Cmd {
	return tea.Batch(balanceTick(), m.cmdLoadHistory())
}

func (m deskModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case balanceTickMsg:
		if m.board != nil {
			m.snapshot = m.board.Load()
		}
		return m, balanceTick()
	case transferDoneMsg:
		m.sending = false
		if msg.err != nil {
			m.status = ""
			m.errMsg = "Перевод не отправлен: " + humanizeError(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.lastID = msg.record.ID.String()
		m.status = fmt.Sprintf("Отправлено %d → %s (%s)", msg.record.Amount, models.RegionName(msg.record.Recipient), msg.record.Mode)
		m.amount.SetValue("")
		return m, m.cmdLoadHistory()
	case historyLoadedMsg:
		if msg.err != nil {
			m.errMsg = "Журнал недоступен: " + humanizeError(msg.err)
			return m, nil
		}
		m.history = msg.records
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateAmount(msg)
	}

	switch {
	case key.Matches(keyMsg, keys.quit):
		return m, tea.Quit
	case key.Matches(keyMsg, keys.logout):
		m.logout = true
		return m, tea.Quit
	case key.Matches(keyMsg, keys.mode):
		m.toggleMode()
		return m, nil
	case key.Matches(keyMsg, keys.copy):
		m.copyLastID()
		return m, nil
	case key.Matches(keyMsg, keys.refresh):
		return m, m.cmdLoadHistory()
	case key.Matches(keyMsg, keys.tab), key.Matches(keyMsg, keys.backtab):
		m.switchFocus()
		return m, nil
	case key.Matches(keyMsg, keys.enter):
		return m.submit()
	}

	if m.focus == focusRecipient {
		switch {
		case key.Matches(keyMsg, keys.left):
			m.cycleRecipient(-1)
		case key.Matches(keyMsg, keys.right):
			m.cycleRecipient(1)
		}
		return m, nil
	}

	return m.updateAmount(msg)
}

func (m deskModel) View() string {
	account := m.viewAccount()
	form := m.viewForm()
	top := lipgloss.JoinHorizontal(lipgloss.Top, account, " ", form)

	var b strings.Builder
	b.WriteString(top)
	b.WriteString("\n")
	b.WriteString(m.viewHistory())

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(m.status))
	}
	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.errMsg))
	}

	return renderPage("LEDGER DESK", b.String(),
		"tab: поле │ ←/→: получатель │ enter: отправить │ m: режим │ c: копировать id │ r: журнал │ l: выйти")
}

func (m deskModel) viewAccount() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Счёт"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Регион:   %s (#%d)\n", models.RegionName(m.region), m.region))

	b.WriteString("Баланс:   ")
	if !m.snapshot.Known() {
		b.WriteString(helpStyle.Render("ожидание..."))
	} else if m.snapshot.Amount < 0 {
		b.WriteString(negativeStyle.Render(strconv.FormatInt(int64(m.snapshot.Amount), 10)))
	} else {
		b.WriteString(positiveStyle.Render(strconv.FormatInt(int64(m.snapshot.Amount), 10)))
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Обновлён: %s\n", formatTime(m.snapshot.UpdatedAt)))
	b.WriteString(fmt.Sprintf("Опрос #:  %d", m.snapshot.Seq))

	return panelStyle.Render(b.String())
}

func (m deskModel) viewForm() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Перевод"))
	b.WriteString("\n")

	recipient := "-"
	if len(m.recipients) > 0 {
		recipient = "‹ " + models.RegionName(m.recipients[m.recipient]) + " ›"
	}
	b.WriteString(m.label("Кому:  ", focusRecipient))
	b.WriteString(recipient)
	b.WriteString("\n")
	b.WriteString(m.label("Сумма: ", focusAmount))
	b.WriteString(m.amount.View())
	b.WriteString("\n")
	b.WriteString("Режим: ")
	b.WriteString(string(m.mode))
	if m.sending {
		b.WriteString("\n[Отправка...]")
	} else {
		b.WriteString("\n[Отправить]")
	}

	return panelStyle.Render(b.String())
}

func (m deskModel) viewHistory() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Последние переводы"))
	b.WriteString("\n")
	if len(m.history) == 0 {
		b.WriteString(helpStyle.Render("пусто"))
		return b.String()
	}
	b.WriteString("Время         │ Кому        │  Сумма │ Режим     │ ID\n")
	for _, r := range m.history {
		b.WriteString(fmt.Sprintf("%-13s │ %-11s │ %6d │ %-9s │ %s\n",
			formatTime(r.SentAt),
			fitText(models.RegionName(r.Recipient), 11),
			r.Amount,
			r.Mode,
			fitText(r.ID.String(), 13),
		))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m deskModel) label(text string, focus deskFocus) string {
	if m.focus == focus {
		return focusedStyle.Render(text)
	}
	return text
}

func (m deskModel) submit() (tea.Model, tea.Cmd) {
	if m.sending {
		return m, nil
	}
	if len(m.recipients) == 0 {
		m.errMsg = "Нет получателей"
		return m, nil
	}

	amount, err := parseAmount(m.amount.Value())
	if err != nil {
		m.errMsg = "Сумма должна быть целым числом"
		return m, nil
	}

	m.errMsg = ""
	m.sending = true
	m.status = "Отправка..."
	req := models.TransferRequest{Recipient: m.recipients[m.recipient], Amount: amount}
	return m, m.cmdTransfer(req, m.mode)
}

func (m deskModel) updateAmount(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.focus != focusAmount {
		return m, nil
	}
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyRunes && !amountRunes(keyMsg.Runes) {
		return m, nil
	}
	var cmd tea.Cmd
	m.amount, cmd = m.amount.Update(msg)
	return m, cmd
}

func (m *deskModel) toggleMode() {
	if m.mode == models.TransferIsolated {
		m.mode = models.TransferPipelined
	} else {
		m.mode = models.TransferIsolated
	}
	m.status = "Режим: " + string(m.mode)
}

func (m *deskModel) copyLastID() {
	if m.lastID == "" {
		m.status = "Нечего копировать"
		return
	}
	if err := m.copyToClipboard(m.lastID); err != nil {
		m.errMsg = fmt.Sprintf("Ошибка копирования: %v", err)
		return
	}
	m.status = "ID скопирован"
}

func (m *deskModel) switchFocus() {
	if m.focus == focusRecipient {
		m.focus = focusAmount
		m.amount.Focus()
		return
	}
	m.focus = focusRecipient
	m.amount.Blur()
}

func (m *deskModel) cycleRecipient(delta int) {
	n := len(m.recipients)
	if n == 0 {
		return
	}
	m.recipient = (m.recipient + delta + n) % n
}

func (m deskModel) cmdTransfer(req models.TransferRequest, mode models.TransferMode) tea.Cmd {
	ctx, ledger := m.ctx, m.ledger
	return func() tea.Msg {
		record, err := ledger.Transfer(ctx, req, mode)
		return transferDoneMsg{record: record, err: err}
	}
}

func (m deskModel) cmdLoadHistory() tea.Cmd {
	ctx, ledger := m.ctx, m.ledger
	return func() tea.Msg {
		records, err := ledger.History(ctx, historyLimit)
		return historyLoadedMsg{records: records, err: err}
	}
}

func balanceTick() tea.Cmd {
	return tea.Tick(balanceTickInterval, func(t time.Time) tea.Msg { return balanceTickMsg(t) })
}

func parseAmount(raw string) (int32, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 32)
	if err != nil {
		return 0, err
	}
	return int32(v), nil
}

// amountRunes reports whether typed runes may go into the amount field.
func amountRunes(runes []rune) bool {
	for _, r := range runes {
		if r != '-' && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}
