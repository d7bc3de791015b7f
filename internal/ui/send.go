package ui

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pablopoggiog/send-it/internal/address"
	"github.com/pablopoggiog/send-it/internal/chain"
	"github.com/pablopoggiog/send-it/internal/config"
	"github.com/pablopoggiog/send-it/internal/events"
	"github.com/pablopoggiog/send-it/internal/form"
	"github.com/pablopoggiog/send-it/internal/notify"
	"github.com/pablopoggiog/send-it/internal/provider"
	"github.com/pablopoggiog/send-it/internal/session"
	"github.com/pablopoggiog/send-it/internal/token"
)

// SendDeps bundles everything the send form needs.
type SendDeps struct {
	Session  *session.Session
	Provider provider.Provider
	Client   *chain.Client
	Notes    *notify.Recorder
	// Monitor is the optional event-stream confirmation path. When nil the
	// form relies on receipt polling alone.
	Monitor *events.Monitor
	Token   string
}

type focusField int

const (
	focusRecipient focusField = iota
	focusAmount
)

// --- Bubble Tea messages ---

type entranceMsg struct{}

type connectedMsg struct{ err error }

type balancesMsg struct {
	native *big.Int
	usdc   *big.Int
	err    error
}

type txAcceptedMsg struct{ hash string }

type txFailedMsg struct{ err error }

type confirmTickMsg struct{}

type receiptMsg struct {
	receipt *chain.Receipt
	err     error
}

type eventMatchMsg struct{ hash string }

type sendModel struct {
	deps SendDeps
	ctrl *form.Controller

	recipientInput textinput.Model
	amountInput    textinput.Model
	focus          focusField

	ready      bool
	connErr    string
	native     *big.Int
	usdc       *big.Int
	balanceErr bool
	quitting   bool

	// matched carries event-monitor hits back into the update loop.
	matched chan string
}

// NewSendModel builds the interactive transfer form.
func NewSendModel(deps SendDeps) tea.Model {
	recipient := textinput.New()
	recipient.Placeholder = "0x..."
	recipient.CharLimit = 42
	recipient.Focus()

	amount := textinput.New()
	amount.Placeholder = "0"
	amount.CharLimit = 30

	m := &sendModel{
		deps:           deps,
		recipientInput: recipient,
		amountInput:    amount,
		matched:        make(chan string, 1),
	}
	m.ctrl = form.NewController(deps.Notes,
		form.WithTransferFunc(func(ctx context.Context, to string, v *big.Int) (string, error) {
			return deps.Provider.Transfer(ctx, deps.Token, to, v)
		}),
	)
	// Any drop to disconnected resets the form, wherever it comes from.
	deps.Session.Subscribe(func() {
		if !deps.Session.IsConnected() {
			m.ctrl.SetConnection("", false)
		}
	})
	return m
}

func (m *sendModel) Init() tea.Cmd {
	return tea.Batch(
		m.connectCmd(),
		tea.Tick(config.EntranceDelay, func(time.Time) tea.Msg { return entranceMsg{} }),
	)
}

func (m *sendModel) connectCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), config.RPCTimeout)
		defer cancel()
		return connectedMsg{err: m.deps.Session.Connect(ctx)}
	}
}

func (m *sendModel) fetchBalancesCmd() tea.Cmd {
	addr := m.deps.Session.Address()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), config.RPCTimeout)
		defer cancel()
		native, err := m.deps.Provider.NativeBalance(ctx, addr)
		if err != nil {
			return balancesMsg{err: err}
		}
		usdc, err := m.deps.Provider.TokenBalance(ctx, m.deps.Token, addr)
		if err != nil {
			return balancesMsg{err: err}
		}
		return balancesMsg{native: native, usdc: usdc}
	}
}

func (m *sendModel) broadcastCmd(p *form.PreparedTransfer) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), config.RPCTimeout)
		defer cancel()
		hash, err := m.deps.Provider.Transfer(ctx, m.deps.Token, p.To, p.Amount)
		if err != nil {
			return txFailedMsg{err: err}
		}
		return txAcceptedMsg{hash: hash}
	}
}

func (m *sendModel) waitReceiptCmd(hash string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		rcpt, err := m.deps.Client.WaitForReceipt(ctx, hash, config.TxConfirmTimeout, nil)
		return receiptMsg{receipt: rcpt, err: err}
	}
}

func (m *sendModel) watchEventsCmd(hash string) tea.Cmd {
	if m.deps.Monitor == nil {
		return nil
	}
	err := m.deps.Monitor.Start(context.Background(), events.Config{
		Contract: m.deps.Token,
		TxHash:   hash,
		OnSuccess: func(e chain.LogEntry) {
			select {
			case m.matched <- e.TxHash:
			default:
			}
		},
	})
	if err != nil {
		return nil
	}
	return func() tea.Msg {
		h, ok := <-m.matched
		if !ok {
			return nil
		}
		return eventMatchMsg{hash: h}
	}
}

func (m *sendModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case entranceMsg:
		m.ready = true
		return m, nil

	case connectedMsg:
		if msg.err != nil {
			m.connErr = session.FailureMessage(msg.err)
			return m, nil
		}
		m.connErr = ""
		m.ctrl.SetConnection(m.deps.Session.Address(), true)
		return m, m.fetchBalancesCmd()

	case balancesMsg:
		if msg.err != nil {
			m.balanceErr = true
			m.ctrl.ClearBalance()
			return m, nil
		}
		m.balanceErr = false
		m.native = msg.native
		m.usdc = msg.usdc
		m.ctrl.SetBalance(msg.usdc)
		return m, nil

	case txAcceptedMsg:
		m.ctrl.HandleAccepted(msg.hash)
		return m, tea.Batch(
			tea.Tick(config.ReceiptPollInterval, func(time.Time) tea.Msg { return confirmTickMsg{} }),
			m.waitReceiptCmd(msg.hash),
			m.watchEventsCmd(msg.hash),
		)

	case confirmTickMsg:
		if m.ctrl.Status() == form.StatusPending {
			m.ctrl.HandleConfirming()
		}
		return m, nil

	case txFailedMsg:
		m.ctrl.HandleFailure(msg.err)
		return m, nil

	case receiptMsg:
		return m.settle(msg)

	case eventMatchMsg:
		if m.ctrl.Status() == form.StatusPending || m.ctrl.Status() == form.StatusConfirming {
			m.confirmSuccess()
		}
		return m, m.fetchBalancesCmd()
	}

	return m, nil
}

func (m *sendModel) settle(msg receiptMsg) (tea.Model, tea.Cmd) {
	if m.deps.Monitor != nil {
		m.deps.Monitor.Stop()
	}
	switch {
	case m.ctrl.Status() == form.StatusSuccess:
		// The event monitor already settled this one.
		return m, nil
	case msg.err != nil:
		m.ctrl.HandleFailure(msg.err)
		return m, nil
	case msg.receipt != nil && msg.receipt.Succeeded():
		m.confirmSuccess()
		return m, m.fetchBalancesCmd()
	default:
		m.ctrl.HandleFailure(errors.New("transaction reverted"))
		return m, nil
	}
}

func (m *sendModel) confirmSuccess() {
	m.ctrl.HandleSuccess()
	m.recipientInput.SetValue("")
	m.amountInput.SetValue("")
}

func (m *sendModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.quitting = true
		if m.deps.Monitor != nil {
			m.deps.Monitor.Stop()
		}
		return m, tea.Quit

	case "tab", "shift+tab", "up", "down":
		if m.focus == focusRecipient {
			m.focus = focusAmount
			m.recipientInput.Blur()
			return m, m.amountInput.Focus()
		}
		m.focus = focusRecipient
		m.amountInput.Blur()
		return m, m.recipientInput.Focus()

	case "f2":
		m.ctrl.SetPercentage(25)
		m.amountInput.SetValue(m.ctrl.Amount())
		m.amountInput.CursorEnd()
		return m, nil

	case "f3":
		m.ctrl.SetPercentage(50)
		m.amountInput.SetValue(m.ctrl.Amount())
		m.amountInput.CursorEnd()
		return m, nil

	case "f4":
		m.ctrl.SetMax()
		m.amountInput.SetValue(m.ctrl.Amount())
		m.amountInput.CursorEnd()
		return m, nil

	case "ctrl+d":
		m.deps.Session.Disconnect()
		m.recipientInput.SetValue("")
		m.amountInput.SetValue("")
		m.native = nil
		m.usdc = nil
		m.ready = false
		return m, tea.Tick(config.EntranceDelay, func(time.Time) tea.Msg { return entranceMsg{} })

	case "enter":
		if !m.deps.Session.IsConnected() {
			m.connErr = ""
			return m, m.connectCmd()
		}
		if !m.ctrl.CanSubmit() {
			return m, nil
		}
		prepared, err := m.ctrl.BeginSubmit()
		if err != nil {
			return m, nil
		}
		return m, m.broadcastCmd(prepared)
	}

	// Keystrokes flow into the focused input; the amount field only
	// accepts digits and a single decimal point.
	if m.focus == focusAmount && msg.Type == tea.KeyRunes {
		filtered := FilterAmountInput(string(msg.Runes), m.amountInput.Value())
		if filtered == "" {
			return m, nil
		}
		msg.Runes = []rune(filtered)
	}

	var cmd tea.Cmd
	if m.focus == focusRecipient {
		m.recipientInput, cmd = m.recipientInput.Update(msg)
		m.ctrl.SetRecipient(m.recipientInput.Value())
	} else {
		m.amountInput, cmd = m.amountInput.Update(msg)
		m.ctrl.SetAmount(m.amountInput.Value())
	}
	return m, cmd
}

// FilterAmountInput strips everything but digits from typed runes, letting
// one decimal point through only if current does not already contain one.
func FilterAmountInput(typed, current string) string {
	var b strings.Builder
	hasDot := strings.Contains(current, ".")
	for _, r := range typed {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' && !hasDot:
			b.WriteRune(r)
			hasDot = true
		}
	}
	return b.String()
}

func (m *sendModel) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return StyleBorder.Render(StyleTitle.Render("Send USDC") + "\n" + Meta("Loading account...")) + "\n"
	}

	var b strings.Builder
	b.WriteString(StyleTitle.Render("Send USDC") + "\n\n")
	b.WriteString(m.viewAccount())
	b.WriteString(m.viewForm())
	b.WriteString(m.viewStatus())
	help := "Tab switch · F2 25% · F3 50% · F4 max · Enter send · Ctrl+D disconnect · Esc quit"
	if !m.deps.Session.IsConnected() {
		help = "Enter connect · Esc quit"
	}
	b.WriteString("\n" + Meta(help))
	return StyleBorder.Render(b.String()) + "\n"
}

func (m *sendModel) viewAccount() string {
	if m.connErr != "" {
		return Err(m.connErr) + Meta("  ·  press Enter to retry") + "\n\n"
	}
	if !m.deps.Session.IsConnected() {
		return Warn("Not connected") + Meta("  ·  press Enter to connect") + "\n\n"
	}
	var b strings.Builder
	b.WriteString(Meta("Account ") + Addr(address.Truncate(m.deps.Session.Address())))
	if m.native != nil {
		avax := token.FormatUnits(m.native, 18)
		b.WriteString(Meta("  ·  ") + Val(avax+" AVAX"))
		if m.native.Cmp(new(big.Int).SetUint64(config.LowGasThresholdWei)) < 0 {
			b.WriteString("  " + Warn("low AVAX, transfers may fail"))
		}
	}
	b.WriteString("\n\n")
	return b.String()
}

func (m *sendModel) viewForm() string {
	var b strings.Builder

	b.WriteString(Meta("Recipient") + "\n")
	b.WriteString(m.recipientInput.View() + "\n")
	if e := m.ctrl.Errors().Recipient; e != "" {
		b.WriteString(Err(e) + "\n")
	}

	balance := "..."
	if m.balanceErr {
		balance = "unavailable"
	} else if m.usdc != nil {
		balance = token.FormatFixed(m.usdc, config.USDCDecimals, config.USDCDecimals) + " USDC"
	}
	b.WriteString("\n" + Meta("Amount") + Meta("   Balance: ") + Val(balance) + "\n")
	b.WriteString(m.amountInput.View() + "\n")
	if e := m.ctrl.Errors().Amount; e != "" {
		b.WriteString(Err(e) + "\n")
	}

	b.WriteString(m.viewPresets() + "\n")
	return b.String()
}

func (m *sendModel) viewPresets() string {
	render := func(label string, active bool) string {
		if active {
			return StyleActive.Render(" " + label + " ")
		}
		return Meta("[" + label + "]")
	}
	return render("25%", m.ctrl.Percentage() == 25) + " " +
		render("50%", m.ctrl.Percentage() == 50) + " " +
		render("Max", m.ctrl.IsMaxActive())
}

func (m *sendModel) viewStatus() string {
	last := m.deps.Notes.Last()
	if last.Msg == "" {
		return ""
	}
	if _, live := m.deps.Notes.Active[last.ID]; !live {
		return ""
	}
	var line string
	switch last.Kind {
	case notify.KindSuccess:
		line = Success(last.Msg)
		if last.Link != "" {
			line += "\n" + Meta("View on explorer: ") + Link(last.Link)
		}
	case notify.KindError:
		line = Err(last.Msg)
	default:
		line = Warn(last.Msg)
	}
	return "\n" + line + "\n"
}

// RunSend launches the interactive transfer form.
func RunSend(deps SendDeps) error {
	p := tea.NewProgram(NewSendModel(deps))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("send form error: %w", err)
	}
	return nil
}
