package form

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/pablopoggiog/send-it/internal/address"
	"github.com/pablopoggiog/send-it/internal/chain"
	"github.com/pablopoggiog/send-it/internal/config"
	"github.com/pablopoggiog/send-it/internal/notify"
	"github.com/pablopoggiog/send-it/internal/token"
)

// Status tracks a submission through its lifecycle. Transitions are driven
// by BeginSubmit and the Handle* signals; Reset returns to StatusIdle.
type Status int

const (
	StatusIdle Status = iota
	// StatusSubmitting covers the window between submit and wallet acceptance.
	StatusSubmitting
	// StatusPending means the wallet accepted and broadcast; no receipt yet.
	StatusPending
	// StatusConfirming means a receipt wait is underway.
	StatusConfirming
	StatusSuccess
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusSubmitting:
		return "submitting"
	case StatusPending:
		return "pending-confirmation"
	case StatusConfirming:
		return "confirming"
	case StatusSuccess:
		return "success"
	case StatusFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Inline validation messages.
const (
	MsgRecipientRequired = "Recipient address is required"
	MsgRecipientInvalid  = "Invalid Avalanche (C-Chain) address format"
	MsgRecipientSelf     = "Cannot send to yourself"
	MsgAmountRequired    = "Amount is required"
	MsgAmountNotPositive = "Amount must be greater than 0"
	MsgBalanceUnknown    = "Unable to fetch balance"
)

// Notification copy for the submission lifecycle.
const (
	noteTextPreparing  = "Preparing transaction..."
	noteTextConfirming = "Confirming transaction..."
	noteTextProcessing = "Processing transaction..."
	noteTextSuccess    = "Transaction successful!"
)

var (
	ErrNotConnected = errors.New("wallet not connected")
	ErrInvalidForm  = errors.New("form has validation errors")
	ErrBusy         = errors.New("a submission is already in flight")
)

// Errors holds the per-field inline messages. Empty string means no error.
type Errors struct {
	Recipient string
	Amount    string
}

// PreparedTransfer is a validated submission ready to hand to a provider.
type PreparedTransfer struct {
	To     string
	Amount *big.Int
}

// TransferFunc broadcasts a token transfer and returns the transaction hash.
type TransferFunc func(ctx context.Context, to string, amount *big.Int) (string, error)

// Controller owns the transfer form: field values, inline validation, the
// submission state machine, and the single notification slot tied to the
// in-flight transaction. Not safe for concurrent use; drive it from a
// single event loop and feed external outcomes in via the Handle methods.
type Controller struct {
	notifier    notify.Notifier
	transfer    TransferFunc
	explorerURL string
	decimals    int

	connected bool
	account   string

	recipient  string
	amount     string
	percentage int
	errs       Errors

	balance      *big.Int
	balanceKnown bool

	status     Status
	submitting bool
	txHash     string
	noteID     notify.ID
	noteLive   bool

	onSuccess func()
}

// Option configures a Controller.
type Option func(*Controller)

// WithTransferFunc supplies the broadcast capability used by Submit.
func WithTransferFunc(fn TransferFunc) Option {
	return func(c *Controller) { c.transfer = fn }
}

// WithExplorerURL overrides the explorer base used in success links.
func WithExplorerURL(base string) Option {
	return func(c *Controller) { c.explorerURL = base }
}

// WithSuccessHook registers a callback fired after a confirmed transfer,
// typically a balance refetch.
func WithSuccessHook(fn func()) Option {
	return func(c *Controller) { c.onSuccess = fn }
}

func NewController(n notify.Notifier, opts ...Option) *Controller {
	c := &Controller{
		notifier:    n,
		explorerURL: config.DefaultExplorer,
		decimals:    config.USDCDecimals,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetConnection feeds the connection state in. Dropping to disconnected
// resets the whole form, including any pending notification.
func (c *Controller) SetConnection(account string, connected bool) {
	c.connected = connected
	c.account = account
	if !connected {
		c.Reset()
	}
}

// SetBalance records the current token balance in minor units.
func (c *Controller) SetBalance(v *big.Int) {
	c.balance = new(big.Int).Set(v)
	c.balanceKnown = true
}

// ClearBalance marks the balance as unknown, e.g. after a failed fetch.
func (c *Controller) ClearBalance() {
	c.balance = nil
	c.balanceKnown = false
}

// SetRecipient stores the raw input and validates it when non-empty.
// Clearing the field clears its error rather than reporting "required";
// that message is reserved for the submit-time check.
func (c *Controller) SetRecipient(value string) {
	c.recipient = value
	if value == "" {
		c.errs.Recipient = ""
		return
	}
	c.validateRecipient(value)
}

// SetAmount stores the raw input, drops any active percentage preset, and
// validates when non-empty.
func (c *Controller) SetAmount(value string) {
	c.amount = value
	c.percentage = 0
	if value == "" {
		c.errs.Amount = ""
		return
	}
	c.validateAmount(value)
}

// SetPercentage fills the amount with p percent of the balance, formatted
// to exactly six decimal places. No-op while the balance is unknown.
func (c *Controller) SetPercentage(p int) {
	if !c.balanceKnown {
		return
	}
	part := new(big.Int).Mul(c.balance, big.NewInt(int64(p)))
	part.Div(part, big.NewInt(100))
	c.amount = token.FormatFixed(part, c.decimals, c.decimals)
	c.percentage = p
	c.validateAmount(c.amount)
}

// SetMax fills the amount with the full balance.
func (c *Controller) SetMax() {
	if !c.balanceKnown {
		return
	}
	c.amount = token.FormatFixed(c.balance, c.decimals, c.decimals)
	c.percentage = 0
	c.validateAmount(c.amount)
}

func (c *Controller) validateRecipient(value string) bool {
	switch {
	case value == "":
		c.errs.Recipient = MsgRecipientRequired
	case !address.IsHex(value):
		c.errs.Recipient = MsgRecipientInvalid
	case address.Equal(value, c.account):
		c.errs.Recipient = MsgRecipientSelf
	default:
		c.errs.Recipient = ""
		return true
	}
	return false
}

func (c *Controller) validateAmount(value string) bool {
	if value == "" {
		c.errs.Amount = MsgAmountRequired
		return false
	}
	v, err := token.ParseUnits(value, c.decimals)
	if err != nil || v.Sign() <= 0 {
		c.errs.Amount = MsgAmountNotPositive
		return false
	}
	if !c.balanceKnown {
		c.errs.Amount = MsgBalanceUnknown
		return false
	}
	if v.Cmp(c.balance) > 0 {
		c.errs.Amount = fmt.Sprintf("Insufficient balance. You have %s USDC",
			token.FormatFixed(c.balance, c.decimals, c.decimals))
		return false
	}
	c.errs.Amount = ""
	return true
}

// Recipient returns the current recipient input.
func (c *Controller) Recipient() string { return c.recipient }

// Amount returns the current amount input.
func (c *Controller) Amount() string { return c.amount }

// Percentage returns the active quick-fill preset, or 0 when none is.
func (c *Controller) Percentage() int { return c.percentage }

// IsMaxActive reports whether the amount matches the full balance without
// a percentage preset, so the UI can highlight the Max control.
func (c *Controller) IsMaxActive() bool {
	return c.balanceKnown && c.percentage == 0 &&
		c.amount == token.FormatFixed(c.balance, c.decimals, c.decimals)
}

// Errors returns the current inline validation messages.
func (c *Controller) Errors() Errors { return c.errs }

// Status returns the current lifecycle state.
func (c *Controller) Status() Status { return c.status }

// TxHash returns the hash of the in-flight or last-confirmed transaction.
func (c *Controller) TxHash() string { return c.txHash }

// IsValid reports the derived form validity: both fields filled, neither
// carrying an error.
func (c *Controller) IsValid() bool {
	return c.recipient != "" && c.amount != "" &&
		c.errs.Recipient == "" && c.errs.Amount == ""
}

// IsLoading reports whether a submission is somewhere between submit and
// settlement.
func (c *Controller) IsLoading() bool {
	return c.submitting || c.status == StatusPending || c.status == StatusConfirming
}

// CanSubmit gates the submit action.
func (c *Controller) CanSubmit() bool {
	return c.connected && c.IsValid() && !c.IsLoading()
}

// BeginSubmit re-runs both validations, transitions to submitting, opens
// the notification slot, and returns the prepared transfer for the caller
// to broadcast. Callers report the outcome via HandleAccepted or
// HandleFailure. Event-loop UIs use this directly so the broadcast can run
// off-loop; blocking callers use Submit.
func (c *Controller) BeginSubmit() (*PreparedTransfer, error) {
	if !c.connected {
		return nil, ErrNotConnected
	}
	if c.IsLoading() {
		return nil, ErrBusy
	}
	okRecipient := c.validateRecipient(c.recipient)
	okAmount := c.validateAmount(c.amount)
	if !okRecipient || !okAmount {
		return nil, ErrInvalidForm
	}
	amount, err := token.ParseUnits(c.amount, c.decimals)
	if err != nil || !address.IsValid(c.recipient) {
		// Validation already vouched for both; this guard only trips if
		// state was mutated between validation and here.
		return nil, ErrInvalidForm
	}

	c.status = StatusSubmitting
	c.submitting = true
	c.txHash = ""
	c.noteID = c.notifier.Loading(noteTextPreparing)
	c.noteLive = true
	return &PreparedTransfer{To: c.recipient, Amount: amount}, nil
}

// Submit validates, broadcasts through the configured TransferFunc, and
// feeds the immediate outcome back into the state machine. Receipt-driven
// transitions still arrive separately via HandleConfirming, HandleSuccess,
// or HandleFailure.
func (c *Controller) Submit(ctx context.Context) error {
	prepared, err := c.BeginSubmit()
	if err != nil {
		return err
	}
	if c.transfer == nil {
		c.HandleFailure(errors.New("no transfer capability configured"))
		return nil
	}
	hash, err := c.transfer(ctx, prepared.To, prepared.Amount)
	if err != nil {
		c.HandleFailure(err)
		return nil
	}
	c.HandleAccepted(hash)
	return nil
}

// HandleAccepted records that the wallet signed and broadcast the transfer.
func (c *Controller) HandleAccepted(hash string) {
	c.txHash = hash
	c.status = StatusPending
	if c.noteLive {
		c.notifier.Update(c.noteID, noteTextConfirming)
	}
}

// HandleConfirming records that a receipt wait has started.
func (c *Controller) HandleConfirming() {
	c.status = StatusConfirming
	if c.noteLive {
		c.notifier.Update(c.noteID, noteTextProcessing)
	}
}

// HandleSuccess records a confirmed transfer: the notification flips to
// success with an explorer link and stays visible, the inputs clear, and
// the success hook fires.
func (c *Controller) HandleSuccess() {
	c.status = StatusSuccess
	if c.noteLive {
		c.notifier.Success(c.noteID, noteTextSuccess, chain.ExplorerTxURL(c.explorerURL, c.txHash))
		c.noteLive = false
	}
	c.resetFields()
	if c.onSuccess != nil {
		c.onSuccess()
	}
}

// HandleFailure records a failed or rejected transfer. User cancellations
// dismiss the notification silently; everything else flips it to an error
// message chosen by Classify.
func (c *Controller) HandleFailure(err error) {
	c.status = StatusFailed
	if c.noteLive {
		if f := Classify(err.Error()); f == FailureCancelled {
			c.notifier.Dismiss(c.noteID)
		} else {
			c.notifier.Fail(c.noteID, FailureMessage(f))
		}
		c.noteLive = false
	}
	c.submitting = false
}

// Reset returns the form to its initial state, dismissing any live
// notification.
func (c *Controller) Reset() {
	if c.noteLive {
		c.notifier.Dismiss(c.noteID)
		c.noteLive = false
	}
	c.resetFields()
	c.status = StatusIdle
	c.txHash = ""
}

func (c *Controller) resetFields() {
	c.recipient = ""
	c.amount = ""
	c.percentage = 0
	c.errs = Errors{}
	c.submitting = false
}
