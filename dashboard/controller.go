// Package dashboard drives the balance/operation loop for one selected account:
// balance refresh, transaction submission, system reset and the local history.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jeovahfialho/banking-frontend/ledger"
	"github.com/jeovahfialho/banking-frontend/types"
	"github.com/jeovahfialho/banking-frontend/utils"
)

var (
	ErrInvalidAmount      = errors.New("please enter a valid amount")
	ErrMissingDestination = errors.New("please enter the destination account")
	ErrInvalidType        = errors.New("invalid transaction type")
	ErrSubmitInFlight     = errors.New("a transaction is already being processed")
)

const (
	msgBalanceError    = "error fetching the balance, please try again"
	msgTxError         = "error processing the transaction"
	msgConnectionError = "operation failed, check your connection"
	msgResetError      = "error resetting the system"
	msgResetOK         = "system reset successfully!"

	ResetPrompt = "Are you sure you want to reset the system? All accounts will be deleted."
)

// Ledger is the subset of the remote API the dashboard drives.
type Ledger interface {
	Balance(ctx context.Context, accountID string) (decimal.Decimal, error)
	PostEvent(ctx context.Context, event types.Event) (types.EventResult, error)
	Reset(ctx context.Context) error
}

// Confirmer asks the user a blocking yes/no question.
type Confirmer interface {
	Confirm(prompt string) bool
}

type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// State is a snapshot for rendering. Error and Success are never both set.
type State struct {
	Account      string
	Balance      decimal.Decimal
	BalanceKnown bool
	Busy         bool
	Error        string
	Success      string
	History      []types.TransactionRecord
	ViewMode     types.ViewMode
}

type Controller struct {
	ledger  Ledger
	confirm Confirmer
	now     func() time.Time
	newID   func() string

	mu           sync.Mutex
	account      string
	balance      decimal.Decimal
	balanceKnown bool
	inFlight     int
	submitting   bool
	errMsg       string
	successMsg   string
	history      []types.TransactionRecord
	viewMode     types.ViewMode
	// bumped on every balance write; a refresh answer older than the last bump is dropped
	balanceSeq uint64
}

type Option func(*Controller)

func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(c *Controller) { c.newID = newID }
}

func WithViewMode(mode types.ViewMode) Option {
	return func(c *Controller) { c.viewMode = mode }
}

func New(l Ledger, confirm Confirmer, account string, opts ...Option) *Controller {
	c := &Controller{
		ledger:   l,
		confirm:  confirm,
		now:      time.Now,
		newID:    uuid.NewString,
		account:  account,
		viewMode: types.ViewSingle,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	history := make([]types.TransactionRecord, len(c.history))
	copy(history, c.history)
	return State{
		Account:      c.account,
		Balance:      c.balance,
		BalanceKnown: c.balanceKnown,
		Busy:         c.inFlight > 0,
		Error:        c.errMsg,
		Success:      c.successMsg,
		History:      history,
		ViewMode:     c.viewMode,
	}
}

func (c *Controller) SetViewMode(mode types.ViewMode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.viewMode = mode
}

// begin clears both messages and marks one more operation in flight.
// Callers hold c.mu.
func (c *Controller) begin() {
	c.errMsg = ""
	c.successMsg = ""
	c.inFlight++
}

func (c *Controller) done() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight--
}

// Refresh re-reads the balance of the selected account.
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.Lock()
	account := c.account
	c.mu.Unlock()
	return c.RefreshBalance(ctx, account)
}

// RefreshBalance selects account and loads its balance. An account with no
// ledger entry yet reads as zero. Other failures keep the previous balance.
func (c *Controller) RefreshBalance(ctx context.Context, account string) error {
	c.mu.Lock()
	c.account = account
	c.balanceSeq++
	seq := c.balanceSeq
	c.begin()
	c.mu.Unlock()
	defer c.done()

	balance, err := c.ledger.Balance(ctx, account)

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.balanceSeq {
		slog.Info("dropping stale balance response", "account", account)
		return nil
	}
	switch {
	case err == nil:
	case ledger.IsNotFound(err):
		balance = decimal.Zero
		err = nil
	case ledger.IsAuthFailure(err):
		return err
	default:
		slog.Error("fetch balance", "account", account, "err", err)
		c.errMsg = msgBalanceError
		return err
	}
	c.balance = balance
	c.balanceKnown = true
	return nil
}

// Submit validates draft locally, posts it to the ledger and, once accepted,
// updates the balance and prepends a record to the history. Validation
// failures never reach the network.
func (c *Controller) Submit(ctx context.Context, draft types.Draft) error {
	c.mu.Lock()
	if c.submitting {
		c.mu.Unlock()
		return ErrSubmitInFlight
	}
	c.errMsg = ""
	c.successMsg = ""

	event, amount, err := buildEvent(draft, c.account)
	if err != nil {
		c.errMsg = validationMessage(err)
		c.mu.Unlock()
		return err
	}
	account := c.account
	c.submitting = true
	c.begin()
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.submitting = false
		c.inFlight--
		c.mu.Unlock()
	}()

	result, err := c.ledger.PostEvent(ctx, event)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		slog.Error("submit transaction", "type", event.Type, "account", account, "err", err)
		c.errMsg = failureMessage(err, msgTxError)
		return err
	}

	changed := result.Origin
	if event.Type == types.TxDeposit {
		changed = result.Destination
	}
	switch {
	case changed == nil:
		slog.Warn("ledger response carried no balance", "type", event.Type, "account", account)
	case c.account != account:
		slog.Info("account changed during submit, balance not applied", "account", account)
	default:
		c.balance = changed.Balance
		c.balanceKnown = true
		c.balanceSeq++
	}

	c.successMsg = successMessage(event.Type, amount, event.Destination)
	c.history = append([]types.TransactionRecord{{
		ID:          c.newID(),
		Type:        event.Type,
		Amount:      amount,
		Origin:      event.Origin,
		Destination: event.Destination,
		Timestamp:   c.now(),
	}}, c.history...)
	return nil
}

// Reset asks for confirmation and wipes every account on the ledger. Declining
// changes nothing and sends nothing.
func (c *Controller) Reset(ctx context.Context) error {
	if c.confirm == nil || !c.confirm.Confirm(ResetPrompt) {
		return nil
	}

	c.mu.Lock()
	c.begin()
	c.mu.Unlock()
	defer c.done()

	err := c.ledger.Reset(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		slog.Error("reset system", "err", err)
		c.errMsg = failureMessage(err, msgResetError)
		return err
	}
	c.balance = decimal.Zero
	c.balanceKnown = true
	c.balanceSeq++
	c.history = nil
	c.successMsg = msgResetOK
	return nil
}

func buildEvent(draft types.Draft, account string) (types.Event, decimal.Decimal, error) {
	if !draft.Type.Valid() {
		return types.Event{}, decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidType, draft.Type)
	}
	amount, err := utils.ParseAmount(draft.Amount)
	if err != nil {
		return types.Event{}, decimal.Zero, fmt.Errorf("%w: %v", ErrInvalidAmount, err)
	}
	destination := strings.TrimSpace(draft.Destination)
	if draft.Type == types.TxTransfer && destination == "" {
		return types.Event{}, decimal.Zero, ErrMissingDestination
	}

	event := types.Event{Type: draft.Type, Amount: amount}
	switch draft.Type {
	case types.TxDeposit:
		event.Destination = account
	case types.TxWithdraw:
		event.Origin = account
	case types.TxTransfer:
		event.Origin = account
		event.Destination = destination
	}
	return event, amount, nil
}

// failureMessage picks the page message for a failed call: nothing for
// authorization failures (the session handles those), the server's own text
// when present, fallback for other server answers, and a connectivity hint
// when no answer came back.
func failureMessage(err error, fallback string) string {
	if ledger.IsAuthFailure(err) {
		return ""
	}
	if msg := ledger.ServerMessage(err); msg != "" {
		return msg
	}
	if _, ok := ledger.StatusOf(err); ok {
		return fallback
	}
	return msgConnectionError
}

func successMessage(t types.TxType, amount decimal.Decimal, destination string) string {
	switch t {
	case types.TxDeposit:
		return fmt.Sprintf("Deposit of %s completed successfully!", utils.FormatMoney(amount))
	case types.TxWithdraw:
		return fmt.Sprintf("Withdrawal of %s completed successfully!", utils.FormatMoney(amount))
	default:
		return fmt.Sprintf("Transfer of %s to account %s completed successfully!", utils.FormatMoney(amount), destination)
	}
}

func validationMessage(err error) string {
	for _, sentinel := range []error{ErrInvalidType, ErrInvalidAmount, ErrMissingDestination} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return err.Error()
}
