// Package ledgerstub is an in-memory implementation of the ledger HTTP API,
// used by the dev server and end-to-end tests.
package ledgerstub

import (
	"errors"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jeovahfialho/banking-frontend/types"
)

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrBadAmount       = errors.New("amount must be > 0")
	ErrInsufficient    = errors.New("insufficient funds")
	ErrSameAccount     = errors.New("origin and destination are the same")
)

// Ledger holds balances by account id. Accounts spring into existence on
// their first deposit or incoming transfer; all mutations happen under mu.
type Ledger struct {
	mu       sync.Mutex
	accounts map[string]decimal.Decimal
}

func NewLedger() *Ledger {
	return &Ledger{accounts: make(map[string]decimal.Decimal)}
}

func (l *Ledger) Balance(id string) (decimal.Decimal, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	balance, ok := l.accounts[id]
	if !ok {
		return decimal.Zero, ErrAccountNotFound
	}
	return balance, nil
}

func (l *Ledger) Deposit(id string, amount decimal.Decimal) (types.AccountBalance, error) {
	if !amount.IsPositive() {
		return types.AccountBalance{}, ErrBadAmount
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.accounts[id] = l.accounts[id].Add(amount)
	return types.AccountBalance{ID: id, Balance: l.accounts[id]}, nil
}

func (l *Ledger) Withdraw(id string, amount decimal.Decimal) (types.AccountBalance, error) {
	if !amount.IsPositive() {
		return types.AccountBalance{}, ErrBadAmount
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	balance, ok := l.accounts[id]
	if !ok {
		return types.AccountBalance{}, ErrAccountNotFound
	}
	if balance.LessThan(amount) {
		return types.AccountBalance{}, ErrInsufficient
	}
	l.accounts[id] = balance.Sub(amount)
	return types.AccountBalance{ID: id, Balance: l.accounts[id]}, nil
}

// Transfer debits origin and credits destination in one critical section;
// any failure leaves both untouched.
func (l *Ledger) Transfer(originID, destinationID string, amount decimal.Decimal) (types.AccountBalance, types.AccountBalance, error) {
	if !amount.IsPositive() {
		return types.AccountBalance{}, types.AccountBalance{}, ErrBadAmount
	}
	if originID == destinationID {
		return types.AccountBalance{}, types.AccountBalance{}, ErrSameAccount
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	origin, ok := l.accounts[originID]
	if !ok {
		return types.AccountBalance{}, types.AccountBalance{}, ErrAccountNotFound
	}
	if origin.LessThan(amount) {
		return types.AccountBalance{}, types.AccountBalance{}, ErrInsufficient
	}
	l.accounts[originID] = origin.Sub(amount)
	l.accounts[destinationID] = l.accounts[destinationID].Add(amount)
	return types.AccountBalance{ID: originID, Balance: l.accounts[originID]},
		types.AccountBalance{ID: destinationID, Balance: l.accounts[destinationID]},
		nil
}

func (l *Ledger) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.accounts = make(map[string]decimal.Decimal)
}
