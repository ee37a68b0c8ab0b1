package types

import (
	"time"

	"github.com/shopspring/decimal"
)

type TxType string

const (
	TxDeposit  TxType = "deposit"
	TxWithdraw TxType = "withdraw"
	TxTransfer TxType = "transfer"
)

func (t TxType) Valid() bool {
	switch t {
	case TxDeposit, TxWithdraw, TxTransfer:
		return true
	}
	return false
}

// Draft is raw form input. Amount and Destination are validated on submit.
type Draft struct {
	Type        TxType
	Amount      string
	Destination string
}

// TransactionRecord is the local echo of an operation the ledger accepted.
// It is rebuilt from the request, not read back from the server.
type TransactionRecord struct {
	ID          string          `json:"id"`
	Type        TxType          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Origin      string          `json:"origin,omitempty"`
	Destination string          `json:"destination,omitempty"`
	Timestamp   time.Time       `json:"timestamp"`
}
