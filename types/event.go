package types

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Event is the body of POST /event.
type Event struct {
	Type        TxType          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Origin      string          `json:"origin,omitempty"`
	Destination string          `json:"destination,omitempty"`
}

// MarshalJSON writes amount as a bare JSON number carrying every digit.
func (e Event) MarshalJSON() ([]byte, error) {
	type plain Event
	return json.Marshal(struct {
		plain
		Amount json.Number `json:"amount"`
	}{plain(e), json.Number(e.Amount.String())})
}

type AccountBalance struct {
	ID      string          `json:"id,omitempty"`
	Balance decimal.Decimal `json:"balance"`
}

// EventResult carries the post-operation balance of each account the event touched.
type EventResult struct {
	Origin      *AccountBalance `json:"origin,omitempty"`
	Destination *AccountBalance `json:"destination,omitempty"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Pass     string `json:"pass"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type ErrorBody struct {
	Error string `json:"error"`
}
