package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"

	"github.com/jeovahfialho/banking-frontend/types"
)

// Login exchanges credentials for a token. It is the one endpoint exempt from
// the auth-failure handler: a 401/403 here is a rejected login returned to the
// caller, and the request never carries the current session's token.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var result types.LoginResponse
	payload := types.LoginRequest{Username: username, Pass: password}
	if err := c.DoReq(anonymous(ctx), http.MethodPost, "/login", payload, &result); err != nil {
		return "", err
	}
	if result.Token == "" {
		return "", fmt.Errorf("login response carried no token")
	}
	return result.Token, nil
}

// Balance queries one account. A 404 is returned as an *APIError; callers
// decide whether that means zero.
func (c *Client) Balance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	path := "/balance?account_id=" + url.QueryEscape(accountID)
	var raw json.RawMessage
	if err := c.DoReq(ctx, http.MethodGet, path, nil, &raw); err != nil {
		return decimal.Zero, err
	}
	return decodeBalance(raw)
}

// decodeBalance accepts {"balance": n} as well as a bare number.
func decodeBalance(raw json.RawMessage) (decimal.Decimal, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '{' {
		var body types.AccountBalance
		if err := json.Unmarshal(raw, &body); err != nil {
			return decimal.Zero, fmt.Errorf("decode balance: %w", err)
		}
		return body.Balance, nil
	}
	var balance decimal.Decimal
	if err := balance.UnmarshalJSON(raw); err != nil {
		return decimal.Zero, fmt.Errorf("decode balance: %w", err)
	}
	return balance, nil
}

func (c *Client) PostEvent(ctx context.Context, event types.Event) (types.EventResult, error) {
	var result types.EventResult
	if err := c.DoReq(ctx, http.MethodPost, "/event", event, &result); err != nil {
		return types.EventResult{}, err
	}
	return result, nil
}

func (c *Client) Reset(ctx context.Context) error {
	return c.DoReq(ctx, http.MethodPost, "/reset", nil, nil)
}
