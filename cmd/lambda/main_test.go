package main

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeovahfialho/banking-frontend/config"
	"github.com/jeovahfialho/banking-frontend/ledgerstub"
	"github.com/jeovahfialho/banking-frontend/types"
)

func newHandler(t *testing.T) handler {
	t.Helper()
	auth := ledgerstub.NewAuthority([]byte("test-secret"), time.Hour)
	require.NoError(t, auth.AddUser("admin", "admin"))
	ts := httptest.NewServer(ledgerstub.NewServer(ledgerstub.NewLedger(), auth).Router())
	t.Cleanup(ts.Close)

	cfg := config.Defaults()
	cfg.API.BaseURL = ts.URL
	return handler{cfg: cfg}
}

func TestHandleDeposit(t *testing.T) {
	h := newHandler(t)

	resp, err := h.handle(context.Background(), Request{
		Username: "admin", Password: "admin",
		Account: "300", Type: types.TxDeposit, Amount: "12,50",
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Error)
	assert.Equal(t, "300", resp.Account)
	require.NotNil(t, resp.Balance)
	assert.True(t, decimal.RequireFromString("12.5").Equal(*resp.Balance))
	require.NotNil(t, resp.Record)
	assert.Equal(t, types.TxDeposit, resp.Record.Type)
	assert.Equal(t, "300", resp.Record.Destination)
}

func TestHandleBadLogin(t *testing.T) {
	h := newHandler(t)

	resp, err := h.handle(context.Background(), Request{Username: "admin", Password: "wrong"})
	require.NoError(t, err)
	assert.Equal(t, "invalid credentials", resp.Error)
	assert.Nil(t, resp.Record)
}

func TestHandleInsufficientFunds(t *testing.T) {
	h := newHandler(t)
	ctx := context.Background()

	_, err := h.handle(ctx, Request{
		Username: "admin", Password: "admin",
		Account: "100", Type: types.TxDeposit, Amount: "3",
	})
	require.NoError(t, err)

	resp, err := h.handle(ctx, Request{
		Username: "admin", Password: "admin",
		Account: "100", Type: types.TxTransfer, Amount: "5", Destination: "200",
	})
	require.NoError(t, err)
	assert.Equal(t, "insufficient funds", resp.Error)
	assert.Nil(t, resp.Record)
}
