// Command lambda submits a single transaction headlessly: it logs in, loads
// the account and posts one operation through the same dashboard workflow
// the terminal client uses.
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/shopspring/decimal"

	"github.com/jeovahfialho/banking-frontend/app"
	"github.com/jeovahfialho/banking-frontend/config"
	"github.com/jeovahfialho/banking-frontend/dashboard"
	"github.com/jeovahfialho/banking-frontend/session"
	"github.com/jeovahfialho/banking-frontend/types"
)

func init() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)
}

type Request struct {
	Username    string       `json:"username"`
	Password    string       `json:"password"`
	Account     string       `json:"account"`
	Type        types.TxType `json:"type"`
	Amount      string       `json:"amount"`
	Destination string       `json:"destination,omitempty"`
	// Reset wipes the ledger instead of submitting a transaction.
	Reset bool `json:"reset,omitempty"`
}

type Response struct {
	Account string                   `json:"account"`
	Balance *decimal.Decimal         `json:"balance,omitempty"`
	Message string                   `json:"message,omitempty"`
	Error   string                   `json:"error,omitempty"`
	Record  *types.TransactionRecord `json:"record,omitempty"`
}

type handler struct {
	cfg types.Config
}

func (h handler) handle(ctx context.Context, req Request) (Response, error) {
	cfg := h.cfg
	cfg.Storage.Driver = "memory"
	if req.Account != "" {
		cfg.DefaultAccount = req.Account
	}

	// headless: the invoker asked for the reset, so it counts as confirmed
	confirm := dashboard.ConfirmFunc(func(string) bool { return req.Reset })
	a, err := app.Open(ctx, cfg, confirm)
	if err != nil {
		return Response{}, err
	}
	defer a.Close()

	if err := a.Login(ctx, req.Username, req.Password); err != nil {
		var loginErr *session.LoginError
		if errors.As(err, &loginErr) {
			return Response{Account: cfg.DefaultAccount, Error: loginErr.Message}, nil
		}
		return Response{}, err
	}
	ctrl := a.Dashboard()
	if ctrl == nil {
		return Response{Account: cfg.DefaultAccount, Error: "session expired"}, nil
	}

	if req.Reset {
		err = ctrl.Reset(ctx)
	} else {
		err = ctrl.Submit(ctx, types.Draft{Type: req.Type, Amount: req.Amount, Destination: req.Destination})
	}
	if err != nil {
		slog.Warn("operation failed", "account", cfg.DefaultAccount, "type", req.Type, "err", err)
	}

	state := ctrl.State()
	resp := Response{Account: state.Account, Message: state.Success, Error: state.Error}
	if state.BalanceKnown {
		resp.Balance = &state.Balance
	}
	if len(state.History) > 0 {
		resp.Record = &state.History[0]
	}
	return resp, nil
}

func main() {
	cfg, err := config.Load(os.Getenv("BANKING_CONFIG"))
	if err != nil {
		log.Fatalln(err)
	}
	lambda.Start(handler{cfg: cfg}.handle)
}
