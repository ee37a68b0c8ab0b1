package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jeovahfialho/banking-frontend/app"
	"github.com/jeovahfialho/banking-frontend/dashboard"
	"github.com/jeovahfialho/banking-frontend/session"
	"github.com/jeovahfialho/banking-frontend/types"
	"github.com/jeovahfialho/banking-frontend/utils"
)

const helpText = `commands:
  login <username> <password>
  logout
  account <id>                 select an account and load its balance
  refresh
  deposit <amount>
  withdraw <amount>
  transfer <amount> <account>
  reset                        wipe every account (asks first)
  history
  view single|tabbed
  tab operate|history          (tabbed view)
  help
  quit`

type terminal struct {
	in  *bufio.Scanner
	out io.Writer
	tab string
}

func newTerminal(in *bufio.Scanner, out io.Writer) *terminal {
	return &terminal{in: in, out: out, tab: "operate"}
}

func (t *terminal) printf(format string, args ...any) {
	fmt.Fprintf(t.out, format, args...)
}

func (t *terminal) confirm(prompt string) bool {
	t.printf("%s [y/N] ", prompt)
	if !t.in.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(t.in.Text()))
	return answer == "y" || answer == "yes"
}

func (t *terminal) onRoute(route app.Route) {
	switch route {
	case app.RouteLogin:
		t.printf("\n== Banking System ==\nlog in with: login <username> <password>\n")
	case app.RouteDashboard:
		t.printf("\n== Dashboard ==\n")
	}
}

func (t *terminal) run(ctx context.Context, a *app.App) {
	t.printf("type 'help' for commands\n")
	for {
		t.printf("%s> ", a.Nav.Current())
		if !t.in.Scan() {
			return
		}
		fields := strings.Fields(t.in.Text())
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "quit" || fields[0] == "exit" {
			return
		}
		t.exec(ctx, a, fields[0], fields[1:])
	}
}

func (t *terminal) exec(ctx context.Context, a *app.App, cmd string, args []string) {
	switch cmd {
	case "help":
		t.printf("%s\n", helpText)
		return
	case "login":
		if len(args) != 2 {
			t.printf("usage: login <username> <password>\n")
			return
		}
		if a.Guard() == app.RouteDashboard {
			if a.Dashboard() == nil {
				a.EnterDashboard(ctx)
			}
			t.printf("already logged in, use 'logout' first to switch users\n")
			t.render(a)
			return
		}
		var loginErr *session.LoginError
		if err := a.Login(ctx, args[0], args[1]); errors.As(err, &loginErr) {
			t.printf("error: %s\n", loginErr.Message)
			return
		}
		t.render(a)
		return
	}

	ctrl := a.Dashboard()
	if ctrl == nil {
		t.printf("log in first\n")
		return
	}

	switch cmd {
	case "logout":
		if err := a.Logout(ctx); err != nil {
			t.printf("logged out, but the saved session could not be removed: %v\n", err)
			t.printf("it may be restored on the next start\n")
		}
		return
	case "account":
		if len(args) != 1 {
			t.printf("usage: account <id>\n")
			return
		}
		_ = ctrl.RefreshBalance(ctx, args[0])
	case "refresh":
		_ = ctrl.Refresh(ctx)
	case "deposit", "withdraw":
		if len(args) != 1 {
			t.printf("usage: %s <amount>\n", cmd)
			return
		}
		_ = ctrl.Submit(ctx, types.Draft{Type: types.TxType(cmd), Amount: args[0]})
	case "transfer":
		draft := types.Draft{Type: types.TxTransfer}
		if len(args) > 0 {
			draft.Amount = args[0]
		}
		if len(args) > 1 {
			draft.Destination = args[1]
		}
		_ = ctrl.Submit(ctx, draft)
	case "reset":
		_ = ctrl.Reset(ctx)
	case "history":
		t.tab = "history"
	case "view":
		if len(args) != 1 || (args[0] != string(types.ViewSingle) && args[0] != string(types.ViewTabbed)) {
			t.printf("usage: view single|tabbed\n")
			return
		}
		ctrl.SetViewMode(types.ViewMode(args[0]))
	case "tab":
		if len(args) != 1 || (args[0] != "operate" && args[0] != "history") {
			t.printf("usage: tab operate|history\n")
			return
		}
		t.tab = args[0]
	default:
		t.printf("unknown command %q, try 'help'\n", cmd)
		return
	}
	// a 401/403 during the command may have sent us back to login
	if a.Dashboard() != nil {
		t.render(a)
	}
	if cmd == "history" {
		t.tab = "operate"
	}
}

func (t *terminal) render(a *app.App) {
	ctrl := a.Dashboard()
	if ctrl == nil {
		return
	}
	s := ctrl.State()

	balance := "--"
	switch {
	case s.Busy:
		balance = "loading..."
	case s.BalanceKnown:
		balance = utils.FormatMoney(s.Balance)
	}
	t.printf("account %s  balance %s\n", s.Account, balance)
	if s.Error != "" {
		t.printf("error: %s\n", s.Error)
	}
	if s.Success != "" {
		t.printf("ok: %s\n", s.Success)
	}

	if s.ViewMode == types.ViewTabbed {
		t.printf("[%s] operate | history\n", t.tab)
		if t.tab != "history" {
			return
		}
	}
	t.renderHistory(s)
}

func (t *terminal) renderHistory(s dashboard.State) {
	rows := dashboard.HistoryRows(s.History, s.Account, nil)
	if len(rows) == 0 {
		t.printf("  %s\n", dashboard.EmptyHistoryMessage)
		return
	}
	t.printf("  %-19s  %-8s  %-50s  %s\n", "date", "type", "details", "amount")
	for _, row := range rows {
		t.printf("  %-19s  %-8s  %-50s  %s\n", row.Date, row.Type, row.Details, row.Amount)
	}
}
