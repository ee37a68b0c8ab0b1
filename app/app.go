// Package app assembles the client: token storage, session, request client,
// dashboard and navigation, with startup restore and teardown in one place.
package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/jeovahfialho/banking-frontend/dashboard"
	"github.com/jeovahfialho/banking-frontend/ledger"
	"github.com/jeovahfialho/banking-frontend/session"
	"github.com/jeovahfialho/banking-frontend/tokenstore"
	"github.com/jeovahfialho/banking-frontend/types"
)

type App struct {
	cfg     types.Config
	store   tokenstore.Store
	confirm dashboard.Confirmer

	Client  *ledger.Client
	Session *session.Manager
	Nav     *Navigation

	mu        sync.Mutex
	dashboard *dashboard.Controller
	close     func() error
}

type Option func(*App)

// WithNavigationListener is told about every route change.
func WithNavigationListener(fn func(Route)) Option {
	return func(a *App) { a.Nav = NewNavigation(fn) }
}

func WithClientOptions(opts ...ledger.Option) Option {
	return func(a *App) {
		a.Client = ledger.NewClient(a.cfg.API.BaseURL, append(a.clientOptions(), opts...)...)
	}
}

// Open builds the token store named by cfg and assembles the app around it.
func Open(ctx context.Context, cfg types.Config, confirm dashboard.Confirmer, opts ...Option) (*App, error) {
	var (
		store   tokenstore.Store
		closeFn func() error
	)
	switch cfg.Storage.Driver {
	case "file":
		store = tokenstore.NewFile(cfg.Storage.Path)
	case "memory":
		store = tokenstore.NewMemory()
	case "sql":
		s, err := tokenstore.OpenSQL(ctx, cfg.Storage.SQLDriver, cfg.Storage.DSN)
		if err != nil {
			return nil, err
		}
		store, closeFn = s, s.Close
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
	a := New(cfg, store, confirm, opts...)
	a.close = closeFn
	return a, nil
}

func New(cfg types.Config, store tokenstore.Store, confirm dashboard.Confirmer, opts ...Option) *App {
	a := &App{
		cfg:     cfg,
		store:   store,
		confirm: confirm,
		Nav:     NewNavigation(nil),
	}
	a.Client = ledger.NewClient(cfg.API.BaseURL, a.clientOptions()...)
	for _, opt := range opts {
		opt(a)
	}
	a.Session = session.NewManager(store, a.Client)
	return a
}

func (a *App) clientOptions() []ledger.Option {
	return []ledger.Option{
		ledger.WithTimeout(a.cfg.API.Timeout.Duration),
		ledger.WithTokenSource(ledger.TokenFunc(func() string {
			if a.Session == nil {
				return ""
			}
			return a.Session.Token()
		})),
		ledger.WithAuthFailureHandler(a.handleAuthFailure),
	}
}

// handleAuthFailure runs for every 401/403 the request client sees. token is
// what the rejected request carried.
func (a *App) handleAuthFailure(token string, status int) {
	if !a.Session.Expire(context.Background(), token, status) {
		return
	}
	if a.Nav.Current() != RouteLogin {
		a.Nav.Navigate(RouteLogin)
	}
}

// Start restores the session and lands on the route the guard allows.
func (a *App) Start(ctx context.Context) error {
	err := a.Session.Restore(ctx)
	if a.Guard() == RouteDashboard {
		a.EnterDashboard(ctx)
	} else {
		a.Nav.Navigate(RouteLogin)
	}
	return err
}

// Guard decides what a request for the dashboard shows right now.
func (a *App) Guard() Route {
	state := a.Session.State()
	switch {
	case state.Loading:
		return RouteLoading
	case !state.Authenticated:
		return RouteLogin
	}
	return RouteDashboard
}

// EnterDashboard mounts a fresh dashboard and loads the default account's
// balance. Unauthenticated callers are sent to the login route instead.
func (a *App) EnterDashboard(ctx context.Context) *dashboard.Controller {
	if route := a.Guard(); route != RouteDashboard {
		a.Nav.Navigate(route)
		return nil
	}
	ctrl := dashboard.New(a.Client, a.confirm, a.cfg.DefaultAccount, dashboard.WithViewMode(a.cfg.ViewMode))
	a.mu.Lock()
	a.dashboard = ctrl
	a.mu.Unlock()

	a.Nav.Navigate(RouteDashboard)
	_ = ctrl.Refresh(ctx)
	return ctrl
}

// Dashboard is the mounted controller, nil while not on the dashboard.
func (a *App) Dashboard() *dashboard.Controller {
	if a.Nav.Current() != RouteDashboard {
		return nil
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.dashboard
}

func (a *App) Login(ctx context.Context, username, password string) error {
	if err := a.Session.Login(ctx, username, password); err != nil {
		return err
	}
	a.EnterDashboard(ctx)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	err := a.Session.Logout(ctx)
	a.mu.Lock()
	a.dashboard = nil
	a.mu.Unlock()
	a.Nav.Navigate(RouteLogin)
	return err
}

func (a *App) Close() error {
	if a.close != nil {
		return a.close()
	}
	return nil
}
