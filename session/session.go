// Package session owns the client's authentication state: whether protected
// content may be shown and which credential the request client presents.
//
// A Manager starts in Initializing, leaves it once through Restore (or the
// first Login), and from then on moves between Authenticated and
// Unauthenticated. The authenticated flag holds iff a token is held that the
// server has not rejected.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/jeovahfialho/banking-frontend/ledger"
	"github.com/jeovahfialho/banking-frontend/tokenstore"
)

type Status int

const (
	Initializing Status = iota
	Authenticated
	Unauthenticated
)

func (s Status) String() string {
	switch s {
	case Initializing:
		return "initializing"
	case Authenticated:
		return "authenticated"
	case Unauthenticated:
		return "unauthenticated"
	}
	return "unknown"
}

const defaultLoginMessage = "an error occurred during login"

// Authenticator exchanges credentials for an opaque token.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (string, error)
}

// State is a read-only snapshot for views.
type State struct {
	Authenticated bool
	Token         string
	Loading       bool
}

// LoginError is the failure value of Login. Message is ready to show on the
// login page.
type LoginError struct {
	Message string
	Err     error
}

func (e *LoginError) Error() string { return e.Message }

func (e *LoginError) Unwrap() error { return e.Err }

type Manager struct {
	store tokenstore.Store
	auth  Authenticator

	mu     sync.RWMutex
	status Status
	token  string

	// serializes credential changes (login, logout, expiry) so the last
	// completed login wins and an expiry never clears a newer token
	credMu sync.Mutex
}

func NewManager(store tokenstore.Store, auth Authenticator) *Manager {
	return &Manager{
		store:  store,
		auth:   auth,
		status: Initializing,
	}
}

// Restore reads the persisted token and settles the initial state. Calling it
// again re-reads storage but never re-enters Initializing.
func (m *Manager) Restore(ctx context.Context) error {
	token, err := m.store.Load(ctx)
	if err != nil && !errors.Is(err, tokenstore.ErrNoToken) {
		slog.Error("restore session", "err", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if token != "" && err == nil {
		m.status = Authenticated
		m.token = token
	} else {
		m.status = Unauthenticated
		m.token = ""
	}
	slog.Info("session restored", "status", m.status)

	if errors.Is(err, tokenstore.ErrNoToken) {
		return nil
	}
	return err
}

// Login exchanges credentials for a token, persists it and authenticates.
// Failures come back as *LoginError and leave the state as it was.
func (m *Manager) Login(ctx context.Context, username, password string) error {
	m.credMu.Lock()
	defer m.credMu.Unlock()

	token, err := m.auth.Login(ctx, username, password)
	if err != nil {
		slog.Error("login failed", "username", username, "err", err)
		m.settle()
		msg := defaultLoginMessage
		if serverMsg := ledger.ServerMessage(err); serverMsg != "" {
			msg = serverMsg
		}
		return &LoginError{Message: msg, Err: err}
	}

	if err := m.store.Save(ctx, token); err != nil {
		slog.Error("persist token", "err", err)
		m.settle()
		return &LoginError{Message: defaultLoginMessage, Err: err}
	}

	m.mu.Lock()
	m.status = Authenticated
	m.token = token
	m.mu.Unlock()
	slog.Info("logged in", "username", username)
	return nil
}

// settle moves a manager still in Initializing to Unauthenticated so a login
// attempt never leaves it there.
func (m *Manager) settle() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.status == Initializing {
		m.status = Unauthenticated
	}
}

// Logout drops the token from memory and storage. It makes no network call.
// The in-memory state is cleared even when storage fails.
func (m *Manager) Logout(ctx context.Context) error {
	m.credMu.Lock()
	defer m.credMu.Unlock()
	return m.logout(ctx)
}

func (m *Manager) logout(ctx context.Context) error {
	m.mu.Lock()
	m.status = Unauthenticated
	m.token = ""
	m.mu.Unlock()

	if err := m.store.Clear(ctx); err != nil {
		slog.Error("clear stored token", "err", err)
		return err
	}
	slog.Info("logged out")
	return nil
}

// Expire is Logout triggered by the server rejecting token. A rejection of a
// token the manager no longer holds is ignored. It reports whether the
// session was torn down.
func (m *Manager) Expire(ctx context.Context, token string, status int) bool {
	m.credMu.Lock()
	defer m.credMu.Unlock()

	m.mu.RLock()
	current := m.token
	m.mu.RUnlock()
	if token != current {
		slog.Info("ignoring rejection of a superseded token", "status", status)
		return false
	}
	slog.Warn("session expired by server", "status", status)
	if err := m.logout(ctx); err != nil {
		slog.Error("expire session", "err", err)
	}
	return true
}

// Token is the credential to present, empty unless authenticated.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.status != Authenticated {
		return ""
	}
	return m.token
}

func (m *Manager) Status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return State{
		Authenticated: m.status == Authenticated,
		Token:         m.token,
		Loading:       m.status == Initializing,
	}
}
