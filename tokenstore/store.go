// Package tokenstore keeps the session credential across restarts.
package tokenstore

import (
	"context"
	"errors"
)

// Key is the fixed name the credential is stored under.
const Key = "token"

var ErrNoToken = errors.New("no stored token")

type Store interface {
	// Load returns ErrNoToken when nothing is stored.
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}
