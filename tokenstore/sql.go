package tokenstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
)

const schema = `
	create table if not exists session_tokens (
		name  varchar(64) not null primary key,
		token text not null
	)`

// SQL stores the credential in a session_tokens table. driver is a
// database/sql driver name: "pgx" for Postgres or "mysql".
type SQL struct {
	db *sqlx.DB
}

func OpenSQL(ctx context.Context, driver, dsn string) (*SQL, error) {
	db, err := sqlx.ConnectContext(ctx, driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", driver, err)
	}
	s, err := NewSQL(ctx, db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func NewSQL(ctx context.Context, db *sqlx.DB) (*SQL, error) {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, fmt.Errorf("create session_tokens: %w", err)
	}
	slog.Info("sql token store ready", "driver", db.DriverName())
	return &SQL{db: db}, nil
}

func (s *SQL) Load(ctx context.Context) (string, error) {
	token := ""
	query := s.db.Rebind(`select token from session_tokens where name = ?`)
	err := s.db.GetContext(ctx, &token, query, Key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNoToken
	}
	if err != nil {
		return "", fmt.Errorf("load token: %w", err)
	}
	if token == "" {
		return "", ErrNoToken
	}
	return token, nil
}

// Save replaces the row in one transaction; delete+insert keeps the
// statement portable across Postgres and MySQL.
func (s *SQL) Save(ctx context.Context, token string) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, tx.Rebind(`delete from session_tokens where name = ?`), Key); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	if _, err := tx.ExecContext(ctx, tx.Rebind(`insert into session_tokens (name, token) values (?, ?)`), Key, token); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return tx.Commit()
}

func (s *SQL) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, s.db.Rebind(`delete from session_tokens where name = ?`), Key); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}

func (s *SQL) Close() error {
	return s.db.Close()
}
