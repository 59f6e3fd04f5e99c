package auth

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

type Account struct {
	UserID       int64
	LoginID      string
	PasswordHash string
	Role         string
	IsDisabled   bool
	CreatedAt    time.Time
}

type AccountStore interface {
	GetByLoginID(ctx context.Context, loginID string) (*Account, error)
	GetByUserID(ctx context.Context, userID int64) (*Account, error)
	Create(ctx context.Context, a *Account) error
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) AccountStore {
	return &Store{db: db}
}

func (s *Store) GetByLoginID(ctx context.Context, loginID string) (*Account, error) {
	const q = `
SELECT user_id, login_id, password_hash, role, is_disabled, created_at
FROM accounts
WHERE login_id = ?
LIMIT 1
`
	return s.scanOne(s.db.QueryRowContext(ctx, q, loginID))
}

func (s *Store) GetByUserID(ctx context.Context, userID int64) (*Account, error) {
	const q = `
SELECT user_id, login_id, password_hash, role, is_disabled, created_at
FROM accounts
WHERE user_id = ?
LIMIT 1
`
	return s.scanOne(s.db.QueryRowContext(ctx, q, userID))
}

func (s *Store) scanOne(row *sql.Row) (*Account, error) {
	var a Account
	var isDisabledInt int
	err := row.Scan(
		&a.UserID,
		&a.LoginID,
		&a.PasswordHash,
		&a.Role,
		&isDisabledInt,
		&a.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	a.IsDisabled = isDisabledInt != 0
	return &a, nil
}

func (s *Store) Create(ctx context.Context, a *Account) error {
	const q = `
INSERT INTO accounts (login_id, password_hash, role, is_disabled, created_at)
VALUES (?, ?, ?, 0, NOW(6))
`
	res, err := s.db.ExecContext(ctx, q, a.LoginID, a.PasswordHash, a.Role)
	if err != nil {
		return err
	}
	id, _ := res.LastInsertId()
	a.UserID = id
	return nil
}
