package auth

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// 利用者ロール。元システムの役割をそのまま使う
const (
	RoleStudent = "STUDENT"
	RoleStaff   = "STAFF"
	RoleAdmin   = "ADMIN"
)

var (
	ErrAlreadyExists = errors.New("already exists")
	ErrNotFound      = errors.New("not found")
	ErrUnauthorized  = errors.New("authentication failed")
)

func ValidRole(r string) bool {
	return r == RoleStudent || r == RoleStaff || r == RoleAdmin
}

type Service struct {
	store  AccountStore
	secret []byte
}

func NewService(db *sql.DB, secret []byte) *Service {
	return &Service{store: NewStore(db), secret: secret}
}

type AuthService interface {
	Login(ctx context.Context, loginID, password string) (string, error)
	Register(ctx context.Context, loginID, password, role string) (int64, error)
}

func (s *Service) Login(ctx context.Context, loginID, password string) (string, error) {
	acct, err := s.store.GetByLoginID(ctx, loginID)
	if err != nil {
		return "", err
	}
	if acct == nil {
		return "", ErrUnauthorized
	}
	if acct.IsDisabled {
		return "", errors.New("account disabled")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)); err != nil {
		return "", ErrUnauthorized
	}

	// sub は数値のuser_id。貸出レコードの requester/approver と同じ識別子
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  strconv.FormatInt(acct.UserID, 10),
		"role": acct.Role,
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
	})

	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", err
	}
	return tokenString, nil
}

func (s *Service) Register(ctx context.Context, loginID, password, role string) (int64, error) {
	exists, err := s.store.GetByLoginID(ctx, loginID)
	if err != nil {
		return 0, err
	}
	if exists != nil {
		return 0, ErrAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}

	a := &Account{
		LoginID:      loginID,
		PasswordHash: string(hash),
		Role:         role,
		IsDisabled:   false,
	}
	if err := s.store.Create(ctx, a); err != nil {
		return 0, err
	}
	return a.UserID, nil
}
