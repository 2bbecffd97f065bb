package user

import (
	"context"
	"errors"

	"walletledger/internal/auth"
	"walletledger/internal/db"
	"walletledger/internal/logger"
	"walletledger/internal/wallet"

	"github.com/jmoiron/sqlx"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

const defaultRole = "member"

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
	Me(ctx context.Context, userID int) (*Account, error)
	RefreshToken(ctx context.Context, refreshToken string) (*AuthResponse, error)
}

type service struct {
	db        *sqlx.DB
	repo      Repository
	wallets   wallet.Repository
	jwtSecret string
}

func NewService(db *sqlx.DB, repo Repository, wallets wallet.Repository, jwtSecret string) Service {
	return &service{
		db:        db,
		repo:      repo,
		wallets:   wallets,
		jwtSecret: jwtSecret,
	}
}

// Register creates the user and its zero-balance wallet in one transaction.
func (s *service) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	exists, err := s.repo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailExists
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	var account Account
	err = db.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		u, err := s.repo.Create(ctx, tx, req.Name, req.Email, passwordHash, defaultRole)
		if err != nil {
			return err
		}
		w, err := s.wallets.Create(ctx, tx, u.ID)
		if err != nil {
			return err
		}
		account = Account{User: *u, WalletNumber: w.WalletNumber}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("account provisioned", "user_id", account.User.ID, "wallet_number", account.WalletNumber)
	return s.issue(account)
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	u, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !auth.CheckPassword(u.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}

	account, err := s.account(ctx, u)
	if err != nil {
		return nil, err
	}
	return s.issue(*account)
}

func (s *service) Me(ctx context.Context, userID int) (*Account, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.account(ctx, u)
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	accessToken, userID, err := auth.RefreshAccessToken(refreshToken, s.jwtSecret)
	if err != nil {
		return nil, err
	}

	account, err := s.Me(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{AccessToken: accessToken, Account: *account}, nil
}

func (s *service) account(ctx context.Context, u *User) (*Account, error) {
	w, err := s.wallets.GetByUserID(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	return &Account{User: *u, WalletNumber: w.WalletNumber}, nil
}

func (s *service) issue(account Account) (*AuthResponse, error) {
	tokens, err := auth.GenerateTokens(account.User.ID, account.User.Email, s.jwtSecret)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{AccessToken: tokens.Access, RefreshToken: tokens.Refresh, Account: account}, nil
}
