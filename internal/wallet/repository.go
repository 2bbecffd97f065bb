package wallet

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"math/big"
	"sort"

	"walletledger/internal/db"

	"github.com/jmoiron/sqlx"
)

var (
	ErrWalletNotFound    = errors.New("wallet not found")
	ErrWalletExists      = errors.New("user already has a wallet")
	ErrInsufficientFunds = errors.New("insufficient funds")
)

const (
	walletNumberDigits   = 10
	walletNumberAttempts = 5

	walletColumns = `id, user_id, balance, wallet_number, created_at, updated_at`
)

// NewWalletNumber is swapped in tests for deterministic numbers.
var NewWalletNumber = randomWalletNumber

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// Create provisions the user's wallet with a zero balance. A wallet number
// collision is retried with a fresh number; a second wallet for the same
// user fails with ErrWalletExists.
func (r *repository) Create(ctx context.Context, tx *sqlx.Tx, userID int) (*Wallet, error) {
	for attempt := 0; attempt < walletNumberAttempts; attempt++ {
		number, err := NewWalletNumber()
		if err != nil {
			return nil, err
		}

		var w Wallet
		err = tx.QueryRowxContext(ctx,
			`INSERT INTO wallets (user_id, wallet_number)
			 VALUES ($1, $2)
			 ON CONFLICT (wallet_number) DO NOTHING
			 RETURNING `+walletColumns,
			userID, number,
		).StructScan(&w)
		if err == nil {
			return &w, nil
		}
		if errors.Is(err, sql.ErrNoRows) {
			continue
		}
		if db.IsUniqueViolation(err) {
			return nil, ErrWalletExists
		}
		return nil, err
	}
	return nil, fmt.Errorf("could not allocate a unique wallet number after %d attempts", walletNumberAttempts)
}

func (r *repository) GetByID(ctx context.Context, id int) (*Wallet, error) {
	return r.getOne(ctx, `SELECT `+walletColumns+` FROM wallets WHERE id = $1`, id)
}

func (r *repository) GetByUserID(ctx context.Context, userID int) (*Wallet, error) {
	return r.getOne(ctx, `SELECT `+walletColumns+` FROM wallets WHERE user_id = $1`, userID)
}

func (r *repository) GetByNumber(ctx context.Context, number string) (*Wallet, error) {
	return r.getOne(ctx, `SELECT `+walletColumns+` FROM wallets WHERE wallet_number = $1`, number)
}

// GetBalance returns a snapshot read. It must not be used to authorize a
// mutation; AdjustBalance re-checks under the row lock.
func (r *repository) GetBalance(ctx context.Context, walletID int) (int64, error) {
	var balance int64
	err := r.db.GetContext(ctx, &balance, `SELECT balance FROM wallets WHERE id = $1`, walletID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrWalletNotFound
		}
		return 0, err
	}
	return balance, nil
}

// LockForUpdate takes row locks on the given wallets in ascending id order so
// that two transactions touching the same pair never wait on each other in
// opposite orders.
func (r *repository) LockForUpdate(ctx context.Context, tx *sqlx.Tx, ids ...int) (map[int]*Wallet, error) {
	ordered := append([]int(nil), ids...)
	sort.Ints(ordered)

	locked := make(map[int]*Wallet, len(ordered))
	for _, id := range ordered {
		if _, seen := locked[id]; seen {
			continue
		}
		var w Wallet
		err := tx.QueryRowxContext(ctx,
			`SELECT `+walletColumns+`
			 FROM wallets
			 WHERE id = $1
			 FOR UPDATE`,
			id,
		).StructScan(&w)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, ErrWalletNotFound
			}
			return nil, err
		}
		locked[id] = &w
	}
	return locked, nil
}

// AdjustBalance applies delta as a single UPDATE, which holds the row lock
// for the read-modify-write. A debit that would leave the balance negative
// fails with ErrInsufficientFunds; the caller's transaction must then be
// rolled back.
func (r *repository) AdjustBalance(ctx context.Context, tx *sqlx.Tx, walletID int, delta int64) (int64, error) {
	var newBalance int64
	err := tx.GetContext(ctx, &newBalance,
		`UPDATE wallets
		 SET balance = balance + $1, updated_at = NOW()
		 WHERE id = $2
		 RETURNING balance`,
		delta, walletID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrWalletNotFound
		}
		if db.IsCheckViolation(err) {
			return 0, ErrInsufficientFunds
		}
		return 0, err
	}

	if delta < 0 && newBalance < 0 {
		return 0, ErrInsufficientFunds
	}
	return newBalance, nil
}

func (r *repository) getOne(ctx context.Context, query string, arg interface{}) (*Wallet, error) {
	var w Wallet
	if err := r.db.GetContext(ctx, &w, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrWalletNotFound
		}
		return nil, err
	}
	return &w, nil
}

func randomWalletNumber() (string, error) {
	// First digit 1-9 keeps the number at a fixed width.
	lead, err := rand.Int(rand.Reader, big.NewInt(9))
	if err != nil {
		return "", err
	}
	rest, err := rand.Int(rand.Reader, big.NewInt(1_000_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d%0*d", lead.Int64()+1, walletNumberDigits-1, rest.Int64()), nil
}
