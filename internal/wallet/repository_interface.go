package wallet

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type Repository interface {
	Create(ctx context.Context, tx *sqlx.Tx, userID int) (*Wallet, error)
	GetByID(ctx context.Context, id int) (*Wallet, error)
	GetByUserID(ctx context.Context, userID int) (*Wallet, error)
	GetByNumber(ctx context.Context, number string) (*Wallet, error)
	GetBalance(ctx context.Context, walletID int) (int64, error)
	LockForUpdate(ctx context.Context, tx *sqlx.Tx, ids ...int) (map[int]*Wallet, error)
	AdjustBalance(ctx context.Context, tx *sqlx.Tx, walletID int, delta int64) (int64, error)
}
