package ledger

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
)

type Repository interface {
	Append(ctx context.Context, q sqlx.ExtContext, e *Entry) error
	AppendTransfer(ctx context.Context, tx *sqlx.Tx, t TransferRecord) ([2]Entry, error)
	FindByReference(ctx context.Context, reference string) ([]Entry, error)
	FindDepositForUpdate(ctx context.Context, tx *sqlx.Tx, reference string) (*Entry, error)
	UpdateStatus(ctx context.Context, q sqlx.ExtContext, id int64, status Status, meta types.JSONText) error
	ListByWallet(ctx context.Context, walletID, limit, offset int) ([]Entry, error)
	SettledSum(ctx context.Context, walletID int) (int64, error)
	CountPendingDepositsBefore(ctx context.Context, before time.Time) (int, error)
}
