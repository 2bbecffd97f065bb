package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"walletledger/internal/db"

	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
)

var (
	ErrDuplicateReference = errors.New("reference already used by another event")
	ErrInvalidTransition  = errors.New("entry is not pending")
	ErrNotFound           = errors.New("ledger entry not found")
	ErrInvalidEntry       = errors.New("invalid ledger entry")
)

const (
	defaultPageSize = 50
	maxPageSize     = 200

	entryColumns = `id, wallet_id, type, direction, amount, status, reference, metadata, created_at, updated_at`
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// Append inserts e and fills in its generated columns. A reference belongs to
// one event: a deposit or withdrawal owns it alone, a transfer owns it for
// exactly one debit and one credit. The store enforces this, and any reuse
// surfaces as ErrDuplicateReference.
func (r *repository) Append(ctx context.Context, q sqlx.ExtContext, e *Entry) error {
	if e.Amount == 0 || e.Reference == "" {
		return ErrInvalidEntry
	}
	if e.Status == StatusFailed {
		return fmt.Errorf("%w: entries start pending or success", ErrInvalidEntry)
	}
	e.Direction = directionOf(e.Amount)
	e.Metadata = orEmpty(e.Metadata)

	err := q.QueryRowxContext(ctx,
		`INSERT INTO transactions (wallet_id, type, direction, amount, status, reference, metadata)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at, updated_at`,
		e.WalletID, e.Type, e.Direction, e.Amount, e.Status, e.Reference, e.Metadata,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if db.IsUniqueViolation(err) || db.IsExclusionViolation(err) {
			return ErrDuplicateReference
		}
		return err
	}
	return nil
}

// AppendTransfer writes both legs of t inside tx.
func (r *repository) AppendTransfer(ctx context.Context, tx *sqlx.Tx, t TransferRecord) ([2]Entry, error) {
	if t.Amount <= 0 {
		return [2]Entry{}, fmt.Errorf("%w: transfer amount must be positive", ErrInvalidEntry)
	}
	entries := t.Entries()
	for i := range entries {
		if err := r.Append(ctx, tx, &entries[i]); err != nil {
			return [2]Entry{}, err
		}
	}
	return entries, nil
}

func (r *repository) FindByReference(ctx context.Context, reference string) ([]Entry, error) {
	var entries []Entry
	err := r.db.SelectContext(ctx, &entries,
		`SELECT `+entryColumns+`
		 FROM transactions
		 WHERE reference = $1
		 ORDER BY id`,
		reference,
	)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrNotFound
	}
	return entries, nil
}

// FindDepositForUpdate locks the deposit entry for reference until tx ends.
func (r *repository) FindDepositForUpdate(ctx context.Context, tx *sqlx.Tx, reference string) (*Entry, error) {
	var e Entry
	err := tx.GetContext(ctx, &e,
		`SELECT `+entryColumns+`
		 FROM transactions
		 WHERE reference = $1 AND type = 'deposit'
		 FOR UPDATE`,
		reference,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

// UpdateStatus moves a pending entry to a terminal status exactly once and
// merges meta into the stored metadata.
func (r *repository) UpdateStatus(ctx context.Context, q sqlx.ExtContext, id int64, status Status, meta types.JSONText) error {
	if !status.Terminal() {
		return ErrInvalidTransition
	}

	res, err := q.ExecContext(ctx,
		`UPDATE transactions
		 SET status = $1, metadata = metadata || $2::jsonb, updated_at = NOW()
		 WHERE id = $3 AND status = 'pending'`,
		status, orEmpty(meta), id,
	)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrInvalidTransition
	}
	return nil
}

func (r *repository) ListByWallet(ctx context.Context, walletID, limit, offset int) ([]Entry, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}

	entries := []Entry{}
	err := r.db.SelectContext(ctx, &entries,
		`SELECT `+entryColumns+`
		 FROM transactions
		 WHERE wallet_id = $1
		 ORDER BY created_at DESC, id DESC
		 LIMIT $2 OFFSET $3`,
		walletID, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// SettledSum is the balance reconstructed from successful entries.
func (r *repository) SettledSum(ctx context.Context, walletID int) (int64, error) {
	var sum int64
	err := r.db.GetContext(ctx, &sum,
		`SELECT COALESCE(SUM(amount), 0)
		 FROM transactions
		 WHERE wallet_id = $1 AND status = 'success'`,
		walletID,
	)
	return sum, err
}

func (r *repository) CountPendingDepositsBefore(ctx context.Context, before time.Time) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n,
		`SELECT COUNT(*)
		 FROM transactions
		 WHERE type = 'deposit' AND status = 'pending' AND created_at < $1`,
		before,
	)
	return n, err
}
