// Package webhook settles pending deposits from signed gateway notifications.
package webhook

import (
	"context"
	"errors"

	"walletledger/internal/db"
	"walletledger/internal/ledger"
	"walletledger/internal/logger"
	"walletledger/internal/metrics"
	"walletledger/internal/paystack"
	"walletledger/internal/wallet"

	"github.com/jmoiron/sqlx"
)

type Outcome string

const (
	OutcomeCredited  Outcome = "credited"
	OutcomeFailed    Outcome = "failed"
	OutcomeDuplicate Outcome = "duplicate"
	OutcomeUnknown   Outcome = "unknown"
	OutcomeIgnored   Outcome = "ignored"
)

// Receipt describes a deposit that was just credited.
type Receipt struct {
	Reference string
	Amount    int64
	WalletID  int
	UserID    int
	Balance   int64
}

type Notifier interface {
	DepositCredited(ctx context.Context, r Receipt)
}

type Reconciler struct {
	db       *sqlx.DB
	wallets  wallet.Repository
	entries  ledger.Repository
	secret   string
	notifier Notifier
}

func NewReconciler(db *sqlx.DB, wallets wallet.Repository, entries ledger.Repository, secret string, notifier Notifier) *Reconciler {
	return &Reconciler{
		db:       db,
		wallets:  wallets,
		entries:  entries,
		secret:   secret,
		notifier: notifier,
	}
}

// HandleNotification verifies rawBody against signature and applies the
// declared settlement. Unknown references, already settled deposits and
// unparseable bodies are acknowledged without mutation. A wallet is credited
// at most once per reference: the terminal-state check, the credit and the
// status transition share one transaction holding the entry's row lock.
func (r *Reconciler) HandleNotification(ctx context.Context, rawBody []byte, signature string) (Outcome, error) {
	if err := paystack.Verify(rawBody, signature, r.secret); err != nil {
		metrics.RecordWebhook("invalid_signature")
		logger.Warn("rejected webhook with invalid signature", "signature_present", signature != "")
		return "", err
	}

	event, err := paystack.ParseEvent(rawBody)
	if err != nil || event.Data.Reference == "" {
		metrics.RecordWebhook(string(OutcomeIgnored))
		logger.Warn("ignoring webhook without a reference", "event", event.Event)
		return OutcomeIgnored, nil
	}
	reference := event.Data.Reference

	var (
		outcome Outcome
		receipt Receipt
	)
	err = db.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		entry, err := r.entries.FindDepositForUpdate(ctx, tx, reference)
		if err != nil {
			if errors.Is(err, ledger.ErrNotFound) {
				outcome = OutcomeUnknown
				return nil
			}
			return err
		}

		if entry.Status.Terminal() {
			outcome = OutcomeDuplicate
			return nil
		}

		meta := ledger.Metadata(map[string]interface{}{
			"gateway_event":  event.Event,
			"gateway_status": event.Data.Status,
			"gateway_amount": event.Data.Amount,
			"paid_at":        event.Data.PaidAt,
		})

		if !event.Succeeded() {
			outcome = OutcomeFailed
			return r.entries.UpdateStatus(ctx, tx, entry.ID, ledger.StatusFailed, meta)
		}

		locked, err := r.wallets.LockForUpdate(ctx, tx, entry.WalletID)
		if err != nil {
			return err
		}
		balance, err := r.wallets.AdjustBalance(ctx, tx, entry.WalletID, entry.Amount)
		if err != nil {
			return err
		}
		if err := r.entries.UpdateStatus(ctx, tx, entry.ID, ledger.StatusSuccess, meta); err != nil {
			return err
		}

		outcome = OutcomeCredited
		receipt = Receipt{
			Reference: reference,
			Amount:    entry.Amount,
			WalletID:  entry.WalletID,
			UserID:    locked[entry.WalletID].UserID,
			Balance:   balance,
		}
		return nil
	})
	if err != nil {
		metrics.RecordWebhook("error")
		logger.Error("failed to reconcile deposit", "reference", reference, "error", err)
		return "", err
	}

	metrics.RecordWebhook(string(outcome))
	switch outcome {
	case OutcomeCredited:
		logger.Info("deposit settled", "reference", reference, "amount", receipt.Amount, "wallet_id", receipt.WalletID)
		if r.notifier != nil {
			r.notifier.DepositCredited(ctx, receipt)
		}
	case OutcomeFailed:
		logger.Info("deposit failed", "reference", reference, "gateway_status", event.Data.Status)
	case OutcomeDuplicate:
		logger.Info("duplicate settlement notification", "reference", reference)
	case OutcomeUnknown:
		logger.Info("notification for unknown reference", "reference", reference)
	}

	return outcome, nil
}
