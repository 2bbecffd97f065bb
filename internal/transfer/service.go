package transfer

import (
	"context"
	"errors"

	"walletledger/internal/db"
	"walletledger/internal/ledger"
	"walletledger/internal/logger"
	"walletledger/internal/metrics"
	"walletledger/internal/principal"
	"walletledger/internal/wallet"

	"github.com/jmoiron/sqlx"
)

var (
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrRecipientNotFound = errors.New("recipient wallet not found")
	ErrSelfTransfer      = errors.New("cannot transfer to your own wallet")
)

// Notifier is told about committed transfers. Implementations must not block
// for long; failures are theirs to log.
type Notifier interface {
	TransferSent(ctx context.Context, r Receipt)
}

type Service interface {
	Transfer(ctx context.Context, p principal.Principal, recipientNumber string, amount int64) (*Result, error)
}

type service struct {
	db       *sqlx.DB
	wallets  wallet.Repository
	entries  ledger.Repository
	notifier Notifier

	newReference func() string
}

func NewService(db *sqlx.DB, wallets wallet.Repository, entries ledger.Repository, notifier Notifier) Service {
	return &service{
		db:       db,
		wallets:  wallets,
		entries:  entries,
		notifier: notifier,
		newReference: func() string {
			return ledger.NewReference(ledger.PrefixTransfer)
		},
	}
}

// Transfer moves amount from the caller's wallet to the wallet numbered
// recipientNumber. Both balance updates and both ledger legs commit together
// or not at all. Each call moves money again.
func (s *service) Transfer(ctx context.Context, p principal.Principal, recipientNumber string, amount int64) (*Result, error) {
	recipient, err := s.wallets.GetByNumber(ctx, recipientNumber)
	if err != nil {
		if errors.Is(err, wallet.ErrWalletNotFound) {
			metrics.RecordTransfer("recipient_not_found", amount)
			return nil, ErrRecipientNotFound
		}
		return nil, err
	}

	if amount <= 0 {
		metrics.RecordTransfer("invalid_amount", amount)
		return nil, ErrInvalidAmount
	}

	sender, err := s.wallets.GetByUserID(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	if sender.ID == recipient.ID {
		metrics.RecordTransfer("self_transfer", amount)
		return nil, ErrSelfTransfer
	}

	reference := s.newReference()
	var senderBalance int64

	err = db.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		locked, err := s.wallets.LockForUpdate(ctx, tx, sender.ID, recipient.ID)
		if err != nil {
			return err
		}
		if locked[sender.ID].Balance < amount {
			return wallet.ErrInsufficientFunds
		}

		if senderBalance, err = s.wallets.AdjustBalance(ctx, tx, sender.ID, -amount); err != nil {
			return err
		}
		if _, err := s.wallets.AdjustBalance(ctx, tx, recipient.ID, amount); err != nil {
			return err
		}

		_, err = s.entries.AppendTransfer(ctx, tx, ledger.TransferRecord{
			Reference:         reference,
			SenderWalletID:    sender.ID,
			RecipientWalletID: recipient.ID,
			Amount:            amount,
			SenderMeta:        ledger.Metadata(map[string]interface{}{"recipient_wallet_number": recipient.WalletNumber}),
			RecipientMeta:     ledger.Metadata(map[string]interface{}{"sender_wallet_number": sender.WalletNumber}),
		})
		return err
	})
	if err != nil {
		if errors.Is(err, wallet.ErrInsufficientFunds) {
			metrics.RecordTransfer("insufficient_funds", amount)
			return nil, err
		}
		metrics.RecordTransfer("error", amount)
		logger.Error("transfer failed", "reference", reference, "sender_wallet_id", sender.ID, "recipient_wallet_id", recipient.ID, "error", err)
		return nil, err
	}

	metrics.RecordTransfer("success", amount)
	logger.Info("transfer completed",
		"reference", reference,
		"amount", amount,
		"sender_wallet_id", sender.ID,
		"recipient_wallet_id", recipient.ID,
		"principal_kind", p.Kind,
	)

	if s.notifier != nil {
		s.notifier.TransferSent(ctx, Receipt{
			Reference:             reference,
			Amount:                amount,
			SenderUserID:          sender.UserID,
			RecipientUserID:       recipient.UserID,
			SenderWalletNumber:    sender.WalletNumber,
			RecipientWalletNumber: recipient.WalletNumber,
		})
	}

	return &Result{Reference: reference, Amount: amount, SenderBalance: senderBalance}, nil
}
