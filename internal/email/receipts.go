package email

import (
	"context"

	"walletledger/internal/logger"
	"walletledger/internal/transfer"
	"walletledger/internal/user"
	"walletledger/internal/webhook"
)

type UserFinder interface {
	FindByID(ctx context.Context, id int) (*user.User, error)
}

// Receipts queues receipt mail for committed money movements. Failures are
// logged and never reach the caller; the money has already moved.
type Receipts struct {
	mail  *Service
	users UserFinder
}

func NewReceipts(mail *Service, users UserFinder) *Receipts {
	return &Receipts{mail: mail, users: users}
}

var (
	_ transfer.Notifier = (*Receipts)(nil)
	_ webhook.Notifier  = (*Receipts)(nil)
)

func (r *Receipts) TransferSent(ctx context.Context, rc transfer.Receipt) {
	if sender, ok := r.lookup(ctx, rc.SenderUserID); ok {
		_ = r.mail.SendTransferSent(ctx, sender.Email, sender.Name, rc.Reference, rc.RecipientWalletNumber, rc.Amount)
	}
	if recipient, ok := r.lookup(ctx, rc.RecipientUserID); ok {
		_ = r.mail.SendTransferReceived(ctx, recipient.Email, recipient.Name, rc.Reference, rc.SenderWalletNumber, rc.Amount)
	}
}

func (r *Receipts) DepositCredited(ctx context.Context, rc webhook.Receipt) {
	if owner, ok := r.lookup(ctx, rc.UserID); ok {
		_ = r.mail.SendDepositReceipt(ctx, owner.Email, owner.Name, rc.Reference, rc.Amount, rc.Balance)
	}
}

func (r *Receipts) lookup(ctx context.Context, userID int) (*user.User, bool) {
	u, err := r.users.FindByID(ctx, userID)
	if err != nil {
		logger.Warn("skipping receipt, user lookup failed", "user_id", userID, "error", err)
		return nil, false
	}
	return u, true
}
